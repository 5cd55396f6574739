package queue

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Record is one task. Fields holds a value for every column of the owning
// collection. Records do not point back at their collection; operations that
// need the schema take it as an argument.
type Record struct {
	ID     int
	Fields map[string]string
}

// NewRecord builds the next record of c. Every column starts blank except the
// description column and the primary key, then every value is normalized
// through its column's rule so defaults, variants and types all apply.
func NewRecord(description string, c *Collection) (*Record, error) {
	pk, err := c.PrimaryKeyColumn()
	if err != nil {
		return nil, err
	}
	desc, err := c.DescriptionColumn()
	if err != nil {
		return nil, err
	}

	id := c.NextID()
	fields := make(map[string]string, len(c.Columns))
	for _, col := range c.Columns {
		fields[col] = ""
	}
	fields[desc] = description
	fields[pk] = strconv.Itoa(id)

	for _, col := range c.Columns {
		value, err := c.RuleFor(col).Normalize(fields[col])
		if err != nil {
			return nil, err
		}
		fields[col] = value
	}

	return &Record{ID: id, Fields: fields}, nil
}

// DeserializeRecord zips a storage row against columns. Missing trailing
// values are blank. The id comes from the primary key column; a file without
// one loads with id 0 so the schema can still be repaired.
func DeserializeRecord(row, columns []string, c *Collection) (*Record, error) {
	fields := make(map[string]string, len(columns))
	for i, col := range columns {
		if i < len(row) {
			fields[col] = row[i]
		} else {
			fields[col] = ""
		}
	}

	rec := &Record{Fields: fields}
	if pk, ok := c.ColumnWithRole(RolePrimaryKey); ok {
		id, err := strconv.Atoi(fields[pk])
		if err != nil {
			return nil, &CorruptError{Reason: "malformed primary key " + strconv.Quote(fields[pk]), Err: err}
		}
		rec.ID = id
	}
	return rec, nil
}

// Serialize returns the storage row in the collection's column order.
func (r *Record) Serialize(c *Collection) []string {
	row := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		row[i] = r.Fields[col]
	}
	return row
}

// UpdateColumn normalizes value through the column's rule and stores it.
func (r *Record) UpdateColumn(c *Collection, name, value string) error {
	col, err := c.MustResolveColumn(name)
	if err != nil {
		return err
	}

	normalized, err := c.RuleFor(col).Normalize(value)
	if err != nil {
		return err
	}
	r.Fields[col] = normalized

	if pk, ok := c.ColumnWithRole(RolePrimaryKey); ok && pk == col {
		if id, err := strconv.Atoi(normalized); err == nil {
			r.ID = id
		}
	}
	return nil
}

// Get returns the stored value of a column.
func (r *Record) Get(c *Collection, name string) (string, error) {
	col, err := c.MustResolveColumn(name)
	if err != nil {
		return "", err
	}
	return r.Fields[col], nil
}

// Set stores a value without normalization.
func (r *Record) Set(c *Collection, name, value string) error {
	col, err := c.MustResolveColumn(name)
	if err != nil {
		return err
	}
	r.Fields[col] = value
	return nil
}

// Matches reports whether the column's value matches a glob pattern. For
// columns with a Variant the pattern is canonicalized first, so "in" matches
// "In Progress" on an autofill column. A wildcard pattern that no variant
// accepts is matched as written.
func (r *Record) Matches(c *Collection, name, pattern string) (bool, error) {
	col, err := c.MustResolveColumn(name)
	if err != nil {
		return false, err
	}

	rule := c.RuleFor(col)
	if len(rule.Variant) > 0 {
		canonical, err := rule.CanonicalizeVariant(pattern)
		switch {
		case err == nil:
			pattern = canonical
		case !strings.ContainsAny(pattern, "*?["):
			return false, err
		}
	}
	return globMatch(pattern, r.Fields[col]), nil
}

// IsArchived coerces the Archiving column's value under its rule and reports
// whether it is set. Collections without an Archiving column have no archived
// records. An Int column holding non-numeric text fails with TypeMismatchError.
func (r *Record) IsArchived(c *Collection) (bool, error) {
	col, ok := c.ColumnWithRole(RoleArchiving)
	if !ok {
		return false, nil
	}
	v, err := c.RuleFor(col).CoerceType(r.Fields[col])
	if err != nil {
		return false, err
	}
	return v.Truthy(), nil
}

// DisplayRow renders the given columns: truncated to ColWidth, then coloured.
func (r *Record) DisplayRow(c *Collection, columns []string, opts RenderOptions) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		rule := c.RuleFor(col)
		value := r.Fields[col]
		if rule.ColWidth > 0 {
			value = runewidth.Truncate(value, rule.ColWidth, "")
		}
		row[i] = rule.ApplyColour(value, opts)
	}
	return row
}
