package queue

import (
	"fmt"
	"sort"
	"strings"
)

// Collection is one task queue: its schema, column order, records and config.
// A collection lives for a single command: it is decoded, mutated and encoded
// back as a whole.
type Collection struct {
	// Schema maps column name to rule. Columns without an entry use EmptyRule.
	Schema map[string]*Rule
	// Columns is the storage, id-assignment and display order.
	Columns []string
	// Records are kept in creation order.
	Records []*Record
	Config  ConfigList
}

// New creates an empty collection with the given columns and rules.
func New(columns []string, rules ...*Rule) *Collection {
	c := &Collection{
		Schema:  make(map[string]*Rule, len(rules)),
		Columns: append([]string(nil), columns...),
	}
	for _, r := range rules {
		c.Schema[r.Name] = r
	}
	return c
}

// ResolveColumn maps name onto a declared column, ignoring case.
func (c *Collection) ResolveColumn(name string) (string, bool) {
	for _, col := range c.Columns {
		if equalFold(col, name) {
			return col, true
		}
	}
	return "", false
}

// MustResolveColumn is ResolveColumn returning ColumnNotFoundError on a miss.
func (c *Collection) MustResolveColumn(name string) (string, error) {
	col, ok := c.ResolveColumn(name)
	if !ok {
		return "", &ColumnNotFoundError{Name: name}
	}
	return col, nil
}

// RuleFor returns the declared rule of a column, or a fresh EmptyRule.
func (c *Collection) RuleFor(name string) *Rule {
	if r, ok := c.Schema[name]; ok {
		return r
	}
	return EmptyRule(name)
}

// Rules returns declared rules in column order, followed by rules for
// undeclared columns sorted by name.
func (c *Collection) Rules() []*Rule {
	rules := make([]*Rule, 0, len(c.Schema))
	seen := make(map[string]bool, len(c.Schema))
	for _, col := range c.Columns {
		if r, ok := c.Schema[col]; ok {
			rules = append(rules, r)
			seen[col] = true
		}
	}

	var extra []string
	for name := range c.Schema {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		rules = append(rules, c.Schema[name])
	}
	return rules
}

// ColumnWithRole returns the first column, in column order, whose rule
// carries role. Rules for columns that are not declared never match.
func (c *Collection) ColumnWithRole(role Role) (string, bool) {
	for _, col := range c.Columns {
		if c.RuleFor(col).Role == role {
			return col, true
		}
	}
	return "", false
}

func (c *Collection) requireRole(role Role) (string, error) {
	col, ok := c.ColumnWithRole(role)
	if !ok {
		return "", &RoleNotConfiguredError{
			Role:        role,
			Remediation: fmt.Sprintf("tqb constraint alter [column] Role=%s", role),
		}
	}
	return col, nil
}

// PrimaryKeyColumn returns the column holding record ids.
func (c *Collection) PrimaryKeyColumn() (string, error) {
	return c.requireRole(RolePrimaryKey)
}

// StatusColumn returns the column updated by mark.
func (c *Collection) StatusColumn() (string, error) {
	return c.requireRole(RoleStatus)
}

// ArchivingColumn returns the column that flags archived records.
func (c *Collection) ArchivingColumn() (string, error) {
	return c.requireRole(RoleArchiving)
}

// DescriptionColumn returns the Description-role column, falling back to the
// first column that is not the primary key.
func (c *Collection) DescriptionColumn() (string, error) {
	if col, ok := c.ColumnWithRole(RoleDescription); ok {
		return col, nil
	}

	pk, _ := c.ColumnWithRole(RolePrimaryKey)
	for _, col := range c.Columns {
		if col != pk {
			return col, nil
		}
	}
	return "", &RoleNotConfiguredError{
		Role:        RoleDescription,
		Remediation: "tqb column add [column]",
	}
}

// DisplayColumns returns the columns whose rule is not hidden.
func (c *Collection) DisplayColumns() []string {
	var cols []string
	for _, col := range c.Columns {
		if !c.RuleFor(col).Hide {
			cols = append(cols, col)
		}
	}
	return cols
}

// ColumnWidths returns the ColWidth of each column in the given order; 0 = unbounded.
func (c *Collection) ColumnWidths(columns []string) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = c.RuleFor(col).ColWidth
	}
	return widths
}

// AddColumn appends a column, blanks it on every record and installs an empty rule.
func (c *Collection) AddColumn(name string) error {
	if existing, ok := c.ResolveColumn(name); ok {
		return &ColumnExistsError{Name: existing}
	}

	c.Columns = append(c.Columns, name)
	if c.Schema == nil {
		c.Schema = make(map[string]*Rule)
	}
	for _, rec := range c.Records {
		rec.Fields[name] = ""
	}
	c.Schema[name] = EmptyRule(name)
	return nil
}

// MoveColumn moves a column to index. Negative indexes count from the end and
// out-of-range indexes clamp, as with a list insert.
func (c *Collection) MoveColumn(name string, index int) error {
	col, err := c.MustResolveColumn(name)
	if err != nil {
		return err
	}

	rest := make([]string, 0, len(c.Columns))
	for _, existing := range c.Columns {
		if existing != col {
			rest = append(rest, existing)
		}
	}

	if index < 0 {
		index += len(rest)
		if index < 0 {
			index = 0
		}
	}
	if index > len(rest) {
		index = len(rest)
	}

	moved := make([]string, 0, len(c.Columns))
	moved = append(moved, rest[:index]...)
	moved = append(moved, col)
	moved = append(moved, rest[index:]...)
	c.Columns = moved
	return nil
}

// RenameColumn renames a column in the column list, in every record and in the schema.
func (c *Collection) RenameColumn(oldName, newName string) error {
	col, err := c.MustResolveColumn(oldName)
	if err != nil {
		return err
	}
	if existing, ok := c.ResolveColumn(newName); ok && existing != col {
		return &ColumnExistsError{Name: existing}
	}

	for i, existing := range c.Columns {
		if existing == col {
			c.Columns[i] = newName
		}
	}

	for _, rec := range c.Records {
		value := rec.Fields[col]
		delete(rec.Fields, col)
		rec.Fields[newName] = value
	}

	if r, ok := c.Schema[col]; ok {
		delete(c.Schema, col)
		r.Name = newName
		c.Schema[newName] = r
	}
	return nil
}

// RemoveColumn drops a column from the column list, every record and the schema.
func (c *Collection) RemoveColumn(name string) error {
	col, err := c.MustResolveColumn(name)
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(c.Columns))
	for _, existing := range c.Columns {
		if existing != col {
			kept = append(kept, existing)
		}
	}
	c.Columns = kept

	for _, rec := range c.Records {
		delete(rec.Fields, col)
	}
	delete(c.Schema, col)
	return nil
}

// NextID returns the id a new record would receive: one past the highest id.
func (c *Collection) NextID() int {
	maxID := 0
	for _, rec := range c.Records {
		if rec.ID > maxID {
			maxID = rec.ID
		}
	}
	return maxID + 1
}

// AddRecord appends a record.
func (c *Collection) AddRecord(rec *Record) {
	c.Records = append(c.Records, rec)
}

// FindRecord returns the record with id.
func (c *Collection) FindRecord(id int) (*Record, bool) {
	for _, rec := range c.Records {
		if rec.ID == id {
			return rec, true
		}
	}
	return nil, false
}

// MustFindRecord is FindRecord returning RecordNotFoundError on a miss.
func (c *Collection) MustFindRecord(id int) (*Record, error) {
	rec, ok := c.FindRecord(id)
	if !ok {
		return nil, &RecordNotFoundError{ID: id}
	}
	return rec, nil
}

// RemoveRecord deletes the record with id and returns it.
func (c *Collection) RemoveRecord(id int) (*Record, error) {
	for i, rec := range c.Records {
		if rec.ID == id {
			c.Records = append(c.Records[:i], c.Records[i+1:]...)
			return rec, nil
		}
	}
	return nil, &RecordNotFoundError{ID: id}
}

// AddRule declares a rule for an existing column. Fails if the column is
// missing or already has a rule.
func (c *Collection) AddRule(r *Rule) error {
	col, err := c.MustResolveColumn(r.Name)
	if err != nil {
		return err
	}
	if c.Schema == nil {
		c.Schema = make(map[string]*Rule)
	}
	if _, ok := c.Schema[col]; ok {
		return &RuleExistsError{Name: col}
	}
	r.Name = col
	c.Schema[col] = r
	return nil
}

// RemoveRule drops the rule of a column; the column falls back to EmptyRule.
func (c *Collection) RemoveRule(name string) error {
	if _, ok := c.Schema[name]; !ok {
		return &RuleNotFoundError{Name: name}
	}
	delete(c.Schema, name)
	return nil
}

// FieldValue is one attribute assignment, e.g. parsed from "Role=Status".
type FieldValue struct {
	Field RuleField
	Value string
}

// AlterRule assigns attributes of an existing rule in order. HeaderName cannot
// be altered. The rule is only changed when every assignment is valid.
func (c *Collection) AlterRule(name string, values []FieldValue) error {
	r, ok := c.Schema[name]
	if !ok {
		return &RuleNotFoundError{Name: name}
	}

	updated := r.Clone()
	for _, fv := range values {
		if fv.Field == FieldHeaderName {
			return ErrImmutableField
		}
		if err := updated.SetField(fv.Field, fv.Value); err != nil {
			return err
		}
	}
	*r = *updated
	return nil
}

// AppendToListField appends values to a "|"-joined rule attribute (Variant or Colours).
func (c *Collection) AppendToListField(name string, field RuleField, values []string) error {
	r, ok := c.Schema[name]
	if !ok {
		return &RuleNotFoundError{Name: name}
	}
	if !field.IsList() {
		return &UnknownRuleFieldError{Field: string(field), Reason: "is not a list"}
	}

	items := splitList(r.Field(field))
	for _, v := range values {
		items = append(items, splitList(v)...)
	}
	return r.SetField(field, strings.Join(items, "|"))
}
