package queue

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeTag is the primitive validator attached to a column.
type TypeTag int

const (
	// Untyped columns accept any text
	Untyped TypeTag = iota
	// Int columns must hold a base-10 integer
	Int
	// Bool columns hold "True" or "False"
	Bool
)

// String returns the tag as written in the Type column of the constraints section.
func (t TypeTag) String() string {
	switch t {
	case Int:
		return "int"
	case Bool:
		return "bool"
	default:
		return ""
	}
}

// ParseTypeTag parses a stored Type tag. The empty string is Untyped.
func ParseTypeTag(s string) (TypeTag, error) {
	switch s {
	case "":
		return Untyped, nil
	case "int":
		return Int, nil
	case "bool":
		return Bool, nil
	default:
		return Untyped, &InvalidRuleValueError{Field: FieldType, Value: s}
	}
}

// Role singles out a column with a special meaning to the tool.
type Role string

const (
	RoleNone        Role = ""
	RolePrimaryKey  Role = "PrimaryKey"
	RoleStatus      Role = "Status"
	RoleArchiving   Role = "Archiving"
	RoleDescription Role = "Description"
)

// Roles lists every assignable role.
var Roles = []Role{RoleStatus, RolePrimaryKey, RoleArchiving, RoleDescription}

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleNone, nil
	}
	for _, r := range Roles {
		if equalFold(string(r), s) {
			return r, nil
		}
	}
	return RoleNone, &InvalidRuleValueError{Field: FieldRole, Value: s}
}

// RuleField names one attribute of a Rule. The set is closed; see ConstraintsHeaders.
type RuleField string

const (
	FieldHeaderName RuleField = "HeaderName"
	FieldType       RuleField = "Type"
	FieldVariant    RuleField = "Variant"
	FieldDefault    RuleField = "Default"
	FieldColWidth   RuleField = "ColWidth"
	FieldColours    RuleField = "Colours"
	FieldRole       RuleField = "Role"
	FieldAutofill   RuleField = "Autofill"
	FieldHide       RuleField = "Hide"
	FieldAutoHeader RuleField = "AutoHeader"
)

// RuleFields is the storage order of rule attributes.
var RuleFields = []RuleField{
	FieldHeaderName, FieldType, FieldVariant, FieldDefault, FieldColWidth,
	FieldColours, FieldRole, FieldAutofill, FieldHide, FieldAutoHeader,
}

// ConstraintsHeaders is the header row of the constraints section.
var ConstraintsHeaders = func() []string {
	h := make([]string, len(RuleFields))
	for i, f := range RuleFields {
		h[i] = string(f)
	}
	return h
}()

// legacyFields maps attribute names used by older task queue files.
var legacyFields = map[string]RuleField{
	"constraintype":    FieldType,
	"constrainvariant": FieldVariant,
}

// ParseRuleField resolves an attribute name case-insensitively.
func ParseRuleField(name string) (RuleField, error) {
	for _, f := range RuleFields {
		if equalFold(string(f), name) {
			return f, nil
		}
	}
	if f, ok := legacyFields[fold(name)]; ok {
		return f, nil
	}
	return "", &UnknownRuleFieldError{Field: name}
}

// IsList reports whether the field holds a "|"-joined list.
func (f RuleField) IsList() bool {
	return f == FieldVariant || f == FieldColours
}

// ColourPair maps a glob pattern to a colour spec (a colour name or #RRGGBB).
type ColourPair struct {
	Pattern string
	Spec    string
}

// Rule holds one column's validation, rendering and role metadata.
type Rule struct {
	Name       string
	Type       TypeTag
	Variant    []string
	Default    string
	ColWidth   int // 0 = no truncation
	Colours    []ColourPair
	Role       Role
	Autofill   bool
	Hide       bool
	AutoHeader bool
}

// EmptyRule returns a rule that validates nothing, colours nothing and hides nothing.
// It stands in for columns that were added without metadata.
func EmptyRule(name string) *Rule {
	return &Rule{Name: name}
}

// RuleFromOptions builds a rule from attribute assignments; unspecified
// attributes keep their empty values. HeaderName in opts is ignored.
func RuleFromOptions(name string, opts map[RuleField]string) (*Rule, error) {
	r := EmptyRule(name)
	for _, f := range RuleFields {
		v, ok := opts[f]
		if !ok || f == FieldHeaderName {
			continue
		}
		if err := r.SetField(f, v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Clone returns a deep copy of the rule.
func (r *Rule) Clone() *Rule {
	c := *r
	c.Variant = append([]string(nil), r.Variant...)
	c.Colours = append([]ColourPair(nil), r.Colours...)
	return &c
}

// Field returns the stored text of one attribute.
func (r *Rule) Field(f RuleField) string {
	switch f {
	case FieldHeaderName:
		return r.Name
	case FieldType:
		return r.Type.String()
	case FieldVariant:
		return strings.Join(r.Variant, "|")
	case FieldDefault:
		return r.Default
	case FieldColWidth:
		if r.ColWidth <= 0 {
			return ""
		}
		return strconv.Itoa(r.ColWidth)
	case FieldColours:
		return formatColours(r.Colours)
	case FieldRole:
		return string(r.Role)
	case FieldAutofill:
		return formatBool(r.Autofill)
	case FieldHide:
		return formatBool(r.Hide)
	case FieldAutoHeader:
		return formatBool(r.AutoHeader)
	default:
		return ""
	}
}

// SetField assigns one attribute from its stored text.
// Type and Role must name a member of their closed sets; ColWidth that is not
// numeric clears the width; bools use the truthy rule of CoerceType.
func (r *Rule) SetField(f RuleField, v string) error {
	switch f {
	case FieldHeaderName:
		r.Name = v
	case FieldType:
		t, err := ParseTypeTag(v)
		if err != nil {
			return err
		}
		r.Type = t
	case FieldVariant:
		r.Variant = splitList(v)
	case FieldDefault:
		r.Default = v
	case FieldColWidth:
		r.ColWidth = parseWidth(v)
	case FieldColours:
		r.Colours = parseColours(v)
	case FieldRole:
		role, err := ParseRole(v)
		if err != nil {
			return err
		}
		r.Role = role
	case FieldAutofill:
		r.Autofill = truthy(v)
	case FieldHide:
		r.Hide = truthy(v)
	case FieldAutoHeader:
		r.AutoHeader = truthy(v)
	default:
		return &UnknownRuleFieldError{Field: string(f)}
	}
	return nil
}

// Serialize returns the rule as a constraints row.
func (r *Rule) Serialize() []string {
	row := make([]string, len(RuleFields))
	for i, f := range RuleFields {
		row[i] = r.Field(f)
	}
	return row
}

// DeserializeRule parses a constraints row. Short rows are padded with empty
// values so files written before newer attributes existed still load.
// An unknown Type tag is corruption; an unrecognised Role is kept verbatim and
// simply never matches a role lookup.
func DeserializeRule(row []string) (*Rule, error) {
	cells := make([]string, len(RuleFields))
	copy(cells, row)

	r := EmptyRule(cells[0])
	for i, f := range RuleFields[1:] {
		v := cells[i+1]
		if f == FieldRole {
			r.Role = Role(v)
			continue
		}
		if err := r.SetField(f, v); err != nil {
			return nil, fmt.Errorf("column %s: %w", r.Name, err)
		}
	}
	return r, nil
}

// ApplyDefault substitutes the rule's Default for an empty value.
func (r *Rule) ApplyDefault(value string) string {
	if value == "" {
		return r.Default
	}
	return value
}

// VariantCandidates returns the values CanonicalizeVariant accepts, in order.
// The leading empty string lets blank values pass through.
func (r *Rule) VariantCandidates() []string {
	return append([]string{""}, r.Variant...)
}

// CanonicalizeVariant maps value onto the declared spelling of a Variant entry.
// Matching is case-insensitive; with Autofill an entry that starts with value
// also matches. The first qualifying entry in declared order wins.
func (r *Rule) CanonicalizeVariant(value string) (string, error) {
	if len(r.Variant) == 0 {
		return value, nil
	}

	lvalue := fold(value)
	candidates := r.VariantCandidates()
	for _, candidate := range candidates {
		lcandidate := fold(candidate)
		if r.Autofill && strings.HasPrefix(lcandidate, lvalue) {
			return candidate, nil
		}
		if lcandidate == lvalue {
			return candidate, nil
		}
	}

	return "", &ValidationError{Column: r.Name, Value: value, Allowed: candidates}
}

// Value is a column value after type coercion.
type Value struct {
	Type TypeTag
	Text string
	Int  int
	Bool bool
}

// String returns the canonical stored text of the value.
func (v Value) String() string {
	switch v.Type {
	case Int:
		return strconv.Itoa(v.Int)
	case Bool:
		return formatBool(v.Bool)
	default:
		return v.Text
	}
}

// Truthy reports whether the value counts as set: non-zero for Int, the flag
// for Bool and the boolean reading of the text otherwise.
func (v Value) Truthy() bool {
	switch v.Type {
	case Int:
		return v.Int != 0
	case Bool:
		return v.Bool
	default:
		return truthy(v.Text)
	}
}

// CoerceType converts value according to the rule's Type.
// Int values that do not parse fail with TypeMismatchError; Bool never fails.
func (r *Rule) CoerceType(value string) (Value, error) {
	switch r.Type {
	case Int:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return Value{}, &TypeMismatchError{Column: r.Name, Type: Int, Value: value}
		}
		return Value{Type: Int, Text: value, Int: n}, nil
	case Bool:
		return Value{Type: Bool, Text: value, Bool: truthy(value)}, nil
	default:
		return Value{Type: Untyped, Text: value}, nil
	}
}

// Normalize runs value through ApplyDefault, CanonicalizeVariant and CoerceType
// and returns the text to store.
func (r *Rule) Normalize(value string) (string, error) {
	value = r.ApplyDefault(value)

	value, err := r.CanonicalizeVariant(value)
	if err != nil {
		return "", err
	}

	typed, err := r.CoerceType(value)
	if err != nil {
		return "", err
	}
	return typed.String(), nil
}

// truthy treats "FALSE", "False", "false", "0" and "" as false.
func truthy(s string) bool {
	switch s {
	case "FALSE", "False", "false", "0", "":
		return false
	default:
		return true
	}
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func parseWidth(s string) int {
	if s == "" {
		return 0
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// splitList splits a "|"-joined list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseColours(s string) []ColourPair {
	var pairs []ColourPair
	for _, entry := range splitList(s) {
		pattern, spec, _ := strings.Cut(entry, "=")
		pairs = append(pairs, ColourPair{Pattern: pattern, Spec: spec})
	}
	return pairs
}

func formatColours(pairs []ColourPair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.Pattern + "=" + p.Spec
	}
	return strings.Join(parts, "|")
}
