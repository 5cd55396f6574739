package queue

import (
	"errors"
	"fmt"
	"strings"
)

// ErrImmutableField is returned when a caller tries to alter a rule's HeaderName.
// Column renames go through Collection.RenameColumn so records and schema stay aligned.
var ErrImmutableField = errors.New("HeaderName cannot be altered, rename the column instead")

// ColumnNotFoundError indicates a column name did not resolve against the collection.
type ColumnNotFoundError struct {
	Name string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column '%s' is invalid", e.Name)
}

// ColumnExistsError indicates a column add or rename collided with an existing column.
type ColumnExistsError struct {
	Name string
}

func (e *ColumnExistsError) Error() string {
	return fmt.Sprintf("column named %s already exists", e.Name)
}

// RecordNotFoundError indicates no record carries the requested id.
type RecordNotFoundError struct {
	ID int
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("could not find task with id %d", e.ID)
}

// ValidationError indicates a value was rejected by a column's Variant set.
type ValidationError struct {
	Column  string
	Value   string
	Allowed []string
}

func (e *ValidationError) Error() string {
	quoted := make([]string, len(e.Allowed))
	for i, a := range e.Allowed {
		quoted[i] = fmt.Sprintf("'%s'", a)
	}
	return fmt.Sprintf("value \"%s\" is not allowed on column %s (must be one of [%s])",
		e.Value, e.Column, strings.Join(quoted, ", "))
}

// TypeMismatchError indicates a value could not be coerced to the column's type.
type TypeMismatchError struct {
	Column string
	Type   TypeTag
	Value  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("value \"%s\" is not a valid %s for column %s", e.Value, e.Type, e.Column)
}

// RoleNotConfiguredError indicates no column carries a role the operation needs.
// Remediation holds the command that fixes the schema.
type RoleNotConfiguredError struct {
	Role        Role
	Remediation string
}

func (e *RoleNotConfiguredError) Error() string {
	return fmt.Sprintf("could not find %s column, create it with '%s'", e.Role, e.Remediation)
}

// RuleExistsError indicates a constraint was added for a column that already has one.
type RuleExistsError struct {
	Name string
}

func (e *RuleExistsError) Error() string {
	return fmt.Sprintf("constraint for %s already exists", e.Name)
}

// RuleNotFoundError indicates no constraint is declared for a column.
type RuleNotFoundError struct {
	Name string
}

func (e *RuleNotFoundError) Error() string {
	return fmt.Sprintf("constraint with HeaderName %s could not be found", e.Name)
}

// UnknownRuleFieldError indicates a rule attribute name outside ConstraintsHeaders,
// or a field that cannot be used for the requested operation.
type UnknownRuleFieldError struct {
	Field  string
	Reason string
}

func (e *UnknownRuleFieldError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("rule field '%s' %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("unknown rule field '%s' (must be one of %s)", e.Field, strings.Join(ConstraintsHeaders, ", "))
}

// InvalidRuleValueError indicates a rule attribute value outside its closed set,
// such as an unknown Type tag or Role.
type InvalidRuleValueError struct {
	Field RuleField
	Value string
}

func (e *InvalidRuleValueError) Error() string {
	return fmt.Sprintf("invalid %s '%s'", e.Field, e.Value)
}

// DuplicateConfigError indicates a config entry with the same key and value exists.
type DuplicateConfigError struct {
	Key   string
	Value string
}

func (e *DuplicateConfigError) Error() string {
	return fmt.Sprintf("config entry %s=%s already exists", e.Key, e.Value)
}

// CorruptError indicates the task queue file could not be decoded.
// Corruption is fatal: the file must be repaired by hand.
type CorruptError struct {
	Line   int // 1-based line in the file, 0 when unknown
	Reason string
	Err    error
}

func (e *CorruptError) Error() string {
	msg := e.Reason
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return "corrupt task queue: " + msg
}

// Unwrap returns the underlying error.
func (e *CorruptError) Unwrap() error {
	return e.Err
}

// IsCorrupt reports whether err is, or wraps, a CorruptError.
func IsCorrupt(err error) bool {
	var ce *CorruptError
	return errors.As(err, &ce)
}

// IsNotFound reports whether err means a column, record or rule does not exist.
func IsNotFound(err error) bool {
	var (
		col  *ColumnNotFoundError
		rec  *RecordNotFoundError
		rule *RuleNotFoundError
	)
	return errors.As(err, &col) || errors.As(err, &rec) || errors.As(err, &rule)
}
