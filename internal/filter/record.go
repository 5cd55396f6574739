package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dyluth/tqb/pkg/queue"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Clause is one "column=glob" filter clause.
type Clause struct {
	Column  string
	Pattern string
}

// ParseClause splits "column=glob" at the first '='. A clause without '='
// matches an empty value.
func ParseClause(s string) Clause {
	column, pattern, _ := strings.Cut(s, "=")
	return Clause{Column: column, Pattern: pattern}
}

// ParseClauses parses every clause in order.
func ParseClauses(ss []string) []Clause {
	clauses := make([]Clause, len(ss))
	for i, s := range ss {
		clauses[i] = ParseClause(s)
	}
	return clauses
}

// Criteria defines filtering criteria for records.
// Where clauses are ANDed, WhereOr clauses are ORed, and the expression must
// also hold: a record must pass all three groups.
type Criteria struct {
	Where   []Clause    // every clause must match, empty = no filter
	WhereOr []Clause    // at least one clause must match, empty = no filter
	Expr    *Expression // boolean expression, nil = no filter
}

// Matches returns true if the record matches all filter criteria.
// Unknown columns and values outside a column's Variant are errors.
func (c *Criteria) Matches(col *queue.Collection, rec *queue.Record) (bool, error) {
	for _, clause := range c.Where {
		ok, err := rec.Matches(col, clause.Column, clause.Pattern)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	if len(c.WhereOr) > 0 {
		matched := false
		for _, clause := range c.WhereOr {
			ok, err := rec.Matches(col, clause.Column, clause.Pattern)
			if err != nil {
				return false, err
			}
			if ok {
				matched = true
				break
			}
		}
		if !matched {
			return false, nil
		}
	}

	if c.Expr != nil {
		return c.Expr.Eval(col, rec)
	}
	return true, nil
}

// HasFilters returns true if any filters are active.
func (c *Criteria) HasFilters() bool {
	return len(c.Where) > 0 || len(c.WhereOr) > 0 || c.Expr != nil
}

// Expression is a compiled boolean filter over a record's columns, e.g.
//
//	Priority == "High" && !Archived
//	Id > 10 && glob(Task, "bug:*")
//	$env["Due Date"] != ""
//
// Int columns are ints, Bool columns are bools and every other column is a string.
type Expression struct {
	source  string
	program *vm.Program
}

// Compile type-checks source against the columns of c.
func Compile(source string, c *queue.Collection) (*Expression, error) {
	program, err := expr.Compile(source,
		expr.Env(sampleEnv(c)),
		expr.AsBool(),
		expr.Function("glob", func(params ...any) (any, error) {
			return queue.MatchGlob(params[1].(string), params[0].(string)), nil
		}, new(func(string, string) bool)),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return &Expression{source: source, program: program}, nil
}

// String returns the expression source.
func (e *Expression) String() string {
	return e.source
}

// Eval runs the expression against one record.
func (e *Expression) Eval(c *queue.Collection, rec *queue.Record) (bool, error) {
	out, err := expr.Run(e.program, recordEnv(c, rec))
	if err != nil {
		return false, fmt.Errorf("filter %q: %w", e.source, err)
	}
	result, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q: result is %T, not bool", e.source, out)
	}
	return result, nil
}

// sampleEnv declares every column with the zero value of its type.
func sampleEnv(c *queue.Collection) map[string]any {
	env := make(map[string]any, len(c.Columns))
	for _, col := range c.Columns {
		switch c.RuleFor(col).Type {
		case queue.Int:
			env[col] = 0
		case queue.Bool:
			env[col] = false
		default:
			env[col] = ""
		}
	}
	return env
}

// recordEnv converts a record's stored text to typed values. Int values that
// do not parse evaluate as 0.
func recordEnv(c *queue.Collection, rec *queue.Record) map[string]any {
	env := make(map[string]any, len(c.Columns))
	for _, col := range c.Columns {
		text := rec.Fields[col]
		switch c.RuleFor(col).Type {
		case queue.Int:
			n, _ := strconv.Atoi(strings.TrimSpace(text))
			env[col] = n
		case queue.Bool:
			v, _ := c.RuleFor(col).CoerceType(text)
			env[col] = v.Bool
		default:
			env[col] = text
		}
	}
	return env
}
