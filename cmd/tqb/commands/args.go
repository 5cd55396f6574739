package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dyluth/tqb/pkg/queue"
)

// parseIDs converts task id arguments.
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, len(args))
	for i, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid task id '%s': must be a number", arg)
		}
		ids[i] = id
	}
	return ids, nil
}

// parseFieldValues parses FIELD=VALUE rule assignments. Field names are
// matched case-insensitively against the constraints header.
func parseFieldValues(args []string) ([]queue.FieldValue, error) {
	values := make([]queue.FieldValue, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid property '%s': expected FIELD=VALUE", arg)
		}
		field, err := queue.ParseRuleField(name)
		if err != nil {
			return nil, err
		}
		values = append(values, queue.FieldValue{Field: field, Value: value})
	}
	return values, nil
}

// ruleName resolves a constraint target to a declared column where one
// matches, so constraints follow the column's spelling.
func ruleName(c *queue.Collection, name string) string {
	if col, ok := c.ResolveColumn(name); ok {
		return col
	}
	return name
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func joinIDs(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}
