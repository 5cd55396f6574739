package filter

import (
	"testing"

	"github.com/dyluth/tqb/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) (*queue.Collection, []*queue.Record) {
	t.Helper()
	c := queue.Default()

	add := func(task, status, priority string) *queue.Record {
		rec, err := queue.NewRecord(task, c)
		require.NoError(t, err)
		require.NoError(t, rec.UpdateColumn(c, "Status", status))
		require.NoError(t, rec.UpdateColumn(c, "Priority", priority))
		c.AddRecord(rec)
		return rec
	}

	return c, []*queue.Record{
		add("BUG: crash on save", "In Progress", "High"),
		add("write docs", "Not Started", "Low"),
		add("release", "Done", "Medium"),
	}
}

func matching(t *testing.T, crit *Criteria, c *queue.Collection, recs []*queue.Record) []int {
	t.Helper()
	var ids []int
	for _, rec := range recs {
		ok, err := crit.Matches(c, rec)
		require.NoError(t, err)
		if ok {
			ids = append(ids, rec.ID)
		}
	}
	return ids
}

func TestParseClause(t *testing.T) {
	assert.Equal(t, Clause{Column: "Status", Pattern: "in"}, ParseClause("Status=in"))
	assert.Equal(t, Clause{Column: "Task", Pattern: "a=b"}, ParseClause("Task=a=b"))
	assert.Equal(t, Clause{Column: "Assignee"}, ParseClause("Assignee"))
}

func TestCriteria_Matches(t *testing.T) {
	c, recs := fixture(t)

	tests := []struct {
		name     string
		criteria Criteria
		expected []int
	}{
		{name: "no filters", criteria: Criteria{}, expected: []int{1, 2, 3}},
		{
			name:     "where variant prefix",
			criteria: Criteria{Where: ParseClauses([]string{"status=in"})},
			expected: []int{1},
		},
		{
			name:     "where is ANDed",
			criteria: Criteria{Where: ParseClauses([]string{"Priority=*", "Task=*docs"})},
			expected: []int{2},
		},
		{
			name:     "whereor is ORed",
			criteria: Criteria{WhereOr: ParseClauses([]string{"Status=done", "Task=bug:*"})},
			expected: []int{1, 3},
		},
		{
			name: "where and whereor combine",
			criteria: Criteria{
				Where:   ParseClauses([]string{"Priority=h"}),
				WhereOr: ParseClauses([]string{"Status=done", "Task=bug:*"}),
			},
			expected: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, matching(t, &tt.criteria, c, recs))
		})
	}
}

func TestCriteria_UnknownColumn(t *testing.T) {
	c, recs := fixture(t)
	crit := Criteria{Where: ParseClauses([]string{"Owner=me"})}

	_, err := crit.Matches(c, recs[0])
	var cerr *queue.ColumnNotFoundError
	require.ErrorAs(t, err, &cerr)
}

func TestExpression(t *testing.T) {
	c, recs := fixture(t)
	require.NoError(t, recs[2].UpdateColumn(c, "Archived", "true"))

	tests := []struct {
		source   string
		expected []int
	}{
		{source: `Priority == "High"`, expected: []int{1}},
		{source: `Id > 1 && !Archived`, expected: []int{2}},
		{source: `glob(Task, "BUG:*")`, expected: []int{1}},
		{source: `lower(Status) contains "start"`, expected: []int{2}},
		{source: `$env["Status"] in ["Done", "In Progress"]`, expected: []int{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			e, err := Compile(tt.source, c)
			require.NoError(t, err)
			assert.Equal(t, tt.source, e.String())

			crit := &Criteria{Expr: e}
			assert.True(t, crit.HasFilters())
			assert.Equal(t, tt.expected, matching(t, crit, c, recs))
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	c, _ := fixture(t)

	tests := []string{
		`Owner == "me"`,
		`Id + 1`,
		`Id == "one"`,
	}

	for _, source := range tests {
		t.Run(source, func(t *testing.T) {
			_, err := Compile(source, c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid filter expression")
		})
	}
}
