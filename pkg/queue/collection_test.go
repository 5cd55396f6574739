package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populated(t *testing.T, descriptions ...string) *Collection {
	t.Helper()
	c := Default()
	for _, d := range descriptions {
		rec, err := NewRecord(d, c)
		require.NoError(t, err)
		c.AddRecord(rec)
	}
	return c
}

func TestResolveColumn(t *testing.T) {
	c := Default()

	col, ok := c.ResolveColumn("priority")
	require.True(t, ok)
	assert.Equal(t, "Priority", col)

	_, ok = c.ResolveColumn("prio")
	assert.False(t, ok)

	_, err := c.MustResolveColumn("prio")
	var cerr *ColumnNotFoundError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "column 'prio' is invalid", err.Error())
}

func TestRoleLookups(t *testing.T) {
	c := Default()

	pk, err := c.PrimaryKeyColumn()
	require.NoError(t, err)
	assert.Equal(t, "Id", pk)

	status, err := c.StatusColumn()
	require.NoError(t, err)
	assert.Equal(t, "Status", status)

	archive, err := c.ArchivingColumn()
	require.NoError(t, err)
	assert.Equal(t, "Archived", archive)

	desc, err := c.DescriptionColumn()
	require.NoError(t, err)
	assert.Equal(t, "Task", desc)

	bare := New([]string{"Id"})
	_, err = bare.StatusColumn()
	var rerr *RoleNotConfiguredError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "could not find Status column, create it with 'tqb constraint alter [column] Role=Status'", err.Error())

	// without a primary key rule, Id is the first non-key column
	desc, err = bare.DescriptionColumn()
	require.NoError(t, err)
	assert.Equal(t, "Id", desc)

	_, err = New(nil).DescriptionColumn()
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, RoleDescription, rerr.Role)
}

func TestRoleLookup_IgnoresUndeclaredColumns(t *testing.T) {
	c := New([]string{"Task"}, &Rule{Name: "Ghost", Type: Int, Role: RolePrimaryKey})

	_, err := c.PrimaryKeyColumn()
	var rerr *RoleNotConfiguredError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, RolePrimaryKey, rerr.Role)

	_, err = NewRecord("orphan", c)
	require.ErrorAs(t, err, &rerr)
}

func TestRoleLookup_FirstInColumnOrder(t *testing.T) {
	c := New([]string{"B", "A"},
		&Rule{Name: "A", Role: RoleStatus},
		&Rule{Name: "B", Role: RoleStatus},
	)

	col, err := c.StatusColumn()
	require.NoError(t, err)
	assert.Equal(t, "B", col)
}

func TestDisplayColumns_Hidden(t *testing.T) {
	c := Todo()
	rec, err := NewRecord("buy milk", c)
	require.NoError(t, err)
	c.AddRecord(rec)

	assert.Equal(t, []string{"Id", "Task", "Done"}, c.DisplayColumns())
	assert.Contains(t, c.Columns, "Archived")
	assert.Len(t, rec.Serialize(c), 4)
}

func TestColumnWidths(t *testing.T) {
	c := New([]string{"Id", "Task"}, &Rule{Name: "Task", ColWidth: 20})
	assert.Equal(t, []int{20, 0}, c.ColumnWidths([]string{"Task", "Id"}))
}

func TestAddColumn(t *testing.T) {
	c := populated(t, "one", "two")

	require.NoError(t, c.AddColumn("Due"))
	assert.Equal(t, "Due", c.Columns[len(c.Columns)-1])
	for _, rec := range c.Records {
		v, ok := rec.Fields["Due"]
		assert.True(t, ok)
		assert.Equal(t, "", v)
	}
	assert.Equal(t, EmptyRule("Due"), c.Schema["Due"])

	err := c.AddColumn("due")
	var eerr *ColumnExistsError
	require.ErrorAs(t, err, &eerr)
}

func TestMoveColumn(t *testing.T) {
	tests := []struct {
		name     string
		column   string
		index    int
		expected []string
	}{
		{name: "to front", column: "C", index: 0, expected: []string{"C", "A", "B"}},
		{name: "to middle", column: "A", index: 1, expected: []string{"B", "A", "C"}},
		{name: "past end clamps", column: "A", index: 10, expected: []string{"B", "C", "A"}},
		{name: "negative counts from end", column: "A", index: -1, expected: []string{"B", "A", "C"}},
		{name: "far negative clamps", column: "C", index: -10, expected: []string{"C", "A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New([]string{"A", "B", "C"})
			require.NoError(t, c.MoveColumn(tt.column, tt.index))
			assert.Equal(t, tt.expected, c.Columns)
		})
	}

	c := New([]string{"A"})
	assert.Error(t, c.MoveColumn("Z", 0))
}

func TestRenameColumn(t *testing.T) {
	c := populated(t, "one")

	require.NoError(t, c.RenameColumn("priority", "Urgency"))
	assert.Contains(t, c.Columns, "Urgency")
	assert.NotContains(t, c.Columns, "Priority")
	assert.Equal(t, "Low", c.Records[0].Fields["Urgency"])
	_, stale := c.Records[0].Fields["Priority"]
	assert.False(t, stale)
	require.Contains(t, c.Schema, "Urgency")
	assert.Equal(t, "Urgency", c.Schema["Urgency"].Name)

	err := c.RenameColumn("Urgency", "status")
	var eerr *ColumnExistsError
	require.ErrorAs(t, err, &eerr)

	require.NoError(t, c.RenameColumn("Urgency", "urgency"))
	assert.Contains(t, c.Columns, "urgency")
}

func TestRemoveColumn(t *testing.T) {
	c := populated(t, "one")

	require.NoError(t, c.RemoveColumn("Priority"))
	assert.NotContains(t, c.Columns, "Priority")
	assert.NotContains(t, c.Schema, "Priority")
	_, ok := c.Records[0].Fields["Priority"]
	assert.False(t, ok)

	assert.Error(t, c.RemoveColumn("Priority"))
}

func TestRecords(t *testing.T) {
	c := populated(t, "one", "two", "three")

	rec, ok := c.FindRecord(2)
	require.True(t, ok)
	assert.Equal(t, "two", rec.Fields["Task"])

	removed, err := c.RemoveRecord(2)
	require.NoError(t, err)
	assert.Same(t, rec, removed)

	_, err = c.MustFindRecord(2)
	var rerr *RecordNotFoundError
	require.ErrorAs(t, err, &rerr)
	assert.True(t, IsNotFound(err))

	_, err = c.RemoveRecord(2)
	assert.Error(t, err)
	assert.Equal(t, 4, c.NextID())
}

func TestRules(t *testing.T) {
	c := New([]string{"Id", "Task"}, EmptyRule("Zeta"), EmptyRule("Task"), EmptyRule("Alpha"))

	var names []string
	for _, r := range c.Rules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Task", "Alpha", "Zeta"}, names)
}

func TestAddRemoveRule(t *testing.T) {
	c := New([]string{"Id", "Task"})

	require.NoError(t, c.AddRule(EmptyRule("Task")))
	err := c.AddRule(EmptyRule("Task"))
	var eerr *RuleExistsError
	require.ErrorAs(t, err, &eerr)

	err = c.AddRule(&Rule{Name: "Ghost", Type: Int, Role: RolePrimaryKey})
	var cerr *ColumnNotFoundError
	require.ErrorAs(t, err, &cerr)
	assert.NotContains(t, c.Schema, "Ghost")

	require.NoError(t, c.AddRule(EmptyRule("id")))
	assert.Equal(t, "Id", c.Schema["Id"].Name)

	require.NoError(t, c.RemoveRule("Task"))
	err = c.RemoveRule("Task")
	var nerr *RuleNotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, EmptyRule("Task"), c.RuleFor("Task"))
}

func TestAlterRule(t *testing.T) {
	c := Default()

	require.NoError(t, c.AlterRule("Priority", []FieldValue{
		{Field: FieldColWidth, Value: "8"},
		{Field: FieldHide, Value: "true"},
	}))
	assert.Equal(t, 8, c.Schema["Priority"].ColWidth)
	assert.True(t, c.Schema["Priority"].Hide)

	err := c.AlterRule("Priority", []FieldValue{{Field: FieldHeaderName, Value: "Urgency"}})
	assert.ErrorIs(t, err, ErrImmutableField)

	t.Run("invalid assignment leaves rule untouched", func(t *testing.T) {
		err := c.AlterRule("Priority", []FieldValue{
			{Field: FieldDefault, Value: "High"},
			{Field: FieldType, Value: "float"},
		})
		require.Error(t, err)
		assert.Equal(t, "Low", c.Schema["Priority"].Default)
	})

	err = c.AlterRule("Missing", nil)
	var nerr *RuleNotFoundError
	require.ErrorAs(t, err, &nerr)
}

func TestAppendToListField(t *testing.T) {
	c := Default()

	require.NoError(t, c.AppendToListField("Priority", FieldVariant, []string{"Urgent", "Someday|Never"}))
	assert.Equal(t, []string{"High", "Medium", "Low", "Urgent", "Someday", "Never"}, c.Schema["Priority"].Variant)

	c.Schema["Assignee"] = EmptyRule("Assignee")
	require.NoError(t, c.AppendToListField("Assignee", FieldColours, []string{"me=GREEN"}))
	assert.Equal(t, "me=GREEN", c.Schema["Assignee"].Field(FieldColours))

	err := c.AppendToListField("Priority", FieldDefault, []string{"x"})
	var uerr *UnknownRuleFieldError
	require.ErrorAs(t, err, &uerr)
}
