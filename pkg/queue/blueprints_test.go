package queue

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlueprints_AreUsable(t *testing.T) {
	for _, name := range BlueprintNames() {
		t.Run(name, func(t *testing.T) {
			c, err := NewFromBlueprint(name)
			require.NoError(t, err)

			_, err = c.PrimaryKeyColumn()
			require.NoError(t, err)
			_, err = c.ArchivingColumn()
			require.NoError(t, err)

			rec, err := NewRecord("first", c)
			require.NoError(t, err)
			c.AddRecord(rec)
			assert.Equal(t, 1, rec.ID)
			archived, err := rec.IsArchived(c)
			require.NoError(t, err)
			assert.False(t, archived)

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, c))
			decoded, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, c.Schema, decoded.Schema)
		})
	}
}

func TestNewFromBlueprint_Unknown(t *testing.T) {
	_, err := NewFromBlueprint("kanban")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "development")
}

func TestBlueprintNames(t *testing.T) {
	assert.Equal(t, []string{"default", "development", "projects", "sprint", "todo"}, BlueprintNames())
}

func TestSprint(t *testing.T) {
	c := Sprint()
	sprint := c.Schema["Sprint"]
	require.Len(t, sprint.Variant, 24)
	assert.Equal(t, "H1 January", sprint.Variant[0])
	assert.Equal(t, "H2 December", sprint.Variant[23])
	assert.Equal(t, strconv.Itoa(time.Now().Year()), c.Schema["Year"].Default)
}

func TestTodo_MarkDone(t *testing.T) {
	c := Todo()
	rec, err := NewRecord("buy milk", c)
	require.NoError(t, err)
	assert.Equal(t, "False", rec.Fields["Done"])

	status, err := c.StatusColumn()
	require.NoError(t, err)
	require.NoError(t, rec.UpdateColumn(c, status, "t"))
	assert.Equal(t, "True", rec.Fields["Done"])
}

func TestFromColumns(t *testing.T) {
	t.Run("inserts id", func(t *testing.T) {
		c, err := FromColumns([]string{"Task", "Owner"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Id", "Task", "Owner"}, c.Columns)
		assert.True(t, c.Schema["Id"].AutoHeader)
		assert.Equal(t, RolePrimaryKey, c.Schema["Id"].Role)
		assert.Equal(t, Int, c.Schema["Id"].Type)
		assert.Equal(t, EmptyRule("Owner"), c.Schema["Owner"])
	})

	t.Run("keeps named id", func(t *testing.T) {
		c, err := FromColumns([]string{"Task", "ID"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Task", "ID"}, c.Columns)
		assert.False(t, c.Schema["ID"].AutoHeader)
		assert.Equal(t, RolePrimaryKey, c.Schema["ID"].Role)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := FromColumns([]string{"Task", "task"})
		var eerr *ColumnExistsError
		require.ErrorAs(t, err, &eerr)
	})
}
