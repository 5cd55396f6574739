package blueprint

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dyluth/tqb/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *queue.Collection {
	t.Helper()
	c := queue.Default()
	require.NoError(t, c.Config.Add(queue.ConfigEntry{Key: queue.AliasKey, Value: "todo", Opt: "ls -w Status=not"}))
	rec, err := queue.NewRecord("ship it", c)
	require.NoError(t, err)
	c.AddRecord(rec)
	return c
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected Format
		wantErr  bool
	}{
		{in: "csv", expected: FormatCSV},
		{in: "YAML", expected: FormatYAML},
		{in: "yml", expected: FormatYAML},
		{in: "toml", expected: FormatTOML},
		{in: "json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}

	_, err := FormatOf("schema")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatCSV, FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			c := sample(t)

			var buf bytes.Buffer
			require.NoError(t, Export(&buf, c, format))

			got, err := Decode(&buf, format)
			require.NoError(t, err)

			assert.Equal(t, c.Columns, got.Columns)
			assert.Equal(t, c.Rules(), got.Rules())
			assert.Equal(t, c.Config, got.Config)
			assert.Empty(t, got.Records)
		})
	}
}

func TestExport_CSVOmitsRecords(t *testing.T) {
	c := sample(t)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, c, FormatCSV))
	assert.NotContains(t, buf.String(), "ship it")
	assert.True(t, strings.HasSuffix(buf.String(), strings.Join(c.Columns, ",")+"\r\n"))
	assert.Len(t, c.Records, 1)
}

func TestExport_YAMLLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sample(t), FormatYAML))

	text := buf.String()
	assert.Contains(t, text, "columns:\n  - Id\n")
	assert.Contains(t, text, "header_name: Status")
	assert.Contains(t, text, "role: PrimaryKey")
	assert.Contains(t, text, "- high=RED")
}

func TestDecode_YAML(t *testing.T) {
	doc := `columns: [Id, Title, Done]
rules:
  - header_name: Id
    type: int
    role: PrimaryKey
  - header_name: Done
    type: bool
    default: "False"
    colours: ["True=GREEN"]
config:
  - key: alias
    value: open
    opt: ls -w Done=false
`
	c, err := Decode(strings.NewReader(doc), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, []string{"Id", "Title", "Done"}, c.Columns)
	pk, err := c.PrimaryKeyColumn()
	require.NoError(t, err)
	assert.Equal(t, "Id", pk)

	// columns without a rule keep their empty one
	assert.Equal(t, queue.EmptyRule("Title"), c.RuleFor("Title"))
	done := c.RuleFor("Done")
	assert.Equal(t, queue.Bool, done.Type)
	assert.Equal(t, []queue.ColourPair{{Pattern: "True", Spec: "GREEN"}}, done.Colours)
	assert.Len(t, c.Config, 1)
}

func TestDecode_TOML(t *testing.T) {
	doc := `columns = ["Id", "Task", "Status"]

[[rules]]
header_name = "Status"
variant = ["Open", "Closed"]
default = "Open"
autofill = true
role = "Status"
`
	c, err := Decode(strings.NewReader(doc), FormatTOML)
	require.NoError(t, err)

	status := c.RuleFor("Status")
	assert.Equal(t, "Status", status.Name)
	assert.Equal(t, []string{"Open", "Closed"}, status.Variant)
	assert.True(t, status.Autofill)
	assert.Equal(t, queue.RoleStatus, status.Role)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		doc     string
		wantErr string
	}{
		{name: "no columns", format: FormatYAML, doc: "rules: []\n", wantErr: "no columns"},
		{name: "unknown yaml key", format: FormatYAML, doc: "columns: [Id]\ncolour: red\n", wantErr: "failed to parse blueprint YAML"},
		{name: "unknown toml key", format: FormatTOML, doc: "columns = [\"Id\"]\ncolour = \"red\"\n", wantErr: "unknown key colour"},
		{name: "bad type", format: FormatYAML, doc: "columns: [Id]\nrules:\n  - header_name: Id\n    type: float\n", wantErr: "rule Id"},
		{name: "missing header name", format: FormatTOML, doc: "columns = [\"Id\"]\n[[rules]]\ntype = \"int\"\n", wantErr: "header_name is required"},
		{name: "duplicate column", format: FormatYAML, doc: "columns: [Id, id]\n", wantErr: "already exists"},
		{name: "rule for undeclared column", format: FormatYAML, doc: "columns: [Id]\nrules:\n  - header_name: Ghost\n    role: PrimaryKey\n", wantErr: "column 'Ghost' is invalid"},
		{name: "duplicate rule", format: FormatTOML, doc: "columns = [\"Id\"]\n[[rules]]\nheader_name = \"Id\"\n[[rules]]\nheader_name = \"id\"\n", wantErr: "constraint for Id already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	c := sample(t)

	csvPath := filepath.Join(dir, "queue.csv")
	require.NoError(t, queue.Save(csvPath, c))

	loaded, err := Load(csvPath)
	require.NoError(t, err)
	assert.Equal(t, c.Columns, loaded.Columns)
	assert.Empty(t, loaded.Records)

	tomlPath := filepath.Join(dir, "schema.toml")
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, c, FormatTOML))
	require.NoError(t, os.WriteFile(tomlPath, buf.Bytes(), 0644))

	loaded, err = Load(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, c.Rules(), loaded.Rules())

	_, err = Load(filepath.Join(dir, "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
