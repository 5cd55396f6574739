// Package blueprint reads and writes task queue schemas as standalone files.
//
// A blueprint is the column order, constraints and config of a queue without
// its records. It can be stored as YAML, TOML or as the CSV task queue format
// itself, and is used by `tqb create --from` and `tqb blueprint --format`.
package blueprint

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dyluth/tqb/pkg/queue"
	"gopkg.in/yaml.v3"
)

// Format is a blueprint file encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("invalid blueprint format %q: must be 'csv', 'yaml' or 'toml'", s)
}

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer blueprint format of %s: no file extension", path)
	}
	return ParseFormat(ext)
}

// Rule is one constraint row. Field names follow the constraints header.
type Rule struct {
	HeaderName string   `yaml:"header_name" toml:"header_name"`
	Type       string   `yaml:"type,omitempty" toml:"type,omitempty"`
	Variant    []string `yaml:"variant,omitempty" toml:"variant,omitempty"`
	Default    string   `yaml:"default,omitempty" toml:"default,omitempty"`
	ColWidth   int      `yaml:"col_width,omitempty" toml:"col_width,omitempty"`
	Colours    []string `yaml:"colours,omitempty" toml:"colours,omitempty"` // pattern=COLOUR
	Role       string   `yaml:"role,omitempty" toml:"role,omitempty"`
	Autofill   bool     `yaml:"autofill,omitempty" toml:"autofill,omitempty"`
	Hide       bool     `yaml:"hide,omitempty" toml:"hide,omitempty"`
	AutoHeader bool     `yaml:"auto_header,omitempty" toml:"auto_header,omitempty"`
}

// Entry is one config row.
type Entry struct {
	Key   string `yaml:"key" toml:"key"`
	Value string `yaml:"value" toml:"value"`
	Opt   string `yaml:"opt,omitempty" toml:"opt,omitempty"`
}

// File is the document form of a blueprint.
type File struct {
	Columns []string `yaml:"columns" toml:"columns"`
	Rules   []Rule   `yaml:"rules,omitempty" toml:"rules,omitempty"`
	Config  []Entry  `yaml:"config,omitempty" toml:"config,omitempty"`
}

// FromCollection captures the schema and config of c.
func FromCollection(c *queue.Collection) *File {
	f := &File{Columns: append([]string(nil), c.Columns...)}

	for _, r := range c.Rules() {
		if _, ok := c.ResolveColumn(r.Name); !ok {
			continue
		}
		var colours []string
		for _, pair := range r.Colours {
			colours = append(colours, pair.Pattern+"="+pair.Spec)
		}
		f.Rules = append(f.Rules, Rule{
			HeaderName: r.Name,
			Type:       r.Field(queue.FieldType),
			Variant:    append([]string(nil), r.Variant...),
			Default:    r.Default,
			ColWidth:   r.ColWidth,
			Colours:    colours,
			Role:       string(r.Role),
			Autofill:   r.Autofill,
			Hide:       r.Hide,
			AutoHeader: r.AutoHeader,
		})
	}

	for _, e := range c.Config {
		f.Config = append(f.Config, Entry{Key: e.Key, Value: e.Value, Opt: e.Opt})
	}
	return f
}

// ToCollection builds an empty collection from the document.
func (f *File) ToCollection() (*queue.Collection, error) {
	if len(f.Columns) == 0 {
		return nil, fmt.Errorf("blueprint declares no columns")
	}

	c := queue.New(nil)
	for _, col := range f.Columns {
		if err := c.AddColumn(col); err != nil {
			return nil, err
		}
	}

	// every declared column starts with an empty rule; a rule in the
	// document replaces it, but only once per column
	declared := make(map[string]bool, len(f.Rules))
	for i, spec := range f.Rules {
		if spec.HeaderName == "" {
			return nil, fmt.Errorf("rule %d: header_name is required", i+1)
		}
		col, err := c.MustResolveColumn(spec.HeaderName)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", spec.HeaderName, err)
		}
		if declared[col] {
			return nil, &queue.RuleExistsError{Name: col}
		}
		declared[col] = true

		r, err := queue.RuleFromOptions(col, spec.options())
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", spec.HeaderName, err)
		}
		c.Schema[col] = r
	}

	for _, e := range f.Config {
		if err := c.Config.Add(queue.ConfigEntry{Key: e.Key, Value: e.Value, Opt: e.Opt}); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (r Rule) options() map[queue.RuleField]string {
	opts := map[queue.RuleField]string{
		queue.FieldType:       r.Type,
		queue.FieldVariant:    strings.Join(r.Variant, "|"),
		queue.FieldDefault:    r.Default,
		queue.FieldColours:    strings.Join(r.Colours, "|"),
		queue.FieldRole:       r.Role,
		queue.FieldAutofill:   fmt.Sprint(r.Autofill),
		queue.FieldHide:       fmt.Sprint(r.Hide),
		queue.FieldAutoHeader: fmt.Sprint(r.AutoHeader),
	}
	if r.ColWidth > 0 {
		opts[queue.FieldColWidth] = fmt.Sprint(r.ColWidth)
	}
	return opts
}

// Load reads a blueprint file, choosing the decoder by extension.
// Records in a CSV task queue are dropped.
func Load(path string) (*queue.Collection, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	if format == FormatCSV {
		c, err := queue.Load(path)
		if err != nil {
			return nil, err
		}
		c.Records = nil
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint: %w", err)
	}
	return Decode(bytes.NewReader(data), format)
}

// Decode parses a YAML or TOML blueprint. Unknown keys are rejected.
func Decode(r io.Reader, format Format) (*queue.Collection, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse blueprint YAML: %w", err)
		}
	case FormatTOML:
		meta, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse blueprint TOML: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse blueprint TOML: unknown key %s", undecoded[0])
		}
	case FormatCSV:
		c, err := queue.Decode(r)
		if err != nil {
			return nil, err
		}
		c.Records = nil
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported blueprint format %q", format)
	}
	return f.ToCollection()
}

// Export writes the schema and config of c, without records.
func Export(w io.Writer, c *queue.Collection, format Format) error {
	switch format {
	case FormatCSV:
		schema := *c
		schema.Records = nil
		return queue.Encode(w, &schema)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(FromCollection(c)); err != nil {
			return fmt.Errorf("failed to encode blueprint YAML: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(FromCollection(c)); err != nil {
			return fmt.Errorf("failed to encode blueprint TOML: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported blueprint format %q", format)
}
