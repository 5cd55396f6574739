package queue

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Section markers of the task queue file.
const (
	ConfigBegin      = "# BEGIN CONFIG"
	ConfigEnd        = "# END CONFIG"
	ConstraintsBegin = "# BEGIN CONSTRAINTS"
	ConstraintsEnd   = "# END CONSTRAINTS"
)

// DefaultPath is the task queue file used when no path is configured.
const DefaultPath = "taskqueue.csv"

// Encode writes c as a three-section CSV document: config, constraints, then
// the column-name row followed by one row per record. All markers are written
// even when a section is empty.
func Encode(w io.Writer, c *Collection) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	rows := [][]string{{ConfigBegin}, ConfigHeaders}
	for _, e := range c.Config {
		rows = append(rows, e.Serialize())
	}
	rows = append(rows, []string{ConfigEnd}, []string{ConstraintsBegin}, ConstraintsHeaders)
	for _, r := range c.Rules() {
		rows = append(rows, r.Serialize())
	}
	rows = append(rows, []string{ConstraintsEnd}, c.Columns)
	for _, rec := range c.Records {
		rows = append(rows, rec.Serialize(c))
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to encode task queue: %w", err)
	}
	return nil
}

// row is a decoded CSV row with the file line it started on.
type row struct {
	cells []string
	line  int
}

func (r row) blank() bool {
	return len(r.cells) == 0 || (len(r.cells) == 1 && r.cells[0] == "")
}

func (r row) is(marker string) bool {
	return len(r.cells) > 0 && r.cells[0] == marker
}

// decoder walks the rows of a task queue file.
type decoder struct {
	rows []row
	pos  int
}

func readRows(r io.Reader) ([]row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows []row
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &CorruptError{Line: pe.StartLine, Reason: "malformed CSV", Err: pe.Err}
			}
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, row{cells: cells, line: line})
	}
}

// seek advances past the row holding marker and returns true, or leaves the
// position unchanged and returns false if marker never appears.
func (d *decoder) seek(marker string) bool {
	for i := d.pos; i < len(d.rows); i++ {
		if d.rows[i].is(marker) {
			d.pos = i + 1
			return true
		}
	}
	return false
}

// section returns the rows between the current position and end, skipping the
// header row that follows a begin marker.
func (d *decoder) section(name, end string) ([]row, error) {
	start := d.pos
	if d.pos < len(d.rows) {
		d.pos++ // header row
	}

	var body []row
	for ; d.pos < len(d.rows); d.pos++ {
		r := d.rows[d.pos]
		if r.is(end) {
			d.pos++
			return body, nil
		}
		if !r.blank() {
			body = append(body, r)
		}
	}

	line := 0
	if start > 0 {
		line = d.rows[start-1].line
	}
	return nil, &CorruptError{Line: line, Reason: fmt.Sprintf("%s section is not terminated", name)}
}

// Decode reads a collection written by Encode. Anything before a begin marker
// is ignored. A file without a config section decodes with an empty config; a
// file without a constraints section is corrupt.
func Decode(r io.Reader) (*Collection, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	d := &decoder{rows: rows}
	c := New(nil)

	if d.seek(ConfigBegin) {
		body, err := d.section("config", ConfigEnd)
		if err != nil {
			return nil, err
		}
		for _, r := range body {
			c.Config = append(c.Config, DeserializeConfigEntry(r.cells))
		}
	}

	if !d.seek(ConstraintsBegin) {
		return nil, &CorruptError{Reason: "missing constraints section"}
	}
	body, err := d.section("constraints", ConstraintsEnd)
	if err != nil {
		return nil, err
	}
	for _, r := range body {
		rule, err := DeserializeRule(r.cells)
		if err != nil {
			return nil, &CorruptError{Line: r.line, Reason: "invalid constraint", Err: err}
		}
		c.Schema[rule.Name] = rule
	}

	if d.pos >= len(d.rows) {
		return c, nil
	}
	header := d.rows[d.pos]
	d.pos++
	seen := make(map[string]bool, len(header.cells))
	for _, col := range header.cells {
		if seen[col] {
			return nil, &CorruptError{Line: header.line, Reason: fmt.Sprintf("duplicate column %q", col)}
		}
		seen[col] = true
	}
	c.Columns = header.cells

	for ; d.pos < len(d.rows); d.pos++ {
		r := d.rows[d.pos]
		if r.blank() {
			continue
		}
		rec, err := DeserializeRecord(r.cells, c.Columns, c)
		if err != nil {
			var ce *CorruptError
			if errors.As(err, &ce) && ce.Line == 0 {
				ce.Line = r.line
			}
			return nil, err
		}
		c.AddRecord(rec)
	}
	return c, nil
}

// Load reads and decodes the task queue at path.
func Load(path string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open task queue: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Save encodes c and rewrites the file at path. Nothing is written if encoding fails.
func Save(path string, c *Collection) error {
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write task queue: %w", err)
	}
	return nil
}
