package listing

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dyluth/tqb/internal/printer"
	"github.com/dyluth/tqb/pkg/queue"
)

// Banner is printed above every task table.
const Banner = "TASK QUEUE ^_^"

// FormatTable writes the listed records as a table framed by banners.
func FormatTable(p *printer.Printer, c *queue.Collection, res *Result) error {
	opts := queue.RenderOptions{Colour: p.Options().Colour}
	rows := make([][]string, 0, len(res.Records))
	for _, rec := range res.Records {
		rows = append(rows, rec.DisplayRow(c, res.Columns, opts))
	}

	return p.Table(printer.Table{
		Header: res.Columns,
		Rows:   rows,
		Before: []string{Banner},
		After:  []string{res.Summary()},
	})
}

// FormatRecords writes a table of records with an indent marker followed by
// the after banners, as used by add, update, mark and friends.
func FormatRecords(p *printer.Printer, c *queue.Collection, records []*queue.Record, indent printer.Indent, after ...string) error {
	columns := c.DisplayColumns()
	opts := queue.RenderOptions{Colour: p.Options().Colour}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.DisplayRow(c, columns, opts))
	}
	return p.Table(printer.Table{Header: columns, Rows: rows, Indent: indent, After: after})
}

// FormatIDs writes the primary keys of records on one line.
func FormatIDs(w io.Writer, records []*queue.Record) {
	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = strconv.Itoa(rec.ID)
	}
	fmt.Fprintln(w, strings.Join(ids, " "))
}

// FormatJSONL writes records as line-delimited JSON (JSONL) to the provided writer.
// Each record is a single JSON object of its displayed columns.
func FormatJSONL(w io.Writer, columns []string, records []*queue.Record) error {
	for _, rec := range records {
		data, err := json.Marshal(fieldsOf(rec, columns))
		if err != nil {
			return fmt.Errorf("failed to marshal record %d to JSON: %w", rec.ID, err)
		}

		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write JSON output: %w", err)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatSingleJSON writes one record, every column, as pretty-printed JSON.
func FormatSingleJSON(w io.Writer, c *queue.Collection, rec *queue.Record) error {
	data, err := json.MarshalIndent(fieldsOf(rec, c.Columns), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record %d to JSON: %w", rec.ID, err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

func fieldsOf(rec *queue.Record, columns []string) map[string]string {
	fields := make(map[string]string, len(columns))
	for _, col := range columns {
		fields[col] = rec.Fields[col]
	}
	return fields
}
