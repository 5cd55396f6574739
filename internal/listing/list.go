// Package listing selects, orders and formats records for the ls command.
package listing

import (
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/dyluth/tqb/internal/filter"
	"github.com/dyluth/tqb/pkg/queue"
)

// OutputFormat specifies how to format the record list output.
type OutputFormat string

const (
	// OutputFormatTable renders a coloured table with banners
	OutputFormatTable OutputFormat = "table"

	// OutputFormatIDs prints the primary keys, space separated
	OutputFormatIDs OutputFormat = "ids"

	// OutputFormatJSON outputs complete records as line-delimited JSON
	OutputFormatJSON OutputFormat = "json"
)

// ParseOutputFormat validates a --format value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputFormatTable, OutputFormatIDs, OutputFormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("invalid format %q: must be 'table', 'ids' or 'json'", s)
}

// FallbackLimit caps the listing when the terminal height is unknown.
const FallbackLimit = 10

// Limit returns the default row cap for a terminal of the given height.
func Limit(height int) int {
	if height <= 0 {
		return FallbackLimit
	}
	return max(height/2-3, 2)
}

// Options controls which records List returns and in what order.
type Options struct {
	// Columns to display; empty means every non-hidden column.
	Columns []string
	// Sort orders by this column, descending, before the newest-first reversal.
	Sort string
	// Oldest keeps creation order instead of newest first.
	Oldest bool
	// All includes archived records and disables truncation.
	All        bool
	NoTruncate bool
	// Limit caps the number of rows; 0 means Limit(0).
	Limit    int
	Criteria *filter.Criteria
}

// Result is the outcome of List. Total counts records after filtering.
type Result struct {
	Columns   []string
	Records   []*queue.Record
	Total     int
	Truncated bool
}

// Summary is the banner shown under a table.
func (r *Result) Summary() string {
	if r.Truncated {
		return fmt.Sprintf("output truncated to %d of %d entries", len(r.Records), r.Total)
	}
	noun := "tasks"
	if r.Total == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%d %s", r.Total, noun)
}

// List applies archiving, filters, ordering and truncation to the records of c.
// Filtering happens before truncation so the cap counts only matching records.
func List(c *queue.Collection, opts Options) (*Result, error) {
	columns, err := resolveColumns(c, opts.Columns)
	if err != nil {
		return nil, err
	}

	var records []*queue.Record
	for _, rec := range c.Records {
		if !opts.All {
			archived, err := rec.IsArchived(c)
			if err != nil {
				return nil, err
			}
			if archived {
				continue
			}
		}
		if opts.Criteria != nil {
			ok, err := opts.Criteria.Matches(c, rec)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		records = append(records, rec)
	}

	if opts.Sort != "" {
		if err := sortRecords(c, records, opts.Sort); err != nil {
			return nil, err
		}
	}
	if !opts.Oldest {
		slices.Reverse(records)
	}

	result := &Result{Columns: columns, Records: records, Total: len(records)}
	if opts.All || opts.NoTruncate {
		return result, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = Limit(0)
	}
	if len(records) > limit {
		result.Records = records[:limit]
		result.Truncated = true
	}
	return result, nil
}

func resolveColumns(c *queue.Collection, names []string) ([]string, error) {
	if len(names) == 0 {
		return c.DisplayColumns(), nil
	}
	columns := make([]string, 0, len(names))
	for _, name := range names {
		col, err := c.MustResolveColumn(name)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}
	return columns, nil
}

// sortRecords orders records by column, descending. Int columns compare numerically.
func sortRecords(c *queue.Collection, records []*queue.Record, name string) error {
	col, err := c.MustResolveColumn(name)
	if err != nil {
		return err
	}

	numeric := c.RuleFor(col).Type == queue.Int
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Fields[col], records[j].Fields[col]
		if numeric {
			ai, aerr := strconv.Atoi(a)
			bi, berr := strconv.Atoi(b)
			if aerr == nil && berr == nil {
				return ai > bi
			}
		}
		return a > b
	})
	return nil
}
