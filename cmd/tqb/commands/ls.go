package commands

import (
	"github.com/dyluth/tqb/internal/filter"
	"github.com/dyluth/tqb/internal/listing"
	"github.com/dyluth/tqb/internal/printer"
	"github.com/spf13/cobra"
)

var (
	lsHeader     bool
	lsOldest     bool
	lsAll        bool
	lsSort       string
	lsNoTruncate bool
	lsWhere      []string
	lsWhereOr    []string
	lsFilter     string
	lsIDs        bool
	lsFormat     string
)

var lsCmd = &cobra.Command{
	Use:   "ls [COLUMNS...]",
	Short: "Display the task queue",
	Long: `Display tasks, newest first.

Archived tasks are hidden unless --all is given. Output is capped to half the
terminal height (or the 'truncate' setting) unless --all or --notruncate is
given; filters are applied before the cap.

Filters:
  --where   col=glob  every clause must match (repeatable)
  --whereor col=glob  at least one clause must match (repeatable)
  --filter  expr      an expression over the columns, e.g.
                      'Priority == "High" && !Archived'
                      'glob(Task, "BUG:*") || Id > 40'

A clause on a Variant column accepts a prefix of an allowed value
("Status=in" matches "In Progress") unless it contains a wildcard.

Output Formats:
  table - coloured table (default)
  ids   - space separated task ids, same as --ids
  json  - line-delimited JSON, one task per line`,
	Aliases: []string{"list"},
	RunE:    runLs,
}

func init() {
	flags := lsCmd.Flags()
	flags.BoolVar(&lsHeader, "header", false, "just display the header")
	flags.BoolVarP(&lsOldest, "oldest", "o", false, "display older tasks first")
	flags.BoolVarP(&lsAll, "all", "a", false, "display archived tasks and do not truncate")
	flags.StringVarP(&lsSort, "sort", "s", "", "sort by column")
	flags.BoolVar(&lsNoTruncate, "notruncate", false, "do not truncate output")
	flags.StringArrayVarP(&lsWhere, "where", "w", nil, "column=glob filter clause (all must pass)")
	flags.StringArrayVar(&lsWhereOr, "whereor", nil, "column=glob filter clause (one must pass)")
	flags.StringVar(&lsFilter, "filter", "", "filter expression")
	flags.BoolVar(&lsIDs, "ids", false, "only output task ids")
	flags.StringVar(&lsFormat, "format", string(listing.OutputFormatTable), "output format: table, ids or json")
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	format, err := listing.ParseOutputFormat(lsFormat)
	if err != nil {
		return a.report(err)
	}
	if lsIDs {
		format = listing.OutputFormatIDs
	}

	c, err := a.load()
	if err != nil {
		return err
	}

	if lsHeader {
		header := c.DisplayColumns()
		if len(args) > 0 {
			header = args
		}
		return a.printer.Table(printer.Table{
			Header: header,
			Before: []string{"TASK QUEUE"},
			After:  []string{"displaying only headers"},
		})
	}

	criteria := &filter.Criteria{
		Where:   filter.ParseClauses(lsWhere),
		WhereOr: filter.ParseClauses(lsWhereOr),
	}
	if lsFilter != "" {
		criteria.Expr, err = filter.Compile(lsFilter, c)
		if err != nil {
			return a.report(err)
		}
	}

	limit := a.settings.Truncate
	if limit == 0 {
		limit = listing.Limit(a.size.Height)
	}

	res, err := listing.List(c, listing.Options{
		Columns:    args,
		Sort:       lsSort,
		Oldest:     lsOldest,
		All:        lsAll,
		NoTruncate: lsNoTruncate || format != listing.OutputFormatTable,
		Limit:      limit,
		Criteria:   criteria,
	})
	if err != nil {
		return a.report(err)
	}
	a.logger.Debug("listing", "shown", len(res.Records), "matched", res.Total, "limit", limit)

	switch format {
	case listing.OutputFormatIDs:
		listing.FormatIDs(a.printer.Out, res.Records)
		return nil
	case listing.OutputFormatJSON:
		if err := listing.FormatJSONL(a.printer.Out, res.Columns, res.Records); err != nil {
			return a.report(err)
		}
		return nil
	}

	return listing.FormatTable(a.printer, c, res)
}
