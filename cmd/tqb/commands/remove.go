package commands

import (
	"fmt"

	"github.com/dyluth/tqb/internal/listing"
	"github.com/dyluth/tqb/internal/printer"
	"github.com/dyluth/tqb/pkg/queue"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove IDS...",
	Short:   "Remove tasks by id",
	Long:    `Delete tasks from the queue. Use 'tqb archive' to hide a task instead.`,
	Aliases: []string{"rm"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	ids, err := parseIDs(args)
	if err != nil {
		return a.report(err)
	}

	c, err := a.load()
	if err != nil {
		return err
	}

	// Check every id first so a typo removes nothing
	for _, id := range ids {
		if _, err := c.MustFindRecord(id); err != nil {
			return a.report(err)
		}
	}

	records := make([]*queue.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := c.RemoveRecord(id)
		if err != nil {
			return a.report(err)
		}
		records = append(records, rec)
	}

	if err := a.save(c); err != nil {
		return err
	}

	n := len(records)
	msg := fmt.Sprintf("removed %d task%s with id%s %s", n, plural(n), plural(n), joinIDs(ids, " "))
	return listing.FormatRecords(a.printer, c, records, printer.IndentRemove, msg)
}
