package commands

import (
	"fmt"

	"github.com/dyluth/tqb/internal/listing"
	"github.com/dyluth/tqb/internal/printer"
	"github.com/dyluth/tqb/pkg/queue"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update IDS... COLUMN VALUE",
	Short: "Set a task property to a new value",
	Long: `Set COLUMN to VALUE on every listed task. The column name is matched
ignoring case, and VALUE is checked against the column's constraint.

Examples:
  tqb update 4 priority high
  tqb update 4 5 6 Assignee me`,
	Args: cobra.MinimumNArgs(3),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	ids, err := parseIDs(args[:len(args)-2])
	if err != nil {
		return a.report(err)
	}
	column, value := args[len(args)-2], args[len(args)-1]

	c, err := a.load()
	if err != nil {
		return err
	}
	if _, err := c.MustResolveColumn(column); err != nil {
		return a.report(err)
	}

	records := make([]*queue.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := c.MustFindRecord(id)
		if err != nil {
			return a.report(err)
		}
		if err := rec.UpdateColumn(c, column, value); err != nil {
			return a.report(err)
		}
		records = append(records, rec)
	}

	if err := a.save(c); err != nil {
		return err
	}

	msg := fmt.Sprintf("updated id%s %s", plural(len(ids)), joinIDs(ids, ", "))
	return listing.FormatRecords(a.printer, c, records, printer.IndentUpdate, msg)
}
