package commands

import (
	"fmt"
	"strings"

	"github.com/dyluth/tqb/internal/listing"
	"github.com/dyluth/tqb/internal/printer"
	"github.com/dyluth/tqb/pkg/queue"
	"github.com/spf13/cobra"
)

var addSet []string

var addCmd = &cobra.Command{
	Use:   "add DESCRIPTION...",
	Short: "Add a task to the task queue",
	Long: `Add a task. The words of DESCRIPTION are joined with spaces and stored in the
Description column (or the first column after the primary key). Every other
column gets its default.

Examples:
  tqb add fix the login redirect
  tqb add "BUG: crash on save" --set Priority=high --set Assignee=me`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringArrayVar(&addSet, "set", nil, "column=value to set on the new task (repeatable)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	c, err := a.load()
	if err != nil {
		return err
	}

	rec, err := queue.NewRecord(strings.Join(args, " "), c)
	if err != nil {
		return a.report(err)
	}

	for _, assignment := range addSet {
		column, value, ok := strings.Cut(assignment, "=")
		if !ok {
			return a.report(fmt.Errorf("invalid --set '%s': expected column=value", assignment))
		}
		if err := rec.UpdateColumn(c, column, value); err != nil {
			return a.report(err)
		}
	}

	c.AddRecord(rec)
	if err := a.save(c); err != nil {
		return err
	}

	return listing.FormatRecords(a.printer, c, []*queue.Record{rec}, printer.IndentAdd, "added task to queue :3")
}
