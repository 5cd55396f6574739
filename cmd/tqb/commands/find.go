package commands

import (
	"fmt"

	"github.com/dyluth/tqb/internal/listing"
	"github.com/dyluth/tqb/internal/printer"
	"github.com/dyluth/tqb/pkg/queue"
	"github.com/spf13/cobra"
)

var findJSON bool

var findCmd = &cobra.Command{
	Use:   "find ID",
	Short: "Find a task by id and display it",
	Long: `Display a single task, including archived ones and hidden columns.

Use --json for the complete task as pretty-printed JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().BoolVar(&findJSON, "json", false, "print the task as JSON")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	ids, err := parseIDs(args)
	if err != nil {
		return a.report(err)
	}

	c, err := a.load()
	if err != nil {
		return err
	}

	rec, err := c.MustFindRecord(ids[0])
	if err != nil {
		return a.report(err)
	}

	if findJSON {
		return listing.FormatSingleJSON(a.printer.Out, c, rec)
	}

	opts := queue.RenderOptions{Colour: a.printer.Options().Colour}
	return a.printer.Table(printer.Table{
		Header: c.Columns,
		Rows:   [][]string{rec.DisplayRow(c, c.Columns, opts)},
		Before: []string{fmt.Sprintf("entry for task with id %d", rec.ID)},
	})
}
