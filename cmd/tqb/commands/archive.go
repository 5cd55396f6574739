package commands

import (
	"fmt"

	"github.com/dyluth/tqb/internal/listing"
	"github.com/dyluth/tqb/internal/printer"
	"github.com/dyluth/tqb/pkg/queue"
	"github.com/spf13/cobra"
)

var archiveUndo bool

var archiveCmd = &cobra.Command{
	Use:   "archive IDS...",
	Short: "Archive (hide) tasks",
	Long: `Archive tasks so 'tqb ls' hides them. 'tqb ls --all' still shows them.

Use --undo to bring archived tasks back.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().BoolVarP(&archiveUndo, "undo", "u", false, "unarchive the tasks")
	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	ids, err := parseIDs(args)
	if err != nil {
		return a.report(err)
	}

	c, err := a.load()
	if err != nil {
		return err
	}

	archiveCol, err := c.ArchivingColumn()
	if err != nil {
		return a.report(err)
	}

	value, indent, verb := "True", printer.IndentArchive, "archived :o"
	if archiveUndo {
		value, indent, verb = "False", printer.IndentUnarchive, "unarchived"
	}

	records := make([]*queue.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := c.MustFindRecord(id)
		if err != nil {
			return a.report(err)
		}
		if err := rec.UpdateColumn(c, archiveCol, value); err != nil {
			return a.report(err)
		}
		records = append(records, rec)
	}

	if err := a.save(c); err != nil {
		return err
	}

	msg := fmt.Sprintf("%d task%s %s", len(ids), plural(len(ids)), verb)
	return listing.FormatRecords(a.printer, c, records, indent, msg)
}
