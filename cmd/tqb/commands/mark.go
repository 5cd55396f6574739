package commands

import (
	"fmt"

	"github.com/dyluth/tqb/internal/listing"
	"github.com/dyluth/tqb/internal/printer"
	"github.com/dyluth/tqb/pkg/queue"
	"github.com/spf13/cobra"
)

var markArchive bool

var markCmd = &cobra.Command{
	Use:   "mark IDS... STATUS",
	Short: "Set the status of tasks",
	Long: `Set the Status column of every listed task. With an autofilling status
column a prefix is enough: 'tqb mark 3 d' marks task 3 as Done.

Use --archive to archive the tasks at the same time.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMark,
}

func init() {
	markCmd.Flags().BoolVarP(&markArchive, "archive", "a", false, "archive the tasks as well")
	rootCmd.AddCommand(markCmd)
}

func runMark(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	ids, err := parseIDs(args[:len(args)-1])
	if err != nil {
		return a.report(err)
	}
	value := args[len(args)-1]

	c, err := a.load()
	if err != nil {
		return err
	}

	statusCol, err := c.StatusColumn()
	if err != nil {
		return a.report(err)
	}
	var archiveCol string
	if markArchive {
		if archiveCol, err = c.ArchivingColumn(); err != nil {
			return a.report(err)
		}
	}

	records := make([]*queue.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := c.MustFindRecord(id)
		if err != nil {
			return a.report(err)
		}
		if err := rec.UpdateColumn(c, statusCol, value); err != nil {
			return a.report(err)
		}
		if markArchive {
			if err := rec.UpdateColumn(c, archiveCol, "True"); err != nil {
				return a.report(err)
			}
		}
		records = append(records, rec)
	}

	if err := a.save(c); err != nil {
		return err
	}

	indent := printer.IndentMark
	if markArchive {
		indent = printer.IndentMarkArchive
	}
	msg := fmt.Sprintf("%d task%s marked as %s!", len(ids), plural(len(ids)), records[0].Fields[statusCol])
	return listing.FormatRecords(a.printer, c, records, indent, msg)
}
