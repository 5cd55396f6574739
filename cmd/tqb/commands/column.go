package commands

import (
	"fmt"
	"strconv"

	"github.com/dyluth/tqb/pkg/queue"
	"github.com/spf13/cobra"
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Add, move, rename and remove columns",
	Long: `Change the columns of the task queue. Every task and constraint follows
the change.`,
}

var columnAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a column",
	Args:  cobra.ExactArgs(1),
	RunE: columnAction(func(c *queue.Collection, args []string) (string, error) {
		if err := c.AddColumn(args[0]); err != nil {
			return "", err
		}
		return fmt.Sprintf("column %s added", args[0]), nil
	}),
}

var columnMoveCmd = &cobra.Command{
	Use:   "move NAME INDEX",
	Short: "Move a column to INDEX (0 = start, negative counts from the end)",
	Args:  cobra.ExactArgs(2),
	RunE: columnAction(func(c *queue.Collection, args []string) (string, error) {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("invalid index '%s': must be a number", args[1])
		}
		if err := c.MoveColumn(args[0], index); err != nil {
			return "", err
		}
		return fmt.Sprintf("column %s moved to index %d", args[0], index), nil
	}),
}

var columnRenameCmd = &cobra.Command{
	Use:   "rename NAME NEW_NAME",
	Short: "Rename a column",
	Args:  cobra.ExactArgs(2),
	RunE: columnAction(func(c *queue.Collection, args []string) (string, error) {
		if err := c.RenameColumn(args[0], args[1]); err != nil {
			return "", err
		}
		return fmt.Sprintf("column %s renamed to %s", args[0], args[1]), nil
	}),
}

var columnRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Short:   "Remove a column and its values",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: columnAction(func(c *queue.Collection, args []string) (string, error) {
		if err := c.RemoveColumn(args[0]); err != nil {
			return "", err
		}
		return fmt.Sprintf("column %s successfully removed", args[0]), nil
	}),
}

func init() {
	columnCmd.AddCommand(columnAddCmd, columnMoveCmd, columnRenameCmd, columnRemoveCmd)
	rootCmd.AddCommand(columnCmd)
}

// columnAction wraps a schema change in load, save and a banner.
func columnAction(change func(c *queue.Collection, args []string) (string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		c, err := a.load()
		if err != nil {
			return err
		}

		msg, err := change(c, args)
		if err != nil {
			return a.report(err)
		}
		if err := a.save(c); err != nil {
			return err
		}

		a.banner("%s", msg)
		return nil
	}
}
