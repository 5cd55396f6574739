package commands

import (
	"fmt"

	"github.com/dyluth/tqb/internal/printer"
	"github.com/dyluth/tqb/pkg/queue"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config entries of the task queue",
	Long: `The config section of a task queue holds KEY VALUE [OPT] entries. Keys may
repeat; an entry is a duplicate only when both its key and value match an
existing one. Aliases are stored here under the key 'alias'.

These entries travel with the task queue file. User preferences such as
colour and paging live in the settings file instead (see 'tqb settings').`,
}

var configAddCmd = &cobra.Command{
	Use:   "add KEY VALUE [OPT]",
	Short: "Add a config entry",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runConfigAdd,
}

var configLsCmd = &cobra.Command{
	Use:   "ls [KEY]",
	Short: "List config entries",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigLs,
}

var configRmCmd = &cobra.Command{
	Use:   "rm KEY [VALUE]",
	Short: "Remove config entries with KEY, or only the one with VALUE",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runConfigRm,
}

func init() {
	configCmd.AddCommand(configAddCmd, configLsCmd, configRmCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigAdd(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	c, err := a.load()
	if err != nil {
		return err
	}

	entry := queue.ConfigEntry{Key: args[0], Value: args[1]}
	if len(args) == 3 {
		entry.Opt = args[2]
	}
	if err := c.Config.Add(entry); err != nil {
		return a.report(err)
	}
	if err := a.save(c); err != nil {
		return err
	}

	a.banner("config %s=%s added", entry.Key, entry.Value)
	return nil
}

func runConfigLs(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	c, err := a.load()
	if err != nil {
		return err
	}

	entries := []queue.ConfigEntry(c.Config)
	if len(args) == 1 {
		entries = c.Config.All(args[0])
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, e.Serialize())
	}
	return a.printer.Table(printer.Table{Header: queue.ConfigHeaders, Rows: rows})
}

func runConfigRm(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	c, err := a.load()
	if err != nil {
		return err
	}

	var value string
	if len(args) == 2 {
		value = args[1]
	}

	removed := c.Config.Remove(args[0], value)
	if removed == 0 {
		return a.report(fmt.Errorf("no config entry matches %s", args[0]))
	}
	if err := a.save(c); err != nil {
		return err
	}

	noun := "entries"
	if removed == 1 {
		noun = "entry"
	}
	a.banner("removed %d config %s", removed, noun)
	return nil
}
