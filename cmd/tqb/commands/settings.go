package commands

import (
	"fmt"

	"github.com/dyluth/tqb/internal/config"
	"github.com/dyluth/tqb/internal/scaffold"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var settingsForce bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or initialise the settings file",
	Long: `Settings are read from ` + config.FileName + ` in $XDG_CONFIG_HOME/tqb,
~/.config/tqb or the current directory, in that order, and can be overridden
with TQB_<KEY> environment variables and command-line flags.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init [FILE]",
	Short: "Write a commented settings file with the defaults",
	Long: `Write a settings file holding the default values. Without FILE it is
written to the first search directory.

Use --force to overwrite an existing settings file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsInit,
}

func init() {
	settingsInitCmd.Flags().BoolVar(&settingsForce, "force", false, "overwrite an existing settings file")
	settingsCmd.AddCommand(settingsShowCmd, settingsInitCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	data, err := yaml.Marshal(a.settings)
	if err != nil {
		return a.report(fmt.Errorf("failed to encode settings: %w", err))
	}
	a.printer.Printf("%s", data)
	return nil
}

func runSettingsInit(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	path := scaffold.SettingsPath()
	if len(args) == 1 {
		path = args[0]
	}

	replaced, err := scaffold.WriteSettings(path, settingsForce)
	if err != nil {
		return a.report(err)
	}
	if replaced {
		a.printer.Warning("replaced existing settings file %s\n", path)
	}

	a.printer.Success("Wrote settings to %s\n", path)
	return nil
}
