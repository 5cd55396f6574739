package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/dyluth/tqb/internal/printer"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// Global flags
var (
	queuePath    string
	settingsPath string
	useLess      bool
	clearScreen  bool
	quiet        bool
	noColor      bool
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tqb",
	Short: "tqb - a task queue in a CSV file",
	Long: `tqb keeps a personal task queue in a single CSV file.

The file carries its own schema: every column can be typed, restricted to a
set of values, defaulted, coloured and given a role (primary key, status,
archiving or description). The file stays readable and editable in any
spreadsheet.

Run 'tqb create' to start a queue in the current directory.`,
	Version: version,
	// Prevent silent success when unknown flags are passed to root command
	// e.g., "tqb --where x" instead of "tqb ls --where x"
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is specified, show help
		return cmd.Help()
	},
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute expands a leading alias, then runs the root command with args.
// Alias definitions keep their expansion flags unparsed.
// This is called by main.main().
func Execute(args []string) error {
	// Silence Cobra's default error and usage printing
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.SetArgs(guardExpansion(expandAlias(args)))

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			p := printer.New(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr(), printer.Options{})
			p.Error("invalid usage", err.Error(), []string{"Run 'tqb --help' to see the available commands"})
		}
	}
	return err
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&queuePath, "path", "", "path to task queue file (default from settings, taskqueue.csv)")
	flags.StringVar(&settingsPath, "settings", "", "path to settings file (default: search ~/.config/tqb and .)")
	flags.BoolVar(&useLess, "less", false, "use less to display output")
	flags.BoolVarP(&clearScreen, "clear", "c", false, "clear terminal before displaying output")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress banners and informational messages")
	flags.BoolVar(&noColor, "no-color", false, "disable colour output")
	flags.BoolVar(&verbose, "verbose", false, "log diagnostics to stderr")
}
