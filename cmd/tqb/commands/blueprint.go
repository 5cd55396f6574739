package commands

import (
	"github.com/dyluth/tqb/internal/blueprint"
	"github.com/spf13/cobra"
)

var blueprintFormat string

var blueprintCmd = &cobra.Command{
	Use:   "blueprint",
	Short: "Dump the schema of the task queue to stdout",
	Long: `Write the config, constraints and column row of the task queue without
its tasks. The output can be given to 'tqb create --from' to start another
queue with the same schema.

Formats:
  csv  - the task queue file format (default)
  yaml - a YAML document
  toml - a TOML document

Example:
  tqb blueprint --format yaml > work.yml
  tqb --path other.csv create --from work.yml`,
	Args: cobra.NoArgs,
	RunE: runBlueprint,
}

func init() {
	blueprintCmd.Flags().StringVarP(&blueprintFormat, "format", "f", string(blueprint.FormatCSV), "output format: csv, yaml or toml")
	rootCmd.AddCommand(blueprintCmd)
}

func runBlueprint(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	format, err := blueprint.ParseFormat(blueprintFormat)
	if err != nil {
		return a.report(err)
	}

	c, err := a.load()
	if err != nil {
		return err
	}

	if err := blueprint.Export(a.printer.Out, c, format); err != nil {
		return a.report(err)
	}
	return nil
}
