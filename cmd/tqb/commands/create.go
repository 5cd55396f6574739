package commands

import (
	"fmt"
	"strings"

	"github.com/dyluth/tqb/internal/blueprint"
	"github.com/dyluth/tqb/internal/printer"
	"github.com/dyluth/tqb/internal/scaffold"
	"github.com/dyluth/tqb/pkg/queue"
	"github.com/spf13/cobra"
)

var (
	createBlueprint string
	createFrom      string
	createForce     bool
)

var createCmd = &cobra.Command{
	Use:   "create [COLUMNS...]",
	Short: "Create a new task queue",
	Long: `Create a new, empty task queue file.

The schema comes from one of:
  • a list of columns (an Id primary key column is added if missing)
  • --blueprint NAME, a built-in schema: ` + strings.Join(queue.BlueprintNames(), ", ") + `
  • --from FILE, a blueprint file (.yml, .yaml, .toml) or another task queue (.csv)

With neither, the 'blueprint' setting is used (default: default).

Use --force to overwrite an existing file (WARNING: discards every task in it).`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createBlueprint, "blueprint", "b", "", "built-in blueprint to start from")
	createCmd.Flags().StringVar(&createFrom, "from", "", "blueprint file or task queue to copy the schema of")
	createCmd.Flags().BoolVar(&createForce, "force", false, "overwrite an existing task queue")
	createCmd.MarkFlagsMutuallyExclusive("blueprint", "from")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	if len(args) > 0 && (createBlueprint != "" || createFrom != "") {
		return a.report(fmt.Errorf("columns cannot be combined with --blueprint or --from"))
	}

	var (
		c   *queue.Collection
		msg string
		err error
	)
	switch {
	case createFrom != "":
		c, err = blueprint.Load(createFrom)
		if err != nil {
			return a.report(err)
		}
		msg = fmt.Sprintf("creating taskqueue at %s from %s", a.path, createFrom)

	case len(args) > 0:
		c, err = queue.FromColumns(args)
		if err != nil {
			return a.report(err)
		}
		msg = fmt.Sprintf("creating taskqueue at %s with headers (%s)", a.path, strings.Join(c.Columns, ", "))

	default:
		name := createBlueprint
		if name == "" {
			name = a.settings.Blueprint
		}
		c, err = queue.NewFromBlueprint(name)
		if err != nil {
			return a.report(err)
		}
		if strings.EqualFold(name, "default") {
			msg = fmt.Sprintf("creating taskqueue at %s with default headers (%s)", a.path, strings.Join(c.Columns, ", "))
		} else {
			msg = fmt.Sprintf("creating taskqueue at %s with %s headers (%s)", a.path, strings.ToLower(name), strings.Join(c.Columns, ", "))
		}
	}

	if _, err := c.PrimaryKeyColumn(); err != nil {
		a.printer.Warning("the new task queue has no PrimaryKey column; tasks cannot be added until one is set\n")
	}

	replaced, err := scaffold.Initialize(a.path, c, createForce)
	if err != nil {
		return a.report(err)
	}
	if replaced {
		a.printer.Warning("replaced existing task queue %s\n", a.path)
	}
	a.logger.Info("task queue created", "path", a.path, "columns", len(c.Columns))

	return a.printer.Table(printer.Table{
		Header: c.Columns,
		Before: []string{msg},
	})
}
