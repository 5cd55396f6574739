package commands

import (
	"strings"

	"github.com/dyluth/tqb/internal/printer"
	"github.com/dyluth/tqb/pkg/queue"
	"github.com/spf13/cobra"
)

var constraintHeader bool

var constraintCmd = &cobra.Command{
	Use:   "constraint",
	Short: "Work with column constraints",
	Long: `Constraints describe how a column is validated, defaulted, coloured and
displayed. Fields:
  HeaderName  the column the constraint belongs to
  Type        '', int or bool
  Variant     allowed values, '|' separated
  Default     value used when none is given
  ColWidth    display width, empty = unbounded
  Colours     pattern=COLOUR pairs, '|' separated (names or #RRGGBB)
  Role        PrimaryKey, Status, Archiving or Description
  Autofill    accept a prefix of a Variant value
  Hide        hide the column from 'tqb ls'
  AutoHeader  the column was added automatically

Examples:
  tqb constraint add Priority Variant="High|Medium|Low" Default=Low Autofill=true
  tqb constraint alter Priority Colours="high=RED|low=#888888"
  tqb constraint append Priority Variant Urgent`,
}

var constraintAddCmd = &cobra.Command{
	Use:   "add COLUMN FIELD=VALUE...",
	Short: "Add a constraint",
	Args:  cobra.MinimumNArgs(2),
	RunE: constraintAction(func(c *queue.Collection, args []string) (string, error) {
		values, err := parseFieldValues(args[1:])
		if err != nil {
			return "", err
		}
		opts := make(map[queue.RuleField]string, len(values))
		for _, fv := range values {
			opts[fv.Field] = fv.Value
		}
		rule, err := queue.RuleFromOptions(ruleName(c, args[0]), opts)
		if err != nil {
			return "", err
		}
		if err := c.AddRule(rule); err != nil {
			return "", err
		}
		return "constraint added", nil
	}),
}

var constraintAlterCmd = &cobra.Command{
	Use:   "alter COLUMN FIELD=VALUE...",
	Short: "Alter an existing constraint",
	Args:  cobra.MinimumNArgs(2),
	RunE: constraintAction(func(c *queue.Collection, args []string) (string, error) {
		values, err := parseFieldValues(args[1:])
		if err != nil {
			return "", err
		}
		if err := c.AlterRule(ruleName(c, args[0]), values); err != nil {
			return "", err
		}
		return "constraint altered", nil
	}),
}

var constraintAppendCmd = &cobra.Command{
	Use:   "append COLUMN FIELD VALUES...",
	Short: "Add values to a list field (Variant or Colours)",
	Args:  cobra.MinimumNArgs(3),
	RunE: constraintAction(func(c *queue.Collection, args []string) (string, error) {
		field, err := queue.ParseRuleField(args[1])
		if err != nil {
			return "", err
		}
		if err := c.AppendToListField(ruleName(c, args[0]), field, args[2:]); err != nil {
			return "", err
		}
		return "constraint properties appended", nil
	}),
}

var constraintRemoveCmd = &cobra.Command{
	Use:     "remove COLUMN",
	Short:   "Remove a constraint",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: constraintAction(func(c *queue.Collection, args []string) (string, error) {
		if err := c.RemoveRule(ruleName(c, args[0])); err != nil {
			return "", err
		}
		return "constraint removed", nil
	}),
}

var constraintLsCmd = &cobra.Command{
	Use:   "ls [FIELDS...]",
	Short: "Display constraints",
	RunE:  runConstraintLs,
}

func init() {
	constraintLsCmd.Flags().BoolVar(&constraintHeader, "header", false, "just display the header")
	constraintCmd.AddCommand(constraintAddCmd, constraintAlterCmd, constraintAppendCmd, constraintRemoveCmd, constraintLsCmd)
	rootCmd.AddCommand(constraintCmd)
}

// constraintAction wraps a constraint change in load, save and a banner.
func constraintAction(change func(c *queue.Collection, args []string) (string, error)) func(*cobra.Command, []string) error {
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

func runConstraintLs(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	fields := queue.RuleFields
	if len(args) > 0 {
		fields = make([]queue.RuleField, 0, len(args))
		for _, arg := range args {
			f, err := queue.ParseRuleField(arg)
			if err != nil {
				return a.report(err)
			}
			fields = append(fields, f)
		}
	}

	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = string(f)
	}
	if constraintHeader {
		return a.printer.Table(printer.Table{Header: header})
	}

	c, err := a.load()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(c.Schema))
	for _, r := range c.Rules() {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = r.Field(f)
		}
		rows = append(rows, row)
	}

	a.logger.Debug("constraints", "count", len(rows), "fields", strings.Join(header, ","))
	return a.printer.Table(printer.Table{Header: header, Rows: rows})
}
