package commands

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/dyluth/tqb/pkg/queue"
	"github.com/spf13/cobra"
)

// reportedError is an error already printed to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

func withApp(cmd *cobra.Command, a *app) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, appKey{}, a)
}

// report prints err with remediation hints and returns an error for cobra.
func (a *app) report(err error) error {
	var (
		already  *reportedError
		corrupt  *queue.CorruptError
		column   *queue.ColumnNotFoundError
		exists   *queue.ColumnExistsError
		record   *queue.RecordNotFoundError
		invalid  *queue.ValidationError
		mismatch *queue.TypeMismatchError
		role     *queue.RoleNotConfiguredError
		ruleDup  *queue.RuleExistsError
		ruleMiss *queue.RuleNotFoundError
		field    *queue.UnknownRuleFieldError
		value    *queue.InvalidRuleValueError
		dupEntry *queue.DuplicateConfigError
	)

	p := a.printer
	switch {
	case errors.As(err, &already):
		return err

	case errors.Is(err, os.ErrNotExist):
		return reported(p.ErrorWithContext(
			"task queue not found",
			"There is no task queue file to work on.",
			[][2]string{{"Path", a.path}},
			[]string{
				"Run 'tqb create' to create one here",
				"Point at an existing queue with --path or the 'path' setting",
			},
		))

	case errors.As(err, &corrupt):
		details := [][2]string{{"Path", a.path}}
		if corrupt.Line > 0 {
			details = append(details, [2]string{"Line", strconv.Itoa(corrupt.Line)})
		}
		return reported(p.ErrorWithContext(
			"task queue is corrupt",
			corrupt.Error(),
			details,
			[]string{"Repair the file by hand or restore it from a backup"},
		))

	case errors.As(err, &column):
		return reported(p.Error("invalid column", err.Error(), []string{
			"Run 'tqb ls --header' to see the columns",
		}))

	case errors.As(err, &exists):
		return reported(p.Error("column already exists", err.Error(), []string{
			"Pick another name, or rename the existing column with 'tqb column rename'",
		}))

	case errors.As(err, &record):
		return reported(p.Error("task not found", err.Error(), []string{
			"Run 'tqb ls --all' to see every task, including archived ones",
		}))

	case errors.As(err, &invalid):
		return reported(p.Error("invalid value", err.Error(), []string{
			"Add the value with 'tqb constraint append " + invalid.Column + " Variant VALUE'",
		}))

	case errors.As(err, &mismatch):
		return reported(p.Error("invalid value", err.Error(), nil))

	case errors.As(err, &role):
		return reported(p.Error("missing column role", err.Error(), []string{
			"Give an existing column the role with 'tqb constraint alter COLUMN Role=" + string(role.Role) + "'",
			"Or run '" + role.Remediation + "'",
		}))

	case errors.As(err, &ruleDup):
		return reported(p.Error("constraint already exists", err.Error(), []string{
			"Change it with 'tqb constraint alter " + ruleDup.Name + " FIELD=VALUE'",
		}))

	case errors.As(err, &ruleMiss):
		return reported(p.Error("constraint not found", err.Error(), []string{
			"Create it with 'tqb constraint add " + ruleMiss.Name + " FIELD=VALUE'",
			"Run 'tqb constraint ls' to see the constraints",
		}))

	case errors.As(err, &field), errors.Is(err, queue.ErrImmutableField):
		return reported(p.Error("invalid constraint field", err.Error(), []string{
			"Constraint fields are: " + strings.Join(queue.ConstraintsHeaders, ", "),
		}))

	case errors.As(err, &value):
		return reported(p.Error("invalid constraint value", err.Error(), nil))

	case errors.As(err, &dupEntry):
		return reported(p.Error("duplicate config entry", err.Error(), []string{
			"Run 'tqb config ls' to see the entries",
		}))
	}

	return reported(p.Error("command failed", err.Error(), nil))
}
