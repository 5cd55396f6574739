package commands

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/dyluth/tqb/internal/config"
	"github.com/dyluth/tqb/internal/printer"
	"github.com/dyluth/tqb/pkg/queue"
	"github.com/spf13/cobra"
)

var aliasCmd = &cobra.Command{
	Use:   "alias [NAME EXPANSION...]",
	Short: "Define a command alias, or list aliases",
	Long: `Define NAME as a shorthand for EXPANSION. Aliases are stored in the config
section of the task queue, so each queue has its own.

The first argument of a tqb invocation is expanded once; an alias cannot
refer to another alias, and built-in commands cannot be shadowed.

Everything after NAME is stored as the expansion, flags included. Global
flags for the alias command itself go before NAME. An explicit "--" after
NAME is accepted too.

Examples:
  # 'tqb todo' lists unfinished work
  tqb alias todo ls --where "Status=not started"

  # Same, with the expansion marked explicitly
  tqb alias todo -- ls --where "Status=not started"

  # List aliases
  tqb alias`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return fmt.Errorf("alias %s needs an expansion", args[0])
		}
		return nil
	},
	RunE: runAlias,
}

var aliasRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove a command alias",
	Args:  cobra.ExactArgs(1),
	RunE:  runAliasRm,
}

func init() {
	aliasCmd.AddCommand(aliasRmCmd)
	rootCmd.AddCommand(aliasCmd)
}

func runAlias(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	c, err := a.load()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		var rows [][]string
		for _, e := range c.Config.All(queue.AliasKey) {
			rows = append(rows, []string{e.Value, e.Opt})
		}
		return a.printer.Table(printer.Table{Header: []string{"Alias", "Expansion"}, Rows: rows})
	}

	name := args[0]
	if isCommand(name) {
		return a.report(fmt.Errorf("alias %s would shadow the built-in command of the same name", name))
	}

	if err := c.Config.Add(queue.ConfigEntry{Key: queue.AliasKey, Value: name, Opt: joinExpansion(args[1:])}); err != nil {
		return a.report(err)
	}
	if err := a.save(c); err != nil {
		return err
	}

	a.banner("alias %s added", name)
	return nil
}

func runAliasRm(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	c, err := a.load()
	if err != nil {
		return err
	}

	if c.Config.Remove(queue.AliasKey, args[0]) == 0 {
		return a.report(fmt.Errorf("alias %s does not exist", args[0]))
	}
	if err := a.save(c); err != nil {
		return err
	}

	a.banner("alias %s removed", args[0])
	return nil
}

// isCommand reports whether name is a built-in command or one of its aliases.
func isCommand(name string) bool {
	for _, sub := range rootCmd.Commands() {
		if sub.Name() == name || sub.HasAlias(name) {
			return true
		}
	}
	return name == "help"
}

// joinExpansion stores arguments space separated, quoting those that contain spaces.
func joinExpansion(args []string) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ' '
	_ = w.Write(args)
	w.Flush()
	return strings.TrimRight(buf.String(), "\r\n")
}

// splitExpansion is the inverse of joinExpansion. It also accepts hand-written
// expansions with repeated spaces.
func splitExpansion(s string) []string {
	r := csv.NewReader(strings.NewReader(s))
	r.Comma = ' '
	r.LazyQuotes = true
	fields, err := r.Read()
	if err != nil {
		return strings.Fields(s)
	}

	var args []string
	for _, f := range fields {
		if f != "" {
			args = append(args, f)
		}
	}
	return args
}

// globalValueFlags are the persistent flags that consume the next argument.
var globalValueFlags = map[string]bool{"--path": true, "--settings": true}

// commandIndex returns the index of the first non-flag argument, or -1.
func commandIndex(args []string) int {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return -1
		}
		if !strings.HasPrefix(arg, "-") {
			return i
		}
		if globalValueFlags[arg] {
			i++
		}
	}
	return -1
}

// flagValue returns the value given to a global flag in args.
func flagValue(args []string, name string) string {
	for i, arg := range args {
		if arg == name && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, name+"="); ok {
			return v
		}
	}
	return ""
}

// guardExpansion inserts "--" after NAME in an 'alias NAME EXPANSION...'
// invocation so flags in the expansion are stored instead of parsed.
func guardExpansion(args []string) []string {
	idx := commandIndex(args)
	if idx < 0 || args[idx] != aliasCmd.Name() {
		return args
	}

	rest := args[idx+1:]
	name := commandIndex(rest)
	if name < 0 || rest[name] == aliasRmCmd.Name() || name+1 >= len(rest) || rest[name+1] == "--" {
		return args
	}

	at := idx + 1 + name + 1
	guarded := make([]string, 0, len(args)+1)
	guarded = append(guarded, args[:at]...)
	guarded = append(guarded, "--")
	return append(guarded, args[at:]...)
}

// ExpandAlias replaces the first argument of args with its alias expansion
// from c, if it names an alias and not a built-in command. Expansion happens
// at most once.
func ExpandAlias(args []string, c *queue.Collection) []string {
	idx := commandIndex(args)
	if idx < 0 || isCommand(args[idx]) {
		return args
	}

	entry, ok := c.Config.Lookup(queue.AliasKey, args[idx])
	if !ok {
		return args
	}

	expanded := make([]string, 0, len(args)+4)
	expanded = append(expanded, args[:idx]...)
	expanded = append(expanded, splitExpansion(entry.Opt)...)
	return append(expanded, args[idx+1:]...)
}

// expandAlias locates the task queue the way setup will and expands args
// against its aliases. Any failure leaves args untouched for cobra to report.
func expandAlias(args []string) []string {
	idx := commandIndex(args)
	if idx < 0 || isCommand(args[idx]) {
		return args
	}

	path := flagValue(args, "--path")
	if path == "" {
		settings, err := config.Load(flagValue(args, "--settings"))
		if err != nil {
			return args
		}
		path = settings.Path
	}

	c, err := queue.Load(path)
	if err != nil {
		return args
	}
	return ExpandAlias(args, c)
}
