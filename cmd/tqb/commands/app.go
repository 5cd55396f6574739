package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dyluth/tqb/internal/config"
	"github.com/dyluth/tqb/internal/logging"
	"github.com/dyluth/tqb/internal/printer"
	"github.com/dyluth/tqb/internal/terminal"
	"github.com/dyluth/tqb/pkg/queue"
	"github.com/spf13/cobra"
)

// app is the per-invocation state shared by every command. It is built by
// setup and carried in the command context.
type app struct {
	settings *config.Settings
	printer  *printer.Printer
	logger   *log.Logger
	path     string
	size     terminal.Size

	out   io.Writer
	paged *bytes.Buffer // non-nil when output goes through the pager
}

type appKey struct{}

func appFrom(cmd *cobra.Command) *app {
	return cmd.Context().Value(appKey{}).(*app)
}

// setup loads settings, resolves flags against them and builds the app.
func setup(cmd *cobra.Command, args []string) error {
	errOut := cmd.ErrOrStderr()

	settings, err := config.Load(settingsPath)
	if err != nil {
		p := printer.New(cmd.OutOrStdout(), errOut, printer.Options{})
		// settings init must still work when the file it replaces is broken
		if cmd != settingsInitCmd {
			return reported(p.Error("invalid settings", err.Error(), []string{
				"Fix the settings file, or run 'tqb settings init --force' to restore the defaults",
			}))
		}
		p.Warning("ignoring invalid settings: %v\n", err)
		settings = config.Default()
	}

	a := &app{
		settings: settings,
		path:     settings.Path,
		size:     terminal.SizeOf(os.Stdout),
		out:      cmd.OutOrStdout(),
	}
	if cmd.Flags().Changed("path") {
		a.path = queuePath
	}

	level := logging.ParseLevel(settings.LogLevel)
	if verbose {
		level = log.DebugLevel
	}
	opts := logging.DefaultOptions()
	opts.Level = level
	a.logger = logging.New(errOut, opts)

	colourMode := settings.Color
	if noColor {
		colourMode = config.ColorNever
	}

	out := a.out
	width := a.size.Width
	if useLess || settings.Pager {
		a.paged = &bytes.Buffer{}
		out = a.paged
		width = 0
	}

	a.printer = printer.New(out, errOut, printer.Options{
		Quiet:  quiet,
		Colour: printer.ColourEnabled(colourMode, terminal.IsTerminal(os.Stdout)),
		Width:  width,
	})

	if clearScreen {
		terminal.Clear(a.out)
	}

	a.logger.Debug("settings loaded", "path", a.path, "pager", a.paged != nil, "colour", a.printer.Options().Colour)
	cmd.SetContext(withApp(cmd, a))
	return nil
}

// teardown flushes paged output through the pager.
func teardown(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	if a.paged == nil || a.paged.Len() == 0 {
		return nil
	}
	if err := terminal.Page(cmd.Context(), a.paged.String(), a.out); err != nil {
		a.logger.Warn("pager failed, writing output directly", "err", err)
		_, err = a.out.Write(a.paged.Bytes())
		return err
	}
	return nil
}

// load reads the task queue, reporting failures to the user.
func (a *app) load() (*queue.Collection, error) {
	c, err := queue.Load(a.path)
	if err != nil {
		return nil, a.report(err)
	}
	a.logger.Debug("task queue loaded", "path", a.path, "columns", len(c.Columns), "records", len(c.Records))
	return c, nil
}

// save writes the task queue back, reporting failures to the user.
func (a *app) save(c *queue.Collection) error {
	if err := queue.Save(a.path, c); err != nil {
		return a.report(fmt.Errorf("failed to save task queue: %w", err))
	}
	a.logger.Debug("task queue saved", "path", a.path, "records", len(c.Records))
	return nil
}

// banner prints a star banner at the default width.
func (a *app) banner(format string, args ...any) {
	a.printer.Banner(fmt.Sprintf(format, args...), printer.BannerWidth)
}
