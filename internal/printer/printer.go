package printer

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// BannerWidth is the width banners are centred in when no table sets one.
const BannerWidth = 80

// starChoices are the decorations either side of a banner message.
const starChoices = "-*★✦~"

// Options controls what a Printer writes.
type Options struct {
	// Quiet suppresses banners and informational messages. Tables, plain
	// output and errors are still written.
	Quiet bool
	// Colour enables ANSI colour escapes.
	Colour bool
	// Width clips every table line to this many cells; 0 disables clipping.
	Width int
}

// Printer writes coloured command output. Regular output goes to Out,
// errors to Err.
type Printer struct {
	Out  io.Writer
	Err  io.Writer
	opts Options

	green   *color.Color
	yellow  *color.Color
	red     *color.Color
	cyan    *color.Color
	magenta *color.Color
	grey    *color.Color
}

// New creates a Printer. Nil writers default to stdout and stderr.
func New(out, errOut io.Writer, opts Options) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	p := &Printer{
		Out:     out,
		Err:     errOut,
		opts:    opts,
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow),
		red:     color.New(color.FgRed, color.Bold),
		cyan:    color.New(color.FgCyan),
		magenta: color.New(color.FgMagenta),
		grey:    color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.green, p.yellow, p.red, p.cyan, p.magenta, p.grey} {
		if opts.Colour {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Options returns the options the printer was created with.
func (p *Printer) Options() Options {
	return p.opts
}

// ColourEnabled resolves a colour mode ("auto", "always" or "never") against
// the NO_COLOR convention and whether output is a terminal.
func ColourEnabled(mode string, isTerminal bool) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	default:
		return os.Getenv("NO_COLOR") == "" && isTerminal
	}
}

// Success prints a success message in green with a checkmark prefix
func (p *Printer) Success(format string, a ...any) {
	if p.opts.Quiet {
		return
	}
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		p.green.Fprintf(p.Out, "✓ %s", msg)
	} else {
		p.green.Fprint(p.Out, msg)
	}
}

// Info prints an informational message in the default color
func (p *Printer) Info(format string, a ...any) {
	if p.opts.Quiet {
		return
	}
	fmt.Fprintf(p.Out, format, a...)
}

// Warning prints a warning message in yellow with a warning emoji prefix
func (p *Printer) Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		p.yellow.Fprintf(p.Err, "⚠️  %s", msg)
	} else {
		p.yellow.Fprint(p.Err, msg)
	}
}

// Error creates a formatted error message with title, explanation, and suggestions
// Prints the formatted error to stderr with colors and returns a simple error for Cobra
func (p *Printer) Error(title string, explanation string, suggestions []string) error {
	return p.ErrorWithContext(title, explanation, nil, suggestions)
}

// ErrorWithContext creates a formatted error with context details.
// Context pairs are printed in order.
func (p *Printer) ErrorWithContext(title string, explanation string, context [][2]string, suggestions []string) error {
	p.red.Fprintf(p.Err, "%s\n\n", title)

	if explanation != "" {
		fmt.Fprintf(p.Err, "%s\n", explanation)
	}

	if len(context) > 0 {
		fmt.Fprintf(p.Err, "\n")
		for _, kv := range context {
			fmt.Fprintf(p.Err, "  %s: %s\n", kv[0], kv[1])
		}
	}

	if len(suggestions) > 0 {
		fmt.Fprintf(p.Err, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(p.Err, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(p.Err, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(p.Err, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	// Return simple error for Cobra (won't be printed due to SilenceErrors)
	return fmt.Errorf("%s", title)
}

// Step prints a step message with emphasis
func (p *Printer) Step(format string, a ...any) {
	if p.opts.Quiet {
		return
	}
	p.cyan.Fprintf(p.Out, "→ %s", fmt.Sprintf(format, a...))
}

// Println prints a plain message
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.Out, a...)
}

// Printf prints a plain formatted message
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.Out, format, a...)
}

// Banner prints msg centred between random star decorations, sized to width.
func (p *Printer) Banner(msg string, width int) {
	if p.opts.Quiet {
		return
	}
	fmt.Fprintln(p.Out, p.banner(msg, width))
}

func (p *Printer) banner(msg string, width int) string {
	if width <= 0 {
		width = BannerWidth
	}
	if runewidth.StringWidth(msg)%2 == 1 && width%2 == 0 {
		msg += " "
	}
	msg = "  " + msg + "  "

	padding := (width-runewidth.StringWidth(msg))/4 + 1
	if padding < 1 {
		padding = 1
	}
	return stars(padding) + p.cyan.Sprint(msg) + stars(padding)
}

func stars(n int) string {
	choices := []rune(starChoices)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = string(choices[rand.Intn(len(choices))])
	}
	return strings.Join(parts, " ")
}

// Indent is a coloured marker printed in front of every table line to show
// what a command did to the rows.
type Indent struct {
	Text  string
	Color color.Attribute
}

// Row markers.
var (
	IndentNone        = Indent{}
	IndentAdd         = Indent{Text: "==+", Color: color.FgGreen}
	IndentUpdate      = Indent{Text: "==>", Color: color.FgYellow}
	IndentMark        = Indent{Text: "==~", Color: color.FgYellow}
	IndentMarkArchive = Indent{Text: "==~", Color: color.FgMagenta}
	IndentRemove      = Indent{Text: "XXX", Color: color.FgRed}
	IndentArchive     = Indent{Text: "<@@", Color: color.FgMagenta}
	IndentUnarchive   = Indent{Text: "@@>", Color: color.FgMagenta}
)

// Table describes one rendered table and the banners around it.
type Table struct {
	Header []string
	Rows   [][]string
	Before []string
	After  []string
	Indent Indent
}

// Table renders t. Header cells are green, borders grey, and every line is
// clipped to Options.Width visible cells.
func (p *Printer) Table(t Table) error {
	text, err := p.RenderTable(t.Header, t.Rows)
	if err != nil {
		return err
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if t.Indent.Text != "" {
		marker := color.New(t.Indent.Color)
		if p.opts.Colour {
			marker.EnableColor()
		} else {
			marker.DisableColor()
		}
		prefix := marker.Sprint(t.Indent.Text) + " "
		for i, line := range lines {
			lines[i] = prefix + line
		}
	}
	if p.opts.Width > 0 {
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, p.opts.Width, "")
		}
	}

	width := BannerWidth
	if len(lines) > 0 {
		width = ansi.StringWidth(lines[0])
	}

	for _, msg := range t.Before {
		p.Banner(msg, width)
	}
	fmt.Fprintln(p.Out, strings.Join(lines, "\n"))
	for _, msg := range t.After {
		p.Banner(msg, width)
	}
	return nil
}

// RenderTable renders rows under header with tablewriter and returns the text.
func (p *Printer) RenderTable(header []string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	table := tablewriter.NewTable(&buf, tablewriter.WithHeaderAutoFormat(tw.Off))

	if len(header) > 0 {
		cells := make([]any, len(header))
		for i, h := range header {
			cells[i] = p.green.Sprint(h)
		}
		table.Header(cells...)
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return "", fmt.Errorf("failed to render table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("failed to render table: %w", err)
	}

	return p.greyBorders(buf.String()), nil
}

var borderRunes = []string{"─", "┴", "┼", "┬", "├", "│", "┤", "┘", "┐", "┌", "└"}

// greyBorders dims the box-drawing characters of a rendered table.
func (p *Printer) greyBorders(text string) string {
	if !p.opts.Colour {
		return text
	}
	pairs := make([]string, 0, len(borderRunes)*2)
	for _, r := range borderRunes {
		pairs = append(pairs, r, p.grey.Sprint(r))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
