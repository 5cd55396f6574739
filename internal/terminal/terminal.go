// Package terminal answers questions about the controlling terminal and owns
// the screen-level side effects of tqb: clearing and paging.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
)

// Size is a terminal size in cells.
type Size struct {
	Width  int
	Height int
}

// Fallback is reported when the size cannot be determined, e.g. when output
// is piped.
var Fallback = Size{Width: 1000, Height: 1000}

// SizeOf returns the size of the terminal behind f, or Fallback.
func SizeOf(f *os.File) Size {
	if f == nil || !term.IsTerminal(f.Fd()) {
		return Fallback
	}
	w, h, err := term.GetSize(f.Fd())
	if err != nil || w <= 0 || h <= 0 {
		return Fallback
	}
	return Size{Width: w, Height: h}
}

// IsTerminal reports whether f is a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(f.Fd())
}

// Clear erases the screen and homes the cursor.
func Clear(w io.Writer) {
	fmt.Fprint(w, ansi.EraseDisplay(2)+ansi.CursorHomePosition)
}

// PagerCommand is the pager and arguments used by Page.
var PagerCommand = []string{"less", "-SR"}

// Page pipes text through the pager. When the pager is not installed the text
// is written to out directly.
func Page(ctx context.Context, text string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, PagerCommand[0], PagerCommand[1:]...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			_, werr := io.WriteString(out, text)
			return werr
		}
		return fmt.Errorf("pager failed: %w", err)
	}
	return nil
}
