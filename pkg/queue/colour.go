package queue

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// RenderOptions controls how values are turned into display text.
type RenderOptions struct {
	// Colour enables ANSI colour escapes.
	Colour bool
}

// namedColours maps colour names accepted in a Colours spec to terminal attributes.
// Names are matched case-insensitively.
var namedColours = map[string]color.Attribute{
	"black":           color.FgBlack,
	"red":             color.FgRed,
	"green":           color.FgGreen,
	"yellow":          color.FgYellow,
	"blue":            color.FgBlue,
	"magenta":         color.FgMagenta,
	"cyan":            color.FgCyan,
	"white":           color.FgWhite,
	"grey":            color.FgHiBlack,
	"gray":            color.FgHiBlack,
	"lightblack_ex":   color.FgHiBlack,
	"lightred_ex":     color.FgHiRed,
	"lightgreen_ex":   color.FgHiGreen,
	"lightyellow_ex":  color.FgHiYellow,
	"lightblue_ex":    color.FgHiBlue,
	"lightmagenta_ex": color.FgHiMagenta,
	"lightcyan_ex":    color.FgHiCyan,
	"lightwhite_ex":   color.FgHiWhite,
	"reset":           color.Reset,
}

// resolveColour turns a colour spec into a color.Color. Malformed hex specs
// and unknown names resolve to the neutral reset colour.
func resolveColour(spec string) *color.Color {
	if strings.HasPrefix(spec, "#") {
		r, g, b, ok := parseHex(spec)
		if !ok {
			return color.New(color.Reset)
		}
		return color.RGB(r, g, b)
	}

	if attr, ok := namedColours[fold(spec)]; ok {
		return color.New(attr)
	}
	return color.New(color.Reset)
}

// parseHex parses "#RRGGBB".
func parseHex(spec string) (int, int, int, bool) {
	if len(spec) != 7 {
		return 0, 0, 0, false
	}
	n, err := strconv.ParseUint(spec[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(n >> 16 & 0xff), int(n >> 8 & 0xff), int(n & 0xff), true
}

// Paint wraps value in the colour named by spec.
func Paint(spec, value string, opts RenderOptions) string {
	c := resolveColour(spec)
	if opts.Colour {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(value)
}

// ApplyColour colours value with the first Colours pair whose pattern matches it.
// Unmatched values are returned unchanged.
func (r *Rule) ApplyColour(value string, opts RenderOptions) string {
	for _, pair := range r.Colours {
		if globMatch(pair.Pattern, value) {
			return Paint(pair.Spec, value, opts)
		}
	}
	return value
}
