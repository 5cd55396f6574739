package queue

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestGlobMatch(t *testing.T) {
	tests := []struct {
		pattern string
		value   string
		match   bool
	}{
		{pattern: "*", value: "", match: true},
		{pattern: "high", value: "High", match: true},
		{pattern: "h*", value: "high", match: true},
		{pattern: "h?gh", value: "HIGH", match: true},
		{pattern: "bug:*", value: "BUG: path/to/file", match: true},
		{pattern: "[abc]x", value: "bx", match: true},
		{pattern: "[!abc]x", value: "bx", match: false},
		{pattern: "[!abc]x", value: "dx", match: true},
		{pattern: "[a-c]", value: "B", match: true},
		{pattern: "a.c", value: "abc", match: false},
		{pattern: "[oops", value: "[oops", match: true},
		{pattern: "low", value: "lower", match: false},
		{pattern: "not started", value: "Not Started", match: true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.match, globMatch(tt.pattern, tt.value))
		})
	}
}

func TestApplyColour_FirstMatchWins(t *testing.T) {
	rule := EmptyRule("Priority")
	rule.Colours = parseColours("high=RED|h*=BLUE")
	opts := RenderOptions{Colour: true}

	red := color.New(color.FgRed)
	red.EnableColor()
	blue := color.New(color.FgBlue)
	blue.EnableColor()

	assert.Equal(t, red.Sprint("high"), rule.ApplyColour("high", opts))
	assert.Equal(t, blue.Sprint("hmm"), rule.ApplyColour("hmm", opts))
	assert.NotEqual(t, blue.Sprint("high"), rule.ApplyColour("high", opts))
}

func TestApplyColour_Unmatched(t *testing.T) {
	rule := EmptyRule("Priority")
	rule.Colours = parseColours("high=RED")

	assert.Equal(t, "low", rule.ApplyColour("low", RenderOptions{Colour: true}))
}

func TestApplyColour_Disabled(t *testing.T) {
	rule := EmptyRule("Priority")
	rule.Colours = parseColours("*=RED")

	assert.Equal(t, "high", rule.ApplyColour("high", RenderOptions{}))
}

func TestResolveColour(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		expected *color.Color
	}{
		{name: "named", spec: "GREEN", expected: color.New(color.FgGreen)},
		{name: "grey alias", spec: "GREY", expected: color.New(color.FgHiBlack)},
		{name: "hex", spec: "#ff8000", expected: color.RGB(255, 128, 0)},
		{name: "short hex is reset", spec: "#fff", expected: color.New(color.Reset)},
		{name: "bad hex is reset", spec: "#gggggg", expected: color.New(color.Reset)},
		{name: "unknown name is reset", spec: "PUCE", expected: color.New(color.Reset)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveColour(tt.spec)
			got.EnableColor()
			tt.expected.EnableColor()
			assert.Equal(t, tt.expected.Sprint("x"), got.Sprint("x"))
		})
	}
}
