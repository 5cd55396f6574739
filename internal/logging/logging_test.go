package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Level
	}{
		{input: "debug", expected: log.DebugLevel},
		{input: "INFO", expected: log.InfoLevel},
		{input: "warning", expected: log.WarnLevel},
		{input: "error", expected: log.ErrorLevel},
		{input: "chatty", expected: log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: log.InfoLevel, Prefix: "tqb"})

	logger.Debug("hidden")
	logger.Info("loaded task queue", "path", "taskqueue.csv", "records", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "loaded task queue")
	assert.Contains(t, out, "path=taskqueue.csv")
	assert.Contains(t, out, "tqb")
}
