package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json"}, &buf)

	logger.Debug("hidden")
	logger.Info("Indexing complete", "documents", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Indexing complete", entry["msg"])
	assert.Equal(t, float64(3), entry["documents"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug"}, &buf)

	logger.Debug("Processed document", "id", "a.md")

	assert.Contains(t, buf.String(), "msg=\"Processed document\"")
	assert.Contains(t, buf.String(), "id=a.md")
}
