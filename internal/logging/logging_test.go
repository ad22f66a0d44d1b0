package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info", FormatJSON)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("converted", "verses", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "converted", entry["msg"])
	assert.Equal(t, float64(3), entry["verses"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", FormatText)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("careful", "row", 7)

	assert.Contains(t, buf.String(), "msg=careful")
	assert.Contains(t, buf.String(), "row=7")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(nil, "info", "xml")
	assert.Error(t, err)

	_, err = New(nil, "loud", FormatText)
	assert.Error(t, err)
}

func TestRunID(t *testing.T) {
	id := NewRunID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	ctx := WithRunID(context.Background(), id)
	assert.Equal(t, id, GetRunID(ctx))
	assert.Equal(t, "", GetRunID(context.Background()))

	var buf bytes.Buffer
	logger, err := New(&buf, "info", FormatText)
	require.NoError(t, err)

	FromContext(ctx, logger).Info("hello")
	assert.Contains(t, buf.String(), "run_id="+id)
}

func TestFromContext_NilLogger(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background(), nil))
}
