package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestJSONFormatAndSingleComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf})

	logger.WithComponent(ComponentCache).Info("hello", FieldCount, 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, ComponentCache, rec[FieldComponent])
	assert.Equal(t, float64(3), rec[FieldCount])
	assert.Equal(t, 1, strings.Count(buf.String(), `"component"`))
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Output: &buf})

	logger.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestContextCarriesLogger(t *testing.T) {
	logger := Discard().WithComponent("probe")

	got := FromContext(NewContext(context.Background(), logger))
	require.NotNil(t, got)
	assert.Equal(t, "probe", got.Component())
}

func TestFromContextFallback(t *testing.T) {
	assert.Equal(t, "unknown", FromContext(context.Background()).Component())
}

func TestLogDatasetLoadedWarnsOnlyWhenRowsDropped(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Level: slog.LevelInfo, Output: &buf}))

	sl.LogDatasetLoaded(context.Background(), "sales.csv", 3, 3, 0, 3)
	assert.NotContains(t, buf.String(), "skipped")

	sl.LogDatasetLoaded(context.Background(), "sales.csv", 3, 2, 1, 2)
	assert.Contains(t, buf.String(), "Rows with unparseable sales skipped")
}

func TestLogErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Level: slog.LevelInfo, Output: &buf}))

	sl.LogError(context.Background(), "Render failed", errors.New("boom"), ComponentChart, OpRender, nil)

	out := buf.String()
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "component=chart")
	assert.Contains(t, out, "operation=render")
}
