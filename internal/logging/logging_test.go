package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesJSONToFile(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Level:         "debug",
		FilePath:      filepath.Join(dir, "fathom.log"),
		MaxSizeMB:     1,
		MaxFiles:      2,
		WriteToStderr: false,
	}

	logger, cleanup, err := Setup(cfg)
	require.NoError(t, err)

	logger.Info("search_started", slog.String("query", "test"))
	cleanup()

	data, err := os.ReadFile(cfg.FilePath)
	require.NoError(t, err)

	var entry map[string]any
	line := strings.TrimSpace(string(data))
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "search_started", entry["msg"])
	assert.Equal(t, "test", entry["query"])
}

func TestSetup_LevelFiltering(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Level:         "warn",
		FilePath:      filepath.Join(dir, "fathom.log"),
		MaxSizeMB:     1,
		MaxFiles:      2,
		WriteToStderr: false,
	}

	logger, cleanup, err := Setup(cfg)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Warn("visible")
	cleanup()

	data, err := os.ReadFile(cfg.FilePath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "visible")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.input), "level %q", tt.input)
	}
}

func TestRotatingWriter_RotatesAtSizeLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rot.log")

	w, err := NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)
	defer w.Close()

	// Force the size limit down so a small write triggers rotation.
	w.maxSize = 64

	payload := []byte(strings.Repeat("x", 48) + "\n")
	_, err = w.Write(payload)
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err, "expected rotated file after exceeding size limit")
}

func TestRotatingWriter_KeepsMaxFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rot.log")

	w, err := NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)
	defer w.Close()

	w.maxSize = 16
	for i := 0; i < 6; i++ {
		_, err := w.Write([]byte(strings.Repeat("y", 20)))
		require.NoError(t, err)
	}

	matches, err := filepath.Glob(path + ".*")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(matches), 2)
}
