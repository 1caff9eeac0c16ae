package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerFormats(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "json", &slog.HandlerOptions{}, nil).Info("hello", "k", 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.EqualValues(t, 1, record["k"])

	buf.Reset()
	newLogger(&buf, "yaml", &slog.HandlerOptions{}, nil).Info("hello")
	assert.Contains(t, buf.String(), "ignoring invalid logger options")
	assert.Contains(t, buf.String(), "options.format=yaml")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNewLevelAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger := New(&Options{LogLevel: "WARN", LogFile: path, LogFormat: "text"})
	logger.Info("hidden")
	logger.Warn("shown")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hidden")
	assert.Contains(t, string(b), "shown")
}

func TestNewInvalidLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	New(&Options{LogLevel: "loud", LogFile: path}).Debug("hidden")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "options.level=loud")
	assert.NotContains(t, string(b), "hidden")
}
