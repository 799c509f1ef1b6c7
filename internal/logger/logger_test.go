package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONLinesToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "qi.log")
	log, err := New(Options{FilePath: path, Level: "debug"})
	require.NoError(t, err)

	log.Info("stroke committed", zap.String("document_id", "doc-1"), zap.Int("page", 2))
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &entry))
	assert.Equal(t, "stroke committed", entry["message"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "doc-1", entry["document_id"])
}

func TestNewConsoleHonoursLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Options{Level: "warn", Console: true, ConsoleOutput: &buf})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("visible")
	_ = log.Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestNewWithoutSinksIsNop(t *testing.T) {
	t.Parallel()

	log, err := New(Options{})
	require.NoError(t, err)
	assert.NotPanics(t, func() { log.Info("dropped") })
}
