package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ifreport/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T) *bytes.Buffer {
	t.Helper()
	require.NoError(t, SetupLogger(config.LogConfig{Level: "debug", Format: "json"}))
	var buf bytes.Buffer
	Logger.SetOutput(&buf)
	t.Cleanup(func() { Logger = nil })
	return &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestSetupLoggerLevel(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	require.NoError(t, SetupLogger(config.LogConfig{Level: "error", Format: "text"}))
	assert.Equal(t, logrus.ErrorLevel, Logger.GetLevel())

	require.NoError(t, SetupLogger(config.LogConfig{Level: "bogus", Format: "text"}))
	assert.Equal(t, logrus.WarnLevel, Logger.GetLevel())
}

func TestRunIDOnEveryEntry(t *testing.T) {
	buf := captureJSON(t)

	LogExtraction(3, 2)
	first := decode(t, buf)
	buf.Reset()

	LogSkippedRow(4, 2)
	second := decode(t, buf)

	require.NotEmpty(t, first["run_id"])
	assert.Equal(t, first["run_id"], second["run_id"])
}

func TestLogFetchFields(t *testing.T) {
	buf := captureJSON(t)

	LogFetch("http://example.net:80/x.html", 200, 512, 1500*time.Microsecond)
	entry := decode(t, buf)

	assert.Equal(t, "page fetched", entry["msg"])
	assert.Equal(t, "http://example.net:80/x.html", entry["url"])
	assert.EqualValues(t, 200, entry["status"])
	assert.EqualValues(t, 512, entry["bytes"])
	assert.Equal(t, "1ms", entry["elapsed"])
}

func TestLogSkippedRowIsWarning(t *testing.T) {
	buf := captureJSON(t)

	LogSkippedRow(7, 3)
	entry := decode(t, buf)

	assert.Equal(t, "warning", entry["level"])
	assert.EqualValues(t, 7, entry["row"])
	assert.EqualValues(t, 3, entry["cells"])
}

func TestSetupLoggerFile(t *testing.T) {
	t.Cleanup(func() { Logger = nil })
	path := filepath.Join(t.TempDir(), "nested", "ifreport.log")

	require.NoError(t, SetupLogger(config.LogConfig{Level: "info", Format: "text", File: path, MaxSize: 1}))
	LogExtraction(1, 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "table extracted")
}

func TestGetLoggerFallback(t *testing.T) {
	Logger = nil
	t.Cleanup(func() { Logger = nil })

	l := GetLogger()
	require.NotNil(t, l)
	assert.Same(t, l, GetLogger())
}

func TestResolveLogFile(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)

	got, err := ResolveLogFile("run.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cache, "ifreport", "logs", "run.log"), got)

	explicit := filepath.Join(t.TempDir(), "a", "run.log")
	got, err = ResolveLogFile(explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, got)
	assert.NoDirExists(t, filepath.Dir(explicit))
}
