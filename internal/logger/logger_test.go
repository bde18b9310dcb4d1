package logger_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallyouneed/wallyouneed/internal/logger"
)

// decodeLines parses JSON log lines from buf
func decodeLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()

	var entries []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "log line should be valid JSON: %s", line)
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

// TestLogLevels tests that different log levels are properly handled
func TestLogLevels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		configLevel   logger.LogLevel
		wantLevel     string
		logFunc       func(l logger.Logger, msg string)
		shouldContain bool
	}{
		{"Debug log in Debug level", logger.LogLevelDebug, "DEBUG", func(l logger.Logger, msg string) { l.Debug(msg) }, true},
		{"Info log in Debug level", logger.LogLevelDebug, "INFO", func(l logger.Logger, msg string) { l.Info(msg) }, true},
		{"Debug log in Info level", logger.LogLevelInfo, "DEBUG", func(l logger.Logger, msg string) { l.Debug(msg) }, false},
		{"Warn log in Info level", logger.LogLevelInfo, "WARN", func(l logger.Logger, msg string) { l.Warn(msg) }, true},
		{"Error log in Warn level", logger.LogLevelWarn, "ERROR", func(l logger.Logger, msg string) { l.Error(msg) }, true},
		{"Warn log in Error level", logger.LogLevelError, "WARN", func(l logger.Logger, msg string) { l.Warn(msg) }, false},
		{"Trace log in Debug level", logger.LogLevelDebug, "TRACE", func(l logger.Logger, msg string) { l.Trace(msg) }, false},
		{"Trace log in Trace level", logger.LogLevelTrace, "TRACE", func(l logger.Logger, msg string) { l.Trace(msg) }, true},
		{
			"Critical log in Error level", logger.LogLevelError, "CRITICAL",
			func(l logger.Logger, msg string) { l.Log(logger.LogLevelCritical, msg) }, true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			log := logger.NewSlogLogger(buf, tc.configLevel, time.UTC)

			testMessage := "test message for " + tc.name
			tc.logFunc(log, testMessage)

			entries := decodeLines(t, buf.Bytes())
			if !tc.shouldContain {
				assert.Empty(t, entries)
				return
			}
			require.Len(t, entries, 1)
			assert.Equal(t, tc.wantLevel, entries[0]["level"])
			assert.Equal(t, testMessage, entries[0]["msg"])
		})
	}
}

func TestStructuredFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	factory := logger.NewWriterFactory(buf, logger.LogLevelDebug, time.UTC)

	log := factory.Module("export").With(logger.String("export_id", "abc"))
	log.Info("Log export completed",
		logger.Int("files", 3),
		logger.Bool("ok", true),
		logger.Duration("elapsed", 1500*time.Millisecond),
		logger.Error(os.ErrPermission))

	entries := decodeLines(t, buf.Bytes())
	require.Len(t, entries, 1)
	entry := entries[0]

	assert.Equal(t, "export", entry["module"])
	assert.Equal(t, "abc", entry["export_id"])
	assert.InDelta(t, 3, entry["files"], 0)
	assert.Equal(t, true, entry["ok"])
	assert.Equal(t, "1.5s", entry["elapsed"])
	assert.Equal(t, os.ErrPermission.Error(), entry["error"])
}

func TestSubModuleNaming(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	factory := logger.NewWriterFactory(buf, logger.LogLevelInfo, nil)

	factory.Module("support").Module("snapshot").Info("written")

	entries := decodeLines(t, buf.Bytes())
	require.Len(t, entries, 1)
	assert.Equal(t, "support.snapshot", entries[0]["module"])
}

func TestCentralLoggerWritesJSONFile(t *testing.T) {
	t.Parallel()

	logDir := filepath.Join(t.TempDir(), "WallYouNeed", "Logs")
	cfg := logger.NewDefaultConfig(logDir, "debug")
	cfg.Console.Enabled = false
	cfg.ModuleLevels = map[string]string{"noisy": "error"}

	central, err := logger.NewCentralLogger(cfg)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(logDir, logger.DefaultLogFileName), central.LogFilePath())

	central.Module("app").Debug("debug entry")
	central.Module("noisy").Info("suppressed entry")
	central.Module("noisy").Error("kept entry")
	require.NoError(t, central.Flush())
	require.NoError(t, central.Close())

	data, err := os.ReadFile(central.LogFilePath())
	require.NoError(t, err)

	entries := decodeLines(t, data)
	require.Len(t, entries, 2)
	assert.Equal(t, "debug entry", entries[0]["msg"])
	assert.Equal(t, "app", entries[0]["module"])
	assert.Equal(t, "kept entry", entries[1]["msg"])
}

func TestNewCentralLoggerRejectsNilConfig(t *testing.T) {
	t.Parallel()

	_, err := logger.NewCentralLogger(nil)
	require.Error(t, err)
}

func TestNewCentralLoggerRejectsBadTimezone(t *testing.T) {
	t.Parallel()

	cfg := logger.NewDefaultConfig(t.TempDir(), "info")
	cfg.Timezone = "Not/AZone"

	_, err := logger.NewCentralLogger(cfg)
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    logger.LogLevel
		wantErr bool
	}{
		{"debug", logger.LogLevelDebug, false},
		{"warning", logger.LogLevelWarn, false},
		{"critical", logger.LogLevelCritical, false},
		{"verbose", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := logger.ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
