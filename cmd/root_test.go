package cmd

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	runtimectx "github.com/wallyouneed/wallyouneed/internal/runtime"
)

// setupEnv points every configurable directory into a temp dir
func setupEnv(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("WALLYOUNEED_PATHS_DATAROOT", filepath.Join(root, "data"))
	t.Setenv("WALLYOUNEED_PATHS_OUTPUTDIR", filepath.Join(root, "out"))
	t.Setenv("WALLYOUNEED_PATHS_TEMPDIR", filepath.Join(root, "tmp"))
	t.Setenv("WALLYOUNEED_LOGGING_CONSOLE", "false")
	t.Setenv("WALLYOUNEED_LOGGING_LEVEL", "debug")
	t.Setenv("WALLYOUNEED_METRICS_ENABLED", "false")
	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := RootCommand(runtimectx.NewContext("v0.0.0-test", "2024-01-02"))
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func TestLogsPath(t *testing.T) {
	root := setupEnv(t)

	stdout, _, err := execute(t, "logs", "path")
	require.NoError(t, err)

	want := filepath.Join(root, "data", "WallYouNeed", "Logs")
	assert.Equal(t, want, strings.TrimSpace(stdout))
	assert.DirExists(t, want)
}

func TestLogsEmitAndExport(t *testing.T) {
	root := setupEnv(t)

	_, _, err := execute(t, "logs", "emit", "--level", "warn", "Low disk space on {Drive}", "C:")
	require.NoError(t, err)
	_, _, err = execute(t, "logs", "emit", "--level", "error", "--error", "disk full", "Save failed")
	require.NoError(t, err)

	logFile := filepath.Join(root, "data", "WallYouNeed", "Logs", "wallyouneed.log")
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Low disk space on C:"`)
	assert.Contains(t, string(data), `"Drive":"C:"`)
	assert.Contains(t, string(data), `"error":"disk full"`)

	stdout, _, err := execute(t, "logs", "export")
	require.NoError(t, err)

	archive := strings.TrimSpace(stdout)
	assert.Equal(t, filepath.Join(root, "out"), filepath.Dir(archive))
	assert.True(t, strings.HasPrefix(filepath.Base(archive), "WallYouNeed_Logs_"))

	zr, err := zip.OpenReader(archive)
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"wallyouneed.log", "system_info.txt"}, names)

	leftovers, err := os.ReadDir(filepath.Join(root, "tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestLogsExportPrintsMetrics(t *testing.T) {
	setupEnv(t)
	t.Setenv("WALLYOUNEED_METRICS_ENABLED", "true")

	stdout, stderr, err := execute(t, "logs", "export")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(stdout))
	assert.Contains(t, stderr, `wallyouneed_log_exports_total{operation="log_export",status="success"} 1`)
}

func TestLogsEmitRejectsUnknownLevel(t *testing.T) {
	setupEnv(t)

	_, _, err := execute(t, "logs", "emit", "--level", "loud", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestLogsEmitRejectsTraceLevel(t *testing.T) {
	setupEnv(t)

	_, _, err := execute(t, "logs", "emit", "--level", "trace", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported by emit")
}

func TestConfigShow(t *testing.T) {
	root := setupEnv(t)

	stdout, _, err := execute(t, "config", "show")
	require.NoError(t, err)

	var doc struct {
		Source   string `yaml:"source"`
		Settings struct {
			Logging struct {
				Level   string `yaml:"level"`
				Console bool   `yaml:"console"`
			} `yaml:"logging"`
		} `yaml:"settings"`
		Resolved struct {
			LogDir string `yaml:"logdir"`
		} `yaml:"resolved"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))

	assert.Equal(t, "defaults", doc.Source)
	assert.Equal(t, "debug", doc.Settings.Logging.Level)
	assert.False(t, doc.Settings.Logging.Console)
	assert.Equal(t, filepath.Join(root, "data", "WallYouNeed", "Logs"), doc.Resolved.LogDir)
}

func TestConfigFileFlag(t *testing.T) {
	root := setupEnv(t)
	os.Unsetenv("WALLYOUNEED_LOGGING_LEVEL") //nolint:errcheck // restored by t.Setenv cleanup

	cfgFile := filepath.Join(root, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("logging:\n  level: warn\n"), 0o600))

	stdout, _, err := execute(t, "--config", cfgFile, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "source: "+cfgFile)
	assert.Contains(t, stdout, "level: warn")
}

func TestVersionFlag(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "v0.0.0-test (built 2024-01-02)")
}
