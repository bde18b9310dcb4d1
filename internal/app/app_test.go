package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallyouneed/wallyouneed/internal/conf"
	"github.com/wallyouneed/wallyouneed/internal/errors"
	"github.com/wallyouneed/wallyouneed/internal/observability/metrics"
	runtimectx "github.com/wallyouneed/wallyouneed/internal/runtime"
)

func testSettings(t *testing.T) *conf.Settings {
	t.Helper()
	root := t.TempDir()
	return &conf.Settings{
		Paths: conf.PathSettings{
			DataRoot:  filepath.Join(root, "data"),
			OutputDir: filepath.Join(root, "out"),
			TempDir:   filepath.Join(root, "tmp"),
		},
		Logging: conf.LoggingSettings{
			Level:    "debug",
			Console:  false,
			Filename: "wallyouneed.log",
			Timezone: "UTC",
		},
	}
}

func TestNewWritesThroughCentralLogger(t *testing.T) {
	t.Parallel()

	settings := testSettings(t)
	a, err := New(settings, runtimectx.NewContext("v1.0.0", "2024-01-02"), WithNotificationOutput(&bytes.Buffer{}))
	require.NoError(t, err)

	assert.DirExists(t, a.Paths.LogDir)
	assert.Nil(t, a.Metrics)

	a.Logs.LogNavigation("Home", "Settings")
	require.NoError(t, a.Close())

	data, err := os.ReadFile(filepath.Join(a.Paths.LogDir, "wallyouneed.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Navigation: Home -> Settings"`)
	assert.Contains(t, string(data), `"event_type":"navigation"`)
	assert.Contains(t, string(data), `"version":"v1.0.0"`)
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	t.Parallel()

	settings := testSettings(t)
	settings.Logging.Level = "verbose"

	_, err := New(settings, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestNewRejectsLogFileExportWouldSkip(t *testing.T) {
	t.Parallel()

	settings := testSettings(t)
	settings.Logging.Filename = "app.txt"

	_, err := New(settings, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
	assert.NoDirExists(t, settings.ResolvePaths().LogDir)
}

func TestExportWithMetrics(t *testing.T) {
	t.Parallel()

	settings := testSettings(t)
	settings.Metrics.Enabled = true

	a, err := New(settings, nil, WithNotificationOutput(&bytes.Buffer{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	require.NotNil(t, a.Metrics)

	a.Logs.LogInfo("Application started")

	path, err := a.Logs.ExportLogs(t.Context())
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, a.Paths.OutputDir, filepath.Dir(path))

	assert.InDelta(t, 1, testutil.ToFloat64(a.Metrics.Export.ExportsTotal.WithLabelValues(metrics.OpLogExport, metrics.StatusSuccess)), 0)
	// wallyouneed.log and system_info.txt
	assert.InDelta(t, 2, testutil.ToFloat64(a.Metrics.Export.FilesArchived.WithLabelValues(metrics.OpLogExport)), 0)

	var buf bytes.Buffer
	require.NoError(t, a.Metrics.WriteText(&buf))
	assert.Contains(t, buf.String(), "wallyouneed_log_exports_total")
}

func TestCloseNil(t *testing.T) {
	t.Parallel()

	var a *App
	assert.NoError(t, a.Close())
}
