package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportMetricsRecordOperation(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	m, err := NewExportMetrics(registry)
	require.NoError(t, err)

	m.RecordOperation(OpLogExport, StatusSuccess)
	m.RecordOperation(OpLogExport, StatusSuccess)
	m.RecordOperation(OpLogExport, StatusError)

	assert.InDelta(t, 2, testutil.ToFloat64(m.ExportsTotal.WithLabelValues(OpLogExport, StatusSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ExportsTotal.WithLabelValues(OpLogExport, StatusError)), 0)
}

func TestExportMetricsRecordErrorAndCount(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	m, err := NewExportMetrics(registry)
	require.NoError(t, err)

	m.RecordError(OpLogExport, "copy_logs")
	m.RecordCount(OpLogExport, 3)
	m.RecordCount(OpLogExport, 0)
	m.RecordDuration(OpLogExport, 0.42)

	assert.InDelta(t, 1, testutil.ToFloat64(m.ExportErrors.WithLabelValues(OpLogExport, "copy_logs")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.FilesArchived.WithLabelValues(OpLogExport)), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.ExportDuration))
}

func TestNewExportMetricsDuplicateRegistration(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	_, err := NewExportMetrics(registry)
	require.NoError(t, err)

	_, err = NewExportMetrics(registry)
	require.Error(t, err)
}

func TestRecorderImplementations(t *testing.T) {
	t.Parallel()

	var _ Recorder = (*ExportMetrics)(nil)
	var _ CountRecorder = (*ExportMetrics)(nil)
	var _ Recorder = NoOpRecorder{}
	var _ Recorder = (*TestRecorder)(nil)
	var _ CountRecorder = (*TestRecorder)(nil)

	rec := NewTestRecorder()
	assert.False(t, rec.HasRecordedMetrics())

	rec.RecordOperation(OpLogExport, StatusSuccess)
	rec.RecordDuration(OpLogExport, 0.1)
	rec.RecordError(OpLogExport, "snapshot")
	rec.RecordCount(OpLogExport, 2)

	assert.Equal(t, 1, rec.GetOperationCount(OpLogExport, StatusSuccess))
	assert.Equal(t, []float64{0.1}, rec.GetDurations(OpLogExport))
	assert.Equal(t, 1, rec.GetErrorCount(OpLogExport, "snapshot"))
	assert.Equal(t, 2, rec.GetCount(OpLogExport))
	assert.Nil(t, rec.GetDurations("missing"))
}
