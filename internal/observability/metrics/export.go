package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// ExportMetrics contains Prometheus metrics for log archive exports.
type ExportMetrics struct {
	ExportsTotal   *prometheus.CounterVec   // exports by operation and status
	ExportDuration *prometheus.HistogramVec // export latency by operation
	ExportErrors   *prometheus.CounterVec   // failures by operation and failed step
	FilesArchived  *prometheus.CounterVec   // archive entries written by operation

	registry *prometheus.Registry
}

// NewExportMetrics creates ExportMetrics and registers them with registry.
func NewExportMetrics(registry *prometheus.Registry) (*ExportMetrics, error) {
	m := &ExportMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register export metrics: %w", err)
	}
	return m, nil
}

func (m *ExportMetrics) initMetrics() {
	m.ExportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallyouneed_log_exports_total",
			Help: "Total number of log export attempts by status",
		},
		[]string{"operation", "status"}, // status: success, error
	)

	m.ExportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallyouneed_log_export_duration_seconds",
			Help:    "Time taken to build a log export archive",
			Buckets: exportDurationBuckets,
		},
		[]string{"operation"},
	)

	m.ExportErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallyouneed_log_export_errors_total",
			Help: "Total number of log export failures by pipeline step",
		},
		[]string{"operation", "step"},
	)

	m.FilesArchived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallyouneed_log_export_files_total",
			Help: "Total number of files written into export archives",
		},
		[]string{"operation"},
	)
}

// RecordOperation implements Recorder.
func (m *ExportMetrics) RecordOperation(operation, status string) {
	m.ExportsTotal.WithLabelValues(operation, status).Inc()
}

// RecordDuration implements Recorder.
func (m *ExportMetrics) RecordDuration(operation string, seconds float64) {
	m.ExportDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordError implements Recorder.
func (m *ExportMetrics) RecordError(operation, errorType string) {
	m.ExportErrors.WithLabelValues(operation, errorType).Inc()
}

// RecordCount implements CountRecorder.
func (m *ExportMetrics) RecordCount(operation string, n int) {
	if n <= 0 {
		return
	}
	m.FilesArchived.WithLabelValues(operation).Add(float64(n))
}

// Describe implements the prometheus.Collector interface.
func (m *ExportMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.ExportsTotal.Describe(ch)
	m.ExportDuration.Describe(ch)
	m.ExportErrors.Describe(ch)
	m.FilesArchived.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *ExportMetrics) Collect(ch chan<- prometheus.Metric) {
	m.ExportsTotal.Collect(ch)
	m.ExportDuration.Collect(ch)
	m.ExportErrors.Collect(ch)
	m.FilesArchived.Collect(ch)
}
