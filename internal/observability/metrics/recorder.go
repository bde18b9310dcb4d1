// Package metrics provides custom Prometheus metrics for the WallYouNeed application.
package metrics

// Recorder defines a minimal interface for recording metrics.
// Components depend on it rather than on concrete metric types so tests can
// substitute a TestRecorder or NoOpRecorder.
type Recorder interface {
	// RecordOperation records an operation outcome (e.g. "log_export", "success").
	RecordOperation(operation, status string)

	// RecordDuration records the duration of an operation in seconds.
	RecordDuration(operation string, seconds float64)

	// RecordError records an error occurrence with its type.
	// For log exports errorType is the pipeline step that failed.
	RecordError(operation, errorType string)
}

// CountRecorder is implemented by recorders that also track item counts,
// such as the number of files placed in an archive.
type CountRecorder interface {
	RecordCount(operation string, n int)
}

// NoOpRecorder discards everything. It is the default when metrics are disabled.
type NoOpRecorder struct{}

// RecordOperation implements Recorder.
func (NoOpRecorder) RecordOperation(string, string) {}

// RecordDuration implements Recorder.
func (NoOpRecorder) RecordDuration(string, float64) {}

// RecordError implements Recorder.
func (NoOpRecorder) RecordError(string, string) {}
