package metrics

// Operation names recorded by components.
const (
	// OpLogExport represents a full log archive export.
	OpLogExport = "log_export"
)

// Status values shared by all operations.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// exportDurationBuckets spans 10ms to 2 minutes; large log directories compress slowly.
var exportDurationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120}
