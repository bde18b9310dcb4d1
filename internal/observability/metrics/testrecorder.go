package metrics

import "sync"

// TestRecorder is an in-memory Recorder for tests.
type TestRecorder struct {
	mu         sync.RWMutex
	operations map[string]map[string]int
	durations  map[string][]float64
	errors     map[string]map[string]int
	counts     map[string]int
}

// NewTestRecorder creates a new TestRecorder instance.
func NewTestRecorder() *TestRecorder {
	return &TestRecorder{
		operations: make(map[string]map[string]int),
		durations:  make(map[string][]float64),
		errors:     make(map[string]map[string]int),
		counts:     make(map[string]int),
	}
}

// RecordOperation implements the Recorder interface for testing.
func (r *TestRecorder) RecordOperation(operation, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.operations[operation] == nil {
		r.operations[operation] = make(map[string]int)
	}
	r.operations[operation][status]++
}

// RecordDuration implements the Recorder interface for testing.
func (r *TestRecorder) RecordDuration(operation string, seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.durations[operation] = append(r.durations[operation], seconds)
}

// RecordError implements the Recorder interface for testing.
func (r *TestRecorder) RecordError(operation, errorType string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.errors[operation] == nil {
		r.errors[operation] = make(map[string]int)
	}
	r.errors[operation][errorType]++
}

// RecordCount implements the CountRecorder interface for testing.
func (r *TestRecorder) RecordCount(operation string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counts[operation] += n
}

// GetOperationCount returns the count of a specific operation and status.
func (r *TestRecorder) GetOperationCount(operation, status string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if statusMap, ok := r.operations[operation]; ok {
		return statusMap[status]
	}
	return 0
}

// GetDurations returns all recorded durations for a specific operation.
func (r *TestRecorder) GetDurations(operation string) []float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if durations, ok := r.durations[operation]; ok {
		result := make([]float64, len(durations))
		copy(result, durations)
		return result
	}
	return nil
}

// GetErrorCount returns the count of a specific error type for an operation.
func (r *TestRecorder) GetErrorCount(operation, errorType string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if errorMap, ok := r.errors[operation]; ok {
		return errorMap[errorType]
	}
	return 0
}

// GetCount returns the accumulated count for an operation.
func (r *TestRecorder) GetCount(operation string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.counts[operation]
}

// HasRecordedMetrics returns true if any metrics have been recorded.
func (r *TestRecorder) HasRecordedMetrics() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.operations) > 0 || len(r.durations) > 0 || len(r.errors) > 0 || len(r.counts) > 0
}
