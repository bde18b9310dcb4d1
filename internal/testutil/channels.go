// Package testutil provides shared test utilities.
package testutil

import (
	"testing"
	"time"
)

// Common test timeout constants.
const (
	// DefaultTestTimeout is the standard timeout for most async test operations.
	DefaultTestTimeout = 5 * time.Second

	// ShortTestTimeout is for operations expected to complete quickly.
	ShortTestTimeout = 1 * time.Second
)

// Receive waits for a value on ch or fails the test after timeout.
// It also fails when ch is closed without delivering a value.
func Receive[T any](t *testing.T, ch <-chan T, timeout time.Duration, msg string) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatalf("%s: channel closed without a value", msg)
		}
		return v
	case <-time.After(timeout):
		t.Fatalf("%s: timed out after %v", msg, timeout)
	}
	var zero T
	return zero
}

// RequireClosed fails the test unless ch is closed within timeout.
func RequireClosed[T any](t *testing.T, ch <-chan T, timeout time.Duration) {
	t.Helper()
	select {
	case v, ok := <-ch:
		if ok {
			t.Fatalf("expected closed channel, received %v", v)
		}
	case <-time.After(timeout):
		t.Fatalf("channel not closed after %v", timeout)
	}
}
