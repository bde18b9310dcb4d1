package observability

import "github.com/wallyouneed/wallyouneed/internal/logger"

// Package-level cached logger instance.
// All logging in this package should use this variable.
var log = logger.Global().Module("observability")
