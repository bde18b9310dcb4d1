// Package logger provides a structured, module-aware logging system built on Go's standard log/slog.
//
// # Overview
//
// A CentralLogger owns the sinks: a JSON file sink rolled by lumberjack inside the
// application's log directory and an optional human-readable console sink. Code never
// talks to the sinks directly. Instead it asks for a module-scoped Logger:
//
//	central, err := logger.NewCentralLogger(cfg)
//	if err != nil {
//	    return err
//	}
//	defer central.Close()
//
//	log := central.Module("wallpaper")
//	log.Info("Wallpaper applied",
//	    logger.String("wallpaper_id", id),
//	    logger.Duration("elapsed", time.Since(start)))
//
// # Bridging
//
// Components that must not own the logging pipeline receive a Provider. A Bridge wraps
// an already constructed Factory (such as a CentralLogger) and hands out per-category
// loggers without re-creating sinks:
//
//	provider, err := logger.NewBridge(central)
//	log := provider.CreateLogger("settings")
//
// Closing the bridge never closes the factory. Whoever built the CentralLogger closes it.
//
// # Output Format
//
// File output is one JSON object per line:
//
//	{"time":"2025-01-12T10:30:00Z","level":"INFO","msg":"Navigation: Home -> Settings","module":"app"}
//
// # Thread Safety
//
// All logger implementations are safe for concurrent use.
package logger

import (
	"time"
	"unique"
)

// LogLevel represents log severity levels
type LogLevel string

const (
	LogLevelTrace    LogLevel = "trace"
	LogLevelDebug    LogLevel = "debug"
	LogLevelInfo     LogLevel = "info"
	LogLevelWarn     LogLevel = "warn"
	LogLevelError    LogLevel = "error"
	LogLevelCritical LogLevel = "critical"
)

// Field represents a structured log field.
// Keys are interned using unique.Make() so the same key string shares a single allocation.
type Field struct {
	Key   string
	Value any
}

// internKey returns an interned version of the key string.
func internKey(key string) string {
	return unique.Make(key).Value()
}

// Pre-interned common keys
var (
	errorKey  = internKey("error")
	moduleKey = internKey("module")
)

// Logger is the centralized logging interface for dependency injection
type Logger interface {
	// Module returns a logger scoped to a specific module
	Module(name string) Logger

	// Leveled logging methods
	Trace(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a logger that adds fields to every entry
	With(fields ...Field) Logger

	// Log with explicit level
	Log(level LogLevel, msg string, fields ...Field)

	// Flush ensures all buffered logs are written
	Flush() error
}

// String creates a string field for structured logging.
func String(key, value string) Field {
	return Field{Key: internKey(key), Value: value}
}

// Int creates an integer field for structured logging.
func Int(key string, value int) Field {
	return Field{Key: internKey(key), Value: value}
}

// Int64 creates a 64-bit integer field for structured logging.
func Int64(key string, value int64) Field {
	return Field{Key: internKey(key), Value: value}
}

// Bool creates a boolean field for structured logging.
func Bool(key string, value bool) Field {
	return Field{Key: internKey(key), Value: value}
}

// Error creates an error field for structured logging.
//
// The field key is always "error". If err is nil, the value will be nil.
//
//	if err := exporter.Export(ctx); err != nil {
//	    log.Error("Log export failed", logger.Error(err))
//	}
func Error(err error) Field {
	if err == nil {
		return Field{Key: errorKey, Value: nil}
	}
	return Field{Key: errorKey, Value: err.Error()}
}

// Duration creates a duration field, rendered as a human-readable string (e.g. "1.5s").
func Duration(key string, value time.Duration) Field {
	return Field{Key: internKey(key), Value: value}
}

// Any creates a field with any value for structured logging.
//
// Prefer the type-specific constructors for simple types.
func Any(key string, value any) Field {
	return Field{Key: internKey(key), Value: value}
}
