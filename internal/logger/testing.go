package logger

import (
	"io"
	"log/slog"
	"time"
)

// NewSlogLogger creates a Logger that writes JSON lines to w.
// Useful in tests and tools that need to inspect output:
//
//	buf := &bytes.Buffer{}
//	log := logger.NewSlogLogger(buf, logger.LogLevelDebug, time.UTC)
func NewSlogLogger(w io.Writer, level LogLevel, tz *time.Location) Logger {
	return NewWriterFactory(w, level, tz).Module("")
}

// WriterFactory is a Factory whose module loggers share one JSON handler writing to w.
// Sharing the handler serializes writes, so w does not need its own locking.
type WriterFactory struct {
	handler slog.Handler
	level   slog.Level
}

// NewWriterFactory creates a Factory writing JSON lines to w.
func NewWriterFactory(w io.Writer, level LogLevel, tz *time.Location) *WriterFactory {
	if tz == nil {
		tz = time.UTC
	}
	slogLevel := parseLogLevel(string(level))
	return &WriterFactory{
		handler: slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       slogLevel,
			ReplaceAttr: replaceAttrFunc(tz),
		}),
		level: slogLevel,
	}
}

// Module returns a logger scoped to name.
func (f *WriterFactory) Module(name string) Logger {
	return &moduleLogger{
		module: name,
		logger: slog.New(f.handler),
		level:  f.level,
	}
}
