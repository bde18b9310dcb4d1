package logger

import (
	"reflect"

	"github.com/wallyouneed/wallyouneed/internal/errors"
)

// ErrInvalidConfiguration is returned when a bridge is built without a logging backend.
var ErrInvalidConfiguration = errors.NewStd("invalid logging configuration")

// Factory mints module-scoped loggers. It is implemented by an already configured
// logging pipeline such as *CentralLogger.
type Factory interface {
	Module(name string) Logger
}

// Provider is the contract components use to obtain per-category loggers.
type Provider interface {
	CreateLogger(category string) Logger
	Close() error
}

// Bridge adapts a Factory to the Provider contract. It holds a reference to the
// factory but does not own it: Close never closes or flushes the backend.
type Bridge struct {
	factory Factory
}

// NewBridge wraps an externally owned factory.
func NewBridge(factory Factory) (*Bridge, error) {
	if isNilFactory(factory) {
		return nil, errors.New(ErrInvalidConfiguration).
			Component("logger").
			Category(errors.CategoryLogger).
			Context("operation", "create_logger_bridge").
			Build()
	}
	return &Bridge{factory: factory}, nil
}

// CreateLogger returns the factory's logger for the given category.
func (b *Bridge) CreateLogger(category string) Logger {
	return b.factory.Module(category)
}

// Close is a no-op; the factory's lifetime belongs to whoever constructed it.
func (b *Bridge) Close() error {
	return nil
}

// isNilFactory catches both a nil interface and a typed nil pointer stored in one
func isNilFactory(factory Factory) bool {
	if factory == nil {
		return true
	}
	v := reflect.ValueOf(factory)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Slice, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
