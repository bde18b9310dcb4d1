// Package notification surfaces user-visible messages for failures the user must
// act on, such as a log directory that cannot be opened.
package notification

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Type represents the category of a notification
type Type string

const (
	// TypeError indicates a failure the user should know about
	TypeError Type = "error"
	// TypeWarning indicates a warning notification
	TypeWarning Type = "warning"
	// TypeInfo indicates an informational notification
	TypeInfo Type = "info"
)

// Notification represents a single notification event
type Notification struct {
	ID        string         `json:"id"`
	Type      Type           `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Component string         `json:"component,omitempty"` // source component, e.g. "shell"
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewNotification creates a new notification with a unique ID and timestamp
func NewNotification(notifType Type, title, message string) *Notification {
	return &Notification{
		ID:        uuid.New().String(),
		Type:      notifType,
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
		Metadata:  make(map[string]any),
	}
}

// NewError is shorthand for an error notification
func NewError(title, message string) *Notification {
	return NewNotification(TypeError, title, message)
}

// WithComponent sets the component field and returns the notification for chaining
func (n *Notification) WithComponent(component string) *Notification {
	n.Component = component
	return n
}

// WithMetadata adds metadata and returns the notification for chaining
func (n *Notification) WithMetadata(key string, value any) *Notification {
	if n.Metadata == nil {
		n.Metadata = make(map[string]any)
	}
	n.Metadata[key] = value
	return n
}

// Clone returns a copy safe to hand to another goroutine. Metadata is copied shallowly.
func (n *Notification) Clone() *Notification {
	if n == nil {
		return nil
	}
	clone := *n
	clone.Metadata = maps.Clone(n.Metadata)
	return &clone
}
