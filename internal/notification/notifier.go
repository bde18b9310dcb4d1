package notification

import (
	"io"
	"os"
	"sync"

	"github.com/pterm/pterm"

	"github.com/wallyouneed/wallyouneed/internal/logger"
)

// Notifier delivers notifications to the user. Implementations must be safe for
// concurrent use and must not block the caller for long.
type Notifier interface {
	Notify(n *Notification)
}

// ConsoleNotifier prints notifications to a terminal using pterm prefix printers.
type ConsoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
	log logger.Logger
}

// NewConsoleNotifier creates a notifier writing to out; nil writes to stderr.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleNotifier{
		out: out,
		log: GetLogger(),
	}
}

// Notify prints n with a prefix matching its type
func (c *ConsoleNotifier) Notify(n *Notification) {
	if n == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	printer := c.printerFor(n.Type)
	text := n.Message
	if n.Title != "" {
		text = n.Title + ": " + n.Message
	}
	printer.Println(text)

	c.log.Debug("notification shown",
		logger.String("notification_id", n.ID),
		logger.String("type", string(n.Type)),
		logger.String("component", n.Component))
}

// printerFor selects the pterm printer for a notification type
func (c *ConsoleNotifier) printerFor(t Type) *pterm.PrefixPrinter {
	switch t {
	case TypeError:
		return pterm.Error.WithWriter(c.out)
	case TypeWarning:
		return pterm.Warning.WithWriter(c.out)
	default:
		return pterm.Info.WithWriter(c.out)
	}
}

// Recorder keeps notifications in memory. Used by tests and headless runs.
type Recorder struct {
	mu            sync.Mutex
	notifications []*Notification
}

// NewRecorder returns an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify stores a copy of n
func (r *Recorder) Notify(n *Notification) {
	if n == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n.Clone())
}

// Notifications returns the recorded notifications in delivery order
func (r *Recorder) Notifications() []*Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// GetLogger returns the notification package logger.
func GetLogger() logger.Logger {
	return logger.Global().Module("notification")
}
