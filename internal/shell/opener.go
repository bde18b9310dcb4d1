// Package shell hands directories to the host's file browser.
package shell

import (
	"os/exec"
	"runtime"

	"github.com/spf13/afero"

	"github.com/wallyouneed/wallyouneed/internal/errors"
	"github.com/wallyouneed/wallyouneed/internal/logger"
	"github.com/wallyouneed/wallyouneed/internal/notification"
)

// ErrDirectoryOpenFailed is attached to logs and notifications when the log
// directory cannot be shown. It is never returned to callers.
var ErrDirectoryOpenFailed = errors.NewStd("failed to open log directory")

const notificationTitle = "Unable to open log folder"

// Launcher starts the platform file browser on a directory without waiting for it.
type Launcher interface {
	Launch(dir string) error
}

// ExecLauncher runs the platform's file browser command.
type ExecLauncher struct {
	goos string
}

// NewExecLauncher creates a launcher for the running platform
func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{goos: runtime.GOOS}
}

// Command returns the launcher program for the platform
func (l *ExecLauncher) Command() string {
	switch l.goos {
	case "windows":
		return "explorer"
	case "darwin":
		return "open"
	default:
		return "xdg-open"
	}
}

// Launch starts the file browser with dir as its only argument and returns once
// the process has started.
func (l *ExecLauncher) Launch(dir string) error {
	cmd := exec.Command(l.Command(), dir) //nolint:gosec // program is fixed per platform
	if err := cmd.Start(); err != nil {
		return err
	}
	// reap the child; explorer exits non-zero even on success
	go func() { _ = cmd.Wait() }()
	return nil
}

// Opener shows the log directory in the host file browser.
type Opener struct {
	fs       afero.Fs
	logDir   string
	launcher Launcher
	notifier notification.Notifier
	log      logger.Logger
}

// Option configures an Opener
type Option func(*Opener)

// WithFs sets the filesystem used for the existence check
func WithFs(fs afero.Fs) Option {
	return func(o *Opener) { o.fs = fs }
}

// WithLauncher replaces the platform launcher
func WithLauncher(l Launcher) Option {
	return func(o *Opener) { o.launcher = l }
}

// WithNotifier sets where user-visible failures go
func WithNotifier(n notification.Notifier) Option {
	return func(o *Opener) { o.notifier = n }
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(o *Opener) { o.log = l }
}

// NewOpener creates an Opener for logDir
func NewOpener(logDir string, opts ...Option) *Opener {
	o := &Opener{logDir: logDir}
	for _, opt := range opts {
		opt(o)
	}
	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}
	if o.launcher == nil {
		o.launcher = NewExecLauncher()
	}
	if o.notifier == nil {
		o.notifier = notification.NewConsoleNotifier(nil)
	}
	if o.log == nil {
		o.log = GetLogger()
	}
	return o
}

// OpenLogDirectory asks the file browser to show the log directory. Failures are
// logged and reported through the notifier; nothing is returned.
func (o *Opener) OpenLogDirectory() {
	exists, err := afero.DirExists(o.fs, o.logDir)
	if err != nil || !exists {
		cause := err
		if cause == nil {
			cause = errors.NewStd("directory does not exist")
		}
		o.fail("Log directory does not exist: "+o.logDir, cause)
		return
	}

	if err := o.launcher.Launch(o.logDir); err != nil {
		o.fail("Could not open log directory: "+err.Error(), err)
		return
	}

	o.log.Debug("log directory opened", logger.String("path", o.logDir))
}

func (o *Opener) fail(message string, cause error) {
	err := errors.Newf("%w: %w", ErrDirectoryOpenFailed, cause).
		Component("shell").
		Category(errors.CategoryShell).
		Context("path", o.logDir).
		Build()

	o.log.Error("Failed to open log directory",
		logger.String("path", o.logDir),
		logger.Error(err))

	o.notifier.Notify(notification.NewError(notificationTitle, message).
		WithComponent("shell").
		WithMetadata("path", o.logDir))
}

// GetLogger returns the shell package logger.
func GetLogger() logger.Logger {
	return logger.Global().Module("shell")
}
