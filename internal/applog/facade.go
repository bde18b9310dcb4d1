// Package applog is the application-facing logging facade. It renders message
// templates into structured events, tags domain events, and fronts the log export
// and log folder features.
package applog

import (
	"context"

	"github.com/spf13/afero"

	"github.com/wallyouneed/wallyouneed/internal/conf"
	"github.com/wallyouneed/wallyouneed/internal/errors"
	"github.com/wallyouneed/wallyouneed/internal/logger"
	"github.com/wallyouneed/wallyouneed/internal/notification"
	"github.com/wallyouneed/wallyouneed/internal/observability/metrics"
	"github.com/wallyouneed/wallyouneed/internal/shell"
	"github.com/wallyouneed/wallyouneed/internal/support"
)

// DefaultCategory is the logger category used when none is configured
const DefaultCategory = "app"

// Event types attached to domain events
const (
	EventUIInteraction = "ui_interaction"
	EventNavigation    = "navigation"
	EventWallpaper     = "wallpaper"
)

// ReportExporter produces a log archive
type ReportExporter interface {
	ExportReport(ctx context.Context) (support.Report, error)
}

// DirectoryOpener shows the log directory to the user
type DirectoryOpener interface {
	OpenLogDirectory()
}

// ExportResult is delivered by ExportLogsAsync
type ExportResult struct {
	ID   string
	Path string
	Err  error
}

// Facade is safe for concurrent use. Log methods never fail or return values.
type Facade struct {
	paths    conf.Paths
	category string
	log      logger.Logger

	fs       afero.Fs
	exporter ReportExporter
	opener   DirectoryOpener
	notifier notification.Notifier
	recorder metrics.Recorder
}

// Option configures a Facade
type Option func(*Facade)

// WithCategory sets the logger category. Defaults to "app".
func WithCategory(category string) Option {
	return func(f *Facade) { f.category = category }
}

// WithFs sets the filesystem used for the log directory and exports
func WithFs(fs afero.Fs) Option {
	return func(f *Facade) { f.fs = fs }
}

// WithExporter replaces the archive exporter
func WithExporter(e ReportExporter) Option {
	return func(f *Facade) { f.exporter = e }
}

// WithOpener replaces the directory opener
func WithOpener(o DirectoryOpener) Option {
	return func(f *Facade) { f.opener = o }
}

// WithNotifier sets the notifier used by the default directory opener
func WithNotifier(n notification.Notifier) Option {
	return func(f *Facade) { f.notifier = n }
}

// WithRecorder sets the metrics recorder used by the default exporter
func WithRecorder(r metrics.Recorder) Option {
	return func(f *Facade) { f.recorder = r }
}

// New creates the log directory and binds a category logger from provider.
func New(paths conf.Paths, provider logger.Provider, opts ...Option) (*Facade, error) {
	if provider == nil {
		return nil, errors.New(logger.ErrInvalidConfiguration).
			Component("applog").
			Category(errors.CategoryLogger).
			Context("reason", "nil provider").
			Build()
	}

	f := &Facade{paths: paths, category: DefaultCategory}
	for _, opt := range opts {
		opt(f)
	}
	if f.fs == nil {
		f.fs = afero.NewOsFs()
	}

	if err := f.fs.MkdirAll(paths.LogDir, 0o755); err != nil {
		return nil, errors.New(err).
			Component("applog").
			Category(errors.CategoryFileIO).
			Context("operation", "create_log_directory").
			Context("path", paths.LogDir).
			Build()
	}

	f.log = provider.CreateLogger(f.category)

	if f.exporter == nil {
		exporterOpts := []support.ExporterOption{
			support.WithFs(f.fs),
			support.WithLogger(provider.CreateLogger("support")),
		}
		if f.recorder != nil {
			exporterOpts = append(exporterOpts, support.WithRecorder(f.recorder))
		}
		f.exporter = support.NewExporter(paths, exporterOpts...)
	}
	if f.opener == nil {
		openerOpts := []shell.Option{
			shell.WithFs(f.fs),
			shell.WithLogger(provider.CreateLogger("shell")),
		}
		if f.notifier != nil {
			openerOpts = append(openerOpts, shell.WithNotifier(f.notifier))
		}
		f.opener = shell.NewOpener(paths.LogDir, openerOpts...)
	}

	return f, nil
}

// LogDirectory returns the resolved log directory
func (f *Facade) LogDirectory() string {
	return f.paths.LogDir
}

// LogDebug emits a debug event rendered from a message template
func (f *Facade) LogDebug(msg string, args ...any) {
	f.emit(logger.LogLevelDebug, msg, args, nil)
}

// LogInfo emits an info event rendered from a message template
func (f *Facade) LogInfo(msg string, args ...any) {
	f.emit(logger.LogLevelInfo, msg, args, nil)
}

// LogWarning emits a warning event rendered from a message template
func (f *Facade) LogWarning(msg string, args ...any) {
	f.emit(logger.LogLevelWarn, msg, args, nil)
}

// LogError emits an error event with the error message, its type and a stack trace.
func (f *Facade) LogError(err error, msg string, args ...any) {
	f.emit(logger.LogLevelError, msg, args, errorFields(err))
}

// LogCritical is LogError at critical level.
func (f *Facade) LogCritical(err error, msg string, args ...any) {
	f.emit(logger.LogLevelCritical, msg, args, errorFields(err))
}

// LogUserInteraction records a UI control action
func (f *Facade) LogUserInteraction(control, action string) {
	f.emit(logger.LogLevelInfo, "User interaction: {ControlName} - {Action}",
		[]any{control, action}, []logger.Field{logger.String("event_type", EventUIInteraction)})
}

// LogNavigation records a page transition
func (f *Facade) LogNavigation(from, to string) {
	f.emit(logger.LogLevelInfo, "Navigation: {FromPage} -> {ToPage}",
		[]any{from, to}, []logger.Field{logger.String("event_type", EventNavigation)})
}

// LogWallpaperOperation records an action on a wallpaper
func (f *Facade) LogWallpaperOperation(id, action string) {
	f.emit(logger.LogLevelInfo, "Wallpaper operation: {WallpaperId} - {Action}",
		[]any{id, action}, []logger.Field{logger.String("event_type", EventWallpaper)})
}

func (f *Facade) emit(level logger.LogLevel, tmpl string, args []any, extra []logger.Field) {
	msg, fields := renderTemplate(tmpl, args)
	f.log.Log(level, msg, append(fields, extra...)...)
}

// errorFields must be called directly from a Facade method so the stack starts
// at the caller of that method.
func errorFields(err error) []logger.Field {
	fields := make([]logger.Field, 0, 3)
	if err != nil {
		fields = append(fields,
			logger.Error(err),
			logger.String("error_type", errorType(err)))
	}
	return append(fields, logger.String("stack", stackFor(err, 2)))
}

// ExportLogs bundles the log directory and an environment snapshot into a zip
// archive and returns its path.
func (f *Facade) ExportLogs(ctx context.Context) (string, error) {
	report, err := f.exporter.ExportReport(ctx)
	if err != nil {
		return "", err
	}
	return report.Path, nil
}

// ExportLogsAsync runs ExportLogs on its own goroutine. The channel receives
// exactly one result and is then closed.
func (f *Facade) ExportLogsAsync(ctx context.Context) <-chan ExportResult {
	results := make(chan ExportResult, 1)
	go func() {
		defer close(results)
		report, err := f.exporter.ExportReport(ctx)
		result := ExportResult{ID: report.ID, Err: err}
		if err == nil {
			result.Path = report.Path
		}
		results <- result
	}()
	return results
}

// OpenLogDirectory shows the log directory in the file browser. Failures are
// reported to the user, never to the caller.
func (f *Facade) OpenLogDirectory() {
	f.opener.OpenLogDirectory()
}
