// Package app assembles the logging pipeline, the log facade and optional
// metrics from loaded settings.
package app

import (
	"io"
	"os"

	"github.com/wallyouneed/wallyouneed/internal/applog"
	"github.com/wallyouneed/wallyouneed/internal/conf"
	"github.com/wallyouneed/wallyouneed/internal/errors"
	"github.com/wallyouneed/wallyouneed/internal/logger"
	"github.com/wallyouneed/wallyouneed/internal/notification"
	"github.com/wallyouneed/wallyouneed/internal/observability"
	runtimectx "github.com/wallyouneed/wallyouneed/internal/runtime"
)

// App holds the services a command works with. Close releases the log file.
type App struct {
	Settings *conf.Settings
	Paths    conf.Paths
	Runtime  *runtimectx.Context

	Central *logger.CentralLogger
	Logs    *applog.Facade
	Metrics *observability.Metrics // nil unless metrics.enabled

	ownsGlobal bool
}

// Option configures New
type Option func(*options)

type options struct {
	notifyOut     io.Writer
	installGlobal bool
}

// WithGlobalLogger installs the central logger as the process-wide logger until Close
func WithGlobalLogger() Option {
	return func(o *options) { o.installGlobal = true }
}

// WithNotificationOutput sets where user-facing notifications are printed. Defaults to stderr.
func WithNotificationOutput(w io.Writer) Option {
	return func(o *options) { o.notifyOut = w }
}

// New builds the central logger from settings and layers the facade on top of it
// through a logger bridge. The central logger is owned by the returned App.
func New(settings *conf.Settings, rt *runtimectx.Context, opts ...Option) (*App, error) {
	if err := conf.ValidateSettings(settings); err != nil {
		return nil, err
	}
	o := options{notifyOut: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	paths := settings.ResolvePaths()
	central, err := logger.NewCentralLogger(settings.LoggerConfig(paths))
	if err != nil {
		return nil, errors.New(err).
			Component("app").
			Category(errors.CategoryLogger).
			Context("log_dir", paths.LogDir).
			Build()
	}

	a := &App{
		Settings: settings,
		Paths:    paths,
		Runtime:  rt,
		Central:  central,
	}

	bridge, err := logger.NewBridge(central)
	if err != nil {
		_ = central.Close()
		return nil, err
	}

	facadeOpts := []applog.Option{
		applog.WithNotifier(notification.NewConsoleNotifier(o.notifyOut)),
	}
	if settings.Metrics.Enabled {
		m, err := observability.NewMetrics()
		if err != nil {
			_ = central.Close()
			return nil, err
		}
		a.Metrics = m
		facadeOpts = append(facadeOpts, applog.WithRecorder(m.Export))
	}

	a.Logs, err = applog.New(paths, bridge, facadeOpts...)
	if err != nil {
		_ = central.Close()
		return nil, err
	}

	if o.installGlobal {
		logger.SetGlobal(central)
		a.ownsGlobal = true
	}

	version := "unknown"
	if rt != nil {
		version = rt.Version
	}
	central.Module("app").Debug("services initialized",
		logger.String("version", version),
		logger.String("log_dir", paths.LogDir),
		logger.String("config_file", settings.ConfigFile),
		logger.Bool("metrics", settings.Metrics.Enabled))

	return a, nil
}

// Close closes the central logger and uninstalls it as the global logger
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	if a.ownsGlobal {
		logger.SetGlobal(nil)
	}
	return a.Central.Close()
}
