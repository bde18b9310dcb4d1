package support

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/wallyouneed/wallyouneed/internal/conf"
	"github.com/wallyouneed/wallyouneed/internal/errors"
	"github.com/wallyouneed/wallyouneed/internal/logger"
	"github.com/wallyouneed/wallyouneed/internal/observability/metrics"
)

// maxNameAttempts bounds the _2, _3, ... suffix search for scratch and archive names
const maxNameAttempts = 1000

// Export pipeline steps, used in logs, error context and the error metric label
const (
	stepPrepare  = "prepare_output"
	stepReserve  = "reserve_archive"
	stepScratch  = "create_scratch"
	stepCopy     = "copy_logs"
	stepSnapshot = "snapshot"
	stepArchive  = "archive"
)

// Exporter bundles the log directory into a zip archive.
type Exporter struct {
	fs          afero.Fs
	paths       conf.Paths
	snapshotter Snapshotter
	now         func() time.Time
	log         logger.Logger
	recorder    metrics.Recorder

	// reserveMu serializes name reservation within this process; exclusive
	// creation guards against other processes.
	reserveMu sync.Mutex
}

// ExporterOption configures an Exporter
type ExporterOption func(*Exporter)

// WithFs sets the filesystem. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) ExporterOption {
	return func(e *Exporter) { e.fs = fs }
}

// WithSnapshotter replaces the environment snapshotter
func WithSnapshotter(s Snapshotter) ExporterOption {
	return func(e *Exporter) { e.snapshotter = s }
}

// WithClock sets the clock used for the timestamp token
func WithClock(now func() time.Time) ExporterOption {
	return func(e *Exporter) { e.now = now }
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) ExporterOption {
	return func(e *Exporter) { e.log = l }
}

// WithRecorder sets the metrics recorder
func WithRecorder(r metrics.Recorder) ExporterOption {
	return func(e *Exporter) { e.recorder = r }
}

// NewExporter creates an Exporter for paths
func NewExporter(paths conf.Paths, opts ...ExporterOption) *Exporter {
	e := &Exporter{paths: paths, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	if e.fs == nil {
		e.fs = afero.NewOsFs()
	}
	if e.log == nil {
		e.log = GetLogger()
	}
	if e.recorder == nil {
		e.recorder = metrics.NoOpRecorder{}
	}
	if e.snapshotter == nil {
		e.snapshotter = NewEnvironmentSnapshotter(e.fs,
			WithSnapshotClock(e.now),
			WithSnapshotLogger(e.log))
	}
	return e
}

// Export builds the archive and returns its path.
func (e *Exporter) Export(ctx context.Context) (string, error) {
	report, err := e.ExportReport(ctx)
	if err != nil {
		return "", err
	}
	return report.Path, nil
}

// ExportReport builds the archive and describes the result.
//
// The scratch directory is removed on every exit path. On failure any archive
// file created by this call is removed and the returned error matches
// ErrExportFailed while still unwrapping to the cause.
func (e *Exporter) ExportReport(ctx context.Context) (report Report, err error) {
	start := time.Now()
	report.ID = uuid.New().String()
	log := e.log.With(logger.String("export_id", report.ID))

	ts := e.now().Format(TimestampLayout)
	log.Info("Starting log export",
		logger.String("log_dir", e.paths.LogDir),
		logger.String("output_dir", e.paths.OutputDir))

	fail := func(step string, cause error) (Report, error) {
		log.Error("Log export failed", logger.String("step", step), logger.Error(cause))
		e.recorder.RecordError(metrics.OpLogExport, step)
		e.recorder.RecordOperation(metrics.OpLogExport, metrics.StatusError)
		return Report{ID: report.ID}, errors.New(fmt.Errorf("%w: %s: %w", ErrExportFailed, step, cause)).
			Component("support").
			Category(errors.CategoryExport).
			Context("step", step).
			Context("export_id", report.ID).
			Timing("log_export", time.Since(start)).
			Build()
	}

	if err := ctx.Err(); err != nil {
		return fail(stepPrepare, err)
	}
	if err := e.fs.MkdirAll(e.paths.OutputDir, 0o755); err != nil {
		return fail(stepPrepare, err)
	}

	dest, partial, archiveFile, err := e.reserveArchive(ts)
	if err != nil {
		return fail(stepReserve, err)
	}
	archiveDone := false
	defer func() {
		if archiveDone {
			return
		}
		_ = archiveFile.Close()
		if rmErr := e.fs.Remove(partial); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn("failed to remove partial archive", logger.String("path", partial), logger.Error(rmErr))
		}
	}()

	if err := ctx.Err(); err != nil {
		return fail(stepScratch, err)
	}
	scratch, err := e.reserveScratch(ts)
	if err != nil {
		return fail(stepScratch, err)
	}
	defer func() {
		if rmErr := e.fs.RemoveAll(scratch); rmErr != nil {
			log.Warn("failed to remove export scratch directory",
				logger.String("path", scratch), logger.Error(rmErr))
		}
	}()

	if err := ctx.Err(); err != nil {
		return fail(stepCopy, err)
	}
	collector := &logFileCollector{fs: e.fs, logDir: e.paths.LogDir}
	copied, err := collector.copyTo(scratch)
	if err != nil {
		return fail(stepCopy, err)
	}
	log.Debug("log files staged", logger.Int("files", copied), logger.String("scratch", scratch))

	if err := ctx.Err(); err != nil {
		return fail(stepSnapshot, err)
	}
	if err := e.snapshotter.WriteSnapshot(ctx, scratch); err != nil {
		return fail(stepSnapshot, err)
	}

	if err := ctx.Err(); err != nil {
		return fail(stepArchive, err)
	}
	entries, err := zipDirectory(e.fs, scratch, archiveFile)
	if err != nil {
		return fail(stepArchive, err)
	}
	if err := archiveFile.Close(); err != nil {
		return fail(stepArchive, err)
	}
	if err := e.publishArchive(partial, dest); err != nil {
		return fail(stepArchive, err)
	}
	archiveDone = true

	report.Path = dest
	report.Files = entries
	if info, statErr := e.fs.Stat(dest); statErr == nil {
		report.Bytes = info.Size()
	}
	report.Duration = time.Since(start)

	e.recorder.RecordOperation(metrics.OpLogExport, metrics.StatusSuccess)
	e.recorder.RecordDuration(metrics.OpLogExport, report.Duration.Seconds())
	if cr, ok := e.recorder.(metrics.CountRecorder); ok {
		cr.RecordCount(metrics.OpLogExport, entries)
	}

	log.Info("Log export completed",
		logger.Int("files", entries),
		logger.Int64("bytes", report.Bytes),
		logger.String("path", dest),
		logger.Duration("duration", report.Duration))

	return report, nil
}

// reserveArchive picks the first archive name, appending _2, _3, ... on collision,
// that is free both as a published archive and as a hidden partial file. The
// partial file is created exclusively and returned open for writing.
func (e *Exporter) reserveArchive(ts string) (dest, partial string, f afero.File, err error) {
	e.reserveMu.Lock()
	defer e.reserveMu.Unlock()

	base := ArchivePrefix + ts
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		name := suffixed(base, attempt) + ArchiveExt
		dest = filepath.Join(e.paths.OutputDir, name)
		_, statErr := e.fs.Stat(dest)
		if statErr == nil {
			continue
		}
		if !os.IsNotExist(statErr) {
			return "", "", nil, statErr
		}

		partial = filepath.Join(e.paths.OutputDir, partialName(name))
		f, err = e.fs.OpenFile(partial, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return dest, partial, f, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", nil, err
		}
	}
	return "", "", nil, fmt.Errorf("no free archive name for %s after %d attempts", base, maxNameAttempts)
}

// publishArchive renames the finished partial file to its final name
func (e *Exporter) publishArchive(partial, dest string) error {
	e.reserveMu.Lock()
	defer e.reserveMu.Unlock()

	_, err := e.fs.Stat(dest)
	if err == nil {
		return &os.PathError{Op: "rename", Path: dest, Err: os.ErrExist}
	}
	if !os.IsNotExist(err) {
		return err
	}
	return e.fs.Rename(partial, dest)
}

// partialName is the hidden name an archive is written under until it is complete
func partialName(name string) string {
	return "." + name + PartialExt
}

// reserveScratch exclusively creates the scratch directory, appending _2, _3, ... on collision
func (e *Exporter) reserveScratch(ts string) (string, error) {
	e.reserveMu.Lock()
	defer e.reserveMu.Unlock()

	if err := e.fs.MkdirAll(e.paths.TempDir, 0o755); err != nil {
		return "", err
	}

	base := ScratchPrefix + ts
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		path := filepath.Join(e.paths.TempDir, suffixed(base, attempt))
		err := e.fs.Mkdir(path, 0o700)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("no free scratch directory for %s after %d attempts", base, maxNameAttempts)
}

// suffixed returns base for the first attempt and base_N afterwards
func suffixed(base string, attempt int) string {
	if attempt == 1 {
		return base
	}
	return base + "_" + strconv.Itoa(attempt)
}

// GetLogger returns the support package logger.
func GetLogger() logger.Logger {
	return logger.Global().Module("support")
}
