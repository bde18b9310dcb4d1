package support

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/wallyouneed/wallyouneed/internal/errors"
	"github.com/wallyouneed/wallyouneed/internal/logger"
)

// Snapshotter writes an environment snapshot into a directory.
type Snapshotter interface {
	WriteSnapshot(ctx context.Context, dir string) error
}

// EnvironmentSnapshotter renders a Probe's facts into system_info.txt.
type EnvironmentSnapshotter struct {
	fs    afero.Fs
	probe Probe
	now   func() time.Time
	log   logger.Logger
}

// SnapshotOption configures an EnvironmentSnapshotter
type SnapshotOption func(*EnvironmentSnapshotter)

// WithProbe replaces the host probe
func WithProbe(p Probe) SnapshotOption {
	return func(s *EnvironmentSnapshotter) { s.probe = p }
}

// WithSnapshotClock sets the clock used for the Timestamp line
func WithSnapshotClock(now func() time.Time) SnapshotOption {
	return func(s *EnvironmentSnapshotter) { s.now = now }
}

// WithSnapshotLogger sets the logger
func WithSnapshotLogger(l logger.Logger) SnapshotOption {
	return func(s *EnvironmentSnapshotter) { s.log = l }
}

// NewEnvironmentSnapshotter creates a snapshotter writing through fs
func NewEnvironmentSnapshotter(fs afero.Fs, opts ...SnapshotOption) *EnvironmentSnapshotter {
	s := &EnvironmentSnapshotter{fs: fs, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = GetLogger()
	}
	if s.probe == nil {
		s.probe = NewHostProbe(s.log)
	}
	return s
}

// WriteSnapshot writes system_info.txt into dir, replacing any existing file.
// Only the write itself can fail.
func (s *EnvironmentSnapshotter) WriteSnapshot(ctx context.Context, dir string) error {
	info := s.probe.SystemInfo(ctx)
	info.Timestamp = s.now()
	components := s.probe.LoadedComponents(ctx)

	target := filepath.Join(dir, SnapshotFileName)
	if err := afero.WriteFile(s.fs, target, []byte(RenderSnapshot(info, components)), 0o644); err != nil {
		return errors.New(err).
			Component("support").
			Category(errors.CategoryFileIO).
			Context("operation", "write_snapshot").
			Context("path", target).
			Build()
	}

	s.log.Debug("environment snapshot written",
		logger.String("path", target),
		logger.Int("components", len(components)))
	return nil
}

// RenderSnapshot formats the snapshot text
func RenderSnapshot(info SystemInfo, components []string) string {
	var b strings.Builder

	b.WriteString("System Information\n")
	b.WriteString("==================\n")
	writeField(&b, "Timestamp", info.Timestamp.Format("2006-01-02 15:04:05"))
	writeField(&b, "OS Version", info.OSVersion)
	writeField(&b, "Runtime Version", info.RuntimeVersion)
	writeField(&b, "64-bit Process", strconv.FormatBool(info.Is64BitProcess))
	writeField(&b, "64-bit OS", strconv.FormatBool(info.Is64BitOS))
	writeField(&b, "Machine Name", info.MachineName)
	writeField(&b, "Processor Count", countOrUnknown(int64(info.ProcessorCount), ""))
	writeField(&b, "System Directory", info.SystemDirectory)
	writeField(&b, "User Domain", info.UserDomain)
	writeField(&b, "User Name", info.UserName)
	writeField(&b, "Working Set", countOrUnknown(info.WorkingSet, " bytes"))

	b.WriteString("\n")
	b.WriteString("Loaded Components\n")
	b.WriteString("=================\n")
	for _, c := range components {
		b.WriteString(c)
		b.WriteString("\n")
	}

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		value = unknownValue
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

func countOrUnknown(n int64, unit string) string {
	if n < 0 {
		return ""
	}
	return strconv.FormatInt(n, 10) + unit
}
