package support

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/wallyouneed/wallyouneed/internal/conf"
	"github.com/wallyouneed/wallyouneed/internal/logger"
)

// fixedTime is the clock used by most exporter tests
var fixedTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

// fakeProbe returns deterministic environment facts
type fakeProbe struct{}

func (fakeProbe) SystemInfo(context.Context) SystemInfo {
	return SystemInfo{
		OSVersion:       "TestOS 1.0 (linux 6.1.0)",
		RuntimeVersion:  "go1.26.0",
		Is64BitProcess:  true,
		Is64BitOS:       true,
		MachineName:     "test-host",
		ProcessorCount:  8,
		SystemDirectory: "/usr/lib",
		UserDomain:      "test-host",
		UserName:        "tester",
		WorkingSet:      1048576,
	}
}

func (fakeProbe) LoadedComponents(context.Context) []string {
	return []string{
		"github.com/wallyouneed/wallyouneed@(devel)",
		"github.com/spf13/afero@v1.15.0",
		"/usr/lib/x86_64-linux-gnu/libc.so.6",
	}
}

// failingSnapshotter always fails with err
type failingSnapshotter struct{ err error }

func (f failingSnapshotter) WriteSnapshot(context.Context, string) error { return f.err }

// observingSnapshotter records the output directory listing while the export is in flight
type observingSnapshotter struct {
	Snapshotter
	fs        afero.Fs
	outputDir string
	seen      []string
}

func (o *observingSnapshotter) WriteSnapshot(ctx context.Context, dir string) error {
	entries, err := afero.ReadDir(o.fs, o.outputDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		o.seen = append(o.seen, e.Name())
	}
	return o.Snapshotter.WriteSnapshot(ctx, dir)
}

// stickyScratchFs fails RemoveAll, leaving scratch directories behind
type stickyScratchFs struct {
	afero.Fs
}

func (stickyScratchFs) RemoveAll(path string) error {
	return &os.PathError{Op: "unlinkat", Path: path, Err: os.ErrPermission}
}

// denyWriteFs rejects every write under prefix with a permission error.
// Running as root ignores file modes, so tests simulate unwritable directories here.
type denyWriteFs struct {
	afero.Fs
	prefix string
}

func (d *denyWriteFs) denied(name string) bool {
	return strings.HasPrefix(filepath.Clean(name), d.prefix)
}

func (d *denyWriteFs) Create(name string) (afero.File, error) {
	if d.denied(name) {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return d.Fs.Create(name)
}

func (d *denyWriteFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if d.denied(name) && flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE) != 0 {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return d.Fs.OpenFile(name, flag, perm)
}

// memPaths is the layout used with in-memory filesystems
func memPaths() conf.Paths {
	return conf.Paths{
		DataRoot:  "/data",
		LogDir:    "/data/WallYouNeed/Logs",
		OutputDir: "/out",
		TempDir:   "/tmp",
	}
}

// writeLogs creates files in dir with the given contents
func writeLogs(t *testing.T, fs afero.Fs, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, name), []byte(content), 0o644))
	}
}

// newTestExporter wires an Exporter with a fake probe and a JSON log buffer
func newTestExporter(fs afero.Fs, paths conf.Paths, logBuf *bytes.Buffer, opts ...ExporterOption) *Exporter {
	log := logger.NewWriterFactory(logBuf, logger.LogLevelDebug, time.UTC).Module("support")
	base := []ExporterOption{
		WithFs(fs),
		WithClock(fixedClock),
		WithLogger(log),
		WithSnapshotter(NewEnvironmentSnapshotter(fs,
			WithProbe(fakeProbe{}),
			WithSnapshotClock(fixedClock),
			WithSnapshotLogger(log))),
	}
	return NewExporter(paths, append(base, opts...)...)
}

// readArchive returns entry name to content and fails on nested or non-Deflate entries
func readArchive(t *testing.T, fs afero.Fs, path string) map[string][]byte {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		require.NotContains(t, f.Name, "/", "archive must be flat")
		require.Equal(t, zip.Deflate, f.Method, "entry %s should be deflated", f.Name)

		rc, err := f.Open()
		require.NoError(t, err)
		buf := &bytes.Buffer{}
		_, err = buf.ReadFrom(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		entries[f.Name] = buf.Bytes()
	}
	return entries
}
