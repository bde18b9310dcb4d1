package support

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// logFileCollector stages the log files of one directory into a scratch directory
type logFileCollector struct {
	fs     afero.Fs
	logDir string
}

// isLogFile reports whether name has a .log extension, ignoring case
func (lfc *logFileCollector) isLogFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), LogFileExt)
}

// list returns the regular *.log files directly inside logDir, sorted by name
func (lfc *logFileCollector) list() ([]os.FileInfo, error) {
	entries, err := afero.ReadDir(lfc.fs, lfc.logDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read log directory %s: %w", lfc.logDir, err)
	}

	var files []os.FileInfo
	for _, entry := range entries {
		if entry.Mode().IsRegular() && lfc.isLogFile(entry.Name()) {
			files = append(files, entry)
		}
	}
	return files, nil
}

// copyTo copies every log file into dir, keeping file names. It returns the number copied.
func (lfc *logFileCollector) copyTo(dir string) (int, error) {
	files, err := lfc.list()
	if err != nil {
		return 0, err
	}

	for _, info := range files {
		src := filepath.Join(lfc.logDir, info.Name())
		dst := filepath.Join(dir, info.Name())
		if err := copyFile(lfc.fs, src, dst); err != nil {
			return 0, err
		}
	}
	return len(files), nil
}

// copyFile copies src to dst byte for byte. The source is opened read-only so
// a logger appending to it is not disturbed.
func copyFile(fs afero.Fs, src, dst string) (err error) {
	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", src, closeErr)
		}
	}()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", dst, closeErr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}
