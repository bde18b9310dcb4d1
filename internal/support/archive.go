package support

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// zipDirectory writes every regular file directly inside source to w as a flat,
// Deflate-compressed zip. Subdirectories are skipped and no directory entries
// are written. It returns the number of entries.
func zipDirectory(fs afero.Fs, source string, w io.Writer) (count int, err error) {
	entries, err := afero.ReadDir(fs, source)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", source, err)
	}

	archive := zip.NewWriter(w)
	defer func() {
		if closeErr := archive.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to finalize archive: %w", closeErr)
		}
	}()

	for _, info := range entries {
		if !info.Mode().IsRegular() {
			continue
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return count, err
		}
		header.Name = info.Name()
		header.Method = zip.Deflate

		writer, err := archive.CreateHeader(header)
		if err != nil {
			return count, err
		}

		if err := copyInto(fs, filepath.Join(source, info.Name()), writer); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func copyInto(fs afero.Fs, path string, w io.Writer) error {
	file, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	if _, err := io.Copy(w, file); err != nil {
		return fmt.Errorf("failed to copy file %s to zip: %w", path, err)
	}
	return nil
}
