// SPDX-License-Identifier: MPL-2.0

package output

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
)

// ZipWriter buffers every written file as an entry of one output archive.
//
// Writes are best-effort: a failure on one entry is logged with the entry
// path and recorded, and later writes still go ahead. Close must be called
// exactly once after the last write; writing after Close is not supported.
type ZipWriter struct {
	path   string
	dst    io.Closer
	zw     *zip.Writer
	logger *log.Logger
	failed []string
}

// NewZipWriter creates (or truncates) the archive at path.
// The parent directory must already exist.
func NewZipWriter(path string, logger *log.Logger) (*ZipWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive %s: %w", path, err)
	}
	return newZipWriter(path, f, logger), nil
}

func newZipWriter(path string, dst io.WriteCloser, logger *log.Logger) *ZipWriter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ZipWriter{
		path:   path,
		dst:    dst,
		zw:     zip.NewWriter(dst),
		logger: logger,
	}
}

// Path returns the archive location.
func (w *ZipWriter) Path() string { return w.path }

// WriteClass adds an entry <canonical/name>.java holding contents as UTF-8.
// Entry failures are logged, never returned; an invalid name is.
func (w *ZipWriter) WriteClass(canonicalName, contents string) error {
	entry, err := ClassPath(canonicalName)
	if err != nil {
		return err
	}
	w.add(entry, contents)
	return nil
}

// WriteFile adds an entry named after the base name of exactPath; the
// directory part is dropped so the archive stays flat.
func (w *ZipWriter) WriteFile(exactPath, contents string) error {
	w.add(filepath.Base(exactPath), contents)
	return nil
}

// DeleteClass always fails: entries cannot be removed from an archive that is
// being streamed.
func (w *ZipWriter) DeleteClass(canonicalName string) error {
	return fmt.Errorf("cannot delete %s from archive %s: %w", canonicalName, w.path, ErrUnsupportedOperation)
}

// FailedEntries returns the entry paths whose write failed, in write order.
func (w *ZipWriter) FailedEntries() []string {
	return slices.Clone(w.failed)
}

// Close finalizes the archive central directory and closes the file.
func (w *ZipWriter) Close() error {
	return errors.Join(w.zw.Close(), w.dst.Close())
}

func (w *ZipWriter) add(entryPath, contents string) {
	if err := w.writeEntry(entryPath, contents); err != nil {
		w.failed = append(w.failed, entryPath)
		w.logger.Error("cannot write zip file entry", "entry", entryPath, "archive", w.path, "err", err)
	}
}

func (w *ZipWriter) writeEntry(entryPath, contents string) error {
	header := &zip.FileHeader{Name: entryPath, Method: zip.Deflate}
	entry, err := w.zw.CreateHeader(header)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(entry, contents); err != nil {
		return err
	}
	// Flush so a broken destination surfaces on the entry that hit it.
	return w.zw.Flush()
}
