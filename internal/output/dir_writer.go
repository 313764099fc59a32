// SPDX-License-Identifier: MPL-2.0

package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DirWriter writes files into a directory tree rooted at Base.
type DirWriter struct {
	base string
}

// NewDirWriter returns a DirWriter rooted at base. The directory itself is
// created lazily, together with any parent of a written file.
func NewDirWriter(base string) *DirWriter {
	return &DirWriter{base: base}
}

// Base returns the root directory of the writer.
func (w *DirWriter) Base() string { return w.base }

// WriteClass writes contents to <base>/<canonical/name>.java, overwriting any
// existing file.
func (w *DirWriter) WriteClass(canonicalName, contents string) error {
	target, err := w.classFile(canonicalName)
	if err != nil {
		return err
	}
	return w.WriteFile(target, contents)
}

// WriteFile writes contents to exactPath, creating parent directories.
func (w *DirWriter) WriteFile(exactPath, contents string) error {
	if err := os.MkdirAll(filepath.Dir(exactPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", exactPath, err)
	}
	if err := os.WriteFile(exactPath, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exactPath, err)
	}
	return nil
}

// DeleteClass removes the file for canonicalName. A missing file is not an error.
func (w *DirWriter) DeleteClass(canonicalName string) error {
	target, err := w.classFile(canonicalName)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", target, err)
	}
	return nil
}

func (w *DirWriter) classFile(canonicalName string) (string, error) {
	rel, err := ClassPath(canonicalName)
	if err != nil {
		return "", err
	}
	return filepath.Join(w.base, filepath.FromSlash(rel)), nil
}
