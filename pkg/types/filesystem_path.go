// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ArchiveExt is the file extension that marks a path as a zip archive.
const ArchiveExt = ".zip"

// ErrInvalidFilesystemPath is the sentinel error wrapped by InvalidFilesystemPathError.
var ErrInvalidFilesystemPath = errors.New("invalid filesystem path")

type (
	// FilesystemPath represents an absolute or relative filesystem path taken
	// from the command line. A valid path must be non-empty and not whitespace-only.
	FilesystemPath string

	// InvalidFilesystemPathError is returned when a FilesystemPath value is
	// empty or whitespace-only.
	InvalidFilesystemPathError struct {
		Value FilesystemPath
	}
)

// String returns the string representation of the FilesystemPath.
func (p FilesystemPath) String() string { return string(p) }

// Validate returns an error if the path is empty or whitespace-only.
func (p FilesystemPath) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return &InvalidFilesystemPathError{Value: p}
	}
	return nil
}

// Abs returns the absolute form of the path. If the working directory cannot
// be determined the cleaned path is returned unchanged.
func (p FilesystemPath) Abs() string {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return filepath.Clean(string(p))
	}
	return abs
}

// HasArchiveExt reports whether the path names a zip archive.
// The comparison ignores case, so "LAYOUTS.ZIP" counts.
func (p FilesystemPath) HasArchiveExt() bool {
	return strings.HasSuffix(strings.ToLower(string(p)), ArchiveExt)
}

// Error implements the error interface for InvalidFilesystemPathError.
func (e *InvalidFilesystemPathError) Error() string {
	return fmt.Sprintf("invalid filesystem path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidFilesystemPath for errors.Is() compatibility.
func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }
