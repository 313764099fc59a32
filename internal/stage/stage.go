// SPDX-License-Identifier: MPL-2.0

// Package stage merges pipeline inputs (zip archives or directories) into a
// single directory the engine can read.
package stage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/databinder/databinder/internal/archive"
)

// ErrInvalidInput is the sentinel error wrapped by InvalidInputError.
var ErrInvalidInput = errors.New("invalid input")

type (
	// TempDirAllocator hands out fresh, empty directories.
	// *workspace.Workspace satisfies it.
	TempDirAllocator interface {
		TempDir(prefix string) (string, error)
	}

	// Stager merges inputs into staging directories.
	Stager struct {
		alloc  TempDirAllocator
		logger *log.Logger
	}

	// InvalidInputError is returned when an input is neither a zip archive nor
	// a directory. Path is absolute.
	InvalidInputError struct {
		Path   string
		Exists bool
	}
)

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s should have been a file or a zip file; it is not (exists: %t)", e.Path, e.Exists)
}

// Unwrap returns ErrInvalidInput for errors.Is() compatibility.
func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// New returns a Stager that allocates its staging directories from alloc.
func New(alloc TempDirAllocator, logger *log.Logger) *Stager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Stager{alloc: alloc, logger: logger}
}

// Stage returns one directory holding the union of all inputs.
//
// A lone directory input is returned as is. Otherwise a fresh directory named
// after prefix is allocated and each input is merged into it in order: zip
// archives are extracted, directories are copied. Later inputs overwrite
// earlier files with the same relative path. On error the staging directory
// contents are unspecified.
func (s *Stager) Stage(prefix string, inputs []string) (string, error) {
	if len(inputs) == 1 {
		abs, info, err := inspect(inputs[0])
		if err != nil {
			return "", err
		}
		if info.IsDir() {
			s.logger.Debug("using input directory in place", "dir", abs)
			return abs, nil
		}
	}

	out, err := s.alloc.TempDir(prefix)
	if err != nil {
		return "", err
	}

	for _, input := range inputs {
		abs, info, err := inspect(input)
		if err != nil {
			return "", err
		}
		if info.IsDir() {
			s.logger.Debug("copying input directory", "from", abs, "to", out)
			if err := copyTree(abs, out); err != nil {
				return "", fmt.Errorf("failed to stage %s: %w", abs, err)
			}
			continue
		}
		s.logger.Debug("unzipping input", "archive", abs, "to", out)
		if err := archive.Unzip(abs, out); err != nil {
			return "", fmt.Errorf("failed to stage %s: %w", abs, err)
		}
	}

	return out, nil
}

// inspect resolves input and accepts only regular files and directories.
func inspect(input string) (string, fs.FileInfo, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		abs = input
	}
	info, err := os.Stat(abs)
	if err != nil {
		return abs, nil, &InvalidInputError{Path: abs, Exists: !errors.Is(err, fs.ErrNotExist)}
	}
	if !info.Mode().IsRegular() && !info.IsDir() {
		return abs, nil, &InvalidInputError{Path: abs, Exists: true}
	}
	return abs, info, nil
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
