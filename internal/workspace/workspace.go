// SPDX-License-Identifier: MPL-2.0

// Package workspace owns the temporary directories of one pipeline run.
package workspace

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Workspace hands out fresh temporary directories and removes all of them on
// Close. A Workspace belongs to a single pipeline invocation and is not safe
// for concurrent use.
type Workspace struct {
	root   string
	keep   bool
	dirs   []string
	logger *log.Logger
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithRoot places temporary directories below root instead of os.TempDir().
func WithRoot(root string) Option {
	return func(w *Workspace) { w.root = root }
}

// WithKeep leaves every directory on disk when the workspace is closed.
func WithKeep(keep bool) Option {
	return func(w *Workspace) { w.keep = keep }
}

// WithLogger sets the logger used to report kept or removed directories.
func WithLogger(logger *log.Logger) Option {
	return func(w *Workspace) { w.logger = logger }
}

// New creates an empty workspace.
func New(opts ...Option) *Workspace {
	w := &Workspace{}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}
	return w
}

// TempDir creates a new, empty directory whose name starts with prefix.
func (w *Workspace) TempDir(prefix string) (string, error) {
	if w.root != "" {
		if err := os.MkdirAll(w.root, 0o755); err != nil {
			return "", fmt.Errorf("failed to create temp root %s: %w", w.root, err)
		}
	}
	dir, err := os.MkdirTemp(w.root, prefix+"-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory %s: %w", prefix, err)
	}
	w.dirs = append(w.dirs, dir)
	return dir, nil
}

// Dirs returns the directories allocated so far.
func (w *Workspace) Dirs() []string {
	return append([]string(nil), w.dirs...)
}

// Close removes every directory handed out by TempDir unless the workspace
// was created WithKeep(true). It is safe to call more than once.
func (w *Workspace) Close() error {
	dirs := w.dirs
	w.dirs = nil
	if w.keep {
		for _, dir := range dirs {
			w.logger.Debug("keeping temp directory", "dir", dir)
		}
		return nil
	}

	var errs []error
	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove temp directory %s: %w", dir, err))
		}
	}
	return errors.Join(errs...)
}
