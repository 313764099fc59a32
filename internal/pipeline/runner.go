// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/databinder/databinder/internal/engine"
	"github.com/databinder/databinder/internal/output"
	"github.com/databinder/databinder/internal/workspace"
)

// DefaultLayoutInfoArchiveName is the archive created inside a layout-info
// output directory when zipping is requested.
const DefaultLayoutInfoArchiveName = "layout-info.zip"

type (
	// Runner runs the pipelines against one engine. A Runner holds no state
	// between runs; every run gets its own workspace.
	Runner struct {
		engine                engine.Engine
		logger                *log.Logger
		tempRoot              string
		keepTemp              bool
		layoutInfoArchiveName string
	}

	// RunnerOption configures a Runner.
	RunnerOption func(*Runner)
)

// WithLogger sets the logger handed to every component of a run.
func WithLogger(logger *log.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// WithTempRoot places temporary directories below root.
func WithTempRoot(root string) RunnerOption {
	return func(r *Runner) { r.tempRoot = root }
}

// WithKeepTemp leaves temporary directories on disk after a run.
func WithKeepTemp(keep bool) RunnerOption {
	return func(r *Runner) { r.keepTemp = keep }
}

// WithLayoutInfoArchiveName overrides DefaultLayoutInfoArchiveName.
func WithLayoutInfoArchiveName(name string) RunnerOption {
	return func(r *Runner) {
		if name != "" {
			r.layoutInfoArchiveName = name
		}
	}
}

// NewRunner returns a Runner driving eng.
func NewRunner(eng engine.Engine, opts ...RunnerOption) *Runner {
	r := &Runner{
		engine:                eng,
		layoutInfoArchiveName: DefaultLayoutInfoArchiveName,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r
}

func (r *Runner) newWorkspace() *workspace.Workspace {
	return workspace.New(
		workspace.WithRoot(r.tempRoot),
		workspace.WithKeep(r.keepTemp),
		workspace.WithLogger(r.logger),
	)
}

// closeWorkspace folds the workspace cleanup error into *errp.
func closeWorkspace(ws *workspace.Workspace, errp *error) {
	if closeErr := ws.Close(); closeErr != nil && *errp == nil {
		*errp = closeErr
	}
}

// closeZipWriter closes w and warns about the entries it dropped.
func (r *Runner) closeZipWriter(w *output.ZipWriter) error {
	err := w.Close()
	if failed := w.FailedEntries(); len(failed) > 0 {
		r.logger.Warn("archive is missing entries", "archive", w.Path(), "entries", failed)
	}
	return err
}
