// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/databinder/databinder/internal/output"
	"github.com/databinder/databinder/internal/pipeline"
	"github.com/databinder/databinder/internal/stage"
	"github.com/databinder/databinder/pkg/types"
)

type (
	// ExitError signals a non-zero exit code without forcing os.Exit in RunE
	// handlers. An ExitError without Err has already been reported.
	ExitError struct {
		Code types.ExitCode
		Err  error
	}

	// FlagError reports a flag that could not be parsed, an unexpected
	// positional argument or a missing required flag.
	FlagError struct {
		Err error
	}
)

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Error implements the error interface.
func (e *FlagError) Error() string { return e.Err.Error() }

// Unwrap returns the parse error.
func (e *FlagError) Unwrap() error { return e.Err }

// exitCodeFor maps a command error to the process exit code.
func exitCodeFor(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var flagErr *FlagError
	switch {
	case errors.As(err, &flagErr), errors.Is(err, pipeline.ErrInvalidOptions):
		return types.ExitBadFlags
	case errors.Is(err, stage.ErrInvalidInput):
		return types.ExitInvalidInput
	case errors.Is(err, output.ErrUnsupportedOperation):
		return types.ExitUnsupported
	default:
		return types.ExitFailure
	}
}
