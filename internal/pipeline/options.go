// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/databinder/databinder/pkg/types"
)

// ErrInvalidOptions is the sentinel error wrapped by InvalidOptionsError.
var ErrInvalidOptions = errors.New("invalid pipeline options")

type (
	// ProcessResourcesOptions holds the arguments of one resource-processing run.
	// Values are built once from parsed flags and never mutated.
	ProcessResourcesOptions struct {
		PackageName      string
		ResInput         types.FilesystemPath
		ResOutput        types.FilesystemPath
		LayoutInfoOutput types.FilesystemPath

		ZipLayoutInfo     bool
		ZipResOutput      bool
		EnableViewBinding bool
		EnableDataBinding bool
		UseAndroidX       bool
	}

	// GenerateBaseClassesOptions holds the arguments of one base-class
	// generation run.
	GenerateBaseClassesOptions struct {
		LayoutInfoFiles         types.FilesystemPath
		DependencyClassInfoList []types.FilesystemPath
		PackageName             string
		ClassInfoOut            types.FilesystemPath
		SourceOut               types.FilesystemPath

		ZipSourceOutput   bool
		UseAndroidX       bool
		EnableViewBinding bool
		EnableDataBinding bool
	}

	// InvalidOptionsError collects every field that failed validation.
	// It wraps ErrInvalidOptions for errors.Is() compatibility.
	InvalidOptionsError struct {
		Command     string
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *InvalidOptionsError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid %s options: %s", e.Command, strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidOptions for errors.Is() compatibility.
func (e *InvalidOptionsError) Unwrap() error { return ErrInvalidOptions }

// Validate checks that every required path and the package name are set.
func (o ProcessResourcesOptions) Validate() error {
	var errs []error
	errs = appendPackageError(errs, o.PackageName)
	errs = appendPathError(errs, "resInput", o.ResInput)
	errs = appendPathError(errs, "resOutput", o.ResOutput)
	errs = appendPathError(errs, "layoutInfoOutput", o.LayoutInfoOutput)
	if len(errs) > 0 {
		return &InvalidOptionsError{Command: "PROCESS_RESOURCES", FieldErrors: errs}
	}
	return nil
}

// Validate checks that every required path and the package name are set.
// Dependency class-info entries are optional but must not be blank.
func (o GenerateBaseClassesOptions) Validate() error {
	var errs []error
	errs = appendPathError(errs, "layoutInfoFiles", o.LayoutInfoFiles)
	errs = appendPackageError(errs, o.PackageName)
	errs = appendPathError(errs, "classInfoOut", o.ClassInfoOut)
	errs = appendPathError(errs, "sourceOut", o.SourceOut)
	for _, dep := range o.DependencyClassInfoList {
		errs = appendPathError(errs, "dependencyClassInfoList", dep)
	}
	if len(errs) > 0 {
		return &InvalidOptionsError{Command: "GEN_BASE_CLASSES", FieldErrors: errs}
	}
	return nil
}

func appendPathError(errs []error, flag string, p types.FilesystemPath) []error {
	if err := p.Validate(); err != nil {
		return append(errs, fmt.Errorf("-%s: %w", flag, err))
	}
	return errs
}

func appendPackageError(errs []error, pkg string) []error {
	if strings.TrimSpace(pkg) == "" {
		return append(errs, errors.New("-package: must be non-empty"))
	}
	return errs
}
