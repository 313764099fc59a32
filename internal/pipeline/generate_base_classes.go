// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/databinder/databinder/internal/archive"
	"github.com/databinder/databinder/internal/engine"
	"github.com/databinder/databinder/internal/output"
	"github.com/databinder/databinder/internal/stage"
)

// GenerateBaseClasses runs the base-class generation stage.
//
// When the generator fails, the source archive (if any) is still closed and
// the class-info folder is still zipped; the returned error joins all
// failures and every output of the run must be treated as invalid.
func (r *Runner) GenerateBaseClasses(ctx context.Context, opts GenerateBaseClassesOptions) (err error) {
	if err := opts.Validate(); err != nil {
		return err
	}

	ws := r.newWorkspace()
	defer closeWorkspace(ws, &err)

	infoFolder, err := stage.New(ws, r.logger).Stage("db-class-info", []string{opts.LayoutInfoFiles.String()})
	if err != nil {
		return err
	}
	classInfoFolder, err := ws.TempDir("db-class-info-out")
	if err != nil {
		return err
	}
	logFolder, err := ws.TempDir("db-incremental-log")
	if err != nil {
		return err
	}

	deps := make([]string, 0, len(opts.DependencyClassInfoList))
	for _, dep := range opts.DependencyClassInfoList {
		deps = append(deps, dep.Abs())
	}
	args := engine.LayoutInfoArgs{
		OutOfDate:                  []string{},
		Removed:                    []string{},
		InfoFolder:                 infoFolder,
		DependencyClassInfoFolders: deps,
		ArtifactFolder:             classInfoFolder,
		PackageName:                opts.PackageName,
		LogFolder:                  logFolder,
		Incremental:                false,
		UseAndroidX:                opts.UseAndroidX,
		EnableViewBinding:          opts.EnableViewBinding,
		EnableDataBinding:          opts.EnableDataBinding,
	}

	sourceOut := opts.SourceOut.Abs()
	var (
		writer    output.Writer
		zipWriter *output.ZipWriter
	)
	if opts.ZipSourceOutput {
		if zipWriter, err = output.NewZipWriter(sourceOut, r.logger); err != nil {
			return err
		}
		writer = zipWriter
	} else {
		if err := os.MkdirAll(sourceOut, 0o755); err != nil {
			return fmt.Errorf("failed to create source output %s: %w", sourceOut, err)
		}
		dirWriter := output.NewDirWriter(sourceOut)
		r.logger.Debug("writing sources to directory", "dir", dirWriter.Base())
		writer = dirWriter
	}

	var errs []error
	if genErr := r.engine.NewBaseClassGenerator(args).GenerateAll(ctx, writer); genErr != nil {
		errs = append(errs, fmt.Errorf("failed to generate base classes: %w", genErr))
	}
	if zipWriter != nil {
		if closeErr := r.closeZipWriter(zipWriter); closeErr != nil {
			errs = append(errs, fmt.Errorf("failed to close source archive: %w", closeErr))
		}
	}
	if zipErr := archive.Zip(classInfoFolder, opts.ClassInfoOut.Abs()); zipErr != nil {
		errs = append(errs, fmt.Errorf("failed to zip class info: %w", zipErr))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	r.logger.Debug("generated base classes", "package", opts.PackageName, "sources", sourceOut)
	return nil
}
