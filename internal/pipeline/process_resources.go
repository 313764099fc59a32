// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/databinder/databinder/internal/archive"
	"github.com/databinder/databinder/internal/engine"
	"github.com/databinder/databinder/internal/output"
	"github.com/databinder/databinder/internal/stage"
	"github.com/databinder/databinder/pkg/types"
)

// layoutInfoTarget is where layout-info metadata goes.
type layoutInfoTarget struct {
	// dir is the directory layout-info files are written into, or the
	// directory holding the archive.
	dir string
	// archive is the final archive path; empty when not zipping.
	archive string
}

// resolveLayoutInfoTarget picks the layout-info destination. A path ending in
// the archive extension names the archive itself; any other path is a
// directory that receives archiveName when zipping.
func resolveLayoutInfoTarget(p types.FilesystemPath, zip bool, archiveName string) layoutInfoTarget {
	abs := p.Abs()
	if !zip {
		return layoutInfoTarget{dir: abs}
	}
	if p.HasArchiveExt() {
		return layoutInfoTarget{dir: filepath.Dir(abs), archive: abs}
	}
	return layoutInfoTarget{dir: abs, archive: filepath.Join(abs, archiveName)}
}

// ProcessResources runs the resource-processing stage.
func (r *Runner) ProcessResources(ctx context.Context, opts ProcessResourcesOptions) (err error) {
	if err := opts.Validate(); err != nil {
		return err
	}

	ws := r.newWorkspace()
	defer closeWorkspace(ws, &err)

	resInput, err := stage.New(ws, r.logger).Stage("db-resources-in", []string{opts.ResInput.String()})
	if err != nil {
		return err
	}

	resOutput := opts.ResOutput.Abs()
	workOutput := resOutput
	if opts.ZipResOutput {
		if workOutput, err = ws.TempDir("db-resources-out"); err != nil {
			return err
		}
	}

	processor := r.engine.NewLayoutProcessor(engine.ProcessorConfig{
		PackageName: opts.PackageName,
		Writer:      output.NewDirWriter(workOutput),
		UseAndroidX: opts.UseAndroidX,
	})
	in := engine.ResourceInput{
		Incremental: false,
		InputDir:    resInput,
		OutputDir:   workOutput,
	}
	if err := processor.ProcessResources(ctx, in, opts.EnableViewBinding, opts.EnableDataBinding); err != nil {
		return fmt.Errorf("failed to process resources: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	target := resolveLayoutInfoTarget(opts.LayoutInfoOutput, opts.ZipLayoutInfo, r.layoutInfoArchiveName)
	if target.archive != "" {
		if err := r.writeLayoutInfoArchive(ctx, processor, target); err != nil {
			return err
		}
	} else if err := processor.WriteLayoutInfoFiles(ctx, target.dir); err != nil {
		return fmt.Errorf("failed to write layout info: %w", err)
	}

	if opts.ZipResOutput {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := archive.Zip(workOutput, resOutput); err != nil {
			return fmt.Errorf("failed to zip resource output: %w", err)
		}
	}

	r.logger.Debug("processed resources", "package", opts.PackageName, "output", resOutput)
	return nil
}

func (r *Runner) writeLayoutInfoArchive(ctx context.Context, processor engine.LayoutProcessor, target layoutInfoTarget) error {
	if err := os.MkdirAll(target.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create layout info directory %s: %w", target.dir, err)
	}
	zw, err := output.NewZipWriter(target.archive, r.logger)
	if err != nil {
		return err
	}
	writeErr := processor.WriteLayoutInfoFilesTo(ctx, target.dir, zw)
	if err := errors.Join(writeErr, r.closeZipWriter(zw)); err != nil {
		return fmt.Errorf("failed to write layout info archive: %w", err)
	}
	r.logger.Debug("writing info zip", "path", target.archive)
	return nil
}
