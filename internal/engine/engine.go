// SPDX-License-Identifier: MPL-2.0

// Package engine declares the contracts of the layout compiler the pipelines
// drive. The pipelines never look inside layouts or generated sources; they
// stage inputs, pick output destinations and call these interfaces.
package engine

import (
	"context"

	"github.com/databinder/databinder/internal/output"
)

type (
	// Engine builds the two compiler entry points.
	Engine interface {
		// NewLayoutProcessor returns a processor for the resources of one
		// module. Files the processor rewrites are written through w.
		NewLayoutProcessor(cfg ProcessorConfig) LayoutProcessor
		// NewBaseClassGenerator returns a generator for one invocation.
		NewBaseClassGenerator(args LayoutInfoArgs) BaseClassGenerator
	}

	// ProcessorConfig configures a LayoutProcessor.
	ProcessorConfig struct {
		// PackageName is the module package (the package of its R class).
		PackageName string
		// Writer receives files the processor writes by canonical name.
		Writer output.Writer
		// UseAndroidX selects androidx packages in emitted metadata.
		UseAndroidX bool
	}

	// ResourceInput describes one resource-processing run.
	ResourceInput struct {
		// Incremental is always false for command-line runs.
		Incremental bool
		// InputDir holds the merged resources (layout/, values/, ...).
		InputDir string
		// OutputDir receives the processed resources.
		OutputDir string
	}

	// LayoutProcessor turns resource folders into processed resources and
	// layout-info metadata.
	LayoutProcessor interface {
		// ProcessResources reads in.InputDir and writes in.OutputDir.
		ProcessResources(ctx context.Context, in ResourceInput, enableViewBinding, enableDataBinding bool) error
		// WriteLayoutInfoFiles writes one layout-info file per processed
		// layout directly into outDir.
		WriteLayoutInfoFiles(ctx context.Context, outDir string) error
		// WriteLayoutInfoFilesTo writes the layout-info files through w,
		// using exact paths below outDir.
		WriteLayoutInfoFilesTo(ctx context.Context, outDir string, w output.Writer) error
	}

	// LayoutInfoArgs is the invocation descriptor of a base-class generation.
	LayoutInfoArgs struct {
		// OutOfDate lists changed layout-info files; empty when not incremental.
		OutOfDate []string
		// Removed lists deleted layout-info files; empty when not incremental.
		Removed []string
		// InfoFolder holds the staged layout-info files.
		InfoFolder string
		// DependencyClassInfoFolders hold class-info exported by dependencies.
		DependencyClassInfoFolders []string
		// ArtifactFolder receives this module's class-info artifact.
		ArtifactFolder string
		// PackageName is the module package.
		PackageName string
		// LogFolder receives incremental bookkeeping.
		LogFolder         string
		Incremental       bool
		UseAndroidX       bool
		EnableViewBinding bool
		EnableDataBinding bool
	}

	// BaseClassGenerator emits binding base classes and class-info.
	BaseClassGenerator interface {
		// GenerateAll writes every generated source through w and the
		// class-info artifact into the ArtifactFolder of its args.
		GenerateAll(ctx context.Context, w output.Writer) error
	}
)
