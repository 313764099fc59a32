// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/databinder/databinder/internal/pipeline"
	"github.com/databinder/databinder/pkg/types"
)

// genBaseClassesFlags receives the GEN_BASE_CLASSES flags.
type genBaseClassesFlags struct {
	layoutInfoFiles         string
	dependencyClassInfoList []string
	packageName             string
	classInfoOut            string
	sourceOut               string
	zipSourceOutput         bool
	useAndroidX             bool
	enableViewBinding       bool
	enableDataBinding       bool
}

func (f *genBaseClassesFlags) options() pipeline.GenerateBaseClassesOptions {
	deps := make([]types.FilesystemPath, 0, len(f.dependencyClassInfoList))
	for _, dep := range f.dependencyClassInfoList {
		deps = append(deps, types.FilesystemPath(dep))
	}
	return pipeline.GenerateBaseClassesOptions{
		LayoutInfoFiles:         types.FilesystemPath(f.layoutInfoFiles),
		DependencyClassInfoList: deps,
		PackageName:             f.packageName,
		ClassInfoOut:            types.FilesystemPath(f.classInfoOut),
		SourceOut:               types.FilesystemPath(f.sourceOut),
		ZipSourceOutput:         f.zipSourceOutput,
		UseAndroidX:             f.useAndroidX,
		EnableViewBinding:       f.enableViewBinding,
		EnableDataBinding:       f.enableDataBinding,
	}
}

func newGenBaseClassesCommand(a *App) *cobra.Command {
	f := &genBaseClassesFlags{}
	c := &cobra.Command{
		Use:   GenBaseClassesCmd,
		Short: "Generate the base classes and class info from layout files",
		Args:  noPositionalArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := f.options()
			return a.runPipeline(cmd.Context(), "generate base classes", func(ctx context.Context, r *pipeline.Runner) error {
				return r.GenerateBaseClasses(ctx, opts)
			})
		},
	}

	fs := c.Flags()
	fs.StringVar(&f.layoutInfoFiles, "layoutInfoFiles", "", "zip file or folder holding the layout-info files (required)")
	fs.StringSliceVar(&f.dependencyClassInfoList, "dependencyClassInfoList", nil, "class-info folders exported by dependencies (repeatable, comma separated)")
	fs.StringVar(&f.packageName, "package", "", "package name of the module, the same package the R class uses (required)")
	fs.StringVar(&f.classInfoOut, "classInfoOut", "", "zip file that receives the class-info of this module (required)")
	fs.StringVar(&f.sourceOut, "sourceOut", "", "folder or zip file that receives the generated sources (required)")
	fs.BoolVar(&f.zipSourceOutput, "zipSourceOutput", false, "write the generated sources into one zip file")
	fs.BoolVar(&f.useAndroidX, "useAndroidX", true, "use androidx packages")
	fs.BoolVar(&f.enableViewBinding, "enableViewBinding", true, "generate view binding classes")
	fs.BoolVar(&f.enableDataBinding, "enableDataBinding", true, "generate data binding classes")
	return c
}
