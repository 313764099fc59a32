// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/databinder/databinder/internal/pipeline"
	"github.com/databinder/databinder/pkg/types"
)

// processResourcesFlags receives the PROCESS_RESOURCES flags.
type processResourcesFlags struct {
	packageName       string
	resInput          string
	resOutput         string
	layoutInfoOutput  string
	zipLayoutInfo     bool
	zipResOutput      bool
	enableViewBinding bool
	enableDataBinding bool
	useAndroidX       bool
}

func (f *processResourcesFlags) options() pipeline.ProcessResourcesOptions {
	return pipeline.ProcessResourcesOptions{
		PackageName:       f.packageName,
		ResInput:          types.FilesystemPath(f.resInput),
		ResOutput:         types.FilesystemPath(f.resOutput),
		LayoutInfoOutput:  types.FilesystemPath(f.layoutInfoOutput),
		ZipLayoutInfo:     f.zipLayoutInfo,
		ZipResOutput:      f.zipResOutput,
		EnableViewBinding: f.enableViewBinding,
		EnableDataBinding: f.enableDataBinding,
		UseAndroidX:       f.useAndroidX,
	}
}

func newProcessResourcesCommand(a *App) *cobra.Command {
	f := &processResourcesFlags{}
	c := &cobra.Command{
		Use:   ProcessResourcesCmd,
		Short: "Process Android resources",
		Args:  noPositionalArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := f.options()
			return a.runPipeline(cmd.Context(), "process resources", func(ctx context.Context, r *pipeline.Runner) error {
				return r.ProcessResources(ctx, opts)
			})
		},
	}

	fs := c.Flags()
	fs.StringVar(&f.packageName, "package", "", "package name of the application, the same package the R class uses (required)")
	fs.StringVar(&f.resInput, "resInput", "", "merged resources folder or zip, the parent of layout/, drawable/, ... (required)")
	fs.StringVar(&f.resOutput, "resOutput", "", "output zip file or folder for the processed resources (required)")
	fs.StringVar(&f.layoutInfoOutput, "layoutInfoOutput", "", "folder or .zip file that receives the layout-info files (required)")
	fs.BoolVar(&f.zipLayoutInfo, "zipLayoutInfo", true, "zip the layout-info files into one archive")
	fs.BoolVar(&f.zipResOutput, "zipResOutput", true, "zip the processed resources into one archive")
	fs.BoolVar(&f.enableViewBinding, "enableViewBinding", true, "generate view binding metadata")
	fs.BoolVar(&f.enableDataBinding, "enableDataBinding", true, "generate data binding metadata")
	fs.BoolVar(&f.useAndroidX, "useAndroidX", false, "use androidx packages")
	return c
}
