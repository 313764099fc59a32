// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/databinder/databinder/internal/engine"
	"github.com/databinder/databinder/internal/output"
)

// fakeEngine records every call and writes small fixed outputs.
type fakeEngine struct {
	processorCfg engine.ProcessorConfig
	resourceIn   engine.ResourceInput
	viewBinding  bool
	dataBinding  bool
	stagedInput  []string

	args       engine.LayoutInfoArgs
	stagedInfo []string
	genErr     error
}

func (f *fakeEngine) NewLayoutProcessor(cfg engine.ProcessorConfig) engine.LayoutProcessor {
	f.processorCfg = cfg
	return &fakeProcessor{engine: f}
}

func (f *fakeEngine) NewBaseClassGenerator(args engine.LayoutInfoArgs) engine.BaseClassGenerator {
	f.args = args
	return &fakeGenerator{engine: f}
}

type fakeProcessor struct {
	engine *fakeEngine
}

func (p *fakeProcessor) ProcessResources(_ context.Context, in engine.ResourceInput, view, data bool) error {
	p.engine.resourceIn = in
	p.engine.viewBinding = view
	p.engine.dataBinding = data
	p.engine.stagedInput = listFiles(in.InputDir)
	return output.NewDirWriter(in.OutputDir).WriteFile(filepath.Join(in.OutputDir, "values", "out.xml"), "processed")
}

func (p *fakeProcessor) WriteLayoutInfoFiles(_ context.Context, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "layout-main-layout.xml"), []byte("<Layout/>"), 0o644)
}

func (p *fakeProcessor) WriteLayoutInfoFilesTo(_ context.Context, outDir string, w output.Writer) error {
	return w.WriteFile(filepath.Join(outDir, "layout-main-layout.xml"), "<Layout/>")
}

type fakeGenerator struct {
	engine *fakeEngine
}

func (g *fakeGenerator) GenerateAll(_ context.Context, w output.Writer) error {
	g.engine.stagedInfo = listFiles(g.engine.args.InfoFolder)
	if err := w.WriteClass("com.example.databinding.MainBinding", "class MainBinding {}"); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(g.engine.args.ArtifactFolder, "com.example-binding_classes.json"), []byte("{}"), 0o644); err != nil {
		return err
	}
	return g.engine.genErr
}

// listFiles returns the slash-separated relative paths of regular files below dir.
func listFiles(dir string) []string {
	var files []string
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	return files
}
