// SPDX-License-Identifier: MPL-2.0

package layoutxml

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/databinder/databinder/internal/engine"
	"github.com/databinder/databinder/internal/output"
)

// dataBindingRoot is the root tag of layouts that use binding expressions.
const dataBindingRoot = "layout"

type processor struct {
	cfg     engine.ProcessorConfig
	logger  *log.Logger
	layouts []layoutInfo
}

// ProcessResources copies every resource to the output directory, through the
// configured writer when there is one, and records the layouts that need a
// binding class.
func (p *processor) ProcessResources(ctx context.Context, in engine.ResourceInput, enableViewBinding, enableDataBinding bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if in.Incremental {
		return errors.New("incremental resource processing is not supported")
	}
	if err := os.MkdirAll(in.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create resource output %s: %w", in.OutputDir, err)
	}

	w := p.cfg.Writer
	if w == nil {
		w = output.NewDirWriter(in.OutputDir)
	}

	p.layouts = nil
	err := filepath.WalkDir(in.InputDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(in.InputDir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := w.WriteFile(filepath.Join(in.OutputDir, rel), string(data)); err != nil {
			return fmt.Errorf("failed to copy resource %s: %w", rel, err)
		}

		folder := filepath.Base(filepath.Dir(path))
		if !strings.HasPrefix(folder, "layout") || filepath.Ext(path) != ".xml" {
			return nil
		}
		root := rootElement(path)
		isData := root == dataBindingRoot
		if !(isData && enableDataBinding) && !enableViewBinding {
			p.logger.Debug("skipping layout without enabled binding", "layout", rel)
			return nil
		}
		p.layouts = append(p.layouts, layoutInfo{
			Layout:           strings.TrimSuffix(filepath.Base(path), ".xml"),
			Folder:           folder,
			ModulePackage:    p.cfg.PackageName,
			AbsoluteFilePath: path,
			IsBindingData:    isData,
			RootNodeType:     root,
			UseAndroidX:      p.cfg.UseAndroidX,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to process resources in %s: %w", in.InputDir, err)
	}

	p.logger.Debug("processed resources", "input", in.InputDir, "output", in.OutputDir, "layouts", len(p.layouts))
	return nil
}

// WriteLayoutInfoFiles writes the layout-info documents into outDir.
func (p *processor) WriteLayoutInfoFiles(ctx context.Context, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create layout info directory %s: %w", outDir, err)
	}
	return p.WriteLayoutInfoFilesTo(ctx, outDir, output.NewDirWriter(outDir))
}

// WriteLayoutInfoFilesTo writes the layout-info documents through w at exact
// paths below outDir.
func (p *processor) WriteLayoutInfoFilesTo(ctx context.Context, outDir string, w output.Writer) error {
	for _, info := range p.layouts {
		if err := ctx.Err(); err != nil {
			return err
		}
		content, err := info.marshal()
		if err != nil {
			return err
		}
		if err := w.WriteFile(filepath.Join(outDir, info.fileName()), content); err != nil {
			return err
		}
	}
	return nil
}

// rootElement returns the local name of the first element in an XML file, or
// "" when the file cannot be read as XML.
func rootElement(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local
		}
	}
}
