// SPDX-License-Identifier: MPL-2.0

package layoutxml

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"

	"github.com/databinder/databinder/internal/engine"
	"github.com/databinder/databinder/internal/output"
)

//go:embed templates/binding.java.tmpl
var bindingTemplate string

var bindingTmpl = template.Must(template.New("binding.java").Funcs(template.FuncMap{
	"join": strings.Join,
	"baseName": func(qualified string) string {
		return qualified[strings.LastIndex(qualified, ".")+1:]
	},
}).Parse(bindingTemplate))

type generator struct {
	args   engine.LayoutInfoArgs
	logger *log.Logger
}

// bindingClass is the template input for one generated class.
type bindingClass struct {
	Package       string
	ClassName     string
	Layout        string
	Folders       []string
	IsBindingData bool
	Base          string
}

// GenerateAll reads the staged layout-info documents, writes one binding
// class per layout through w and exports the class-info artifact.
func (g *generator) GenerateAll(ctx context.Context, w output.Writer) error {
	if g.args.Incremental {
		return errors.New("incremental base class generation is not supported")
	}
	if g.args.PackageName == "" {
		return errors.New("package name is required")
	}

	layouts, err := readLayoutInfos(g.args.InfoFolder)
	if err != nil {
		return err
	}
	provided, err := readDependencyClassInfo(g.args.DependencyClassInfoFolders)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	slices.Sort(names)

	exported := classInfo{Mappings: map[string]classMapping{}}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		class := g.bindingClass(name, layouts[name])
		if class == nil {
			continue
		}
		qualified := class.Package + "." + class.ClassName
		if _, ok := provided[qualified]; ok {
			g.logger.Debug("binding class provided by dependency", "class", qualified)
			continue
		}

		var src bytes.Buffer
		if err := bindingTmpl.Execute(&src, class); err != nil {
			return fmt.Errorf("failed to render %s: %w", qualified, err)
		}
		if err := w.WriteClass(qualified, src.String()); err != nil {
			return err
		}
		exported.Mappings[name] = classMapping{QualifiedName: qualified, ModulePackage: g.args.PackageName}
	}

	g.logger.Debug("generated binding classes", "count", len(exported.Mappings), "dependencies", len(provided))
	return g.writeClassInfo(exported)
}

// bindingClass merges every configuration of one layout. It returns nil when
// the enabled features do not cover the layout.
func (g *generator) bindingClass(name string, infos []layoutInfo) *bindingClass {
	class := &bindingClass{
		Package:   g.args.PackageName + "." + bindingSubpackage,
		ClassName: bindingClassName(name),
		Layout:    name,
	}
	for _, info := range infos {
		class.Folders = append(class.Folders, info.Folder)
		class.IsBindingData = class.IsBindingData || info.IsBindingData
	}
	slices.Sort(class.Folders)

	switch {
	case class.IsBindingData && g.args.EnableDataBinding:
		class.Base = "android.databinding.ViewDataBinding"
		if g.args.UseAndroidX {
			class.Base = "androidx.databinding.ViewDataBinding"
		}
	case !class.IsBindingData && g.args.EnableViewBinding:
		class.Base = "android.viewbinding.ViewBinding"
		if g.args.UseAndroidX {
			class.Base = "androidx.viewbinding.ViewBinding"
		}
	default:
		return nil
	}
	return class
}

func (g *generator) writeClassInfo(info classInfo) error {
	if err := os.MkdirAll(g.args.ArtifactFolder, 0o755); err != nil {
		return fmt.Errorf("failed to create class info folder: %w", err)
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode class info: %w", err)
	}
	path := filepath.Join(g.args.ArtifactFolder, classInfoFileName(g.args.PackageName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write class info: %w", err)
	}
	return nil
}

// readLayoutInfos groups every layout-info document below dir by layout name.
func readLayoutInfos(dir string) (map[string][]layoutInfo, error) {
	layouts := map[string][]layoutInfo{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), layoutInfoSuffix) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var info layoutInfo
		if err := xml.Unmarshal(data, &info); err != nil {
			return fmt.Errorf("failed to parse layout info %s: %w", path, err)
		}
		layouts[info.Layout] = append(layouts[info.Layout], info)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read layout info from %s: %w", dir, err)
	}
	return layouts, nil
}

// readDependencyClassInfo returns the qualified class names exported by
// dependency modules.
func readDependencyClassInfo(dirs []string) (map[string]classMapping, error) {
	provided := map[string]classMapping{}
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), classInfoSuffix) {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			var info classInfo
			if err := json.Unmarshal(data, &info); err != nil {
				return fmt.Errorf("failed to parse class info %s: %w", path, err)
			}
			for _, m := range info.Mappings {
				provided[m.QualifiedName] = m
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read dependency class info from %s: %w", dir, err)
		}
	}
	return provided, nil
}
