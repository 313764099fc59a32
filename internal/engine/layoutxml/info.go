// SPDX-License-Identifier: MPL-2.0

package layoutxml

import (
	"encoding/xml"
	"fmt"
	"strings"
	"unicode"
)

const (
	// layoutInfoSuffix ends the name of every layout-info document.
	layoutInfoSuffix = "-layout.xml"
	// classInfoSuffix ends the name of every class-info artifact.
	classInfoSuffix = "-binding_classes.json"
	// bindingSubpackage is appended to the module package for binding classes.
	bindingSubpackage = "databinding"
)

type (
	// layoutInfo is the layout-info document written for one layout file.
	layoutInfo struct {
		XMLName          xml.Name `xml:"Layout"`
		Layout           string   `xml:"layout,attr"`
		Folder           string   `xml:"directory,attr"`
		ModulePackage    string   `xml:"modulePackage,attr"`
		AbsoluteFilePath string   `xml:"absoluteFilePath,attr"`
		IsMerge          bool     `xml:"isMerge,attr"`
		IsBindingData    bool     `xml:"isBindingData,attr"`
		RootNodeType     string   `xml:"rootNodeType,attr"`
		UseAndroidX      bool     `xml:"useAndroidX,attr"`
	}

	// classInfo is the class-info artifact exported to dependent modules.
	classInfo struct {
		Mappings map[string]classMapping `json:"mappings"`
	}

	// classMapping maps one layout to its generated binding class.
	classMapping struct {
		QualifiedName string `json:"qualified_name"`
		ModulePackage string `json:"module_package"`
	}
)

// fileName returns the layout-info document name, unique per folder/layout pair.
func (l layoutInfo) fileName() string {
	return l.Folder + "-" + l.Layout + layoutInfoSuffix
}

func (l layoutInfo) marshal() (string, error) {
	data, err := xml.MarshalIndent(l, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode layout info for %s: %w", l.Layout, err)
	}
	return xml.Header + string(data) + "\n", nil
}

// bindingClassName turns a layout name like "activity_main" into "ActivityMainBinding".
func bindingClassName(layout string) string {
	var b strings.Builder
	upper := true
	for _, r := range layout {
		if r == '_' || r == '-' || r == '.' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	b.WriteString("Binding")
	return b.String()
}

// classInfoFileName returns the class-info artifact name for a module package.
func classInfoFileName(modulePackage string) string {
	return modulePackage + classInfoSuffix
}
