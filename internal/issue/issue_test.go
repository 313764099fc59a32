// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		InputNotUsableId,
		InvalidFlagsId,
		UnsupportedOperationId,
		ConfigLoadFailedId,
		PipelineFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if InputNotUsableId != 1 {
		t.Errorf("InputNotUsableId = %d, want 1", InputNotUsableId)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{InputNotUsableId, false, "Input is not usable"},
		{InvalidFlagsId, false, "Invalid flags"},
		{UnsupportedOperationId, false, "Unsupported operation"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{PipelineFailedId, false, "Build step failed"},
		{Id(9999), true, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			issue := Get(tt.id)

			if tt.wantNil {
				if issue != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}

			if issue == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}
}

func TestIssue_Render(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	var gotStyle string
	render = func(in string, stylePath string) (string, error) {
		gotStyle = stylePath
		return in, nil
	}

	rendered, err := Get(InputNotUsableId).Render("notty")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if gotStyle != "notty" {
		t.Errorf("style = %q, want notty", gotStyle)
	}
	if !strings.Contains(rendered, "-resInput") {
		t.Error("Render() output should mention -resInput")
	}
	if !strings.Contains(rendered, "## See also") || !strings.Contains(rendered, "developer.android.com") {
		t.Errorf("Render() output should list the doc links:\n%s", rendered)
	}
}

func TestIssue_RenderWithoutLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, _ string) (string, error) {
		return in, nil
	}

	rendered, err := Get(PipelineFailedId).Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() should not add a links section without links")
	}
}
