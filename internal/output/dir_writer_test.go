// SPDX-License-Identifier: MPL-2.0

package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/databinder/databinder/internal/testutil"
)

func TestClassPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"com.example.Foo", "com/example/Foo.java"},
		{"Foo", "Foo.java"},
		{"com.example.databinding.ActivityMainBinding", "com/example/databinding/ActivityMainBinding.java"},
	}
	for _, tt := range tests {
		got, err := ClassPath(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("ClassPath(%q) = %q, %v, want %q", tt.name, got, err, tt.want)
		}
	}
}

func TestClassPath_RejectsMalformedNames(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "com.example.", "..Foo", ".Foo", "com..Foo", "com/example.Foo", `com\example.Foo`} {
		if got, err := ClassPath(name); !errors.Is(err, ErrInvalidClassName) {
			t.Errorf("ClassPath(%q) = %q, %v, want ErrInvalidClassName", name, got, err)
		}
	}
}

func TestDirWriter_InvalidClassName(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	w := NewDirWriter(base)
	if err := w.WriteClass("com.example.", "X"); !errors.Is(err, ErrInvalidClassName) {
		t.Errorf("WriteClass() error = %v, want ErrInvalidClassName", err)
	}
	if err := w.DeleteClass("..Foo"); !errors.Is(err, ErrInvalidClassName) {
		t.Errorf("DeleteClass() error = %v, want ErrInvalidClassName", err)
	}
	testutil.MustNotExist(t, filepath.Join(base, "com", "example.java"))
}

func TestDirWriter_WriteDeleteClass(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), "src")
	w := NewDirWriter(base)

	if err := w.WriteClass("com.example.Foo", "X"); err != nil {
		t.Fatalf("WriteClass() error = %v", err)
	}
	target := filepath.Join(base, "com", "example", "Foo.java")
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", target, err)
	}
	if string(data) != "X" {
		t.Errorf("content = %q, want %q", data, "X")
	}

	if err := w.DeleteClass("com.example.Foo"); err != nil {
		t.Fatalf("DeleteClass() error = %v", err)
	}
	testutil.MustNotExist(t, target)

	if err := w.DeleteClass("com.example.Foo"); err != nil {
		t.Errorf("second DeleteClass() should be a no-op, got %v", err)
	}
}

func TestDirWriter_WriteClassOverwrites(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	w := NewDirWriter(base)
	for _, content := range []string{"first", "second"} {
		if err := w.WriteClass("a.B", content); err != nil {
			t.Fatalf("WriteClass() error = %v", err)
		}
	}
	got := testutil.ReadTree(t, base)
	if got["a/B.java"] != "second" {
		t.Errorf("a/B.java = %q, want %q", got["a/B.java"], "second")
	}
}

func TestDirWriter_WriteFileExactPath(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	w := NewDirWriter(base)
	exact := filepath.Join(t.TempDir(), "deep", "info", "main-layout.xml")

	if err := w.WriteFile(exact, "<Layout/>"); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(exact)
	if err != nil {
		t.Fatalf("expected exact path to be written: %v", err)
	}
	if string(data) != "<Layout/>" {
		t.Errorf("content = %q", data)
	}
	if files := testutil.ReadTree(t, base); len(files) != 0 {
		t.Errorf("exact-path write should not touch base, got %v", files)
	}
}
