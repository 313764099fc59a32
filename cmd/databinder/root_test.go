// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/databinder/databinder/internal/config"
	"github.com/databinder/databinder/internal/testutil"
	"github.com/databinder/databinder/pkg/types"
)

const (
	viewLayout = `<?xml version="1.0" encoding="utf-8"?>
<FrameLayout xmlns:android="http://schemas.android.com/apk/res/android"/>
`
	dataLayout = `<?xml version="1.0" encoding="utf-8"?>
<layout xmlns:android="http://schemas.android.com/apk/res/android">
  <data><variable name="user" type="com.example.User"/></data>
  <TextView android:text="@{user.name}"/>
</layout>
`
)

// stubConfig returns a fixed configuration.
type stubConfig struct {
	cfg *config.Config
	err error
}

func (s stubConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	return s.cfg, s.err
}

type result struct {
	code   types.ExitCode
	stdout string
	stderr string
}

// run executes argv with cfg and temp directories below a test directory.
func run(t *testing.T, cfg *config.Config, argv ...string) result {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if cfg.TempRoot == "" {
		cfg.TempRoot = filepath.Join(t.TempDir(), "tmp")
	}

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: stubConfig{cfg: cfg},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	code := app.Run(context.Background(), argv)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestDispatch_NoArguments(t *testing.T) {
	t.Parallel()

	res := run(t, nil)
	if res.code != types.ExitFailure {
		t.Fatalf("exit code = %d, want %d", res.code, types.ExitFailure)
	}
	for _, want := range []string{usageIntro, ProcessResourcesCmd, GenBaseClassesCmd, "resInput", "layoutInfoFiles"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("usage does not mention %q:\n%s", want, res.stdout)
		}
	}
}

func TestDispatch_UnknownSubcommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		argv []string
	}{
		{"unknown name", []string{"BUILD_EVERYTHING", "-resInput", "x"}},
		{"wrong case", []string{"process_resources"}},
		{"help", []string{"help"}},
		{"help for a subcommand", []string{"help", ProcessResourcesCmd}},
		{"completion", []string{"completion", "bash"}},
		{"man", []string{"man"}},
		{"shell completion request", []string{"__complete", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := run(t, nil, tt.argv...)
			if res.code != types.ExitFailure {
				t.Fatalf("exit code = %d, want %d\nstdout: %s\nstderr: %s", res.code, types.ExitFailure, res.stdout, res.stderr)
			}
			if !strings.Contains(res.stdout, usageIntro) || !strings.Contains(res.stdout, GenBaseClassesCmd) {
				t.Errorf("usage not printed:\n%s", res.stdout)
			}
			if want := fmt.Sprintf("unknown subcommand %q", tt.argv[0]); !strings.Contains(res.stderr, want) {
				t.Errorf("stderr does not contain %s:\n%s", want, res.stderr)
			}
		})
	}
}

func TestDispatch_FlagErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"unknown flag", []string{ProcessResourcesCmd, "-bogus", "1"}, "bogus"},
		{"bad bool value", []string{GenBaseClassesCmd, "--zipSourceOutput=maybe"}, "zipSourceOutput"},
		{"missing required", []string{ProcessResourcesCmd, "-package", "com.example"}, "-resInput"},
		{"positional", []string{GenBaseClassesCmd, "stray"}, "stray"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := run(t, nil, tt.argv...)
			if res.code != types.ExitBadFlags {
				t.Fatalf("exit code = %d, want %d\nstderr: %s", res.code, types.ExitBadFlags, res.stderr)
			}
			if !strings.Contains(res.stderr, tt.want) {
				t.Errorf("stderr does not mention %q:\n%s", tt.want, res.stderr)
			}
		})
	}
}

func writeResources(t *testing.T, dir string) string {
	t.Helper()
	res := filepath.Join(dir, "res")
	testutil.WriteTree(t, res, map[string]string{
		"layout/activity_main.xml": dataLayout,
		"layout/item.xml":          viewLayout,
		"values/strings.xml":       "<resources/>",
	})
	return res
}

func findZips(t *testing.T, root string) []string {
	t.Helper()
	var zips []string
	for rel := range testutil.ReadTree(t, root) {
		if types.FilesystemPath(rel).HasArchiveExt() {
			zips = append(zips, rel)
		}
	}
	return zips
}

func TestProcessResources_Unzipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	res := writeResources(t, dir)
	out := filepath.Join(dir, "out")

	r := run(t, nil, ProcessResourcesCmd,
		"-package", "com.example",
		"-resInput", res,
		"-resOutput", filepath.Join(out, "res"),
		"-layoutInfoOutput", filepath.Join(out, "info"),
		"-zipResOutput", "false",
		"-zipLayoutInfo", "false",
		"-enableViewBinding", "true",
		"-enableDataBinding", "true",
	)
	if r.code != types.ExitSuccess {
		t.Fatalf("exit code = %d\nstderr: %s", r.code, r.stderr)
	}
	if got := testutil.ReadTree(t, filepath.Join(out, "res")); len(got) != 3 {
		t.Errorf("resource output = %v", got)
	}
	if got := testutil.ReadTree(t, filepath.Join(out, "info")); len(got) != 2 {
		t.Errorf("layout info output = %v", got)
	}
	if zips := findZips(t, out); len(zips) != 0 {
		t.Errorf("unexpected archives: %v", zips)
	}
}

func TestProcessResources_LayoutInfoArchiveInDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	res := writeResources(t, dir)
	info := filepath.Join(dir, "out")

	r := run(t, nil, ProcessResourcesCmd,
		"--package", "com.example",
		"--resInput", res,
		"--resOutput", filepath.Join(dir, "res-out"),
		"--layoutInfoOutput", info,
		"--zipResOutput=false",
	)
	if r.code != types.ExitSuccess {
		t.Fatalf("exit code = %d\nstderr: %s", r.code, r.stderr)
	}
	entries := testutil.ReadZip(t, filepath.Join(info, "layout-info.zip"))
	if _, ok := entries["layout-activity_main-layout.xml"]; !ok || len(entries) != 2 {
		t.Errorf("layout-info.zip entries = %v", entries)
	}
}

func TestGenBaseClasses_ZippedSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	res := writeResources(t, dir)
	infoZip := filepath.Join(dir, "stage1", "infos.zip")
	resZip := filepath.Join(dir, "stage1", "res.zip")

	r := run(t, nil, ProcessResourcesCmd,
		"-package", "com.example",
		"-resInput", res,
		"-resOutput", resZip,
		"-layoutInfoOutput", infoZip,
	)
	if r.code != types.ExitSuccess {
		t.Fatalf("PROCESS_RESOURCES exit code = %d\nstderr: %s", r.code, r.stderr)
	}
	if got := testutil.ReadZip(t, resZip); len(got) != 3 {
		t.Errorf("resource archive = %v", got)
	}

	out := filepath.Join(dir, "stage2")
	testutil.MustMkdirAll(t, out)
	r = run(t, nil, GenBaseClassesCmd,
		"-layoutInfoFiles", infoZip,
		"-package", "com.example",
		"-classInfoOut", filepath.Join(out, "class-info.zip"),
		"-sourceOut", filepath.Join(out, "sources.zip"),
		"-zipSourceOutput", "true",
	)
	if r.code != types.ExitSuccess {
		t.Fatalf("GEN_BASE_CLASSES exit code = %d\nstderr: %s", r.code, r.stderr)
	}

	sources := testutil.ReadZip(t, filepath.Join(out, "sources.zip"))
	main := sources["com/example/databinding/ActivityMainBinding.java"]
	if !strings.Contains(main, "androidx.databinding.ViewDataBinding") {
		t.Errorf("ActivityMainBinding.java = %q", main)
	}
	if _, ok := sources["com/example/databinding/ItemBinding.java"]; !ok {
		t.Errorf("source archive = %v", sources)
	}
	classInfo := testutil.ReadZip(t, filepath.Join(out, "class-info.zip"))
	if !strings.Contains(classInfo["com.example-binding_classes.json"], "com.example.databinding.ItemBinding") {
		t.Errorf("class info archive = %v", classInfo)
	}
}

func TestGenBaseClasses_InvalidInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	argv := []string{GenBaseClassesCmd,
		"-layoutInfoFiles", filepath.Join(dir, "missing.zip"),
		"-package", "com.example",
		"-classInfoOut", filepath.Join(dir, "class-info.zip"),
		"-sourceOut", filepath.Join(dir, "src"),
	}

	r := run(t, nil, argv...)
	if r.code != types.ExitInvalidInput {
		t.Fatalf("exit code = %d, want %d\nstderr: %s", r.code, types.ExitInvalidInput, r.stderr)
	}
	if !strings.Contains(r.stderr, "missing.zip") || !strings.Contains(r.stderr, "exists: false") {
		t.Errorf("stderr does not describe the input:\n%s", r.stderr)
	}
	for _, hint := range []string{"Pass an existing zip archive or directory", "ran first"} {
		if !strings.Contains(r.stderr, hint) {
			t.Errorf("stderr does not suggest %q:\n%s", hint, r.stderr)
		}
	}

	legacy := config.DefaultConfig()
	legacy.LegacyExitStatus = true
	r = run(t, legacy, argv...)
	if r.code != types.ExitSuccess {
		t.Fatalf("legacy exit code = %d, want 0\nstderr: %s", r.code, r.stderr)
	}
	if !strings.Contains(r.stderr, "pipeline failed") {
		t.Errorf("legacy mode should log the failure:\n%s", r.stderr)
	}
}

func TestDispatch_ConfigLoadFailureWarns(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: stubConfig{err: errors.New("config.cue: log_level: conflicting values")},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	dir := t.TempDir()
	code := app.Run(context.Background(), []string{ProcessResourcesCmd,
		"-package", "com.example",
		"-resInput", writeResources(t, dir),
		"-resOutput", filepath.Join(dir, "res-out"),
		"-layoutInfoOutput", filepath.Join(dir, "info"),
		"-zipResOutput", "false",
	})
	if code != types.ExitSuccess {
		t.Fatalf("exit code = %d\nstderr: %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "Warning") || !strings.Contains(stderr.String(), "log_level") {
		t.Errorf("stderr should warn about the config:\n%s", stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "info", "layout-info.zip")); err != nil {
		t.Errorf("defaults not applied: %v", err)
	}
}
