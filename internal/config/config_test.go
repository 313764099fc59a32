// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/databinder/databinder/internal/issue"
	"github.com/databinder/databinder/internal/pipeline"
	"github.com/databinder/databinder/internal/testutil"
	"github.com/databinder/databinder/pkg/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

// isolated returns options that never look outside the test directories.
func isolated(t *testing.T) (LoadOptions, string, string) {
	t.Helper()
	cfgDir := filepath.Join(t.TempDir(), "cfg")
	baseDir := t.TempDir()
	return LoadOptions{
		ConfigDirPath: types.FilesystemPath(cfgDir),
		BaseDir:       types.FilesystemPath(baseDir),
	}, cfgDir, baseDir
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.LogLevel != LogLevelInfo {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.LegacyExitStatus || cfg.KeepTemp || cfg.TempRoot != "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.LayoutInfoArchiveName != "layout-info.zip" {
		t.Errorf("LayoutInfoArchiveName = %q", cfg.LayoutInfoArchiveName)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Parallel()

	opts, _, _ := isolated(t)
	cfg, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.LayoutInfoArchiveName != pipeline.DefaultLayoutInfoArchiveName || cfg.LogLevel != LogLevelInfo {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_CUEFromConfigDir(t *testing.T) {
	t.Parallel()

	opts, cfgDir, _ := isolated(t)
	path := filepath.Join(cfgDir, "config.cue")
	writeFile(t, path, `
log_level: "debug"
keep_temp: true
layout_info_archive_name: "infos.ZIP"
`)

	cfg, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
	if cfg.LogLevel != LogLevelDebug || !cfg.KeepTemp || cfg.LayoutInfoArchiveName != "infos.ZIP" {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.LegacyExitStatus {
		t.Error("unset keys should keep their defaults")
	}
}

func TestLoad_LocalTOML(t *testing.T) {
	t.Parallel()

	opts, _, baseDir := isolated(t)
	writeFile(t, filepath.Join(baseDir, "databinder.toml"), `
legacy_exit_status = true
temp_root = "/var/tmp/db"
`)

	cfg, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.LegacyExitStatus || cfg.TempRoot != "/var/tmp/db" {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoad_CUEPreferredOverTOML(t *testing.T) {
	t.Parallel()

	opts, cfgDir, baseDir := isolated(t)
	writeFile(t, filepath.Join(cfgDir, "config.toml"), `keep_temp = true`)
	writeFile(t, filepath.Join(baseDir, "databinder.cue"), `log_level: "warn"`)

	cfg, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != LogLevelWarn || cfg.KeepTemp {
		t.Errorf("Load() = %+v, want only the CUE file applied", cfg)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	t.Parallel()

	opts, cfgDir, _ := isolated(t)
	writeFile(t, filepath.Join(cfgDir, "config.cue"), `keep_temp: true`)
	explicit := filepath.Join(t.TempDir(), "custom.cue")
	writeFile(t, explicit, `log_level: "error"`)
	opts.ConfigFilePath = types.FilesystemPath(explicit)

	cfg, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != LogLevelError || cfg.KeepTemp {
		t.Errorf("Load() = %+v, want only the explicit file applied", cfg)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	t.Parallel()

	opts, _, _ := isolated(t)
	opts.ConfigFilePath = types.FilesystemPath(filepath.Join(t.TempDir(), "missing.cue"))

	_, err := NewProvider().Load(context.Background(), opts)
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Load() error = %v, want ActionableError", err)
	}
	if ae.IssueID != issue.ConfigLoadFailedId || !ae.HasSuggestions() {
		t.Errorf("ActionableError = %+v", ae)
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("error = %q", err)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"bad level", "config.cue", `log_level: "loud"`, "log_level"},
		{"unknown key", "config.cue", `container_engine: "docker"`, "container_engine"},
		{"archive name", "config.cue", `layout_info_archive_name: "info.tar"`, "layout_info_archive_name"},
		{"cue syntax", "config.cue", `log_level: "debug`, "config.cue"},
		{"toml type", "config.toml", `keep_temp = "yes"`, "keep_temp"},
		{"toml syntax", "config.toml", `keep_temp = `, "config.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts, cfgDir, _ := isolated(t)
			writeFile(t, filepath.Join(cfgDir, tt.file), tt.content)

			_, err := NewProvider().Load(context.Background(), opts)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABINDER_LEGACY_EXIT_STATUS", "true")
	t.Setenv("DATABINDER_LOG_LEVEL", "debug")

	opts, cfgDir, _ := isolated(t)
	writeFile(t, filepath.Join(cfgDir, "config.cue"), `log_level: "warn"`)

	cfg, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.LegacyExitStatus {
		t.Error("DATABINDER_LEGACY_EXIT_STATUS should enable legacy exit status")
	}
	if cfg.LogLevel != LogLevelDebug {
		t.Errorf("LogLevel = %q, environment should win over the file", cfg.LogLevel)
	}
}

func TestLoad_EnvInvalidValue(t *testing.T) {
	t.Setenv("DATABINDER_LOG_LEVEL", "loud")

	opts, _, _ := isolated(t)
	_, err := NewProvider().Load(context.Background(), opts)
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, ErrInvalidLogLevel) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig wrapping ErrInvalidLogLevel", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts, _, _ := isolated(t)
	if _, err := NewProvider().Load(ctx, opts); !errors.Is(err, context.Canceled) {
		t.Fatalf("Load() error = %v, want context.Canceled", err)
	}
}

func TestLoadOptions_Validate(t *testing.T) {
	t.Parallel()

	if err := (LoadOptions{}).Validate(); err != nil {
		t.Errorf("empty LoadOptions should be valid, got %v", err)
	}

	err := LoadOptions{ConfigFilePath: "  ", BaseDir: "\t"}.Validate()
	var loadErr *InvalidLoadOptionsError
	if !errors.As(err, &loadErr) || !errors.Is(err, ErrInvalidLoadOptions) {
		t.Fatalf("Validate() error = %v, want InvalidLoadOptionsError", err)
	}
	if len(loadErr.FieldErrors) != 2 {
		t.Errorf("FieldErrors = %v, want 2", loadErr.FieldErrors)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME is only used on Linux and other Unix systems")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(xdg, AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestConfigDir_HomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))

	var want string
	switch runtime.GOOS {
	case "windows":
		t.Setenv("APPDATA", "")
		want = filepath.Join(home, "AppData", "Roaming", AppName)
	case "darwin":
		want = filepath.Join(home, "Library", "Application Support", AppName)
	default:
		t.Setenv("XDG_CONFIG_HOME", "")
		want = filepath.Join(home, ".config", AppName)
	}

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}
