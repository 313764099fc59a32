// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/databinder/databinder/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "databinder"
	// ConfigFileName is the config file name inside ConfigDir (without extension).
	ConfigFileName = "config"
	// LocalConfigFileName is the config file name looked up in the working
	// directory (without extension).
	LocalConfigFileName = "databinder"
	// EnvPrefix prefixes every environment override, as in DATABINDER_KEEP_TEMP.
	EnvPrefix = "DATABINDER"

	cueExt  = ".cue"
	tomlExt = ".toml"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the databinder configuration directory: %APPDATA% on
// Windows, ~/Library/Application Support on macOS and $XDG_CONFIG_HOME
// (defaulting to ~/.config) elsewhere.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel.String())
	v.SetDefault("legacy_exit_status", defaults.LegacyExitStatus)
	v.SetDefault("keep_temp", defaults.KeepTemp)
	v.SetDefault("temp_root", defaults.TempRoot)
	v.SetDefault("layout_info_archive_name", defaults.LayoutInfoArchiveName)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := resolveConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadFileIntoViper(v, path); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE or TOML syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check the " + EnvPrefix + "_* environment variables").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	return &cfg, nil
}

// resolveConfigFile returns the file to load, or "" when none exists. An
// explicit ConfigFilePath must exist; otherwise the config directory and the
// base directory are searched, CUE before TOML.
func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		path := opts.ConfigFilePath.String()
		if !fileExists(path) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
		return path, nil
	}

	cfgDir := opts.ConfigDirPath.String()
	if cfgDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return "", err
		}
		cfgDir = dir
	}
	baseDir := opts.BaseDir.String()
	if baseDir == "" {
		baseDir = "."
	}

	for _, ext := range []string{cueExt, tomlExt} {
		for _, candidate := range []string{
			filepath.Join(cfgDir, ConfigFileName+ext),
			filepath.Join(baseDir, LocalConfigFileName+ext),
		} {
			if fileExists(candidate) {
				return candidate, nil
			}
		}
	}
	return "", nil
}

// loadFileIntoViper validates a CUE or TOML file against #Config and merges
// it into v. Files without a .toml extension are read as CUE.
func loadFileIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := checkFileSize(data, path); err != nil {
		return err
	}

	var settings map[string]any
	if strings.EqualFold(filepath.Ext(path), tomlExt) {
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			var decodeErr *toml.DecodeError
			if errors.As(err, &decodeErr) {
				row, col := decodeErr.Position()
				return fmt.Errorf("%s:%d:%d: %w", path, row, col, err)
			}
			return fmt.Errorf("%s: %w", path, err)
		}
		settings, err = validateDecoded(doc, path)
	} else {
		settings, err = validateCUE(data, path)
	}
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(settings); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
