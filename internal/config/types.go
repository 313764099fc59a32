// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/databinder/databinder/internal/pipeline"
	"github.com/databinder/databinder/pkg/types"
)

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is the sentinel error wrapped by InvalidLogLevelError.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level of log output.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// Config holds the databinder settings.
	Config struct {
		// LogLevel is raised to debug by --verbose.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
		// LegacyExitStatus restores exit status 0 for failed pipelines.
		LegacyExitStatus bool `json:"legacy_exit_status" mapstructure:"legacy_exit_status"`
		// KeepTemp leaves temporary directories on disk.
		KeepTemp bool `json:"keep_temp" mapstructure:"keep_temp"`
		// TempRoot is the parent of temporary directories.
		TempRoot string `json:"temp_root" mapstructure:"temp_root"`
		// LayoutInfoArchiveName is created inside a layout-info output
		// directory when zipping.
		LayoutInfoArchiveName string `json:"layout_info_archive_name" mapstructure:"layout_info_archive_name"`

		// Source is the file the settings were read from, empty when only
		// defaults and environment variables apply.
		Source string `json:"-" mapstructure:"-"`
	}

	// InvalidConfigError collects every invalid field of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:              LogLevelInfo,
		LayoutInfoArchiveName: pipeline.DefaultLayoutInfoArchiveName,
	}
}

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// Validate returns an error if the level is not one of the known levels.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Validate checks the values that environment variables can set without
// passing through the schema.
func (c *Config) Validate() error {
	var errs []error
	if err := c.LogLevel.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !types.FilesystemPath(c.LayoutInfoArchiveName).HasArchiveExt() {
		errs = append(errs, fmt.Errorf("layout_info_archive_name %q must end in %s", c.LayoutInfoArchiveName, types.ArchiveExt))
	}
	if c.TempRoot != "" && strings.TrimSpace(c.TempRoot) == "" {
		errs = append(errs, errors.New("temp_root must not be whitespace-only"))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so errors.Is
// matches both the sentinel and any field sentinel.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
