// SPDX-License-Identifier: MPL-2.0

// Package config loads databinder settings with Viper.
//
// Values come from defaults, an optional CUE or TOML file and DATABINDER_*
// environment variables, in increasing order of precedence. CUE files and
// decoded TOML documents are validated against the embedded #Config schema
// (config_schema.cue) before they are merged.
package config
