// SPDX-License-Identifier: MPL-2.0

// Package cmd is the databinder command line: a root command that selects
// one of the PROCESS_RESOURCES and GEN_BASE_CLASSES subcommands, parses its
// flags into pipeline options and maps the outcome to a process exit code.
package cmd
