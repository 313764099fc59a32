// SPDX-License-Identifier: MPL-2.0

// Package types holds the small value types shared across databinder:
// process exit codes and filesystem paths.
package types
