// SPDX-License-Identifier: MPL-2.0

// Package archive zips a directory into a single archive and unzips an
// archive into a directory. Entry names are always slash-separated and
// relative to the archived directory.
package archive
