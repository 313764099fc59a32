// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
package platform

import (
	"path"
	"strings"
)

// windowsReservedNames are device names Windows refuses as file names,
// whatever the extension.
var windowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsWindowsReservedName checks if a file name is a Windows device name.
// Only the part before the first dot is compared, so "con.xml" and
// "nul.tar.gz" are reserved too.
func IsWindowsReservedName(name string) bool {
	stem, _, _ := strings.Cut(strings.ToUpper(name), ".")
	return windowsReservedNames[stem]
}

// ReservedSegment returns the first segment of a slash-separated archive
// entry name that Windows cannot create, or "" if there is none.
func ReservedSegment(entry string) string {
	for _, segment := range strings.Split(path.Clean(entry), "/") {
		if IsWindowsReservedName(segment) {
			return segment
		}
	}
	return ""
}
