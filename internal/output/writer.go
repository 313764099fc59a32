// SPDX-License-Identifier: MPL-2.0

package output

import (
	"errors"
	"fmt"
	"strings"
)

// SourceExt is appended to every canonical name when it is turned into a path.
const SourceExt = ".java"

// ErrUnsupportedOperation is returned when a Writer cannot perform an operation
// for its destination kind (e.g., deleting from an archive).
var ErrUnsupportedOperation = errors.New("unsupported operation")

// ErrInvalidClassName is returned for a canonical name with an empty segment
// or a path separator in it.
var ErrInvalidClassName = errors.New("invalid canonical class name")

// Writer is the destination generated files are written through.
// Exactly one Writer is bound to one destination for the lifetime of a
// pipeline run.
type Writer interface {
	// WriteClass stores contents under the path derived from a dotted
	// canonical name.
	WriteClass(canonicalName, contents string) error
	// WriteFile stores contents at an exact filesystem path.
	WriteFile(exactPath, contents string) error
	// DeleteClass removes the file derived from a dotted canonical name.
	DeleteClass(canonicalName string) error
}

// ClassPath returns the slash-separated relative path for a canonical name:
// dots become separators and SourceExt is appended. Names are never
// rewritten; "com.example." and "..Foo" are rejected.
func ClassPath(canonicalName string) (string, error) {
	segments := strings.Split(canonicalName, ".")
	for _, segment := range segments {
		if segment == "" || strings.ContainsAny(segment, `/\`) {
			return "", fmt.Errorf("%w: %q", ErrInvalidClassName, canonicalName)
		}
	}
	return strings.Join(segments, "/") + SourceExt, nil
}
