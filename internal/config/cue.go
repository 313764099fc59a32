// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// maxFileSize bounds config files read into memory.
const maxFileSize = 1 << 20

// validateCUE compiles a CUE document, unifies it with #Config and returns
// the validated settings as a map Viper can merge.
func validateCUE(data []byte, path string) (map[string]any, error) {
	ctx := cuecontext.New()
	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return nil, formatCUEError(userValue.Err(), path)
	}
	return unifyWithSchema(ctx, userValue, path)
}

// validateDecoded checks an already decoded document (TOML) against #Config.
func validateDecoded(doc map[string]any, path string) (map[string]any, error) {
	ctx := cuecontext.New()
	userValue := ctx.Encode(doc)
	if userValue.Err() != nil {
		return nil, formatCUEError(userValue.Err(), path)
	}
	return unifyWithSchema(ctx, userValue, path)
}

func unifyWithSchema(ctx *cue.Context, userValue cue.Value, path string) (map[string]any, error) {
	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err, path)
	}

	var settings map[string]any
	if err := unified.Decode(&settings); err != nil {
		return nil, formatCUEError(err, path)
	}
	return settings, nil
}

// formatCUEError prefixes each CUE error with the file and the field path:
//
//	config.cue: log_level: 2 errors in empty disjunction
func formatCUEError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	all := cueerrors.Errors(err)
	if len(all) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	lines := make([]string, 0, len(all))
	for _, e := range all {
		pathStr := strings.Join(cueerrors.Path(e), ".")
		msg := e.Error()
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, pathStr), ":"))
		}
		if pathStr != "" {
			msg = pathStr + ": " + msg
		}
		lines = append(lines, msg)
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

func checkFileSize(data []byte, filename string) error {
	if len(data) > maxFileSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), maxFileSize)
	}
	return nil
}
