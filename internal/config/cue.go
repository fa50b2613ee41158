// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// MaxFileSize bounds the config file read into memory.
const MaxFileSize int64 = 1 << 20

// decodeCUE validates data against the #Config definition of the embedded
// schema and decodes it into a map suitable for viper.MergeConfigMap.
// Omitted fields stay omitted, so viper defaults survive the merge.
func decodeCUE(data []byte, filename string) (map[string]any, error) {
	if int64(len(data)) > MaxFileSize {
		return nil, fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), MaxFileSize)
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, formatCUEError(userValue.Err(), filename)
	}

	unified := schemaValue.LookupPath(cue.ParsePath("#Config")).Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, formatCUEError(err, filename)
	}

	var m map[string]any
	if err := unified.Decode(&m); err != nil {
		return nil, formatCUEError(err, filename)
	}
	return m, nil
}

// formatCUEError flattens a CUE error list into "<file>: <path>: <message>"
// lines, with list indexes rendered as applications.dirs[0].
func formatCUEError(err error, filename string) error {
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", filename, err)
	}

	lines := make([]string, 0, len(list))
	for _, e := range list {
		path := cuePath(cueerrors.Path(e))
		msg := e.Error()
		if path != "" {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
			msg = path + ": " + msg
		}
		lines = append(lines, msg)
	}
	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filename, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filename, strings.Join(lines, "\n  "))
}

func cuePath(parts []string) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 && isIndex(p) {
			b.WriteString("[" + p + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
