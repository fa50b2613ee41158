// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ErrInvalidDescription is the sentinel error wrapped by InvalidDescriptionError.
var ErrInvalidDescription = errors.New("invalid description literal")

// InvalidDescriptionError is returned when a plugin's first line is not a
// plain quoted shell string.
type InvalidDescriptionError struct {
	Line   string
	Reason string
}

// Error implements the error interface for InvalidDescriptionError.
func (e *InvalidDescriptionError) Error() string {
	return fmt.Sprintf("invalid description literal %q: %s", e.Line, e.Reason)
}

// Unwrap returns ErrInvalidDescription for errors.Is() compatibility.
func (e *InvalidDescriptionError) Unwrap() error { return ErrInvalidDescription }

// ParseDescription parses the first line of an external plugin. The line must
// hold exactly one shell word that is either a single-quoted string or a
// double-quoted string without expansions. Inside double quotes the escapes
// \\ \" \$ and \` are honoured; any other backslash is kept literally.
func ParseDescription(line string) (string, error) {
	line = strings.TrimRight(line, "\r")
	invalid := func(reason string) (string, error) {
		return "", &InvalidDescriptionError{Line: line, Reason: reason}
	}
	if strings.ContainsRune(line, '\n') {
		return invalid("must be a single line")
	}

	f, err := syntax.NewParser().Parse(strings.NewReader(line), "")
	if err != nil {
		return invalid(err.Error())
	}
	if len(f.Stmts) != 1 || len(f.Last) > 0 {
		return invalid("must be exactly one quoted string")
	}
	st := f.Stmts[0]
	if len(st.Comments) > 0 || st.Negated || st.Background || st.Coprocess || len(st.Redirs) > 0 || st.Semicolon.IsValid() {
		return invalid("must be exactly one quoted string")
	}
	call, ok := st.Cmd.(*syntax.CallExpr)
	if !ok || len(call.Assigns) > 0 || len(call.Args) != 1 || len(call.Args[0].Parts) != 1 {
		return invalid("must be exactly one quoted string")
	}

	switch q := call.Args[0].Parts[0].(type) {
	case *syntax.SglQuoted:
		if q.Dollar {
			return invalid("ANSI-C quoting is not allowed")
		}
		return q.Value, nil
	case *syntax.DblQuoted:
		if q.Dollar {
			return invalid("locale quoting is not allowed")
		}
		var sb strings.Builder
		for _, part := range q.Parts {
			lit, ok := part.(*syntax.Lit)
			if !ok {
				return invalid("expansions are not allowed")
			}
			sb.WriteString(lit.Value)
		}
		return unescapeDouble(sb.String()), nil
	default:
		return invalid("must be a quoted string")
	}
}

func unescapeDouble(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && strings.IndexByte("\\\"$`", s[i+1]) >= 0 {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
