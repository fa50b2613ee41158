// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"strings"
	"unicode/utf8"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Pattern is a name filter understood by every backend. The needles must
// appear in the name in order; matching folds ASCII case only, which is what
// SQLite's LIKE operator does.
type Pattern struct {
	needles []string
}

// SubstringPattern matches names containing token anywhere.
func SubstringPattern(token string) Pattern {
	if token == "" {
		return Pattern{}
	}
	return Pattern{needles: []string{token}}
}

// SubsequencePattern matches names containing every character of token in order.
func SubsequencePattern(token string) Pattern {
	needles := make([]string, 0, utf8.RuneCountInString(token))
	for _, r := range token {
		needles = append(needles, string(r))
	}
	return Pattern{needles: needles}
}

// Like returns the pattern as an argument for `LIKE ? ESCAPE '\'`.
func (p Pattern) Like() string {
	var sb strings.Builder
	sb.WriteByte('%')
	for _, n := range p.needles {
		sb.WriteString(likeEscaper.Replace(n))
		sb.WriteByte('%')
	}
	return sb.String()
}

// Match reports whether name satisfies the pattern.
func (p Pattern) Match(name string) bool {
	rest := asciiLower(name)
	for _, n := range p.needles {
		i := strings.Index(rest, asciiLower(n))
		if i < 0 {
			return false
		}
		rest = rest[i+len(n):]
	}
	return true
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
