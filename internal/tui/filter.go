// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// MatchedIndexes returns the byte offsets of name that the fuzzy match of
// token hits, or nil when token is empty or does not match.
func MatchedIndexes(token, name string) []int {
	if token == "" {
		return nil
	}
	matches := fuzzy.Find(token, []string{name})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}

// Highlight renders name with the characters matched by token emphasized.
func Highlight(token, name string) string {
	idx := MatchedIndexes(token, name)
	if len(idx) == 0 {
		return nameStyle.Render(name)
	}

	hit := make(map[int]bool, len(idx))
	for _, i := range idx {
		hit[i] = true
	}

	var sb strings.Builder
	for i, r := range name {
		if hit[i] {
			sb.WriteString(matchStyle.Render(string(r)))
			continue
		}
		sb.WriteString(nameStyle.Render(string(r)))
	}
	return sb.String()
}
