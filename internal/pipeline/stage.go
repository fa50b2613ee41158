// SPDX-License-Identifier: MPL-2.0

package pipeline

import "strings"

// Delimiter separates pipeline stages. It only counts as a standalone word.
const Delimiter = "|"

// Stage is one unresolved pipeline stage.
type Stage struct {
	// Token is looked up in the catalog. It may be empty for a trailing stage.
	Token string
	// Args are the literal words following the token.
	Args []string
}

// Split splits a raw command line on whitespace and then on standalone pipe
// words. See SplitWords.
func Split(raw string) []Stage {
	return SplitWords(strings.Fields(raw))
}

// SplitWords groups words into stages separated by Delimiter. A trailing
// delimiter yields an empty final stage. No words yields no stages.
func SplitWords(words []string) []Stage {
	if len(words) == 0 {
		return nil
	}
	var (
		stages []Stage
		group  []string
	)
	flush := func() {
		var st Stage
		if len(group) > 0 {
			st.Token = group[0]
			if len(group) > 1 {
				st.Args = append([]string(nil), group[1:]...)
			}
		}
		stages = append(stages, st)
		group = group[:0]
	}
	for _, w := range words {
		if w == Delimiter {
			flush()
			continue
		}
		group = append(group, w)
	}
	flush()
	return stages
}

// String renders the stage as it would be typed.
func (s Stage) String() string {
	return strings.Join(append([]string{s.Token}, s.Args...), " ")
}
