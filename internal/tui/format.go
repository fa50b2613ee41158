// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"
	"strings"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
	"github.com/rapidcopper/rapidcopper/internal/resolve"
)

// KindLabel returns the column label of a kind, tab padded so that names
// line up: "app:\t\t", "action:\t", "pipe:\t\t".
func KindLabel(k catalog.Kind) string {
	switch k {
	case catalog.KindApplication:
		return "app:\t\t"
	case catalog.KindAction:
		return "action:\t"
	case catalog.KindPipe:
		return "pipe:\t\t"
	default:
		return k.String() + ":\t"
	}
}

// FormatEntry renders an entry as two lines: kind, name and description,
// then the location indented under the name.
func FormatEntry(e catalog.Entry) string {
	return fmt.Sprintf("%s%s - %s\n\t\t%s", KindLabel(e.Kind), e.Name, e.Description, e.Location)
}

// FormatCandidates renders a numbered candidate list. Numbers are the
// 0-based indexes PromptChoice expects.
func FormatCandidates(cs []resolve.Candidate) string {
	var sb strings.Builder
	for i, c := range cs {
		fmt.Fprintf(&sb, "[%d] %s\n", i, FormatEntry(c.Entry))
	}
	return sb.String()
}
