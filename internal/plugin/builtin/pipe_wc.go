// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rapidcopper/rapidcopper/internal/plugin"
)

func init() {
	plugin.RegisterDefault(plugin.Builtin{
		Module: "pipe_wc",
		Doc:    "Count lines, words and characters",
		Run:    textPipe("pipe_wc", wordCount),
	})
}

// wordCount formats counts the way wc does: lines, words, characters.
// A final line without a newline still counts as a line.
func wordCount(s string) string {
	lines := strings.Count(s, "\n")
	if s != "" && !strings.HasSuffix(s, "\n") {
		lines++
	}
	return fmt.Sprintf("%d %d %d", lines, len(strings.Fields(s)), utf8.RuneCountInString(s))
}
