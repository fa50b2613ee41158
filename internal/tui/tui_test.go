// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestShouldUseAccessible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config Config
	}{
		{name: "explicit accessible", config: Config{Accessible: true}},
		{name: "explicit input reader", config: Config{Input: strings.NewReader("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !shouldUseAccessible(tt.config) {
				t.Error("shouldUseAccessible() = false, want true")
			}
		})
	}
}

func TestGetOutputWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if got := getOutputWriter(Config{Output: &buf}); got != &buf {
		t.Errorf("getOutputWriter() = %v, want the configured writer", got)
	}
	if got := getOutputWriter(Config{Accessible: true}); got != os.Stderr {
		t.Errorf("getOutputWriter(accessible) = %v, want os.Stderr", got)
	}
}

func TestGetInputReader(t *testing.T) {
	t.Parallel()

	r := strings.NewReader("x")
	if got := getInputReader(Config{Input: r}); got != r {
		t.Errorf("getInputReader() = %v, want the configured reader", got)
	}
	if got := getInputReader(Config{}); got != os.Stdin {
		t.Errorf("getInputReader() = %v, want os.Stdin", got)
	}
}

func TestParseTheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Theme
	}{
		{"charm", ThemeCharm},
		{"dracula", ThemeDracula},
		{"catppuccin", ThemeCatppuccin},
		{"base16", ThemeBase16},
		{"default", ThemeDefault},
		{"", ThemeDefault},
		{"neon", ThemeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := ParseTheme(tt.in); got != tt.want {
				t.Errorf("ParseTheme(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if getHuhTheme(ParseTheme(tt.in)) == nil {
				t.Errorf("getHuhTheme(%q) = nil", tt.in)
			}
		})
	}
}
