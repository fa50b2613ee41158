// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		want []Stage
	}{
		{"", nil},
		{"   ", nil},
		{"firefox", []Stage{{Token: "firefox"}}},
		{"greet world", []Stage{{Token: "greet", Args: []string{"world"}}}},
		{"greet big  world | upper", []Stage{{Token: "greet", Args: []string{"big", "world"}}, {Token: "upper"}}},
		{"a | b | c", []Stage{{Token: "a"}, {Token: "b"}, {Token: "c"}}},
		{"a |", []Stage{{Token: "a"}, {}}},
		{"a | | c", []Stage{{Token: "a"}, {}, {Token: "c"}}},
		{"| a", []Stage{{}, {Token: "a"}}},
		{"a|b", []Stage{{Token: "a|b"}}},
		{"echo x|y | upper", []Stage{{Token: "echo", Args: []string{"x|y"}}, {Token: "upper"}}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Split(tt.raw)); diff != "" {
			t.Errorf("Split(%q) mismatch (-want +got):\n%s", tt.raw, diff)
		}
	}
}

func TestSplitWords_KeepsWordsIntact(t *testing.T) {
	t.Parallel()
	got := SplitWords([]string{"greet", "hello world", "|", "upper"})
	want := []Stage{{Token: "greet", Args: []string{"hello world"}}, {Token: "upper"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitWords() mismatch (-want +got):\n%s", diff)
	}
}

func TestStage_String(t *testing.T) {
	t.Parallel()
	if got := (Stage{Token: "greet", Args: []string{"a", "b"}}).String(); got != "greet a b" {
		t.Errorf("String() = %q", got)
	}
}
