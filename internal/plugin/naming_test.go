// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"testing"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
)

func TestParseSourceName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in     string
		kind   catalog.Kind
		id     string
		wantOK bool
	}{
		{"action_greet.sh", catalog.KindAction, "greet", true},
		{"pipe_Upper.sh", catalog.KindPipe, "upper", true},
		{"action_two.parts.sh", catalog.KindAction, "two", true},
		{"action_greet", catalog.KindAction, "greet", true},
		{"pipe_.sh", 0, "", false},
		{"greet.sh", 0, "", false},
		{"Action_greet.sh", 0, "", false},
	}
	for _, tt := range tests {
		kind, id, ok := ParseSourceName(tt.in)
		if ok != tt.wantOK || kind != tt.kind || id != tt.id {
			t.Errorf("ParseSourceName(%q) = %v, %q, %v; want %v, %q, %v", tt.in, kind, id, ok, tt.kind, tt.id, tt.wantOK)
		}
	}
}

func TestModuleName(t *testing.T) {
	t.Parallel()
	if got := ModuleName(catalog.KindPipe, "upper"); got != "pipe_upper" {
		t.Errorf("ModuleName(pipe) = %q", got)
	}
	if got := ModuleName(catalog.KindAction, "greet"); got != "action_greet" {
		t.Errorf("ModuleName(action) = %q", got)
	}
}
