// SPDX-License-Identifier: MPL-2.0

package catalog

import "testing"

func TestPattern_Like(t *testing.T) {
	t.Parallel()
	tests := []struct {
		pattern Pattern
		want    string
	}{
		{SubstringPattern(""), "%"},
		{SubstringPattern("fire"), "%fire%"},
		{SubstringPattern("50%_off"), `%50\%\_off%`},
		{SubstringPattern(`a\b`), `%a\\b%`},
		{SubsequencePattern("ff"), "%f%f%"},
		{SubsequencePattern(""), "%"},
	}
	for _, tt := range tests {
		if got := tt.pattern.Like(); got != tt.want {
			t.Errorf("Like() = %q, want %q", got, tt.want)
		}
	}
}

func TestPattern_Match(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		pattern Pattern
		target  string
		want    bool
	}{
		{"empty matches anything", SubstringPattern(""), "Firefox", true},
		{"substring", SubstringPattern("ref"), "Firefox", true},
		{"substring folds ascii case", SubstringPattern("FIREFOX"), "firefox", true},
		{"substring miss", SubstringPattern("fx"), "Firefox", false},
		{"subsequence", SubsequencePattern("fx"), "Firefox", true},
		{"subsequence order matters", SubsequencePattern("xf"), "Firefox", false},
		{"subsequence repeated rune", SubsequencePattern("ff"), "Firefox", true},
		{"subsequence repeated rune miss", SubsequencePattern("fff"), "Firefox", false},
		{"non-ascii is exact", SubstringPattern("É"), "éditeur", false},
		{"non-ascii exact hit", SubstringPattern("é"), "éditeur", true},
	}
	for _, tt := range tests {
		if got := tt.pattern.Match(tt.target); got != tt.want {
			t.Errorf("%s: Match(%q) = %v, want %v", tt.name, tt.target, got, tt.want)
		}
	}
}

func TestKindSet(t *testing.T) {
	t.Parallel()
	s := NewKindSet(KindPipe, KindApplication)
	if !s.Has(KindApplication) || !s.Has(KindPipe) || s.Has(KindAction) {
		t.Errorf("NewKindSet membership wrong: %08b", s)
	}
	kinds := s.Kinds()
	if len(kinds) != 2 || kinds[0] != KindApplication || kinds[1] != KindPipe {
		t.Errorf("Kinds() = %v, want [application pipe]", kinds)
	}
	if got := len(AllKinds.Kinds()); got != 3 {
		t.Errorf("AllKinds has %d kinds, want 3", got)
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()
	for _, k := range AllKinds.Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("widget"); err == nil {
		t.Error("ParseKind(widget) should fail")
	}
}
