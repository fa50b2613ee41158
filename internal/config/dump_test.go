// SPDX-License-Identifier: MPL-2.0

package config

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pelletier/go-toml/v2"
)

func TestDump_TOML(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Applications.Dirs = []string{"/usr/share/applications"}
	out, err := Dump(cfg, FormatTOML)
	if err != nil {
		t.Fatalf("Dump() error: %v", err)
	}
	for _, section := range []string{"[catalog]", "[plugins]", "[applications]", "[resolver]", "[ui]", "match_policy"} {
		if !strings.Contains(string(out), section) {
			t.Errorf("TOML output should contain %q:\n%s", section, out)
		}
	}

	var back Config
	if err := toml.Unmarshal(out, &back); err != nil {
		t.Fatalf("toml.Unmarshal() error: %v", err)
	}
	if diff := cmp.Diff(cfg, &back, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("TOML round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDump_JSON(t *testing.T) {
	t.Parallel()

	out, err := Dump(DefaultConfig(), FormatJSON)
	if err != nil {
		t.Fatalf("Dump() error: %v", err)
	}
	var back Config
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), &back, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("JSON round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDump_CUEAndUnknown(t *testing.T) {
	t.Parallel()

	out, err := Dump(DefaultConfig(), "")
	if err != nil || string(out) != GenerateCUE(DefaultConfig()) {
		t.Errorf("Dump(\"\") = %q, %v; want the CUE rendering", out, err)
	}
	if _, err := Dump(DefaultConfig(), "yaml"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Dump(yaml) error = %v, want ErrInvalidFormat", err)
	}
}
