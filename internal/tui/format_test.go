// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
	"github.com/rapidcopper/rapidcopper/internal/resolve"
	"github.com/rapidcopper/rapidcopper/internal/testutil/catalogtest"
)

func TestFormatEntry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry catalog.Entry
		want  string
	}{
		{
			name:  "application",
			entry: catalogtest.NewApplication("Firefox", catalogtest.WithDescription("Web Browser"), catalogtest.WithLocation("/usr/share/applications/firefox.desktop")),
			want:  "app:\t\tFirefox - Web Browser\n\t\t/usr/share/applications/firefox.desktop",
		},
		{
			name:  "builtin action",
			entry: catalogtest.NewAction("greet", catalogtest.WithDescription("Say hello"), catalogtest.AsBuiltin()),
			want:  "action:\tgreet - Say hello\n\t\taction_greet",
		},
		{
			name:  "external pipe",
			entry: catalogtest.NewPipe("shout", catalogtest.WithDescription("Shout it"), catalogtest.WithLocation("/plugins/pipe_shout.sh")),
			want:  "pipe:\t\tshout - Shout it\n\t\t/plugins/pipe_shout.sh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, FormatEntry(tt.entry)); diff != "" {
				t.Errorf("FormatEntry() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatCandidates(t *testing.T) {
	t.Parallel()

	cs := []resolve.Candidate{
		{Entry: catalogtest.NewApplication("Files", catalogtest.WithDescription("File Manager"), catalogtest.WithLocation("/a/files.desktop"))},
		{Entry: catalogtest.NewApplication("Firefox", catalogtest.WithDescription("Web Browser"), catalogtest.WithLocation("/a/firefox.desktop")), Distance: 5},
	}
	want := "[0] app:\t\tFiles - File Manager\n\t\t/a/files.desktop\n" +
		"[1] app:\t\tFirefox - Web Browser\n\t\t/a/firefox.desktop\n"

	if diff := cmp.Diff(want, FormatCandidates(cs)); diff != "" {
		t.Errorf("FormatCandidates() mismatch (-want +got):\n%s", diff)
	}
	if got := FormatCandidates(nil); got != "" {
		t.Errorf("FormatCandidates(nil) = %q, want empty", got)
	}
}
