// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func stubRender(t *testing.T) {
	t.Helper()
	original := render
	render = func(in string, _ string) (string, error) { return in, nil }
	t.Cleanup(func() { render = original })
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		contains string
	}{
		{CatalogUnavailableId, "catalog could not be opened"},
		{CatalogEmptyId, "catalog is empty"},
		{NoSuitableActionId, "No suitable action found"},
		{InvalidChoiceId, "Invalid choice"},
		{MalformedPipelineId, "Malformed pipeline"},
		{PluginLoadFailedId, "could not be loaded"},
		{PluginRunFailedId, "plugin failed"},
		{ConfigLoadFailedId, "Failed to load the configuration"},
		{LauncherNotFoundId, "launcher is missing"},
		{PermissionDeniedId, "Permission denied"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			got := Get(tt.id)
			if got == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if got.Id() != tt.id {
				t.Errorf("Id() = %d, want %d", got.Id(), tt.id)
			}
			if !strings.Contains(string(got.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}

	if Get(Id(9999)) != nil {
		t.Error("Get(9999) should return nil")
	}
}

func TestValues_OrderedById(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i, v := range values {
		if v.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, v.Id(), i+1)
		}
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	i := &Issue{id: 1, docLinks: []HttpLink{"https://a"}, extLinks: []HttpLink{"https://b"}}
	docs := i.DocLinks()
	docs[0] = "modified"
	ext := i.ExtLinks()
	ext[0] = "modified"
	if i.DocLinks()[0] != "https://a" || i.ExtLinks()[0] != "https://b" {
		t.Error("links should be returned as clones")
	}
}

func TestIssue_Render(t *testing.T) {
	stubRender(t)

	withLinks := &Issue{id: 9999, mdMsg: "# Test", docLinks: []HttpLink{"https://docs.example.com"}}
	got, err := withLinks.Render("notty")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(got, "See also") || !strings.Contains(got, "https://docs.example.com") {
		t.Errorf("Render() = %q, want a See also section", got)
	}

	noLinks := &Issue{id: 9998, mdMsg: "# Test"}
	got, err = noLinks.Render("notty")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(got, "See also") {
		t.Errorf("Render() = %q, want no See also section", got)
	}
}

func TestAllIssuesRenderWithGlamour(t *testing.T) {
	for _, i := range Values() {
		got, err := i.Render("notty")
		if err != nil {
			t.Errorf("issue %d failed to render: %v", i.Id(), err)
		}
		if strings.TrimSpace(got) == "" {
			t.Errorf("issue %d rendered to empty string", i.Id())
		}
	}
}
