// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	CatalogUnavailableId Id = iota + 1
	CatalogEmptyId
	NoSuitableActionId
	InvalidChoiceId
	MalformedPipelineId
	PluginLoadFailedId
	PluginRunFailedId
	ConfigLoadFailedId
	LauncherNotFoundId
	PermissionDeniedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
		extLinks []HttpLink // external links that might be useful for the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue page with the glamour style at stylePath
// ("dark", "light", "notty", "auto" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range i.docLinks {
			md.WriteString("- [" + string(link) + "](" + string(link) + ")\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- [" + string(link) + "](" + string(link) + ")\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	catalogUnavailableIssue = &Issue{
		id: CatalogUnavailableId,
		mdMsg: `
# The catalog could not be opened!

rapidcopper keeps every application, action and pipe it knows about in a
catalog file next to its configuration.

## Things you can try:
- Check where the catalog lives:
~~~
$ rapidcopper config path
~~~
- Make sure its directory is writable
- Rebuild it from scratch:
~~~
$ rapidcopper rebuild
~~~`,
	}

	catalogEmptyIssue = &Issue{
		id: CatalogEmptyId,
		mdMsg: `
# The catalog is empty!

Nothing can be resolved until the catalog has been built at least once.

## Things you can try:
~~~
$ rapidcopper rebuild
~~~`,
	}

	noSuitableActionIssue = &Issue{
		id: NoSuitableActionId,
		mdMsg: `
# No suitable action found!

One of the words of your command line did not match any catalog entry.
The first word may name an application or an action; every word after a
` + "`|`" + ` must name a pipe.

## Things you can try:
- List what the catalog holds:
~~~
$ rapidcopper list
$ rapidcopper list --kind pipe
~~~
- Preview the candidates for a word without running anything:
~~~
$ rapidcopper query fire
$ rapidcopper query --pipe up
~~~
- Rebuild the catalog after installing applications or plugins:
~~~
$ rapidcopper rebuild
~~~`,
	}

	invalidChoiceIssue = &Issue{
		id: InvalidChoiceId,
		mdMsg: `
# Invalid choice!

When several entries match a word, you are asked to pick one by its number.
Numbers start at 0 and stop before the number of candidates shown.

## Things you can try:
- Type a longer word so that only one entry matches
- Use the interactive mode, which shows candidates as you type:
~~~
$ rapidcopper tui
~~~`,
	}

	malformedPipelineIssue = &Issue{
		id: MalformedPipelineId,
		mdMsg: `
# Malformed pipeline!

A command line is an application or an action, optionally followed by pipes:

~~~
greet world | upper | reverse
~~~

## Rules:
- Only the first stage takes arguments
- An application cannot be followed by pipes, it produces no value
- An empty command line does nothing`,
	}

	pluginLoadFailedIssue = &Issue{
		id: PluginLoadFailedId,
		mdMsg: `
# A plugin could not be loaded!

External plugins are shell files in the plugin directory named
` + "`action_<name>.sh`" + ` or ` + "`pipe_<name>.sh`" + `.

## A valid plugin looks like:
~~~sh
'Reverse the input'
run() {
  printf '%s' "$1" | rev
}
~~~

## Things you can try:
- Make sure the first line is a quoted description
- Make sure the file defines a ` + "`run`" + ` function
- Rebuild the catalog after renaming or deleting plugins`,
	}

	pluginRunFailedIssue = &Issue{
		id: PluginRunFailedId,
		mdMsg: `
# A plugin failed!

The action or pipe ran but reported an error.

## Things you can try:
- Run again with ` + "`--verbose`" + ` to see the plugin's standard error
- Check the input the previous stage produced:
~~~
$ rapidcopper do greet world
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the configuration!

## Things you can try:
- Show the configuration rapidcopper would use:
~~~
$ rapidcopper config show
~~~
- Write a fresh default file:
~~~
$ rapidcopper config init
~~~
- Check that backend is one of "sqlite" or "bolt" and match_policy is
  one of "substring" or "subsequence"`,
	}

	launcherNotFoundIssue = &Issue{
		id: LauncherNotFoundId,
		mdMsg: `
# The application launcher is missing!

Applications are started through ` + "`gtk-launch`" + ` unless configured otherwise.

## Things you can try:
- Install the GTK utilities of your distribution
- Point ` + "`applications.launcher`" + ` at another command in config.cue:
~~~cue
applications: launcher: ["dex"]
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

## Things you can try:
- Check the permissions of the configuration directory
- Check the permissions of the plugin directory and its files`,
	}

	issues = map[Id]*Issue{
		catalogUnavailableIssue.Id(): catalogUnavailableIssue,
		catalogEmptyIssue.Id():       catalogEmptyIssue,
		noSuitableActionIssue.Id():   noSuitableActionIssue,
		invalidChoiceIssue.Id():      invalidChoiceIssue,
		malformedPipelineIssue.Id():  malformedPipelineIssue,
		pluginLoadFailedIssue.Id():   pluginLoadFailedIssue,
		pluginRunFailedIssue.Id():    pluginRunFailedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		launcherNotFoundIssue.Id():   launcherNotFoundIssue,
		permissionDeniedIssue.Id():   permissionDeniedIssue,
	}
)

// Values returns every issue ordered by id.
func Values() []*Issue {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
