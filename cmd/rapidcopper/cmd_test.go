// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapidcopper/rapidcopper/internal/config"
	"github.com/rapidcopper/rapidcopper/internal/issue"
	"github.com/rapidcopper/rapidcopper/internal/pipeline"
	"github.com/rapidcopper/rapidcopper/internal/testutil"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// newConfigDir lays out a configuration directory with one application, one
// shell plugin and a launcher that does nothing.
func newConfigDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "config")
	apps := filepath.Join(root, "apps")

	testutil.MustWriteFiles(t, root, map[string]string{
		"apps/firefox.desktop":         "[Desktop Entry]\nName=Firefox\nComment=Web Browser\n",
		"config/plugins/pipe_shout.sh": "'Add an exclamation mark'\nrun() { printf '%s!' \"$1\"; }\n",
		"config/config.cue":            fmt.Sprintf("applications: {\n\tdirs: [%q]\n\tlauncher: [\"true\"]\n}\n", apps),
	})
	return dir
}

// runCLI executes the command tree against dir with stdin as the prompt input.
func runCLI(t *testing.T, dir, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{Stdout: &stdout, Stderr: &stderr, Stdin: strings.NewReader(stdin)})
	root := newRootCommand(app)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config-dir", dir}, args...))
	err := root.ExecuteContext(t.Context())
	return cliResult{stdout: ansi.Strip(stdout.String()), stderr: ansi.Strip(stderr.String()), err: err}
}

// rebuilt returns a configuration directory with a freshly built catalog.
func rebuilt(t *testing.T) string {
	t.Helper()
	dir := newConfigDir(t)
	res := runCLI(t, dir, "", "rebuild")
	require.NoError(t, res.err, res.stderr)
	return dir
}

func requireExitError(t *testing.T, err error) *ExitError {
	t.Helper()
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.True(t, exitErr.rendered, "command errors are rendered before returning")
	return exitErr
}

func TestRebuildCommand(t *testing.T) {
	t.Parallel()

	dir := newConfigDir(t)
	res := runCLI(t, dir, "", "rebuild")

	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Indexed")
	assert.Contains(t, res.stdout, "(1 applications,")
	assert.FileExists(t, filepath.Join(dir, config.SQLiteCatalogFile))
}

func TestDoCommand(t *testing.T) {
	t.Parallel()

	dir := rebuilt(t)
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{name: "builtin pipeline", args: []string{"greet", "world", "|", "upper"}, want: "HELLO WORLD\n"},
		{name: "quoted line", args: []string{"greet world | upper"}, want: "HELLO WORLD\n"},
		{name: "shell plugin", args: []string{"greet", "you", "|", "shout"}, want: "hello you!\n"},
		{name: "arguments prompted", args: []string{"greet"}, stdin: "there\n", want: "hello there\n"},
		{name: "application launched", args: []string{"firefox"}, want: ""},
		{name: "quoted argument keeps spaces", args: []string{"echo", "a   b"}, want: "a   b\n"},
		{name: "single line splits on whitespace", args: []string{"echo a   b"}, want: "a b\n"},
		{name: "quoted argument before pipe", args: []string{"echo", "x  y", "|", "upper"}, want: "X  Y\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := runCLI(t, dir, tt.stdin, append([]string{"do"}, tt.args...)...)
			require.NoError(t, res.err, res.stderr)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestDoCommand_NotFound(t *testing.T) {
	t.Parallel()

	dir := rebuilt(t)
	res := runCLI(t, dir, "", "do", "nothing-matches-this")

	exitErr := requireExitError(t, res.err)
	assert.ErrorIs(t, exitErr, pipeline.ErrNotFound)
	assert.Contains(t, res.stderr, "Error:")
	assert.Contains(t, res.stderr, "nothing-matches-this")
	assert.Empty(t, res.stdout)
}

func TestDoCommand_EmptyCatalog(t *testing.T) {
	t.Parallel()

	// Without a rebuild the catalog has no entries at all.
	dir := newConfigDir(t)
	res := runCLI(t, dir, "", "--verbose", "do", "greet")

	requireExitError(t, res.err)
	assert.Contains(t, res.stderr, "rebuild")
}

func TestQueryCommand(t *testing.T) {
	t.Parallel()

	dir := rebuilt(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "first stage", args: []string{"fire"}, want: "[0] app:\t\tFirefox - Web Browser\n"},
		{name: "pipe stage", args: []string{"--pipe", "shout"}, want: "[0] pipe:\t\tshout - Add an exclamation mark\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := runCLI(t, dir, "", append([]string{"query"}, tt.args...)...)
			require.NoError(t, res.err, res.stderr)
			assert.True(t, strings.HasPrefix(res.stdout, tt.want), "got %q", res.stdout)
		})
	}
}

func TestQueryCommand_WithArgsExcludesApplications(t *testing.T) {
	t.Parallel()

	dir := rebuilt(t)
	res := runCLI(t, dir, "", "query", "--with-args", "firefox")

	exitErr := requireExitError(t, res.err)
	assert.ErrorIs(t, exitErr, pipeline.ErrNotFound)
}

func TestQueryCommand_FlagsAreExclusive(t *testing.T) {
	t.Parallel()

	res := runCLI(t, newConfigDir(t), "", "query", "--pipe", "--with-args", "x")
	require.Error(t, res.err)
}

func TestListCommand(t *testing.T) {
	t.Parallel()

	dir := rebuilt(t)

	res := runCLI(t, dir, "", "list", "--kind", "pipe")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "pipe:\t\tshout - Add an exclamation mark")
	assert.Contains(t, res.stdout, "pipe:\t\tupper")
	assert.NotContains(t, res.stdout, "Firefox")
	assert.NotContains(t, res.stdout, "action:")

	res = runCLI(t, dir, "", "list")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "app:\t\tFirefox - Web Browser")
	assert.Contains(t, res.stdout, "action:\tgreet")
}

func TestListCommand_UnknownKind(t *testing.T) {
	t.Parallel()

	res := runCLI(t, newConfigDir(t), "", "list", "--kind", "widget")
	require.Error(t, res.err)
}

func TestListCommand_EmptyCatalog(t *testing.T) {
	t.Parallel()

	res := runCLI(t, newConfigDir(t), "", "list")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "rapidcopper rebuild")
}

func TestTUICommand_NeedsTerminal(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	root := newRootCommand(NewApp(Dependencies{Stdout: &stdout, Stderr: &stderr}))
	root.SetArgs([]string{"--config-dir", newConfigDir(t), "--accessible", "tui"})

	err := root.ExecuteContext(t.Context())

	exitErr := requireExitError(t, err)
	assert.ErrorIs(t, exitErr, errNoTerminal)
}

func TestConfigPathCommand(t *testing.T) {
	t.Parallel()

	dir := newConfigDir(t)
	res := runCLI(t, dir, "", "config", "path")

	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Config directory: "+dir)
	assert.Contains(t, res.stdout, "Config file: "+config.ConfigFilePath(dir))
	assert.Contains(t, res.stdout, "Catalog: "+filepath.Join(dir, config.SQLiteCatalogFile))
	assert.Contains(t, res.stdout, "Plugins directory: "+filepath.Join(dir, config.PluginDirName))
}

func TestConfigShowCommand(t *testing.T) {
	t.Parallel()

	dir := newConfigDir(t)
	res := runCLI(t, dir, "", "config", "show")

	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, config.ConfigFilePath(dir))
	assert.Contains(t, res.stdout, "match_policy: substring")
	assert.Contains(t, res.stdout, "launcher: true")
}

func TestConfigDumpCommand(t *testing.T) {
	t.Parallel()

	dir := newConfigDir(t)

	res := runCLI(t, dir, "", "config", "dump", "--format", "json")
	require.NoError(t, res.err, res.stderr)
	var got config.Config
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, []string{"true"}, got.Applications.Launcher)
	assert.Equal(t, config.MatchPolicySubstring, got.Resolver.MatchPolicy)

	res = runCLI(t, dir, "", "config", "dump")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "applications: {")

	res = runCLI(t, dir, "", "config", "dump", "--format", "yaml")
	exitErr := requireExitError(t, res.err)
	assert.ErrorIs(t, exitErr, config.ErrInvalidFormat)
}

func TestConfigInitCommand(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "fresh")

	res := runCLI(t, dir, "", "config", "init")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Created default configuration")
	assert.FileExists(t, config.ConfigFilePath(dir))
	assert.DirExists(t, filepath.Join(dir, config.PluginDirName))

	res = runCLI(t, dir, "", "config", "init")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "already exists")

	res = runCLI(t, dir, "", "config", "show")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "launcher: gtk-launch")
}

func TestConfigCommand_BrokenConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFiles(t, dir, map[string]string{"config.cue": "resolver: {match_policy: \"psychic\"}\n"})

	res := runCLI(t, dir, "", "config", "show")

	requireExitError(t, res.err)
	assert.Equal(t, issue.ConfigLoadFailedId, classifyError(res.err))
	assert.Contains(t, res.stderr, "Error:")
}

// syncBuffer is a bytes.Buffer safe for a writer and a reader goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRebuildCommand_Watch(t *testing.T) {
	t.Parallel()

	dir := newConfigDir(t)
	var stdout, stderr syncBuffer
	root := newRootCommand(NewApp(Dependencies{Stdout: &stdout, Stderr: &stderr}))
	root.SetArgs([]string{"--config-dir", dir, "rebuild", "--watch"})

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- root.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "Watching")
	}, 5*time.Second, 20*time.Millisecond, "watcher did not start: %s", stderr.String())

	testutil.MustWriteFiles(t, dir, map[string]string{
		"plugins/action_ping.sh": "'Reply with pong'\nrun() { echo pong; }\n",
	})

	require.Eventually(t, func() bool {
		return strings.Count(stdout.String(), "Indexed") >= 2
	}, 5*time.Second, 20*time.Millisecond, "catalog was not rebuilt: %s", stdout.String())

	cancel()
	require.NoError(t, <-errCh)

	res := runCLI(t, dir, "", "do", "ping")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "pong\n", res.stdout)
}
