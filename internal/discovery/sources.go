// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
	"github.com/rapidcopper/rapidcopper/internal/plugin"
)

// scanApplications indexes desktop entries. Directories that do not exist are
// skipped without a diagnostic; most XDG data dirs have no applications.
func (b *Builder) scanApplications(ctx context.Context) ([]catalog.Entry, []Diagnostic) {
	var (
		entries []catalog.Entry
		diags   []Diagnostic
	)
	for _, dir := range b.opts.ApplicationDirs {
		if ctx.Err() != nil {
			break
		}
		files, err := afero.ReadDir(b.fs, dir)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				diags = append(diags, unavailable(dir, err))
			}
			continue
		}
		for _, fi := range files {
			if fi.IsDir() || !hasExtension(fi.Name(), b.opts.ApplicationExtensions) {
				continue
			}
			path := filepath.Join(dir, fi.Name())
			e, err := b.readDesktopEntry(path)
			if err != nil {
				diags = append(diags, skipped(CodeDesktopEntrySkipped, path, err))
				continue
			}
			entries = append(entries, e)
		}
	}
	return entries, diags
}

// readDesktopEntry extracts the first Name and Comment keys of a desktop file.
func (b *Builder) readDesktopEntry(path string) (catalog.Entry, error) {
	malformed := func(reason string, err error) (catalog.Entry, error) {
		return catalog.Entry{}, &MalformedSourceError{Path: path, Kind: catalog.KindApplication, Reason: reason, Err: err}
	}
	data, err := afero.ReadFile(b.fs, path)
	if err != nil {
		return malformed("cannot read file", err)
	}

	var name, comment string
	var haveName, haveComment bool
	sc := bufio.NewScanner(bytes.NewReader(data))
	// The file is already in memory, so no line can be too long to scan.
	sc.Buffer(nil, max(len(data)+1, bufio.MaxScanTokenSize))
	for sc.Scan() && !(haveName && haveComment) {
		key, value, ok := strings.Cut(sc.Text(), "=")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "name":
			if !haveName {
				name, haveName = strings.TrimSpace(value), true
			}
		case "comment":
			if !haveComment {
				comment, haveComment = strings.TrimSpace(value), true
			}
		}
	}
	if err := sc.Err(); err != nil {
		return malformed("cannot read file", err)
	}
	switch {
	case !haveName:
		return malformed("no Name key", nil)
	case name == "":
		return malformed("empty Name value", nil)
	}
	return catalog.Entry{Name: name, Description: comment, Location: path, Kind: catalog.KindApplication}, nil
}

// scanPlugins indexes external plugins, creating the plugin directory when it
// does not exist yet.
func (b *Builder) scanPlugins(_ context.Context) ([]catalog.Entry, []Diagnostic) {
	dir := b.opts.PluginDir
	if dir == "" {
		return nil, nil
	}
	if err := b.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, []Diagnostic{{
			Severity: SeverityWarning,
			Code:     CodePluginDirCreateFailed,
			Message:  fmt.Sprintf("cannot create plugin directory %s", dir),
			Path:     dir,
			Cause:    err,
		}}
	}
	files, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		return nil, []Diagnostic{unavailable(dir, err)}
	}

	var (
		entries []catalog.Entry
		diags   []Diagnostic
	)
	for _, fi := range files {
		if fi.IsDir() || !hasExtension(fi.Name(), b.opts.PluginExtensions) {
			continue
		}
		kind, id, ok := plugin.ParseSourceName(fi.Name())
		if !ok {
			continue
		}
		path := filepath.Join(dir, fi.Name())
		desc, err := b.readDescription(path, kind)
		if err != nil {
			diags = append(diags, skipped(CodePluginSkipped, path, err))
			continue
		}
		entries = append(entries, catalog.Entry{Name: id, Description: desc, Location: path, Kind: kind})
	}
	return entries, diags
}

func (b *Builder) readDescription(path string, kind catalog.Kind) (string, error) {
	f, err := b.fs.Open(path)
	if err != nil {
		return "", &MalformedSourceError{Path: path, Kind: kind, Reason: "cannot read file", Err: err}
	}
	defer func() { _ = f.Close() }()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return "", &MalformedSourceError{Path: path, Kind: kind, Reason: "empty file", Err: err}
	}
	desc, err := plugin.ParseDescription(strings.TrimSuffix(line, "\n"))
	if err != nil {
		return "", &MalformedSourceError{Path: path, Kind: kind, Reason: "first line is not a quoted description", Err: err}
	}
	return desc, nil
}

// scanBuiltins indexes the registered builtin modules.
func (b *Builder) scanBuiltins(_ context.Context) ([]catalog.Entry, []Diagnostic) {
	var (
		entries []catalog.Entry
		diags   []Diagnostic
	)
	for _, module := range b.opts.Registry.Modules() {
		kind, id, ok := plugin.ParseSourceName(module)
		if !ok {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeBuiltinSkipped,
				Message:  fmt.Sprintf("builtin %q does not follow the action_<id> / pipe_<id> convention", module),
				Path:     module,
			})
			continue
		}
		bi, _ := b.opts.Registry.Lookup(module)
		entries = append(entries, catalog.Entry{Name: id, Description: bi.Doc, Location: module, Kind: kind, Builtin: true})
	}
	// Actions precede pipes, matching the catalog record set order.
	slices.SortStableFunc(entries, func(x, y catalog.Entry) int { return int(x.Kind) - int(y.Kind) })
	return entries, diags
}

func hasExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	return slices.ContainsFunc(exts, func(e string) bool { return strings.EqualFold(e, ext) })
}

func unavailable(dir string, err error) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		Code:     CodeSourceUnavailable,
		Message:  fmt.Sprintf("cannot list %s", dir),
		Path:     dir,
		Cause:    err,
	}
}

func skipped(code DiagnosticCode, path string, err error) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf("skipped %s", filepath.Base(path)),
		Path:     path,
		Cause:    err,
	}
}
