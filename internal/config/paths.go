// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// SQLiteCatalogFile is the default catalog file name for the sqlite backend.
	SQLiteCatalogFile = "index.sqlite"
	// BoltCatalogFile is the default catalog file name for the bolt backend.
	BoltCatalogFile = "index.db"
	// PluginDirName is the default plugin directory name inside the config dir.
	PluginDirName = "plugins"
)

type (
	// Paths is the fully resolved configuration consumed by the launcher: every
	// default and environment lookup has already been applied.
	Paths struct {
		ConfigDir             string
		CatalogBackend        CatalogBackend
		CatalogPath           string
		PluginDir             string
		PluginExtensions      []string
		ApplicationDirs       []string
		ApplicationExtensions []string
		Launcher              []string
		MatchPolicy           MatchPolicy
	}

	// Env looks up an environment variable. os.Getenv satisfies it.
	Env func(key string) string
)

// ResolvePaths applies the computed defaults to cfg using the process
// environment and home directory.
func ResolvePaths(cfg *Config, configDir string) Paths {
	home, _ := os.UserHomeDir() // an unknown home only drops the home-relative defaults
	return resolvePaths(cfg, configDir, os.Getenv, home)
}

func resolvePaths(cfg *Config, configDir string, env Env, home string) Paths {
	p := Paths{
		ConfigDir:             configDir,
		CatalogBackend:        cfg.Catalog.Backend,
		CatalogPath:           expandHome(cfg.Catalog.Path, home),
		PluginDir:             expandHome(cfg.Plugins.Dir, home),
		PluginExtensions:      extensions(cfg.Plugins.Extensions),
		ApplicationExtensions: extensions(cfg.Applications.Extensions),
		Launcher:              append([]string(nil), cfg.Applications.Launcher...),
		MatchPolicy:           cfg.Resolver.MatchPolicy,
	}
	if p.CatalogBackend == "" {
		p.CatalogBackend = CatalogBackendSQLite
	}
	if p.CatalogPath == "" {
		name := SQLiteCatalogFile
		if p.CatalogBackend == CatalogBackendBolt {
			name = BoltCatalogFile
		}
		p.CatalogPath = filepath.Join(configDir, name)
	}
	if p.PluginDir == "" {
		p.PluginDir = filepath.Join(configDir, PluginDirName)
	}
	if len(cfg.Applications.Dirs) > 0 {
		for _, d := range cfg.Applications.Dirs {
			p.ApplicationDirs = append(p.ApplicationDirs, expandHome(d, home))
		}
	} else {
		p.ApplicationDirs = DefaultApplicationDirs(env, home)
	}
	if p.MatchPolicy == "" {
		p.MatchPolicy = MatchPolicySubstring
	}
	return p
}

// DefaultApplicationDirs returns the desktop entry directories of the XDG base
// directory layout: every $XDG_DATA_DIRS entry (default /usr/local/share and
// /usr/share), then $XDG_DATA_HOME (default ~/.local/share), then the Nix
// user profile. Duplicates are dropped, keeping the first occurrence.
func DefaultApplicationDirs(env Env, home string) []string {
	dataDirs := env("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	roots := filepath.SplitList(dataDirs)

	dataHome := env("XDG_DATA_HOME")
	if dataHome == "" && home != "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	if dataHome != "" {
		roots = append(roots, dataHome)
	}
	if home != "" {
		roots = append(roots, filepath.Join(home, ".nix-profile", "share"))
	}

	seen := make(map[string]bool, len(roots))
	dirs := make([]string, 0, len(roots))
	for _, r := range roots {
		if strings.TrimSpace(r) == "" {
			continue
		}
		d := filepath.Join(r, "applications")
		if seen[d] {
			continue
		}
		seen[d] = true
		dirs = append(dirs, d)
	}
	return dirs
}

func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(home, rest)
	}
	return path
}

func extensions(xs []Extension) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = string(x)
	}
	return out
}
