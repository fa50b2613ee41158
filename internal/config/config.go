// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/rapidcopper/rapidcopper/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "rapidcopper"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. RAPIDCOPPER_CATALOG_BACKEND.
	EnvPrefix = "RAPIDCOPPER"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the rapidcopper configuration directory: %APPDATA% on
// Windows, ~/Library/Application Support on macOS and $XDG_CONFIG_HOME
// (defaulting to ~/.config) elsewhere.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, AppName), nil
}

// ConfigFilePath returns the config file inside dir.
func ConfigFilePath(dir string) string {
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
}

// loadWithOptions loads the configuration without touching package state. It
// returns the config and the file it was read from, or "" when only defaults
// and environment overrides apply.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'rapidcopper config show' to see the default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		dir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}
		if p := ConfigFilePath(dir); fileExists(p) {
			resolvedPath = p
		}
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides bypass the CUE schema, so the result is checked again.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check the " + EnvPrefix + "_* environment variables").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// newViper returns a viper instance seeded with DefaultConfig and bound to
// RAPIDCOPPER_* environment variables.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("catalog.backend", defaults.Catalog.Backend)
	v.SetDefault("catalog.path", defaults.Catalog.Path)
	v.SetDefault("plugins.dir", defaults.Plugins.Dir)
	v.SetDefault("plugins.extensions", defaults.Plugins.Extensions)
	v.SetDefault("applications.dirs", defaults.Applications.Dirs)
	v.SetDefault("applications.extensions", defaults.Applications.Extensions)
	v.SetDefault("applications.launcher", defaults.Applications.Launcher)
	v.SetDefault("resolver.match_policy", defaults.Resolver.MatchPolicy)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.accessible", defaults.UI.Accessible)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper validates the CUE file at path against #Config and merges
// its contents over the defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	m, err := decodeCUE(data, path)
	if err != nil {
		return err
	}
	if err := v.MergeConfigMap(m); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default config file into dir unless one is
// already there. It returns the file path and whether it was written.
func CreateDefaultConfig(dir string) (string, bool, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}
	path := ConfigFilePath(dir)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return path, true, nil
}

// GenerateCUE renders cfg as a config file. Empty paths are written as
// comments so that the computed defaults stay in effect.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// rapidcopper configuration file\n")
	sb.WriteString("// Run 'rapidcopper config show' to see the effective values.\n")

	sb.WriteString("\ncatalog: {\n")
	fmt.Fprintf(&sb, "\tbackend: %q\n", cfg.Catalog.Backend)
	writeOptionalPath(&sb, "path", cfg.Catalog.Path)
	sb.WriteString("}\n")

	sb.WriteString("\nplugins: {\n")
	writeOptionalPath(&sb, "dir", cfg.Plugins.Dir)
	fmt.Fprintf(&sb, "\textensions: %s\n", cueList(cfg.Plugins.Extensions))
	sb.WriteString("}\n")

	sb.WriteString("\napplications: {\n")
	if len(cfg.Applications.Dirs) > 0 {
		fmt.Fprintf(&sb, "\tdirs: %s\n", cueList(cfg.Applications.Dirs))
	} else {
		sb.WriteString("\t// dirs: [\"/usr/share/applications\"]\n")
	}
	fmt.Fprintf(&sb, "\textensions: %s\n", cueList(cfg.Applications.Extensions))
	fmt.Fprintf(&sb, "\tlauncher: %s\n", cueList(cfg.Applications.Launcher))
	sb.WriteString("}\n")

	sb.WriteString("\nresolver: {\n")
	fmt.Fprintf(&sb, "\tmatch_policy: %q\n", cfg.Resolver.MatchPolicy)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\taccessible: %v\n", cfg.UI.Accessible)
	sb.WriteString("}\n")

	return sb.String()
}

func writeOptionalPath(sb *strings.Builder, key, value string) {
	if value == "" {
		fmt.Fprintf(sb, "\t// %s: \"\"\n", key)
		return
	}
	fmt.Fprintf(sb, "\t%s: %q\n", key, value)
}

func cueList[S ~string](items []S) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", string(s))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
