// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rapidcopper/rapidcopper/internal/config"
)

// newConfigCommand creates the `rapidcopper config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage rapidcopper configuration",
		Long: `Manage rapidcopper configuration.

Configuration is stored in:
  - Linux: ~/.config/rapidcopper/config.cue
  - macOS: ~/Library/Application Support/rapidcopper/config.cue
  - Windows: %APPDATA%\rapidcopper\config.cue

Every key can be overridden with a RAPIDCOPPER_<SECTION>_<KEY> environment
variable, e.g. RAPIDCOPPER_RESOLVER_MATCH_POLICY=subsequence.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration, catalog and plugin paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfigPath(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file and plugin directory",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(app)
		},
	})

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return dumpConfig(cmd.Context(), app, config.Format(format))
		},
	}
	dumpCmd.Flags().StringVar(&format, "format", string(config.FormatCUE), "output format (cue, toml, json)")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	s, err := app.load(ctx)
	if err != nil {
		return app.fail(err)
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if s.source != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), s.source)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	p := s.paths
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("catalog"))
	fmt.Fprintf(w, "  backend: %s\n", valueStyle.Render(p.CatalogBackend.String()))
	fmt.Fprintf(w, "  path: %s\n", valueStyle.Render(p.CatalogPath))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("plugins"))
	fmt.Fprintf(w, "  dir: %s\n", valueStyle.Render(p.PluginDir))
	fmt.Fprintf(w, "  extensions: %s\n", valueStyle.Render(strings.Join(p.PluginExtensions, ", ")))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("applications"))
	fmt.Fprintln(w, "  dirs:")
	if len(p.ApplicationDirs) == 0 {
		fmt.Fprintf(w, "    %s\n", SubtitleStyle.Render("(none)"))
	}
	for _, d := range p.ApplicationDirs {
		fmt.Fprintf(w, "    - %s\n", valueStyle.Render(d))
	}
	fmt.Fprintf(w, "  extensions: %s\n", valueStyle.Render(strings.Join(p.ApplicationExtensions, ", ")))
	fmt.Fprintf(w, "  launcher: %s\n", valueStyle.Render(strings.Join(p.Launcher, " ")))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("resolver"))
	fmt.Fprintf(w, "  match_policy: %s\n", valueStyle.Render(p.MatchPolicy.String()))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(s.cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", s.cfg.UI.Verbose)))
	fmt.Fprintf(w, "  accessible: %s\n", valueStyle.Render(fmt.Sprintf("%v", s.cfg.UI.Accessible)))

	return nil
}

func showConfigPath(ctx context.Context, app *App) error {
	s, err := app.load(ctx)
	if err != nil {
		return app.fail(err)
	}
	configFile := s.source
	if configFile == "" {
		configFile = config.ConfigFilePath(s.paths.ConfigDir)
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", s.paths.ConfigDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", configFile)
	fmt.Fprintf(app.stdout, "Catalog: %s\n", s.paths.CatalogPath)
	fmt.Fprintf(app.stdout, "Plugins directory: %s\n", s.paths.PluginDir)
	return nil
}

func initConfig(app *App) error {
	dir, err := app.configDir()
	if err != nil {
		return app.fail(err)
	}

	path, created, err := config.CreateDefaultConfig(dir)
	if err != nil {
		return app.fail(err)
	}
	if created {
		fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	} else {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", SubtitleStyle.Render("•"), path)
	}

	plugins := config.ResolvePaths(config.DefaultConfig(), dir).PluginDir
	if err := os.MkdirAll(plugins, 0o755); err != nil {
		return app.fail(fmt.Errorf("failed to create plugin directory: %w", err))
	}
	fmt.Fprintf(app.stdout, "%s Plugin directory at %s\n", SuccessStyle.Render("✓"), plugins)
	return nil
}

func dumpConfig(ctx context.Context, app *App, format config.Format) error {
	s, err := app.load(ctx)
	if err != nil {
		return app.fail(err)
	}
	out, err := config.Dump(s.cfg, format)
	if err != nil {
		return app.fail(err)
	}
	_, err = app.stdout.Write(out)
	return err
}
