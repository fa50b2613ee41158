// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	// ThemeDefault uses the default huh theme.
	ThemeDefault Theme = "default"
	// ThemeCharm uses the Charm theme.
	ThemeCharm Theme = "charm"
	// ThemeDracula uses the Dracula theme.
	ThemeDracula Theme = "dracula"
	// ThemeCatppuccin uses the Catppuccin theme.
	ThemeCatppuccin Theme = "catppuccin"
	// ThemeBase16 uses the Base16 theme.
	ThemeBase16 Theme = "base16"

	// accessibleEnv forces accessible prompts when set to any value.
	accessibleEnv = "ACCESSIBLE"
)

type (
	// Theme represents the visual theme for TUI components.
	Theme string

	// Config holds common configuration for TUI components.
	Config struct {
		// Theme specifies the visual theme to use.
		Theme Theme
		// Accessible enables plain line prompts for screen readers and pipes.
		Accessible bool
		// Width specifies the width of the component (0 for auto).
		Width int
		// Output specifies where to write prompts and candidate lists.
		Output io.Writer
		// Input specifies where answers are read from. Nil means stdin.
		Input io.Reader
	}
)

// DefaultConfig returns the default configuration for TUI components.
// Accessible mode is enabled when stdin is not a terminal or the ACCESSIBLE
// environment variable is set. Prompts then go to stderr so that stdout only
// carries pipeline results.
func DefaultConfig() Config {
	accessible := !isInputTerminal() || os.Getenv(accessibleEnv) != ""

	var output io.Writer = os.Stdout
	if accessible {
		output = os.Stderr
	}

	return Config{
		Theme:      ThemeDefault,
		Accessible: accessible,
		Width:      0,
		Output:     output,
	}
}

// isInputTerminal returns true if stdin is connected to a terminal.
// Returns false when running inside command substitution ($()) or pipes.
func isInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// shouldUseAccessible reports whether prompts must run in accessible mode.
// An explicit Input reader is never a terminal, so it forces accessible mode
// as well.
func shouldUseAccessible(cfg Config) bool {
	return cfg.Accessible || cfg.Input != nil || !isInputTerminal()
}

// getOutputWriter returns cfg.Output, or stderr when accessible mode is
// needed and stdout otherwise.
func getOutputWriter(cfg Config) io.Writer {
	if cfg.Output != nil {
		return cfg.Output
	}
	if shouldUseAccessible(cfg) {
		return os.Stderr
	}
	return os.Stdout
}

// getInputReader returns cfg.Input, or stdin.
func getInputReader(cfg Config) io.Reader {
	if cfg.Input != nil {
		return cfg.Input
	}
	return os.Stdin
}

// getHuhTheme converts a Theme to a huh.Theme.
func getHuhTheme(t Theme) *huh.Theme {
	switch t {
	case ThemeCharm:
		return huh.ThemeCharm()
	case ThemeDracula:
		return huh.ThemeDracula()
	case ThemeCatppuccin:
		return huh.ThemeCatppuccin()
	case ThemeBase16:
		return huh.ThemeBase16()
	default:
		return huh.ThemeBase()
	}
}

// ParseTheme returns the theme named s, or ThemeDefault for unknown names.
func ParseTheme(s string) Theme {
	switch t := Theme(s); t {
	case ThemeCharm, ThemeDracula, ThemeCatppuccin, ThemeBase16:
		return t
	default:
		return ThemeDefault
	}
}

// Styles used by the candidate list and the interactive view.
var (
	kindStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	nameStyle        = lipgloss.NewStyle().Bold(true)
	matchStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Underline(true)
	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	resultStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)
