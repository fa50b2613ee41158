// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Palette for CLI output. Each color adapts to the terminal background, which
// ui.color_scheme can pin to light or dark.
var (
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#7C3AED"}
	colorMuted     = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#6B7280"}
	colorSuccess   = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#10B981"}
	colorError     = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#EF4444"}
	colorWarning   = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	colorHighlight = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#3B82F6"}
	colorVerbose   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)

var (
	// TitleStyle renders headers.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	// SubtitleStyle renders secondary text and bullets.
	SubtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	// SuccessStyle renders check marks and pipeline results.
	SuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	// ErrorStyle renders error labels.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	// WarningStyle renders discovery warnings.
	WarningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	// CmdStyle renders entry names, paths and commands.
	CmdStyle = lipgloss.NewStyle().Foreground(colorHighlight)
	// VerboseStyle renders details only shown with --verbose.
	VerboseStyle = lipgloss.NewStyle().Foreground(colorVerbose)
)
