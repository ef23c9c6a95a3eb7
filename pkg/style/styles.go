// Package style holds the lipgloss styles used by the terminal renderer.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	// ManifestHeaderStyle renders the ===== path ===== banner
	ManifestHeaderStyle = lipgloss.NewStyle().
				Foreground(InfoColor).
				Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Underline(true)

	GroupStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor)

	CommandStyle = lipgloss.NewStyle().
			Foreground(InfoColor)
)
