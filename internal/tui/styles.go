// Package tui provides the interactive terminal interface for Flowerpass.
// This file defines the shared lipgloss styles used across the views to
// ensure a consistent look and feel.
package tui // import "github.com/xlsdg/flowerpass/internal/tui"

import "github.com/charmbracelet/lipgloss"

// colorPalette defines the core colors used in the TUI.
const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("81")  // A nice teal/cyan
	colorError     = lipgloss.Color("196") // A bright red
	colorSuccess   = lipgloss.Color("40")  // A nice green
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	helpStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	errorStyle = lipgloss.NewStyle().Foreground(colorError)

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)

	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	blurredStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	// The derived password gets a box so it stands out from the chrome.
	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorHighlight).
			Padding(0, 2).
			Bold(true)
)
