// Package theme centralises the Lip Gloss styles shared across the UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header       *lipgloss.Style
	RowTitle     *lipgloss.Style
	Loading      *lipgloss.Style
	Tile         *lipgloss.Style
	SelectedTile *lipgloss.Style
	TileLabel    *lipgloss.Style
	Error        *lipgloss.Style
	Info         *lipgloss.Style
	Footer       *lipgloss.Style
	SearchPrompt *lipgloss.Style
	SearchQuery  *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	RowTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Bold(true),
	),
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Tile: ptr(
		lipgloss.NewStyle().Border(lipgloss.HiddenBorder()).Foreground(lipgloss.Color("249")).Align(lipgloss.Center),
	),
	SelectedTile: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("255")).Foreground(lipgloss.Color("255")).Align(lipgloss.Center).Bold(true),
	),
	TileLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	),
	SearchPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	SearchQuery: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
}

// Default returns the default style set.
func Default() Styles {
	return defaultStyles
}

func ptr(s lipgloss.Style) *lipgloss.Style {
	return &s
}
