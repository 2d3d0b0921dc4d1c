package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha subset — true-color hex values
const (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#6c7086"
	colorAccent  lipgloss.Color = "#f5c2e7"
	colorFocus   lipgloss.Color = "#b4befe"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorSurface lipgloss.Color = "#313244"
	colorMantle  lipgloss.Color = "#181825"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorMantle).
			Bold(true).
			Padding(0, 1)
	headerInfoStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorMantle)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface)

	keyStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)

	linkStyle       = lipgloss.NewStyle().Foreground(colorMuted)
	nodeStyle       = lipgloss.NewStyle().Foreground(colorText)
	nodeHiddenStyle = lipgloss.NewStyle().Foreground(colorMuted)
	cursorNodeStyle = lipgloss.NewStyle().
			Foreground(colorFocus).
			Bold(true).
			Reverse(true)

	pickerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
)
