package tui

import "github.com/charmbracelet/lipgloss"

const screenWidth = 34

var (
	primary = lipgloss.Color("#7D56F4")
	muted   = lipgloss.Color("#6C6C6C")
	danger  = lipgloss.Color("#E06C75")
)

type styles struct {
	Screen   lipgloss.Style
	Error    lipgloss.Style
	Mode     lipgloss.Style
	Key      lipgloss.Style
	Selected lipgloss.Style
	Status   lipgloss.Style
}

func newStyles() styles {
	return styles{
		Screen: lipgloss.NewStyle().
			Width(screenWidth).
			Align(lipgloss.Right).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(danger),

		Mode: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),

		Key: lipgloss.NewStyle().
			Width(7).
			Align(lipgloss.Center),

		Selected: lipgloss.NewStyle().
			Width(7).
			Align(lipgloss.Center).
			Background(primary).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true),

		Status: lipgloss.NewStyle().
			Foreground(danger).
			Italic(true),
	}
}
