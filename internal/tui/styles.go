package tui

import "github.com/charmbracelet/lipgloss"

// Shared styles.
//
//nolint:gochecknoglobals // Styles are immutable values shared by the views.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	GutterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	SubtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	LabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)
