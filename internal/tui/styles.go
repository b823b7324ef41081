package tui

import "github.com/charmbracelet/lipgloss"

var (
	// deep sky blue solution title, royal blue action labels, red errors
	SolutionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00BFFF"))

	HighlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4169E1"))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	KeyDisabled = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#333344")).
			Strikethrough(true)

	Cursor = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ff88"))
)
