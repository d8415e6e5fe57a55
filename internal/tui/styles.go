package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorBorder = lipgloss.Color("#30363d")
	colorMuted  = lipgloss.Color("#484f58")
	colorText   = lipgloss.Color("#e6edf3")
	colorSubtle = lipgloss.Color("#8b949e")
	colorAccent = lipgloss.Color("#58a6ff")
	colorGreen  = lipgloss.Color("#3fb950")
	colorYellow = lipgloss.Color("#d29922")
	colorRed    = lipgloss.Color("#f85149")
	colorCyan   = lipgloss.Color("#56d7c2")
)

var (
	styleTitle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	styleSubtle = lipgloss.NewStyle().
		Foreground(colorSubtle)

	styleMuted = lipgloss.NewStyle().
		Foreground(colorMuted)

	styleTab = lipgloss.NewStyle().
		Foreground(colorSubtle).
		Padding(0, 2)

	styleTabActive = lipgloss.NewStyle().
		Foreground(colorText).
		Background(colorBorder).
		Bold(true).
		Padding(0, 2)

	styleCursor = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	styleHeaderRow = lipgloss.NewStyle().
		Foreground(colorSubtle).
		Bold(true)

	styleSelected = lipgloss.NewStyle().
		Foreground(colorGreen)

	styleVersion = lipgloss.NewStyle().
		Foreground(colorCyan)

	styleOK = lipgloss.NewStyle().
		Foreground(colorGreen).
		Bold(true)

	styleWarn = lipgloss.NewStyle().
		Foreground(colorYellow)

	styleErr = lipgloss.NewStyle().
		Foreground(colorRed).
		Bold(true)

	stylePanel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	styleOverlay = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1)

	styleField = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)
)
