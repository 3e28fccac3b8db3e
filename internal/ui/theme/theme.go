package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: calm study colors with a warm flame accent
var (
	Primary = lipgloss.Color("#38BDF8") // Sky Blue
	Accent  = lipgloss.Color("#FB923C") // Flame Orange
	Success = lipgloss.Color("#4ADE80") // Green
	Error   = lipgloss.Color("#FB7185") // Rose
	Text    = lipgloss.Color("#F1F5F9") // Near White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	BgCard  = lipgloss.Color("#1E293B") // Dark Slate
	Border  = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(Primary).
		Italic(true)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Flame = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)
