package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF5555")
	ColorGreen   = lipgloss.Color("#50FA7B")
	ColorYellow  = lipgloss.Color("#F1FA8C")
	ColorBlue    = lipgloss.Color("#6272A4")
	ColorCyan    = lipgloss.Color("#8BE9FD")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#F8F8F2")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	PanelTitleActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorCyan)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	TabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	SpeakerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue)

	QuestionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	LiveBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	ScrollBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)
