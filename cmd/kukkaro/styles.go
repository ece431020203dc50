package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings such as an exceeded budget.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors and expenses.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent text.
	SubtleColor = lipgloss.Color("#666666")

	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Bold(true).Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 2)
)

// progressBar renders percentage (0-100) as a bar of width cells.
func progressBar(percentage float64, width int, over bool) string {
	filled := int(percentage / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	color := SuccessColor
	if over {
		color = ErrorColor
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	return bar + SubtleStyle.Render(strings.Repeat("░", width-filled))
}

// swatch renders a small block in a category color.
func swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}
