package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorInfo    = lipgloss.Color("#2196F3")
	colorSuccess = lipgloss.Color("#8BC34A")
	colorDanger  = lipgloss.Color("#e53935")
	colorWarning = lipgloss.Color("#FFC107")
	colorMuted   = lipgloss.Color("#8a8f98")
	colorBorder  = lipgloss.Color("#2a3850")
)

// Styles holds the lipgloss styles used by the study view
type Styles struct {
	Counts  lipgloss.Style
	Card    lipgloss.Style
	Mode    lipgloss.Style
	Known   lipgloss.Style
	Unknown lipgloss.Style
	Help    lipgloss.Style
	Notice  lipgloss.Style
	Done    lipgloss.Style
}

// DefaultStyles returns the standard palette
func DefaultStyles() Styles {
	return Styles{
		Counts: lipgloss.NewStyle().Foreground(colorInfo).Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 4).
			MarginTop(1).
			MarginBottom(1),
		Mode:    lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		Known:   lipgloss.NewStyle().Foreground(colorSuccess),
		Unknown: lipgloss.NewStyle().Foreground(colorDanger),
		Help:    lipgloss.NewStyle().Foreground(colorMuted),
		Notice:  lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		Done:    lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
	}
}
