package ux

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/boardchart/internal/task"
)

// Styles holds the terminal styles used by text reports.
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Key     lipgloss.Style
	Border  lipgloss.Style

	statusBars map[task.Status]lipgloss.Style
	plain      bool
}

// NewStyles returns the default palette, or unstyled output when noColor is set.
func NewStyles(noColor bool) Styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return Styles{
			Title: plain, Muted: plain, Success: plain, Error: plain,
			Warning: plain, Key: plain, Border: plain,
			plain: true,
		}
	}
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")), // Yellow
		Key: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")), // Cyan
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		statusBars: map[task.Status]lipgloss.Style{
			task.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
			task.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")),
			task.StatusBlocked:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
			task.StatusTodo:       lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		},
	}
}

// Bar styles a timeline bar in the status color used by the chart.
func (s Styles) Bar(status task.Status, text string) string {
	if s.plain {
		return text
	}
	st, ok := s.statusBars[status]
	if !ok {
		st = s.statusBars[task.StatusTodo]
	}
	return st.Render(text)
}
