package ui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the view
type Styles struct {
	Title      lipgloss.Style
	Task       lipgloss.Style
	Selected   lipgloss.Style
	Pending    lipgloss.Style
	Position   lipgloss.Style
	EmptyTitle lipgloss.Style
	EmptyHint  lipgloss.Style
	Input      lipgloss.Style
}

// DefaultStyles returns the built-in theme
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1),
		Task:       lipgloss.NewStyle().PaddingLeft(2),
		Selected:   lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(lipgloss.Color("10")),
		Pending:    lipgloss.NewStyle().PaddingLeft(2).Faint(true).Italic(true),
		Position:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		EmptyTitle: lipgloss.NewStyle().PaddingLeft(2).Bold(true),
		EmptyHint:  lipgloss.NewStyle().PaddingLeft(2).Faint(true),
		Input:      lipgloss.NewStyle().MarginTop(1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
	}
}
