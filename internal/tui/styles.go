// Package tui implements the interactive card browser.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#8BC34A")
	muted  = lipgloss.Color("#6b7280")
	danger = lipgloss.Color("#e53935")
	gold   = lipgloss.Color("#FFC107")
)

// Styles holds the lipgloss styles used by the views
type Styles struct {
	Title    lipgloss.Style
	Greeting lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Count    lipgloss.Style
	Box      lipgloss.Style
}

// DefaultStyles returns the browser's styles
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Greeting: lipgloss.NewStyle().Bold(true).Foreground(gold).MarginBottom(1),
		Label:    lipgloss.NewStyle().Foreground(muted),
		Focused:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Selected: lipgloss.NewStyle().Reverse(true),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Error:    lipgloss.NewStyle().Foreground(danger),
		Count:    lipgloss.NewStyle().Bold(true),
		Box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
	}
}
