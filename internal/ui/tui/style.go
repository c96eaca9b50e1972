package tui

import "github.com/charmbracelet/lipgloss"

// Style holds the lipgloss styles of the session view.
type Style struct {
	Base      lipgloss.Style
	Title     lipgloss.Style
	Main      lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Blocking  lipgloss.Style
}

const (
	padding  = 2
	maxWidth = 80
)

// NewStyle returns the styles for a dark or light terminal.
func NewStyle(dark bool) Style {
	main := lipgloss.Color("#1E2127")
	secondary := lipgloss.Color("#5C6370")
	accent := lipgloss.Color("#D83A34")

	if dark {
		main = lipgloss.Color("#ECEFF4")
		secondary = lipgloss.Color("#8A8F98")
		accent = lipgloss.Color("#FF6B5E")
	}

	return Style{
		Base:      lipgloss.NewStyle().Padding(1, padding),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent).MarginRight(1),
		Main:      lipgloss.NewStyle().Bold(true).Foreground(main),
		Secondary: lipgloss.NewStyle().Foreground(secondary),
		Hint:      lipgloss.NewStyle().Foreground(secondary).Italic(true),
		Blocking:  lipgloss.NewStyle().Foreground(accent),
	}
}
