// Package ui provides the terminal presentation layer: theme, headless
// detection, progress display and result cards.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette holds the hex colors of a theme.
type Palette struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
	Muted     string
}

// Theme carries colors and the no-color switch shared by all components.
type Theme struct {
	NoColor bool
	Colors  Palette
}

// NewTheme returns the default theme. noColor disables all styling.
func NewTheme(noColor bool) *Theme {
	return &Theme{
		NoColor: noColor,
		Colors: Palette{
			Primary:   "#DA7756",
			Secondary: "#5B8DEF",
			Success:   "#10B981",
			Error:     "#DC2626",
			Muted:     "#9CA3AF",
		},
	}
}

// style returns a foreground style, or a plain style when colors are off.
func (t *Theme) style(color string) lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Title renders s as a heading.
func (t *Theme) Title(s string) string {
	return t.style(t.Colors.Primary).Bold(true).Render(s)
}

// Success renders s in the success color.
func (t *Theme) Success(s string) string {
	return t.style(t.Colors.Success).Render(s)
}

// Error renders s in the error color.
func (t *Theme) Error(s string) string {
	return t.style(t.Colors.Error).Bold(true).Render(s)
}

// Muted renders s de-emphasized.
func (t *Theme) Muted(s string) string {
	return t.style(t.Colors.Muted).Render(s)
}

// Card renders body inside a rounded border.
func (t *Theme) Card(body string) string {
	st := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if !t.NoColor {
		st = st.BorderForeground(lipgloss.Color(t.Colors.Primary))
	}
	return st.Render(body)
}
