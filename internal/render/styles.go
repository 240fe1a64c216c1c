package render

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	colorTitle    = lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#8BC34A"}
	colorMuted    = lipgloss.AdaptiveColor{Light: "#8a94a3", Dark: "#5c6b82"}
	colorToday    = lipgloss.Color("#2196F3")
	colorOccasion = lipgloss.Color("#FFC107")
)

// Styles groups the lipgloss styles of a terminal month view.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Day      lipgloss.Style
	Today    lipgloss.Style
	Occasion lipgloss.Style
	Legend   lipgloss.Style
}

// NewStyles builds the default styles for r. Colors are dropped
// automatically when r does not write to a color terminal.
func NewStyles(r *lipgloss.Renderer) Styles {
	base := r.NewStyle()
	return Styles{
		Title:    base.Bold(true).Foreground(colorTitle),
		Header:   base.Foreground(colorMuted),
		Day:      base,
		Today:    base.Bold(true).Foreground(colorToday),
		Occasion: base.Foreground(colorOccasion),
		Legend:   base.Foreground(colorMuted),
	}
}
