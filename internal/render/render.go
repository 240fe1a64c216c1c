// Package render draws month grids for the terminal.
package render

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/engine"
	"github.com/tartampluch/go-hijri/internal/hijri"
)

// MonthRenderer turns an engine.MonthGrid into text.
type MonthRenderer struct {
	Styles Styles

	// Optional localizers. Defaults are English.
	MonthName   func(month int) string
	WeekdayName func(wd time.Weekday) string
}

// NewMonthRenderer returns a renderer with default styles for r.
func NewMonthRenderer(r *lipgloss.Renderer) *MonthRenderer {
	return &MonthRenderer{Styles: NewStyles(r)}
}

// Render lays out g below a title line and a weekday header, followed by a
// legend of the occasions it contains.
func (m *MonthRenderer) Render(g engine.MonthGrid) string {
	width := config.TermCellWidth * hijri.DaysPerWeek
	cell := lipgloss.NewStyle().Width(config.TermCellWidth).Align(lipgloss.Right)

	var sb strings.Builder

	title := fmt.Sprintf(config.FormatHeader, m.monthName(g.Month), g.Year)
	sb.WriteString(m.Styles.Title.Width(width).Align(lipgloss.Center).Render(title))
	sb.WriteString("\n")

	var header []string
	for _, wd := range engine.WeekdayOrder(g.SaturdayFirst) {
		header = append(header, cell.Render(m.Styles.Header.Render(m.weekdayName(wd))))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	sb.WriteString("\n")

	var legend []string
	for _, week := range g.Rows {
		var row []string
		for _, c := range week {
			row = append(row, cell.Render(m.renderCell(c)))
			if c.Occasion != nil {
				legend = append(legend, fmt.Sprintf(config.FormatLegend, c.Day, c.Occasion.Label))
			}
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		sb.WriteString("\n")
	}

	if len(legend) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.Styles.Legend.Render(strings.Join(legend, "\n")))
		sb.WriteString("\n")
	}

	slog.Debug(config.MsgGridRendered,
		config.LogKeyComponent, config.CompRender,
		config.LogKeyYear, g.Year,
		config.LogKeyMonth, g.Month)
	return sb.String()
}

func (m *MonthRenderer) renderCell(c engine.Cell) string {
	if c.Empty() {
		return config.CellEmpty
	}

	text := fmt.Sprintf(config.FormatDay, c.Day)
	switch {
	case c.IsToday:
		return m.Styles.Today.Render(text + config.TodayMarker)
	case c.Occasion != nil:
		return m.Styles.Occasion.Render(text + config.OccasionMarker)
	default:
		return m.Styles.Day.Render(text)
	}
}

func (m *MonthRenderer) monthName(month int) string {
	if m.MonthName != nil {
		return m.MonthName(month)
	}
	return hijri.MonthName(month)
}

func (m *MonthRenderer) weekdayName(wd time.Weekday) string {
	if m.WeekdayName != nil {
		return m.WeekdayName(wd)
	}
	return wd.String()[:config.WeekdayAbbrev]
}
