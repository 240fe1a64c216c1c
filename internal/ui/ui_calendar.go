package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/engine"
	"github.com/tartampluch/go-hijri/internal/hijri"
)

// calendarWidgets holds the parts of the calendar window redrawn on navigation.
type calendarWidgets struct {
	header   *widget.Label
	weekdays *fyne.Container
	cells    *fyne.Container
	legend   *widget.Label

	btnPrev  *widget.Button
	btnToday *widget.Button
	btnNext  *widget.Button
}

// ShowCalendarWindow displays the month view. Only one instance is kept open.
func (app *GoHijriApp) ShowCalendarWindow() {
	if app.calendarWindow != nil {
		slog.Debug(config.MsgWindowFocus, config.LogKeyComponent, config.CompUI, config.LogKeyWindow, config.WindowCalendar)
		app.calendarWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenWindow, config.LogKeyComponent, config.CompUI, config.LogKeyWindow, config.WindowCalendar)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.calendarWindow = w

	cw := &calendarWidgets{
		header:   widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		weekdays: container.NewGridWithColumns(hijri.DaysPerWeek),
		cells:    container.NewGridWithColumns(hijri.DaysPerWeek),
		legend:   widget.NewLabel(""),
	}
	cw.legend.Wrapping = fyne.TextWrapWord

	cw.btnPrev = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnPrev), theme.NavigateBackIcon(), func() {
		app.Navigate(config.NavActionPrev)
		app.refreshCalendar()
	})
	cw.btnToday = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnToday), theme.HomeIcon(), func() {
		app.Navigate(config.NavActionToday)
		app.refreshCalendar()
	})
	cw.btnNext = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnNext), theme.NavigateNextIcon(), func() {
		app.Navigate(config.NavActionNext)
		app.refreshCalendar()
	})
	cw.btnNext.IconPlacement = widget.ButtonIconTrailingText

	nav := container.NewGridWithColumns(config.LayoutColumnsTriple, cw.btnPrev, cw.btnToday, cw.btnNext)
	top := container.NewVBox(cw.header, nav, cw.weekdays)
	content := container.NewBorder(top, cw.legend, nil, nil, cw.cells)

	app.calendar = cw
	app.refreshCalendar()

	w.SetContent(container.NewPadded(content))
	w.Resize(fyne.NewSize(config.CalendarWinWidth, config.CalendarWinHeight))
	w.SetOnClosed(func() {
		app.calendarWindow = nil
		app.calendar = nil
	})
	w.Show()
}

// refreshCalendar rebuilds the open calendar window from the displayed month.
func (app *GoHijriApp) refreshCalendar() {
	cw := app.calendar
	if cw == nil {
		return
	}

	ctx, cancel := context.WithTimeout(app.Ctx, config.GridBuildTimeout)
	defer cancel()

	v := app.View()
	g := app.GridFor(ctx, v)

	cw.header.SetText(app.HeaderText(v))
	cw.btnPrev.SetText(app.GetMsg(config.TKeyBtnPrev))
	cw.btnToday.SetText(app.GetMsg(config.TKeyBtnToday))
	cw.btnNext.SetText(app.GetMsg(config.TKeyBtnNext))

	names := make([]fyne.CanvasObject, 0, hijri.DaysPerWeek)
	for _, wd := range engine.WeekdayOrder(g.SaturdayFirst) {
		names = append(names, widget.NewLabelWithStyle(app.WeekdayName(wd), fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))
	}
	cw.weekdays.Objects = names
	cw.weekdays.Refresh()

	cells := make([]fyne.CanvasObject, 0, len(g.Rows)*hijri.DaysPerWeek)
	for _, c := range g.Cells() {
		cells = append(cells, dayCell(c))
	}
	cw.cells.Objects = cells
	cw.cells.Refresh()

	cw.legend.SetText(app.legendText(g))

	slog.Debug(config.MsgGridRendered,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyYear, g.Year,
		config.LogKeyMonth, g.Month,
		config.LogKeyRows, len(g.Rows))
}

// dayCell draws one grid slot. Placeholders stay blank.
func dayCell(c engine.Cell) fyne.CanvasObject {
	label := widget.NewLabelWithStyle(config.CellEmpty, fyne.TextAlignCenter, fyne.TextStyle{})
	if c.Empty() {
		return label
	}

	label.SetText(fmt.Sprintf(config.FormatDay, c.Day))

	var fill *canvas.Rectangle
	switch {
	case c.IsToday:
		label.TextStyle = fyne.TextStyle{Bold: true}
		label.Importance = widget.HighImportance
		fill = canvas.NewRectangle(theme.Color(theme.ColorNameSelection))
	case c.Occasion != nil:
		label.Importance = widget.SuccessImportance
		fill = canvas.NewRectangle(theme.Color(theme.ColorNameHover))
	default:
		return label
	}
	fill.CornerRadius = theme.InputRadiusSize()
	return container.NewStack(fill, label)
}

// legendText lists the occasions visible in g.
func (app *GoHijriApp) legendText(g engine.MonthGrid) string {
	var lines []string
	for _, c := range g.Cells() {
		if c.Occasion != nil {
			lines = append(lines, fmt.Sprintf(config.FormatLegend, c.Day, app.OccasionLabel(*c.Occasion)))
		}
	}
	if len(lines) == 0 {
		return app.GetMsg(config.TKeyLblNoOccasions)
	}
	return strings.Join(lines, "\n")
}
