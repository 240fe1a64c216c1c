package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/engine"
	"github.com/tartampluch/go-hijri/internal/hijri"
)

// cellTexts returns the day labels of the grid, "" for placeholders.
func cellTexts(t *testing.T, cw *calendarWidgets) []string {
	t.Helper()
	var out []string
	for _, o := range cw.cells.Objects {
		switch v := o.(type) {
		case *widget.Label:
			out = append(out, v.Text)
		case *fyne.Container:
			label, ok := v.Objects[len(v.Objects)-1].(*widget.Label)
			require.True(t, ok)
			out = append(out, label.Text)
		default:
			t.Fatalf("unexpected cell object %T", o)
		}
	}
	return out
}

func highlighted(cw *calendarWidgets) int {
	n := 0
	for _, o := range cw.cells.Objects {
		if _, ok := o.(*fyne.Container); ok {
			n++
		}
	}
	return n
}

func TestCalendarWindow_Ramadan(t *testing.T) {
	app, _ := setupTestApp(t)
	app.initView()

	app.ShowCalendarWindow()
	cw := app.calendar
	require.NotNil(t, cw)

	assert.Equal(t, "Ramadan 1445 AH", cw.header.Text)

	require.Len(t, cw.weekdays.Objects, hijri.DaysPerWeek)
	assert.Equal(t, "Su", cw.weekdays.Objects[0].(*widget.Label).Text)

	texts := cellTexts(t, cw)
	require.Len(t, texts, 5*hijri.DaysPerWeek)
	assert.Equal(t, []string{"", "", "1", "2", "3", "4", "5"}, texts[:hijri.DaysPerWeek])

	// Today (15) and the first of Ramadan are highlighted.
	assert.Equal(t, 2, highlighted(cw))
	assert.Equal(t, " 1 Ramadan", cw.legend.Text)
}

func TestCalendarWindow_Navigation(t *testing.T) {
	app, _ := setupTestApp(t)
	app.initView()
	app.ShowCalendarWindow()
	cw := app.calendar

	test.Tap(cw.btnNext)
	assert.Equal(t, "Shawwal 1445 AH", cw.header.Text)
	assert.Equal(t, " 1 Eid al-Fitr", cw.legend.Text)
	assert.Equal(t, 1, highlighted(cw), "Today is in another month")

	test.Tap(cw.btnPrev)
	test.Tap(cw.btnPrev)
	assert.Equal(t, "Shaban 1445 AH", cw.header.Text)
	assert.Equal(t, "No occasions this month", cw.legend.Text)
	assert.Equal(t, 0, highlighted(cw))

	test.Tap(cw.btnToday)
	assert.Equal(t, "Ramadan 1445 AH", cw.header.Text)
	assert.Equal(t, engine.View{Year: 1445, Month: 8}, app.View())
}

func TestCalendarWindow_YearBoundary(t *testing.T) {
	app, _ := setupTestApp(t)
	app.setView(engine.View{Year: 1445, Month: 11})
	app.ShowCalendarWindow()

	test.Tap(app.calendar.btnNext)

	assert.Equal(t, "Muharram 1446 AH", app.calendar.header.Text)
	assert.Equal(t, "10 Ashura", app.calendar.legend.Text)
}

func TestCalendarWindow_SaturdayFirst(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Preferences.SetBool(config.PrefSaturdayFirst, true)
	app.initView()

	app.ShowCalendarWindow()
	cw := app.calendar

	assert.Equal(t, "Sa", cw.weekdays.Objects[0].(*widget.Label).Text)
	assert.Equal(t, "Fr", cw.weekdays.Objects[6].(*widget.Label).Text)
	assert.Equal(t, []string{"", "", "", "1", "2", "3", "4"}, cellTexts(t, cw)[:hijri.DaysPerWeek])
}

func TestCalendarWindow_Localized(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefLanguage, "ar")
	app.UpdateLocalizer()
	app.initView()

	app.ShowCalendarWindow()

	assert.Equal(t, "رمضان 1445 هـ", app.calendar.header.Text)
	assert.Equal(t, " 1 رمضان", app.calendar.legend.Text)
	assert.Equal(t, "السابق", app.calendar.btnPrev.Text)
}

func TestCalendarWindow_Singleton(t *testing.T) {
	app, _ := setupTestApp(t)

	app.ShowCalendarWindow()
	first := app.calendarWindow
	cw := app.calendar

	app.ShowCalendarWindow()
	assert.Same(t, first, app.calendarWindow)
	assert.Same(t, cw, app.calendar)
}

func TestRefreshCalendar_NoWindow(t *testing.T) {
	app, _ := setupTestApp(t)

	assert.NotPanics(t, app.refreshCalendar)
}

func TestDayCell(t *testing.T) {
	ramadan := engine.DefaultOccasions()[0]

	assert.IsType(t, &widget.Label{}, dayCell(engine.Cell{}))
	assert.IsType(t, &widget.Label{}, dayCell(engine.Cell{Day: 3}))
	assert.IsType(t, &fyne.Container{}, dayCell(engine.Cell{Day: 3, IsToday: true}))
	assert.IsType(t, &fyne.Container{}, dayCell(engine.Cell{Day: 1, Occasion: &ramadan}))

	label := dayCell(engine.Cell{}).(*widget.Label)
	assert.Equal(t, config.CellEmpty, label.Text)
}
