package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/engine"
	"github.com/tartampluch/go-hijri/internal/hijri"
	"github.com/tartampluch/go-hijri/internal/store"
)

// occasionWidgets is the state of the occasions window.
type occasionWidgets struct {
	records  []store.Record
	selected int

	list        *widget.List
	monthSelect *widget.Select
	dayEntry    *NumericalEntry
	labelEntry  *widget.Entry
	btnAdd      *widget.Button
	btnDelete   *widget.Button
}

// ShowOccasionsWindow lists the user's own occasions and lets them add or delete entries.
func (app *GoHijriApp) ShowOccasionsWindow() {
	if app.occasionsWindow != nil {
		slog.Debug(config.MsgWindowFocus, config.LogKeyComponent, config.CompUIOcc, config.LogKeyWindow, config.WindowOccasions)
		app.occasionsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenWindow, config.LogKeyComponent, config.CompUIOcc, config.LogKeyWindow, config.WindowOccasions)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinOccasions))
	app.occasionsWindow = w

	ow := &occasionWidgets{selected: -1}
	app.occasions = ow

	ow.list = widget.NewList(
		func() int { return len(ow.records) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(ow.records) {
				return
			}
			o.(*widget.Label).SetText(app.occasionRowText(ow.records[id]))
		},
	)
	ow.list.OnSelected = func(id widget.ListItemID) {
		ow.selected = id
		ow.btnDelete.Enable()
	}
	ow.list.OnUnselected = func(widget.ListItemID) {
		ow.selected = -1
		ow.btnDelete.Disable()
	}

	ow.monthSelect = widget.NewSelect(app.monthOptions(), nil)
	ow.monthSelect.SetSelectedIndex(app.View().Month)

	ow.dayEntry = NewNumericalEntry()
	ow.dayEntry.Validator = app.validateDay

	ow.labelEntry = widget.NewEntry()
	ow.labelEntry.Validator = app.validateLabel

	ow.btnAdd = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAdd), theme.ContentAddIcon(), func() {
		if err := app.addOccasionFromForm(ow); err != nil {
			dialog.ShowError(err, w)
		}
	})
	ow.btnAdd.Importance = widget.HighImportance

	ow.btnDelete = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnDelete), theme.DeleteIcon(), func() {
		if err := app.deleteSelectedOccasion(ow); err != nil {
			dialog.ShowError(err, w)
		}
	})
	ow.btnDelete.Importance = widget.DangerImportance
	ow.btnDelete.Disable()

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblMonth), ow.monthSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblDay), ow.dayEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblLabel), ow.labelEntry),
	)
	actions := container.NewGridWithColumns(config.LayoutColumnsDouble, ow.btnDelete, ow.btnAdd)

	if app.Store == nil {
		ow.btnAdd.Disable()
		ow.monthSelect.Disable()
		ow.dayEntry.Disable()
		ow.labelEntry.Disable()
	}

	app.reloadOccasions()

	w.SetContent(container.NewPadded(container.NewBorder(nil, container.NewVBox(form, actions), nil, nil, ow.list)))
	w.Resize(fyne.NewSize(config.OccasionsWinWidth, config.OccasionsWinHeight))
	w.SetOnClosed(func() {
		app.occasionsWindow = nil
		app.occasions = nil
	})
	w.Show()
}

// reloadOccasions refreshes the list from the store.
func (app *GoHijriApp) reloadOccasions() {
	ow := app.occasions
	if ow == nil {
		return
	}

	ow.records = nil
	if app.Store != nil {
		records, err := app.Store.ListOccasions(app.Ctx)
		if err != nil {
			slog.Error(config.MsgStoreFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUIOcc)
		}
		ow.records = records
	}

	ow.selected = -1
	ow.list.UnselectAll()
	ow.btnDelete.Disable()
	ow.list.Refresh()
}

// addOccasionFromForm validates the form and stores a new occasion.
func (app *GoHijriApp) addOccasionFromForm(ow *occasionWidgets) error {
	if err := ow.dayEntry.Validate(); err != nil {
		return err
	}
	if err := ow.labelEntry.Validate(); err != nil {
		return err
	}

	month := ow.monthSelect.SelectedIndex()
	if month < 0 {
		month = app.View().Month
	}
	day, _ := ow.dayEntry.IntValue()

	if err := app.AddOccasion(month, day, ow.labelEntry.Text); err != nil {
		return err
	}

	ow.dayEntry.SetText("")
	ow.labelEntry.SetText("")
	return nil
}

func (app *GoHijriApp) deleteSelectedOccasion(ow *occasionWidgets) error {
	if ow.selected < 0 || ow.selected >= len(ow.records) {
		return nil
	}
	return app.DeleteOccasion(ow.records[ow.selected].ID)
}

// AddOccasion stores a custom occasion on a zero-based month.
func (app *GoHijriApp) AddOccasion(month, day int, label string) error {
	if app.Store == nil {
		return errors.New(config.ErrStoreUnavailable)
	}
	_, err := app.Store.AddOccasion(app.Ctx, engine.Occasion{
		Month:      month,
		Day:        day,
		Label:      label,
		StyleClass: config.StyleCustom,
	})
	if err != nil {
		app.notifyStoreError(err)
		return err
	}
	app.occasionsChanged()
	return nil
}

// DeleteOccasion removes a custom occasion by ID.
func (app *GoHijriApp) DeleteOccasion(id string) error {
	if app.Store == nil {
		return errors.New(config.ErrStoreUnavailable)
	}
	if err := app.Store.DeleteOccasion(app.Ctx, id); err != nil {
		app.notifyStoreError(err)
		return err
	}
	app.occasionsChanged()
	return nil
}

// occasionsChanged redraws every view of the occasion table.
func (app *GoHijriApp) occasionsChanged() {
	app.reloadOccasions()
	app.refreshCalendar()
	app.requestRefresh()
}

func (app *GoHijriApp) notifyStoreError(err error) {
	slog.Error(config.MsgStoreFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUIOcc)
	// Validation problems are shown next to the form, not as notifications.
	if errors.Is(err, store.ErrInvalidMonth) || errors.Is(err, store.ErrInvalidDay) ||
		errors.Is(err, store.ErrLabelRequired) || errors.Is(err, store.ErrLabelTooLong) {
		return
	}
	app.App.SendNotification(fyne.NewNotification(config.TitleStorageError, app.GetMsg(config.TKeyNotifError)))
}

func (app *GoHijriApp) occasionRowText(r store.Record) string {
	return fmt.Sprintf(config.FormatOccasionRow, r.Day, app.MonthName(r.Month), r.Label)
}

// monthOptions lists localized month names in calendar order.
func (app *GoHijriApp) monthOptions() []string {
	out := make([]string, hijri.MonthsPerYear)
	for m := range out {
		out[m] = app.MonthName(m)
	}
	return out
}

func (app *GoHijriApp) validateDay(s string) error {
	day, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || day < config.MinOccasionDay || day > config.MaxOccasionDay {
		return errors.New(app.GetMsg(config.TKeyErrDayRange))
	}
	return nil
}

func (app *GoHijriApp) validateLabel(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New(app.GetMsg(config.TKeyErrLabelReq))
	}
	return nil
}
