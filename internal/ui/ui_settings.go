package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/engine"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	checkSatFirst *widget.Check
	adjustSelect  *widget.Select
	sourceSelect  *widget.Select
	entryInterval *NumericalEntry
	entryPort     *NumericalEntry
	checkReminder *widget.Check
	entryRemValue *NumericalEntry
	selectRemUnit *widget.Select
	selectRemDir  *widget.Select
}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *GoHijriApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgWindowFocus, config.LogKeyComponent, config.CompUISet, config.LogKeyWindow, config.WindowSettings)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenWindow, config.LogKeyComponent, config.CompUISet, config.LogKeyWindow, config.WindowSettings)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	calendarCard := app.buildCalendarCard(sw)

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	widInterval := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblMinutes)), sw.entryInterval)
	itemInterval := widget.NewFormItem(app.GetMsg(config.TKeyLblRefresh), widInterval)
	itemInterval.HintText = app.GetMsg(config.TKeyHelpInterval)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemInterval, itemPort))

	notifCard := app.buildNotifCard(sw, onLayoutChange)

	saveAction := func() {
		// Only the port blocks saving; other empty fields disable their feature.
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(app.Localize(config.TKeyLblFooter, map[string]any{"Version": config.Version}))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		calendarCard,
		generalCard,
		notifCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		minSize := paddedContent.MinSize()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, minSize.Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets creates every input pre-filled from the preferences.
func (app *GoHijriApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.checkSatFirst = widget.NewCheck(app.GetMsg(config.TKeyLblWeekStart), nil)
	sw.checkSatFirst.SetChecked(app.Preferences.BoolWithFallback(config.PrefSaturdayFirst, config.DefaultSaturdayFirst))

	sw.adjustSelect = widget.NewSelect(adjustmentOptions(), nil)
	sw.adjustSelect.SetSelected(formatAdjustment(app.Preferences.IntWithFallback(config.PrefDayAdjustment, config.DefaultDayAdjustment)))

	sw.sourceSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeySourceLocal),
		app.GetMsg(config.TKeySourceRemote),
	}, nil)
	if app.Preferences.StringWithFallback(config.PrefLookupSource, config.LookupSourceLocal) == config.LookupSourceRemote {
		sw.sourceSelect.SetSelected(app.GetMsg(config.TKeySourceRemote))
	} else {
		sw.sourceSelect.SetSelected(app.GetMsg(config.TKeySourceLocal))
	}

	sw.entryInterval = NewNumericalEntry()
	sw.entryInterval.SetInt(app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin))

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	sw.checkReminder = widget.NewCheck(app.GetMsg(config.TKeyLblEnableRem), nil)
	sw.checkReminder.Checked = app.Preferences.Bool(config.PrefReminderEnabled)

	sw.entryRemValue = NewNumericalEntry()
	sw.entryRemValue.SetInt(app.Preferences.IntWithFallback(config.PrefReminderValue, config.DefaultReminderValue))

	sw.selectRemUnit = widget.NewSelect([]string{
		app.GetMsg(config.TKeyUnitDays),
		app.GetMsg(config.TKeyUnitHours),
		app.GetMsg(config.TKeyUnitMinutes),
	}, nil)
	switch app.Preferences.StringWithFallback(config.PrefReminderUnit, config.UnitDays) {
	case config.UnitHours:
		sw.selectRemUnit.SetSelected(app.GetMsg(config.TKeyUnitHours))
	case config.UnitMinutes:
		sw.selectRemUnit.SetSelected(app.GetMsg(config.TKeyUnitMinutes))
	default:
		sw.selectRemUnit.SetSelected(app.GetMsg(config.TKeyUnitDays))
	}

	sw.selectRemDir = widget.NewSelect([]string{
		app.GetMsg(config.TKeyDirBefore),
		app.GetMsg(config.TKeyDirAfter),
	}, nil)
	if app.Preferences.StringWithFallback(config.PrefReminderDir, config.DirBefore) == config.DirAfter {
		sw.selectRemDir.SetSelected(app.GetMsg(config.TKeyDirAfter))
	} else {
		sw.selectRemDir.SetSelected(app.GetMsg(config.TKeyDirBefore))
	}

	return sw
}

// validatePort accepts 1..65535.
func (app *GoHijriApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// buildCalendarCard groups the settings that change how days are computed and laid out.
func (app *GoHijriApp) buildCalendarCard(sw *settingsWidgets) *widget.Card {
	itemAdjust := widget.NewFormItem(app.GetMsg(config.TKeyLblAdjustment), sw.adjustSelect)
	itemAdjust.HintText = app.GetMsg(config.TKeyHelpAdjustment)

	itemSource := widget.NewFormItem(app.GetMsg(config.TKeyLblSource), sw.sourceSelect)
	itemSource.HintText = app.GetMsg(config.TKeyHelpSource)

	form := widget.NewForm(itemAdjust, itemSource)
	return widget.NewCard(app.GetMsg(config.TKeyLblCalendar), "", container.NewVBox(sw.checkSatFirst, form))
}

// buildNotifCard constructs the reminder UI.
func (app *GoHijriApp) buildNotifCard(sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	controls := container.NewHBox(sw.selectRemUnit, sw.selectRemDir)
	row := container.NewBorder(nil, nil, nil, controls, sw.entryRemValue)

	sw.checkReminder.OnChanged = func(b bool) {
		if b {
			row.Show()
		} else {
			row.Hide()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	if sw.checkReminder.Checked {
		row.Show()
	} else {
		row.Hide()
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblReminders), "", container.NewVBox(sw.checkReminder, row))
}

// saveSettings persists the form and refreshes everything that depends on it.
func (app *GoHijriApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSavingPrefs, config.LogKeyComponent, config.CompUISet)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetBool(config.PrefSaturdayFirst, sw.checkSatFirst.Checked)
	app.Preferences.SetInt(config.PrefDayAdjustment, parseAdjustment(sw.adjustSelect.Selected))

	source := config.LookupSourceLocal
	if sw.sourceSelect.Selected == app.GetMsg(config.TKeySourceRemote) {
		source = config.LookupSourceRemote
	}
	app.Preferences.SetString(config.PrefLookupSource, source)

	// Empty or 0 disables the automatic refresh.
	interval := sw.entryInterval.IntOr(config.DisabledInterval)
	if interval <= config.DisabledInterval {
		interval = config.DisabledInterval
		slog.Info(config.MsgRefreshDisabled, config.LogKeyComponent, config.CompUISet)
	}
	app.Preferences.SetInt(config.PrefInterval, interval)

	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	// An empty value forces reminders off even when the box is checked.
	if v, err := sw.entryRemValue.IntValue(); err != nil {
		app.Preferences.SetBool(config.PrefReminderEnabled, false)
		slog.Info(config.MsgRemDisabled, config.LogKeyComponent, config.CompUISet)
	} else {
		app.Preferences.SetBool(config.PrefReminderEnabled, sw.checkReminder.Checked)
		app.Preferences.SetInt(config.PrefReminderValue, v)
	}

	unit := config.UnitDays
	switch sw.selectRemUnit.Selected {
	case app.GetMsg(config.TKeyUnitHours):
		unit = config.UnitHours
	case app.GetMsg(config.TKeyUnitMinutes):
		unit = config.UnitMinutes
	}
	app.Preferences.SetString(config.PrefReminderUnit, unit)

	dir := config.DirBefore
	if sw.selectRemDir.Selected == app.GetMsg(config.TKeyDirAfter) {
		dir = config.DirAfter
	}
	app.Preferences.SetString(config.PrefReminderDir, dir)

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	app.refreshCalendar()
	app.requestRefresh()
}

// adjustmentOptions lists the supported day adjustments with an explicit sign.
func adjustmentOptions() []string {
	var out []string
	for d := config.MinDayAdjustment; d <= config.MaxDayAdjustment; d++ {
		out = append(out, formatAdjustment(d))
	}
	return out
}

func formatAdjustment(days int) string {
	return fmt.Sprintf(config.FormatAdjustment, engine.ClampAdjustment(days))
}

// parseAdjustment reads an option back. Anything unreadable is no adjustment.
func parseAdjustment(s string) int {
	d, err := strconv.Atoi(s)
	if err != nil {
		return config.DefaultDayAdjustment
	}
	return engine.ClampAdjustment(d)
}
