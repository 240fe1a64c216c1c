package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/engine"
	"github.com/tartampluch/go-hijri/internal/hijri"
	"github.com/tartampluch/go-hijri/internal/server"
	"github.com/tartampluch/go-hijri/internal/store"
)

// GoHijriApp encapsulates the UI state, preferences, and background logic.
type GoHijriApp struct {
	App         fyne.App
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server *server.CalendarServer
	Store  *store.Store       // nil disables custom occasions and view persistence
	Remote engine.HijriLookup // nil when the remote source is unavailable
	Clock  engine.Clock       // Injected clock for testability

	Tray desktop.App
	Menu *fyne.Menu

	TrayTodayItem     *fyne.MenuItem
	TrayCalendarItem  *fyne.MenuItem
	TrayOccasionsItem *fyne.MenuItem
	TrayRefreshItem   *fyne.MenuItem
	TraySettingsItem  *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	// Displayed month
	viewMu sync.RWMutex
	view   engine.View

	calendarWindow  fyne.Window
	calendar        *calendarWidgets
	settingsWindow  fyne.Window
	occasionsWindow fyne.Window
	occasions       *occasionWidgets
}

// NewGoHijriApp constructs the application and wires dependencies.
// The server's grid endpoint is bound to the app so that it serves what the window shows.
func NewGoHijriApp(a fyne.App, ctx context.Context, srv *server.CalendarServer, st *store.Store, remote engine.HijriLookup) *GoHijriApp {
	a.SetIcon(theme.CalendarIcon())

	app := &GoHijriApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Store:              st,
		Remote:             remote,
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
		view:               engine.View{Year: config.DefaultViewYear, Month: config.DefaultViewMonth},
	}

	if srv != nil {
		srv.Grid = app.GridFor
		srv.Current = app.CurrentView
	}
	return app
}

// Run launches the application services and the main UI loop.
func (app *GoHijriApp) Run() {
	app.SetupI18n()
	app.initView()
	app.watchPreferences()

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyPort, app.Server.Port,
			config.LogKeyComponent, config.CompUI)

		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayUnsupported,
			config.LogKeyComponent, config.CompUI)
	}

	go app.backgroundWorker()
	app.App.Run()
}

// watchPreferences monitors changes to settings to trigger immediate updates.
func (app *GoHijriApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		app.signal(config.PrefInterval)
	})
}

// signal performs a non-blocking send to the background worker.
func (app *GoHijriApp) signal(key string) {
	select {
	case app.configChan <- key:
	default:
	}
}

// requestRefresh schedules a feed refresh on the background worker.
func (app *GoHijriApp) requestRefresh() {
	app.signal(config.SignalRefresh)
}

// setupTrayMenu constructs the system tray menu.
func (app *GoHijriApp) setupTrayMenu() {
	// The date line opens the calendar.
	app.TrayTodayItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowCalendarWindow()
	})

	app.TrayCalendarItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuCalendar), func() {
		app.ShowCalendarWindow()
	})

	app.TrayOccasionsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuOccasions), func() {
		app.ShowOccasionsWindow()
	})

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		go app.performRefresh(true)
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayTodayItem,
		fyne.NewMenuItemSeparator(),
		app.TrayCalendarItem,
		app.TrayOccasionsItem,
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *GoHijriApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayCalendarItem.Label = app.GetMsg(config.TKeyMenuCalendar)
	app.TrayOccasionsItem.Label = app.GetMsg(config.TKeyMenuOccasions)
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// backgroundWorker manages the periodic feed refresh schedule.
// An interval of 0 disables the timer; manual refreshes still work.
func (app *GoHijriApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.performRefresh(false)

	getInterval := func() time.Duration {
		val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
		if val <= config.DisabledInterval {
			return 0
		}
		return time.Duration(val) * time.Minute
	}

	currentDuration := getInterval()
	ticker := time.NewTicker(time.Duration(config.DefaultRefreshMin) * time.Minute)
	defer ticker.Stop()
	if currentDuration > 0 {
		ticker.Reset(currentDuration)
	} else {
		ticker.Stop()
		log.Info(config.MsgRefreshDisabled)
	}

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, currentDuration)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case key := <-app.configChan:
			if key == config.SignalRefresh {
				app.performRefresh(false)
				continue
			}

			newDuration := getInterval()
			if newDuration == currentDuration {
				continue
			}
			log.Info(config.MsgUpdateInterval, config.LogKeyOld, currentDuration, config.LogKeyNew, newDuration)
			currentDuration = newDuration
			if currentDuration > 0 {
				ticker.Reset(currentDuration)
			} else {
				ticker.Stop()
			}

		case <-ticker.C:
			app.performRefresh(false)
		}
	}
}

// performRefresh regenerates the occasion feed and the tray date.
func (app *GoHijriApp) performRefresh(manual bool) {
	slog.Info(config.MsgRefreshReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	feed := &engine.Feed{
		Builder:       app.Builder(),
		Clock:         app.Clock,
		Occasions:     app.Occasions(app.Ctx),
		Reminder:      app.reminderTrigger(),
		FormatSummary: app.buildSummaryFormatter(),
	}

	data, count, err := feed.Generate(app.Ctx)
	if err != nil {
		slog.Error(config.MsgFeedFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleFeedError, app.GetMsg(config.TKeyNotifFeedErr)))
		}
	} else {
		app.Server.Update(data)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.AppName,
				app.Localize(config.TKeyNotifRefreshed, map[string]any{"Count": count})))
		}
	}

	label := app.trayLabel(app.Ctx)
	fyne.Do(func() { app.setTrayLabel(label) })
}

// trayLabel describes today's Hijri date, or says it is unknown.
func (app *GoHijriApp) trayLabel(ctx context.Context) string {
	today, ok := engine.Today(ctx, app.Lookup(), app.Clock)
	if !ok {
		return app.translated(config.TKeyTrayUnknown, config.FallbackTrayUnknown)
	}
	return app.DateText(today)
}

// setTrayLabel must run on the UI thread.
func (app *GoHijriApp) setTrayLabel(label string) {
	if app.Menu == nil || app.TrayTodayItem == nil {
		return
	}
	app.TrayTodayItem.Label = label
	app.Menu.Refresh()
}

// -----------------------------------------------------------------------------
// Calendar wiring
// -----------------------------------------------------------------------------

// Lookup returns the Hijri date source selected in the settings.
// The arithmetic calendar always backs the remote source.
func (app *GoHijriApp) Lookup() engine.HijriLookup {
	tabular := engine.NewTabularLookup(app.Preferences.IntWithFallback(config.PrefDayAdjustment, config.DefaultDayAdjustment))

	source := app.Preferences.StringWithFallback(config.PrefLookupSource, config.LookupSourceLocal)
	if source != config.LookupSourceRemote {
		return tabular
	}
	if app.Remote == nil {
		slog.Debug(config.MsgRemoteDisabled, config.LogKeyComponent, config.CompUI)
		return tabular
	}
	return engine.FallbackLookup{Primary: app.Remote, Secondary: tabular}
}

// Builder returns a grid builder for the current preferences.
func (app *GoHijriApp) Builder() *engine.Builder {
	return engine.NewBuilder(app.Lookup(),
		app.Preferences.BoolWithFallback(config.PrefSaturdayFirst, config.DefaultSaturdayFirst))
}

// Occasions returns the built-in table followed by the user's own occasions.
func (app *GoHijriApp) Occasions(ctx context.Context) []engine.Occasion {
	builtin := engine.DefaultOccasions()
	if app.Store == nil {
		return builtin
	}

	custom, err := app.Store.Occasions(ctx)
	if err != nil {
		slog.Error(config.MsgStoreFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		return builtin
	}
	return engine.MergeOccasions(builtin, custom)
}

// GridFor builds the grid of v, marking today when the lookup knows it.
func (app *GoHijriApp) GridFor(ctx context.Context, v engine.View) engine.MonthGrid {
	b := app.Builder()

	var today *hijri.Date
	if d, ok := engine.Today(ctx, b.Lookup, app.Clock); ok {
		today = &d
	}
	return b.BuildMonthGrid(ctx, v.Year, v.Month, today, app.Occasions(ctx))
}

// View returns the displayed month.
func (app *GoHijriApp) View() engine.View {
	app.viewMu.RLock()
	defer app.viewMu.RUnlock()
	return app.view
}

// CurrentView satisfies server.ViewFunc.
func (app *GoHijriApp) CurrentView(context.Context) engine.View {
	return app.View()
}

// Navigate moves the displayed month and persists it.
func (app *GoHijriApp) Navigate(action string) engine.View {
	var todayView engine.View
	if action == config.NavActionToday {
		todayView, _ = engine.TodayView(app.Ctx, app.Lookup(), app.Clock, defaultView())
	}

	app.viewMu.Lock()
	switch action {
	case config.NavActionPrev:
		app.view = app.view.Prev()
	case config.NavActionNext:
		app.view = app.view.Next()
	case config.NavActionToday:
		app.view = todayView
	}
	v := app.view
	app.viewMu.Unlock()

	slog.Debug(config.MsgNavigate,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyAction, action,
		config.LogKeyYear, v.Year,
		config.LogKeyMonth, v.Month)

	app.saveView(v)
	return v
}

// initView restores the last viewed month, or shows today's month.
func (app *GoHijriApp) initView() {
	if app.Store != nil {
		v, err := app.Store.LastView(app.Ctx)
		if err == nil {
			app.setView(v)
			slog.Info(config.MsgLastViewRestore,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyAction, config.NavActionRestore,
				config.LogKeyYear, v.Year,
				config.LogKeyMonth, v.Month)
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			slog.Warn(config.MsgStoreFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		}
	} else {
		slog.Info(config.MsgStoreMissing, config.LogKeyComponent, config.CompUI)
	}

	v, ok := engine.TodayView(app.Ctx, app.Lookup(), app.Clock, defaultView())
	if !ok {
		slog.Warn(config.MsgLookupUnknown, config.LogKeyComponent, config.CompUI)
	}
	app.setView(v)
}

func (app *GoHijriApp) setView(v engine.View) {
	app.viewMu.Lock()
	app.view = v
	app.viewMu.Unlock()
}

func (app *GoHijriApp) saveView(v engine.View) {
	if app.Store == nil {
		return
	}
	if err := app.Store.SaveLastView(app.Ctx, v); err != nil {
		slog.Error(config.MsgStoreFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
	}
}

func defaultView() engine.View {
	return engine.View{Year: config.DefaultViewYear, Month: config.DefaultViewMonth}
}

// -----------------------------------------------------------------------------
// Feed formatting
// -----------------------------------------------------------------------------

// reminderTrigger maps the reminder preferences to an ISO 8601 trigger.
func (app *GoHijriApp) reminderTrigger() string {
	if !app.Preferences.Bool(config.PrefReminderEnabled) {
		return ""
	}
	val := app.Preferences.IntWithFallback(config.PrefReminderValue, config.DefaultReminderValue)
	unit := app.Preferences.StringWithFallback(config.PrefReminderUnit, config.UnitDays)
	dir := app.Preferences.StringWithFallback(config.PrefReminderDir, config.DirBefore)

	return engine.ReminderTrigger(val, unit, dir == config.DirBefore)
}

// buildSummaryFormatter returns a closure that localizes the event summary.
func (app *GoHijriApp) buildSummaryFormatter() func(o engine.Occasion, d hijri.Date) string {
	return func(o engine.Occasion, d hijri.Date) string {
		label := app.OccasionLabel(o)
		month := app.MonthName(d.Month)

		msg := app.Localize(config.TKeyEvtSummary, map[string]any{
			"Label": label,
			"Day":   d.Day,
			"Month": month,
			"Year":  d.Year,
		})
		if msg == config.TKeyEvtSummary || msg == "" {
			return fmt.Sprintf(config.FormatSummary, label, d.Day, month, d.Year)
		}
		return msg
	}
}
