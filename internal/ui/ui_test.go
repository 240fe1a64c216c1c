package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/engine"
	"github.com/tartampluch/go-hijri/internal/hijri"
	"github.com/tartampluch/go-hijri/internal/server"
	"github.com/tartampluch/go-hijri/internal/store"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// MockTray implements minimal system tray functionality for headless testing.
type MockTray struct {
	Menu *fyne.Menu
}

func (m *MockTray) SetSystemTrayMenu(menu *fyne.Menu) {
	m.Menu = menu
}

func (m *MockTray) SetSystemTrayIcon(icon fyne.Resource) {}
func (m *MockTray) SetSystemTrayWindow(w fyne.Window)    {}
func (m *MockTray) Run()                                 {}
func (m *MockTray) Quit()                                {}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

// ramadan15 is 15 Ramadan 1445 in the arithmetic calendar.
var ramadan15 = time.Date(2024, 3, 25, 10, 0, 0, 0, time.UTC)

// setupTestApp initializes a headless Fyne app backed by a temporary database.
func setupTestApp(t *testing.T) (*GoHijriApp, *MockTray) {
	a := test.NewApp()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	st, err := store.Open(ctx, filepath.Join(t.TempDir(), config.DBFileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	srv := server.NewCalendarServer("0", nil, nil)
	mockTray := &MockTray{}

	app := NewGoHijriApp(a, ctx, srv, st, nil)
	app.Tray = mockTray
	app.Clock = MockClock{CurrentTime: ramadan15}

	// Manually load I18n as Run() is skipped
	app.SetupI18n()
	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()

	return app, mockTray
}

// -----------------------------------------------------------------------------
// Localization Tests
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app, _ := setupTestApp(t)

	assert.Equal(t, "Settings...", app.GetMsg(config.TKeyMenuSettings))
	assert.Equal(t, "Ramadan", app.MonthName(8))

	app.Preferences.SetString(config.PrefLanguage, "ar")
	app.UpdateLocalizer()

	assert.Equal(t, "الإعدادات...", app.GetMsg(config.TKeyMenuSettings))
	assert.Equal(t, "رمضان", app.MonthName(8))
	assert.Equal(t, "رمضان 1445 هـ", app.HeaderText(engine.View{Year: 1445, Month: 8}))
}

func TestLocalization_Fallbacks(t *testing.T) {
	app := &GoHijriApp{}

	// No bundle loaded: keys and built-in names are returned.
	assert.Equal(t, config.TKeyMenuSettings, app.GetMsg(config.TKeyMenuSettings))
	assert.Equal(t, hijri.MonthName(11), app.MonthName(11))
	assert.Equal(t, "Sa", app.WeekdayName(time.Saturday))
	assert.Equal(t, "Ramadan 1445", app.HeaderText(engine.View{Year: 1445, Month: 8}))
	assert.Equal(t, "15 Ramadan 1445 AH", app.DateText(hijri.Date{Day: 15, Month: 8, Year: 1445}))
}

func TestLocalization_MonthNameWraps(t *testing.T) {
	app, _ := setupTestApp(t)

	assert.Equal(t, app.MonthName(0), app.MonthName(hijri.MonthsPerYear))
	assert.Equal(t, app.MonthName(11), app.MonthName(-1))
}

func TestLocalization_OccasionLabel(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefLanguage, "ar")
	app.UpdateLocalizer()

	builtin := engine.DefaultOccasions()[2]
	custom := engine.Occasion{Month: 6, Day: 27, Label: "Isra", StyleClass: config.StyleCustom}

	assert.Equal(t, "عيد الأضحى", app.OccasionLabel(builtin))
	assert.Equal(t, "Isra", app.OccasionLabel(custom), "User labels are never translated")
}

func TestLocalization_SummaryFormatter(t *testing.T) {
	app, _ := setupTestApp(t)
	formatter := app.buildSummaryFormatter()

	o := engine.DefaultOccasions()[2]
	d := hijri.Date{Day: 10, Month: 11, Year: 1445}

	assert.Equal(t, "Eid al-Adha (10 Dhu al-Hijjah 1445 AH)", formatter(o, d))

	app.Localizer = nil
	assert.Equal(t, "Eid al-Adha (10 Dhu al-Hijjah 1445 AH)", formatter(o, d), "Fallback matches the English template")
}

// -----------------------------------------------------------------------------
// Configuration & Preferences Tests
// -----------------------------------------------------------------------------

func TestConfiguration_WorkerSignal(t *testing.T) {
	app, _ := setupTestApp(t)
	app.watchPreferences()

	signalReceived := make(chan bool)
	go func() {
		select {
		case key := <-app.configChan:
			if key == config.PrefInterval {
				signalReceived <- true
			}
		case <-time.After(500 * time.Millisecond):
			signalReceived <- false
		}
	}()

	app.Preferences.SetInt(config.PrefInterval, 120)

	assert.True(t, <-signalReceived, "Changing interval should notify background worker")
}

func TestRequestRefresh_NeverBlocks(t *testing.T) {
	app, _ := setupTestApp(t)

	app.requestRefresh()
	app.requestRefresh()

	assert.Equal(t, config.SignalRefresh, <-app.configChan)
	assert.Empty(t, app.configChan)
}

func TestLookup_Source(t *testing.T) {
	app, _ := setupTestApp(t)
	remote := engine.LookupFunc(func(context.Context, time.Time) (hijri.Date, bool) {
		return hijri.Date{Day: 1, Month: 0, Year: 1500}, true
	})

	t.Run("Local with adjustment", func(t *testing.T) {
		app.Preferences.SetString(config.PrefLookupSource, config.LookupSourceLocal)
		app.Preferences.SetInt(config.PrefDayAdjustment, 1)
		assert.Equal(t, engine.TabularLookup{Adjustment: 1}, app.Lookup())
	})

	t.Run("Adjustment is clamped", func(t *testing.T) {
		app.Preferences.SetInt(config.PrefDayAdjustment, 9)
		assert.Equal(t, engine.TabularLookup{Adjustment: config.MaxDayAdjustment}, app.Lookup())
		app.Preferences.SetInt(config.PrefDayAdjustment, 0)
	})

	t.Run("Remote unavailable", func(t *testing.T) {
		app.Preferences.SetString(config.PrefLookupSource, config.LookupSourceRemote)
		assert.Equal(t, engine.TabularLookup{}, app.Lookup())
	})

	t.Run("Remote first", func(t *testing.T) {
		app.Remote = remote
		d, ok := app.Lookup().Lookup(context.Background(), ramadan15)
		require.True(t, ok)
		assert.Equal(t, 1500, d.Year)
	})
}

// -----------------------------------------------------------------------------
// Refresh Integration Tests
// -----------------------------------------------------------------------------

func TestPerformRefresh_Success(t *testing.T) {
	app, mockTray := setupTestApp(t)
	app.setupTrayMenu()

	app.performRefresh(true)

	require.NotNil(t, mockTray.Menu)
	assert.Equal(t, "15 Ramadan 1445 AH", app.TrayTodayItem.Label)

	req := httptest.NewRequest(http.MethodGet, config.RouteRoot, nil)
	w := httptest.NewRecorder()
	app.Server.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SUMMARY:Ramadan (1 Ramadan 1445 AH)")
	assert.Contains(t, w.Body.String(), "DTSTART;VALUE=DATE:20240311")
}

func TestPerformRefresh_WithReminderAndCustomOccasion(t *testing.T) {
	app, _ := setupTestApp(t)
	app.setupTrayMenu()

	require.NoError(t, app.AddOccasion(6, 27, "Isra and Miraj"))
	app.Preferences.SetBool(config.PrefReminderEnabled, true)
	app.Preferences.SetInt(config.PrefReminderValue, 2)
	app.Preferences.SetString(config.PrefReminderUnit, config.UnitHours)

	app.performRefresh(false)

	req := httptest.NewRequest(http.MethodGet, config.RouteRoot, nil)
	w := httptest.NewRecorder()
	app.Server.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Isra and Miraj (27 Rajab 1445 AH)")
	assert.Contains(t, body, "TRIGGER:-PT2H")
	assert.Contains(t, body, "CATEGORIES:"+config.StyleCustom)
}

func TestPerformRefresh_Cancelled(t *testing.T) {
	app, _ := setupTestApp(t)
	app.setupTrayMenu()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app.Ctx = ctx

	app.performRefresh(true)

	assert.Equal(t, "Hijri date unavailable", app.TrayTodayItem.Label)

	req := httptest.NewRequest(http.MethodGet, config.RouteRoot, nil)
	w := httptest.NewRecorder()
	app.Server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "Nothing is published on failure")
}

func TestRefreshTrayMenu_Relabels(t *testing.T) {
	app, _ := setupTestApp(t)
	app.setupTrayMenu()

	app.Preferences.SetString(config.PrefLanguage, "ar")
	app.UpdateLocalizer()
	app.RefreshTrayMenu()

	assert.Equal(t, "فتح التقويم", app.TrayCalendarItem.Label)
	assert.Equal(t, "تحديث التقويم", app.TrayRefreshItem.Label)
}

// -----------------------------------------------------------------------------
// Calendar State
// -----------------------------------------------------------------------------

func TestServerWiring(t *testing.T) {
	app, _ := setupTestApp(t)
	app.initView()

	require.NotNil(t, app.Server.Grid)
	require.NotNil(t, app.Server.Current)

	req := httptest.NewRequest(http.MethodGet, config.RouteGrid, nil)
	w := httptest.NewRecorder()
	app.Server.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"month":8`)
	assert.Contains(t, w.Body.String(), `"isToday":true`)
}

func TestGridFor(t *testing.T) {
	app, _ := setupTestApp(t)
	require.NoError(t, app.AddOccasion(8, 1, "Shadowed"))
	require.NoError(t, app.AddOccasion(8, 17, "Badr"))

	g := app.GridFor(context.Background(), engine.View{Year: 1445, Month: 8})

	marked := map[int]string{}
	today := 0
	for _, c := range g.Cells() {
		if c.Occasion != nil {
			marked[c.Day] = c.Occasion.Label
		}
		if c.IsToday {
			today = c.Day
		}
	}

	assert.Equal(t, 15, today)
	assert.Equal(t, map[int]string{1: config.OccasionRamadan, 17: "Badr"}, marked, "Built-in occasions win on the same day")
}

func TestGridFor_SaturdayFirst(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Preferences.SetBool(config.PrefSaturdayFirst, true)

	g := app.GridFor(context.Background(), engine.View{Year: 1445, Month: 8})

	assert.True(t, g.SaturdayFirst)
	assert.Equal(t, 3, g.FirstWeekdayOffset)
}

func TestNavigate_PersistsView(t *testing.T) {
	app, _ := setupTestApp(t)

	app.initView()
	assert.Equal(t, engine.View{Year: 1445, Month: 8}, app.View(), "First start shows today's month")

	assert.Equal(t, engine.View{Year: 1445, Month: 9}, app.Navigate(config.NavActionNext))

	saved, err := app.Store.LastView(app.Ctx)
	require.NoError(t, err)
	assert.Equal(t, engine.View{Year: 1445, Month: 9}, saved)

	// A second instance on the same database restores the month.
	other := NewGoHijriApp(test.NewApp(), app.Ctx, nil, app.Store, nil)
	other.Clock = app.Clock
	other.initView()
	assert.Equal(t, engine.View{Year: 1445, Month: 9}, other.View())

	assert.Equal(t, engine.View{Year: 1445, Month: 8}, app.Navigate(config.NavActionToday))
	assert.Equal(t, engine.View{Year: 1445, Month: 7}, app.Navigate(config.NavActionPrev))
}

func TestNavigate_TodayUnknown(t *testing.T) {
	app, _ := setupTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app.Ctx = ctx

	v := app.Navigate(config.NavActionToday)
	assert.Equal(t, engine.View{Year: config.DefaultViewYear, Month: config.DefaultViewMonth}, v)
}

func TestInitView_WithoutStore(t *testing.T) {
	a := test.NewApp()
	app := NewGoHijriApp(a, context.Background(), nil, nil, nil)
	app.Clock = MockClock{CurrentTime: ramadan15}

	app.initView()
	assert.Equal(t, engine.View{Year: 1445, Month: 8}, app.View())

	// Navigation still works without persistence.
	assert.Equal(t, engine.View{Year: 1445, Month: 9}, app.Navigate(config.NavActionNext))
	assert.Len(t, app.Occasions(context.Background()), len(engine.DefaultOccasions()))
}
