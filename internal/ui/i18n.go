package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/engine"
	"github.com/tartampluch/go-hijri/internal/hijri"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n initializes the translation bundle and detects available languages.
func (app *GoHijriApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detectedLangs []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	app.SupportedLanguages = detectedLangs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator based on the user's language preference.
func (app *GoHijriApp) UpdateLocalizer() {
	if app.I18nBundle == nil {
		return
	}
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang)
}

// GetMsg is a helper to translate a key safely.
// The key itself is returned when no translation exists.
func (app *GoHijriApp) GetMsg(key string) string {
	return app.Localize(key, nil)
}

// Localize translates key with template data.
func (app *GoHijriApp) Localize(key string, data map[string]any) string {
	if app.Localizer == nil {
		return key
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// translated returns the translation of key, or fallback when it is missing.
func (app *GoHijriApp) translated(key, fallback string) string {
	if msg := app.GetMsg(key); msg != key {
		return msg
	}
	return fallback
}

// MonthName returns the localized name of a zero-based Hijri month.
func (app *GoHijriApp) MonthName(month int) string {
	m := ((month % hijri.MonthsPerYear) + hijri.MonthsPerYear) % hijri.MonthsPerYear
	return app.translated(config.TKeyMonthPrefix+strconv.Itoa(m), hijri.MonthName(m))
}

// WeekdayName returns the localized short name of wd.
func (app *GoHijriApp) WeekdayName(wd time.Weekday) string {
	return app.translated(config.TKeyWeekdayPrefix+strconv.Itoa(int(wd)), wd.String()[:config.WeekdayAbbrev])
}

// OccasionLabel localizes built-in occasions by style class. Custom labels are user text.
func (app *GoHijriApp) OccasionLabel(o engine.Occasion) string {
	if o.StyleClass == "" || o.StyleClass == config.StyleCustom {
		return o.Label
	}
	return app.translated(config.TKeyOccasionPrefix+o.StyleClass, o.Label)
}

// HeaderText formats the title of a month view.
func (app *GoHijriApp) HeaderText(v engine.View) string {
	name := app.MonthName(v.Month)
	msg := app.Localize(config.TKeyHeaderFormat, map[string]any{"Month": name, "Year": v.Year})
	if msg == config.TKeyHeaderFormat {
		return fmt.Sprintf(config.FormatHeader, name, v.Year)
	}
	return msg
}

// DateText formats a Hijri date for the tray.
func (app *GoHijriApp) DateText(d hijri.Date) string {
	name := app.MonthName(d.Month)
	msg := app.Localize(config.TKeyTrayToday, map[string]any{"Day": d.Day, "Month": name, "Year": d.Year})
	if msg == config.TKeyTrayToday {
		return fmt.Sprintf(config.FallbackTrayToday, d.Day, name, d.Year)
	}
	return msg
}
