package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Hijri/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Hijri"
	AppID             = "com.github.tartampluch.go-hijri"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	DBFileName        = "go-hijri.db"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagPrint        = "print"
	FlagYear         = "year"
	FlagMonth        = "month"
	FlagDB           = "db"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescPrint    = "Print a month to the terminal and exit"
	FlagDescYear     = "Hijri year to print (default: current)"
	FlagDescMonth    = "Hijri month to print, 1-12 (default: current)"
	FlagDescDB       = "Path to the SQLite database (default: user config dir)"
	MsgVersionOutput = "%s version %s (%s/%s)\n"

	// FlagUnset marks -year / -month as not provided.
	FlagUnset = 0
)

// -----------------------------------------------------------------------------
// Calendar Defaults & Business Logic
// -----------------------------------------------------------------------------

const (
	// DefaultViewYear and DefaultViewMonth are shown when today's Hijri date is unknown.
	DefaultViewYear  = 1446
	DefaultViewMonth = 0

	// DefaultSaturdayFirst keeps Sunday in the first grid column.
	DefaultSaturdayFirst = false

	// Hijri day adjustment bounds (moon sighting offsets).
	MinDayAdjustment     = -2
	MaxDayAdjustment     = 2
	DefaultDayAdjustment = 0

	// ResolveSearchDays bounds the search around the approximate date when
	// pinning a Hijri day to the Gregorian calendar.
	ResolveSearchDays = 3

	// FeedYearsAround is the number of Hijri years generated on each side of the current one.
	FeedYearsAround = 1

	LookupSourceLocal  = "local"
	LookupSourceRemote = "remote"

	DefaultPort       = "18081"
	DefaultRefreshMin = 60
	DefaultLanguage   = "en"
	MinPort           = 1
	MaxPort           = 65535

	// LookupCacheSize is the number of Gregorian days memoised by the remote lookup.
	LookupCacheSize = 512

	DefaultReminderValue = 1
	DisabledInterval     = 0
)

// ISO8601 Duration Components for Reminders
const (
	ISOPeriodPrefix   = "P"
	ISONegativePrefix = "-P"
	ISOTimePrefix     = "T"
	ISODay            = "D"
	ISOHour           = "H"
	ISOMinute         = "M"
)

// -----------------------------------------------------------------------------
// Reminder Units & Directions
// -----------------------------------------------------------------------------

const (
	UnitDays    = "d"
	UnitHours   = "h"
	UnitMinutes = "m"
	DirBefore   = "before"
	DirAfter    = "after"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	CalendarWinWidth    = 560
	CalendarWinHeight   = 440
	SettingsWindowWidth = 480
	OccasionsWinWidth   = 480
	OccasionsWinHeight  = 360

	// Preference Keys
	PrefLanguage      = "language"
	PrefSaturdayFirst = "saturday_first"
	PrefDayAdjustment = "day_adjustment"
	PrefLookupSource  = "lookup_source"
	PrefServerPort    = "server_port"
	PrefInterval      = "refresh_interval_min"
	PrefLastRun       = "last_run_version"

	PrefReminderEnabled = "reminder_enabled"
	PrefReminderValue   = "reminder_value"
	PrefReminderUnit    = "reminder_unit"
	PrefReminderDir     = "reminder_direction"

	LayoutColumnsDouble = 2
	LayoutColumnsTriple = 3

	// GridBuildTimeout bounds the lookups made while drawing one month.
	GridBuildTimeout = 5 * time.Second

	// Navigation actions (logged)
	NavActionPrev    = "prev"
	NavActionNext    = "next"
	NavActionToday   = "today"
	NavActionRestore = "restore"

	FormatAdjustment = "%+d"

	// SignalRefresh asks the background worker for an immediate feed refresh.
	SignalRefresh = "refresh_now"

	// Window names (logged)
	WindowCalendar  = "calendar"
	WindowSettings  = "settings"
	WindowOccasions = "occasions"

	// FormatOccasionRow expects day, month name and label.
	FormatOccasionRow = "%d %s: %s"

	// Glyphs
	TodayMarker  = "•"
	CellEmpty    = ""
	FormatHeader = "%s %d"
	FormatDay    = "%d"

	// Terminal rendering
	OccasionMarker = "*"
	TermCellWidth  = 4
	FormatLegend   = "%2d %s"
	WeekdayAbbrev  = 2
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "ar"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinSettings    = "win_settings_title"
	TKeyWinOccasions   = "win_occasions_title"
	TKeyMenuCalendar   = "menu_calendar"
	TKeyMenuSettings   = "menu_settings"
	TKeyMenuOccasions  = "menu_occasions"
	TKeyMenuRefresh    = "menu_refresh"
	TKeyNotifRefreshed = "notif_feed_refreshed"
	TKeyNotifFeedErr   = "notif_err_feed"
	TKeyEvtSummary     = "evt_summary" // Requires Label, Day, Month, Year
	TKeyLblFooter      = "lbl_footer"
	TKeyLblNoOccasions = "lbl_no_occasions"
	TKeyHelpLanguage   = "help_language"
	TKeyHelpInterval   = "help_interval"
	TKeyHelpSource     = "help_lookup_source"
	TKeyTrayToday      = "tray_today"         // Requires Day, Month, Year
	TKeyTrayUnknown    = "tray_today_unknown" // Lookup unavailable
	TKeyHeaderFormat   = "header_format"      // Requires Month, Year
	TKeyBtnToday       = "btn_today"
	TKeyBtnPrev        = "btn_prev"
	TKeyBtnNext        = "btn_next"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyBtnAdd         = "btn_add"
	TKeyBtnDelete      = "btn_delete"
	TKeyLblLanguage    = "lbl_language"
	TKeyLblWeekStart   = "lbl_saturday_first"
	TKeyLblAdjustment  = "lbl_day_adjustment"
	TKeyHelpAdjustment = "help_day_adjustment"
	TKeyLblSource      = "lbl_lookup_source"
	TKeySourceLocal    = "source_local"
	TKeySourceRemote   = "source_remote"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblRefresh     = "lbl_refresh_interval"
	TKeyLblMinutes     = "lbl_minutes_suffix"
	TKeyLblGeneral     = "lbl_general"
	TKeyLblCalendar    = "lbl_calendar"
	TKeyLblMonth       = "lbl_month"
	TKeyLblDay         = "lbl_day"
	TKeyLblLabel       = "lbl_label"
	TKeyNotifError     = "notif_err_storage"
	TKeyLblReminders   = "lbl_reminders"
	TKeyLblEnableRem   = "lbl_enable_reminders"
	TKeyUnitDays       = "unit_days"
	TKeyUnitHours      = "unit_hours"
	TKeyUnitMinutes    = "unit_minutes"
	TKeyDirBefore      = "dir_before"
	TKeyDirAfter       = "dir_after"

	// Prefixes combined with an index or a style class.
	TKeyMonthPrefix    = "month_"
	TKeyWeekdayPrefix  = "weekday_"
	TKeyOccasionPrefix = "occasion_"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrDayRange  = "err_day_range"
	TKeyErrLabelReq  = "err_label_required"
)

// -----------------------------------------------------------------------------
// Occasions
// -----------------------------------------------------------------------------

const (
	OccasionRamadan    = "Ramadan"
	OccasionEidFitr    = "Eid al-Fitr"
	OccasionEidAdha    = "Eid al-Adha"
	OccasionAshura     = "Ashura"
	StyleRamadan       = "hijri-ramadan"
	StyleEidFitr       = "hijri-eid-fitr"
	StyleEidAdha       = "hijri-eid-adha"
	StyleAshura        = "hijri-ashura"
	StyleCustom        = "hijri-custom"
	MaxOccasionDay     = 30
	MinOccasionDay     = 1
	MaxOccasionLabel   = 64
	OccasionSortPrefix = "%02d-%02d"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Hijri//Engine//EN"
	ICalCalName = "Hijri Occasions"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gohijri"

	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropCategories = "CATEGORIES"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"

	DefaultICalRefresh = 1 * time.Hour

	// FormatUID expects year, month, day, style class and domain.
	FormatUID = "%d-%02d-%02d-%s@%s"
	// FormatSummary expects label, day, month name and year.
	FormatSummary = "%s (%d %s %d AH)"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Remote Lookup (Al Adhan)
// -----------------------------------------------------------------------------

const (
	AlAdhanBaseURL     = "https://api.aladhan.com"
	AlAdhanGToHPath    = "/v1/gToH/"
	AlAdhanDateFormat  = "02-01-2006"
	AlAdhanStatusOK    = 200
	MaxLookupBodyBytes = 64 * 1024
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout        = 10 * time.Second
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	SchemeHTTP         = "http"
	SchemeHTTPS        = "https"
	RouteRoot          = "/"
	RouteGrid          = "/grid"
	AddrSeparator      = ":"
	QueryYear          = "year"
	QueryMonth         = "month"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Storage
// -----------------------------------------------------------------------------

const (
	SQLiteDriver      = "sqlite"
	SQLiteMemoryDSN   = ":memory:"
	SQLitePragmas     = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	KVKeyLastView     = "last_view"
	FormatLastView    = "%d/%d"
	StoreMaxOpenConns = 1
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrLookupRequest    = "failed to create lookup request"
	ErrLookupNetwork    = "network error during lookup"
	ErrLookupStatus     = "lookup server returned unexpected status"
	ErrLookupDecode     = "failed to decode lookup response"
	ErrLookupPayload    = "lookup response is missing a Hijri date"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrConfigDir        = "could not determine user config dir"
	ErrCreateDir        = "could not create app directory"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayUnsupported  = "system tray not supported on this platform/driver"
	ErrStoreOpen        = "failed to open database"
	ErrStoreMigrate     = "failed to migrate database"
	ErrStoreQuery       = "database query failed"
	ErrStoreScan        = "failed to read database row"
	ErrStoreNotFound    = "record not found"
	ErrInvalidMonth     = "month must be between 1 and 12"
	ErrInvalidDay       = "day must be between 1 and 30"
	ErrLabelRequired    = "occasion label is required"
	ErrLabelTooLong     = "occasion label is too long"
	ErrInvalidQuery     = "invalid query parameter"
	ErrLastViewFormat   = "malformed last view value"
	ErrLookupCache      = "failed to create lookup cache"
	ErrStoreUnavailable = "database not available"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgBadRequest   = "Bad Request"
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackTrayLabel   = "Go Hijri"
	FallbackTrayUnknown = "Go Hijri: date unavailable"
	FallbackTrayToday   = "%d %s %d AH"

	TitleStartupError = "Startup Error"
	TitleStorageError = "Storage Error"
	TitleFeedError    = "Feed Error"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgAppStop         = "Application stopped gracefully"
	MsgAppStarting     = "Starting application"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgCacheUpdated    = "Calendar cache updated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgWorkerStart     = "Background worker started"
	MsgWorkerStop      = "Worker stopping due to context cancellation"
	MsgUpdateInterval  = "Updating refresh interval"
	MsgRefreshReq      = "Refresh requested"
	MsgFeedGenerated   = "Occasion feed generated"
	MsgFeedFailed      = "Occasion feed generation failed"
	MsgGridBuilt       = "Month grid built"
	MsgProbeFallback   = "Month length probe inconclusive, assuming 30 days"
	MsgLookupFailed    = "Hijri lookup failed"
	MsgLookupUnknown   = "Today's Hijri date is unknown, using default view"
	MsgLookupCacheHit  = "Hijri lookup served from cache"
	MsgResolveFailed   = "Could not pin Hijri day to a Gregorian date"
	MsgNavigate        = "Calendar navigation"
	MsgOpenWindow      = "Opening window"
	MsgStoreOpened     = "Database opened"
	MsgStoreFailed     = "Database operation failed"
	MsgOccasionAdded   = "Custom occasion added"
	MsgOccasionDeleted = "Custom occasion deleted"
	MsgLastViewRestore = "Restored last viewed month"
	MsgGridRendered    = "Month grid rendered"
	MsgSavingPrefs     = "Saving preferences"
	MsgWindowFocus     = "Window already open, requesting focus"
	MsgRefreshDisabled = "Auto-refresh disabled via settings"
	MsgRemDisabled     = "Reminders disabled via settings (value is empty)"
	MsgRemoteDisabled  = "Remote lookup unavailable, using built-in calendar"
	MsgStoreMissing    = "No database configured, custom occasions disabled"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyValue     = "value"
	LogKeyCount     = "count"
	LogKeyDuration  = "duration_ms"
	LogKeyYear      = "year"
	LogKeyMonth     = "month"
	LogKeyDay       = "day"
	LogKeyDays      = "days_in_month"
	LogKeyOffset    = "first_weekday"
	LogKeyRows      = "rows"
	LogKeyAction    = "action"
	LogKeyDate      = "date"
	LogKeySource    = "source"
	LogKeyPath      = "path"
	LogKeyID        = "id"
	LogKeyWindow    = "window"
	LogKeyEvents    = "events"
	LogKeyGrid      = "grid"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI     = "ui"
	CompUISet  = "ui_settings"
	CompUIOcc  = "ui_occasions"
	CompEngine = "engine"
	CompLookup = "lookup"
	CompFeed   = "feed"
	CompServer = "server"
	CompStore  = "store"
	CompRender = "render"
	CompWorker = "worker"
	CompMain   = "main"
	CompI18n   = "i18n"
)
