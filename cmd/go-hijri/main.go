package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/engine"
	"github.com/tartampluch/go-hijri/internal/hijri"
	"github.com/tartampluch/go-hijri/internal/render"
	"github.com/tartampluch/go-hijri/internal/server"
	"github.com/tartampluch/go-hijri/internal/store"
	"github.com/tartampluch/go-hijri/internal/ui"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// printOptions selects the month printed by -print.
type printOptions struct {
	Year   int // config.FlagUnset for the current year
	Month  int // 1-12, config.FlagUnset for the current month
	DBPath string
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	printMode := flag.Bool(config.FlagPrint, false, config.FlagDescPrint)
	year := flag.Int(config.FlagYear, config.FlagUnset, config.FlagDescYear)
	month := flag.Int(config.FlagMonth, config.FlagUnset, config.FlagDescMonth)
	dbPath := flag.String(config.FlagDB, "", config.FlagDescDB)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// The terminal calendar owns stdout, so its logs go to stderr.
	console := io.Writer(os.Stdout)
	if *printMode {
		console = os.Stderr
	}
	logCloser := setupLogging(*debugMode, console)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	if *dbPath == "" {
		if p, err := defaultDBPath(); err == nil {
			*dbPath = p
		} else {
			slog.Warn(config.MsgStoreMissing, config.LogKeyComponent, config.CompMain, config.LogKeyError, err)
		}
	}

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	var err error
	if *printMode {
		err = printMonth(ctx, printOptions{Year: *year, Month: *month, DBPath: *dbPath}, os.Stdout)
	} else {
		err = run(ctx, *dbPath)
	}

	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run initializes the Fyne application, wires dependencies, and starts the UI loop.
func run(ctx context.Context, dbPath string) error {
	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	// A missing database only disables custom occasions.
	st := openStore(ctx, dbPath)
	if st != nil {
		defer func() { _ = st.Close() }()
	}

	var remote engine.HijriLookup
	if r, err := engine.NewRemoteLookup(config.AlAdhanBaseURL); err == nil {
		remote = r
	} else {
		slog.Warn(config.MsgRemoteDisabled, config.LogKeyComponent, config.CompMain, config.LogKeyError, err)
	}

	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := server.NewCalendarServer(port, nil, nil)

	// The UI binds the server's grid endpoint to its own view.
	gui := ui.NewGoHijriApp(a, ctx, srv, st, remote)

	// Lifecycle Bridge:
	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	gui.Run()

	return nil
}

// printMonth writes one month to out using the arithmetic calendar.
func printMonth(ctx context.Context, opts printOptions, out io.Writer) error {
	if opts.Month != config.FlagUnset && (opts.Month < 1 || opts.Month > hijri.MonthsPerYear) {
		return errors.New(config.ErrInvalidMonth)
	}

	lookup := engine.NewTabularLookup(config.DefaultDayAdjustment)
	clock := engine.RealClock{}

	fallback := engine.View{Year: config.DefaultViewYear, Month: config.DefaultViewMonth}
	v, _ := engine.TodayView(ctx, lookup, clock, fallback)
	if opts.Year != config.FlagUnset {
		v.Year = opts.Year
	}
	if opts.Month != config.FlagUnset {
		v.Month = opts.Month - 1
	}

	var today *hijri.Date
	if d, ok := engine.Today(ctx, lookup, clock); ok {
		today = &d
	}

	occasions := engine.DefaultOccasions()
	if st := openStore(ctx, opts.DBPath); st != nil {
		defer func() { _ = st.Close() }()
		if custom, err := st.Occasions(ctx); err == nil {
			occasions = engine.MergeOccasions(occasions, custom)
		} else {
			slog.Warn(config.MsgStoreFailed, config.LogKeyComponent, config.CompMain, config.LogKeyError, err)
		}
	}

	g := engine.NewBuilder(lookup, config.DefaultSaturdayFirst).BuildMonthGrid(ctx, v.Year, v.Month, today, occasions)
	r := render.NewMonthRenderer(lipgloss.NewRenderer(out))

	_, err := io.WriteString(out, r.Render(g))
	return err
}

// openStore opens the database at path, or returns nil when it is unusable.
func openStore(ctx context.Context, path string) *store.Store {
	if path == "" {
		slog.Info(config.MsgStoreMissing, config.LogKeyComponent, config.CompMain)
		return nil
	}
	st, err := store.Open(ctx, path)
	if err != nil {
		slog.Error(config.ErrStoreOpen,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyPath, path,
			config.LogKeyError, err)
		return nil
	}
	return st
}

// printVersion outputs the build information to stdout and exits.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
func setupLogging(debugMode bool, console io.Writer) io.Closer {
	writers := []io.Writer{console}
	var logFile *os.File

	if logPath, err := appFilePath(os.UserCacheDir, config.ErrCacheDir, config.LogFileName); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// defaultDBPath places the database in the user's config directory.
func defaultDBPath() (string, error) {
	return appFilePath(os.UserConfigDir, config.ErrConfigDir, config.DBFileName)
}

// appFilePath returns name inside the application directory under base(),
// creating the directory with restricted permissions (700).
func appFilePath(base func() (string, error), errMsg, name string) (string, error) {
	dir, err := base()
	if err != nil {
		return "", fmt.Errorf("%s: %w", errMsg, err)
	}

	appDir := filepath.Join(dir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, name), nil
}
