// Package store persists user-defined occasions and small UI state in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tartampluch/go-hijri/internal/config"

	// Pure Go SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New(config.ErrStoreNotFound)

// schema is applied statement by statement by Migrate.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS occasions (
		id          TEXT PRIMARY KEY,
		month       INTEGER NOT NULL CHECK (month BETWEEN 0 AND 11),
		day         INTEGER NOT NULL CHECK (day BETWEEN 1 AND 30),
		label       TEXT NOT NULL,
		style_class TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_occasions_month_day ON occasions(month, day)`,
	`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

// Store is the SQLite-backed persistence layer.
type Store struct {
	db   *sql.DB
	path string

	// now stamps created_at / updated_at columns.
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies the schema.
// An empty path opens a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := config.SQLiteMemoryDSN
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), config.DirPermUserRWX); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrCreateDir, err)
		}
		dsn = path + config.SQLitePragmas
	}

	db, err := sql.Open(config.SQLiteDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreOpen, err)
	}
	// SQLite allows a single writer; an in-memory database also lives and
	// dies with its only connection.
	db.SetMaxOpenConns(config.StoreMaxOpenConns)

	s := &Store{db: db, path: path, now: time.Now}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	slog.Info(config.MsgStoreOpened,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyPath, path)
	return s, nil
}

// Migrate creates missing tables. It is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", config.ErrStoreMigrate, err)
		}
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path, empty for in-memory stores.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}
