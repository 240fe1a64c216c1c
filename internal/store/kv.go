package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/engine"
	"github.com/tartampluch/go-hijri/internal/hijri"
)

// Get returns the value stored under key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.timestamp())
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	return nil
}

// LastView returns the month the calendar displayed last, or ErrNotFound.
func (s *Store) LastView(ctx context.Context) (engine.View, error) {
	raw, err := s.Get(ctx, config.KVKeyLastView)
	if err != nil {
		return engine.View{}, err
	}

	var v engine.View
	if _, err := fmt.Sscanf(raw, config.FormatLastView, &v.Year, &v.Month); err != nil {
		return engine.View{}, fmt.Errorf("%s: %w", config.ErrLastViewFormat, err)
	}
	if v.Month < 0 || v.Month >= hijri.MonthsPerYear {
		return engine.View{}, fmt.Errorf("%s: %q", config.ErrLastViewFormat, raw)
	}
	return v, nil
}

// SaveLastView records v as the month to restore on next start.
func (s *Store) SaveLastView(ctx context.Context, v engine.View) error {
	return s.Set(ctx, config.KVKeyLastView, fmt.Sprintf(config.FormatLastView, v.Year, v.Month))
}
