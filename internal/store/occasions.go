package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/engine"
	"github.com/tartampluch/go-hijri/internal/hijri"
)

// Validation errors returned by AddOccasion, possibly joined.
var (
	ErrInvalidMonth  = errors.New(config.ErrInvalidMonth)
	ErrInvalidDay    = errors.New(config.ErrInvalidDay)
	ErrLabelRequired = errors.New(config.ErrLabelRequired)
	ErrLabelTooLong  = errors.New(config.ErrLabelTooLong)
)

// Record is a stored user occasion.
type Record struct {
	ID string `json:"id"`
	engine.Occasion
	CreatedAt time.Time `json:"createdAt"`
}

// ValidateOccasion checks o and reports every problem found.
func ValidateOccasion(o engine.Occasion) error {
	var errs []error
	if o.Month < 0 || o.Month >= hijri.MonthsPerYear {
		errs = append(errs, ErrInvalidMonth)
	}
	if o.Day < config.MinOccasionDay || o.Day > config.MaxOccasionDay {
		errs = append(errs, ErrInvalidDay)
	}

	label := strings.TrimSpace(o.Label)
	switch {
	case label == "":
		errs = append(errs, ErrLabelRequired)
	case utf8.RuneCountInString(label) > config.MaxOccasionLabel:
		errs = append(errs, ErrLabelTooLong)
	}
	return errors.Join(errs...)
}

// AddOccasion validates and stores o under a fresh ID.
// An empty StyleClass is stored as config.StyleCustom.
func (s *Store) AddOccasion(ctx context.Context, o engine.Occasion) (Record, error) {
	if err := ValidateOccasion(o); err != nil {
		return Record{}, err
	}

	o.Label = strings.TrimSpace(o.Label)
	if o.StyleClass == "" {
		o.StyleClass = config.StyleCustom
	}

	rec := Record{ID: uuid.NewString(), Occasion: o}
	stamp := s.timestamp()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO occasions (id, month, day, label, style_class, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, o.Month, o.Day, o.Label, o.StyleClass, stamp)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, stamp)

	slog.Info(config.MsgOccasionAdded,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyID, rec.ID,
		config.LogKeyMonth, o.Month,
		config.LogKeyDay, o.Day)
	return rec, nil
}

// ListOccasions returns every stored occasion ordered by month, day and creation.
func (s *Store) ListOccasions(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, month, day, label, style_class, created_at FROM occasions ORDER BY month, day, created_at`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var (
			rec     Record
			created string
		)
		if err := rows.Scan(&rec.ID, &rec.Month, &rec.Day, &rec.Label, &rec.StyleClass, &created); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrStoreScan, err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	return out, nil
}

// Occasions returns the stored occasions in the engine's table format.
func (s *Store) Occasions(ctx context.Context) ([]engine.Occasion, error) {
	recs, err := s.ListOccasions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]engine.Occasion, len(recs))
	for i, r := range recs {
		out[i] = r.Occasion
	}
	return out, nil
}

// DeleteOccasion removes the occasion with the given ID.
func (s *Store) DeleteOccasion(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM occasions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	slog.Info(config.MsgOccasionDeleted,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyID, id)
	return nil
}
