package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/hijri"
)

// HijriLookup reports the Hijri date of a Gregorian day.
//
// Implementations fail closed: when no answer can be produced (service down,
// context cancelled, malformed data) they return ok == false and never an
// error, so that a calendar can always be rendered.
type HijriLookup interface {
	Lookup(ctx context.Context, t time.Time) (hijri.Date, bool)
}

// LookupFunc adapts a plain function to HijriLookup.
type LookupFunc func(ctx context.Context, t time.Time) (hijri.Date, bool)

// Lookup calls f(ctx, t).
func (f LookupFunc) Lookup(ctx context.Context, t time.Time) (hijri.Date, bool) {
	return f(ctx, t)
}

// TabularLookup answers from the arithmetic civil calendar.
// Adjustment shifts the result by whole days to follow local moon sighting.
type TabularLookup struct {
	Adjustment int
}

// NewTabularLookup returns a TabularLookup with adjustment clamped to the supported range.
func NewTabularLookup(adjustment int) TabularLookup {
	return TabularLookup{Adjustment: ClampAdjustment(adjustment)}
}

// Lookup implements HijriLookup. It only fails when ctx is already done.
func (l TabularLookup) Lookup(ctx context.Context, t time.Time) (hijri.Date, bool) {
	if ctx.Err() != nil {
		return hijri.Date{}, false
	}
	return hijri.CivilFromTime(t, l.Adjustment), true
}

// ClampAdjustment bounds a day adjustment to [MinDayAdjustment, MaxDayAdjustment].
func ClampAdjustment(days int) int {
	return min(max(days, config.MinDayAdjustment), config.MaxDayAdjustment)
}

// FallbackLookup asks Primary first and Secondary when Primary has no answer.
type FallbackLookup struct {
	Primary   HijriLookup
	Secondary HijriLookup
}

// Lookup implements HijriLookup.
func (l FallbackLookup) Lookup(ctx context.Context, t time.Time) (hijri.Date, bool) {
	if l.Primary != nil {
		if d, ok := l.Primary.Lookup(ctx, t); ok {
			return d, true
		}
		slog.Debug(config.MsgLookupFailed,
			config.LogKeyComponent, config.CompLookup,
			config.LogKeyDate, t.Format(time.DateOnly))
	}
	if l.Secondary != nil {
		return l.Secondary.Lookup(ctx, t)
	}
	return hijri.Date{}, false
}

// Today returns the Hijri date of the clock's current day.
func Today(ctx context.Context, lookup HijriLookup, clock Clock) (hijri.Date, bool) {
	if lookup == nil || clock == nil {
		return hijri.Date{}, false
	}
	return lookup.Lookup(ctx, clock.Now())
}
