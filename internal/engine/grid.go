package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/hijri"
)

// Cell is one slot of a month grid. Day is 0 for leading and trailing placeholders.
type Cell struct {
	Day      int       `json:"day,omitempty"`
	IsToday  bool      `json:"isToday,omitempty"`
	Occasion *Occasion `json:"occasion,omitempty"`
}

// Empty reports whether the cell is a placeholder.
func (c Cell) Empty() bool {
	return c.Day == 0
}

// Week is one row of a month grid.
type Week [hijri.DaysPerWeek]Cell

// MonthGrid is the laid-out view of one Hijri month.
type MonthGrid struct {
	Year               int    `json:"year"`
	Month              int    `json:"month"`
	DaysInMonth        int    `json:"daysInMonth"`
	FirstWeekdayOffset int    `json:"firstWeekdayOffset"`
	SaturdayFirst      bool   `json:"saturdayFirst"`
	Rows               []Week `json:"rows"`
}

// Cells returns the grid flattened in row-major order.
func (g MonthGrid) Cells() []Cell {
	out := make([]Cell, 0, len(g.Rows)*hijri.DaysPerWeek)
	for _, w := range g.Rows {
		out = append(out, w[:]...)
	}
	return out
}

// Builder lays out Hijri months. The zero value is usable: with no Lookup
// every month is 30 days long and nothing is checked against a real calendar.
type Builder struct {
	Lookup HijriLookup

	// SaturdayFirst moves Saturday to column 0. Sunday is column 0 by default.
	SaturdayFirst bool
}

// NewBuilder returns a Builder probing month lengths through lookup.
func NewBuilder(lookup HijriLookup, saturdayFirst bool) *Builder {
	return &Builder{Lookup: lookup, SaturdayFirst: saturdayFirst}
}

// DaysInMonth returns 29 or 30.
//
// The approximation cannot say where a month really ends, so both candidate
// last days are converted and checked with the lookup; a candidate is kept
// when the lookup places it in the same month on the same day. If neither
// is confirmed the month is taken to be 30 days long.
func (b *Builder) DaysInMonth(ctx context.Context, year, month int) int {
	days := 30
	confirmed := false

	if b.Lookup != nil {
		for _, d := range []int{29, 30} {
			g := hijri.ToGregorian(year, month, d)
			h, ok := b.Lookup.Lookup(ctx, g.Time(time.UTC))
			if ok && h.Month == month && h.Day == d {
				days = d
				confirmed = true
			}
		}
	}

	if !confirmed {
		slog.Debug(config.MsgProbeFallback,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyYear, year,
			config.LogKeyMonth, month)
	}
	return days
}

// FirstWeekdayOffset returns the grid column, 0..6, of day 1 of the month.
func (b *Builder) FirstWeekdayOffset(year, month int) int {
	wd := int(hijri.ToGregorian(year, month, 1).Weekday())
	if b.SaturdayFirst {
		return (wd + 1) % hijri.DaysPerWeek
	}
	return wd
}

// Weekdays returns the weekday shown in each grid column.
func (b *Builder) Weekdays() [hijri.DaysPerWeek]time.Weekday {
	return WeekdayOrder(b.SaturdayFirst)
}

// WeekdayOrder returns the column order of a week starting on Sunday or Saturday.
func WeekdayOrder(saturdayFirst bool) [hijri.DaysPerWeek]time.Weekday {
	var order [hijri.DaysPerWeek]time.Weekday
	first := time.Sunday
	if saturdayFirst {
		first = time.Saturday
	}
	for i := range order {
		order[i] = time.Weekday((int(first) + i) % hijri.DaysPerWeek)
	}
	return order
}

// BuildMonthGrid lays out the month as rows of seven cells.
// today may be nil when the current Hijri date is unknown; occasions are
// matched first-wins.
func (b *Builder) BuildMonthGrid(ctx context.Context, year, month int, today *hijri.Date, occasions []Occasion) MonthGrid {
	days := b.DaysInMonth(ctx, year, month)
	offset := b.FirstWeekdayOffset(year, month)

	total := offset + days
	rowCount := (total + hijri.DaysPerWeek - 1) / hijri.DaysPerWeek

	grid := MonthGrid{
		Year:               year,
		Month:              month,
		DaysInMonth:        days,
		FirstWeekdayOffset: offset,
		SaturdayFirst:      b.SaturdayFirst,
		Rows:               make([]Week, rowCount),
	}

	for n := 0; n < rowCount*hijri.DaysPerWeek; n++ {
		day := n - offset + 1
		if n < offset || day > days {
			continue
		}

		cell := Cell{Day: day}
		if today != nil && today.Day == day && today.Month == month && today.Year == year {
			cell.IsToday = true
		}
		if o, ok := MatchOccasion(occasions, month, day); ok {
			cell.Occasion = &o
		}
		grid.Rows[n/hijri.DaysPerWeek][n%hijri.DaysPerWeek] = cell
	}

	slog.Debug(config.MsgGridBuilt,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyGrid,
			slog.Int(config.LogKeyYear, year),
			slog.Int(config.LogKeyMonth, month),
			slog.Int(config.LogKeyDays, days),
			slog.Int(config.LogKeyOffset, offset),
			slog.Int(config.LogKeyRows, rowCount),
		),
	)
	return grid
}

// Resolve finds the Gregorian day that the lookup labels d.
// It starts from the approximate conversion and searches up to
// ResolveSearchDays on either side, nearest first.
func (b *Builder) Resolve(ctx context.Context, d hijri.Date) (time.Time, bool) {
	if b.Lookup == nil {
		return time.Time{}, false
	}

	approx := hijri.ToGregorian(d.Year, d.Month, d.Day).Time(time.UTC)
	for step := 0; step <= 2*config.ResolveSearchDays; step++ {
		// 0, -1, +1, -2, +2, ...
		shift := (step + 1) / 2
		if step%2 == 1 {
			shift = -shift
		}

		candidate := approx.AddDate(0, 0, shift)
		if h, ok := b.Lookup.Lookup(ctx, candidate); ok && h == d {
			return candidate, true
		}
	}

	slog.Debug(config.MsgResolveFailed,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyYear, d.Year,
		config.LogKeyMonth, d.Month,
		config.LogKeyDay, d.Day)
	return time.Time{}, false
}
