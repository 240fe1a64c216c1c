package engine

import (
	"context"

	"github.com/tartampluch/go-hijri/internal/hijri"
)

// View is the month currently displayed by a calendar. Month is zero based.
// Year is deliberately unbounded.
type View struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Prev returns the month before v.
func (v View) Prev() View {
	if v.Month == 0 {
		return View{Year: v.Year - 1, Month: hijri.MonthsPerYear - 1}
	}
	return View{Year: v.Year, Month: v.Month - 1}
}

// Next returns the month after v.
func (v View) Next() View {
	if v.Month == hijri.MonthsPerYear-1 {
		return View{Year: v.Year + 1, Month: 0}
	}
	return View{Year: v.Year, Month: v.Month + 1}
}

// ViewOf returns the view containing d.
func ViewOf(d hijri.Date) View {
	return View{Year: d.Year, Month: d.Month}
}

// TodayView returns the month containing today's Hijri date, or fallback when
// the lookup cannot tell. The second result reports whether today is known.
func TodayView(ctx context.Context, lookup HijriLookup, clock Clock, fallback View) (View, bool) {
	d, ok := Today(ctx, lookup, clock)
	if !ok {
		return fallback, false
	}
	return ViewOf(d), true
}
