// Package hijri holds the calendar arithmetic behind the Hijri month view:
// the fixed-epoch approximation used to place a Hijri day on the Gregorian
// calendar, the Julian Day conversions it relies on, and the arithmetic
// (civil) Islamic calendar used as the default date lookup.
//
// Everything in this package is pure and allocation free.
package hijri

import (
	"math"
	"time"
)

const (
	// EpochJulianDay is the Julian Day of 1 Muharram, year 1 AH.
	EpochJulianDay = 1948439.5

	// MeanYearDays and MeanMonthDays drive the approximation used by ToGregorian.
	// They must not be tuned: grid alignment depends on these exact values.
	MeanYearDays  = 354.367
	MeanMonthDays = 29.5

	// GregorianReformDay is the first Julian Day number counted on the
	// Gregorian calendar (15 October 1582). Earlier days are Julian calendar dates.
	GregorianReformDay = 2299161

	// UnixEpochJulianDay is the Julian Day of 1970-01-01T00:00:00Z.
	UnixEpochJulianDay = 2440587.5

	MonthsPerYear = 12
	DaysPerWeek   = 7
	secondsPerDay = 86400
)

// Date is a Hijri calendar date. Month is zero based (0 = Muharram).
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// GregorianDate is a calendar date produced by the Julian Day conversion.
type GregorianDate struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// Time returns midnight of the date in loc, read as a proleptic Gregorian date.
func (g GregorianDate) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(g.Year, g.Month, g.Day, 0, 0, 0, 0, loc)
}

// Weekday returns the day of the week of the date.
func (g GregorianDate) Weekday() time.Weekday {
	return g.Time(time.UTC).Weekday()
}

// ElapsedDays returns the approximate number of days between 1 Muharram 1 AH
// and the given Hijri date. The sum is rounded half up.
// Out-of-range months and days are extrapolated, not rejected.
func ElapsedDays(year, month, day int) int {
	x := float64(year-1)*MeanYearDays + float64(month)*MeanMonthDays + float64(day-1)
	return int(math.Floor(x + 0.5))
}

// ToGregorian converts a Hijri date (month 0..11) to a calendar date using
// the mean year/month approximation. It is not an exact inverse of any
// observed Hijri calendar: callers that need the real day must re-check the
// result with a date lookup.
func ToGregorian(year, month, day int) GregorianDate {
	jd := EpochJulianDay + float64(ElapsedDays(year, month, day))
	return JulianDayToGregorian(jd)
}

// JulianDayToGregorian converts a Julian Day to a calendar date.
// Days before GregorianReformDay come out on the Julian calendar.
func JulianDayToGregorian(jd float64) GregorianDate {
	j := jd + 0.5
	z := math.Floor(j)
	f := j - z

	a := z
	if z >= GregorianReformDay {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a += 1 + alpha - math.Floor(alpha/4)
	}

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day := b - d - math.Floor(30.6001*e) + f

	month := e - 13
	if e < 14 {
		month = e - 1
	}
	year := c - 4715
	if month > 2 {
		year = c - 4716
	}

	return GregorianDate{
		Year:  int(year),
		Month: time.Month(int(month)),
		Day:   int(math.Floor(day)),
	}
}

// JulianDayFromTime returns the Julian Day of midnight at the start of the
// civil date of t, in t's own location.
func JulianDayFromTime(t time.Time) float64 {
	y, m, d := t.Date()
	days := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
	return float64(days) + UnixEpochJulianDay
}
