package hijri_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-hijri/internal/hijri"
)

func TestToGregorian_Epoch(t *testing.T) {
	// 1 Muharram 1 AH sits exactly on the epoch Julian Day, which predates
	// the Gregorian reform and therefore comes out as a Julian calendar date.
	got := hijri.ToGregorian(1, 0, 1)
	assert.Equal(t, hijri.GregorianDate{Year: 622, Month: time.July, Day: 16}, got)
	assert.Equal(t, hijri.JulianDayToGregorian(hijri.EpochJulianDay), got)
}

func TestToGregorian_KnownValues(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		expected         hijri.GregorianDate
	}{
		{"1 Ramadan 1445", 1445, 8, 1, hijri.GregorianDate{Year: 2024, Month: time.March, Day: 12}},
		{"15 Ramadan 1445", 1445, 8, 15, hijri.GregorianDate{Year: 2024, Month: time.March, Day: 26}},
		{"1 Dhu al-Hijjah 1445", 1445, 11, 1, hijri.GregorianDate{Year: 2024, Month: time.June, Day: 8}},
		{"1 Muharram 1446", 1446, 0, 1, hijri.GregorianDate{Year: 2024, Month: time.July, Day: 8}},
		{"1 Rajab 1446 crosses the Gregorian year", 1446, 6, 1, hijri.GregorianDate{Year: 2025, Month: time.January, Day: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, hijri.ToGregorian(tt.year, tt.month, tt.day))
		})
	}
}

// TestToGregorian_Extrapolates ensures out-of-range input is accepted silently.
func TestToGregorian_Extrapolates(t *testing.T) {
	assert.Equal(t, hijri.GregorianDate{Year: 622, Month: time.August, Day: 15}, hijri.ToGregorian(1, 0, 31))
	assert.Equal(t, hijri.GregorianDate{Year: 622, Month: time.June, Day: 17}, hijri.ToGregorian(1, -1, 1))
}

func TestElapsedDays_RoundsHalfUp(t *testing.T) {
	assert.Equal(t, 0, hijri.ElapsedDays(1, 0, 1))
	assert.Equal(t, 30, hijri.ElapsedDays(1, 1, 1), "29.5 must round up")
	// Half-up, not half-away-from-zero: -29.5 becomes -29.
	assert.Equal(t, -29, hijri.ElapsedDays(1, -1, 1))
	assert.Equal(t, 354, hijri.ElapsedDays(2, 0, 1))
}

func TestJulianDayToGregorian_ReformBoundary(t *testing.T) {
	// Thursday 4 October 1582 (Julian) was followed by Friday 15 October 1582 (Gregorian).
	assert.Equal(t, hijri.GregorianDate{Year: 1582, Month: time.October, Day: 4}, hijri.JulianDayToGregorian(2299159.5))
	assert.Equal(t, hijri.GregorianDate{Year: 1582, Month: time.October, Day: 15}, hijri.JulianDayToGregorian(2299160.5))
	assert.Equal(t, hijri.GregorianDate{Year: 2000, Month: time.January, Day: 1}, hijri.JulianDayToGregorian(2451544.5))
}

func TestJulianDayFromTime_IgnoresClockTime(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	late := time.Date(2000, 1, 1, 23, 59, 0, 0, loc)
	early := time.Date(2000, 1, 1, 0, 1, 0, 0, loc)

	assert.Equal(t, 2451544.5, hijri.JulianDayFromTime(late))
	assert.Equal(t, 2451544.5, hijri.JulianDayFromTime(early))
}

func TestGregorianDate_Weekday(t *testing.T) {
	assert.Equal(t, time.Tuesday, hijri.GregorianDate{Year: 2024, Month: time.March, Day: 12}.Weekday())
	// Read as a proleptic Gregorian date, regardless of which calendar produced it.
	assert.Equal(t, time.Tuesday, hijri.GregorianDate{Year: 622, Month: time.July, Day: 16}.Weekday())
}

func TestGregorianDate_TimeDefaultsToUTC(t *testing.T) {
	g := hijri.GregorianDate{Year: 2024, Month: time.March, Day: 12}
	assert.Equal(t, time.UTC, g.Time(nil).Location())
	assert.Equal(t, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), g.Time(nil))
}
