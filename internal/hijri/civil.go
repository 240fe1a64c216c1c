package hijri

import (
	"math"
	"time"
)

// The civil (tabular) Islamic calendar: months alternate 30/29 days and
// Dhu al-Hijjah gains a day in 11 leap years of every 30-year cycle.
const (
	cycleYears    = 30
	cycleLeapDays = 11
	cycleDays     = 10631
)

// monthNames are the transliterated month names, indexed by zero-based month.
var monthNames = [MonthsPerYear]string{
	"Muharram",
	"Safar",
	"Rabi al-Awwal",
	"Rabi al-Thani",
	"Jumada al-Ula",
	"Jumada al-Akhirah",
	"Rajab",
	"Shaban",
	"Ramadan",
	"Shawwal",
	"Dhu al-Qadah",
	"Dhu al-Hijjah",
}

// MonthName returns the transliterated name of a zero-based Hijri month.
// Months outside 0..11 wrap around.
func MonthName(month int) string {
	return monthNames[mod(month, MonthsPerYear)]
}

// IsCivilLeapYear reports whether year has 355 days in the civil calendar.
func IsCivilLeapYear(year int) bool {
	return mod(14+cycleLeapDays*year, cycleYears) < cycleLeapDays
}

// CivilDaysInMonth returns the length of a zero-based month in the civil calendar.
func CivilDaysInMonth(year, month int) int {
	if month == MonthsPerYear-1 && IsCivilLeapYear(year) {
		return 30
	}
	if month%2 == 0 {
		return 30
	}
	return 29
}

// CivilToJulianDay returns the Julian Day (at midnight) of a civil Hijri date.
func CivilToJulianDay(year, month, day int) float64 {
	return float64(day) +
		math.Ceil(MeanMonthDays*float64(month)) +
		float64(year-1)*354 +
		math.Floor(float64(3+cycleLeapDays*year)/cycleYears) +
		EpochJulianDay - 1
}

// CivilFromJulianDay returns the civil Hijri date containing the Julian Day jd.
func CivilFromJulianDay(jd float64) Date {
	jd = math.Floor(jd) + 0.5

	year := int(math.Floor((cycleYears*(jd-EpochJulianDay) + 10646) / cycleDays))

	m := math.Ceil((jd-(29+CivilToJulianDay(year, 0, 1)))/MeanMonthDays) + 1
	month := int(math.Min(MonthsPerYear, m)) - 1

	day := int(jd-CivilToJulianDay(year, month, 1)) + 1

	return Date{Day: day, Month: month, Year: year}
}

// CivilFromTime returns the civil Hijri date of the civil day of t, shifted by
// adjustDays.
func CivilFromTime(t time.Time, adjustDays int) Date {
	return CivilFromJulianDay(JulianDayFromTime(t) + float64(adjustDays))
}

// CivilToTime returns midnight, in loc, of a civil Hijri date.
func CivilToTime(d Date, loc *time.Location) time.Time {
	return JulianDayToTime(CivilToJulianDay(d.Year, d.Month, d.Day), loc)
}

// JulianDayToTime returns midnight, in loc, of the proleptic Gregorian day
// that starts at jd.
func JulianDayToTime(jd float64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	days := int64(math.Floor(jd - UnixEpochJulianDay))
	u := time.Unix(days*secondsPerDay, 0).UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, loc)
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
