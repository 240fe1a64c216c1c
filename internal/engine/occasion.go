package engine

import "github.com/tartampluch/go-hijri/internal/config"

// Occasion is a fixed religious date annotated on the calendar.
// Month is zero based.
type Occasion struct {
	Month      int    `json:"month"`
	Day        int    `json:"day"`
	Label      string `json:"label"`
	StyleClass string `json:"styleClass"`
}

// defaultOccasions is never handed out directly; see DefaultOccasions.
var defaultOccasions = []Occasion{
	{Month: 8, Day: 1, Label: config.OccasionRamadan, StyleClass: config.StyleRamadan},
	{Month: 9, Day: 1, Label: config.OccasionEidFitr, StyleClass: config.StyleEidFitr},
	{Month: 11, Day: 10, Label: config.OccasionEidAdha, StyleClass: config.StyleEidAdha},
	{Month: 0, Day: 10, Label: config.OccasionAshura, StyleClass: config.StyleAshura},
}

// DefaultOccasions returns a copy of the built-in occasion table.
func DefaultOccasions() []Occasion {
	out := make([]Occasion, len(defaultOccasions))
	copy(out, defaultOccasions)
	return out
}

// MatchOccasion returns the first occasion falling on (month, day).
func MatchOccasion(occasions []Occasion, month, day int) (Occasion, bool) {
	for _, o := range occasions {
		if o.Month == month && o.Day == day {
			return o, true
		}
	}
	return Occasion{}, false
}

// MergeOccasions concatenates tables in priority order. Since matching is
// first-wins, earlier tables shadow later ones on the same day.
func MergeOccasions(tables ...[]Occasion) []Occasion {
	n := 0
	for _, t := range tables {
		n += len(t)
	}
	out := make([]Occasion, 0, n)
	for _, t := range tables {
		out = append(out, t...)
	}
	return out
}
