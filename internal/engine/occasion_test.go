package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-hijri/internal/config"
)

func TestDefaultOccasions_ReturnsCopy(t *testing.T) {
	got := DefaultOccasions()
	got[0].Label = "changed"

	assert.Equal(t, config.OccasionRamadan, defaultOccasions[0].Label, "The built-in table must not be mutable by callers")
	assert.Len(t, DefaultOccasions(), 4)
}

func TestMatchOccasion(t *testing.T) {
	tests := []struct {
		name      string
		month     int
		day       int
		wantOK    bool
		wantStyle string
	}{
		{"Ramadan", 8, 1, true, config.StyleRamadan},
		{"Eid al-Fitr", 9, 1, true, config.StyleEidFitr},
		{"Eid al-Adha", 11, 10, true, config.StyleEidAdha},
		{"Ashura", 0, 10, true, config.StyleAshura},
		{"Ordinary day", 8, 2, false, ""},
		{"Day 10 of another month", 5, 10, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, ok := MatchOccasion(defaultOccasions, tt.month, tt.day)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStyle, o.StyleClass)
		})
	}
}

func TestMergeOccasions(t *testing.T) {
	custom := []Occasion{{Month: 0, Day: 10, Label: "Fast", StyleClass: config.StyleCustom}}

	merged := MergeOccasions(custom, defaultOccasions)
	assert.Len(t, merged, 5)

	o, ok := MatchOccasion(merged, 0, 10)
	assert.True(t, ok)
	assert.Equal(t, "Fast", o.Label, "Earlier tables shadow later ones")

	assert.Empty(t, MergeOccasions())
}
