package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-hijri/internal/config"
)

// TestApp_ReminderTrigger tests the conversion of UI preferences to an alarm trigger.
// By being in package 'ui', we can test the private method 'reminderTrigger'.
func TestApp_ReminderTrigger(t *testing.T) {
	a := test.NewApp()
	app := &GoHijriApp{
		App:         a,
		Preferences: a.Preferences(),
	}

	tests := []struct {
		name        string
		enabled     bool
		val         int
		unit        string
		direction   string
		wantTrigger string // Expected ISO8601 string
	}{
		{
			name:        "Disabled",
			enabled:     false,
			val:         1,
			wantTrigger: "",
		},
		{
			name:        "1 Day Before",
			enabled:     true,
			val:         1,
			unit:        config.UnitDays,
			direction:   config.DirBefore,
			wantTrigger: "-P1D",
		},
		{
			name:        "2 Hours After",
			enabled:     true,
			val:         2,
			unit:        config.UnitHours,
			direction:   config.DirAfter,
			wantTrigger: "PT2H",
		},
		{
			name:        "30 Minutes Before",
			enabled:     true,
			val:         30,
			unit:        config.UnitMinutes,
			direction:   config.DirBefore,
			wantTrigger: "-PT30M",
		},
		{
			name:        "Zero disables",
			enabled:     true,
			val:         0,
			unit:        config.UnitDays,
			direction:   config.DirBefore,
			wantTrigger: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.Preferences.SetBool(config.PrefReminderEnabled, tt.enabled)
			app.Preferences.SetInt(config.PrefReminderValue, tt.val)
			app.Preferences.SetString(config.PrefReminderUnit, tt.unit)
			app.Preferences.SetString(config.PrefReminderDir, tt.direction)

			assert.Equal(t, tt.wantTrigger, app.reminderTrigger())
		})
	}
}

func TestAdjustmentOptions(t *testing.T) {
	assert.Equal(t, []string{"-2", "-1", "+0", "+1", "+2"}, adjustmentOptions())

	tests := []struct {
		in   string
		want int
	}{
		{"-2", -2},
		{"+0", 0},
		{"+1", 1},
		{"+7", config.MaxDayAdjustment},
		{"", config.DefaultDayAdjustment},
		{"abc", config.DefaultDayAdjustment},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseAdjustment(tt.in), tt.in)
	}
}
