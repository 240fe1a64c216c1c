package engine_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tartampluch/go-hijri/internal/hijri"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// MockLookup simulates a Hijri date source using `testify/mock`.
type MockLookup struct {
	mock.Mock
}

// Lookup implements the engine.HijriLookup interface.
func (m *MockLookup) Lookup(ctx context.Context, t time.Time) (hijri.Date, bool) {
	args := m.Called(ctx, t)
	return args.Get(0).(hijri.Date), args.Bool(1)
}

// probeDay returns the instant DaysInMonth asks the lookup about.
func probeDay(year, month, day int) time.Time {
	return hijri.ToGregorian(year, month, day).Time(time.UTC)
}
