package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/hijri"
)

// Feed publishes the occasion table as an iCalendar document so that any
// calendar client can subscribe to it.
type Feed struct {
	Builder   *Builder // Pins Hijri days to Gregorian days through its Lookup.
	Clock     Clock
	Occasions []Occasion

	// Reminder is an ISO 8601 TRIGGER duration such as "-P1D". Empty disables alarms.
	Reminder string

	// FormatSummary allows the UI to inject localized event titles.
	FormatSummary func(o Occasion, d hijri.Date) string
}

// Generate builds the feed for the previous, current and next Hijri year.
// It returns the ICS bytes and the number of events written.
func (f *Feed) Generate(ctx context.Context) ([]byte, int, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompFeed)

	now := f.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	// The arithmetic calendar is always available, so an unreachable lookup
	// still yields a usable year range.
	current := hijri.CivilFromTime(now, 0).Year
	if today, ok := Today(ctx, f.Builder.Lookup, f.Clock); ok {
		current = today.Year
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	count := 0
	for year := current - config.FeedYearsAround; year <= current+config.FeedYearsAround; year++ {
		seen := make(map[[2]int]bool, len(f.Occasions))

		for _, o := range f.Occasions {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}

			// First match wins, as on the grid.
			key := [2]int{o.Month, o.Day}
			if seen[key] {
				continue
			}
			seen[key] = true

			d := hijri.Date{Day: o.Day, Month: o.Month, Year: year}
			day, ok := f.Builder.Resolve(ctx, d)
			if !ok {
				continue
			}

			event := f.newEvent(o, d, day)
			event.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, event.Component)
			count++
		}
	}

	if count == 0 {
		// A valid empty VCALENDAR keeps subscribed clients from flagging the feed.
		log.Info(config.MsgFeedGenerated, config.LogKeyEvents, 0)
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	log.Info(config.MsgFeedGenerated,
		config.LogKeyEvents, count,
		config.LogKeyYear, current,
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return buf.Bytes(), count, nil
}

// newEvent creates the all-day event of occasion o on day.
func (f *Feed) newEvent(o Occasion, d hijri.Date, day time.Time) *ical.Event {
	event := ical.NewEvent()

	// Deterministic UID so that clients update rather than duplicate events.
	event.Props.SetText(config.PropUID,
		fmt.Sprintf(config.FormatUID, d.Year, d.Month+1, d.Day, o.StyleClass, config.ICalDomain))

	summary := fmt.Sprintf(config.FormatSummary, o.Label, d.Day, hijri.MonthName(d.Month), d.Year)
	if f.FormatSummary != nil {
		summary = f.FormatSummary(o, d)
	}
	event.Props.SetText(config.PropSummary, summary)

	if o.StyleClass != "" {
		event.Props.SetText(config.PropCategories, o.StyleClass)
	}

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(day)
	event.Props.Set(dtStartProp)

	if f.Reminder != "" {
		addAlarm(event, f.Reminder, summary)
	}

	return event
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// ReminderTrigger formats an alarm offset as an ISO 8601 duration.
// Unknown units are read as days; a non-positive value disables the alarm.
func ReminderTrigger(value int, unit string, before bool) string {
	if value <= 0 {
		return ""
	}

	sign := config.ISOPeriodPrefix
	if before {
		sign = config.ISONegativePrefix
	}

	switch unit {
	case config.UnitHours:
		return fmt.Sprintf("%s%s%d%s", sign, config.ISOTimePrefix, value, config.ISOHour)
	case config.UnitMinutes:
		return fmt.Sprintf("%s%s%d%s", sign, config.ISOTimePrefix, value, config.ISOMinute)
	default:
		return fmt.Sprintf("%s%d%s", sign, value, config.ISODay)
	}
}
