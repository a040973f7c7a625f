package schedule

import (
	"fmt"
	"strconv"
	"time"

	"courtly/pkg/model"
)

const DateLayout = "2006-01-02"

// Configuration is the pure, side-effect-free view of working hours and
// closures that slot generation and lifecycle checks consult.
type Configuration struct {
	hours      map[time.Weekday]model.WorkingHours
	closures   []*model.ClosedPeriod
	lunchBreak *model.TimeWindow
}

func NewConfiguration(settings *model.Settings, closures []*model.ClosedPeriod) *Configuration {
	hours := make(map[time.Weekday]model.WorkingHours, len(settings.Hours))
	for key, wh := range settings.Hours {
		day, err := strconv.Atoi(key)
		if err != nil || day < 0 || day > 6 {
			continue
		}
		hours[time.Weekday(day)] = wh
	}

	return &Configuration{
		hours:      hours,
		closures:   closures,
		lunchBreak: settings.LunchBreak,
	}
}

// IsClosed reports whether the date falls within any closed period. Unlike
// customer visibility, generation honors closures whether or not they were
// published yet: an operator staging a closure does not want new slots inside
// it.
func (c *Configuration) IsClosed(date string) bool {
	for _, closure := range c.closures {
		if closure.PendingDeletion {
			continue
		}
		if closure.Covers(date) {
			return true
		}
	}
	return false
}

// HoursFor returns the working hours for the weekday, or false when the
// weekday is disabled or unconfigured.
func (c *Configuration) HoursFor(day time.Weekday) (model.WorkingHours, bool) {
	wh, ok := c.hours[day]
	if !ok || !wh.Enabled {
		return model.WorkingHours{}, false
	}
	return wh, true
}

// Window returns the weekday's working window as minutes of day.
func (c *Configuration) Window(day time.Weekday) (startMin, endMin int, ok bool) {
	wh, ok := c.HoursFor(day)
	if !ok {
		return 0, 0, false
	}

	startMin, err := ParseMinutes(wh.Start)
	if err != nil {
		return 0, 0, false
	}
	endMin, err = ParseMinutes(wh.End)
	if err != nil || endMin <= startMin {
		return 0, 0, false
	}
	return startMin, endMin, true
}

// Contains reports whether a slot [startMin, startMin+durationMin) fits
// inside the weekday's working window.
func (c *Configuration) Contains(day time.Weekday, startMin, durationMin int) bool {
	windowStart, windowEnd, ok := c.Window(day)
	if !ok {
		return false
	}
	return startMin >= windowStart && startMin+durationMin <= windowEnd
}

// IntersectsLunchBreak reports whether the candidate interval overlaps the
// configured midday break. No break configured means no intersection.
func (c *Configuration) IntersectsLunchBreak(startMin, durationMin int) bool {
	if c.lunchBreak == nil {
		return false
	}

	breakStart, err := ParseMinutes(c.lunchBreak.Start)
	if err != nil {
		return false
	}
	breakEnd, err := ParseMinutes(c.lunchBreak.End)
	if err != nil || breakEnd <= breakStart {
		return false
	}

	return startMin < breakEnd && startMin+durationMin > breakStart
}

// ParseMinutes converts "HH:MM" to minutes since midnight.
func ParseMinutes(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes converts minutes since midnight back to "HH:MM".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a calendar date in the fixed YYYY-MM-DD layout.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// Weekday returns the weekday of a YYYY-MM-DD date.
func Weekday(date string) (time.Weekday, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}
