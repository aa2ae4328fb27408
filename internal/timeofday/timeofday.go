// Package timeofday provides a minute-precision wall-clock time value,
// independent of any date, plus the midnight-relative instant helpers the
// scheduler and alarm pipeline share.
package timeofday

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const minutesPerDay = 24 * 60

// ErrOutOfRange is returned when a constructor receives a time outside
// 00:00–23:59.
var ErrOutOfRange = errors.New("time of day outside 00:00-23:59")

var clockPattern = regexp.MustCompile(`^(\d+):(\d+)$`)

// TimeOfDay is an immutable wall-clock time with minute precision.
// The zero value is midnight.
type TimeOfDay struct {
	minutes int
}

// New creates a TimeOfDay from an hour and minute.
func New(hour, minute int) (TimeOfDay, error) {
	return FromMinutes(60*hour + minute)
}

// FromMinutes creates a TimeOfDay from total minutes since midnight.
func FromMinutes(minutes int) (TimeOfDay, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return TimeOfDay{}, fmt.Errorf("%w: minutes = %d", ErrOutOfRange, minutes)
	}
	return TimeOfDay{minutes: minutes}, nil
}

// Parse creates a TimeOfDay from "HH:MM" text (24-hour clock, AM/PM not
// supported).
func Parse(s string) (TimeOfDay, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("cannot parse time of day from %q", s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return New(hour, minute)
}

// FromTime derives the time of day from an instant's local hour and minute,
// discarding the date and seconds.
func FromTime(t time.Time) TimeOfDay {
	return TimeOfDay{minutes: 60*t.Hour() + t.Minute()}
}

// Minutes returns total minutes since midnight.
func (t TimeOfDay) Minutes() int { return t.minutes }

// HourMinute returns the hour and minute components.
func (t TimeOfDay) HourMinute() (hour, minute int) {
	return t.minutes / 60, t.minutes % 60
}

// Before reports whether t is earlier in the day than u.
func (t TimeOfDay) Before(u TimeOfDay) bool { return t.minutes < u.minutes }

// At combines the time of day with the date part of day.
// Seconds and sub-seconds are zeroed; the location is preserved.
func (t TimeOfDay) At(day time.Time) time.Time {
	hour, minute := t.HourMinute()
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// Format renders the value with a time layout (e.g. "15:04" or "3:04 PM")
// by combining it with an arbitrary reference date.
func (t TimeOfDay) Format(layout string) string {
	ref := time.Date(2017, time.January, 1, 0, 0, 0, 0, time.Local)
	return t.At(ref).Format(layout)
}

// String renders the value as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	hour, minute := t.HourMinute()
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// DayAt returns now's date at the given hour and minute with seconds zeroed.
// Out-of-range hours normalize across day boundaries (24:00 is tomorrow
// midnight, -24:00 yesterday midnight), matching time.Date semantics.
//
// All midnight-relative instants inside one decision cycle must come from the
// same now so a cycle straddling midnight cannot mix two days.
func DayAt(now time.Time, hour, minute int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
}

// FormatDuration renders total minutes as "H hour(s) M minute(s)",
// omitting a zero hour part.
func FormatDuration(totalMinutes int) string {
	unit := func(value int, name string) string {
		if value == 1 {
			return fmt.Sprintf("%d %s", value, name)
		}
		return fmt.Sprintf("%d %ss", value, name)
	}

	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	switch {
	case hours == 0:
		return unit(minutes, "minute")
	case minutes == 0:
		return unit(hours, "hour")
	default:
		return unit(hours, "hour") + " " + unit(minutes, "minute")
	}
}
