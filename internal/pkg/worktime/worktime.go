// Package worktime converts instants to the organisation's wall clock.
//
// Every instant in the system is stored in UTC. Calendar dates and weekdays are
// derived by converting once through the configured zone, never through the
// host's local time.
package worktime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidTimeOfDay = errors.New("time must be in HH:MM format")

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

var timeOfDayRegex = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// ParseTimeOfDay parses "HH:MM" (24h). A single-digit hour is accepted.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := timeOfDayRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	h, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return TimeOfDay{Hour: h, Minute: minute}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.Minutes() < u.Minutes()
}

// Clock resolves instants against a single organisation zone.
type Clock struct {
	loc *time.Location
}

var offsetRegex = regexp.MustCompile(`^(?:UTC)?([+-])(\d{1,2})(?::?(\d{2}))?$`)

// NewClock accepts an IANA zone name ("Asia/Jakarta") or a fixed offset
// ("+07:00", "UTC+7", "-0330").
func NewClock(tz string) (*Clock, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" || strings.EqualFold(tz, "UTC") {
		return &Clock{loc: time.UTC}, nil
	}

	if m := offsetRegex.FindStringSubmatch(strings.ToUpper(tz)); m != nil {
		hours, _ := strconv.Atoi(m[2])
		mins := 0
		if m[3] != "" {
			mins, _ = strconv.Atoi(m[3])
		}
		if hours > 14 || mins > 59 {
			return nil, fmt.Errorf("invalid utc offset %q", tz)
		}
		offset := hours*3600 + mins*60
		if m[1] == "-" {
			offset = -offset
		}
		return &Clock{loc: time.FixedZone(tz, offset)}, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}
	return &Clock{loc: loc}, nil
}

// FixedClock returns a clock for a constant UTC offset in hours.
func FixedClock(offsetHours int) *Clock {
	return &Clock{loc: time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600)}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// Local returns t on the organisation's wall clock.
func (c *Clock) Local(t time.Time) time.Time {
	return t.In(c.loc)
}

// Date returns the organisation-local calendar date of t as midnight UTC,
// which is how DATE columns round-trip through pgx.
func (c *Clock) Date(t time.Time) time.Time {
	l := t.In(c.loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.UTC)
}

// Weekday returns the organisation-local day of week of t.
func (c *Clock) Weekday(t time.Time) time.Weekday {
	return t.In(c.loc).Weekday()
}

// At returns the UTC instant of wall time tod on the calendar date day.
func (c *Clock) At(day time.Time, tod TimeOfDay) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour, tod.Minute, 0, 0, c.loc).UTC()
}

// ParseDate parses YYYY-MM-DD into the same midnight-UTC form as Date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

var dayNames = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

// DayName returns the Indonesian name of d.
func DayName(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return dayNames[d]
}
