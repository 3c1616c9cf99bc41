package utils

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // timezone settings must resolve on hosts without zoneinfo

	"github.com/julianstephens/tracklit/internal/constants"
)

// legacyDayLayouts are the formats older databases stored completion days in.
var legacyDayLayouts = []string{
	constants.DateFormat,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().In(loc), nil
}

// TodayInTimezone returns the start of today in the specified timezone.
func TodayInTimezone(timezone string) (time.Time, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeToDay(now, now.Location()), nil
}

// NormalizeToDay truncates t to the start of its calendar day in loc.
// Instants on the same calendar day in loc map to the same value.
func NormalizeToDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// NextDay returns the start of the calendar day after day. It goes through the
// calendar rather than adding 24h so DST transitions are handled.
func NextDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, day.Location())
}

// DayRange returns the half-open interval [start, end) covering t's calendar day in loc.
func DayRange(t time.Time, loc *time.Location) (start, end time.Time) {
	start = NormalizeToDay(t, loc)
	return start, NextDay(start)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return NormalizeToDay(a, loc).Equal(NormalizeToDay(b, loc))
}

// FormatDay returns the YYYY-MM-DD key for t's calendar day in t's own location.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DayKey normalizes t in loc and formats it.
func DayKey(t time.Time, loc *time.Location) string {
	return FormatDay(NormalizeToDay(t, loc))
}

// ParseDay parses a YYYY-MM-DD string as the start of that day in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(constants.DateFormat, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseLegacyDay accepts a stored day in any format older versions wrote and
// returns the normalized YYYY-MM-DD key in loc. Timestamps carrying an offset are
// converted to loc before truncation; bare timestamps are read in loc.
func ParseLegacyDay(s string, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	for _, layout := range legacyDayLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return DayKey(t, loc), nil
		}
	}
	return "", fmt.Errorf("unrecognized day format %q", s)
}

// IsNormalizedDay reports whether s is already a canonical YYYY-MM-DD key.
func IsNormalizedDay(s string) bool {
	t, err := time.Parse(constants.DateFormat, s)
	return err == nil && t.Format(constants.DateFormat) == s
}

// FormatTimestamp renders t in the fixed-width UTC layout used for stored timestamps.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(constants.TimestampFormat)
}

// ParseTimestamp parses a stored timestamp. RFC3339 values from older rows are accepted.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(constants.TimestampFormat, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
