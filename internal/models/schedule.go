package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is a Monday-first weekday index: Monday = 0 .. Sunday = 6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysInWeek is the number of weekdays a schedule can hold.
const DaysInWeek = 7

var weekdayNames = [DaysInWeek]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// WeekdayOf converts a Go weekday (Sunday-first) into a Monday-first index.
func WeekdayOf(wd time.Weekday) Weekday {
	return Weekday((int(wd) + 6) % DaysInWeek)
}

// Valid reports whether d is in 0..6.
func (d Weekday) Valid() bool { return d >= Monday && d <= Sunday }

// String returns the short lowercase name ("mon").
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Schedule is the set of weekdays a tracker is due on, stored as a 7-bit mask
// (bit 0 = Monday). The zero value is the empty schedule.
type Schedule uint8

const (
	scheduleMask     Schedule = 1<<DaysInWeek - 1
	EveryDay                  = scheduleMask
	WeekdaysSchedule Schedule = 0b0011111
	WeekendSchedule  Schedule = 0b1100000
)

// NewSchedule builds a schedule from weekday indices. Invalid indices are ignored.
func NewSchedule(days ...Weekday) Schedule {
	var s Schedule
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

// ScheduleFromMask validates a persisted mask.
func ScheduleFromMask(mask int) (Schedule, error) {
	if mask < 0 || mask > int(scheduleMask) {
		return 0, fmt.Errorf("invalid schedule mask %d: must be between 0 and %d", mask, scheduleMask)
	}
	return Schedule(mask), nil
}

// Mask returns the persisted integer form.
func (s Schedule) Mask() int { return int(s & scheduleMask) }

// With returns s with d added.
func (s Schedule) With(d Weekday) Schedule {
	if !d.Valid() {
		return s
	}
	return s | 1<<uint(d)
}

// Contains reports whether d is part of the schedule.
func (s Schedule) Contains(d Weekday) bool {
	return d.Valid() && s&(1<<uint(d)) != 0
}

// IsEmpty reports whether no weekday is set.
func (s Schedule) IsEmpty() bool { return s&scheduleMask == 0 }

// Days returns the weekdays in Monday-first order.
func (s Schedule) Days() []Weekday {
	var days []Weekday
	for d := Monday; d <= Sunday; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// String returns the canonical serialization: comma-joined short names, "" when empty.
func (s Schedule) String() string {
	days := s.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ",")
}

// Describe renders the schedule for display. emptyIsDaily is the same switch
// Tracker.IsDueOn takes, so an empty schedule reads the way the due filter treats it.
func (s Schedule) Describe(emptyIsDaily bool) string {
	switch s & scheduleMask {
	case 0:
		if emptyIsDaily {
			return "Every day"
		}
		return "No schedule"
	case EveryDay:
		return "Every day"
	case WeekdaysSchedule:
		return "Weekdays"
	case WeekendSchedule:
		return "Weekends"
	}
	days := s.Days()
	names := make([]string, len(days))
	for i, d := range days {
		n := d.String()
		names[i] = strings.ToUpper(n[:1]) + n[1:]
	}
	return strings.Join(names, ", ")
}

var weekdayAliases = map[string]Weekday{
	"mon": Monday, "monday": Monday,
	"tue": Tuesday, "tues": Tuesday, "tuesday": Tuesday,
	"wed": Wednesday, "wednesday": Wednesday,
	"thu": Thursday, "thur": Thursday, "thurs": Thursday, "thursday": Thursday,
	"fri": Friday, "friday": Friday,
	"sat": Saturday, "saturday": Saturday,
	"sun": Sunday, "sunday": Sunday,
}

// ParseSchedule parses a comma-separated list of weekday names or Monday-first
// indices (0-6). The keywords "daily", "weekdays", "weekends" and "none" are accepted.
func ParseSchedule(s string) (Schedule, error) {
	trimmed := strings.TrimSpace(strings.ToLower(s))
	switch trimmed {
	case "", "none":
		return 0, nil
	case "daily", "everyday", "every day":
		return EveryDay, nil
	case "weekdays":
		return WeekdaysSchedule, nil
	case "weekends":
		return WeekendSchedule, nil
	}

	var sched Schedule
	for _, part := range strings.Split(trimmed, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if wd, ok := weekdayAliases[part]; ok {
			sched = sched.With(wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || !Weekday(num).Valid() {
			return 0, fmt.Errorf("invalid weekday: %s", part)
		}
		sched = sched.With(Weekday(num))
	}
	return sched, nil
}
