package models

import (
	"testing"
	"time"
)

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		in   time.Weekday
		want Weekday
	}{
		{time.Monday, Monday},
		{time.Wednesday, Wednesday},
		{time.Saturday, Saturday},
		{time.Sunday, Sunday},
	}
	for _, tt := range tests {
		if got := WeekdayOf(tt.in); got != tt.want {
			t.Errorf("WeekdayOf(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Schedule
		wantErr bool
	}{
		{"empty", "", 0, false},
		{"none", "none", 0, false},
		{"daily", "daily", EveryDay, false},
		{"weekdays keyword", "Weekdays", WeekdaysSchedule, false},
		{"names", "mon, wed,FRI", NewSchedule(Monday, Wednesday, Friday), false},
		{"long names", "saturday,sunday", WeekendSchedule, false},
		{"indices", "0,6", NewSchedule(Monday, Sunday), false},
		{"duplicates collapse", "mon,mon,0", NewSchedule(Monday), false},
		{"out of range index", "7", 0, true},
		{"unknown name", "funday", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSchedule(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSchedule(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseSchedule(%q) = %07b, want %07b", tt.input, got, tt.want)
			}
		})
	}
}

func TestScheduleRoundTripsThroughString(t *testing.T) {
	for mask := 0; mask <= EveryDay.Mask(); mask++ {
		s := Schedule(mask)
		parsed, err := ParseSchedule(s.String())
		if err != nil {
			t.Fatalf("ParseSchedule(%q) failed: %v", s.String(), err)
		}
		if parsed != s {
			t.Fatalf("round trip of %07b gave %07b", s, parsed)
		}
	}
}

func TestScheduleFromMask(t *testing.T) {
	if _, err := ScheduleFromMask(128); err == nil {
		t.Error("expected error for mask 128")
	}
	if _, err := ScheduleFromMask(-1); err == nil {
		t.Error("expected error for negative mask")
	}
	s, err := ScheduleFromMask(0b1000001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Contains(Monday) || !s.Contains(Sunday) || s.Contains(Tuesday) {
		t.Errorf("unexpected days: %v", s.Days())
	}
}

func TestScheduleDescribe(t *testing.T) {
	tests := []struct {
		s            Schedule
		emptyIsDaily bool
		want         string
	}{
		{0, false, "No schedule"},
		{0, true, "Every day"},
		{EveryDay, false, "Every day"},
		{WeekdaysSchedule, false, "Weekdays"},
		{WeekendSchedule, true, "Weekends"},
		{NewSchedule(Tuesday, Thursday), false, "Tue, Thu"},
	}
	for _, tt := range tests {
		if got := tt.s.Describe(tt.emptyIsDaily); got != tt.want {
			t.Errorf("Describe(%07b, %v) = %q, want %q", tt.s, tt.emptyIsDaily, got, tt.want)
		}
	}
}

func TestDescribeAgreesWithIsDueOn(t *testing.T) {
	week := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC) // a Monday
	for _, emptyIsDaily := range []bool{false, true} {
		for _, s := range []Schedule{0, EveryDay, WeekdaysSchedule} {
			tr := Tracker{Schedule: s}
			due := 0
			for i := 0; i < DaysInWeek; i++ {
				if tr.IsDueOn(week.AddDate(0, 0, i), emptyIsDaily) {
					due++
				}
			}
			label := s.Describe(emptyIsDaily)
			if (label == "Every day") != (due == DaysInWeek) {
				t.Errorf("schedule %07b, emptyIsDaily=%v: label %q but due on %d days", s, emptyIsDaily, label, due)
			}
			if (label == "No schedule") != (due == 0) {
				t.Errorf("schedule %07b, emptyIsDaily=%v: label %q but due on %d days", s, emptyIsDaily, label, due)
			}
		}
	}
}

