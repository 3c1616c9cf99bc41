package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// Tracker is a user-defined habit with a weekly schedule and display attributes.
type Tracker struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Emoji        string    `json:"emoji"`
	Color        Color     `json:"color"`
	CategoryName string    `json:"category_name,omitempty"` // "" means uncategorized
	Schedule     Schedule  `json:"schedule"`
	IsPinned     bool      `json:"is_pinned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate checks the user-editable fields.
func (t Tracker) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if err := ValidateEmoji(t.Emoji); err != nil {
		return err
	}
	if _, err := ParseColor(string(t.Color)); err != nil {
		return err
	}
	return nil
}

// IsDueOn reports whether the schedule contains the weekday of day. emptyIsDaily picks
// the semantic for trackers without a fixed schedule.
func (t Tracker) IsDueOn(day time.Time, emptyIsDaily bool) bool {
	if t.Schedule.IsEmpty() {
		return emptyIsDaily
	}
	return t.Schedule.Contains(WeekdayOf(day.Weekday()))
}

// ValidateEmoji requires exactly one grapheme cluster.
func ValidateEmoji(s string) error {
	if s == "" {
		return fmt.Errorf("emoji cannot be empty")
	}
	if n := uniseg.GraphemeClusterCount(s); n != 1 {
		return fmt.Errorf("emoji must be a single character, got %d", n)
	}
	return nil
}
