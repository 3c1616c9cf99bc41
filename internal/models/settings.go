package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/tracklit/internal/constants"
)

// Settings represents application-wide settings
type Settings struct {
	Timezone                string `json:"timezone"`                 // IANA timezone name, or "Local" for the system timezone
	EmptyScheduleDue        bool   `json:"empty_schedule_due"`       // whether trackers without a schedule pass the due-today filter
	AllowFutureCompletions  bool   `json:"allow_future_completions"` // whether days after today can be marked
	DayNormalizationVersion int    `json:"-"`
}

// DefaultSettings returns the settings a fresh store is initialized with.
func DefaultSettings() Settings {
	return Settings{
		Timezone:               constants.DefaultTimezone,
		EmptyScheduleDue:       constants.DefaultEmptyScheduleDue,
		AllowFutureCompletions: constants.DefaultAllowFutureCompletions,
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingEmptyScheduleDue:
			settings.EmptyScheduleDue = value == "true"
		case constants.SettingAllowFutureCompletions:
			settings.AllowFutureCompletions = value == "true"
		case constants.SettingDayNormalizationVersion:
			v, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.DayNormalizationVersion = v
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:                settings.Timezone,
		constants.SettingEmptyScheduleDue:        strconv.FormatBool(settings.EmptyScheduleDue),
		constants.SettingAllowFutureCompletions:  strconv.FormatBool(settings.AllowFutureCompletions),
		constants.SettingDayNormalizationVersion: strconv.Itoa(settings.DayNormalizationVersion),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}
