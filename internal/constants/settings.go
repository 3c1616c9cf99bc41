package constants

const (
	// Settings keys
	SettingTimezone                = "timezone"
	SettingEmptyScheduleDue        = "empty_schedule_due"
	SettingAllowFutureCompletions  = "allow_future_completions"
	SettingDayNormalizationVersion = "day_normalization_version"

	// Default Settings Values
	DefaultTimezone               = "Local" // Use system local timezone by default
	DefaultEmptyScheduleDue       = false
	DefaultAllowFutureCompletions = false

	// DayNormalizationVersion is bumped whenever the stored day format changes and
	// existing completion records must be rewritten on the next load.
	DayNormalizationVersion = 1
)
