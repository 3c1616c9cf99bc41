package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "tracklit"
	DefaultKeyringUser = "database-connection"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is a fixed-width UTC timestamp so that lexical order matches
	// chronological order in both SQLite and PostgreSQL text columns.
	TimestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

	// Environment variables
	EnvDBConnection = "TRACKLIT_DB_CONNECTION"
	EnvConfigFile   = "TRACKLIT_CONFIG"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tracklit-"
	BackupFileSuffix = ".db"

	// Lock constants
	LockfileName     = "tracklit.lock"
	LockStaleAfter   = 12 * time.Hour
	LockRetryBackoff = 50 * time.Millisecond

	// Grouping labels
	PinnedLabel        = "Pinned"
	UncategorizedLabel = "Uncategorized"

	// Display
	DefaultEmoji = "✅"
	DefaultColor = "#33cf69"
)

// Session States
const (
	StateTrackers SessionState = iota
	StateStats
	StateSearch
	StateTrackerForm
	StateConfirmDelete
)
