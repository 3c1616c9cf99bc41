package storage

import (
	"time"

	"github.com/julianstephens/tracklit/internal/migration"
	"github.com/julianstephens/tracklit/internal/models"
)

// Provider is the persistence boundary for trackers, categories, completion
// records and settings. Lookups of missing entities return an error matching
// errors.ErrNotFound; backend failures match errors.ErrStore.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Trackers, returned in catalog order (created_at, then id). AddTracker and
	// UpdateTracker register the tracker's category in the same transaction.
	AddTracker(models.Tracker) error
	GetTracker(id string) (models.Tracker, error)
	GetAllTrackers() ([]models.Tracker, error)
	UpdateTracker(models.Tracker) error
	// DeleteTracker removes the tracker and its completion records. It reports
	// whether a tracker was removed.
	DeleteTracker(id string) (bool, error)

	// Categories holds the explicitly stored category rows.
	GetCategories() ([]models.Category, error)
	AddCategory(models.Category) error
	// RenameCategory moves every tracker in oldName to newName and replaces the
	// stored row in one transaction. Renaming onto an existing name merges them.
	RenameCategory(oldName, newName string, at time.Time) error
	// DeleteCategory removes the row and leaves its trackers uncategorized.
	DeleteCategory(name string) error

	// Completion records
	// ToggleCompletion deletes the (tracker, day) record if present and inserts
	// rec otherwise, atomically. It reports whether the record now exists.
	ToggleCompletion(rec models.CompletionRecord) (bool, error)
	AddCompletion(models.CompletionRecord) error
	DeleteCompletion(trackerID, day string) (bool, error)
	HasCompletion(trackerID, day string) (bool, error)
	GetAllCompletions() ([]models.CompletionRecord, error)
	GetCompletionsForTracker(trackerID string) ([]models.CompletionRecord, error)
	GetCompletionsForDay(day string) ([]models.CompletionRecord, error)
	// GetCompletionsInRange returns records with startDay <= day < endDay.
	GetCompletionsInRange(startDay, endDay string) ([]models.CompletionRecord, error)

	// Maintenance
	NormalizeDays(loc *time.Location) (migration.NormalizeResult, error)
	// ReplaceAll swaps the whole catalog and ledger for the snapshot contents.
	ReplaceAll(models.Snapshot) error

	// Utils
	GetConfigPath() string
}
