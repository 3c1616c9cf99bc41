package models

import "time"

// CompletionRecord is the fact that a tracker was completed on a calendar day.
type CompletionRecord struct {
	ID        string    `json:"id"`
	TrackerID string    `json:"tracker_id"`
	Day       string    `json:"day"` // YYYY-MM-DD, normalized in the reference calendar
	CreatedAt time.Time `json:"created_at"`
}

// Category is a named grouping key. Its identity is its name.
type Category struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot is the portable export format: the whole catalog and ledger.
type Snapshot struct {
	Version    int                `json:"version"`
	ExportedAt time.Time          `json:"exported_at"`
	Settings   Settings           `json:"settings"`
	Categories []Category         `json:"categories"`
	Trackers   []Tracker          `json:"trackers"`
	Records    []CompletionRecord `json:"records"`
}

// SnapshotVersion is the current export format version.
const SnapshotVersion = 1
