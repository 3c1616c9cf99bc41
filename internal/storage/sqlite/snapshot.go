package sqlite

import (
	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/utils"
)

func (s *Store) ReplaceAll(snap models.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errs.Store("replace all", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"completion_records", "trackers", "categories"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return errs.Store("replace all", err)
		}
	}

	for _, c := range snap.Categories {
		if _, err := tx.Exec("INSERT OR IGNORE INTO categories (name, created_at) VALUES (?, ?)",
			c.Name, utils.FormatTimestamp(c.CreatedAt)); err != nil {
			return errs.Store("replace all", err)
		}
	}

	for _, t := range snap.Trackers {
		if _, err := tx.Exec(`
			INSERT INTO trackers (`+trackerColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Name, t.Emoji, string(t.Color), nullableCategory(t.CategoryName), t.Schedule.Mask(), t.IsPinned,
			utils.FormatTimestamp(t.CreatedAt), utils.FormatTimestamp(t.UpdatedAt)); err != nil {
			return errs.Store("replace all", err)
		}
	}

	// Records keep whatever day format they were exported with; the caller
	// normalizes afterwards, so duplicates are tolerated here.
	for _, r := range snap.Records {
		if _, err := tx.Exec("INSERT OR IGNORE INTO completion_records (id, tracker_id, day, created_at) VALUES (?, ?, ?, ?)",
			r.ID, r.TrackerID, r.Day, utils.FormatTimestamp(r.CreatedAt)); err != nil {
			return errs.Store("replace all", err)
		}
	}

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return errs.Store("replace all", err)
	}
	defer stmt.Close()
	for key, value := range models.SettingsToMap(snap.Settings) {
		if _, err := stmt.Exec(key, value); err != nil {
			return errs.Store("replace all", err)
		}
	}

	return errs.Store("replace all", tx.Commit())
}
