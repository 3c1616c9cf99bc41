package postgres

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

	if _, err := tx.Exec("TRUNCATE completion_records, trackers, categories"); err != nil {
		return errs.Store("replace all", err)
	}

	for _, c := range snap.Categories {
		if _, err := tx.Exec(insertCategory, c.Name, utils.FormatTimestamp(c.CreatedAt)); err != nil {
			return errs.Store("replace all", err)
		}
	}
	for _, t := range snap.Trackers {
		if _, err := tx.Exec(insertTracker, trackerArgs(t)...); err != nil {
			return errs.Store("replace all", err)
		}
	}
	for _, r := range snap.Records {
		if _, err := tx.Exec(insertCompletion, r.ID, r.TrackerID, r.Day, utils.FormatTimestamp(r.CreatedAt)); err != nil {
			return errs.Store("replace all", err)
		}
	}
	for key, value := range models.SettingsToMap(snap.Settings) {
		if _, err := tx.Exec(upsertSetting, key, value); err != nil {
			return errs.Store("replace all", err)
		}
	}

	return errs.Store("replace all", tx.Commit())
}
