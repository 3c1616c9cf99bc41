package postgres

import (
	"database/sql"
	"errors"

	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/utils"
)

const insertCompletion = `
	INSERT INTO completion_records (id, tracker_id, day, created_at) VALUES ($1, $2, $3, $4)
	ON CONFLICT (tracker_id, day) DO NOTHING`

func (s *Store) queryCompletions(op, where string, args ...any) ([]models.CompletionRecord, error) {
	rows, err := s.db.Query("SELECT id, tracker_id, day, created_at FROM completion_records "+where+" ORDER BY day, tracker_id", args...)
	if err != nil {
		return nil, errs.Store(op, err)
	}
	defer rows.Close()

	var records []models.CompletionRecord
	for rows.Next() {
		var r models.CompletionRecord
		var createdAt string
		if err := rows.Scan(&r.ID, &r.TrackerID, &r.Day, &createdAt); err != nil {
			return nil, errs.Store(op, err)
		}
		if r.CreatedAt, err = utils.ParseTimestamp(createdAt); err != nil {
			return nil, errs.Store(op, err)
		}
		records = append(records, r)
	}
	return records, errs.Store(op, rows.Err())
}

func (s *Store) GetAllCompletions() ([]models.CompletionRecord, error) {
	return s.queryCompletions("list completions", "")
}

func (s *Store) GetCompletionsForTracker(trackerID string) ([]models.CompletionRecord, error) {
	return s.queryCompletions("list tracker completions", "WHERE tracker_id = $1", trackerID)
}

func (s *Store) GetCompletionsForDay(day string) ([]models.CompletionRecord, error) {
	return s.queryCompletions("list day completions", "WHERE day = $1", day)
}

func (s *Store) GetCompletionsInRange(startDay, endDay string) ([]models.CompletionRecord, error) {
	return s.queryCompletions("list range completions", "WHERE day >= $1 AND day < $2", startDay, endDay)
}

func (s *Store) HasCompletion(trackerID, day string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM completion_records WHERE tracker_id = $1 AND day = $2", trackerID, day).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errs.Store("has completion", err)
	}
	return true, nil
}

func (s *Store) AddCompletion(r models.CompletionRecord) error {
	_, err := s.db.Exec(insertCompletion, r.ID, r.TrackerID, r.Day, utils.FormatTimestamp(r.CreatedAt))
	return errs.Store("add completion", err)
}

func (s *Store) DeleteCompletion(trackerID, day string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM completion_records WHERE tracker_id = $1 AND day = $2", trackerID, day)
	if err != nil {
		return false, errs.Store("delete completion", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errs.Store("delete completion", err)
	}
	return n > 0, nil
}

// ToggleCompletion relies on the (tracker_id, day) unique constraint: a racing
// insert from another session makes ours a no-op instead of a duplicate.
func (s *Store) ToggleCompletion(r models.CompletionRecord) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, errs.Store("toggle completion", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM completion_records WHERE tracker_id = $1 AND day = $2", r.TrackerID, r.Day)
	if err != nil {
		return false, errs.Store("toggle completion", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, errs.Store("toggle completion", err)
	}

	if removed == 0 {
		if _, err := tx.Exec(insertCompletion, r.ID, r.TrackerID, r.Day, utils.FormatTimestamp(r.CreatedAt)); err != nil {
			return false, errs.Store("toggle completion", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, errs.Store("toggle completion", err)
	}
	return removed == 0, nil
}
