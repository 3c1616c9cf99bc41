package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/utils"
)

const trackerColumns = "id, name, emoji, color, category_name, schedule_mask, is_pinned, created_at, updated_at"

const insertTracker = `
	INSERT INTO trackers (` + trackerColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTracker(row rowScanner) (models.Tracker, error) {
	var t models.Tracker
	var color, createdAt, updatedAt string
	var category sql.NullString
	var mask int

	if err := row.Scan(&t.ID, &t.Name, &t.Emoji, &color, &category, &mask, &t.IsPinned, &createdAt, &updatedAt); err != nil {
		return models.Tracker{}, err
	}

	sched, err := models.ScheduleFromMask(mask)
	if err != nil {
		return models.Tracker{}, fmt.Errorf("tracker %s: %w", t.ID, err)
	}
	t.Schedule = sched
	t.Color = models.Color(color)
	t.CategoryName = category.String

	if t.CreatedAt, err = utils.ParseTimestamp(createdAt); err != nil {
		return models.Tracker{}, fmt.Errorf("failed to parse created_at for tracker %s: %w", t.ID, err)
	}
	if t.UpdatedAt, err = utils.ParseTimestamp(updatedAt); err != nil {
		return models.Tracker{}, fmt.Errorf("failed to parse updated_at for tracker %s: %w", t.ID, err)
	}
	return t, nil
}

func trackerArgs(t models.Tracker) []any {
	return []any{
		t.ID, t.Name, t.Emoji, string(t.Color),
		sql.NullString{String: t.CategoryName, Valid: t.CategoryName != ""},
		t.Schedule.Mask(), t.IsPinned,
		utils.FormatTimestamp(t.CreatedAt), utils.FormatTimestamp(t.UpdatedAt),
	}
}

func (s *Store) AddTracker(t models.Tracker) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errs.Store("add tracker", err)
	}
	defer tx.Rollback()

	if err := registerCategory(tx, t.CategoryName, t.CreatedAt); err != nil {
		return errs.Store("add tracker", err)
	}
	if _, err := tx.Exec(insertTracker, trackerArgs(t)...); err != nil {
		return errs.Store("add tracker", err)
	}
	return errs.Store("add tracker", tx.Commit())
}

func registerCategory(tx *sql.Tx, name string, at time.Time) error {
	if name == "" {
		return nil
	}
	_, err := tx.Exec(insertCategory, name, utils.FormatTimestamp(at))
	return err
}

func (s *Store) GetTracker(id string) (models.Tracker, error) {
	row := s.db.QueryRow("SELECT "+trackerColumns+" FROM trackers WHERE id = $1", id)
	t, err := scanTracker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tracker{}, errs.NotFound("tracker", id)
	}
	return t, errs.Store("get tracker", err)
}

func (s *Store) GetAllTrackers() ([]models.Tracker, error) {
	rows, err := s.db.Query("SELECT " + trackerColumns + " FROM trackers ORDER BY created_at, id")
	if err != nil {
		return nil, errs.Store("list trackers", err)
	}
	defer rows.Close()

	var trackers []models.Tracker
	for rows.Next() {
		t, err := scanTracker(rows)
		if err != nil {
			return nil, errs.Store("list trackers", err)
		}
		trackers = append(trackers, t)
	}
	return trackers, errs.Store("list trackers", rows.Err())
}

func (s *Store) UpdateTracker(t models.Tracker) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errs.Store("update tracker", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE trackers
		SET name = $1, emoji = $2, color = $3, category_name = $4, schedule_mask = $5, is_pinned = $6, updated_at = $7
		WHERE id = $8`,
		t.Name, t.Emoji, string(t.Color),
		sql.NullString{String: t.CategoryName, Valid: t.CategoryName != ""},
		t.Schedule.Mask(), t.IsPinned, utils.FormatTimestamp(t.UpdatedAt), t.ID)
	if err != nil {
		return errs.Store("update tracker", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errs.Store("update tracker", err)
	}
	if n == 0 {
		return errs.NotFound("tracker", t.ID)
	}
	if err := registerCategory(tx, t.CategoryName, t.UpdatedAt); err != nil {
		return errs.Store("update tracker", err)
	}
	return errs.Store("update tracker", tx.Commit())
}

func (s *Store) DeleteTracker(id string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM trackers WHERE id = $1", id)
	if err != nil {
		return false, errs.Store("delete tracker", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errs.Store("delete tracker", err)
	}
	return n > 0, nil
}
