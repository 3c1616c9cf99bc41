package sqlite

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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTracker(row rowScanner) (models.Tracker, error) {
	var t models.Tracker
	var color, createdAt, updatedAt string
	var category sql.NullString
	var mask int
	var pinned bool

	if err := row.Scan(&t.ID, &t.Name, &t.Emoji, &color, &category, &mask, &pinned, &createdAt, &updatedAt); err != nil {
		return models.Tracker{}, err
	}

	sched, err := models.ScheduleFromMask(mask)
	if err != nil {
		return models.Tracker{}, fmt.Errorf("tracker %s: %w", t.ID, err)
	}
	t.Schedule = sched
	t.Color = models.Color(color)
	t.CategoryName = category.String
	t.IsPinned = pinned

	if t.CreatedAt, err = utils.ParseTimestamp(createdAt); err != nil {
		return models.Tracker{}, fmt.Errorf("failed to parse created_at for tracker %s: %w", t.ID, err)
	}
	if t.UpdatedAt, err = utils.ParseTimestamp(updatedAt); err != nil {
		return models.Tracker{}, fmt.Errorf("failed to parse updated_at for tracker %s: %w", t.ID, err)
	}
	return t, nil
}

func nullableCategory(name string) sql.NullString {
	return sql.NullString{String: name, Valid: name != ""}
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
	if _, err := tx.Exec(`
		INSERT INTO trackers (`+trackerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Emoji, string(t.Color), nullableCategory(t.CategoryName), t.Schedule.Mask(), t.IsPinned,
		utils.FormatTimestamp(t.CreatedAt), utils.FormatTimestamp(t.UpdatedAt)); err != nil {
		return errs.Store("add tracker", err)
	}
	return errs.Store("add tracker", tx.Commit())
}

// registerCategory inserts the category row for a tracker write. Blank names
// mean uncategorized and are skipped.
func registerCategory(tx *sql.Tx, name string, at time.Time) error {
	if name == "" {
		return nil
	}
	_, err := tx.Exec("INSERT OR IGNORE INTO categories (name, created_at) VALUES (?, ?)", name, utils.FormatTimestamp(at))
	return err
}

func (s *Store) GetTracker(id string) (models.Tracker, error) {
	row := s.db.QueryRow("SELECT "+trackerColumns+" FROM trackers WHERE id = ?", id)
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
		SET name = ?, emoji = ?, color = ?, category_name = ?, schedule_mask = ?, is_pinned = ?, updated_at = ?
		WHERE id = ?`,
		t.Name, t.Emoji, string(t.Color), nullableCategory(t.CategoryName), t.Schedule.Mask(), t.IsPinned,
		utils.FormatTimestamp(t.UpdatedAt), t.ID)
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
	tx, err := s.db.Begin()
	if err != nil {
		return false, errs.Store("delete tracker", err)
	}
	defer tx.Rollback()

	// The foreign key cascades too; the explicit delete keeps databases opened
	// without the pragma consistent.
	if _, err := tx.Exec("DELETE FROM completion_records WHERE tracker_id = ?", id); err != nil {
		return false, errs.Store("delete tracker", err)
	}
	res, err := tx.Exec("DELETE FROM trackers WHERE id = ?", id)
	if err != nil {
		return false, errs.Store("delete tracker", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errs.Store("delete tracker", err)
	}
	if err := tx.Commit(); err != nil {
		return false, errs.Store("delete tracker", err)
	}
	return n > 0, nil
}
