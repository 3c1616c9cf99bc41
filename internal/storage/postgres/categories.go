package postgres

import (
	"time"

	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/utils"
)

const insertCategory = "INSERT INTO categories (name, created_at) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING"

func (s *Store) GetCategories() ([]models.Category, error) {
	rows, err := s.db.Query("SELECT name, created_at FROM categories ORDER BY name")
	if err != nil {
		return nil, errs.Store("list categories", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var createdAt string
		if err := rows.Scan(&c.Name, &createdAt); err != nil {
			return nil, errs.Store("list categories", err)
		}
		if c.CreatedAt, err = utils.ParseTimestamp(createdAt); err != nil {
			return nil, errs.Store("list categories", err)
		}
		categories = append(categories, c)
	}
	return categories, errs.Store("list categories", rows.Err())
}

func (s *Store) AddCategory(c models.Category) error {
	_, err := s.db.Exec(insertCategory, c.Name, utils.FormatTimestamp(c.CreatedAt))
	return errs.Store("add category", err)
}

func (s *Store) RenameCategory(oldName, newName string, at time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errs.Store("rename category", err)
	}
	defer tx.Rollback()

	ts := utils.FormatTimestamp(at)
	if _, err := tx.Exec("UPDATE trackers SET category_name = $1, updated_at = $2 WHERE category_name = $3", newName, ts, oldName); err != nil {
		return errs.Store("rename category", err)
	}
	if _, err := tx.Exec("DELETE FROM categories WHERE name = $1", oldName); err != nil {
		return errs.Store("rename category", err)
	}
	if _, err := tx.Exec(insertCategory, newName, ts); err != nil {
		return errs.Store("rename category", err)
	}
	return errs.Store("rename category", tx.Commit())
}

func (s *Store) DeleteCategory(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errs.Store("delete category", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE trackers SET category_name = NULL WHERE category_name = $1", name); err != nil {
		return errs.Store("delete category", err)
	}
	if _, err := tx.Exec("DELETE FROM categories WHERE name = $1", name); err != nil {
		return errs.Store("delete category", err)
	}
	return errs.Store("delete category", tx.Commit())
}
