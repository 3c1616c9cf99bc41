package tracking

import (
	"sort"
	"strings"

	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
)

// CategorySummary is a category name with the number of trackers holding it.
type CategorySummary struct {
	Name     string `json:"name"`
	Trackers int    `json:"trackers"`
}

// Categories returns every known category: stored rows plus any name still held
// by a tracker, sorted by name.
func (s *Service) Categories() ([]CategorySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoriesLocked()
}

func (s *Service) categoriesLocked() ([]CategorySummary, error) {
	rows, err := s.store.GetCategories()
	if err != nil {
		return nil, errs.Store("list categories", err)
	}
	trackers, err := s.store.GetAllTrackers()
	if err != nil {
		return nil, errs.Store("list trackers", err)
	}

	counts := make(map[string]int, len(rows))
	for _, c := range rows {
		counts[c.Name] = 0
	}
	for _, t := range trackers {
		if t.CategoryName != "" {
			counts[t.CategoryName]++
		}
	}

	out := make([]CategorySummary, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategorySummary{Name: name, Trackers: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Service) hasCategoryLocked(name string) (bool, error) {
	all, err := s.categoriesLocked()
	if err != nil {
		return false, err
	}
	for _, c := range all {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func categoryName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.Validation(field, "cannot be empty")
	}
	return name, nil
}

// AddCategory registers an empty category. Existing names are left as they are.
func (s *Service) AddCategory(name string) error {
	name, err := categoryName("category", name)
	if err != nil {
		return err
	}
	err = func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return errs.Store("add category", s.store.AddCategory(models.Category{Name: name, CreatedAt: s.now()}))
	}()
	if err != nil {
		return err
	}
	s.notify(Change{Kind: CategoryChanged, Category: name})
	return nil
}

// RenameCategory moves every tracker in oldName to newName. Renaming onto an
// existing category merges the two.
func (s *Service) RenameCategory(oldName, newName string) error {
	oldName, err := categoryName("category", oldName)
	if err != nil {
		return err
	}
	newName, err = categoryName("new name", newName)
	if err != nil {
		return err
	}
	if oldName == newName {
		return nil
	}

	err = func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		ok, err := s.hasCategoryLocked(oldName)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NotFound("category", oldName)
		}
		return errs.Store("rename category", s.store.RenameCategory(oldName, newName, s.now()))
	}()
	if err != nil {
		return err
	}
	s.notify(Change{Kind: CategoryChanged, Category: newName})
	return nil
}

// DeleteCategory removes the category; its trackers become uncategorized.
func (s *Service) DeleteCategory(name string) error {
	name, err := categoryName("category", name)
	if err != nil {
		return err
	}

	err = func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		ok, err := s.hasCategoryLocked(name)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NotFound("category", name)
		}
		return errs.Store("delete category", s.store.DeleteCategory(name))
	}()
	if err != nil {
		return err
	}
	s.notify(Change{Kind: CategoryChanged, Category: name})
	return nil
}
