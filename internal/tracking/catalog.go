package tracking

import (
	"strings"

	"github.com/julianstephens/tracklit/internal/constants"
	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/grouping"
	"github.com/julianstephens/tracklit/internal/models"
)

// TrackerInput carries the user-editable fields of a tracker. Empty Emoji and
// Color fall back to the defaults.
type TrackerInput struct {
	Name         string
	Emoji        string
	Color        string
	CategoryName string
	Schedule     models.Schedule
}

func (in TrackerInput) normalize() (TrackerInput, models.Color, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Emoji = strings.TrimSpace(in.Emoji)
	in.CategoryName = strings.TrimSpace(in.CategoryName)

	if in.Name == "" {
		return in, "", errs.Validation("name", "cannot be empty")
	}
	if in.Emoji == "" {
		in.Emoji = constants.DefaultEmoji
	}
	if err := models.ValidateEmoji(in.Emoji); err != nil {
		return in, "", errs.Validation("emoji", "%v", err)
	}
	if strings.TrimSpace(in.Color) == "" {
		in.Color = constants.DefaultColor
	}
	color, err := models.ParseColor(in.Color)
	if err != nil {
		return in, "", errs.Validation("color", "%v", err)
	}
	if _, err := models.ScheduleFromMask(int(in.Schedule)); err != nil {
		return in, "", errs.Validation("schedule", "%v", err)
	}
	return in, color, nil
}

// CreateTracker validates in, assigns a new id and persists the tracker. The
// category is registered if it does not exist yet.
func (s *Service) CreateTracker(in TrackerInput) (models.Tracker, error) {
	t, err := func() (models.Tracker, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		in, color, err := in.normalize()
		if err != nil {
			return models.Tracker{}, err
		}
		now := s.now()
		t := models.Tracker{
			ID:           s.newID(),
			Name:         in.Name,
			Emoji:        in.Emoji,
			Color:        color,
			CategoryName: in.CategoryName,
			Schedule:     in.Schedule,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.store.AddTracker(t); err != nil {
			return models.Tracker{}, errs.Store("add tracker", err)
		}
		return t, nil
	}()
	if err != nil {
		return models.Tracker{}, err
	}
	s.notify(Change{Kind: TrackerCreated, TrackerID: t.ID, Category: t.CategoryName})
	return t, nil
}

// UpdateTracker overwrites every editable field of tracker id. Pin state and
// creation time are kept.
func (s *Service) UpdateTracker(id string, in TrackerInput) (models.Tracker, error) {
	t, err := func() (models.Tracker, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		current, err := s.store.GetTracker(id)
		if err != nil {
			return models.Tracker{}, errs.Store("get tracker", err)
		}
		in, color, err := in.normalize()
		if err != nil {
			return models.Tracker{}, err
		}
		current.Name = in.Name
		current.Emoji = in.Emoji
		current.Color = color
		current.CategoryName = in.CategoryName
		current.Schedule = in.Schedule
		current.UpdatedAt = s.now()
		if err := s.store.UpdateTracker(current); err != nil {
			return models.Tracker{}, errs.Store("update tracker", err)
		}
		return current, nil
	}()
	if err != nil {
		return models.Tracker{}, err
	}
	s.notify(Change{Kind: TrackerUpdated, TrackerID: t.ID, Category: t.CategoryName})
	return t, nil
}

// DeleteTracker removes the tracker and all of its completion records in one
// transaction. Unknown ids are a no-op.
func (s *Service) DeleteTracker(id string) error {
	removed, err := func() (bool, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		removed, err := s.store.DeleteTracker(id)
		return removed, errs.Store("delete tracker", err)
	}()
	if err != nil {
		return err
	}
	if removed {
		s.notify(Change{Kind: TrackerDeleted, TrackerID: id})
	}
	return nil
}

// SetPinned sets the pin state. Unknown ids are a no-op.
func (s *Service) SetPinned(id string, pinned bool) error {
	return s.updatePin(id, func(bool) bool { return pinned })
}

// TogglePinned flips the pin state. Unknown ids are a no-op.
func (s *Service) TogglePinned(id string) error {
	return s.updatePin(id, func(cur bool) bool { return !cur })
}

func (s *Service) updatePin(id string, next func(bool) bool) error {
	changed, err := func() (bool, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		t, err := s.store.GetTracker(id)
		if errs.IsNotFound(err) {
			return false, nil
		}
		if err != nil {
			return false, errs.Store("get tracker", err)
		}
		pinned := next(t.IsPinned)
		if pinned == t.IsPinned {
			return false, nil
		}
		t.IsPinned = pinned
		t.UpdatedAt = s.now()
		return true, errs.Store("update tracker", s.store.UpdateTracker(t))
	}()
	if err != nil {
		return err
	}
	if changed {
		s.notify(Change{Kind: TrackerUpdated, TrackerID: id})
	}
	return nil
}

// IsPinned reports the pin state; unknown ids are not pinned.
func (s *Service) IsPinned(id string) (bool, error) {
	t, err := s.Tracker(id)
	if errs.IsNotFound(err) {
		return false, nil
	}
	return t.IsPinned, err
}

// Tracker returns one tracker by id.
func (s *Service) Tracker(id string) (models.Tracker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.store.GetTracker(id)
	return t, errs.Store("get tracker", err)
}

// FindTracker resolves a user reference: an exact id, a unique id prefix, or a
// case-insensitive exact name.
func (s *Service) FindTracker(ref string) (models.Tracker, error) {
	ref = strings.TrimSpace(ref)
	all, err := s.AllTrackers()
	if err != nil {
		return models.Tracker{}, err
	}

	var byPrefix, byName []models.Tracker
	for _, t := range all {
		if t.ID == ref {
			return t, nil
		}
		if ref != "" && strings.HasPrefix(t.ID, ref) {
			byPrefix = append(byPrefix, t)
		}
		if strings.EqualFold(t.Name, ref) {
			byName = append(byName, t)
		}
	}
	switch {
	case len(byName) == 1:
		return byName[0], nil
	case len(byPrefix) == 1:
		return byPrefix[0], nil
	case len(byName) > 1 || len(byPrefix) > 1:
		return models.Tracker{}, errs.Validation("tracker", "%q is ambiguous, use the id", ref)
	}
	return models.Tracker{}, errs.NotFound("tracker", ref)
}

// AllTrackers returns every tracker in catalog order.
func (s *Service) AllTrackers() ([]models.Tracker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	trackers, err := s.store.GetAllTrackers()
	return trackers, errs.Store("list trackers", err)
}

// TrackersInCategory returns the trackers whose category equals name, pinned or not.
func (s *Service) TrackersInCategory(name string) ([]models.Tracker, error) {
	all, err := s.AllTrackers()
	if err != nil {
		return nil, err
	}
	var out []models.Tracker
	for _, t := range all {
		if t.CategoryName == name {
			out = append(out, t)
		}
	}
	return out, nil
}

// GroupedByCategory partitions the catalog into pinned and per-category groups.
func (s *Service) GroupedByCategory() (grouping.Grouped, error) {
	all, err := s.AllTrackers()
	if err != nil {
		return grouping.Grouped{}, err
	}
	return grouping.Group(all), nil
}
