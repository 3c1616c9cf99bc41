package tracking

import (
	"time"

	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/filter"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/utils"
)

// HasCompletion reports whether trackerID has a record on t's calendar day.
func (s *Service) HasCompletion(trackerID string, t time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.store.GetTracker(trackerID); err != nil {
		return false, errs.Store("get tracker", err)
	}
	ok, err := s.store.HasCompletion(trackerID, utils.DayKey(t, s.loc))
	return ok, errs.Store("has completion", err)
}

// ToggleCompletion flips the completion state of trackerID on t's calendar day
// and returns the new state. The check and the write are one store transaction.
// Only marking is subject to the future-day rule; an existing record can always
// be cleared.
func (s *Service) ToggleCompletion(trackerID string, t time.Time) (bool, error) {
	var day string
	done, err := func() (bool, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, err := s.store.GetTracker(trackerID); err != nil {
			return false, errs.Store("get tracker", err)
		}
		day = utils.DayKey(t, s.loc)
		has, err := s.store.HasCompletion(trackerID, day)
		if err != nil {
			return false, errs.Store("has completion", err)
		}
		if !has {
			if err := s.checkMarkable(day); err != nil {
				return false, err
			}
		}

		done, err := s.store.ToggleCompletion(s.newRecord(trackerID, day))
		return done, errs.Store("toggle completion", err)
	}()
	if err != nil {
		return false, err
	}
	s.notify(Change{Kind: CompletionChanged, TrackerID: trackerID, Day: day})
	return done, nil
}

// SetCompletion makes the completion state of trackerID on t's day equal done.
// It reports whether anything changed.
func (s *Service) SetCompletion(trackerID string, t time.Time, done bool) (bool, error) {
	var day string
	changed, err := func() (bool, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, err := s.store.GetTracker(trackerID); err != nil {
			return false, errs.Store("get tracker", err)
		}
		day = utils.DayKey(t, s.loc)
		if !done {
			removed, err := s.store.DeleteCompletion(trackerID, day)
			return removed, errs.Store("delete completion", err)
		}

		has, err := s.store.HasCompletion(trackerID, day)
		if err != nil || has {
			return false, errs.Store("has completion", err)
		}
		if err := s.checkMarkable(day); err != nil {
			return false, err
		}
		return true, errs.Store("add completion", s.store.AddCompletion(s.newRecord(trackerID, day)))
	}()
	if err != nil || !changed {
		return false, err
	}
	s.notify(Change{Kind: CompletionChanged, TrackerID: trackerID, Day: day})
	return true, nil
}

func (s *Service) checkMarkable(day string) error {
	if !s.settings.AllowFutureCompletions && s.isFuture(day) {
		return errs.Validation("day", "%s is in the future", day)
	}
	return nil
}

func (s *Service) newRecord(trackerID, day string) models.CompletionRecord {
	return models.CompletionRecord{
		ID:        s.newID(),
		TrackerID: trackerID,
		Day:       day,
		CreatedAt: s.now(),
	}
}

// DeleteCompletion removes the record of trackerID on t's day if there is one.
func (s *Service) DeleteCompletion(trackerID string, t time.Time) error {
	var day string
	removed, err := func() (bool, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, err := s.store.GetTracker(trackerID); err != nil {
			return false, errs.Store("get tracker", err)
		}
		day = utils.DayKey(t, s.loc)
		removed, err := s.store.DeleteCompletion(trackerID, day)
		return removed, errs.Store("delete completion", err)
	}()
	if err != nil {
		return err
	}
	if removed {
		s.notify(Change{Kind: CompletionChanged, TrackerID: trackerID, Day: day})
	}
	return nil
}

// AllCompletions returns the whole ledger ordered by day.
func (s *Service) AllCompletions() ([]models.CompletionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.store.GetAllCompletions()
	return records, errs.Store("list completions", err)
}

// CompletionsFor returns the records of one tracker ordered by day.
func (s *Service) CompletionsFor(trackerID string) ([]models.CompletionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.store.GetTracker(trackerID); err != nil {
		return nil, errs.Store("get tracker", err)
	}
	records, err := s.store.GetCompletionsForTracker(trackerID)
	return records, errs.Store("list tracker completions", err)
}

// CompletionsOn returns the records on t's calendar day.
func (s *Service) CompletionsOn(t time.Time) ([]models.CompletionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.store.GetCompletionsForDay(utils.DayKey(t, s.loc))
	return records, errs.Store("list day completions", err)
}

// CompletionsBetween returns the records from start's day up to, but not
// including, end's day.
func (s *Service) CompletionsBetween(start, end time.Time) ([]models.CompletionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.store.GetCompletionsInRange(utils.DayKey(start, s.loc), utils.DayKey(end, s.loc))
	return records, errs.Store("list range completions", err)
}

// CompletedSet returns the ids of trackers completed on t's calendar day.
func (s *Service) CompletedSet(t time.Time) (filter.IDSet, error) {
	records, err := s.CompletionsOn(t)
	if err != nil {
		return nil, err
	}
	set := filter.NewIDSet()
	for _, r := range records {
		set.Add(r.TrackerID)
	}
	return set, nil
}
