package tracking

import (
	"time"

	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/filter"
	"github.com/julianstephens/tracklit/internal/grouping"
	"github.com/julianstephens/tracklit/internal/stats"
	"github.com/julianstephens/tracklit/internal/utils"
)

// ViewRequest selects the trackers shown for one day.
type ViewRequest struct {
	Day    time.Time // zero means today
	Filter filter.Kind
	Query  string
}

// View is the sectioned tracker list for one day.
type View struct {
	Day       string
	Filter    filter.Kind
	Query     string
	Sections  []grouping.Section
	Completed filter.IDSet
	Total     int // trackers in the catalog before filtering
}

// Empty reports whether no section survived filtering.
func (v View) Empty() bool { return len(v.Sections) == 0 }

// View runs filter, then search, then grouping over one consistent read of the
// catalog and the day's completions.
func (s *Service) View(req ViewRequest) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := req.Day
	if ref.IsZero() {
		ref = s.now()
	}
	day := utils.NormalizeToDay(ref, s.loc)
	key := utils.FormatDay(day)

	trackers, err := s.store.GetAllTrackers()
	if err != nil {
		return View{}, errs.Store("list trackers", err)
	}
	records, err := s.store.GetCompletionsForDay(key)
	if err != nil {
		return View{}, errs.Store("list day completions", err)
	}
	completed := filter.NewIDSet()
	for _, r := range records {
		completed.Add(r.TrackerID)
	}

	visible := filter.Apply(trackers, req.Filter, day, completed, filter.Options{EmptyScheduleDue: s.settings.EmptyScheduleDue})
	visible = filter.Search(visible, req.Query)

	return View{
		Day:       key,
		Filter:    req.Filter,
		Query:     req.Query,
		Sections:  grouping.Group(visible).Sections(s.labels),
		Completed: completed,
		Total:     len(trackers),
	}, nil
}

// Statistics recomputes the aggregate metrics from the whole ledger.
func (s *Service) Statistics() (stats.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trackers, err := s.store.GetAllTrackers()
	if err != nil {
		return stats.Snapshot{}, errs.Store("list trackers", err)
	}
	records, err := s.store.GetAllCompletions()
	if err != nil {
		return stats.Snapshot{}, errs.Store("list completions", err)
	}
	return stats.Compute(records, len(trackers)), nil
}

// TrackerSummary returns the per-tracker counters as of t's calendar day.
func (s *Service) TrackerSummary(trackerID string, t time.Time) (stats.TrackerSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetTracker(trackerID); err != nil {
		return stats.TrackerSummary{}, errs.Store("get tracker", err)
	}
	records, err := s.store.GetCompletionsForTracker(trackerID)
	if err != nil {
		return stats.TrackerSummary{}, errs.Store("list tracker completions", err)
	}
	return stats.ForTracker(records, utils.DayKey(t, s.loc)), nil
}
