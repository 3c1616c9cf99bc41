// Package tracking is the habit engine: the tracker catalog, the completion
// ledger and the derived views, on top of a storage.Provider.
//
// Every public method of Service runs under one mutex, so callers never observe
// interleaved writes. Compound writes run inside a single store transaction.
package tracking

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tracklit/internal/constants"
	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/grouping"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/migration"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/storage"
	"github.com/julianstephens/tracklit/internal/utils"
)

// ChangeKind identifies what a committed write touched.
type ChangeKind int

const (
	TrackerCreated ChangeKind = iota
	TrackerUpdated
	TrackerDeleted
	CompletionChanged
	CategoryChanged
	SettingsChanged
	DataReplaced
)

func (k ChangeKind) String() string {
	switch k {
	case TrackerCreated:
		return "tracker-created"
	case TrackerUpdated:
		return "tracker-updated"
	case TrackerDeleted:
		return "tracker-deleted"
	case CompletionChanged:
		return "completion-changed"
	case CategoryChanged:
		return "category-changed"
	case SettingsChanged:
		return "settings-changed"
	case DataReplaced:
		return "data-replaced"
	}
	return "unknown"
}

// Change is delivered to subscribers after a write commits.
type Change struct {
	Kind      ChangeKind
	TrackerID string
	Day       string
	Category  string
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithLabels sets the titles used for the synthetic sections.
func WithLabels(labels grouping.Labels) Option {
	return func(s *Service) { s.labels = labels }
}

type Service struct {
	mu       sync.Mutex
	store    storage.Provider
	settings models.Settings
	loc      *time.Location
	labels   grouping.Labels
	now      func() time.Time
	newID    func() string

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// New builds a service over an initialized or loaded store. Completion days left
// in a legacy format are normalized once, the first time a new service sees them.
func New(store storage.Provider, opts ...Option) (*Service, error) {
	s := &Service{
		store:  store,
		labels: grouping.DefaultLabels(),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		subs:   make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(s)
	}

	settings, err := store.GetSettings()
	if err != nil {
		return nil, errs.Store("load settings", err)
	}
	models.ApplyDefaultSettings(&settings)
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, errs.Validation("timezone", "%v", err)
	}
	s.settings = settings
	s.loc = loc

	if settings.DayNormalizationVersion < constants.DayNormalizationVersion {
		if _, err := s.normalizeLocked(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Subscribe registers fn to be called after every committed write. Callbacks run
// on the writing goroutine after the service lock is released.
func (s *Service) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Service) notify(c Change) {
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	logger.Debug("Change committed", "kind", c.Kind.String(), "tracker", c.TrackerID, "day", c.Day, "category", c.Category)
	for _, fn := range fns {
		fn(c)
	}
}

// Location returns the reference calendar's timezone.
func (s *Service) Location() *time.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loc
}

// Today returns the start of the current day in the reference calendar.
func (s *Service) Today() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return utils.NormalizeToDay(s.now(), s.loc)
}

// DayKey normalizes t to its YYYY-MM-DD key in the reference calendar.
func (s *Service) DayKey(t time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return utils.DayKey(t, s.loc)
}

// Labels returns the section titles in use.
func (s *Service) Labels() grouping.Labels {
	return s.labels
}

// Settings returns a copy of the current settings.
func (s *Service) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings applies fn to a copy of the settings, validates and persists it.
func (s *Service) UpdateSettings(fn func(*models.Settings)) (models.Settings, error) {
	updated, err := func() (models.Settings, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		next := s.settings
		fn(&next)
		models.ApplyDefaultSettings(&next)
		next.DayNormalizationVersion = s.settings.DayNormalizationVersion

		loc, err := utils.LoadLocation(next.Timezone)
		if err != nil {
			return models.Settings{}, errs.Validation("timezone", "%v", err)
		}
		if err := s.store.SaveSettings(next); err != nil {
			return models.Settings{}, errs.Store("save settings", err)
		}
		s.settings = next
		s.loc = loc
		return next, nil
	}()
	if err != nil {
		return models.Settings{}, err
	}
	s.notify(Change{Kind: SettingsChanged})
	return updated, nil
}

// Normalize rewrites legacy completion days and removes the duplicates that
// collapse onto the same tracker and day.
func (s *Service) Normalize() (migration.NormalizeResult, error) {
	res, err := func() (migration.NormalizeResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.normalizeLocked()
	}()
	if err == nil && res.Changed() {
		s.notify(Change{Kind: DataReplaced})
	}
	return res, err
}

func (s *Service) normalizeLocked() (migration.NormalizeResult, error) {
	res, err := s.store.NormalizeDays(s.loc)
	if err != nil {
		return res, errs.Store("normalize days", err)
	}
	if res.Changed() || len(res.Invalid) > 0 {
		logger.Info("Normalized completion days", "rewritten", res.Rewritten, "duplicates", res.Duplicates, "invalid", len(res.Invalid))
	}

	s.settings.DayNormalizationVersion = constants.DayNormalizationVersion
	if err := s.store.SaveSettings(s.settings); err != nil {
		return res, errs.Store("save settings", err)
	}
	return res, nil
}

// isFuture reports whether key is after today in the reference calendar.
func (s *Service) isFuture(key string) bool {
	return key > utils.DayKey(s.now(), s.loc)
}
