package tracking

import (
	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/migration"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/utils"
)

// Snapshot reads the whole catalog, ledger and settings in one locked pass.
func (s *Service) Snapshot() (models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.store.GetCategories()
	if err != nil {
		return models.Snapshot{}, errs.Store("list categories", err)
	}
	trackers, err := s.store.GetAllTrackers()
	if err != nil {
		return models.Snapshot{}, errs.Store("list trackers", err)
	}
	records, err := s.store.GetAllCompletions()
	if err != nil {
		return models.Snapshot{}, errs.Store("list completions", err)
	}

	return models.Snapshot{
		Version:    models.SnapshotVersion,
		ExportedAt: s.now().UTC(),
		Settings:   s.settings,
		Categories: categories,
		Trackers:   trackers,
		Records:    records,
	}, nil
}

// Restore replaces everything with snap. Trackers are validated first, records
// pointing at unknown trackers are rejected, and the restored days are
// normalized before returning.
func (s *Service) Restore(snap models.Snapshot) (migration.NormalizeResult, error) {
	res, err := func() (migration.NormalizeResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if err := validateSnapshot(snap); err != nil {
			return migration.NormalizeResult{}, err
		}

		models.ApplyDefaultSettings(&snap.Settings)
		loc, err := utils.LoadLocation(snap.Settings.Timezone)
		if err != nil {
			return migration.NormalizeResult{}, errs.Validation("timezone", "%v", err)
		}
		// Imported records may predate normalization; force the pass below.
		snap.Settings.DayNormalizationVersion = 0

		if err := s.store.ReplaceAll(snap); err != nil {
			return migration.NormalizeResult{}, errs.Store("replace all", err)
		}
		s.settings = snap.Settings
		s.loc = loc
		return s.normalizeLocked()
	}()
	if err != nil {
		return res, err
	}
	s.notify(Change{Kind: DataReplaced})
	return res, nil
}

func validateSnapshot(snap models.Snapshot) error {
	if snap.Version < 1 || snap.Version > models.SnapshotVersion {
		return errs.Validation("version", "unsupported snapshot version %d", snap.Version)
	}

	ids := make(map[string]struct{}, len(snap.Trackers))
	for _, t := range snap.Trackers {
		if t.ID == "" {
			return errs.Validation("tracker", "missing id for %q", t.Name)
		}
		if _, dup := ids[t.ID]; dup {
			return errs.Validation("tracker", "duplicate id %s", t.ID)
		}
		if err := t.Validate(); err != nil {
			return errs.Validation("tracker", "%s: %v", t.ID, err)
		}
		ids[t.ID] = struct{}{}
	}
	for _, c := range snap.Categories {
		if c.Name == "" {
			return errs.Validation("category", "cannot be empty")
		}
	}
	for _, r := range snap.Records {
		if _, ok := ids[r.TrackerID]; !ok {
			return errs.NotFound("tracker", r.TrackerID)
		}
		if r.ID == "" {
			return errs.Validation("record", "missing id for tracker %s", r.TrackerID)
		}
	}
	return nil
}
