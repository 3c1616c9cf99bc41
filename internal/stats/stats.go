// Package stats computes aggregate metrics over the completion ledger. Nothing is
// cached: every call recomputes from the records it is given.
package stats

import (
	"sort"
	"time"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/models"
)

// Snapshot is the aggregate view of the whole ledger.
type Snapshot struct {
	TotalCompletions    int `json:"total_completions"`
	BestStreak          int `json:"best_streak"` // consecutive days with any completion
	PerfectDays         int `json:"perfect_days"`
	AveragePerActiveDay int `json:"average_per_active_day"`
	ActiveDays          int `json:"active_days"`
	ActiveTrackers      int `json:"active_trackers"`
}

// TrackerSummary is the per-tracker counter shown next to each tracker.
type TrackerSummary struct {
	CompletedDays int `json:"completed_days"`
	CurrentStreak int `json:"current_streak"`
	BestStreak    int `json:"best_streak"`
}

// Compute aggregates records against the number of trackers that currently exist.
// Records whose day is not a valid YYYY-MM-DD key are ignored for day-based metrics
// but still count toward the total.
func Compute(records []models.CompletionRecord, activeTrackers int) Snapshot {
	snap := Snapshot{
		TotalCompletions: len(records),
		ActiveTrackers:   activeTrackers,
	}
	if len(records) == 0 {
		return snap
	}

	trackersByDay := make(map[string]map[string]struct{})
	for _, r := range records {
		set, ok := trackersByDay[r.Day]
		if !ok {
			set = make(map[string]struct{})
			trackersByDay[r.Day] = set
		}
		set[r.TrackerID] = struct{}{}
	}

	snap.ActiveDays = len(trackersByDay)
	snap.AveragePerActiveDay = snap.TotalCompletions / snap.ActiveDays

	if activeTrackers > 0 {
		for _, set := range trackersByDay {
			if len(set) == activeTrackers {
				snap.PerfectDays++
			}
		}
	}

	days := make([]string, 0, len(trackersByDay))
	for d := range trackersByDay {
		days = append(days, d)
	}
	snap.BestStreak = longestRun(parseDays(days))
	return snap
}

// ForTracker summarizes one tracker's records as of referenceDay (YYYY-MM-DD).
// The current streak counts back from referenceDay, or from the day before when
// referenceDay itself is not completed yet, so an unfinished today does not break it.
func ForTracker(records []models.CompletionRecord, referenceDay string) TrackerSummary {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.Day] = struct{}{}
	}
	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	parsed := parseDays(days)

	summary := TrackerSummary{
		CompletedDays: len(seen),
		BestStreak:    longestRun(parsed),
	}

	ref, err := time.Parse(constants.DateFormat, referenceDay)
	if err != nil {
		return summary
	}
	cursor := ref
	if _, ok := seen[referenceDay]; !ok {
		cursor = ref.AddDate(0, 0, -1)
	}
	for {
		if _, ok := seen[cursor.Format(constants.DateFormat)]; !ok {
			break
		}
		summary.CurrentStreak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return summary
}

// parseDays returns the valid days sorted ascending. Days are parsed as UTC
// midnights so consecutive days are exactly 24h apart.
func parseDays(days []string) []time.Time {
	out := make([]time.Time, 0, len(days))
	for _, d := range days {
		t, err := time.Parse(constants.DateFormat, d)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// longestRun returns the longest run of consecutive calendar days in sorted, distinct days.
func longestRun(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}
	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}
