package filter

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/tracklit/internal/models"
)

// 2024-01-03 is a Wednesday.
var wednesday = time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

func names(trackers []models.Tracker) []string {
	out := make([]string, 0, len(trackers))
	for _, t := range trackers {
		out = append(out, t.Name)
	}
	return out
}

func fixtures() []models.Tracker {
	return []models.Tracker{
		{ID: "1", Name: "Morning Run", Schedule: models.NewSchedule(models.Monday, models.Wednesday)},
		{ID: "2", Name: "Read", Schedule: models.WeekendSchedule},
		{ID: "3", Name: "Stretch", Schedule: 0},
		{ID: "4", Name: "ÉCRIRE", Schedule: models.EveryDay},
	}
}

func TestApply(t *testing.T) {
	completed := NewIDSet("2", "4")

	tests := []struct {
		name string
		kind Kind
		opts Options
		want []string
	}{
		{"all is identity", All, Options{}, []string{"Morning Run", "Read", "Stretch", "ÉCRIRE"}},
		{"due today excludes empty schedule", DueToday, Options{}, []string{"Morning Run", "ÉCRIRE"}},
		{"due today with empty schedule due", DueToday, Options{EmptyScheduleDue: true}, []string{"Morning Run", "Stretch", "ÉCRIRE"}},
		{"completed", Completed, Options{}, []string{"Read", "ÉCRIRE"}},
		{"not completed", NotCompleted, Options{}, []string{"Morning Run", "Stretch"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Apply(fixtures(), tt.kind, wednesday, completed, tt.opts))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyCompletedAndNotCompletedPartition(t *testing.T) {
	completed := NewIDSet("1", "3")
	done := Apply(fixtures(), Completed, wednesday, completed, Options{})
	todo := Apply(fixtures(), NotCompleted, wednesday, completed, Options{})
	if len(done)+len(todo) != len(fixtures()) {
		t.Errorf("completed (%d) + not completed (%d) != total", len(done), len(todo))
	}
}

func TestApplyNilCompletedSet(t *testing.T) {
	got := Apply(fixtures(), NotCompleted, wednesday, nil, Options{})
	if len(got) != len(fixtures()) {
		t.Errorf("nil set should mark nothing completed, got %d trackers", len(got))
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Morning Run", "Read", "Stretch", "ÉCRIRE"}},
		{"   ", []string{"Morning Run", "Read", "Stretch", "ÉCRIRE"}},
		{"run", []string{"Morning Run"}},
		{"  RUN ", []string{"Morning Run"}},
		{"écrire", []string{"ÉCRIRE"}},
		{"e", []string{"Read", "Stretch", "ÉCRIRE"}},
		{"xyz", []string{}},
	}
	for _, tt := range tests {
		got := names(Search(fixtures(), tt.query))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Search(%q) mismatch (-want +got):\n%s", tt.query, diff)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", k.String(), got, err, k)
		}
	}
	_, err := ParseKind("sometimes")
	if err == nil {
		t.Fatal("expected error for unknown filter")
	}
	if !strings.Contains(err.Error(), "all, today, completed, not-completed") {
		t.Errorf("error should list the kinds, got %q", err)
	}
}

func TestKindNextCycles(t *testing.T) {
	k := All
	for i := 0; i < len(Kinds()); i++ {
		k = k.Next()
	}
	if k != All {
		t.Errorf("cycling through all kinds should return to All, got %v", k)
	}
}
