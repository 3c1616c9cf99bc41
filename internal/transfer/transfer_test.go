package transfer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
)

func sampleSnapshot() models.Snapshot {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return models.Snapshot{
		Version:    models.SnapshotVersion,
		ExportedAt: at,
		Settings:   models.Settings{Timezone: "Europe/Berlin", EmptyScheduleDue: true},
		Categories: []models.Category{{Name: "Sport", CreatedAt: at}},
		Trackers: []models.Tracker{{
			ID: "t1", Name: "Run <fast>", Emoji: "🏃", Color: "#ff0000", CategoryName: "Sport",
			Schedule: models.WeekdaysSchedule, IsPinned: true, CreatedAt: at, UpdatedAt: at,
		}},
		Records: []models.CompletionRecord{{ID: "r1", TrackerID: "t1", Day: "2024-01-02", CreatedAt: at}},
	}
}

func TestWriteThenReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "export.json")
	want := sampleSnapshot()

	require.NoError(t, WriteFile(path, want))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Run <fast>", "HTML is not escaped")
	assert.NotContains(t, string(raw), "day_normalization_version")

	got, err := ReadFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "nope"},
		{"unknown field", `{"version": 1, "extra": true}`},
		{"missing version", `{"trackers": []}`},
		{"future version", `{"version": 99}`},
		{"trailing data", `{"version": 1} {"version": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errs.IsValidation(err))
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
