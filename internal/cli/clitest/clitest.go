// Package clitest builds command contexts over a throwaway SQLite database.
package clitest

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/config"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/storage/sqlite"
	"github.com/julianstephens/tracklit/internal/tracking"
)

// Now is the fixed clock every Env runs on. 2024-01-10 is a Wednesday.
var Now = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

type Env struct {
	Ctx   *cli.Context
	Out   *bytes.Buffer
	Store *sqlite.Store
	Path  string
}

// New initializes a database in a temp dir with the UTC calendar and opens a
// service on it.
func New(t testing.TB) *Env {
	t.Helper()
	color.NoColor = true

	path := filepath.Join(t.TempDir(), "tracklit.db")
	store := sqlite.NewStore(path)
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	settings, err := store.GetSettings()
	require.NoError(t, err)
	settings.Timezone = "UTC"
	require.NoError(t, store.SaveSettings(settings))

	svc, err := tracking.New(store, tracking.WithClock(func() time.Time { return Now }))
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &Env{
		Ctx: &cli.Context{
			Store:   store,
			Service: svc,
			Target:  config.Target{Value: path, Source: config.SourceFlag},
			Out:     out,
			In:      strings.NewReader(""),
		},
		Out:   out,
		Store: store,
		Path:  path,
	}
}

// Answer queues s as the reply to the next prompts.
func (e *Env) Answer(s string) {
	e.Ctx.In = strings.NewReader(s)
}

// Output returns everything written so far and resets the buffer.
func (e *Env) Output() string {
	s := e.Out.String()
	e.Out.Reset()
	return s
}

// Add creates a daily tracker.
func (e *Env) Add(t testing.TB, name, category string) models.Tracker {
	t.Helper()
	tr, err := e.Ctx.Service.CreateTracker(tracking.TrackerInput{Name: name, CategoryName: category, Schedule: models.EveryDay})
	require.NoError(t, err)
	return tr
}
