package completions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tracklit/internal/cli/clitest"
	errs "github.com/julianstephens/tracklit/internal/errors"
)

func TestMarkAndUnmark(t *testing.T) {
	env := clitest.New(t)
	run := env.Add(t, "Run", "")
	read := env.Add(t, "Read", "")
	svc := env.Ctx.Service

	require.NoError(t, (&MarkCmd{Refs: []string{"Run", "read"}}).Run(env.Ctx))
	out := env.Output()
	assert.Contains(t, out, "Run done on 2024-01-10")
	assert.Contains(t, out, "Read done on 2024-01-10")

	require.NoError(t, (&MarkCmd{Refs: []string{"Run"}}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "Run already done on 2024-01-10")

	require.NoError(t, (&UnmarkCmd{Refs: []string{"Read"}}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "Read cleared on 2024-01-10")

	require.NoError(t, (&UnmarkCmd{Refs: []string{"Read"}, Date: "yesterday"}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "Read was not done on 2024-01-09")

	done, err := svc.HasCompletion(run.ID, svc.Today())
	require.NoError(t, err)
	assert.True(t, done)
	done, err = svc.HasCompletion(read.ID, svc.Today())
	require.NoError(t, err)
	assert.False(t, done)
}

func TestMarkRejects(t *testing.T) {
	env := clitest.New(t)
	env.Add(t, "Run", "")

	err := (&MarkCmd{Refs: []string{"Run"}, Date: "2024-01-11"}).Run(env.Ctx)
	assert.True(t, errs.IsValidation(err), "future days are rejected by default")

	err = (&MarkCmd{Refs: []string{"Walk"}}).Run(env.Ctx)
	assert.True(t, errs.IsNotFound(err))

	err = (&MarkCmd{Refs: []string{"Run"}, Date: "soon"}).Run(env.Ctx)
	assert.True(t, errs.IsValidation(err))

	records, err := env.Ctx.Service.AllCompletions()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestToggleCmd(t *testing.T) {
	env := clitest.New(t)
	run := env.Add(t, "Run", "")

	require.NoError(t, (&ToggleCmd{Ref: "Run", Date: "-2"}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "Run done on 2024-01-08")

	require.NoError(t, (&ToggleCmd{Ref: "Run", Date: "2024-01-08"}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "Run not done on 2024-01-08")

	records, err := env.Ctx.Service.CompletionsFor(run.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTodayCmd(t *testing.T) {
	env := clitest.New(t)

	require.NoError(t, (&TodayCmd{Filter: "all"}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "No trackers yet.")

	run := env.Add(t, "Run", "Health")
	env.Add(t, "Read", "")
	_, err := env.Ctx.Service.SetCompletion(run.ID, env.Ctx.Service.Today(), true)
	require.NoError(t, err)

	require.NoError(t, (&TodayCmd{Filter: "all"}).Run(env.Ctx))
	out := env.Output()
	assert.Contains(t, out, "2024-01-10  [all]")
	assert.Contains(t, out, "Health")
	assert.Contains(t, out, "[✓]")
	assert.Contains(t, out, "[ ]")

	require.NoError(t, (&TodayCmd{Filter: "done"}).Run(env.Ctx))
	out = env.Output()
	assert.Contains(t, out, "[completed]")
	assert.Contains(t, out, "Run")
	assert.NotContains(t, out, "Read")

	require.NoError(t, (&TodayCmd{Filter: "all", Search: "rea"}).Run(env.Ctx))
	out = env.Output()
	assert.Contains(t, out, `search "rea"`)
	assert.Contains(t, out, "Read")
	assert.NotContains(t, out, "Run")

	require.NoError(t, (&TodayCmd{Filter: "all", Search: "zzz"}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "none")

	require.NoError(t, (&TodayCmd{Filter: "completed", Date: "yesterday"}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "2024-01-09")

	assert.Error(t, (&TodayCmd{Filter: "weekly"}).Run(env.Ctx))
}

func TestStatsCmd(t *testing.T) {
	env := clitest.New(t)
	run := env.Add(t, "Run", "")
	for _, d := range []string{"-2", "-1", "today"} {
		day, err := env.Ctx.ResolveDay(d)
		require.NoError(t, err)
		_, err = env.Ctx.Service.SetCompletion(run.ID, day, true)
		require.NoError(t, err)
	}

	require.NoError(t, (&StatsCmd{}).Run(env.Ctx))
	out := env.Output()
	assert.Contains(t, out, "Statistics")
	assert.Contains(t, out, "Completed trackers")
	assert.Contains(t, out, "3 days")
}
