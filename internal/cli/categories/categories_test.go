package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tracklit/internal/cli/clitest"
	errs "github.com/julianstephens/tracklit/internal/errors"
)

func TestCategoryAddAndList(t *testing.T) {
	env := clitest.New(t)
	env.Add(t, "Run", "Health")

	require.NoError(t, (&CategoryAddCmd{Name: "Work"}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "✓ Added category: Work")

	require.NoError(t, (&CategoryListCmd{}).Run(env.Ctx))
	out := env.Output()
	assert.Contains(t, out, "Categories - 2")
	assert.Contains(t, out, "Health")
	assert.Contains(t, out, "1 trackers")
	assert.Contains(t, out, "Work")
	assert.Contains(t, out, "0 trackers")

	err := (&CategoryAddCmd{Name: "  "}).Run(env.Ctx)
	assert.True(t, errs.IsValidation(err))
}

func TestCategoryRenameMerges(t *testing.T) {
	env := clitest.New(t)
	run := env.Add(t, "Run", "Health")
	env.Add(t, "Swim", "Fitness")

	require.NoError(t, (&CategoryRenameCmd{Old: "Health", New: "Fitness"}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "Renamed category Health to Fitness")

	got, err := env.Ctx.Service.Tracker(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fitness", got.CategoryName)

	cats, err := env.Ctx.Service.Categories()
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, 2, cats[0].Trackers)

	err = (&CategoryRenameCmd{Old: "Nope", New: "Other"}).Run(env.Ctx)
	assert.True(t, errs.IsNotFound(err))
}

func TestCategoryDeleteCmd(t *testing.T) {
	env := clitest.New(t)
	run := env.Add(t, "Run", "Health")

	env.Answer("no\n")
	require.NoError(t, (&CategoryDeleteCmd{Name: "Health"}).Run(env.Ctx))
	out := env.Output()
	assert.Contains(t, out, "Its 1 trackers become uncategorized.")
	assert.Contains(t, out, "Delete cancelled.")

	require.NoError(t, (&CategoryDeleteCmd{Name: "Health", Yes: true}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "Deleted category: Health")

	got, err := env.Ctx.Service.Tracker(run.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CategoryName, "trackers survive their category")

	cats, err := env.Ctx.Service.Categories()
	require.NoError(t, err)
	assert.Empty(t, cats)
}
