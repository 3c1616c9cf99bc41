package trackers

import (
	"fmt"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/tracking"
)

type TrackerEditCmd struct {
	Ref        string  `arg:"" help:"Tracker id, id prefix or name."`
	Name       *string `short:"n" help:"New name."`
	Emoji      *string `short:"e" help:"New emoji."`
	Color      *string `short:"c" help:"New color as #rrggbb."`
	Category   *string `short:"g" help:"New category name." xor:"category"`
	NoCategory bool    `help:"Make the tracker uncategorized." xor:"category"`
	Schedule   *string `short:"s" help:"New schedule."`
}

func (c *TrackerEditCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Service.FindTracker(c.Ref)
	if err != nil {
		return err
	}

	in := tracking.TrackerInput{
		Name:         t.Name,
		Emoji:        t.Emoji,
		Color:        t.Color.String(),
		CategoryName: t.CategoryName,
		Schedule:     t.Schedule,
	}
	updated := false
	if c.Name != nil {
		in.Name = *c.Name
		updated = true
	}
	if c.Emoji != nil {
		in.Emoji = *c.Emoji
		updated = true
	}
	if c.Color != nil {
		in.Color = *c.Color
		updated = true
	}
	if c.Category != nil {
		in.CategoryName = *c.Category
		updated = true
	}
	if c.NoCategory {
		in.CategoryName = ""
		updated = true
	}
	if c.Schedule != nil {
		sched, err := models.ParseSchedule(*c.Schedule)
		if err != nil {
			return fmt.Errorf("invalid schedule: %w", err)
		}
		in.Schedule = sched
		updated = true
	}

	out := ctx.Printer()
	if !updated {
		out.Line("No changes specified.")
		return nil
	}

	return ctx.WithLock("tracker edit", func() error {
		t, err := ctx.Service.UpdateTracker(t.ID, in)
		if err != nil {
			return err
		}
		out.Success("Updated tracker: %s %s (ID: %s)", t.Emoji, t.Name, t.ID)
		return nil
	})
}
