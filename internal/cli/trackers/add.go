package trackers

import (
	"fmt"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/tracking"
	"github.com/julianstephens/tracklit/internal/tui"
)

type TrackerAddCmd struct {
	Name        string `arg:"" optional:"" help:"Tracker name. Omit to fill in a form."`
	Emoji       string `short:"e" help:"A single emoji." default:"${default_emoji}"`
	Color       string `short:"c" help:"Color as #rrggbb." default:"${default_color}"`
	Category    string `short:"g" help:"Category name; created when missing."`
	Schedule    string `short:"s" help:"Weekdays (mon,wed,fri), 'daily', 'weekdays', 'weekends' or 'none'." default:"daily"`
	Pin         bool   `short:"p" help:"Pin the tracker."`
	Interactive bool   `short:"i" help:"Fill in the tracker with an interactive form."`
}

func (c *TrackerAddCmd) Run(ctx *cli.Context) error {
	var in tracking.TrackerInput
	if c.Interactive || c.Name == "" {
		cats, err := categoryNames(ctx)
		if err != nil {
			return err
		}
		values := tui.TrackerFormValues{Emoji: c.Emoji, Color: c.Color, Category: c.Category, Schedule: c.Schedule, Name: c.Name}
		if err := tui.NewTrackerForm(&values, cats).Run(); err != nil {
			return fmt.Errorf("form aborted: %w", err)
		}
		if in, err = values.Input(); err != nil {
			return err
		}
	} else {
		sched, err := models.ParseSchedule(c.Schedule)
		if err != nil {
			return fmt.Errorf("invalid schedule: %w", err)
		}
		in = tracking.TrackerInput{
			Name:         c.Name,
			Emoji:        c.Emoji,
			Color:        c.Color,
			CategoryName: c.Category,
			Schedule:     sched,
		}
	}

	return ctx.WithLock("tracker add", func() error {
		t, err := ctx.Service.CreateTracker(in)
		if err != nil {
			return err
		}
		if c.Pin {
			if err := ctx.Service.SetPinned(t.ID, true); err != nil {
				return err
			}
		}
		ctx.Printer().Success("Added tracker: %s %s (ID: %s)", t.Emoji, t.Name, t.ID)
		return nil
	})
}

func categoryNames(ctx *cli.Context) ([]string, error) {
	cats, err := ctx.Service.Categories()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names, nil
}
