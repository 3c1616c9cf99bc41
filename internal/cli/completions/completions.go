package completions

import (
	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/filter"
	"github.com/julianstephens/tracklit/internal/tracking"
)

type MarkCmd struct {
	Refs []string `arg:"" help:"Tracker ids, id prefixes or names."`
	Date string   `short:"d" help:"Day to mark: YYYY-MM-DD, 'yesterday' or -N days. Defaults to today."`
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	return setCompletions(ctx, c.Refs, c.Date, true)
}

type UnmarkCmd struct {
	Refs []string `arg:"" help:"Tracker ids, id prefixes or names."`
	Date string   `short:"d" help:"Day to unmark: YYYY-MM-DD, 'yesterday' or -N days. Defaults to today."`
}

func (c *UnmarkCmd) Run(ctx *cli.Context) error {
	return setCompletions(ctx, c.Refs, c.Date, false)
}

func setCompletions(ctx *cli.Context, refs []string, date string, done bool) error {
	day, err := ctx.ResolveDay(date)
	if err != nil {
		return err
	}
	key := ctx.Service.DayKey(day)

	out := ctx.Printer()
	return ctx.WithLock("mark", func() error {
		for _, ref := range refs {
			t, err := ctx.Service.FindTracker(ref)
			if err != nil {
				return err
			}
			changed, err := ctx.Service.SetCompletion(t.ID, day, done)
			if err != nil {
				return err
			}
			switch {
			case !changed && done:
				out.Line("%s %s already done on %s", t.Emoji, t.Name, key)
			case !changed:
				out.Line("%s %s was not done on %s", t.Emoji, t.Name, key)
			case done:
				out.Success("%s %s done on %s", t.Emoji, t.Name, key)
			default:
				out.Success("%s %s cleared on %s", t.Emoji, t.Name, key)
			}
		}
		return nil
	})
}

type ToggleCmd struct {
	Ref  string `arg:"" help:"Tracker id, id prefix or name."`
	Date string `short:"d" help:"Day to toggle. Defaults to today."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	t, err := ctx.Service.FindTracker(c.Ref)
	if err != nil {
		return err
	}
	return ctx.WithLock("toggle", func() error {
		done, err := ctx.Service.ToggleCompletion(t.ID, day)
		if err != nil {
			return err
		}
		state := "not done"
		if done {
			state = "done"
		}
		ctx.Printer().Success("%s %s %s on %s", t.Emoji, t.Name, state, ctx.Service.DayKey(day))
		return nil
	})
}

type TodayCmd struct {
	Filter string `short:"f" help:"all, today, completed or not-completed." default:"all"`
	Search string `short:"q" help:"Keep trackers whose name contains this text."`
	Date   string `short:"d" help:"Day to show: YYYY-MM-DD, 'yesterday' or -N days. Defaults to today."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	kind, err := filter.ParseKind(c.Filter)
	if err != nil {
		return err
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	view, err := ctx.Service.View(tracking.ViewRequest{Day: day, Filter: kind, Query: c.Search})
	if err != nil {
		return err
	}
	ctx.Printer().View(view)
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Service.Statistics()
	if err != nil {
		return err
	}
	ctx.Printer().Statistics(snap)
	return nil
}
