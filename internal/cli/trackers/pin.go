package trackers

import (
	"github.com/julianstephens/tracklit/internal/cli"
)

type TrackerPinCmd struct {
	Ref string `arg:"" help:"Tracker id, id prefix or name."`
}

func (c *TrackerPinCmd) Run(ctx *cli.Context) error {
	return setPinned(ctx, c.Ref, true)
}

type TrackerUnpinCmd struct {
	Ref string `arg:"" help:"Tracker id, id prefix or name."`
}

func (c *TrackerUnpinCmd) Run(ctx *cli.Context) error {
	return setPinned(ctx, c.Ref, false)
}

func setPinned(ctx *cli.Context, ref string, pinned bool) error {
	t, err := ctx.Service.FindTracker(ref)
	if err != nil {
		return err
	}
	return ctx.WithLock("tracker pin", func() error {
		if err := ctx.Service.SetPinned(t.ID, pinned); err != nil {
			return err
		}
		if pinned {
			ctx.Printer().Success("Pinned %s %s", t.Emoji, t.Name)
		} else {
			ctx.Printer().Success("Unpinned %s %s", t.Emoji, t.Name)
		}
		return nil
	})
}
