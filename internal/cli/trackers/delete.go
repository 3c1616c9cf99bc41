package trackers

import (
	"fmt"

	"github.com/julianstephens/tracklit/internal/cli"
)

type TrackerDeleteCmd struct {
	Ref string `arg:"" help:"Tracker id, id prefix or name."`
	Yes bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *TrackerDeleteCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Service.FindTracker(c.Ref)
	if err != nil {
		return err
	}

	out := ctx.Printer()
	if !c.Yes {
		records, err := ctx.Service.CompletionsFor(t.ID)
		if err != nil {
			return err
		}
		ok, err := ctx.Confirm(fmt.Sprintf("Delete %s %s and its %d completions?", t.Emoji, t.Name, len(records)))
		if err != nil {
			return err
		}
		if !ok {
			out.Line("Delete cancelled.")
			return nil
		}
	}

	return ctx.WithLock("tracker delete", func() error {
		if err := ctx.Service.DeleteTracker(t.ID); err != nil {
			return err
		}
		out.Line("Deleted tracker: %s (ID: %s)", t.Name, t.ID)
		return nil
	})
}
