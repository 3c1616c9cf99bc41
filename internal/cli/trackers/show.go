package trackers

import (
	"time"

	"github.com/julianstephens/tracklit/internal/cli"
	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/utils"
)

const monthLayout = "2006-01"

type TrackerShowCmd struct {
	Ref   string `arg:"" help:"Tracker id, id prefix or name."`
	Month string `short:"m" help:"Month to draw as YYYY-MM. Defaults to the current month."`
}

func (c *TrackerShowCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Service.FindTracker(c.Ref)
	if err != nil {
		return err
	}

	today := ctx.Service.Today()
	month := today
	if c.Month != "" {
		month, err = time.ParseInLocation(monthLayout, c.Month, ctx.Service.Location())
		if err != nil {
			return errs.Validation("month", "expected YYYY-MM, got %q", c.Month)
		}
	}

	sum, err := ctx.Service.TrackerSummary(t.ID, today)
	if err != nil {
		return err
	}
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	records, err := ctx.Service.CompletionsBetween(first, first.AddDate(0, 1, 0))
	if err != nil {
		return err
	}
	done := make(map[string]bool)
	for _, r := range records {
		if r.TrackerID == t.ID {
			done[r.Day] = true
		}
	}

	out := ctx.Printer()
	out.TrackerDetail(t, sum)
	out.Month(month, done, utils.FormatDay(today))
	return nil
}
