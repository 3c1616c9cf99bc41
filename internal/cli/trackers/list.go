package trackers

import (
	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/models"
)

type TrackerListCmd struct {
	Category      string `short:"g" help:"Only list trackers in this category." xor:"category"`
	Uncategorized bool   `help:"Only list uncategorized trackers." xor:"category"`
	Pinned        bool   `help:"Only list pinned trackers."`
}

func (c *TrackerListCmd) Run(ctx *cli.Context) error {
	var (
		trackers []models.Tracker
		err      error
	)
	switch {
	case c.Category != "":
		trackers, err = ctx.Service.TrackersInCategory(c.Category)
	case c.Uncategorized:
		trackers, err = ctx.Service.TrackersInCategory("")
	default:
		trackers, err = ctx.Service.AllTrackers()
	}
	if err != nil {
		return err
	}

	if c.Pinned {
		pinned := trackers[:0]
		for _, t := range trackers {
			if t.IsPinned {
				pinned = append(pinned, t)
			}
		}
		trackers = pinned
	}

	ctx.Printer().Trackers(trackers)
	return nil
}
