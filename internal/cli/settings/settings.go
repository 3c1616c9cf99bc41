package settings

import (
	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/models"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	ctx.Printer().Settings(ctx.Service.Settings(), ctx.Service.Location())
	return nil
}

type SettingsSetCmd struct {
	Timezone               *string `help:"IANA timezone of the reference calendar, or 'Local'."`
	EmptyScheduleDue       *bool   `help:"Count trackers without a schedule as due every day."`
	AllowFutureCompletions *bool   `help:"Allow marking days after today."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	out := ctx.Printer()
	if c.Timezone == nil && c.EmptyScheduleDue == nil && c.AllowFutureCompletions == nil {
		out.Line("No changes specified. Use 'tracklit settings show' to view settings or flags to update them.")
		return nil
	}

	return ctx.WithLock("settings", func() error {
		updated, err := ctx.Service.UpdateSettings(func(s *models.Settings) {
			if c.Timezone != nil {
				s.Timezone = *c.Timezone
			}
			if c.EmptyScheduleDue != nil {
				s.EmptyScheduleDue = *c.EmptyScheduleDue
			}
			if c.AllowFutureCompletions != nil {
				s.AllowFutureCompletions = *c.AllowFutureCompletions
			}
		})
		if err != nil {
			return err
		}
		out.Success("Settings updated successfully.")
		out.Settings(updated, ctx.Service.Location())
		return nil
	})
}
