package system

import (
	"fmt"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/storage"
	"github.com/julianstephens/tracklit/internal/tracking"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	out := ctx.Printer()

	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}

	count, err := migrator.Migrate(func(msg string) {
		out.Line("%s", msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		out.Line("No migrations to apply. Database is up to date.")
	} else {
		out.Line("")
		out.Line("Successfully applied %d migration(s).", count)
	}

	// Opening the service runs the one-time completion day normalization.
	svc, err := tracking.New(ctx.Store)
	if err != nil {
		return err
	}
	res, err := svc.Normalize()
	if err != nil {
		return err
	}
	if res.Changed() {
		out.Line("Normalized %d completion days, removed %d duplicates.", res.Rewritten, res.Duplicates)
	}
	if len(res.Invalid) > 0 {
		out.Warn("%d completion records have unreadable days; run 'tracklit doctor' for details.", len(res.Invalid))
	}
	ctx.Service = svc
	return nil
}
