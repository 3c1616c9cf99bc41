package transfers

import (
	"fmt"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/config"
	"github.com/julianstephens/tracklit/internal/transfer"
)

type ExportCmd struct {
	Output string `short:"o" help:"File to write. Prints to stdout when omitted." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Service.Snapshot()
	if err != nil {
		return err
	}
	if c.Output == "" {
		return transfer.Encode(ctx.Stdout(), snap)
	}

	path, err := config.ExpandPath(c.Output)
	if err != nil {
		return err
	}
	if err := transfer.WriteFile(path, snap); err != nil {
		return err
	}
	ctx.Printer().Success("Exported %d trackers and %d completions to %s", len(snap.Trackers), len(snap.Records), path)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Export file to import." type:"existingfile"`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	snap, err := transfer.ReadFile(c.File)
	if err != nil {
		return err
	}

	out := ctx.Printer()
	if !c.Yes {
		out.Warn("Importing replaces every tracker, category and completion.")
		ok, err := ctx.Confirm(fmt.Sprintf("Import %d trackers and %d completions from %s?", len(snap.Trackers), len(snap.Records), c.File))
		if err != nil {
			return err
		}
		if !ok {
			out.Line("Import cancelled.")
			return nil
		}
	}

	return ctx.WithLock("import", func() error {
		ctx.PerformAutomaticBackup()
		res, err := ctx.Service.Restore(snap)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		out.Success("Imported %d trackers and %d completions", len(snap.Trackers), len(snap.Records)-res.Duplicates)
		if res.Rewritten > 0 || res.Duplicates > 0 {
			out.Line("  Normalized %d days, merged %d duplicates", res.Rewritten, res.Duplicates)
		}
		if len(res.Invalid) > 0 {
			out.Warn("%d completions have unreadable days and were kept as is", len(res.Invalid))
		}
		return nil
	})
}
