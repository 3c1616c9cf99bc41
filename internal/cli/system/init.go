package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/storage"
	"github.com/julianstephens/tracklit/internal/storage/postgres"
	"github.com/julianstephens/tracklit/internal/tracking"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy trackers and completions from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	out := ctx.Printer()

	// If force flag is provided, delete existing database
	if c.Force && !ctx.IsPostgres() {
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first so the file is not held open while deleting
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			out.Line("Deleted existing database at: %s", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	out.Line("Initialized tracklit storage at: %s", ctx.Target.Display())
	if ctx.Target.Value == "" {
		out.Line("  %s", ctx.Store.GetConfigPath())
	}

	if c.Source != "" {
		out.Line("Copying data from: %s", c.Source)
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		out.Success("Migration completed successfully!")
	}

	return nil
}

// copyData moves everything from the source store into the freshly initialized
// destination through a snapshot, so the destination runs the same validation
// and day normalization as an import.
func (c *InitCmd) copyData(ctx *cli.Context) error {
	if storage.IsPostgres(c.Source) {
		if valid, err := postgres.ValidateConnString(c.Source); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
	}

	src := storage.New(c.Source)
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	srcSvc, err := tracking.New(src)
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	snap, err := srcSvc.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to read source database: %w", err)
	}

	dst := ctx.Service
	if dst == nil {
		if dst, err = tracking.New(ctx.Store); err != nil {
			return err
		}
		ctx.Service = dst
	}
	res, err := dst.Restore(snap)
	if err != nil {
		return err
	}

	out := ctx.Printer()
	out.Line("  Copied %d categories", len(snap.Categories))
	out.Line("  Copied %d trackers", len(snap.Trackers))
	out.Line("  Copied %d completions", len(snap.Records)-res.Duplicates)
	if res.Rewritten > 0 || res.Duplicates > 0 {
		out.Line("  Normalized %d days, merged %d duplicates", res.Rewritten, res.Duplicates)
	}
	return nil
}
