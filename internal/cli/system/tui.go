package system

import (
	"fmt"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/lock"
	"github.com/julianstephens/tracklit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	l, err := lock.Acquire(lock.Path(ctx.ConfigDir()), "tui")
	if err != nil {
		if lock.IsHeld(err) {
			return fmt.Errorf("another tracklit session is running: %w", err)
		}
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	if err := tui.Run(ctx.Service); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
