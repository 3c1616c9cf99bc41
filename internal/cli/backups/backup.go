package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/tracklit/internal/backup"
	"github.com/julianstephens/tracklit/internal/cli"
)

func manager(ctx *cli.Context) (*backup.Manager, error) {
	if ctx.IsPostgres() {
		return nil, fmt.Errorf("backups are only available for SQLite storage")
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printer().Success("Backup created: %s", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	ctx.Printer().Backups(backups, mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Do not ask for confirmation."`
}

// resolve accepts an absolute path, a path relative to the working directory or
// a file name inside the backup directory.
func (c *BackupRestoreCmd) resolve(mgr *backup.Manager) (string, error) {
	backupPath := c.BackupFile
	if filepath.IsAbs(backupPath) {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			return "", fmt.Errorf("backup file not found: %s", backupPath)
		}
		return backupPath, nil
	}
	if _, err := os.Stat(backupPath); err == nil {
		absPath, err := filepath.Abs(backupPath)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return absPath, nil
	}
	possiblePath := filepath.Join(mgr.GetBackupDir(), c.BackupFile)
	if _, err := os.Stat(possiblePath); err == nil {
		return possiblePath, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", mgr.GetBackupDir())
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backupPath, err := c.resolve(mgr)
	if err != nil {
		return err
	}

	out := ctx.Printer()
	if !c.Yes {
		out.Warn("WARNING: This will replace your current database with the backup.")
		out.Line("A backup of your current database will be created before restoring.")
		out.Line("")
		out.Line("Restore from: %s", backupPath)
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			out.Line("Restore cancelled.")
			return nil
		}
	}

	return ctx.WithLock("backup restore", func() error {
		// Close the current store connection before swapping the file
		if err := ctx.Store.Close(); err != nil {
			out.Warn("failed to close database connection: %v", err)
		}

		safety, err := mgr.RestoreBackup(backupPath)
		if err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}

		out.Success("Database restored successfully!")
		if safety != "" {
			out.Line("  Previous database saved as %s", filepath.Base(safety))
		}
		return nil
	})
}
