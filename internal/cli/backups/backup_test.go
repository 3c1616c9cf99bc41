package backups

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tracklit/internal/backup"
	"github.com/julianstephens/tracklit/internal/cli/clitest"
	"github.com/julianstephens/tracklit/internal/config"
	"github.com/julianstephens/tracklit/internal/tracking"
)

func TestBackupCreateAndList(t *testing.T) {
	env := clitest.New(t)

	require.NoError(t, (&BackupListCmd{}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "No backups found.")

	env.Add(t, "Run", "")
	require.NoError(t, (&BackupCreateCmd{}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "✓ Backup created: tracklit-")

	require.NoError(t, (&BackupListCmd{}).Run(env.Ctx))
	out := env.Output()
	assert.Contains(t, out, "Available backups (1 total, keeping most recent 14)")
	assert.Contains(t, out, filepath.Join(filepath.Dir(env.Path), "backups"))
}

func TestBackupRestoreCmd(t *testing.T) {
	env := clitest.New(t)
	run := env.Add(t, "Run", "")

	mgr := backup.NewManager(env.Path)
	backupPath, err := mgr.CreateBackup()
	require.NoError(t, err)

	env.Add(t, "Read", "")

	env.Answer("n\n")
	require.NoError(t, (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath)}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "Restore cancelled.")

	require.NoError(t, (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}).Run(env.Ctx))
	out := env.Output()
	assert.Contains(t, out, "Database restored successfully!")
	assert.Contains(t, out, "Previous database saved as tracklit-")

	require.NoError(t, env.Store.Load())
	svc, err := tracking.New(env.Store)
	require.NoError(t, err)
	all, err := svc.AllTrackers()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, run.ID, all[0].ID)
}

func TestBackupRestoreCmdMissingFile(t *testing.T) {
	env := clitest.New(t)
	err := (&BackupRestoreCmd{BackupFile: "tracklit-nope.db", Yes: true}).Run(env.Ctx)
	assert.ErrorContains(t, err, "backup file not found")
}

func TestBackupsRequireSQLite(t *testing.T) {
	env := clitest.New(t)
	env.Ctx.Target = config.Target{Value: "postgres://localhost/tracklit", Source: config.SourceFlag}

	assert.ErrorContains(t, (&BackupCreateCmd{}).Run(env.Ctx), "only available for SQLite")
	assert.ErrorContains(t, (&BackupListCmd{}).Run(env.Ctx), "only available for SQLite")
}
