package storage

import (
	"github.com/julianstephens/tracklit/internal/storage/postgres"
	"github.com/julianstephens/tracklit/internal/storage/sqlite"
)

// Migrator is implemented by backends with versioned schemas.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
	PendingMigrations() (int, error)
}

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
	_ Migrator = (*sqlite.Store)(nil)
	_ Migrator = (*postgres.Store)(nil)
)

// New returns a PostgreSQL provider for postgres:// URLs and a SQLite provider
// for anything else, treated as a database file path.
func New(target string) Provider {
	if postgres.IsConnString(target) {
		return postgres.New(target)
	}
	return sqlite.NewStore(target)
}

// IsPostgres reports whether target selects the PostgreSQL backend.
func IsPostgres(target string) bool {
	return postgres.IsConnString(target)
}
