// Package config resolves where tracklit keeps its data and loads the optional
// JSONC config file that pre-fills command line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/mitchellh/go-homedir"
	"github.com/tailscale/hujson"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/keyring"
	"github.com/julianstephens/tracklit/internal/storage/postgres"
)

const (
	databaseFileName = constants.AppName + ".db"
	configFileName   = "config.jsonc"
)

// Source records where the storage target came from.
type Source int

const (
	SourceDefault Source = iota
	SourceFlag
	SourceEnv
	SourceKeyring
)

func (s Source) String() string {
	switch s {
	case SourceFlag:
		return "flag"
	case SourceEnv:
		return "environment"
	case SourceKeyring:
		return "keyring"
	}
	return "default"
}

// Target is the resolved storage location: a SQLite file path or a PostgreSQL
// connection string.
type Target struct {
	Value  string
	Source Source
}

// IsPostgres reports whether the target selects the PostgreSQL backend.
func (t Target) IsPostgres() bool { return postgres.IsConnString(t.Value) }

// ConfigDir is where logs, backups and the lock file live. For SQLite it is the
// directory holding the database so that several databases do not share state.
func (t Target) ConfigDir() string {
	if t.IsPostgres() {
		return DefaultConfigDir()
	}
	return filepath.Dir(t.Value)
}

// Display returns the target with any password masked.
func (t Target) Display() string {
	if t.IsPostgres() {
		return MaskPassword(t.Value)
	}
	return t.Value
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/tracklit.
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, constants.AppName)
}

// DefaultDatabasePath returns the SQLite file used when nothing else is configured.
func DefaultDatabasePath() string {
	return filepath.Join(DefaultConfigDir(), databaseFileName)
}

// DefaultConfigFile returns the JSONC config file location.
func DefaultConfigFile() string {
	return filepath.Join(DefaultConfigDir(), configFileName)
}

// ConfigFiles lists the config files kong should consult, most specific first.
// $TRACKLIT_CONFIG wins over the default location.
func ConfigFiles() []string {
	var files []string
	if p := os.Getenv(constants.EnvConfigFile); p != "" {
		files = append(files, p)
	}
	return append(files, DefaultConfigFile())
}

// ExpandPath expands a leading ~ and cleans the result.
func ExpandPath(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("failed to expand %q: %w", p, err)
	}
	return filepath.Clean(expanded), nil
}

// Resolver supplies the lookups used by Resolve so tests can stub them.
type Resolver struct {
	LookupEnv  func(string) (string, bool)
	KeyringGet func() (string, error)
}

// DefaultResolver reads the process environment and the OS keyring.
func DefaultResolver() Resolver {
	return Resolver{LookupEnv: os.LookupEnv, KeyringGet: keyring.GetConnectionString}
}

// Resolve picks the storage target. Precedence: the --db flag, then
// $TRACKLIT_DB_CONNECTION, then a connection string stored in the keyring, then
// the default SQLite path. Connection strings given on the command line must not
// embed a password; the environment and the keyring may.
func (r Resolver) Resolve(flag string) (Target, error) {
	if flag != "" {
		if postgres.IsConnString(flag) {
			if _, err := postgres.ValidateConnString(flag); err != nil {
				return Target{}, err
			}
			return Target{Value: flag, Source: SourceFlag}, nil
		}
		path, err := ExpandPath(flag)
		if err != nil {
			return Target{}, err
		}
		return Target{Value: path, Source: SourceFlag}, nil
	}

	if r.LookupEnv != nil {
		if v, ok := r.LookupEnv(constants.EnvDBConnection); ok && v != "" {
			if !postgres.IsConnString(v) {
				return Target{}, fmt.Errorf("%s must be a postgres:// connection string", constants.EnvDBConnection)
			}
			return Target{Value: v, Source: SourceEnv}, nil
		}
	}

	if r.KeyringGet != nil {
		v, err := r.KeyringGet()
		switch {
		case err == nil && v != "":
			return Target{Value: v, Source: SourceKeyring}, nil
		case err != nil && !errors.Is(err, keyring.ErrNotFound) && !errors.Is(err, keyring.ErrKeyringUnavailable):
			return Target{}, err
		}
	}

	return Target{Value: DefaultDatabasePath(), Source: SourceDefault}, nil
}

// JSONC is a kong.ConfigurationLoader for JSON with comments and trailing commas.
func JSONC(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC config: %w", err)
	}
	return kong.JSON(bytes.NewReader(standardized))
}
