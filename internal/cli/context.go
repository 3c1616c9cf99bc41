package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/julianstephens/tracklit/internal/backup"
	"github.com/julianstephens/tracklit/internal/config"
	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/lock"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/storage"
	"github.com/julianstephens/tracklit/internal/tracking"
	"github.com/julianstephens/tracklit/internal/utils"
)

type Context struct {
	Store   storage.Provider
	Service *tracking.Service
	Target  config.Target

	// Out and In default to the terminal; tests swap them for buffers.
	Out io.Writer
	In  io.Reader
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return color.Output
	}
	return c.Out
}

func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// Printer returns a Printer writing to Stdout.
func (c *Context) Printer() *Printer {
	p := &Printer{w: c.Stdout()}
	if c.Service != nil {
		p.emptyDue = c.Service.Settings().EmptyScheduleDue
	}
	return p
}

// IsPostgres reports whether the open store is the PostgreSQL backend.
func (c *Context) IsPostgres() bool {
	if c.Target.Value != "" {
		return c.Target.IsPostgres()
	}
	return storage.IsPostgres(c.Store.GetConfigPath())
}

// ConfigDir is where the lock file and backups for the open store live.
func (c *Context) ConfigDir() string {
	if c.Target.Value != "" {
		return c.Target.ConfigDir()
	}
	return config.Target{Value: c.Store.GetConfigPath()}.ConfigDir()
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if c.IsPostgres() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// WithLock runs fn while holding the process lock, so a running TUI and a CLI
// write never interleave.
func (c *Context) WithLock(holder string, fn func() error) error {
	l, err := lock.Acquire(lock.Path(c.ConfigDir()), holder)
	if err != nil {
		if lock.IsHeld(err) {
			return fmt.Errorf("%w (close it before running write commands)", err)
		}
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()
	return fn()
}

// Confirm asks a yes/no question on Stdin. Anything but y/yes is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(c.Stdout(), "%s [y/N]: ", prompt)
	reader := bufio.NewReader(c.Stdin())
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// ResolveDay turns a --date argument into a day in the reference calendar.
// Accepts "", "today", "yesterday", a relative "-N" and YYYY-MM-DD.
func (c *Context) ResolveDay(s string) (time.Time, error) {
	today := c.Service.Today()
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	if strings.HasPrefix(s, "-") {
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 0 {
			return time.Time{}, errs.Validation("date", "invalid relative day %q", s)
		}
		return today.AddDate(0, 0, -n), nil
	}
	day, err := utils.ParseDay(s, c.Service.Location())
	if err != nil {
		return time.Time{}, errs.Validation("date", "%v", err)
	}
	return day, nil
}
