package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/tracklit/internal/backup"
	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/keyring"
	"github.com/julianstephens/tracklit/internal/lock"
	"github.com/julianstephens/tracklit/internal/storage"
	"github.com/julianstephens/tracklit/internal/tracking"
	"github.com/julianstephens/tracklit/internal/utils"
)

type DoctorCmd struct {
	Fix bool `help:"Normalize legacy completion days and remove duplicates."`
}

type severity int

const (
	fail severity = iota
	warn
)

type check struct {
	name    string
	level   severity
	needsDB bool
	run     func(ctx *cli.Context) error
}

func (cmd *DoctorCmd) checks() []check {
	return []check{
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Settings", needsDB: true, run: checkSettings},
		{name: "Tracker integrity", needsDB: true, run: checkTrackers},
		{name: "Completion days", needsDB: true, run: checkCompletionDays},
		{name: "Completion duplicates", needsDB: true, run: checkDuplicates},
		{name: "Orphaned completions", needsDB: true, run: checkOrphans},
		{name: "Backups present", level: warn, run: checkBackupsPresent},
		{name: "Lock file", level: warn, run: checkLock},
		{name: "Keyring", level: warn, run: checkKeyring},
	}
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Printer()
	out.Line("Running diagnostics...")
	out.Line("")

	if cmd.Fix {
		if err := cmd.fix(ctx); err != nil {
			out.Line("❌ Fix: FAIL")
			out.Line("   Error: %v", err)
		}
	}

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		out.Line("❌ Database reachable: FAIL")
		out.Line("   Error: %v", err)
		hasError = true
	} else {
		out.Line("✓ Database reachable: OK")
		dbReachable = true
	}

	for _, c := range cmd.checks() {
		if c.needsDB && !dbReachable {
			out.Line("⊘ %s: SKIPPED (database not reachable)", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case errors.Is(err, errSkipped):
			out.Line("⊘ %s: SKIPPED (%s)", c.name, strings.TrimPrefix(err.Error(), errSkipped.Error()+": "))
		case err == nil:
			out.Line("✓ %s: OK", c.name)
		case c.level == warn:
			out.Line("⚠ %s: WARNING", c.name)
			out.Line("   %v", err)
		default:
			out.Line("❌ %s: FAIL", c.name)
			out.Line("   Error: %v", err)
			hasError = true
		}
	}

	out.Line("")
	if hasError {
		out.Line("Some checks failed. Run 'tracklit doctor --fix' or 'tracklit migrate' to repair what can be repaired.")
		return fmt.Errorf("diagnostics failed")
	}
	out.Line("All checks passed.")
	return nil
}

var errSkipped = errors.New("skipped")

func skipped(reason string) error { return fmt.Errorf("%w: %s", errSkipped, reason) }

func (cmd *DoctorCmd) fix(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	svc := ctx.Service
	if svc == nil {
		var err error
		if svc, err = tracking.New(ctx.Store); err != nil {
			return err
		}
		ctx.Service = svc
	}
	return ctx.WithLock("doctor", func() error {
		res, err := svc.Normalize()
		if err != nil {
			return err
		}
		ctx.Printer().Line("Fixed: %d days rewritten, %d duplicates removed, %d unreadable", res.Rewritten, res.Duplicates, len(res.Invalid))
		ctx.Printer().Line("")
		return nil
	})
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	_, err := ctx.Store.GetSettings()
	return err
}

func checkSchemaVersion(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return skipped("backend has no versioned schema")
	}
	current, latest, err := migrator.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		pending, err := migrator.PendingMigrations()
		if err != nil {
			return err
		}
		return fmt.Errorf("%d migrations pending (schema version %d, latest is %d): run 'tracklit migrate'", pending, current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if _, err := utils.LoadLocation(settings.Timezone); err != nil {
		return err
	}
	return nil
}

func checkTrackers(ctx *cli.Context) error {
	trackers, err := ctx.Store.GetAllTrackers()
	if err != nil {
		return err
	}
	var bad []string
	for _, t := range trackers {
		if err := t.Validate(); err != nil {
			bad = append(bad, fmt.Sprintf("%s (%v)", cli.ShortID(t.ID), err))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%d invalid trackers: %s", len(bad), strings.Join(bad, ", "))
	}
	return nil
}

func checkCompletionDays(ctx *cli.Context) error {
	records, err := ctx.Store.GetAllCompletions()
	if err != nil {
		return err
	}
	n := 0
	for _, r := range records {
		if !utils.IsNormalizedDay(r.Day) {
			n++
		}
	}
	if n > 0 {
		return fmt.Errorf("%d completion records use a legacy day format", n)
	}
	return nil
}

func checkDuplicates(ctx *cli.Context) error {
	records, err := ctx.Store.GetAllCompletions()
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(records))
	dups := 0
	for _, r := range records {
		key := r.TrackerID + "|" + r.Day
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	if dups > 0 {
		return fmt.Errorf("%d duplicate completion records", dups)
	}
	return nil
}

func checkOrphans(ctx *cli.Context) error {
	trackers, err := ctx.Store.GetAllTrackers()
	if err != nil {
		return err
	}
	ids := make(map[string]struct{}, len(trackers))
	for _, t := range trackers {
		ids[t.ID] = struct{}{}
	}
	records, err := ctx.Store.GetAllCompletions()
	if err != nil {
		return err
	}
	orphans := 0
	for _, r := range records {
		if _, ok := ids[r.TrackerID]; !ok {
			orphans++
		}
	}
	if orphans > 0 {
		return fmt.Errorf("%d completion records reference deleted trackers", orphans)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.IsPostgres() {
		return skipped("PostgreSQL backups are managed by the server")
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
	}
	return nil
}

func checkLock(ctx *cli.Context) error {
	info, err := lock.Check(lock.Path(ctx.ConfigDir()))
	if err != nil {
		return err
	}
	if info != nil {
		return fmt.Errorf("held by %s (pid %d) since %s", info.Holder, info.PID, info.Acquired.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !ctx.IsPostgres() {
		return skipped("not using PostgreSQL")
	}
	if !keyring.CurrentStatus().Available {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
