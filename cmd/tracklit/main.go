package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/cli/backups"
	"github.com/julianstephens/tracklit/internal/cli/categories"
	"github.com/julianstephens/tracklit/internal/cli/completions"
	"github.com/julianstephens/tracklit/internal/cli/settings"
	"github.com/julianstephens/tracklit/internal/cli/system"
	"github.com/julianstephens/tracklit/internal/cli/trackers"
	"github.com/julianstephens/tracklit/internal/cli/transfers"
	"github.com/julianstephens/tracklit/internal/config"
	"github.com/julianstephens/tracklit/internal/constants"
	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/storage"
	"github.com/julianstephens/tracklit/internal/tracking"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `name:"db" help:"SQLite database path or PostgreSQL connection string. Connection strings given here must NOT embed a password; use TRACKLIT_DB_CONNECTION, the OS keyring or .pgpass instead." env:"TRACKLIT_DB"`
	Debug   bool   `help:"Log debug output to stderr." env:"TRACKLIT_DEBUG"`

	Init    system.InitCmd    `cmd:"" help:"Initialize tracklit storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Today  completions.TodayCmd  `cmd:"" help:"Show trackers for a day."`
	Mark   completions.MarkCmd   `cmd:"" help:"Mark trackers done."`
	Unmark completions.UnmarkCmd `cmd:"" help:"Clear trackers' completion."`
	Toggle completions.ToggleCmd `cmd:"" help:"Flip a tracker's completion."`
	Stats  completions.StatsCmd  `cmd:"" help:"Show statistics."`

	Tracker struct {
		Add    trackers.TrackerAddCmd    `cmd:"" help:"Add a new tracker."`
		Edit   trackers.TrackerEditCmd   `cmd:"" help:"Edit an existing tracker."`
		Delete trackers.TrackerDeleteCmd `cmd:"" help:"Delete a tracker and its history."`
		List   trackers.TrackerListCmd   `cmd:"" help:"List trackers." default:"1"`
		Show   trackers.TrackerShowCmd   `cmd:"" help:"Show a tracker with its calendar."`
		Pin    trackers.TrackerPinCmd    `cmd:"" help:"Pin a tracker."`
		Unpin  trackers.TrackerUnpinCmd  `cmd:"" help:"Unpin a tracker."`
	} `cmd:"" help:"Manage trackers."`
	Category struct {
		List   categories.CategoryListCmd   `cmd:"" help:"List categories." default:"1"`
		Add    categories.CategoryAddCmd    `cmd:"" help:"Add an empty category."`
		Rename categories.CategoryRenameCmd `cmd:"" help:"Rename or merge a category."`
		Delete categories.CategoryDeleteCmd `cmd:"" help:"Delete a category, keeping its trackers."`
	} `cmd:"" help:"Manage categories."`
	Settings struct {
		Show settings.SettingsShowCmd `cmd:"" help:"Show settings." default:"1"`
		Set  settings.SettingsSetCmd  `cmd:"" help:"Update settings."`
	} `cmd:"" help:"Manage application settings."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Export transfers.ExportCmd `cmd:"" help:"Export everything as JSON."`
	Import transfers.ImportCmd `cmd:"" help:"Replace everything with an export."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string, password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
}

// Commands that open storage themselves, or never touch it.
var noService = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker: daily completions, streaks and statistics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":       constants.Version,
			"default_emoji": constants.DefaultEmoji,
			"default_color": constants.DefaultColor,
		},
		kong.Configuration(config.JSONC, config.ConfigFiles()...),
	)

	target, err := config.DefaultResolver().Resolve(CLI.DB)
	if err != nil {
		errs.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: target.ConfigDir()}); err != nil {
		errs.Fatal(err)
	}
	logger.Debug("Resolved storage", "target", target.Display(), "source", target.Source.String())

	store := storage.New(target.Value)
	appCtx := &cli.Context{
		Store:  store,
		Target: target,
	}

	command := strings.Fields(ctx.Command())[0]
	if command == "migrate" {
		err = store.Load()
	} else if !noService[command] {
		if err = store.Load(); err == nil {
			appCtx.Service, err = tracking.New(store)
		}
	}
	if err == nil {
		err = ctx.Run(appCtx)
	}

	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close storage", "error", cerr)
	}
	errs.Fatal(err)
}
