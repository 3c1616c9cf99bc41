package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/julianstephens/tracklit/internal/backup"
	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/stats"
	"github.com/julianstephens/tracklit/internal/tracking"
)

const shortIDLen = 8

var (
	titleColor = color.New(color.Bold, color.Underline)
	faint      = color.New(color.Faint)
	bold       = color.New(color.Bold)
	doneColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
)

// Printer renders command output as tables and status lines.
type Printer struct {
	w        io.Writer
	emptyDue bool // Settings.EmptyScheduleDue, for schedule labels
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer { return &Printer{w: w} }

// ShortID trims a uuid for display. FindTracker accepts the prefix back.
func ShortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func (p *Printer) Title(title string) {
	_, _ = titleColor.Fprintln(p.w, title)
}

func (p *Printer) TitleWithCount(title string, count int) {
	_, _ = titleColor.Fprint(p.w, title)
	_, _ = faint.Fprintf(p.w, " - %d\n", count)
}

func (p *Printer) Success(format string, args ...interface{}) {
	_, _ = doneColor.Fprint(p.w, "✓ ")
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Warn(format string, args ...interface{}) {
	_, _ = warnColor.Fprint(p.w, "⚠ ")
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) None() {
	_, _ = color.New(color.Faint, color.Italic).Fprint(p.w, " none\n\n")
}

func (p *Printer) table(tbl *uitable.Table) {
	fmt.Fprintln(p.w, tbl)
}

// Trackers lists trackers in catalog order.
func (p *Printer) Trackers(trackers []models.Tracker) {
	p.TitleWithCount("Trackers", len(trackers))
	if len(trackers) == 0 {
		p.None()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), "", bold.Sprint("Name"), bold.Sprint("Category"), bold.Sprint("Schedule"), bold.Sprint("Color"), "")
	for _, t := range trackers {
		category := t.CategoryName
		if category == "" {
			category = faint.Sprint("-")
		}
		pin := ""
		if t.IsPinned {
			pin = "📌"
		}
		tbl.AddRow(faint.Sprint(ShortID(t.ID)), t.Emoji, t.Name, category, t.Schedule.Describe(p.emptyDue), t.Color.String(), pin)
	}
	p.table(tbl)
}

// View prints the sectioned tracker list for one day.
func (p *Printer) View(v tracking.View) {
	header := fmt.Sprintf("%s  [%s]", v.Day, v.Filter)
	if v.Query != "" {
		header += fmt.Sprintf("  search %q", v.Query)
	}
	p.Title(header)

	if v.Empty() {
		if v.Total == 0 {
			p.Line("No trackers yet. Add one with 'tracklit tracker add'.")
		} else {
			p.None()
		}
		return
	}

	for _, sec := range v.Sections {
		p.Line("")
		_, _ = bold.Fprintln(p.w, sec.Title)
		tbl := uitable.New()
		tbl.Separator = " "
		for _, t := range sec.Trackers {
			mark := faint.Sprint("[ ]")
			if v.Completed.Has(t.ID) {
				mark = doneColor.Sprint("[✓]")
			}
			tbl.AddRow(" ", mark, t.Emoji, t.Name, faint.Sprint(ShortID(t.ID)))
		}
		p.table(tbl)
	}
}

// Statistics prints the aggregate metrics.
func (p *Printer) Statistics(s stats.Snapshot) {
	p.Title("Statistics")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Completed trackers", s.TotalCompletions)
	tbl.AddRow("Best period", pluralDays(s.BestStreak))
	tbl.AddRow("Perfect days", s.PerfectDays)
	tbl.AddRow("Average per active day", s.AveragePerActiveDay)
	tbl.AddRow(faint.Sprint("Active days"), faint.Sprint(s.ActiveDays))
	tbl.AddRow(faint.Sprint("Trackers"), faint.Sprint(s.ActiveTrackers))
	tbl.RightAlign(1)
	p.table(tbl)
}

// TrackerDetail prints one tracker with its counters.
func (p *Printer) TrackerDetail(t models.Tracker, sum stats.TrackerSummary) {
	p.Title(strings.TrimSpace(t.Emoji + " " + t.Name))
	tbl := uitable.New()
	tbl.Separator = "  "
	category := t.CategoryName
	if category == "" {
		category = constants.UncategorizedLabel
	}
	tbl.AddRow("ID", t.ID)
	tbl.AddRow("Category", category)
	tbl.AddRow("Schedule", t.Schedule.Describe(p.emptyDue))
	tbl.AddRow("Color", t.Color.String())
	tbl.AddRow("Pinned", t.IsPinned)
	tbl.AddRow("Completed", pluralDays(sum.CompletedDays))
	tbl.AddRow("Current streak", pluralDays(sum.CurrentStreak))
	tbl.AddRow("Best streak", pluralDays(sum.BestStreak))
	p.table(tbl)
}

// Month prints a Monday-first calendar of month, highlighting days in done
// and underlining today.
func (p *Printer) Month(month time.Time, done map[string]bool, today string) {
	const width = len("11 12 13 14 15 16 17")

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	name := first.Format("January 2006")
	mid := (width - len(name)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = color.New(color.Italic).Fprintf(p.w, "%s%s\n", strings.Repeat(" ", mid), name)
	_, _ = faint.Fprintln(p.w, "Mo Tu We Th Fr Sa Su")

	off := int(models.WeekdayOf(first.Weekday()))
	fmt.Fprint(p.w, strings.Repeat("   ", off))

	days := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, first.Location()).Day()
	for i := 1; i <= days; i++ {
		key := first.AddDate(0, 0, i-1).Format(constants.DateFormat)
		c := faint
		if done[key] {
			c = doneColor
		}
		if key == today {
			c = color.New(color.Underline, color.Bold)
			if done[key] {
				c = color.New(color.Underline, color.Bold, color.FgGreen)
			}
		}
		_, _ = c.Fprintf(p.w, "%2d", i)
		off++
		if off%models.DaysInWeek == 0 {
			fmt.Fprint(p.w, "\n")
		} else {
			fmt.Fprint(p.w, " ")
		}
	}
	fmt.Fprint(p.w, "\n\n")
}

// Categories lists categories with tracker counts.
func (p *Printer) Categories(cats []tracking.CategorySummary) {
	p.TitleWithCount("Categories", len(cats))
	if len(cats) == 0 {
		p.None()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, c := range cats {
		tbl.AddRow(c.Name, faint.Sprintf("%d trackers", c.Trackers))
	}
	p.table(tbl)
}

// Settings prints the user-facing settings.
func (p *Printer) Settings(s models.Settings, loc *time.Location) {
	p.Title("Settings")
	tbl := uitable.New()
	tbl.Separator = "  "
	tz := s.Timezone
	if loc != nil && loc.String() != tz {
		tz = fmt.Sprintf("%s (%s)", tz, loc)
	}
	tbl.AddRow(constants.SettingTimezone, tz)
	tbl.AddRow(constants.SettingEmptyScheduleDue, s.EmptyScheduleDue)
	tbl.AddRow(constants.SettingAllowFutureCompletions, s.AllowFutureCompletions)
	p.table(tbl)
}

// Backups lists backups newest first.
func (p *Printer) Backups(backups []backup.BackupInfo, dir string) {
	if len(backups) == 0 {
		p.Line("No backups found.")
		p.Line("Backups are stored in: %s", dir)
		return
	}
	p.Line("Available backups (%d total, keeping most recent %d):", len(backups), constants.MaxBackups)
	p.Line("")
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, b := range backups {
		tbl.AddRow(" ", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), faint.Sprintf("(%.1f KB)", float64(b.Size)/1024.0))
	}
	p.table(tbl)
	p.Line("")
	p.Line("Backup directory: %s", dir)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
