package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tracklit/internal/constants"
	errs "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/tracking"
)

// TrackerFormValues backs the add/edit tracker form. Everything is kept as text
// and parsed by Input.
type TrackerFormValues struct {
	Name     string
	Emoji    string
	Color    string
	Category string
	Schedule string
}

// ValuesFor prefills the form from an existing tracker.
func ValuesFor(t models.Tracker) TrackerFormValues {
	return TrackerFormValues{
		Name:     t.Name,
		Emoji:    t.Emoji,
		Color:    t.Color.String(),
		Category: t.CategoryName,
		Schedule: scheduleText(t.Schedule),
	}
}

func scheduleText(s models.Schedule) string {
	switch s {
	case 0:
		return "none"
	case models.EveryDay:
		return "daily"
	}
	return s.String()
}

// Input parses the form values into a tracker input.
func (v TrackerFormValues) Input() (tracking.TrackerInput, error) {
	sched, err := models.ParseSchedule(v.Schedule)
	if err != nil {
		return tracking.TrackerInput{}, errs.Validation("schedule", "%v", err)
	}
	return tracking.TrackerInput{
		Name:         v.Name,
		Emoji:        v.Emoji,
		Color:        v.Color,
		CategoryName: v.Category,
		Schedule:     sched,
	}, nil
}

// NewTrackerForm builds the tracker form over v. categories feed the category
// field's suggestions.
func NewTrackerForm(v *TrackerFormValues, categories []string) *huh.Form {
	if v.Emoji == "" {
		v.Emoji = constants.DefaultEmoji
	}
	if v.Color == "" {
		v.Color = constants.DefaultColor
	}
	if v.Schedule == "" {
		v.Schedule = "daily"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&v.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errs.Validation("name", "cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Emoji").
				Value(&v.Emoji).
				Validate(models.ValidateEmoji),
			huh.NewInput().
				Title("Color").
				Description("#rrggbb").
				Value(&v.Color).
				Validate(func(s string) error {
					_, err := models.ParseColor(s)
					return err
				}),
			huh.NewInput().
				Title("Category").
				Description("Leave empty for none").
				Suggestions(categories).
				Value(&v.Category),
			huh.NewInput().
				Title("Schedule").
				Description("mon,wed,fri / daily / weekdays / weekends / none").
				Value(&v.Schedule).
				Validate(func(s string) error {
					_, err := models.ParseSchedule(s)
					return err
				}),
		),
	).WithShowHelp(true)
}
