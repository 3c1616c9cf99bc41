// Package grouping partitions trackers into the sectioned view shown to users:
// pinned trackers first, then one section per category.
//
// Pinned is a boolean partition decided before any labeling, so a category that
// happens to be named like the pinned label never captures pinned trackers.
package grouping

import (
	"sort"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/models"
)

// Labels holds the display titles for the synthetic sections.
type Labels struct {
	Pinned        string
	Uncategorized string
}

// DefaultLabels returns the English titles.
func DefaultLabels() Labels {
	return Labels{
		Pinned:        constants.PinnedLabel,
		Uncategorized: constants.UncategorizedLabel,
	}
}

// Grouped is the partition of a tracker list. Catalog order is kept inside every group.
type Grouped struct {
	Pinned     []models.Tracker
	ByCategory map[string][]models.Tracker // "" holds uncategorized trackers
}

// Section is one titled group in presentation order.
type Section struct {
	Key      string // category name; "" for uncategorized and for the pinned section
	Title    string
	Pinned   bool
	Trackers []models.Tracker
}

// Group splits trackers into the pinned partition and per-category lists.
func Group(trackers []models.Tracker) Grouped {
	g := Grouped{ByCategory: make(map[string][]models.Tracker)}
	for _, t := range trackers {
		if t.IsPinned {
			g.Pinned = append(g.Pinned, t)
			continue
		}
		g.ByCategory[t.CategoryName] = append(g.ByCategory[t.CategoryName], t)
	}
	return g
}

// Categories returns the non-empty category keys sorted ascending. The
// uncategorized key "" sorts before every name.
func (g Grouped) Categories() []string {
	keys := make([]string, 0, len(g.ByCategory))
	for k, list := range g.ByCategory {
		if len(list) == 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sections returns the presentation order: the pinned section (if any) first,
// then the categories from Categories. Empty groups are omitted.
func (g Grouped) Sections(labels Labels) []Section {
	var sections []Section
	if len(g.Pinned) > 0 {
		sections = append(sections, Section{Title: labels.Pinned, Pinned: true, Trackers: g.Pinned})
	}
	for _, key := range g.Categories() {
		title := key
		if key == "" {
			title = labels.Uncategorized
		}
		sections = append(sections, Section{Key: key, Title: title, Trackers: g.ByCategory[key]})
	}
	return sections
}

// Map returns the label to trackers mapping. If a category shares its title with
// the pinned label, its trackers follow the pinned ones under that title.
func (g Grouped) Map(labels Labels) map[string][]models.Tracker {
	out := make(map[string][]models.Tracker)
	for _, s := range g.Sections(labels) {
		out[s.Title] = append(out[s.Title], s.Trackers...)
	}
	return out
}

// Len returns the number of trackers across all groups.
func (g Grouped) Len() int {
	n := len(g.Pinned)
	for _, list := range g.ByCategory {
		n += len(list)
	}
	return n
}

// Flatten returns the trackers in section order.
func Flatten(sections []Section) []models.Tracker {
	var out []models.Tracker
	for _, s := range sections {
		out = append(out, s.Trackers...)
	}
	return out
}
