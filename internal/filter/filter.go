// Package filter derives view subsets of trackers. Everything here is pure and
// works on in-memory slices; callers pass the completion facts in.
package filter

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/julianstephens/tracklit/internal/models"
)

// Kind selects which trackers a view keeps.
type Kind int

const (
	All Kind = iota
	DueToday
	Completed
	NotCompleted
)

var kindNames = map[Kind]string{
	All:          "all",
	DueToday:     "today",
	Completed:    "completed",
	NotCompleted: "not-completed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Next cycles through Kinds.
func (k Kind) Next() Kind {
	kinds := Kinds()
	for i, kind := range kinds {
		if kind == k {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return All
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{All, DueToday, Completed, NotCompleted}
}

// ParseKind accepts the String form plus a few aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "today", "due", "due-today":
		return DueToday, nil
	case "completed", "done":
		return Completed, nil
	case "not-completed", "notcompleted", "todo", "pending":
		return NotCompleted, nil
	}
	names := make([]string, 0, len(kindNames))
	for _, k := range Kinds() {
		names = append(names, k.String())
	}
	return All, fmt.Errorf("unknown filter %q (want one of %s)", s, strings.Join(names, ", "))
}

// IDSet is a set of tracker ids.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Add(id string) { s[id] = struct{}{} }

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Options tunes the ambiguous cases of Apply.
type Options struct {
	// EmptyScheduleDue makes trackers without a schedule pass DueToday.
	// By default they are excluded because no weekday is literally scheduled.
	EmptyScheduleDue bool
}

// Apply keeps the trackers matching kind on referenceDay. completed holds the ids
// completed on referenceDay; it may be nil for All and DueToday.
func Apply(trackers []models.Tracker, kind Kind, referenceDay time.Time, completed IDSet, opts Options) []models.Tracker {
	if kind == All {
		return trackers
	}

	out := make([]models.Tracker, 0, len(trackers))
	for _, t := range trackers {
		var keep bool
		switch kind {
		case DueToday:
			keep = t.IsDueOn(referenceDay, opts.EmptyScheduleDue)
		case Completed:
			keep = completed.Has(t.ID)
		case NotCompleted:
			keep = !completed.Has(t.ID)
		default:
			keep = true
		}
		if keep {
			out = append(out, t)
		}
	}
	return out
}

// Search keeps trackers whose name contains query, compared under Unicode case
// folding. A blank query means search is inactive and returns trackers unchanged.
func Search(trackers []models.Tracker, query string) []models.Tracker {
	query = strings.TrimSpace(query)
	if query == "" {
		return trackers
	}

	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]models.Tracker, 0, len(trackers))
	for _, t := range trackers {
		if strings.Contains(fold.String(t.Name), needle) {
			out = append(out, t)
		}
	}
	return out
}
