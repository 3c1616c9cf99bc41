package grouping

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/tracklit/internal/models"
)

func tr(id, category string, pinned bool) models.Tracker {
	return models.Tracker{ID: id, Name: id, CategoryName: category, IsPinned: pinned}
}

func ids(trackers []models.Tracker) []string {
	out := make([]string, 0, len(trackers))
	for _, t := range trackers {
		out = append(out, t.ID)
	}
	return out
}

func TestGroupPinnedPrecedence(t *testing.T) {
	trackers := []models.Tracker{
		tr("run", "Health", true),
		tr("swim", "Health", false),
		tr("read", "Mind", false),
	}

	g := Group(trackers)

	if diff := cmp.Diff([]string{"run"}, ids(g.Pinned)); diff != "" {
		t.Errorf("pinned mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"swim"}, ids(g.ByCategory["Health"])); diff != "" {
		t.Errorf("Health mismatch (-want +got):\n%s", diff)
	}
	for _, t2 := range g.ByCategory["Health"] {
		if t2.ID == "run" {
			t.Error("pinned tracker must not appear under its own category")
		}
	}
}

func TestSectionsOrder(t *testing.T) {
	trackers := []models.Tracker{
		tr("a", "Zeta", false),
		tr("b", "", false),
		tr("c", "Alpha", false),
		tr("d", "Zeta", true),
		tr("e", "Alpha", false),
		tr("f", "Mid", true),
	}

	sections := Group(trackers).Sections(DefaultLabels())

	type view struct {
		Title  string
		Pinned bool
		IDs    []string
	}
	var got []view
	for _, s := range sections {
		got = append(got, view{s.Title, s.Pinned, ids(s.Trackers)})
	}
	want := []view{
		{"Pinned", true, []string{"d", "f"}},
		{"Uncategorized", false, []string{"b"}},
		{"Alpha", false, []string{"c", "e"}},
		{"Zeta", false, []string{"a"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestSectionsOmitEmptyGroups(t *testing.T) {
	sections := Group([]models.Tracker{tr("a", "Health", false)}).Sections(DefaultLabels())
	if len(sections) != 1 || sections[0].Title != "Health" {
		t.Errorf("expected only the Health section, got %+v", sections)
	}
	if got := Group(nil).Sections(DefaultLabels()); len(got) != 0 {
		t.Errorf("expected no sections for empty input, got %d", len(got))
	}
}

func TestCategoryNamedLikePinnedLabel(t *testing.T) {
	trackers := []models.Tracker{
		tr("fav", "Pinned", false),
		tr("star", "Other", true),
	}
	sections := Group(trackers).Sections(DefaultLabels())
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if !sections[0].Pinned || sections[0].Trackers[0].ID != "star" {
		t.Errorf("first section should be the pinned partition, got %+v", sections[0])
	}
	if sections[1].Pinned || sections[1].Key != "Pinned" {
		t.Errorf("category named Pinned should stay a normal section, got %+v", sections[1])
	}

	m := Group(trackers).Map(DefaultLabels())
	if diff := cmp.Diff([]string{"star", "fav"}, ids(m["Pinned"])); diff != "" {
		t.Errorf("Map mismatch (-want +got):\n%s", diff)
	}
}

func TestCustomLabels(t *testing.T) {
	labels := Labels{Pinned: "Favoris", Uncategorized: "Sans catégorie"}
	sections := Group([]models.Tracker{tr("a", "", true), tr("b", "", false)}).Sections(labels)
	if sections[0].Title != "Favoris" || sections[1].Title != "Sans catégorie" {
		t.Errorf("titles = %q, %q", sections[0].Title, sections[1].Title)
	}
	if sections[1].Key != "" {
		t.Errorf("uncategorized key = %q, want empty", sections[1].Key)
	}
}

func TestLenAndFlatten(t *testing.T) {
	trackers := []models.Tracker{tr("a", "X", false), tr("b", "", true), tr("c", "", false)}
	g := Group(trackers)
	if g.Len() != 3 {
		t.Errorf("Len = %d, want 3", g.Len())
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, ids(Flatten(g.Sections(DefaultLabels())))); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}
}
