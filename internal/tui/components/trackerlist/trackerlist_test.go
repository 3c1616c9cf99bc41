package trackerlist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tracklit/internal/filter"
	"github.com/julianstephens/tracklit/internal/grouping"
	"github.com/julianstephens/tracklit/internal/models"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sections() []grouping.Section {
	return []grouping.Section{
		{Title: "Pinned", Pinned: true, Trackers: []models.Tracker{
			{ID: "a", Name: "Read", Emoji: "📚", Schedule: models.EveryDay},
		}},
		{Key: "Health", Title: "Health", Trackers: []models.Tracker{
			{ID: "b", Name: "Run", Emoji: "🏃", Schedule: models.EveryDay},
			{ID: "c", Name: "Stretch", Emoji: "🧘"},
		}},
	}
}

func TestCursorSkipsHeaders(t *testing.T) {
	m := New(80, 20)
	m.SetSections(sections(), nil)

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", sel.ID)
	assert.Equal(t, 3, m.Len())

	m, _ = m.Update(runes("j"))
	sel, _ = m.Selected()
	assert.Equal(t, "b", sel.ID, "moving down should jump over the Health header")

	m, _ = m.Update(runes("G"))
	sel, _ = m.Selected()
	assert.Equal(t, "c", sel.ID)

	m, _ = m.Update(runes("j"))
	sel, _ = m.Selected()
	assert.Equal(t, "c", sel.ID, "cursor stays on the last row")

	m, _ = m.Update(runes("g"))
	sel, _ = m.Selected()
	assert.Equal(t, "a", sel.ID)
}

func TestSetSectionsKeepsSelection(t *testing.T) {
	m := New(80, 20)
	m.SetSections(sections(), nil)
	m, _ = m.Update(runes("j"))
	m, _ = m.Update(runes("j"))

	// "a" is unpinned and now lives under Health.
	m.SetSections([]grouping.Section{
		{Key: "Health", Title: "Health", Trackers: []models.Tracker{
			{ID: "a", Name: "Read"},
			{ID: "c", Name: "Stretch"},
		}},
	}, nil)
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "c", sel.ID)

	m.SetSections(nil, nil)
	_, ok = m.Selected()
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestActionKeysEmitMessages(t *testing.T) {
	m := New(80, 20)
	m.SetSections(sections(), nil)

	tests := []struct {
		name string
		key  tea.KeyMsg
		want tea.Msg
	}{
		{"toggle with space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, ToggleMsg{ID: "a"}},
		{"toggle with x", runes("x"), ToggleMsg{ID: "a"}},
		{"pin", runes("p"), PinMsg{ID: "a"}},
		{"edit", runes("e"), EditMsg{Tracker: sections()[0].Trackers[0]}},
		{"delete", runes("d"), DeleteMsg{Tracker: sections()[0].Trackers[0]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd := m.Update(tt.key)
			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, cmd())
		})
	}
}

func TestActionKeysOnEmptyList(t *testing.T) {
	m := New(80, 20)
	_, cmd := m.Update(runes("x"))
	assert.Nil(t, cmd)
}

func TestView(t *testing.T) {
	m := New(80, 20)
	m.SetEmptyText("Nothing here")
	assert.Contains(t, m.View(), "Nothing here")

	m.SetSections(sections(), filter.NewIDSet("b"))
	view := m.View()
	assert.Contains(t, view, "Pinned")
	assert.Contains(t, view, "Health")
	assert.Contains(t, view, "Run")
	assert.Contains(t, view, "●", "completed tracker should be marked")
	assert.Contains(t, view, "○")
}

func TestEmptyScheduleLabel(t *testing.T) {
	m := New(80, 20)
	m.SetSections(sections(), nil)
	assert.Contains(t, m.View(), "No schedule", "Stretch has no schedule")

	m.SetEmptyScheduleDue(true)
	assert.NotContains(t, m.View(), "No schedule")
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	m := New(80, 2)
	m.SetSections(sections(), nil)
	m, _ = m.Update(runes("G"))

	view := m.View()
	assert.Contains(t, view, "Stretch")
	assert.NotContains(t, view, "Read")
}
