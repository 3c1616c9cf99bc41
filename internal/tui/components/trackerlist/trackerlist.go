// Package trackerlist renders a sectioned, scrollable tracker list with a cursor
// that only lands on tracker rows.
package trackerlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tracklit/internal/filter"
	"github.com/julianstephens/tracklit/internal/grouping"
	"github.com/julianstephens/tracklit/internal/models"
)

type ToggleMsg struct{ ID string }

type PinMsg struct{ ID string }

type EditMsg struct{ Tracker models.Tracker }

type DeleteMsg struct{ Tracker models.Tracker }

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Toggle key.Binding
	Pin    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter", "x"),
			key.WithHelp("space", "toggle done"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin/unpin"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

var (
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).MarginTop(1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	scheduleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// row is either a section header or a tracker line.
type row struct {
	header  string
	tracker *models.Tracker
}

type Model struct {
	keys      KeyMap
	rows      []row
	completed filter.IDSet
	cursor    int // index into rows, always a tracker row when any exists
	offset    int
	width     int
	height    int
	empty     string
	emptyDue  bool
}

func New(width, height int) Model {
	return Model{
		keys:      DefaultKeyMap(),
		completed: filter.NewIDSet(),
		width:     width,
		height:    height,
		empty:     "No trackers yet.\nPress 'a' to add one.",
	}
}

func (m Model) Keys() KeyMap { return m.keys }

// SetEmptyText sets what View shows when there are no rows.
func (m *Model) SetEmptyText(s string) { m.empty = s }

// SetEmptyScheduleDue selects how trackers without a schedule are labelled.
func (m *Model) SetEmptyScheduleDue(v bool) { m.emptyDue = v }

// SetSections replaces the content. The cursor stays on the same tracker when it
// is still present.
func (m *Model) SetSections(sections []grouping.Section, completed filter.IDSet) {
	var selected string
	if t, ok := m.Selected(); ok {
		selected = t.ID
	}

	m.rows = nil
	for _, sec := range sections {
		m.rows = append(m.rows, row{header: sec.Title})
		for i := range sec.Trackers {
			t := sec.Trackers[i]
			m.rows = append(m.rows, row{tracker: &t})
		}
	}
	if completed == nil {
		completed = filter.NewIDSet()
	}
	m.completed = completed

	m.cursor = -1
	for i, r := range m.rows {
		if r.tracker == nil {
			continue
		}
		if m.cursor < 0 || r.tracker.ID == selected {
			m.cursor = i
		}
		if r.tracker.ID == selected {
			break
		}
	}
	m.clampOffset()
}

// Selected returns the tracker under the cursor.
func (m Model) Selected() (models.Tracker, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) || m.rows[m.cursor].tracker == nil {
		return models.Tracker{}, false
	}
	return *m.rows[m.cursor].tracker, true
}

// Len is the number of tracker rows.
func (m Model) Len() int {
	n := 0
	for _, r := range m.rows {
		if r.tracker != nil {
			n++
		}
	}
	return n
}

func (m *Model) move(step int) {
	for i := m.cursor + step; i >= 0 && i < len(m.rows); i += step {
		if m.rows[i].tracker != nil {
			m.cursor = i
			break
		}
	}
	m.clampOffset()
}

func (m *Model) jump(toEnd bool) {
	if toEnd {
		m.cursor = len(m.rows)
		m.move(-1)
		return
	}
	m.cursor = -1
	m.move(1)
	m.offset = 0
}

// clampOffset scrolls so the cursor, and the header above it, stay visible.
func (m *Model) clampOffset() {
	if m.height <= 0 || m.cursor < 0 {
		m.offset = 0
		return
	}
	top := m.cursor
	if top > 0 && m.rows[top-1].tracker == nil {
		top--
	}
	if top < m.offset {
		m.offset = top
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.move(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.move(1)
	case key.Matches(keyMsg, m.keys.Top):
		m.jump(false)
	case key.Matches(keyMsg, m.keys.Bottom):
		m.jump(true)
	case key.Matches(keyMsg, m.keys.Toggle):
		if t, ok := m.Selected(); ok {
			return m, func() tea.Msg { return ToggleMsg{ID: t.ID} }
		}
	case key.Matches(keyMsg, m.keys.Pin):
		if t, ok := m.Selected(); ok {
			return m, func() tea.Msg { return PinMsg{ID: t.ID} }
		}
	case key.Matches(keyMsg, m.keys.Edit):
		if t, ok := m.Selected(); ok {
			return m, func() tea.Msg { return EditMsg{Tracker: t} }
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if t, ok := m.Selected(); ok {
			return m, func() tea.Msg { return DeleteMsg{Tracker: t} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.rows) == 0 {
		return "\n" + emptyStyle.Render(m.empty)
	}

	end := len(m.rows)
	if m.height > 0 && m.offset+m.height < end {
		end = m.offset + m.height
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		if r.tracker == nil {
			b.WriteString(sectionStyle.Render(r.header))
			b.WriteString("\n")
			continue
		}
		b.WriteString(m.renderTracker(*r.tracker, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTracker(t models.Tracker, selected bool) string {
	prefix := "  "
	if selected {
		prefix = cursorStyle.Render("> ")
	}
	mark := pendingStyle.Render("○")
	if m.completed.Has(t.ID) {
		mark = doneStyle.Render("●")
	}
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color.String())).Render("█")
	name := t.Name
	if selected {
		name = cursorStyle.Render(name)
	}
	return fmt.Sprintf("%s%s %s %s %s  %s", prefix, mark, swatch, t.Emoji, name, scheduleStyle.Render(t.Schedule.Describe(m.emptyDue)))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffset()
}
