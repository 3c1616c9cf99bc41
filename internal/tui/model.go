// Package tui is the interactive front-end: a sectioned tracker list for one day
// and a statistics tab, both fed by tracking.Service.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/filter"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/tracking"
	"github.com/julianstephens/tracklit/internal/tui/components/statsview"
	"github.com/julianstephens/tracklit/internal/tui/components/trackerlist"
)

// changeMsg carries a committed write from the service subscription.
type changeMsg struct {
	change tracking.Change
}

type Model struct {
	svc           *tracking.Service
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	list          trackerlist.Model
	stats         statsview.Model
	search        textinput.Model
	form          *huh.Form
	formValues    *TrackerFormValues
	editingID     string
	toDelete      *models.Tracker
	day           time.Time
	filter        filter.Kind
	query         string
	visible       int
	total         int
	err           string
	quitting      bool
	width         int
	height        int
}

func NewModel(svc *tracking.Service) Model {
	search := textinput.New()
	search.Placeholder = "Search trackers"
	search.Prompt = "/ "
	search.CharLimit = 64

	m := Model{
		svc:    svc,
		state:  constants.StateTrackers,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		list:   trackerlist.New(0, 0),
		stats:  statsview.New(0, 0),
		search: search,
		day:    svc.Today(),
	}
	m.reload()
	return m
}

// reload re-reads the view for the current day, filter and query, and the stats.
func (m *Model) reload() {
	view, err := m.svc.View(tracking.ViewRequest{Day: m.day, Filter: m.filter, Query: m.query})
	if err != nil {
		m.err = err.Error()
		return
	}
	m.list.SetEmptyScheduleDue(m.svc.Settings().EmptyScheduleDue)
	m.list.SetSections(view.Sections, view.Completed)
	m.visible = m.list.Len()
	m.total = view.Total
	if view.Total > 0 && view.Empty() {
		m.list.SetEmptyText("Nothing matches.\nPress 'f' to change the filter or '/' to search.")
	} else {
		m.list.SetEmptyText("No trackers yet.\nPress 'a' to add one.")
	}

	snap, err := m.svc.Statistics()
	if err != nil {
		m.err = err.Error()
		return
	}
	m.stats.SetSnapshot(snap)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == constants.StateTrackers {
		lk := m.list.Keys()
		keys = append(keys, lk.Toggle, m.keys.Add, m.keys.Filter, m.keys.Search)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	if m.state != constants.StateTrackers {
		return [][]key.Binding{global}
	}
	lk := m.list.Keys()
	navigation := []key.Binding{lk.Up, lk.Down, lk.Top, lk.Bottom, m.keys.PrevDay, m.keys.NextDay, m.keys.Today}
	actions := []key.Binding{lk.Toggle, lk.Pin, m.keys.Add, lk.Edit, lk.Delete, m.keys.Filter, m.keys.Search}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
