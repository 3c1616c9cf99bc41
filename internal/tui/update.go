package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/tui/components/trackerlist"
)

// chromeHeight covers the tab bar, the day header and the help line.
const chromeHeight = 5

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		m.stats.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		m.help.Width = msg.Width
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width - h)
		}
		return m, nil

	case changeMsg:
		logger.Debug("Refreshing after change", "kind", msg.change.Kind.String())
		m.reload()
		return m, nil

	case trackerlist.ToggleMsg:
		m.err = ""
		if _, err := m.svc.ToggleCompletion(msg.ID, m.day); err != nil {
			m.err = err.Error()
		}
		m.reload()
		return m, nil

	case trackerlist.PinMsg:
		m.err = ""
		if err := m.svc.TogglePinned(msg.ID); err != nil {
			m.err = err.Error()
		}
		m.reload()
		return m, nil

	case trackerlist.EditMsg:
		return m.openForm(&msg.Tracker)

	case trackerlist.DeleteMsg:
		t := msg.Tracker
		m.toDelete = &t
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil
	}

	switch m.state {
	case constants.StateTrackerForm:
		return m.updateForm(msg)
	case constants.StateSearch:
		return m.updateSearch(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab), key.Matches(keyMsg, m.keys.ShiftTab):
		if m.state == constants.StateTrackers {
			m.state = constants.StateStats
		} else {
			m.state = constants.StateTrackers
		}
		return m, nil
	}

	if m.state != constants.StateTrackers {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Add):
		return m.openForm(nil)
	case key.Matches(keyMsg, m.keys.Filter):
		m.filter = m.filter.Next()
		m.reload()
		return m, nil
	case key.Matches(keyMsg, m.keys.Search):
		m.previousState = m.state
		m.state = constants.StateSearch
		m.search.SetValue(m.query)
		return m, m.search.Focus()
	case key.Matches(keyMsg, m.keys.PrevDay):
		m.err = ""
		m.day = m.day.AddDate(0, 0, -1)
		m.reload()
		return m, nil
	case key.Matches(keyMsg, m.keys.NextDay):
		m.err = ""
		next := m.day.AddDate(0, 0, 1)
		if next.After(m.svc.Today()) && !m.svc.Settings().AllowFutureCompletions {
			return m, nil
		}
		m.day = next
		m.reload()
		return m, nil
	case key.Matches(keyMsg, m.keys.Today):
		m.err = ""
		m.day = m.svc.Today()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// openForm switches to the tracker form, prefilled from t when editing.
func (m Model) openForm(t *models.Tracker) (tea.Model, tea.Cmd) {
	values := &TrackerFormValues{}
	m.editingID = ""
	if t != nil {
		*values = ValuesFor(*t)
		m.editingID = t.ID
	}

	var categories []string
	if cats, err := m.svc.Categories(); err == nil {
		for _, c := range cats {
			categories = append(categories, c.Name)
		}
	}

	m.formValues = values
	m.form = NewTrackerForm(values, categories)
	if m.width > 0 {
		h, _ := docStyle.GetFrameSize()
		m.form = m.form.WithWidth(m.width - h)
	}
	m.err = ""
	m.previousState = constants.StateTrackers
	m.state = constants.StateTrackerForm
	return m, m.form.Init()
}

func (m Model) closeForm() Model {
	m.form = nil
	m.formValues = nil
	m.editingID = ""
	m.state = m.previousState
	return m
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.closeForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.err = ""
		in, err := m.formValues.Input()
		if err == nil {
			if m.editingID != "" {
				_, err = m.svc.UpdateTracker(m.editingID, in)
			} else {
				_, err = m.svc.CreateTracker(in)
			}
		}
		if err != nil {
			m.err = err.Error()
		}
		m = m.closeForm()
		m.reload()
		return m, nil
	case huh.StateAborted:
		return m.closeForm(), nil
	}
	return m, cmd
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.search.Blur()
			m.state = m.previousState
			return m, nil
		case tea.KeyEsc:
			m.search.Blur()
			m.search.SetValue("")
			m.query = ""
			m.state = m.previousState
			m.reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.query {
		m.query = q
		m.reload()
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if m.toDelete != nil {
			if err := m.svc.DeleteTracker(m.toDelete.ID); err != nil {
				m.err = err.Error()
			}
		}
		m.toDelete = nil
		m.state = m.previousState
		m.reload()
	case "n", "N", "esc":
		m.toDelete = nil
		m.state = m.previousState
	}
	return m, nil
}
