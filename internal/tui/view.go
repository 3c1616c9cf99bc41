package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateStats:
		content = docStyle.Render(m.stats.View())
	case constants.StateTrackerForm:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = docStyle.Render(m.viewTrackers())
	}

	parts := []string{m.viewTabs(), content}
	if m.err != "" {
		parts = append(parts, warningStyle.Render("  "+m.err))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	active := m.state
	if active != constants.StateStats {
		active = constants.StateTrackers
	}
	for _, tab := range []struct {
		title string
		state constants.SessionState
	}{
		{"Trackers", constants.StateTrackers},
		{"Statistics", constants.StateStats},
	} {
		if tab.state == active {
			tabs = append(tabs, activeTabStyle.Render(tab.title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tab.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTrackers() string {
	day := utils.FormatDay(m.day)
	if utils.SameDay(m.day, m.svc.Today(), m.svc.Location()) {
		day += " (today)"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(day),
		"  ",
		filterStyle.Render(fmt.Sprintf("[%s] %d/%d", m.filter, m.visible, m.total)),
	)

	lines := []string{header}
	if m.state == constants.StateSearch || m.query != "" {
		lines = append(lines, m.search.View())
	}
	lines = append(lines, m.list.View())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewConfirmDelete() string {
	name := ""
	if m.toDelete != nil {
		name = m.toDelete.Emoji + " " + m.toDelete.Name
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %s and all of its completions?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
