package statsview

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tracklit/internal/stats"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2).
			Width(30)

	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

type Model struct {
	snapshot stats.Snapshot
	loaded   bool
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{width: width, height: height}
}

func (m *Model) SetSnapshot(s stats.Snapshot) {
	m.snapshot = s
	m.loaded = true
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func card(value int, label string) string {
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		valueStyle.Render(fmt.Sprintf("%d", value)),
		labelStyle.Render(label),
	))
}

func (m Model) View() string {
	if !m.loaded || m.snapshot.TotalCompletions == 0 {
		return "\n" + emptyStyle.Render("Nothing to analyze yet.\nMark a tracker done to see statistics.")
	}
	s := m.snapshot
	return lipgloss.JoinVertical(lipgloss.Left,
		card(s.BestStreak, "Best period"),
		card(s.PerfectDays, "Perfect days"),
		card(s.TotalCompletions, "Completed trackers"),
		card(s.AveragePerActiveDay, "Average per day"),
	)
}
