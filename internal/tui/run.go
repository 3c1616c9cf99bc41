package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tracklit/internal/tracking"
)

// Run starts the interactive program and blocks until it exits. Writes made
// outside the program (another goroutine holding the same service) refresh it.
func Run(svc *tracking.Service) error {
	p := tea.NewProgram(NewModel(svc), tea.WithAltScreen())

	// Send blocks until the program reads the message, and subscribers run on the
	// writer's goroutine, which is often the program's own Update.
	unsubscribe := svc.Subscribe(func(c tracking.Change) {
		go p.Send(changeMsg{change: c})
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}
