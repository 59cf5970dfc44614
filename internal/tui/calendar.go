package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"lifequest/internal/engine"
)

// RunCalendar opens the interactive month calendar for one habit.
func RunCalendar(ctx context.Context, svc *engine.Service, habitID string, out io.Writer) error {
	m := newCalendarModel(ctx, svc, habitID)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
