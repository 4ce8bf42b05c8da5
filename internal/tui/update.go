package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/planward/planward/internal/logger"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Re-derive running-timer minutes from the baseline and persist
		// only when a value changed; the store subscription stays quiet
		// otherwise.
		m.eng.Flush()
		m.svc.SyncObjectiveHours()
		m.reload()
		return m, tickCmd()

	case refreshMsg:
		m.reload()
		return m, m.waitForRefresh()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		// Stop ticking before teardown so no callback keeps mutating a
		// stale copy of state.
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
		logger.Info("Day board exiting")
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.PrevDay):
		m.day = m.day.AddDate(0, 0, -1)
		m.cursor = 0
		m.reload()

	case key.Matches(msg, keys.NextDay):
		m.day = m.day.AddDate(0, 0, 1)
		m.cursor = 0
		m.reload()

	case key.Matches(msg, keys.Today):
		m.day = timeNow()
		m.cursor = 0
		m.reload()

	case key.Matches(msg, keys.Timer):
		if t, ok := m.selected(); ok {
			if t.Timer.Running {
				m.eng.Stop(t.ID)
				m.message = fmt.Sprintf("Stopped %q", t.Title)
			} else if t.IsCompleted() {
				m.message = "Task is already completed"
			} else {
				m.eng.Start(t.ID)
				m.message = fmt.Sprintf("Focusing on %q", t.Title)
			}
			m.svc.SyncObjectiveHours()
			m.reload()
		}

	case key.Matches(msg, keys.Done):
		if t, ok := m.selected(); ok {
			m.eng.Complete(t.ID)
			m.svc.SyncObjectiveHours()
			m.message = fmt.Sprintf("Completed %q", t.Title)
			m.reload()
		}

	case key.Matches(msg, keys.Undo):
		if t, ok := m.selected(); ok {
			m.eng.Uncomplete(t.ID)
			m.svc.SyncObjectiveHours()
			m.message = fmt.Sprintf("Reopened %q", t.Title)
			m.reload()
		}

	case key.Matches(msg, keys.Reload):
		m.reload()
		m.message = "Reloaded"
	}
	return m, nil
}
