// Package tui is the interactive day board: today's tasks, their progress
// and the focus timer, refreshed on a one-second tick while a timer runs.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/planward/planward/internal/logger"
	"github.com/planward/planward/internal/model"
	"github.com/planward/planward/internal/service"
	"github.com/planward/planward/internal/timer"
)

// Model is the day board TUI model
type Model struct {
	svc *service.Service
	eng *timer.Engine

	day    time.Time
	tasks  []model.Task
	cursor int

	width  int
	height int

	message string

	// refresh is signalled by the store subscription when another writer
	// changes a collection.
	refresh     chan struct{}
	unsubscribe func()
}

// tickMsg drives the once-per-second flush and clock redraw
type tickMsg time.Time

// refreshMsg tells the board to re-read the store
type refreshMsg struct{}

// NewModel creates the day board on today's tasks
func NewModel(svc *service.Service, eng *timer.Engine) Model {
	logger.Info("Initializing day board")

	m := Model{
		svc:     svc,
		eng:     eng,
		day:     time.Now(),
		refresh: make(chan struct{}, 1),
	}
	m.unsubscribe = svc.Store().Subscribe(func(string) {
		select {
		case m.refresh <- struct{}{}:
		default:
		}
	})
	m.reload()
	return m
}

// reload re-reads the grouped task list for the selected day
func (m *Model) reload() {
	m.tasks = m.svc.TasksForDay(m.day)
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (model.Task, bool) {
	if len(m.tasks) == 0 || m.cursor >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.cursor], true
}

// runningTask finds the globally running timer's task, if any
func (m Model) runningTask() (model.Task, bool) {
	for _, t := range m.svc.Tasks() {
		if t.Timer.Running {
			return t, true
		}
	}
	return model.Task{}, false
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitForRefresh() tea.Cmd {
	return func() tea.Msg {
		<-m.refresh
		return refreshMsg{}
	}
}

// Init starts the tick loop and the refresh listener
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.waitForRefresh())
}
