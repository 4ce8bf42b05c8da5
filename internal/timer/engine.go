package timer

import (
	"time"

	"github.com/planward/planward/internal/logger"
	"github.com/planward/planward/internal/model"
	"github.com/planward/planward/internal/store"
)

// Engine drives timer transitions against the persisted task collection.
//
// Operations never return errors: a persistence failure is logged and the
// operation degrades to a no-op, because a broken write must not stop the
// user from working with their tasks. All operations are synchronous
// read-modify-write cycles over the full collection under a single-writer
// assumption: callers that invoke the engine from multiple goroutines (the
// API server does) must serialize the calls themselves.
type Engine struct {
	store *store.Store
	clock func() time.Time

	// elapsedSeconds tracks per-task elapsed time observed during flushes.
	// It is the fallback source for a running record whose start instant
	// went missing.
	elapsedSeconds map[string]int
}

// New creates an engine on the given store
func New(st *store.Store) *Engine {
	return NewWithClock(st, time.Now)
}

// NewWithClock creates an engine with an injected clock for tests
func NewWithClock(st *store.Store, clock func() time.Time) *Engine {
	return &Engine{
		store:          st,
		clock:          clock,
		elapsedSeconds: make(map[string]int),
	}
}

// Start begins the timer on a task. Any other running timer is stopped and
// flushed first, so at most one timer runs at a time and no elapsed time is
// lost or counted twice. Starting a completed task, an unknown task or an
// already-running task is a no-op.
func (e *Engine) Start(taskID string) {
	now := e.clock()
	tasks := e.store.Tasks()

	target := findTask(tasks, taskID)
	if target == nil {
		logger.Warn("Start timer: task not found", logger.F("task", taskID))
		return
	}
	if target.IsCompleted() {
		logger.Warn("Start timer: task already completed", logger.F("task", taskID))
		return
	}
	if target.Timer.Running {
		return
	}

	// Deterministic ordering: other timers settle before the new baseline
	// is captured.
	for i := range tasks {
		if tasks[i].Timer.Running && tasks[i].ID != taskID {
			e.settle(&tasks[i], now)
		}
	}

	startedAt := now
	baseline := target.CompletedMinutes
	target.Timer = model.TimerState{
		Running:         true,
		StartedAt:       &startedAt,
		BaselineMinutes: &baseline,
	}
	target.Status = model.TaskInProgress
	e.elapsedSeconds[taskID] = 0

	e.persist(tasks, "start", taskID)
}

// Stop ends the timer on a task, folding the elapsed whole minutes into its
// completed minutes. Stopping an idle task is a no-op, so double stops are
// harmless.
func (e *Engine) Stop(taskID string) {
	now := e.clock()
	tasks := e.store.Tasks()

	target := findTask(tasks, taskID)
	if target == nil || !target.Timer.Running {
		return
	}

	e.settle(target, now)
	e.persist(tasks, "stop", taskID)
}

// Flush re-derives completed minutes for every running task from its
// baseline and persists only when a value actually changed. Called on a
// fixed cadence while a timer runs; safe to call at any moment since it
// recomputes rather than accumulates.
func (e *Engine) Flush() {
	now := e.clock()
	tasks := e.store.Tasks()

	changed := false
	for i := range tasks {
		t := &tasks[i]
		if !t.Timer.Running || t.Timer.StartedAt == nil {
			continue
		}
		e.elapsedSeconds[t.ID] = int(now.Sub(*t.Timer.StartedAt) / time.Second)

		if total := Accrued(baselineOf(t), *t.Timer.StartedAt, now, t.DurationMinutes); total != t.CompletedMinutes {
			t.CompletedMinutes = total
			changed = true
		}
	}
	if changed {
		e.persist(tasks, "flush", "")
	}
}

// Complete marks a task done: full completed minutes, timer stopped. A
// terminal shortcut, not a timer transition.
func (e *Engine) Complete(taskID string) {
	tasks := e.store.Tasks()
	target := findTask(tasks, taskID)
	if target == nil {
		logger.Warn("Complete: task not found", logger.F("task", taskID))
		return
	}

	target.CompletedMinutes = target.DurationMinutes
	target.Status = model.TaskCompleted
	target.Timer.Clear()
	delete(e.elapsedSeconds, taskID)

	e.persist(tasks, "complete", taskID)
}

// Uncomplete resets a task to pending with no recorded progress, stopping
// its timer if one is somehow running.
func (e *Engine) Uncomplete(taskID string) {
	tasks := e.store.Tasks()
	target := findTask(tasks, taskID)
	if target == nil {
		logger.Warn("Uncomplete: task not found", logger.F("task", taskID))
		return
	}

	target.CompletedMinutes = 0
	target.Status = model.TaskPending
	target.Timer.Clear()
	delete(e.elapsedSeconds, taskID)

	e.persist(tasks, "uncomplete", taskID)
}

// ElapsedSeconds returns the seconds observed for a task since its timer
// started, for display. Zero for idle tasks.
func (e *Engine) ElapsedSeconds(taskID string) int {
	return e.elapsedSeconds[taskID]
}

// settle folds a running timer's elapsed time into the task and returns it
// to idle. When the start instant is missing from the record, the tracked
// elapsed-seconds counter stands in for the wall clock.
func (e *Engine) settle(t *model.Task, now time.Time) {
	if t.Timer.StartedAt != nil {
		t.CompletedMinutes = Accrued(baselineOf(t), *t.Timer.StartedAt, now, t.DurationMinutes)
	} else {
		t.CompletedMinutes = clampTotal(baselineOf(t), e.elapsedSeconds[t.ID]/60, t.DurationMinutes)
	}
	t.Timer.Clear()
	delete(e.elapsedSeconds, t.ID)
}

// baselineOf returns the captured baseline, falling back to the live
// completed minutes only when the record never captured one. A present zero
// stays zero: flushed minutes must not be re-counted as a baseline.
func baselineOf(t *model.Task) int {
	if t.Timer.BaselineMinutes != nil {
		return *t.Timer.BaselineMinutes
	}
	return t.CompletedMinutes
}

func (e *Engine) persist(tasks []model.Task, op, taskID string) {
	if err := e.store.ReplaceTasks(tasks); err != nil {
		logger.Error("Failed to persist timer change",
			logger.F("op", op), logger.F("task", taskID), logger.F("error", err))
	}
}

func findTask(tasks []model.Task, id string) *model.Task {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}
