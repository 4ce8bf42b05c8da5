package model

import "time"

// TaskStatus is the lifecycle state of a scheduled task
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskSkipped    TaskStatus = "skipped"
)

// TimerState carries a task's running-timer bookkeeping. StartedAt and
// BaselineMinutes are meaningful only while Running is true; both are
// cleared on every stop so a stopped timer never leaks a stale baseline.
// BaselineMinutes is a pointer so a captured baseline of zero is
// distinguishable from a record that never captured one.
type TimerState struct {
	Running         bool       `json:"running"`
	StartedAt       *time.Time `json:"startedAt,omitempty"`
	BaselineMinutes *int       `json:"baselineMinutes,omitempty"`
}

// Clear resets the timer to idle
func (ts *TimerState) Clear() {
	ts.Running = false
	ts.StartedAt = nil
	ts.BaselineMinutes = nil
}

// Task is one dated unit of work belonging to an objective. Recurring tasks
// materialize into many Task records that share title, description, time and
// objective but carry distinct dates and IDs.
type Task struct {
	ID               string     `json:"id"`
	ObjectiveID      string     `json:"objectiveId"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	ScheduledDate    time.Time  `json:"scheduledDate"`
	ScheduledTime    string     `json:"scheduledTime"` // "HH:MM"
	DurationMinutes  int        `json:"durationMinutes"`
	CompletedMinutes int        `json:"completedMinutes"`
	Status           TaskStatus `json:"status"`
	Timer            TimerState `json:"timer"`
}

// NewTask creates a pending task with no progress
func NewTask(id, objectiveID, title string) Task {
	return Task{
		ID:          id,
		ObjectiveID: objectiveID,
		Title:       title,
		Status:      TaskPending,
	}
}

// GroupKey identifies the recurring group this task belongs to. Instances
// expanded from the same recurrence rule share a key; standalone tasks get
// a key of their own.
func (t *Task) GroupKey() string {
	return t.Title + "\x00" + t.Description + "\x00" + t.ScheduledTime + "\x00" + t.ObjectiveID
}

// IsCompleted reports whether the task reached its terminal completed state
func (t *Task) IsCompleted() bool {
	return t.Status == TaskCompleted
}
