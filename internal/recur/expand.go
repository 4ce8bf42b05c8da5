// Package recur expands recurrence rules into concrete task instances.
package recur

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/planward/planward/internal/model"
	"github.com/planward/planward/internal/temporal"
)

// Expand materializes a recurrence rule into one pending task per matching
// calendar day in [max(rule.StartDate, today), rule.EndDate], ordered by date
// ascending. Days already in the past relative to today are never generated,
// so a rule that started last month resumes from today forward. An inverted
// range, an empty day set or a non-positive duration all yield an empty
// slice — invalid input is the caller's problem to surface, not an error
// condition here.
//
// Expansion is pure: no state is read or written, and re-running it with the
// same inputs produces the same dates (instance IDs differ, they are
// generated fresh per call).
func Expand(rule model.RecurrenceRule, today time.Time) []model.Task {
	if len(rule.DaysOfWeek) == 0 || rule.DurationMinutes <= 0 {
		return nil
	}

	wanted := make(map[time.Weekday]bool, len(rule.DaysOfWeek))
	for _, d := range rule.DaysOfWeek {
		if d >= 0 && d <= 6 {
			wanted[time.Weekday(d)] = true
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	start := temporal.DateOnly(rule.StartDate)
	if t := temporal.DateOnly(today); start.Before(t) {
		start = t
	}
	end := temporal.DateOnly(rule.EndDate)

	var tasks []model.Task
	batch := time.Now().UnixMilli()
	for cur, i := start, 0; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		if !wanted[cur.Weekday()] {
			continue
		}
		tasks = append(tasks, model.Task{
			ID:              instanceID(batch, i, cur),
			ObjectiveID:     rule.ObjectiveID,
			Title:           rule.Title,
			Description:     rule.Description,
			ScheduledDate:   cur,
			ScheduledTime:   rule.Time,
			DurationMinutes: rule.DurationMinutes,
			Status:          model.TaskPending,
		})
		i++
	}
	return tasks
}

// instanceID builds a task instance ID that cannot collide within a batch
// (sequence index), across batches (millisecond batch stamp) or across
// concurrent processes (random suffix).
func instanceID(batch int64, seq int, day time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("t%d-%d-%d-%s", batch, seq, day.UnixMilli(), suffix)
}
