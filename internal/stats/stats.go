// Package stats derives dashboard metrics from the persisted collections.
// Everything here is read-only: the aggregator never mutates state.
package stats

import (
	"time"

	"github.com/planward/planward/internal/model"
	"github.com/planward/planward/internal/temporal"
)

// Weekly aggregates planned versus completed work over a date range
type Weekly struct {
	TotalTasksPlanned   int     `json:"totalTasksPlanned"`
	TotalTasksCompleted int     `json:"totalTasksCompleted"`
	TotalTasksMissed    int     `json:"totalTasksMissed"`
	TotalHoursPlanned   float64 `json:"totalHoursPlanned"`
	TotalHoursCompleted float64 `json:"totalHoursCompleted"`
	ProgressPercentage  float64 `json:"progressPercentage"`
}

// WeeklyRange computes stats for tasks scheduled within [start, end],
// compared date-only so time-of-day can never shift a task across the
// boundary. Completed hours count partial progress on unfinished tasks,
// not just completed ones.
func WeeklyRange(tasks []model.Task, start, end time.Time) Weekly {
	startKey, endKey := temporal.DateKey(start), temporal.DateKey(end)

	var w Weekly
	var plannedMinutes, completedMinutes int
	for _, t := range tasks {
		key := temporal.DateKey(t.ScheduledDate)
		if key < startKey || key > endKey {
			continue
		}
		w.TotalTasksPlanned++
		if t.IsCompleted() {
			w.TotalTasksCompleted++
		}
		plannedMinutes += t.DurationMinutes
		completedMinutes += t.CompletedMinutes
	}

	w.TotalTasksMissed = w.TotalTasksPlanned - w.TotalTasksCompleted
	w.TotalHoursPlanned = temporal.Round1(float64(plannedMinutes) / 60)
	w.TotalHoursCompleted = temporal.Round1(float64(completedMinutes) / 60)
	if plannedMinutes > 0 {
		w.ProgressPercentage = temporal.Round1(100 * float64(completedMinutes) / float64(plannedMinutes))
	}
	return w
}

// CurrentWeek computes stats for the Monday-to-Sunday week containing ref
func CurrentWeek(tasks []model.Task, ref time.Time) Weekly {
	return WeeklyRange(tasks, temporal.WeekStart(ref), temporal.WeekEnd(ref))
}

// PreviousWeek computes stats for the week before the one containing ref
func PreviousWeek(tasks []model.Task, ref time.Time) Weekly {
	return WeeklyRange(tasks, temporal.WeekStart(ref).AddDate(0, 0, -7), temporal.WeekEnd(ref).AddDate(0, 0, -7))
}

// streakHorizonDays bounds the backward walk so it always terminates
const streakHorizonDays = 365

// Streak counts consecutive days ending today with at least one completed
// task. Days with nothing scheduled are skipped, not broken on; a day with
// scheduled but zero completed tasks ends the streak.
func Streak(tasks []model.Task, today time.Time) int {
	scheduled := make(map[string]bool)
	completed := make(map[string]bool)
	for _, t := range tasks {
		key := temporal.DateKey(t.ScheduledDate)
		scheduled[key] = true
		if t.IsCompleted() {
			completed[key] = true
		}
	}

	streak := 0
	day := temporal.DateOnly(today)
	for i := 0; i < streakHorizonDays; i++ {
		key := temporal.DateKey(day)
		if scheduled[key] {
			if !completed[key] {
				break
			}
			streak++
		}
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// Trend is a period-over-period delta for a dashboard card
type Trend struct {
	Direction string `json:"direction"` // "up" or "down"
	Percent   int    `json:"percent"`
}

// TrendDelta compares a current value against the previous period's. A zero
// previous value reports +100% up when the current is positive and no trend
// otherwise.
func TrendDelta(current, previous float64) (Trend, bool) {
	if previous == 0 {
		if current > 0 {
			return Trend{Direction: "up", Percent: 100}, true
		}
		return Trend{}, false
	}

	diff := current - previous
	direction := "up"
	if diff < 0 {
		direction = "down"
		diff = -diff
	}
	return Trend{Direction: direction, Percent: int(100*diff/previous + 0.5)}, true
}

// ObjectiveCompletedHours derives an objective's completed hours by summing
// its tasks' completed minutes. This is the authoritative value; the
// objective record's own completedHours field is only a cache.
func ObjectiveCompletedHours(tasks []model.Task, objectiveID string) float64 {
	minutes := 0
	for _, t := range tasks {
		if t.ObjectiveID == objectiveID {
			minutes += t.CompletedMinutes
		}
	}
	return temporal.Round1(float64(minutes) / 60)
}

// DayProgress is one weekday's completion percentage for the weekly bars
type DayProgress struct {
	Day     string  `json:"day"`
	Percent float64 `json:"percent"`
}

// WeekdayProgress computes per-day completion percentages, Monday first,
// for the week containing ref.
func WeekdayProgress(tasks []model.Task, ref time.Time) []DayProgress {
	start := temporal.WeekStart(ref)
	out := make([]DayProgress, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		key := temporal.DateKey(day)

		var planned, completed int
		for _, t := range tasks {
			if temporal.DateKey(t.ScheduledDate) == key {
				planned += t.DurationMinutes
				completed += t.CompletedMinutes
			}
		}
		p := DayProgress{Day: day.Format("Mon")}
		if planned > 0 {
			p.Percent = temporal.Round1(100 * float64(completed) / float64(planned))
		}
		out[i] = p
	}
	return out
}
