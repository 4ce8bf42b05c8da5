// Package timer owns the task-timer state machine and its minute accounting.
//
// The accounting never increments the live completed-minutes value. A
// baseline is captured once when a timer starts, and every flush or stop
// re-derives the total from that baseline and the wall clock, so repeated
// flushes, pause/resume cycles and crashes can never double-count.
package timer

import "time"

// Accrued computes the completed-minutes total for a timer that started at
// startedAt with the given baseline: baseline + whole elapsed minutes,
// clamped to [baseline, durationMinutes].
func Accrued(baselineMinutes int, startedAt, now time.Time, durationMinutes int) int {
	elapsed := int(now.Sub(startedAt) / time.Minute)
	if elapsed < 0 {
		elapsed = 0
	}
	return clampTotal(baselineMinutes, elapsed, durationMinutes)
}

func clampTotal(baseline, elapsed, duration int) int {
	total := baseline + elapsed
	if total > duration {
		total = duration
	}
	if total < 0 {
		total = 0
	}
	return total
}
