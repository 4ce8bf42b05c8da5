// Package temporal holds the calendar arithmetic shared by the recurrence
// expander and the statistics aggregator. Everything operates on naive local
// wall-clock time; no timezone conversion is ever performed.
package temporal

import (
	"fmt"
	"time"
)

// DateOnly truncates a time to local midnight
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DateKey renders a time as a sortable YYYY-MM-DD string. Date-range
// comparisons go through keys so time-of-day can never skew them.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekStart returns Monday 00:00:00 of the week containing t
func WeekStart(t time.Time) time.Time {
	// Weekday is Sunday-first; shift so Monday is offset 0
	offset := (int(t.Weekday()) + 6) % 7
	return DateOnly(t).AddDate(0, 0, -offset)
}

// WeekEnd returns the last instant of Sunday of the week containing t
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// FormatDuration renders a minute count as "2h 05min", "45min" or "2h"
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dmin", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %02dmin", h, m)
	}
}

// FormatClock renders a second count as hh:mm:ss for the running-timer display
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// Round1 rounds to one decimal place, the precision used for hour totals
// and progress percentages.
func Round1(v float64) float64 {
	if v < 0 {
		return -Round1(-v)
	}
	return float64(int64(v*10+0.5)) / 10
}
