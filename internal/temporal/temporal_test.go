package temporal

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"wednesday", time.Date(2024, 1, 10, 15, 30, 0, 0, time.Local), date(2024, 1, 8)},
		{"monday itself", time.Date(2024, 1, 8, 0, 0, 1, 0, time.Local), date(2024, 1, 8)},
		{"sunday belongs to preceding monday", date(2024, 1, 14), date(2024, 1, 8)},
		{"across month boundary", date(2024, 2, 1), date(2024, 1, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWeekEnd(t *testing.T) {
	end := WeekEnd(date(2024, 1, 10))
	if !SameDay(end, date(2024, 1, 14)) {
		t.Fatalf("WeekEnd landed on %v, want Sunday 2024-01-14", end)
	}
	if !end.Before(date(2024, 1, 15)) {
		t.Errorf("WeekEnd %v leaks into the next week", end)
	}
}

func TestDateKeyOrdering(t *testing.T) {
	a := time.Date(2024, 1, 9, 23, 59, 0, 0, time.Local)
	b := time.Date(2024, 1, 10, 0, 1, 0, 0, time.Local)
	if DateKey(a) >= DateKey(b) {
		t.Errorf("keys not ordered: %q >= %q", DateKey(a), DateKey(b))
	}
	if DateKey(a) != "2024-01-09" {
		t.Errorf("DateKey = %q", DateKey(a))
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{45, "45min"},
		{60, "1h"},
		{125, "2h 05min"},
		{0, "0min"},
		{-5, "0min"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(3725); got != "01:02:05" {
		t.Errorf("FormatClock(3725) = %q", got)
	}
	if got := FormatClock(0); got != "00:00:00" {
		t.Errorf("FormatClock(0) = %q", got)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.24, 1.2},
		{1.25, 1.3},
		{66.666, 66.7},
		{-1.25, -1.3},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
