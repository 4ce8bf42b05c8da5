package recur

import (
	"testing"
	"time"

	"github.com/planward/planward/internal/model"
	"github.com/planward/planward/internal/temporal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// 2024-01-01 is a Monday.
func mondayWednesdayRule() model.RecurrenceRule {
	return model.RecurrenceRule{
		ObjectiveID:     "obj-1",
		Title:           "Algebra drills",
		DaysOfWeek:      []int{1, 3},
		StartDate:       date(2024, 1, 1),
		EndDate:         date(2024, 1, 14),
		Time:            "09:00",
		DurationMinutes: 45,
	}
}

func dates(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = temporal.DateKey(t.ScheduledDate)
	}
	return out
}

func TestExpandMondaysAndWednesdays(t *testing.T) {
	got := Expand(mondayWednesdayRule(), date(2024, 1, 1))

	want := []string{"2024-01-01", "2024-01-03", "2024-01-08", "2024-01-10"}
	gotDates := dates(got)
	if len(gotDates) != len(want) {
		t.Fatalf("expanded %d instances %v, want %d", len(got), gotDates, len(want))
	}
	for i := range want {
		if gotDates[i] != want[i] {
			t.Errorf("instance %d on %s, want %s", i, gotDates[i], want[i])
		}
	}
	for _, task := range got {
		if task.ScheduledTime != "09:00" {
			t.Errorf("instance %s has time %q, want 09:00", task.ID, task.ScheduledTime)
		}
		if task.DurationMinutes != 45 || task.CompletedMinutes != 0 {
			t.Errorf("instance %s has duration=%d completed=%d", task.ID, task.DurationMinutes, task.CompletedMinutes)
		}
		if task.Status != model.TaskPending || task.Timer.Running {
			t.Errorf("instance %s not a fresh pending task", task.ID)
		}
	}
}

func TestExpandSuppressesPastDates(t *testing.T) {
	got := Expand(mondayWednesdayRule(), date(2024, 1, 9))

	want := []string{"2024-01-10"}
	gotDates := dates(got)
	if len(gotDates) != 1 || gotDates[0] != want[0] {
		t.Fatalf("expanded %v, want %v", gotDates, want)
	}
}

func TestExpandEndDateInclusive(t *testing.T) {
	rule := mondayWednesdayRule()
	rule.EndDate = date(2024, 1, 10) // a Wednesday

	gotDates := dates(Expand(rule, date(2024, 1, 1)))
	if len(gotDates) == 0 || gotDates[len(gotDates)-1] != "2024-01-10" {
		t.Errorf("end date not generated: %v", gotDates)
	}
}

func TestExpandInvertedRange(t *testing.T) {
	rule := mondayWednesdayRule()
	rule.StartDate = date(2024, 2, 1)
	rule.EndDate = date(2024, 1, 1)

	if got := Expand(rule, date(2024, 1, 1)); len(got) != 0 {
		t.Errorf("inverted range produced %d instances", len(got))
	}
}

func TestExpandDegenerateInput(t *testing.T) {
	rule := mondayWednesdayRule()
	rule.DaysOfWeek = nil
	if got := Expand(rule, date(2024, 1, 1)); len(got) != 0 {
		t.Errorf("empty day set produced %d instances", len(got))
	}

	rule = mondayWednesdayRule()
	rule.DaysOfWeek = []int{9, -1}
	if got := Expand(rule, date(2024, 1, 1)); len(got) != 0 {
		t.Errorf("out-of-range days produced %d instances", len(got))
	}

	rule = mondayWednesdayRule()
	rule.DurationMinutes = 0
	if got := Expand(rule, date(2024, 1, 1)); len(got) != 0 {
		t.Errorf("zero duration produced %d instances", len(got))
	}
}

func TestExpandUniqueIDs(t *testing.T) {
	rule := mondayWednesdayRule()
	rule.EndDate = date(2024, 3, 31)

	seen := make(map[string]bool)
	for _, task := range Expand(rule, date(2024, 1, 1)) {
		if seen[task.ID] {
			t.Fatalf("duplicate instance ID %s", task.ID)
		}
		seen[task.ID] = true
	}
	// Two calls may not collide either.
	for _, task := range Expand(rule, date(2024, 1, 1)) {
		if seen[task.ID] {
			t.Fatalf("instance ID %s collides across calls", task.ID)
		}
	}
}

func TestExpandSameDatesAcrossCalls(t *testing.T) {
	a := dates(Expand(mondayWednesdayRule(), date(2024, 1, 1)))
	b := dates(Expand(mondayWednesdayRule(), date(2024, 1, 1)))
	if len(a) != len(b) {
		t.Fatalf("calls disagree: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("date %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}
