package model

import "time"

// RecurrenceRule is the template a set of concrete task instances is
// expanded from. Days of week use calendar numbering, 0 = Sunday. The date
// range is inclusive on both ends. Rules are not persisted; only the
// expanded instances are.
type RecurrenceRule struct {
	ObjectiveID     string
	Title           string
	Description     string
	DaysOfWeek      []int
	StartDate       time.Time
	EndDate         time.Time
	Time            string // "HH:MM"
	DurationMinutes int
}
