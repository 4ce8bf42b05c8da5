package model

import "time"

// Category classifies what an objective is for
type Category string

const (
	CategoryStudy    Category = "study"
	CategoryTraining Category = "training"
	CategoryHealth   Category = "health"
	CategoryWork     Category = "work"
)

// ParseCategory maps an arbitrary string to a known category,
// defaulting to study for anything unrecognized.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryStudy, CategoryTraining, CategoryHealth, CategoryWork:
		return Category(s)
	default:
		return CategoryStudy
	}
}

// ObjectiveStatus tracks where an objective stands
type ObjectiveStatus string

const (
	ObjectiveOnTrack   ObjectiveStatus = "on-track"
	ObjectiveDelayed   ObjectiveStatus = "delayed"
	ObjectiveCompleted ObjectiveStatus = "completed"
	ObjectivePaused    ObjectiveStatus = "paused"
)

// Objective is a user goal with a target number of hours over a date range.
//
// CompletedHours is a denormalized cache; the authoritative value is the sum
// of completed minutes across the objective's tasks. Readers that care about
// accuracy must derive it from the task collection.
type Objective struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       Category        `json:"category"`
	TotalHours     float64         `json:"totalHours"`
	CompletedHours float64         `json:"completedHours"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	Status         ObjectiveStatus `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// NewObjective creates an objective with defaults
func NewObjective(id, title, description string, category Category) Objective {
	return Objective{
		ID:          id,
		Title:       title,
		Description: description,
		Category:    category,
		Status:      ObjectiveOnTrack,
		CreatedAt:   time.Now(),
	}
}
