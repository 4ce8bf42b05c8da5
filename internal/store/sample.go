package store

import (
	"time"

	"github.com/planward/planward/internal/model"
	"github.com/planward/planward/internal/temporal"
)

// Sample returns a small starter dataset anchored around the given day. It
// seeds first runs (`planward init --sample`) and stands in for a collection
// whose stored payload turned out to be unreadable.
func Sample(today time.Time) ([]model.Objective, []model.Task) {
	day := temporal.DateOnly(today)

	objective := model.Objective{
		ID:          "obj-sample-english",
		Title:       "Conversational English",
		Description: "Reach a comfortable B2 level for work calls",
		Category:    model.CategoryStudy,
		TotalHours:  24,
		StartDate:   day,
		EndDate:     day.AddDate(0, 2, 0),
		Status:      model.ObjectiveOnTrack,
		CreatedAt:   day,
	}

	tasks := []model.Task{
		{
			ID:              "t-sample-1",
			ObjectiveID:     objective.ID,
			Title:           "Vocabulary review",
			Description:     "Flashcards from last week's lessons",
			ScheduledDate:   day,
			ScheduledTime:   "08:30",
			DurationMinutes: 30,
			Status:          model.TaskPending,
		},
		{
			ID:               "t-sample-2",
			ObjectiveID:      objective.ID,
			Title:            "Listening practice",
			Description:      "One podcast episode with notes",
			ScheduledDate:    day,
			ScheduledTime:    "19:00",
			DurationMinutes:  45,
			CompletedMinutes: 45,
			Status:           model.TaskCompleted,
		},
		{
			ID:              "t-sample-3",
			ObjectiveID:     objective.ID,
			Title:           "Vocabulary review",
			Description:     "Flashcards from last week's lessons",
			ScheduledDate:   day.AddDate(0, 0, 1),
			ScheduledTime:   "08:30",
			DurationMinutes: 30,
			Status:          model.TaskPending,
		},
	}

	return []model.Objective{objective}, tasks
}

// Seed writes the sample dataset, replacing whatever is stored
func (s *Store) Seed(today time.Time) error {
	objectives, tasks := Sample(today)
	if err := s.ReplaceObjectives(objectives); err != nil {
		return err
	}
	return s.ReplaceTasks(tasks)
}
