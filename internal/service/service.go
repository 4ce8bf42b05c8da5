// Package service orchestrates objectives and tasks over the store: plan
// acceptance, manual CRUD, cascade deletes, recurring-group handling and
// derived progress. All writes are whole-collection read-modify-write
// cycles through the persistence gateway.
package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planward/planward/internal/logger"
	"github.com/planward/planward/internal/model"
	"github.com/planward/planward/internal/stats"
	"github.com/planward/planward/internal/store"
	"github.com/planward/planward/internal/temporal"
)

// Service wraps planning business logic around the store
type Service struct {
	store *store.Store
	clock func() time.Time
}

// New creates a service
func New(st *store.Store) *Service {
	return NewWithClock(st, time.Now)
}

// NewWithClock creates a service with an injected clock for tests
func NewWithClock(st *store.Store, clock func() time.Time) *Service {
	return &Service{store: st, clock: clock}
}

// Store exposes the underlying store for subscription wiring
func (s *Service) Store() *store.Store {
	return s.store
}

// Objectives returns all persisted objectives
func (s *Service) Objectives() []model.Objective {
	return s.store.Objectives()
}

// Tasks returns all persisted tasks
func (s *Service) Tasks() []model.Task {
	return s.store.Tasks()
}

// Objective looks up one objective by ID
func (s *Service) Objective(id string) (model.Objective, bool) {
	for _, o := range s.store.Objectives() {
		if o.ID == id {
			return o, true
		}
	}
	return model.Objective{}, false
}

// CreateObjective persists a new objective, assigning an ID when missing
func (s *Service) CreateObjective(o model.Objective) (model.Objective, error) {
	if o.Title == "" {
		return model.Objective{}, fmt.Errorf("objective title is required")
	}
	if o.ID == "" {
		o.ID = "obj-" + uuid.NewString()
	}
	if o.Status == "" {
		o.Status = model.ObjectiveOnTrack
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.clock()
	}

	objectives := append(s.store.Objectives(), o)
	if err := s.store.ReplaceObjectives(objectives); err != nil {
		return model.Objective{}, err
	}
	return o, nil
}

// UpdateObjective replaces an objective record by ID
func (s *Service) UpdateObjective(o model.Objective) error {
	objectives := s.store.Objectives()
	for i := range objectives {
		if objectives[i].ID == o.ID {
			objectives[i] = o
			return s.store.ReplaceObjectives(objectives)
		}
	}
	return fmt.Errorf("objective not found: %s", o.ID)
}

// DeleteObjective removes an objective and cascades to every task that
// references it.
func (s *Service) DeleteObjective(id string) error {
	objectives := s.store.Objectives()
	kept := objectives[:0]
	found := false
	for _, o := range objectives {
		if o.ID == id {
			found = true
			continue
		}
		kept = append(kept, o)
	}
	if !found {
		return fmt.Errorf("objective not found: %s", id)
	}
	if err := s.store.ReplaceObjectives(kept); err != nil {
		return err
	}

	tasks := s.store.Tasks()
	remaining := tasks[:0]
	removed := 0
	for _, t := range tasks {
		if t.ObjectiveID == id {
			removed++
			continue
		}
		remaining = append(remaining, t)
	}
	logger.Info("Deleted objective", logger.F("objective", id), logger.F("cascaded_tasks", removed))
	return s.store.ReplaceTasks(remaining)
}

// CreateTask persists a new task, assigning an ID when missing
func (s *Service) CreateTask(t model.Task) (model.Task, error) {
	if t.Title == "" {
		return model.Task{}, fmt.Errorf("task title is required")
	}
	if t.ObjectiveID == "" {
		return model.Task{}, fmt.Errorf("task needs an objective")
	}
	if _, ok := s.Objective(t.ObjectiveID); !ok {
		return model.Task{}, fmt.Errorf("objective not found: %s", t.ObjectiveID)
	}
	if t.ID == "" {
		t.ID = "t-" + uuid.NewString()
	}
	if t.Status == "" {
		t.Status = model.TaskPending
	}
	t.ScheduledDate = temporal.DateOnly(t.ScheduledDate)

	tasks := append(s.store.Tasks(), t)
	if err := s.store.ReplaceTasks(tasks); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// UpdateTask replaces a task record by ID. Edits change fields in place;
// recurring instances are never re-expanded.
func (s *Service) UpdateTask(t model.Task) error {
	tasks := s.store.Tasks()
	for i := range tasks {
		if tasks[i].ID == t.ID {
			tasks[i] = t
			return s.store.ReplaceTasks(tasks)
		}
	}
	return fmt.Errorf("task not found: %s", t.ID)
}

// DeleteTask removes one task instance. With recurring set it removes the
// instance's whole recurring group — every task sharing title, description,
// time and objective. There is deliberately no way to delete a single
// occurrence out of a group; that is product behavior, not an oversight.
func (s *Service) DeleteTask(id string, recurring bool) error {
	tasks := s.store.Tasks()

	target := -1
	for i := range tasks {
		if tasks[i].ID == id {
			target = i
			break
		}
	}
	if target < 0 {
		return fmt.Errorf("task not found: %s", id)
	}

	kept := tasks[:0:0]
	if recurring {
		key := tasks[target].GroupKey()
		for _, t := range tasks {
			if t.GroupKey() != key {
				kept = append(kept, t)
			}
		}
	} else {
		for _, t := range tasks {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
	}
	return s.store.ReplaceTasks(kept)
}

// FindTask resolves a task by full ID or unique prefix
func (s *Service) FindTask(idOrPrefix string) (model.Task, error) {
	var match model.Task
	found := 0
	for _, t := range s.store.Tasks() {
		if t.ID == idOrPrefix {
			return t, nil
		}
		if len(idOrPrefix) >= 4 && len(t.ID) > len(idOrPrefix) && t.ID[:len(idOrPrefix)] == idOrPrefix {
			match = t
			found++
		}
	}
	switch found {
	case 0:
		return model.Task{}, fmt.Errorf("task not found: %s", idOrPrefix)
	case 1:
		return match, nil
	default:
		return model.Task{}, fmt.Errorf("task prefix %q is ambiguous (%d matches)", idOrPrefix, found)
	}
}

// ObjectiveProgress returns the derived completed hours for an objective,
// always computed from tasks, never from the cached field.
func (s *Service) ObjectiveProgress(objectiveID string) float64 {
	return stats.ObjectiveCompletedHours(s.store.Tasks(), objectiveID)
}

// SyncObjectiveHours refreshes the denormalized completedHours cache on
// every objective from the task collection. Called after timer mutations;
// failures are logged and tolerated.
func (s *Service) SyncObjectiveHours() {
	tasks := s.store.Tasks()
	objectives := s.store.Objectives()

	changed := false
	for i := range objectives {
		derived := stats.ObjectiveCompletedHours(tasks, objectives[i].ID)
		if objectives[i].CompletedHours != derived {
			objectives[i].CompletedHours = derived
			changed = true
		}
	}
	if !changed {
		return
	}
	if err := s.store.ReplaceObjectives(objectives); err != nil {
		logger.Error("Failed to refresh objective hours", logger.F("error", err))
	}
}
