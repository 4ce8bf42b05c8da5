package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planward/planward/internal/logger"
	"github.com/planward/planward/internal/model"
	"github.com/planward/planward/internal/recur"
	"github.com/planward/planward/internal/temporal"
)

// AcceptPlan turns an approved plan preview into a persisted objective and
// its expanded task instances. Nothing is written before this call — a
// rejected or failed preview leaves the store untouched.
func (s *Service) AcceptPlan(preview model.PlanPreview) (model.Objective, []model.Task, error) {
	today := s.clock()

	objective := model.NewObjective(
		"obj-"+uuid.NewString(),
		preview.Objective.Title,
		preview.Objective.Description,
		model.ParseCategory(preview.Objective.Category),
	)
	objective.CreatedAt = today

	totalMinutes := 0
	var generated []model.Task
	for i, pt := range preview.Tasks {
		rule, err := ruleFromPlanTask(objective.ID, pt)
		if err != nil {
			logger.Warn("Skipping plan task with bad schedule",
				logger.F("index", i), logger.F("title", pt.Title), logger.F("error", err))
			continue
		}

		totalMinutes += pt.Planning.TotalPlannedMinutes
		if objective.StartDate.IsZero() || rule.StartDate.Before(objective.StartDate) {
			objective.StartDate = rule.StartDate
		}
		if rule.EndDate.After(objective.EndDate) {
			objective.EndDate = rule.EndDate
		}

		generated = append(generated, recur.Expand(rule, today)...)
	}
	if len(generated) == 0 {
		return model.Objective{}, nil, fmt.Errorf("plan produced no task instances")
	}
	objective.TotalHours = temporal.Round1(float64(totalMinutes) / 60)

	// One transaction for both collections: a failed acceptance must not
	// leave a task-less objective behind.
	if err := s.store.ReplaceAll(
		append(s.store.Objectives(), objective),
		append(s.store.Tasks(), generated...),
	); err != nil {
		return model.Objective{}, nil, err
	}

	logger.Info("Accepted plan",
		logger.F("objective", objective.ID), logger.F("instances", len(generated)))
	return objective, generated, nil
}

// ruleFromPlanTask builds a recurrence rule from a preview task, preferring
// the schedule-level dates over the rule-level ones when present (the
// service sends the former when it has narrowed or corrected the range).
func ruleFromPlanTask(objectiveID string, pt model.PlanTask) (model.RecurrenceRule, error) {
	startStr := pt.Schedule.Rule.StartDate
	if pt.Schedule.StartDate != "" {
		startStr = pt.Schedule.StartDate
	}
	endStr := pt.Schedule.Rule.EndDate
	if pt.Schedule.EndDate != "" {
		endStr = pt.Schedule.EndDate
	}

	start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
	if err != nil {
		return model.RecurrenceRule{}, fmt.Errorf("bad start date %q: %w", startStr, err)
	}
	end, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
	if err != nil {
		return model.RecurrenceRule{}, fmt.Errorf("bad end date %q: %w", endStr, err)
	}

	return model.RecurrenceRule{
		ObjectiveID:     objectiveID,
		Title:           pt.Title,
		Description:     pt.Description,
		DaysOfWeek:      pt.Schedule.Rule.DaysOfWeek,
		StartDate:       start,
		EndDate:         end,
		Time:            pt.Schedule.Time,
		DurationMinutes: pt.Planning.SessionPlannedMinutes,
	}, nil
}

// TasksForDay returns the tasks scheduled on a given day with recurring
// groups collapsed to one representative each: a completed instance wins,
// then any non-pending one, else the first seen.
func (s *Service) TasksForDay(day time.Time) []model.Task {
	key := temporal.DateKey(day)

	var ordered []string
	byGroup := make(map[string]model.Task)
	for _, t := range s.store.Tasks() {
		if temporal.DateKey(t.ScheduledDate) != key {
			continue
		}
		gk := t.GroupKey()
		current, seen := byGroup[gk]
		if !seen {
			ordered = append(ordered, gk)
			byGroup[gk] = t
			continue
		}
		if betterRepresentative(t, current) {
			byGroup[gk] = t
		}
	}

	out := make([]model.Task, 0, len(ordered))
	for _, gk := range ordered {
		out = append(out, byGroup[gk])
	}
	return out
}

func betterRepresentative(candidate, current model.Task) bool {
	if candidate.IsCompleted() && !current.IsCompleted() {
		return true
	}
	if candidate.Status != model.TaskPending && current.Status == model.TaskPending && !current.IsCompleted() {
		return true
	}
	return false
}
