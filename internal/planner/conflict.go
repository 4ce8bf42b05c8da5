package planner

import (
	"github.com/planward/planward/internal/model"
)

// HasScheduleConflict reports whether any already-scheduled task's
// time-of-day falls within the requested availability window. "HH:MM"
// strings compare lexicographically, so no clock parsing is needed.
func HasScheduleConflict(tasks []model.Task, window model.TimeRange) bool {
	if window.Start == "" || window.End == "" {
		return false
	}
	for _, t := range tasks {
		if t.ScheduledTime >= window.Start && t.ScheduledTime <= window.End {
			return true
		}
	}
	return false
}

// PrepareRequest finalizes a plan request before sending: when existing
// tasks collide with the requested availability window, the
// distribute-across-days hint is set so the service can plan around them.
// The hint is advisory only.
func PrepareRequest(req model.PlanRequest, existing []model.Task) model.PlanRequest {
	if HasScheduleConflict(existing, req.Availability.TimeRange) {
		req.DistributeTasksAcrossDays = true
	}
	return req
}
