package planner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/planward/planward/internal/model"
)

func TestGeneratePlan(t *testing.T) {
	var gotReq model.PlanRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate-plan" || r.Method != http.MethodPost {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(model.PlanResponse{
			Success: true,
			Preview: &model.PlanPreview{
				Objective: model.PlanObjective{Title: "Learn Go", Category: "study"},
				Tasks: []model.PlanTask{{
					Title:    "Exercises",
					Planning: model.PlanPlanning{TotalPlannedMinutes: 120, SessionPlannedMinutes: 60},
					Schedule: model.PlanSchedule{
						Time: "09:00",
						Rule: model.PlanScheduleRule{DaysOfWeek: []int{1}, StartDate: "2024-01-01", EndDate: "2024-01-14"},
					},
				}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "user-7")
	preview, err := c.GeneratePlan(context.Background(), model.PlanRequest{
		Availability: model.Availability{Days: []int{1, 3}, TimeRange: model.TimeRange{Start: "08:00", End: "12:00"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if preview.Objective.Title != "Learn Go" || len(preview.Tasks) != 1 {
		t.Errorf("preview = %+v", preview)
	}
	if gotReq.UserID != "user-7" {
		t.Errorf("client did not attach user id, got %q", gotReq.UserID)
	}
}

func TestGeneratePlanServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.PlanResponse{Success: false, Error: "no availability"})
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, "").GeneratePlan(context.Background(), model.PlanRequest{}); err == nil {
		t.Errorf("service error not surfaced")
	}
}

func TestGeneratePlanHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, "").GeneratePlan(context.Background(), model.PlanRequest{}); err == nil {
		t.Errorf("HTTP 500 not surfaced")
	}
}

func taskAt(clock string) model.Task {
	return model.Task{ID: "t-" + clock, ScheduledTime: clock, DurationMinutes: 30}
}

func TestHasScheduleConflict(t *testing.T) {
	window := model.TimeRange{Start: "09:00", End: "12:00"}
	tests := []struct {
		name  string
		tasks []model.Task
		want  bool
	}{
		{"inside window", []model.Task{taskAt("10:30")}, true},
		{"on window start", []model.Task{taskAt("09:00")}, true},
		{"on window end", []model.Task{taskAt("12:00")}, true},
		{"before window", []model.Task{taskAt("08:59")}, false},
		{"after window", []model.Task{taskAt("12:01")}, false},
		{"no tasks", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasScheduleConflict(tt.tasks, window); got != tt.want {
				t.Errorf("HasScheduleConflict = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrepareRequestSetsDistributeHint(t *testing.T) {
	req := model.PlanRequest{
		Availability: model.Availability{TimeRange: model.TimeRange{Start: "09:00", End: "12:00"}},
	}

	got := PrepareRequest(req, []model.Task{taskAt("10:00")})
	if !got.DistributeTasksAcrossDays {
		t.Errorf("conflict did not set distribute hint")
	}

	got = PrepareRequest(req, []model.Task{taskAt("14:00")})
	if got.DistributeTasksAcrossDays {
		t.Errorf("hint set without conflict")
	}
}
