package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/planward/planward/internal/model"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{DataPath: filepath.Join(t.TempDir(), "planward.db")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.store.Close() })
	return s
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestObjectiveLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/objectives", map[string]any{
		"title":      "Learn Spanish",
		"category":   "study",
		"totalHours": 40,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	obj := decode[model.Objective](t, rec)
	if obj.ID == "" || obj.Title != "Learn Spanish" {
		t.Fatalf("unexpected objective: %+v", obj)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/objectives/"+obj.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = do(t, s, http.MethodDelete, "/api/v1/objectives/"+obj.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = do(t, s, http.MethodGet, "/api/v1/objectives/"+obj.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
}

func TestCreateObjectiveRequiresTitle(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/objectives", map[string]any{"category": "health"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteObjectiveCascadesOverHTTP(t *testing.T) {
	s := newTestServer(t)

	obj := decode[model.Objective](t, do(t, s, http.MethodPost, "/api/v1/objectives",
		map[string]any{"title": "Guitar"}))
	task := decode[model.Task](t, do(t, s, http.MethodPost, "/api/v1/tasks", map[string]any{
		"objectiveId":     obj.ID,
		"title":           "Practice scales",
		"scheduledDate":   "2026-08-29",
		"durationMinutes": 30,
	}))
	if task.ID == "" {
		t.Fatal("task was not created")
	}

	do(t, s, http.MethodDelete, "/api/v1/objectives/"+obj.ID, nil)

	tasks := decode[[]model.Task](t, do(t, s, http.MethodGet, "/api/v1/tasks", nil))
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks after cascade, got %d", len(tasks))
	}
}

func TestTimerEndpoints(t *testing.T) {
	s := newTestServer(t)

	obj := decode[model.Objective](t, do(t, s, http.MethodPost, "/api/v1/objectives",
		map[string]any{"title": "Reading"}))
	task := decode[model.Task](t, do(t, s, http.MethodPost, "/api/v1/tasks", map[string]any{
		"objectiveId":     obj.ID,
		"title":           "Chapter 3",
		"scheduledDate":   "2026-08-29",
		"durationMinutes": 25,
	}))

	rec := do(t, s, http.MethodPost, "/api/v1/tasks/"+task.ID+"/timer/start", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("start status = %d", rec.Code)
	}
	started := decode[model.Task](t, rec)
	if !started.Timer.Running || started.Status != model.TaskInProgress {
		t.Fatalf("task not running after start: %+v", started)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/tasks/"+task.ID+"/complete", nil)
	completed := decode[model.Task](t, rec)
	if completed.Status != model.TaskCompleted || completed.Timer.Running {
		t.Fatalf("task not completed: %+v", completed)
	}
	if completed.CompletedMinutes != completed.DurationMinutes {
		t.Fatalf("completed minutes = %d, want %d", completed.CompletedMinutes, completed.DurationMinutes)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/tasks/"+task.ID+"/uncomplete", nil)
	reset := decode[model.Task](t, rec)
	if reset.Status != model.TaskPending || reset.CompletedMinutes != 0 {
		t.Fatalf("task not reset: %+v", reset)
	}
}

func TestConcurrentTimerTraffic(t *testing.T) {
	s := newTestServer(t)

	obj := decode[model.Objective](t, do(t, s, http.MethodPost, "/api/v1/objectives",
		map[string]any{"title": "Deep work"}))
	var ids []string
	for i := 0; i < 4; i++ {
		task := decode[model.Task](t, do(t, s, http.MethodPost, "/api/v1/tasks", map[string]any{
			"objectiveId":     obj.ID,
			"title":           fmt.Sprintf("Session %d", i),
			"scheduledDate":   "2026-08-29",
			"durationMinutes": 25,
		}))
		ids = append(ids, task.ID)
	}

	// Hammer start/stop from parallel goroutines while the flush job runs:
	// the serializing lock is what keeps the single-writer engine safe here.
	stopFlush := make(chan struct{})
	var flushWG sync.WaitGroup
	flushWG.Add(1)
	go func() {
		defer flushWG.Done()
		for {
			select {
			case <-stopFlush:
				return
			default:
				s.flusher.job()
			}
		}
	}()

	hit := func(path string) {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func(id string) {
				defer wg.Done()
				hit("/api/v1/tasks/" + id + "/timer/start")
			}(id)
			go func(id string) {
				defer wg.Done()
				hit("/api/v1/tasks/" + id + "/timer/stop")
			}(id)
		}
	}
	wg.Wait()
	close(stopFlush)
	flushWG.Wait()

	running := 0
	for _, task := range s.svc.Tasks() {
		if task.Timer.Running {
			running++
		}
		if task.CompletedMinutes < 0 || task.CompletedMinutes > task.DurationMinutes {
			t.Errorf("task %s accrued %d minutes of a %d minute budget",
				task.ID, task.CompletedMinutes, task.DurationMinutes)
		}
	}
	if running > 1 {
		t.Errorf("%d timers running, want at most 1", running)
	}
}

func TestTimerStartUnknownTask(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/tasks/nope/timer/start", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestTasksByDate(t *testing.T) {
	s := newTestServer(t)

	obj := decode[model.Objective](t, do(t, s, http.MethodPost, "/api/v1/objectives",
		map[string]any{"title": "Running"}))
	for _, date := range []string{"2026-08-28", "2026-08-29"} {
		do(t, s, http.MethodPost, "/api/v1/tasks", map[string]any{
			"objectiveId":     obj.ID,
			"title":           "Morning run",
			"scheduledDate":   date,
			"durationMinutes": 45,
		})
	}

	tasks := decode[[]model.Task](t, do(t, s, http.MethodGet, "/api/v1/tasks?date=2026-08-29", nil))
	if len(tasks) != 1 || tasks[0].ScheduledDate.Format("2006-01-02") != "2026-08-29" {
		t.Fatalf("unexpected tasks for day: %+v", tasks)
	}

	rec := do(t, s, http.MethodGet, "/api/v1/tasks?date=not-a-date", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestWeekStats(t *testing.T) {
	s := newTestServer(t)

	obj := decode[model.Objective](t, do(t, s, http.MethodPost, "/api/v1/objectives",
		map[string]any{"title": "Writing"}))
	task := decode[model.Task](t, do(t, s, http.MethodPost, "/api/v1/tasks", map[string]any{
		"objectiveId":     obj.ID,
		"title":           "Draft",
		"scheduledDate":   "2026-08-26",
		"durationMinutes": 60,
	}))
	do(t, s, http.MethodPost, "/api/v1/tasks/"+task.ID+"/complete", nil)

	rec := do(t, s, http.MethodGet, "/api/v1/stats/week?date=2026-08-26", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[map[string]json.RawMessage](t, rec)
	if string(resp["weekStart"]) != `"2026-08-24"` {
		t.Fatalf("weekStart = %s, want 2026-08-24", resp["weekStart"])
	}
	var current struct {
		TotalTasksCompleted int `json:"totalTasksCompleted"`
	}
	if err := json.Unmarshal(resp["current"], &current); err != nil {
		t.Fatalf("decode current: %v", err)
	}
	if current.TotalTasksCompleted != 1 {
		t.Fatalf("totalTasksCompleted = %d, want 1", current.TotalTasksCompleted)
	}
}

func TestGeneratePlanUnconfigured(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/plan/generate", map[string]any{})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestAcceptPlanOverHTTP(t *testing.T) {
	s := newTestServer(t)

	preview := model.PlanPreview{
		Objective: model.PlanObjective{
			Title:    "Morning French",
			Category: "study",
		},
		Tasks: []model.PlanTask{{
			Title: "Vocabulary drill",
			Planning: model.PlanPlanning{
				TotalPlannedMinutes:   60,
				SessionPlannedMinutes: 30,
			},
			Schedule: model.PlanSchedule{
				Time:      "08:00",
				StartDate: "2099-01-05",
				EndDate:   "2099-01-11",
				Rule:      model.PlanScheduleRule{DaysOfWeek: []int{1, 3}},
			},
		}},
	}

	rec := do(t, s, http.MethodPost, "/api/v1/plan/accept", preview)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Objective model.Objective `json:"objective"`
		Tasks     []model.Task    `json:"tasks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Objective.Title != "Morning French" {
		t.Fatalf("objective title = %q", resp.Objective.Title)
	}
	if len(resp.Tasks) != 2 {
		t.Fatalf("expected 2 expanded instances, got %d", len(resp.Tasks))
	}
}
