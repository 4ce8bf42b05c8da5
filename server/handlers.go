package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/planward/planward/internal/model"
	"github.com/planward/planward/internal/planner"
	"github.com/planward/planward/internal/stats"
	"github.com/planward/planward/internal/temporal"
)

type errorResponse struct {
	Error string `json:"error"`
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

// --- objectives ---

func (s *Server) handleListObjectives(c echo.Context) error {
	return c.JSON(http.StatusOK, s.svc.Objectives())
}

func (s *Server) handleGetObjective(c echo.Context) error {
	o, ok := s.svc.Objective(c.Param("id"))
	if !ok {
		return notFound(c, "objective not found")
	}
	return c.JSON(http.StatusOK, o)
}

type createObjectiveRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	TotalHours  float64 `json:"totalHours"`
	StartDate   string  `json:"startDate"` // "YYYY-MM-DD", optional
	EndDate     string  `json:"endDate"`
}

// parseDate accepts the wire date format, empty meaning unset
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

func (s *Server) handleCreateObjective(c echo.Context) error {
	var req createObjectiveRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Title == "" {
		return badRequest(c, "title is required")
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return badRequest(c, "startDate must be YYYY-MM-DD")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return badRequest(c, "endDate must be YYYY-MM-DD")
	}

	o := model.NewObjective("obj-"+uuid.NewString(), req.Title, req.Description, model.ParseCategory(req.Category))
	o.TotalHours = req.TotalHours
	o.StartDate = start
	o.EndDate = end

	created, err := s.svc.CreateObjective(o)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateObjective(c echo.Context) error {
	var o model.Objective
	if err := c.Bind(&o); err != nil {
		return badRequest(c, "invalid request body")
	}
	o.ID = c.Param("id")
	if err := s.svc.UpdateObjective(o); err != nil {
		return notFound(c, err.Error())
	}
	return c.JSON(http.StatusOK, o)
}

func (s *Server) handleDeleteObjective(c echo.Context) error {
	if err := s.svc.DeleteObjective(c.Param("id")); err != nil {
		return notFound(c, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleObjectiveProgress(c echo.Context) error {
	id := c.Param("id")
	o, ok := s.svc.Objective(id)
	if !ok {
		return notFound(c, "objective not found")
	}
	completed := s.svc.ObjectiveProgress(id)
	percent := 0.0
	if o.TotalHours > 0 {
		percent = temporal.Round1(100 * completed / o.TotalHours)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"objectiveId":    id,
		"completedHours": completed,
		"totalHours":     o.TotalHours,
		"percent":        percent,
	})
}

// --- tasks ---

func (s *Server) handleListTasks(c echo.Context) error {
	if d := c.QueryParam("date"); d != "" {
		day, err := time.Parse("2006-01-02", d)
		if err != nil {
			return badRequest(c, "date must be YYYY-MM-DD")
		}
		return c.JSON(http.StatusOK, s.svc.TasksForDay(day))
	}
	return c.JSON(http.StatusOK, s.svc.Tasks())
}

type createTaskRequest struct {
	ObjectiveID     string `json:"objectiveId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ScheduledDate   string `json:"scheduledDate"` // "YYYY-MM-DD"
	ScheduledTime   string `json:"scheduledTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Title == "" {
		return badRequest(c, "title is required")
	}
	day, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return badRequest(c, "scheduledDate must be YYYY-MM-DD")
	}

	t := model.NewTask("", req.ObjectiveID, req.Title)
	t.Description = req.Description
	t.ScheduledDate = day
	t.ScheduledTime = req.ScheduledTime
	t.DurationMinutes = req.DurationMinutes

	created, err := s.svc.CreateTask(t)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	var t model.Task
	if err := c.Bind(&t); err != nil {
		return badRequest(c, "invalid request body")
	}
	t.ID = c.Param("id")
	if err := s.svc.UpdateTask(t); err != nil {
		return notFound(c, err.Error())
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	recurring := c.QueryParam("recurring") == "true"
	if err := s.svc.DeleteTask(c.Param("id"), recurring); err != nil {
		return notFound(c, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// --- timer ---

// timerAction resolves the task, applies op and returns the refreshed task.
func (s *Server) timerAction(c echo.Context, op func(id string)) error {
	t, err := s.svc.FindTask(c.Param("id"))
	if err != nil {
		return notFound(c, err.Error())
	}
	op(t.ID)
	s.svc.SyncObjectiveHours()

	updated, err := s.svc.FindTask(t.ID)
	if err != nil {
		return notFound(c, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) handleTimerStart(c echo.Context) error {
	return s.timerAction(c, s.engine.Start)
}

func (s *Server) handleTimerStop(c echo.Context) error {
	return s.timerAction(c, s.engine.Stop)
}

func (s *Server) handleComplete(c echo.Context) error {
	return s.timerAction(c, s.engine.Complete)
}

func (s *Server) handleUncomplete(c echo.Context) error {
	return s.timerAction(c, s.engine.Uncomplete)
}

// --- stats ---

func (s *Server) handleWeekStats(c echo.Context) error {
	ref := time.Now()
	if d := c.QueryParam("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return badRequest(c, "date must be YYYY-MM-DD")
		}
		ref = parsed
	}

	tasks := s.svc.Tasks()
	current := stats.CurrentWeek(tasks, ref)
	previous := stats.PreviousWeek(tasks, ref)
	trend, ok := stats.TrendDelta(current.TotalHoursCompleted, previous.TotalHoursCompleted)

	resp := map[string]any{
		"weekStart": temporal.DateKey(temporal.WeekStart(ref)),
		"current":   current,
		"previous":  previous,
		"weekdays":  stats.WeekdayProgress(tasks, ref),
	}
	if ok {
		resp["trend"] = trend
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleStreak(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]int{
		"streak": stats.Streak(s.svc.Tasks(), time.Now()),
	})
}

// --- plan ---

func (s *Server) handleGeneratePlan(c echo.Context) error {
	if s.planner == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "plan service not configured"})
	}

	var req model.PlanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	prepared := planner.PrepareRequest(req, s.svc.Tasks())
	preview, err := s.planner.GeneratePlan(c.Request().Context(), prepared)
	if err != nil {
		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, preview)
}

func (s *Server) handleAcceptPlan(c echo.Context) error {
	var preview model.PlanPreview
	if err := c.Bind(&preview); err != nil {
		return badRequest(c, "invalid request body")
	}

	obj, tasks, err := s.svc.AcceptPlan(preview)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"objective": obj,
		"tasks":     tasks,
	})
}
