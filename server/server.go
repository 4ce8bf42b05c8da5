// Package server exposes the planning engine over HTTP: objective and task
// CRUD, timer control, statistics and plan generation, all backed by the
// same store the CLI uses.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/planward/planward/internal/logger"
	"github.com/planward/planward/internal/planner"
	"github.com/planward/planward/internal/service"
	"github.com/planward/planward/internal/store"
	"github.com/planward/planward/internal/timer"
)

// Server is the planning API server
type Server struct {
	store   *store.Store
	svc     *service.Service
	engine  *timer.Engine
	planner *planner.Client
	flusher *flusher
	echo    *echo.Echo

	// mu funnels every API request and the background flush through one
	// lock. The engine and service mutate whole collections under a
	// single-writer assumption; echo runs handlers concurrently, so the
	// serialization has to happen here.
	mu sync.Mutex
}

// Config holds server wiring options
type Config struct {
	// DatabaseURL selects Postgres; DataPath a local SQLite file. One of
	// the two must be set.
	DatabaseURL string
	DataPath    string

	// PlanServiceURL enables the plan-generation proxy endpoints
	PlanServiceURL string
	UserID         string
}

// New creates a server
func New(cfg Config) (*Server, error) {
	var st *store.Store
	var err error
	if cfg.DatabaseURL != "" {
		st, err = store.OpenDSN("postgres", cfg.DatabaseURL)
	} else {
		st, err = store.Open(cfg.DataPath)
	}
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:  st,
		svc:    service.New(st),
		engine: timer.New(st),
	}
	if cfg.PlanServiceURL != "" {
		s.planner = planner.NewClient(cfg.PlanServiceURL, cfg.UserID)
	}

	// Running timers accrue time server-side too: a once-per-second
	// flush keeps completed minutes within a sub-minute remainder of
	// the wall clock, like the interactive board's tick.
	s.flusher = newFlusher(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.engine.Flush()
		s.svc.SyncObjectiveHours()
	})

	s.setupEcho()
	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("HTTP request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("duration", time.Since(start).String()))
			return err
		}
	})
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", s.handleHealth)

	api := e.Group("/api/v1")
	api.Use(s.serialize)

	api.GET("/objectives", s.handleListObjectives)
	api.POST("/objectives", s.handleCreateObjective)
	api.GET("/objectives/:id", s.handleGetObjective)
	api.PUT("/objectives/:id", s.handleUpdateObjective)
	api.DELETE("/objectives/:id", s.handleDeleteObjective)
	api.GET("/objectives/:id/progress", s.handleObjectiveProgress)

	api.GET("/tasks", s.handleListTasks)
	api.POST("/tasks", s.handleCreateTask)
	api.PUT("/tasks/:id", s.handleUpdateTask)
	api.DELETE("/tasks/:id", s.handleDeleteTask)

	api.POST("/tasks/:id/timer/start", s.handleTimerStart)
	api.POST("/tasks/:id/timer/stop", s.handleTimerStop)
	api.POST("/tasks/:id/complete", s.handleComplete)
	api.POST("/tasks/:id/uncomplete", s.handleUncomplete)

	api.GET("/stats/week", s.handleWeekStats)
	api.GET("/stats/streak", s.handleStreak)

	api.POST("/plan/generate", s.handleGeneratePlan)
	api.POST("/plan/accept", s.handleAcceptPlan)

	s.echo = e
}

// Close stops the background flusher and the database connection
func (s *Server) Close() error {
	s.flusher.stop()
	return s.store.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the flusher and serves on addr
func (s *Server) Start(addr string) error {
	s.flusher.start()
	return s.echo.Start(addr)
}

// serialize holds the server lock for the duration of a request so API
// handlers never interleave with each other or with the flusher.
func (s *Server) serialize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return next(c)
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
