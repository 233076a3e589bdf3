// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the console router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary of the local console.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Role checks happen here, once per route group, through the route guard.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/campus/internal/core/assignment"
	"github.com/taibuivan/campus/internal/core/attendance"
	"github.com/taibuivan/campus/internal/core/course"
	"github.com/taibuivan/campus/internal/core/exercise"
	"github.com/taibuivan/campus/internal/core/message"
	"github.com/taibuivan/campus/internal/core/university"
	"github.com/taibuivan/campus/internal/export"
	"github.com/taibuivan/campus/internal/platform/config"
	"github.com/taibuivan/campus/internal/platform/constants"
	"github.com/taibuivan/campus/internal/platform/middleware"
	"github.com/taibuivan/campus/internal/platform/sec"
	"github.com/taibuivan/campus/internal/routeguard"
	"github.com/taibuivan/campus/internal/users/account"
	"github.com/taibuivan/campus/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once by the serve command with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It answers 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It answers 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Metrics exposes the Prometheus registry. Optional.
	Metrics http.Handler

	// Auth handles sign-in, registration and the current identity.
	Auth *auth.Handler

	// University serves the public search and super-admin management.
	University *university.Handler

	// Account manages a university's teachers and students.
	Account *account.Handler

	// Course covers courses, classes and weekly schedules for every role.
	Course *course.Handler

	Assignment *assignment.Handler
	Attendance *attendance.Handler
	Message    *message.Handler

	// Exercise generates practice sets from uploaded PDFs.
	Exercise *exercise.Handler

	// Export turns backend lists into CSV or JSON files.
	Export *export.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. tracker may be nil when no idle timer runs.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, checker routeguard.SessionChecker, tracker middleware.ActivityTracker, h Handlers) *Server {
	r := chi.NewRouter()
	guard := routeguard.New(checker)
	screens := &pages{session: checker}

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.NewRateLimiter(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst).Handler)
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Navigation())
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	// # User Routes
	// Only these count as activity for the idle timer; health checks and metric scrapes do not.
	r.Group(func(user chi.Router) {
		if tracker != nil {
			user.Use(middleware.Activity(tracker))
		}

		// # Public Pages
		user.Get("/", screens.home)
		user.Get(constants.LoginPath, screens.login)
		user.Get("/register", screens.register)
		user.Get(constants.UnauthorizedPath, screens.unauthorized)
		user.Get(constants.MaintenancePath, screens.maintenance)

		h.Auth.RegisterRoutes(user)
		user.Route("/universities", h.University.RegisterPublicRoutes)

		// # Role Groups
		// Each group is checked against the token's role before its handlers run.
		user.Route(sec.RoleSuperAdmin.HomePath(), func(admin chi.Router) {
			admin.Use(guard.Require(sec.RoleSuperAdmin))
			admin.Get("/", screens.dashboard)
			admin.Route("/universities", h.University.RegisterRoutes)
		})

		user.Route(sec.RoleUniversityAdmin.HomePath(), func(admin chi.Router) {
			admin.Use(guard.Require(sec.RoleUniversityAdmin))
			admin.Get("/", screens.dashboard)
			h.Account.RegisterRoutes(admin)
			h.Course.RegisterAdminRoutes(admin)
		})

		user.Route(sec.RoleTeacher.HomePath(), func(teacher chi.Router) {
			teacher.Use(guard.Require(sec.RoleTeacher))
			teacher.Get("/", screens.dashboard)
			h.Course.RegisterTeacherRoutes(teacher)
			h.Assignment.RegisterTeacherRoutes(teacher)
			h.Attendance.RegisterTeacherRoutes(teacher)
		})

		user.Route(sec.RoleStudent.HomePath(), func(student chi.Router) {
			student.Use(guard.Require(sec.RoleStudent))
			student.Get("/", screens.dashboard)
			h.Course.RegisterStudentRoutes(student)
			h.Assignment.RegisterStudentRoutes(student)
			h.Attendance.RegisterStudentRoutes(student)
			h.Exercise.RegisterRoutes(student)
		})

		// # Shared Screens
		// Any signed-in role.
		user.Route("/messages", func(inbox chi.Router) {
			inbox.Use(guard.Require())
			h.Message.RegisterRoutes(inbox)
		})

		user.Route("/exports", func(exports chi.Router) {
			exports.Use(guard.Require())
			h.Export.RegisterRoutes(exports)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              "127.0.0.1:" + cfg.ConsolePort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleConnTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr is the address the console listens on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("console_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
