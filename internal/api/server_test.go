// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campus/internal/api"
	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/core/assignment"
	"github.com/taibuivan/campus/internal/core/attendance"
	"github.com/taibuivan/campus/internal/core/course"
	"github.com/taibuivan/campus/internal/core/exercise"
	"github.com/taibuivan/campus/internal/core/message"
	"github.com/taibuivan/campus/internal/core/university"
	"github.com/taibuivan/campus/internal/export"
	"github.com/taibuivan/campus/internal/navigate"
	"github.com/taibuivan/campus/internal/platform/config"
	"github.com/taibuivan/campus/internal/platform/constants"
	"github.com/taibuivan/campus/internal/platform/sec/sectest"
	"github.com/taibuivan/campus/internal/session"
	"github.com/taibuivan/campus/internal/users/account"
	"github.com/taibuivan/campus/internal/users/auth"
)

type activitySpy struct {
	touches atomic.Int32
}

func (spy *activitySpy) Touch() { spy.touches.Add(1) }

type console struct {
	handler  http.Handler
	guard    *session.Guard
	activity *activitySpy
}

// newConsole wires the full console against a fake backend.
func newConsole(t *testing.T, backend http.Handler) *console {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	navigator := navigate.Scoped(&navigate.Recorder{})
	guard := session.NewGuard(session.NewTokenStore(session.NewMemoryStore()), navigator, logger)
	client := apiclient.New(server.URL, guard, navigator)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, logger)
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics: http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(writer, "campus_api_requests_total 0\n")
		}),
		Auth:       auth.NewHandler(auth.NewService(client, guard), nil),
		University: university.NewHandler(university.NewService(client)),
		Account:    account.NewHandler(account.NewService(client)),
		Course:     course.NewHandler(course.NewService(client)),
		Assignment: assignment.NewHandler(assignment.NewService(client)),
		Attendance: attendance.NewHandler(attendance.NewService(client)),
		Message:    message.NewHandler(message.NewService(client)),
		Exercise:   exercise.NewHandler(exercise.NewService(client)),
		Export:     export.NewHandler(export.NewService(client, export.NewDirSink(t.TempDir()))),
	}

	spy := &activitySpy{}
	cfg := &config.Config{ConsolePort: "0"}

	return &console{
		handler:  api.NewServer(ctx, cfg, logger, guard, spy, handlers).Handler(),
		guard:    guard,
		activity: spy,
	}
}

func (c *console) signIn(t *testing.T, role string) {
	t.Helper()
	_, err := c.guard.Establish(context.Background(), sectest.Token(t, "7", role, time.Hour), nil)
	require.NoError(t, err)
}

func (c *console) get(path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	c.handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

func backend() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /student/courses", func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(writer, `[{"id":"c1","code":"MATH101","name":"Algebra","credits":3}]`)
	})
	mux.HandleFunc("GET /teacher/classes", func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(writer, `{"message":"jwt expired"}`)
	})
	mux.HandleFunc("GET /student/grades", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusServiceUnavailable)
	})
	return mux
}

func TestServer_RouteGuard(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		path     string
		status   int
		location string
	}{
		{"anonymous to protected", "", "/student/courses", http.StatusSeeOther, constants.LoginPath},
		{"anonymous to shared", "", "/messages/inbox", http.StatusSeeOther, constants.LoginPath},
		{"wrong role", "teacher", "/student/courses", http.StatusSeeOther, constants.UnauthorizedPath},
		{"admin is not a student", "super-admin", "/student/courses", http.StatusSeeOther, constants.UnauthorizedPath},
		{"right role", "student", "/student/courses", http.StatusOK, ""},
		{"role alias", "learner", "/student/courses", http.StatusOK, ""},
		{"dashboard", "teacher", "/teacher", http.StatusOK, ""},
		{"root anonymous", "", "/", http.StatusSeeOther, constants.LoginPath},
		{"root signed in", "university-admin", "/", http.StatusSeeOther, "/university-admin"},
		{"login page while signed in", "student", "/login", http.StatusSeeOther, "/student"},
		{"login page", "", "/login", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConsole(t, backend())
			if tt.role != "" {
				c.signIn(t, tt.role)
			}

			recorder := c.get(tt.path)

			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.location, recorder.Header().Get("Location"))
			assert.Equal(t, tt.role != "", c.guard.IsAuthenticated(context.Background()),
				"the route guard never touches the session")
		})
	}
}

func TestServer_ProtectedPageServesBackendData(t *testing.T) {
	c := newConsole(t, backend())
	c.signIn(t, "student")

	recorder := c.get("/student/courses")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Algebra")
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
	assert.Equal(t, int32(1), c.activity.touches.Load())
}

func TestServer_BackendUnauthorizedEndsSession(t *testing.T) {
	c := newConsole(t, backend())
	c.signIn(t, "teacher")

	recorder := c.get("/teacher/classes")

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, constants.LoginPath, recorder.Header().Get("Location"))
	assert.False(t, c.guard.IsAuthenticated(context.Background()))
}

func TestServer_MaintenanceKeepsSession(t *testing.T) {
	c := newConsole(t, backend())
	c.signIn(t, "student")

	recorder := c.get("/student/grades")

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, constants.MaintenancePath, recorder.Header().Get("Location"))
	assert.True(t, c.guard.IsAuthenticated(context.Background()))

	page := c.get(constants.MaintenancePath)
	assert.Equal(t, http.StatusServiceUnavailable, page.Code)
}

func TestServer_UnauthorizedPageLinksHome(t *testing.T) {
	c := newConsole(t, backend())
	c.signIn(t, "teacher")

	recorder := c.get(constants.UnauthorizedPath)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"home":"/teacher"`)
}

func TestServer_InfrastructureIsNotActivity(t *testing.T) {
	c := newConsole(t, backend())
	c.signIn(t, "student")

	for range 3 {
		for _, path := range []string{"/health", "/ready", "/metrics"} {
			require.Equal(t, http.StatusOK, c.get(path).Code, path)
		}
	}
	assert.Equal(t, int32(0), c.activity.touches.Load())

	c.get("/student/courses")
	c.get(constants.LoginPath)
	assert.Equal(t, int32(2), c.activity.touches.Load())
}

func TestServer_Health(t *testing.T) {
	c := newConsole(t, backend())

	assert.Equal(t, http.StatusOK, c.get("/health").Code)
	assert.Equal(t, http.StatusOK, c.get("/ready").Code)
}
