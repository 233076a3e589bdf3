// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package routeguard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campus/internal/navigate"
	"github.com/taibuivan/campus/internal/platform/ctxutil"
	"github.com/taibuivan/campus/internal/platform/sec"
	"github.com/taibuivan/campus/internal/platform/sec/sectest"
	"github.com/taibuivan/campus/internal/routeguard"
	"github.com/taibuivan/campus/internal/session"
)

func newGuard(t *testing.T, token string, profile *session.Profile) *routeguard.Guard {
	t.Helper()
	store := session.NewTokenStore(session.NewMemoryStore())
	if token != "" {
		require.NoError(t, store.SetToken(context.Background(), token))
	}
	if profile != nil {
		require.NoError(t, store.SetProfile(context.Background(), *profile))
	}
	return routeguard.New(session.NewGuard(store, &navigate.Recorder{}, nil))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		allowed []sec.Role
		want    routeguard.Decision
	}{
		{"anonymous", "", []sec.Role{sec.RoleStudent}, routeguard.RedirectLogin},
		{"expired", sectest.Token(t, "1", "student", -time.Minute), []sec.Role{sec.RoleStudent}, routeguard.RedirectLogin},
		{"malformed", "x.y", nil, routeguard.RedirectLogin},
		{"allowed", sectest.Token(t, "1", "student", time.Hour), []sec.Role{sec.RoleStudent}, routeguard.Allow},
		{"alias_allowed", sectest.Token(t, "1", "admin", time.Hour), []sec.Role{sec.RoleSuperAdmin}, routeguard.Allow},
		{"wrong_role", sectest.Token(t, "1", "teacher", time.Hour), []sec.Role{sec.RoleStudent}, routeguard.RedirectUnauthorized},
		{"unknown_role", sectest.Token(t, "1", "janitor", time.Hour), nil, routeguard.RedirectUnauthorized},
		{"any_role", sectest.Token(t, "1", "teacher", time.Hour), nil, routeguard.Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, claims := newGuard(t, tt.token, nil).Check(context.Background(), tt.allowed...)
			assert.Equal(t, tt.want, decision)
			assert.Equal(t, tt.want == routeguard.Allow, claims != nil)
		})
	}
}

func TestCheck_IgnoresCachedProfileRole(t *testing.T) {
	token := sectest.Token(t, "1", "student", time.Hour)
	guard := newGuard(t, token, &session.Profile{ID: "1", Role: "super-admin"})

	decision, _ := guard.Check(context.Background(), sec.RoleSuperAdmin)
	assert.Equal(t, routeguard.RedirectUnauthorized, decision)
}

func TestRequire(t *testing.T) {
	rendered := false
	var subject string

	guard := newGuard(t, sectest.Token(t, "5", "teacher", time.Hour), nil)
	router := chi.NewRouter()
	router.With(guard.Require(sec.RoleTeacher)).Get("/teacher/classes", func(writer http.ResponseWriter, request *http.Request) {
		rendered = true
		subject = ctxutil.GetClaims(request.Context()).SubjectID()
		writer.WriteHeader(http.StatusOK)
	})
	router.With(guard.Require(sec.RoleStudent)).Get("/student/grades", func(http.ResponseWriter, *http.Request) {
		t.Fatal("protected view must not render")
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/teacher/classes", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, rendered)
	assert.Equal(t, "5", subject)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/student/grades", nil))
	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/unauthorized", recorder.Header().Get("Location"))
}
