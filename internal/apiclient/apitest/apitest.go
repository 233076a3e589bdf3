// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package apitest wires an [apiclient.Client] to a fake backend for tests.
package apitest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/navigate"
	"github.com/taibuivan/campus/internal/platform/sec/sectest"
	"github.com/taibuivan/campus/internal/session"
)

// Env is a client talking to an in-process backend.
type Env struct {
	Server    *httptest.Server
	Storage   *session.MemoryStore
	Guard     *session.Guard
	Navigator *navigate.Recorder
	Client    *apiclient.Client
}

// New starts backend and returns an anonymous client pointed at it.
func New(t testing.TB, backend http.Handler) *Env {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	storage := session.NewMemoryStore()
	navigator := &navigate.Recorder{}
	guard := session.NewGuard(session.NewTokenStore(storage), navigator, nil)

	return &Env{
		Server:    server,
		Storage:   storage,
		Guard:     guard,
		Navigator: navigator,
		Client:    apiclient.New(server.URL, guard, navigator),
	}
}

// SignIn stores a fresh token for subject with role and returns it.
func (env *Env) SignIn(t testing.TB, subject, role string) string {
	t.Helper()

	token := sectest.Token(t, subject, role, time.Hour)
	_, err := env.Guard.Establish(context.Background(), token, nil)
	require.NoError(t, err)
	return token
}

// JSON writes body as a JSON response with status.
func JSON(writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if raw, ok := body.(string); ok {
		_, _ = io.WriteString(writer, raw)
		return
	}
	_ = json.NewEncoder(writer).Encode(body)
}
