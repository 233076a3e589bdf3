// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campus/internal/platform/migration"
	"github.com/taibuivan/campus/internal/platform/postgres"
	redisclient "github.com/taibuivan/campus/internal/platform/redis"
	"github.com/taibuivan/campus/internal/session"
)

func requireIntegration(t *testing.T, envVar string) string {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") != "1" {
		t.Skip("set INTEGRATION_TESTS=1 to run")
	}
	value := os.Getenv(envVar)
	if value == "" {
		t.Skipf("set %s to run", envVar)
	}
	return value
}

func TestRedisStore_Integration(t *testing.T) {
	url := requireIntegration(t, "REDIS_URL")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	client, err := redisclient.NewClient(context.Background(), url, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	exerciseStorage(t, session.NewRedisStore(client, "campus:test:"+t.Name()+":"))
}

func TestPostgresStore_Integration(t *testing.T) {
	dsn := requireIntegration(t, "DATABASE_URL")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	require.NoError(t, migration.RunUp(dsn, "../../data/migrations", logger))

	pool, err := postgres.NewPool(context.Background(), dsn, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	exerciseStorage(t, session.NewPostgresStore(pool, "campus:test:"+t.Name()+":"))
}
