// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/export"
	"github.com/taibuivan/campus/internal/navigate"
	"github.com/taibuivan/campus/internal/notify"
	"github.com/taibuivan/campus/internal/platform/config"
	"github.com/taibuivan/campus/internal/platform/constants"
	"github.com/taibuivan/campus/internal/platform/metrics"
	"github.com/taibuivan/campus/internal/platform/migration"
	pgstore "github.com/taibuivan/campus/internal/platform/postgres"
	redisstore "github.com/taibuivan/campus/internal/platform/redis"
	"github.com/taibuivan/campus/internal/platform/tracing"
	"github.com/taibuivan/campus/internal/session"
)

// app holds everything a command needs, wired from the configuration.
type app struct {
	cfg       *config.Config
	log       *slog.Logger
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	storage   session.Storage
	guard     *session.Guard
	client    *apiclient.Client
	notifier  notify.Notifier
	navigator navigate.Navigator
	closers   []func()
}

// openApp loads the configuration and wires the session and transport layers.
// The caller must call Close.
func openApp(ctx context.Context, flags *globalFlags, level slog.Level) (*app, error) {

	// 1. Logger
	log := newLogger(flags, level)

	// 2. Configuration
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	log.Debug("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("api_base_url", cfg.APIBaseURL),
		slog.String("session_backend", string(cfg.SessionBackend)),
	)

	application := &app{
		cfg:      cfg,
		log:      log,
		registry: prometheus.NewRegistry(),
		notifier: notify.Writer{Out: os.Stderr, Color: isTerminal(os.Stderr)},
	}
	application.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	application.metrics = metrics.New(application.registry)

	// 3. Tracing
	clientOptions := []apiclient.ClientOption{
		apiclient.WithTimeout(cfg.RequestTimeout),
		apiclient.WithLogger(log),
		apiclient.WithMetrics(application.metrics),
	}
	provider, err := tracing.Setup(ctx, cfg, os.Stderr, log)
	if err != nil {
		return nil, err
	}
	if provider != nil {
		application.closers = append(application.closers, func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()
			if err := provider.Shutdown(flushCtx); err != nil {
				log.Warn("tracing_shutdown_failed", slog.Any("error", err))
			}
		})
		clientOptions = append(clientOptions, apiclient.WithTracer(provider.Tracer(apiclient.TracerName)))
	}

	// 4. Session backend
	if application.storage, err = application.openStorage(ctx); err != nil {
		application.Close()
		return nil, err
	}

	// 5. Session guard and API client
	application.navigator = navigate.Scoped(navigate.Func(application.announce))
	application.guard = session.NewGuard(
		session.NewTokenStore(application.storage),
		application.navigator,
		log,
		session.WithMetrics(application.metrics),
	)
	application.client = apiclient.New(cfg.APIBaseURL, application.guard, application.navigator, clientOptions...)

	return application, nil
}

// Close releases the session backend connections.
func (application *app) Close() {
	for i := len(application.closers) - 1; i >= 0; i-- {
		application.closers[i]()
	}
	application.closers = nil
}

// openStorage returns the configured session backend.
func (application *app) openStorage(ctx context.Context) (session.Storage, error) {
	cfg := application.cfg

	switch cfg.SessionBackend {
	case config.BackendMemory:
		return session.NewMemoryStore(), nil

	case config.BackendRedis:
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, application.log)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		application.closers = append(application.closers, func() {
			if err := client.Close(); err != nil {
				application.log.Error("redis_close_failed", slog.Any("error", err))
			}
		})
		return session.NewRedisStore(client, cfg.SessionKeyPrefix), nil

	case config.BackendPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, application.log)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		application.closers = append(application.closers, pool.Close)

		// Migrations are idempotent; the client_state table must exist before the first read.
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, application.log); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return session.NewPostgresStore(pool, cfg.SessionKeyPrefix), nil

	default:
		dir, err := stateDir(cfg)
		if err != nil {
			return nil, err
		}
		return session.NewFileStore(filepath.Join(dir, constants.StateFileName)), nil
	}
}

// announce is the terminal's navigator: the target cannot be opened, so the
// user is told what happened instead.
func (application *app) announce(ctx context.Context, target string) {
	switch target {
	case constants.LoginPath:
		application.notifier.Notify(ctx, "Session ended", `Run "campus login" to sign in again`, notify.SeverityWarning)
	case constants.MaintenancePath:
		application.notifier.Notify(ctx, "Maintenance", "The service is under maintenance. Please try again later.", notify.SeverityWarning)
	case constants.UnauthorizedPath:
		application.notifier.Notify(ctx, "Access denied", "Your role cannot open this page", notify.SeverityError)
	}
	application.log.Debug("navigation", slog.String("target", target))
}

// exportSink returns the S3 bucket when one is configured, else the export directory.
func (application *app) exportSink() export.Sink {
	cfg := application.cfg
	if !cfg.UsesS3() {
		return export.NewDirSink(cfg.ExportDir)
	}
	s3Config := export.S3Config{
		Bucket:          cfg.S3Bucket,
		Prefix:          cfg.S3Prefix,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	}
	return export.NewS3Sink(export.NewS3Client(s3Config), s3Config.Bucket, s3Config.Prefix)
}

// stateDir is STATE_DIR, or campus/ under the user's configuration directory.
func stateDir(cfg *config.Config) (string, error) {
	if cfg.StateDir != "" {
		return cfg.StateDir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve state directory: %w", err)
	}
	return filepath.Join(base, constants.AppName), nil
}

// isTerminal reports whether file is a character device, i.e. colors are safe.
func isTerminal(file *os.File) bool {
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
