// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/taibuivan/campus/internal/api"
	"github.com/taibuivan/campus/internal/core/assignment"
	"github.com/taibuivan/campus/internal/core/attendance"
	"github.com/taibuivan/campus/internal/core/course"
	"github.com/taibuivan/campus/internal/core/exercise"
	"github.com/taibuivan/campus/internal/core/message"
	"github.com/taibuivan/campus/internal/core/university"
	"github.com/taibuivan/campus/internal/export"
	"github.com/taibuivan/campus/internal/notify"
	"github.com/taibuivan/campus/internal/platform/constants"
	"github.com/taibuivan/campus/internal/session"
	"github.com/taibuivan/campus/internal/users/account"
	"github.com/taibuivan/campus/internal/users/auth"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local console",
		Long: `Serve the local console on 127.0.0.1.

Every page is checked against the signed-in role before it is produced. The
session ends after IDLE_TIMEOUT without a request; a 401 from the backend
ends it immediately and a 503 sends the browser to /maintenance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags, port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default CONSOLE_PORT)")

	return cmd
}

func runServe(parent context.Context, flags *globalFlags, port string) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// The console is long-running; its logs are meant for collectors.
	flags.jsonLogs = true
	application, err := openApp(ctx, flags, slog.LevelInfo)
	if err != nil {
		return err
	}
	defer application.Close()

	cfg := application.cfg
	log := application.log
	if port != "" {
		cfg.ConsolePort = port
	}

	// # Idle Timer
	// Fires once per armed period; the logout runs outside any request, so the
	// navigation falls back to the terminal announcement.
	idle := session.NewIdleTimer(cfg.IdleTimeout, func() {
		application.guard.LogoutFor(context.Background(), session.ReasonIdle)
	})
	defer idle.Stop()

	// Any logout disarms the countdown, including one forced by a backend 401.
	application.guard.OnLogout(func(session.LogoutReason) { idle.Stop() })
	if application.guard.IsAuthenticated(ctx) {
		idle.Start()
	}

	// # Health
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckSession: sessionCheck(application.storage),
		CheckBackend: backendCheck(cfg.APIBaseURL),
	}, log)

	// # Domain Wiring
	client := application.client
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Metrics:    promhttp.HandlerFor(application.registry, promhttp.HandlerOpts{}),
		Auth:       auth.NewHandler(auth.NewService(client, application.guard), idle),
		University: university.NewHandler(university.NewService(client)),
		Account:    account.NewHandler(account.NewService(client)),
		Course:     course.NewHandler(course.NewService(client)),
		Assignment: assignment.NewHandler(assignment.NewService(client)),
		Attendance: attendance.NewHandler(attendance.NewService(client)),
		Message:    message.NewHandler(message.NewService(client)),
		Exercise:   exercise.NewHandler(exercise.NewService(client)),
		Export:     export.NewHandler(export.NewService(client, application.exportSink())),
	}

	server := api.NewServer(ctx, cfg, log, application.guard, idle, handlers)

	// # Graceful Shutdown
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	application.notifier.Notify(ctx, "Console", "Listening on http://"+server.Addr(), notify.SeverityInfo)

	select {
	case <-ctx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("console_start_failed", slog.Any("error", err))
		return err
	}

	log.Info("console_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("console_stopped")
	return nil
}

// sessionCheck pings shared session backends. Local stores have nothing to ping.
func sessionCheck(storage session.Storage) func(ctx context.Context) error {
	pinger, ok := storage.(session.Pinger)
	if !ok {
		return nil
	}
	return pinger.Ping
}

// backendCheck reports the REST backend as ready when it answers below 500.
func backendCheck(baseURL string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		request, err := http.NewRequestWithContext(ctx, http.MethodHead, baseURL, nil)
		if err != nil {
			return err
		}
		response, err := http.DefaultClient.Do(request)
		if err != nil {
			return err
		}
		response.Body.Close()
		if response.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("backend answered %d", response.StatusCode)
		}
		return nil
	}
}
