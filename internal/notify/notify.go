// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package notify decouples user-facing feedback from the session and
// transport core.
//
// Callers that catch errors (CLI commands, console pages) receive a [Notifier]
// and report through it; nothing below them ever renders feedback.
//
//	if err := svc.Submit(ctx, id, form); err != nil {
//	    notify.Error(ctx, notifier, "Submission", err)
//	    return err
//	}
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/taibuivan/campus/internal/platform/apperr"
)

// Severity is the feedback level.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier delivers one piece of feedback.
type Notifier interface {
	Notify(ctx context.Context, title, message string, severity Severity)
}

// Notice is a delivered notification.
type Notice struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"level"`
}

// Error reports err through notifier with a severity derived from its code.
// Maintenance is a warning, everything else an error.
func Error(ctx context.Context, notifier Notifier, title string, err error) {
	if notifier == nil || err == nil {
		return
	}
	severity := SeverityError
	if errors.Is(err, apperr.ErrServiceUnavailable) {
		severity = SeverityWarning
	}
	message := err.Error()
	if ae := apperr.As(err); ae != nil {
		message = ae.Message
	}
	notifier.Notify(ctx, title, message, severity)
}

// # Implementations

// Log writes notifications to a structured logger.
type Log struct {
	Logger *slog.Logger
}

// Notify implements [Notifier].
func (l Log) Notify(ctx context.Context, title, message string, severity Severity) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	switch severity {
	case SeverityWarning:
		level = slog.LevelWarn
	case SeverityError:
		level = slog.LevelError
	}
	logger.Log(ctx, level, "user_notification",
		slog.String("title", title),
		slog.String("message", message),
		slog.String("severity", string(severity)),
	)
}

// Writer prints notifications for a terminal.
type Writer struct {
	Out   io.Writer
	Color bool
}

var symbols = map[Severity]string{
	SeveritySuccess: "\033[32m✓\033[0m",
	SeverityInfo:    "\033[36mi\033[0m",
	SeverityWarning: "\033[33m⚠\033[0m",
	SeverityError:   "\033[31m✗\033[0m",
}

// Notify implements [Notifier].
func (w Writer) Notify(_ context.Context, title, message string, severity Severity) {
	prefix := "[" + string(severity) + "]"
	if w.Color {
		prefix = symbols[severity]
	}
	if title != "" {
		fmt.Fprintf(w.Out, "%s %s: %s\n", prefix, title, message)
		return
	}
	fmt.Fprintf(w.Out, "%s %s\n", prefix, message)
}

// Recorder collects notifications, e.g. to attach them to a console page.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify implements [Notifier].
func (r *Recorder) Notify(_ context.Context, title, message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Title: title, Message: message, Severity: severity})
}

// Notices returns a copy of what was recorded.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Multi fans out to several notifiers.
type Multi []Notifier

// Notify implements [Notifier].
func (m Multi) Notify(ctx context.Context, title, message string, severity Severity) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, title, message, severity)
		}
	}
}
