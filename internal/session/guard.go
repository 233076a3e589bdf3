// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/taibuivan/campus/internal/navigate"
	"github.com/taibuivan/campus/internal/platform/apperr"
	"github.com/taibuivan/campus/internal/platform/constants"
	"github.com/taibuivan/campus/internal/platform/ctxutil"
	"github.com/taibuivan/campus/internal/platform/metrics"
	"github.com/taibuivan/campus/internal/platform/sec"
)

// # Session State

// State is the session-level lifecycle position.
type State int

const (
	StateAnonymous State = iota
	StateActive
	StateExpired
)

// String implements [fmt.Stringer].
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateExpired:
		return "expired"
	default:
		return "anonymous"
	}
}

// LogoutReason labels why a session was terminated.
type LogoutReason string

const (
	ReasonExplicit       LogoutReason = "explicit"
	ReasonInvalidSession LogoutReason = "invalid_session"
	ReasonUnauthorized   LogoutReason = "unauthorized"
	ReasonIdle           LogoutReason = "idle"
)

// # Guard

// Guard is the single decision point for "may the caller act as an
// authenticated user". It never writes storage itself; all writes go through
// the [TokenStore].
type Guard struct {
	store     *TokenStore
	navigator navigate.Navigator
	logger    *slog.Logger
	metrics   *metrics.Metrics

	hooksMu sync.Mutex
	hooks   []func(LogoutReason)
}

// GuardOption configures a [Guard].
type GuardOption func(*Guard)

// WithMetrics counts forced logouts.
func WithMetrics(collectors *metrics.Metrics) GuardOption {
	return func(guard *Guard) {
		guard.metrics = collectors
	}
}

// NewGuard builds a guard over store. navigator receives the login navigation
// issued by every logout.
func NewGuard(store *TokenStore, navigator navigate.Navigator, logger *slog.Logger, opts ...GuardOption) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	guard := &Guard{store: store, navigator: navigator, logger: logger}
	for _, opt := range opts {
		opt(guard)
	}
	return guard
}

// OnLogout registers hook to run after every logout, e.g. to disarm an
// [IdleTimer] when the backend ends the session first.
func (guard *Guard) OnLogout(hook func(LogoutReason)) {
	guard.hooksMu.Lock()
	defer guard.hooksMu.Unlock()
	guard.hooks = append(guard.hooks, hook)
}

// Store returns the underlying [TokenStore].
func (guard *Guard) Store() *TokenStore { return guard.store }

// State classifies the current session. Storage failures read as anonymous.
func (guard *Guard) State(ctx context.Context) State {
	token, err := guard.store.Token(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			guard.log(ctx).Warn("session_state_unreadable", slog.Any("error", err))
		}
		return StateAnonymous
	}
	if guard.store.IsExpired(token) {
		return StateExpired
	}
	return StateActive
}

// IsAuthenticated reports whether a token is present and unexpired. It never
// fails: a malformed token or an unreadable store both yield false.
func (guard *Guard) IsAuthenticated(ctx context.Context) bool {
	return guard.State(ctx) == StateActive
}

// AuthHeader returns a header carrying "Authorization: Bearer <token>" when the
// session is active, and an empty header otherwise. The result is always
// non-nil so callers can merge it unconditionally.
func (guard *Guard) AuthHeader(ctx context.Context) http.Header {
	header := make(http.Header)
	token, err := guard.store.Token(ctx)
	if err != nil || guard.store.IsExpired(token) {
		return header
	}
	header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	return header
}

// EnforceOrLogout returns true for an active session. Otherwise it logs the
// user out and returns false; callers must abort on false.
func (guard *Guard) EnforceOrLogout(ctx context.Context) bool {
	if guard.IsAuthenticated(ctx) {
		return true
	}
	guard.LogoutFor(ctx, ReasonInvalidSession)
	return false
}

// Logout clears the session and navigates to the login entry point.
func (guard *Guard) Logout(ctx context.Context) {
	guard.LogoutFor(ctx, ReasonExplicit)
}

// LogoutFor is [Guard.Logout] with a reason for logs and metrics.
//
// It is terminal and idempotent. Storage removal ignores cancellation of ctx,
// and a failing store is logged, never returned.
func (guard *Guard) LogoutFor(ctx context.Context, reason LogoutReason) {
	if err := guard.store.Remove(context.WithoutCancel(ctx)); err != nil {
		guard.log(ctx).Error("session_remove_failed",
			slog.String("reason", string(reason)),
			slog.Any("error", err),
		)
	}

	if reason != ReasonExplicit {
		guard.metrics.ForcedLogout(string(reason))
		guard.log(ctx).Info("session_forced_logout", slog.String("reason", string(reason)))
	}

	guard.hooksMu.Lock()
	hooks := append([]func(LogoutReason){}, guard.hooks...)
	guard.hooksMu.Unlock()
	for _, hook := range hooks {
		hook(reason)
	}

	if guard.navigator != nil {
		guard.navigator.Navigate(ctx, constants.LoginPath)
	}
}

// Establish starts a session from a freshly issued token (login or
// registration). A token that cannot be decoded, or is already expired, is
// rejected and nothing is stored. When profile is nil one is derived from the
// claims.
func (guard *Guard) Establish(ctx context.Context, token string, profile *Profile) (*sec.Claims, error) {
	claims, err := guard.store.Decode(token)
	if err != nil {
		return nil, err
	}
	if guard.store.IsExpired(token) {
		return nil, apperr.SessionExpired()
	}

	if profile == nil {
		derived := ProfileFromClaims(claims)
		profile = &derived
	}

	if err := guard.store.SetToken(ctx, token); err != nil {
		return nil, apperr.Internal(err)
	}
	if err := guard.store.SetProfile(ctx, *profile); err != nil {
		// Keep both keys or neither.
		_ = guard.store.Remove(context.WithoutCancel(ctx))
		return nil, apperr.Internal(err)
	}

	guard.log(ctx).Info("session_established",
		slog.String("user_id", claims.SubjectID()),
		slog.String("role", string(claims.Role())),
	)
	return claims, nil
}

// Claims returns the decoded claims of the active session, or
// AUTHENTICATION_REQUIRED when there is none.
func (guard *Guard) Claims(ctx context.Context) (*sec.Claims, error) {
	token, err := guard.store.Token(ctx)
	if err != nil {
		return nil, apperr.AuthenticationRequired()
	}
	claims, err := guard.store.Decode(token)
	if err != nil || guard.store.IsExpired(token) {
		return nil, apperr.AuthenticationRequired()
	}
	return claims, nil
}

// Role returns the role carried by the token of the active session, or
// [sec.RoleUnknown]. The cached profile is never consulted.
func (guard *Guard) Role(ctx context.Context) sec.Role {
	claims, err := guard.Claims(ctx)
	if err != nil {
		return sec.RoleUnknown
	}
	return claims.Role()
}

func (guard *Guard) log(ctx context.Context) *slog.Logger {
	return ctxutil.LoggerOr(ctx, guard.logger)
}
