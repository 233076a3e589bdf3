// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package routeguard gates console routes by session and role before any
// byte of the protected page is produced.
//
// # Flow
//  1. No active session: redirect to the login entry point.
//  2. Active session, role not allowed: redirect to the unauthorized page.
//  3. Otherwise the wrapped handler runs unchanged, with the claims in its context.
//
// The role always comes from the decoded token. The cached profile is display
// data and is never consulted here.
package routeguard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/campus/internal/platform/constants"
	"github.com/taibuivan/campus/internal/platform/ctxutil"
	"github.com/taibuivan/campus/internal/platform/respond"
	"github.com/taibuivan/campus/internal/platform/sec"
	"github.com/taibuivan/campus/internal/session"
)

// Decision is the outcome of a route check.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectUnauthorized
)

// Target returns the redirect path of the decision, or "" for [Allow].
func (d Decision) Target() string {
	switch d {
	case RedirectLogin:
		return constants.LoginPath
	case RedirectUnauthorized:
		return constants.UnauthorizedPath
	default:
		return ""
	}
}

// String implements [fmt.Stringer].
func (d Decision) String() string {
	switch d {
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	default:
		return "allow"
	}
}

// SessionChecker is the part of [session.Guard] the route guard needs.
type SessionChecker interface {
	IsAuthenticated(ctx context.Context) bool
	Claims(ctx context.Context) (*sec.Claims, error)
}

var _ SessionChecker = (*session.Guard)(nil)

// Guard evaluates route access against the current session.
type Guard struct {
	session SessionChecker
}

// New returns a route guard over checker.
func New(checker SessionChecker) *Guard {
	return &Guard{session: checker}
}

// Check decides access for allowed roles. An empty allowed set admits every
// known role. Claims are returned on [Allow].
func (guard *Guard) Check(ctx context.Context, allowed ...sec.Role) (Decision, *sec.Claims) {
	if !guard.session.IsAuthenticated(ctx) {
		return RedirectLogin, nil
	}

	claims, err := guard.session.Claims(ctx)
	if err != nil {
		// Expired between the two reads.
		return RedirectLogin, nil
	}

	if !claims.Role().In(allowed...) {
		return RedirectUnauthorized, nil
	}
	return Allow, claims
}

// Require is chi-compatible middleware enforcing [Guard.Check].
func (guard *Guard) Require(allowed ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			decision, claims := guard.Check(request.Context(), allowed...)

			if decision != Allow {
				ctxutil.GetLogger(request.Context()).Info("route_guard_redirect",
					slog.String("decision", decision.String()),
				)
				respond.Redirect(writer, decision.Target())
				return
			}

			ctx := ctxutil.WithClaims(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
