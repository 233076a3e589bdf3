// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth signs the client in and out of the campus backend.

It turns the backend's {token, user} answer into a persisted session through
[session.Guard], and exposes the current identity to the CLI and the console.

# Architecture

  - Service: the use cases (Login, Register, Logout, RefreshProfile, Whoami).
  - Handler: the console's JSON entry points over [Service].

The backend stays the authority on credentials; this package only checks that
the input is well formed before sending it.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/platform/apperr"
	"github.com/taibuivan/campus/internal/platform/ctxutil"
	"github.com/taibuivan/campus/internal/platform/validate"
	"github.com/taibuivan/campus/internal/session"
)

// # Backend Endpoints

const (
	pathLogin    = "/auth/login"
	pathRegister = "/auth/register"
	pathMe       = "/auth/me"
)

// Service implements the sign-in use cases.
type Service struct {
	api   apiclient.API
	guard *session.Guard
}

// NewService constructs a [Service].
func NewService(api apiclient.API, guard *session.Guard) *Service {
	return &Service{api: api, guard: guard}
}

// # Sign In

/*
Login exchanges credentials for a session.

The call is public: no Authorization header is attached and a 401 answer
("Invalid credentials") is returned as REQUEST_FAILED without touching any
existing session.

Returns:
  - The identity of the new session
  - VALIDATION_ERROR for malformed input, or the backend/session error
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*Identity, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var answer apiclient.One[sessionResponse]
	if err := service.api.Post(ctx, pathLogin, input, &answer, apiclient.WithoutAuth()); err != nil {
		return nil, err
	}

	return service.establish(ctx, answer.Value)
}

/*
Register creates an account.

When the backend answers with a token the user is signed in immediately;
otherwise only the created profile is returned and the caller must log in.
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)
	if input.Role != "" {
		validator.OneOf(FieldRole, input.Role, selfServiceRoles...)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var answer apiclient.One[sessionResponse]
	if err := service.api.Post(ctx, pathRegister, input, &answer, apiclient.WithoutAuth()); err != nil {
		return nil, err
	}

	result := &RegisterResult{}
	if answer.Value.User != nil {
		result.Profile = *answer.Value.User
	}
	if answer.Value.bearer() == "" {
		return result, nil
	}

	identity, err := service.establish(ctx, answer.Value)
	if err != nil {
		return nil, err
	}
	result.SignedIn = true
	if identity.Profile != nil {
		result.Profile = *identity.Profile
	}
	return result, nil
}

// establish persists the session carried by answer.
func (service *Service) establish(ctx context.Context, answer sessionResponse) (*Identity, error) {
	token := answer.bearer()
	if token == "" {
		return nil, apperr.RequestFailed(http.StatusBadGateway, "Login response did not include a token")
	}

	claims, err := service.guard.Establish(ctx, token, answer.User)
	if err != nil {
		return nil, err
	}

	profile, err := service.guard.Store().Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth_profile_read_failed: %w", err)
	}

	expiry, _ := claims.Expiry()
	return &Identity{
		UserID:    claims.SubjectID(),
		Email:     claims.Email,
		Role:      claims.Role(),
		ExpiresAt: expiry,
		Profile:   profile,
	}, nil
}

// # Session Lifecycle

// Logout ends the session and navigates to the login entry point.
func (service *Service) Logout(ctx context.Context) {
	service.guard.Logout(ctx)
}

// RefreshProfile fetches the signed-in user from the backend and rewrites the
// cached display profile.
func (service *Service) RefreshProfile(ctx context.Context) (*session.Profile, error) {
	var answer apiclient.One[session.Profile]
	if err := service.api.Get(ctx, pathMe, &answer); err != nil {
		return nil, err
	}

	if err := service.guard.Store().SetProfile(ctx, answer.Value); err != nil {
		return nil, apperr.Internal(err)
	}

	ctxutil.GetLogger(ctx).Debug("profile_refreshed", slog.String("user_id", answer.Value.ID))
	return &answer.Value, nil
}

/*
Whoami returns the identity of the active session.

Role and expiry come from the token; the cached profile is attached for
display only and may be missing.

Returns:
  - AUTHENTICATION_REQUIRED when no unexpired session exists
*/
func (service *Service) Whoami(ctx context.Context) (*Identity, error) {
	claims, err := service.guard.Claims(ctx)
	if err != nil {
		return nil, err
	}

	expiry, _ := claims.Expiry()
	identity := &Identity{
		UserID:    claims.SubjectID(),
		Email:     claims.Email,
		Role:      claims.Role(),
		ExpiresAt: expiry,
	}
	if profile, err := service.guard.Store().Profile(ctx); err == nil {
		identity.Profile = profile
	}
	return identity, nil
}
