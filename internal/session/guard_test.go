// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campus/internal/navigate"
	"github.com/taibuivan/campus/internal/platform/apperr"
	"github.com/taibuivan/campus/internal/platform/constants"
	"github.com/taibuivan/campus/internal/platform/sec"
	"github.com/taibuivan/campus/internal/platform/sec/sectest"
	"github.com/taibuivan/campus/internal/session"
)

type guardFixture struct {
	backend   *session.MemoryStore
	store     *session.TokenStore
	navigator *navigate.Recorder
	guard     *session.Guard
}

func newGuardFixture() *guardFixture {
	backend := session.NewMemoryStore()
	store := session.NewTokenStore(backend)
	navigator := &navigate.Recorder{}
	return &guardFixture{
		backend:   backend,
		store:     store,
		navigator: navigator,
		guard:     session.NewGuard(store, navigator, nil),
	}
}

func TestGuard_State(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  session.State
	}{
		{"anonymous", "", session.StateAnonymous},
		{"active", sectest.Token(t, "1", "student", time.Hour), session.StateActive},
		{"expired", sectest.Token(t, "1", "student", -time.Second), session.StateExpired},
		{"malformed", "garbage", session.StateExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newGuardFixture()
			if tt.token != "" {
				require.NoError(t, fixture.store.SetToken(context.Background(), tt.token))
			}

			state := fixture.guard.State(context.Background())
			assert.Equal(t, tt.want, state)
			assert.Equal(t, tt.want == session.StateActive, fixture.guard.IsAuthenticated(context.Background()))
		})
	}
}

func TestGuard_AuthHeader(t *testing.T) {
	ctx := context.Background()
	fixture := newGuardFixture()

	header := fixture.guard.AuthHeader(ctx)
	require.NotNil(t, header)
	assert.Empty(t, header.Get(constants.HeaderAuthorization))

	expired := sectest.Token(t, "1", "teacher", -time.Minute)
	require.NoError(t, fixture.store.SetToken(ctx, expired))
	assert.Empty(t, fixture.guard.AuthHeader(ctx).Values(constants.HeaderAuthorization))

	valid := sectest.Token(t, "1", "teacher", time.Hour)
	require.NoError(t, fixture.store.SetToken(ctx, valid))
	assert.Equal(t, "Bearer "+valid, fixture.guard.AuthHeader(ctx).Get(constants.HeaderAuthorization))
}

func TestGuard_EnforceOrLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("active", func(t *testing.T) {
		fixture := newGuardFixture()
		require.NoError(t, fixture.store.SetToken(ctx, sectest.Token(t, "1", "student", time.Hour)))

		assert.True(t, fixture.guard.EnforceOrLogout(ctx))
		assert.Empty(t, fixture.navigator.Targets())
	})

	t.Run("expired_logs_out", func(t *testing.T) {
		fixture := newGuardFixture()
		require.NoError(t, fixture.store.SetToken(ctx, sectest.Token(t, "1", "student", -time.Hour)))
		require.NoError(t, fixture.store.SetProfile(ctx, session.Profile{ID: "1"}))

		assert.False(t, fixture.guard.EnforceOrLogout(ctx))
		assert.Zero(t, fixture.backend.Len())
		assert.Equal(t, []string{constants.LoginPath}, fixture.navigator.Targets())
	})
}

func TestGuard_LogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	fixture := newGuardFixture()
	require.NoError(t, fixture.store.SetToken(ctx, sectest.Token(t, "1", "student", time.Hour)))

	fixture.guard.Logout(ctx)
	assert.Zero(t, fixture.backend.Len())

	assert.NotPanics(t, func() { fixture.guard.Logout(ctx) })
	assert.Zero(t, fixture.backend.Len())
	assert.Equal(t, []string{constants.LoginPath, constants.LoginPath}, fixture.navigator.Targets())
}

func TestGuard_LogoutIgnoresCancellation(t *testing.T) {
	fixture := newGuardFixture()
	require.NoError(t, fixture.store.SetToken(context.Background(), "token"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fixture.guard.Logout(ctx)

	assert.Zero(t, fixture.backend.Len())
}

type failingStorage struct{ session.Storage }

func (failingStorage) Delete(context.Context, ...string) error { return errors.New("disk gone") }

func TestGuard_LogoutSurvivesStorageFailure(t *testing.T) {
	navigator := &navigate.Recorder{}
	guard := session.NewGuard(session.NewTokenStore(failingStorage{session.NewMemoryStore()}), navigator, nil)

	assert.NotPanics(t, func() { guard.Logout(context.Background()) })
	assert.Equal(t, constants.LoginPath, navigator.Last())
}

func TestGuard_Establish(t *testing.T) {
	ctx := context.Background()

	t.Run("stores_token_and_profile", func(t *testing.T) {
		fixture := newGuardFixture()
		token := sectest.Token(t, "7", "university_admin", time.Hour)

		claims, err := fixture.guard.Establish(ctx, token, &session.Profile{ID: "7", Name: "Lin", Role: "student"})
		require.NoError(t, err)
		assert.Equal(t, "7", claims.SubjectID())

		assert.Equal(t, session.StateActive, fixture.guard.State(ctx))
		// The token decides, not the cached profile.
		assert.Equal(t, sec.RoleUniversityAdmin, fixture.guard.Role(ctx))

		profile, err := fixture.store.Profile(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Lin", profile.Name)
	})

	t.Run("derives_profile_from_claims", func(t *testing.T) {
		fixture := newGuardFixture()
		_, err := fixture.guard.Establish(ctx, sectest.Token(t, "9", "teacher", time.Hour), nil)
		require.NoError(t, err)

		profile, err := fixture.store.Profile(ctx)
		require.NoError(t, err)
		assert.Equal(t, "9", profile.ID)
		assert.Equal(t, "9@campus.test", profile.Email)
		assert.Equal(t, "teacher", profile.Role)
	})

	t.Run("rejects_expired", func(t *testing.T) {
		fixture := newGuardFixture()
		_, err := fixture.guard.Establish(ctx, sectest.Token(t, "9", "teacher", -time.Hour), nil)

		assert.ErrorIs(t, err, apperr.ErrSessionExpired)
		assert.Zero(t, fixture.backend.Len())
	})

	t.Run("rejects_malformed", func(t *testing.T) {
		fixture := newGuardFixture()
		_, err := fixture.guard.Establish(ctx, "nope", nil)

		assert.ErrorIs(t, err, apperr.ErrDecode)
		assert.Zero(t, fixture.backend.Len())
	})
}

func TestGuard_ClaimsRequireActiveSession(t *testing.T) {
	ctx := context.Background()
	fixture := newGuardFixture()

	_, err := fixture.guard.Claims(ctx)
	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)
	assert.Equal(t, sec.RoleUnknown, fixture.guard.Role(ctx))

	require.NoError(t, fixture.store.SetToken(ctx, sectest.Token(t, "1", "student", -time.Second)))
	_, err = fixture.guard.Claims(ctx)
	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)
}

func TestGuard_OnLogout(t *testing.T) {
	ctx := context.Background()
	fixture := newGuardFixture()

	var reasons []session.LogoutReason
	fixture.guard.OnLogout(func(reason session.LogoutReason) {
		reasons = append(reasons, reason)
	})

	fixture.guard.LogoutFor(ctx, session.ReasonUnauthorized)
	fixture.guard.Logout(ctx)

	assert.Equal(t, []session.LogoutReason{session.ReasonUnauthorized, session.ReasonExplicit}, reasons)
}

func TestGuard_ForcedLogoutDisarmsIdleTimer(t *testing.T) {
	ctx := context.Background()
	fixture := newGuardFixture()
	_, err := fixture.guard.Establish(ctx, sectest.Token(t, "1", "student", time.Hour), nil)
	require.NoError(t, err)

	var idleLogouts atomic.Int32
	idle := session.NewIdleTimer(30*time.Millisecond, func() {
		idleLogouts.Add(1)
		fixture.guard.LogoutFor(context.Background(), session.ReasonIdle)
	})
	fixture.guard.OnLogout(func(session.LogoutReason) { idle.Stop() })
	idle.Start()

	fixture.guard.LogoutFor(ctx, session.ReasonUnauthorized)
	assert.False(t, idle.Running())

	time.Sleep(90 * time.Millisecond)
	assert.Equal(t, int32(0), idleLogouts.Load())
	assert.Equal(t, []string{constants.LoginPath}, fixture.navigator.Targets())
}
