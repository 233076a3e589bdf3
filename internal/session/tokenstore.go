// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session owns the client-side login: the persisted bearer token, the
cached user profile, and the policy deciding whether the caller may act as an
authenticated user.

Layers, leaves first:

  - [Storage]: the persistent key/value area (memory, file, Redis, Postgres).
  - [TokenStore]: sole reader and writer of the two session keys.
  - [Guard]: validity checks, the Authorization header, and forced logout.
  - [IdleTimer]: logs the user out after a period without activity.

There is no refresh path. An expired session stays expired until a new login
goes through [Guard.Establish].
*/
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/taibuivan/campus/internal/platform/constants"
	"github.com/taibuivan/campus/internal/platform/sec"
)

var (
	// ErrNoToken is returned when no token has been stored.
	ErrNoToken = errors.New("session: no token")

	// ErrNoProfile is returned when no profile has been cached.
	ErrNoProfile = errors.New("session: no cached profile")
)

// TokenStore reads and writes the persisted session keys.
type TokenStore struct {
	storage Storage
	now     func() time.Time
}

// TokenStoreOption configures a [TokenStore].
type TokenStoreOption func(*TokenStore)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) TokenStoreOption {
	return func(store *TokenStore) {
		store.now = now
	}
}

// NewTokenStore wraps storage.
func NewTokenStore(storage Storage, opts ...TokenStoreOption) *TokenStore {
	store := &TokenStore{storage: storage, now: time.Now}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Storage returns the underlying backend, for health checks.
func (store *TokenStore) Storage() Storage { return store.storage }

// # Token

// Token returns the raw stored token or [ErrNoToken].
func (store *TokenStore) Token(ctx context.Context) (string, error) {
	token, err := store.storage.Get(ctx, constants.StorageKeyToken)
	if errors.Is(err, ErrNotFound) || (err == nil && token == "") {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("session: read token: %w", err)
	}
	return token, nil
}

// SetToken persists token, overwriting any prior value.
func (store *TokenStore) SetToken(ctx context.Context, token string) error {
	if err := store.storage.Set(ctx, constants.StorageKeyToken, token); err != nil {
		return fmt.Errorf("session: write token: %w", err)
	}
	return nil
}

// Remove deletes the token and the cached profile in one storage operation.
// Removing an empty session is a no-op.
func (store *TokenStore) Remove(ctx context.Context) error {
	if err := store.storage.Delete(ctx, constants.StorageKeyToken, constants.StorageKeyUser); err != nil {
		return fmt.Errorf("session: remove: %w", err)
	}
	return nil
}

// Decode parses the claims of token without verifying its signature.
func (store *TokenStore) Decode(token string) (*sec.Claims, error) {
	return sec.Decode(token)
}

// IsExpired reports whether token is unusable: undecodable, without expiry,
// or at/after its expiry.
func (store *TokenStore) IsExpired(token string) bool {
	claims, err := sec.Decode(token)
	if err != nil {
		return true
	}
	return claims.ExpiredAt(store.now())
}

// # Profile

// SetProfile caches the display profile.
func (store *TokenStore) SetProfile(ctx context.Context, profile Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("session: encode profile: %w", err)
	}
	if err := store.storage.Set(ctx, constants.StorageKeyUser, string(data)); err != nil {
		return fmt.Errorf("session: write profile: %w", err)
	}
	return nil
}

// Profile returns the cached profile or [ErrNoProfile].
func (store *TokenStore) Profile(ctx context.Context) (*Profile, error) {
	data, err := store.storage.Get(ctx, constants.StorageKeyUser)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("session: read profile: %w", err)
	}

	profile := &Profile{}
	if err := json.Unmarshal([]byte(data), profile); err != nil {
		return nil, fmt.Errorf("session: decode profile: %w", err)
	}
	return profile, nil
}
