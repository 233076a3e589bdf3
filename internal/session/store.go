// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by [Storage.Get] for a key that was never set or was deleted.
var ErrNotFound = errors.New("session: key not found")

// # Persisted State Access

// Storage is the persistent key/value area the session lives in.
//
// Only [TokenStore] writes to it. Implementations must make every call a
// whole-value operation: Set overwrites, Delete removes all the given keys in
// one step or none of them.
type Storage interface {

	/*
		Get returns the value stored under key.

		Parameters:
		  - ctx: context.Context
		  - key: string

		Returns:
		  - string: Stored value
		  - error: ErrNotFound or backend failures
	*/
	Get(ctx context.Context, key string) (string, error)

	/*
		Set stores value under key, replacing any prior value.

		Parameters:
		  - ctx: context.Context
		  - key: string
		  - value: string

		Returns:
		  - error: Persistence failures
	*/
	Set(ctx context.Context, key, value string) error

	/*
		Delete removes every given key in a single operation. Missing keys are
		not an error.

		Parameters:
		  - ctx: context.Context
		  - keys: ...string

		Returns:
		  - error: Persistence failures
	*/
	Delete(ctx context.Context, keys ...string) error
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}
