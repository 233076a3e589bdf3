// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire client.

Categories:

  - Metadata: application name and version.
  - Client Timing: outgoing request and idle-session defaults.
  - Console Timing: timeouts for the local console HTTP server.
  - Navigation: entry points the session layer redirects to.
  - Persisted State: the two storage keys owned by the token store.

Using this package keeps magic strings out of the session and transport code.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "campus"
	AppVersion = "0.1.0-dev"
)

// # Client Timing

const (
	// DefaultRequestTimeout bounds a single backend call when the caller supplies no deadline.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultIdleTimeout is how long the console tolerates inactivity before logging out.
	DefaultIdleTimeout = 30 * time.Minute

	// MaxErrorBodyBytes caps how much of a non-2xx body is read looking for a message.
	MaxErrorBodyBytes = 64 << 10
)

// # Console Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 60 * time.Second
	DefaultIdleConnTimeout   = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for an entire console request, backend call included.
	GlobalRequestTimeout = 45 * time.Second

	// ShutdownTimeout is how long we wait for in-flight console requests during shutdown.
	ShutdownTimeout = 15 * time.Second
)

// # Rate Limiting

const (
	DefaultRateLimitRPS      = 20.0
	DefaultRateLimitBurst    = 40
	RateLimitCleanupInterval = 1 * time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Navigation

const (
	// LoginPath is the login entry point every forced logout navigates to.
	LoginPath = "/login"

	// MaintenancePath is where a 503 from the backend sends the user.
	MaintenancePath = "/maintenance"

	// UnauthorizedPath is where a wrong-role visitor is sent.
	UnauthorizedPath = "/unauthorized"
)

// # Persisted State

const (
	// StorageKeyToken holds the raw bearer token.
	StorageKeyToken = "token"

	// StorageKeyUser holds the serialized cached profile.
	StorageKeyUser = "user"

	// DefaultSessionKeyPrefix namespaces the keys in shared backends (Redis, Postgres).
	DefaultSessionKeyPrefix = "campus:session:"

	// StateFileName is the file used by the file-backed store inside the state directory.
	StateFileName = "session.json"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderLocation      = "Location"

	ContentTypeJSON = "application/json"
	ContentTypePDF  = "application/pdf"
	ContentTypeCSV  = "text/csv; charset=utf-8"

	BearerPrefix = "Bearer "
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)
