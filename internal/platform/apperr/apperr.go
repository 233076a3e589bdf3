// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error taxonomy shared by the API client, the session
guard and the local console.

It keeps a single rich error type that carries both a machine-readable code and
a human message, so that every caller (CLI command, console page, notifier) can
branch on the code and show the message.

Taxonomy:

  - AUTHENTICATION_REQUIRED: no valid session at call time, nothing was sent.
  - SESSION_EXPIRED: the backend rejected the token (HTTP 401).
  - SERVICE_UNAVAILABLE: the platform is in maintenance mode (HTTP 503).
  - REQUEST_FAILED: any other non-2xx answer, carrying the server message.
  - DECODE_ERROR: a malformed token payload.
  - NETWORK_ERROR: the request never produced a response (includes cancellation).

Use [errors.Is] against the exported sentinels; matching is done on the code.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

const (
	CodeAuthenticationRequired = "AUTHENTICATION_REQUIRED"
	CodeSessionExpired         = "SESSION_EXPIRED"
	CodeServiceUnavailable     = "SERVICE_UNAVAILABLE"
	CodeRequestFailed          = "REQUEST_FAILED"
	CodeDecodeError            = "DECODE_ERROR"
	CodeNetworkError           = "NETWORK_ERROR"
	CodeValidationError        = "VALIDATION_ERROR"
	CodeForbidden              = "FORBIDDEN"
	CodeNotFound               = "NOT_FOUND"
	CodeInternal               = "INTERNAL_ERROR"
)

// AppError is the canonical error type of the client.
//
// HTTPStatus is the status received from the backend when the error came from
// a response, or the status the console should answer with otherwise.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "SESSION_EXPIRED").
	Code string `json:"code"`
	// Message is a human-readable description, passed through from the backend when available.
	Message string `json:"error"`
	// HTTPStatus is the HTTP status code associated with the failure.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, for logging and [errors.Is] traversal.
	Cause error `json:"-"`
	// Details holds per-field validation errors.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an [*AppError] with the same code.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// # Sentinels

var (
	ErrAuthenticationRequired = &AppError{Code: CodeAuthenticationRequired, Message: "Authentication required", HTTPStatus: http.StatusUnauthorized}
	ErrSessionExpired         = &AppError{Code: CodeSessionExpired, Message: "Session expired", HTTPStatus: http.StatusUnauthorized}
	ErrServiceUnavailable     = &AppError{Code: CodeServiceUnavailable, Message: "Service is under maintenance", HTTPStatus: http.StatusServiceUnavailable}
	ErrRequestFailed          = &AppError{Code: CodeRequestFailed, Message: "Request failed"}
	ErrDecode                 = &AppError{Code: CodeDecodeError, Message: "Malformed token"}
	ErrNetwork                = &AppError{Code: CodeNetworkError, Message: "Network error"}
)

// # Client Errors

// AuthenticationRequired is returned before any I/O when no valid session exists.
func AuthenticationRequired() *AppError {
	return &AppError{
		Code:       CodeAuthenticationRequired,
		Message:    "Authentication required",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// SessionExpired is returned after the backend answered 401.
func SessionExpired() *AppError {
	return &AppError{
		Code:       CodeSessionExpired,
		Message:    "Your session has expired, please sign in again",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// ServiceUnavailable creates a 503 [AppError] for maintenance mode.
func ServiceUnavailable(msg string) *AppError {
	if msg == "" {
		msg = "Service is under maintenance"
	}
	return &AppError{
		Code:       CodeServiceUnavailable,
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// RequestFailed wraps a non-2xx backend answer.
//
// When the backend supplied no message the generic "HTTP error! status: <code>"
// text is used.
func RequestFailed(status int, msg string, details ...FieldError) *AppError {
	if msg == "" {
		msg = fmt.Sprintf("HTTP error! status: %d", status)
	}
	return &AppError{
		Code:       CodeRequestFailed,
		Message:    msg,
		HTTPStatus: status,
		Details:    details,
	}
}

// Decode wraps a token decoding failure.
func Decode(cause error) *AppError {
	return &AppError{
		Code:       CodeDecodeError,
		Message:    "Malformed token",
		HTTPStatus: http.StatusUnauthorized,
		Cause:      cause,
	}
}

// Network wraps a transport failure. The cause is kept so that callers can
// still detect [context.Canceled].
func Network(cause error) *AppError {
	return &AppError{
		Code:       CodeNetworkError,
		Message:    "Network error",
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// # Console Errors

// NotFound creates a 404 [AppError] for a named resource.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidationError,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// Internal creates a 500 [AppError] wrapping an unexpected error.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// CodeOf returns the code of the first [*AppError] in err's chain, or "".
func CodeOf(err error) string {
	if ae := As(err); ae != nil {
		return ae.Code
	}
	return ""
}
