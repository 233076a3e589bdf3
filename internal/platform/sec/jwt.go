// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec decodes the bearer token issued by the backend and classifies
// the role it carries.
//
// # Trust Boundary
//
// The client never holds the signing key. [Decode] reads the claims without
// verifying the signature: the result is advisory, good for expiry checks,
// display and route gating. The backend remains the authority on every call.
package sec

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/campus/internal/platform/apperr"
)

// Claims is the decoded payload of a session token.
type Claims struct {
	jwt.RegisteredClaims

	// Backends differ on where the subject lives; all are accepted.
	UserID    FlexibleID `json:"id,omitempty"`
	UserIDAlt FlexibleID `json:"userId,omitempty"`
	Email     string     `json:"email,omitempty"`
	RoleClaim string     `json:"role,omitempty"`
}

// FlexibleID accepts both JSON strings and JSON numbers.
type FlexibleID string

// UnmarshalJSON implements [json.Unmarshaler].
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexibleID(n.String())
	return nil
}

// Decode parses the claims embedded in token without checking its signature.
//
// Any malformed input yields a DECODE_ERROR [apperr.AppError]; callers treat
// it exactly like "no valid session".
func Decode(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, apperr.Decode(err)
	}
	return claims, nil
}

// SubjectID returns the user id, preferring the registered "sub" claim.
func (c *Claims) SubjectID() string {
	switch {
	case c.Subject != "":
		return c.Subject
	case c.UserID != "":
		return string(c.UserID)
	default:
		return string(c.UserIDAlt)
	}
}

// Role returns the normalized role claim.
func (c *Claims) Role() Role {
	return ParseRole(c.RoleClaim)
}

// Expiry returns the "exp" claim and whether it was present.
func (c *Claims) Expiry() (time.Time, bool) {
	if c.ExpiresAt == nil {
		return time.Time{}, false
	}
	return c.ExpiresAt.Time, true
}

// IssuedAtTime returns the "iat" claim or the zero time.
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// ExpiredAt reports whether the token is expired at now.
// A token without an "exp" claim never satisfies now < expiry and is expired.
func (c *Claims) ExpiredAt(now time.Time) bool {
	expiry, ok := c.Expiry()
	if !ok {
		return true
	}
	return !now.Before(expiry)
}
