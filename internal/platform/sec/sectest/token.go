// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sectest mints session tokens for tests.
package sectest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// testSecret signs fixtures; the client never verifies signatures.
const testSecret = "campus-test-secret"

// Token returns a token for subject with the given role that expires ttl from now.
// A negative ttl produces an already-expired token.
func Token(t testing.TB, subject, role string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	return sign(t, jwt.MapClaims{
		"sub":   subject,
		"email": subject + "@campus.test",
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
}

// TokenWithClaims signs an arbitrary claim set.
func TokenWithClaims(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	return sign(t, claims)
}

func sign(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
