// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campus/internal/platform/apperr"
	"github.com/taibuivan/campus/internal/platform/sec"
	"github.com/taibuivan/campus/internal/platform/sec/sectest"
)

/*
TestDecode_Claims verifies that subject, email, role and timestamps are read.
*/
func TestDecode_Claims(t *testing.T) {
	token := sectest.Token(t, "user-42", "teacher", time.Hour)

	claims, err := sec.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "user-42", claims.SubjectID())
	assert.Equal(t, "user-42@campus.test", claims.Email)
	assert.Equal(t, sec.RoleTeacher, claims.Role())
	assert.False(t, claims.IssuedAtTime().IsZero())

	expiry, ok := claims.Expiry()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 2*time.Second)
}

/*
TestDecode_NumericID covers backends that put a numeric "id" instead of "sub".
*/
func TestDecode_NumericID(t *testing.T) {
	token := sectest.TokenWithClaims(t, jwt.MapClaims{
		"id":   17,
		"role": "student",
		"exp":  time.Now().Add(time.Minute).Unix(),
	})

	claims, err := sec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "17", claims.SubjectID())
}

/*
TestDecode_Malformed checks that garbage yields a DECODE_ERROR.
*/
func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"single_segment", "abc"},
		{"bad_base64", "a.b!.c"},
		{"payload_not_json", "eyJhbGciOiJIUzI1NiJ9.bm90LWpzb24.c2ln"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.Decode(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrDecode)
		})
	}
}

/*
TestClaims_ExpiredAt covers both sides of the expiry boundary.
*/
func TestClaims_ExpiredAt(t *testing.T) {
	now := time.Now()

	past, err := sec.Decode(sectest.Token(t, "u", "student", -time.Second))
	require.NoError(t, err)
	assert.True(t, past.ExpiredAt(now))

	future, err := sec.Decode(sectest.Token(t, "u", "student", time.Hour))
	require.NoError(t, err)
	assert.False(t, future.ExpiredAt(now))

	noExp, err := sec.Decode(sectest.TokenWithClaims(t, jwt.MapClaims{"sub": "u"}))
	require.NoError(t, err)
	assert.True(t, noExp.ExpiredAt(now))
}
