// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"time"

	"github.com/taibuivan/campus/internal/platform/sec"
	"github.com/taibuivan/campus/internal/session"
)

// # Domain Entities

// Identity describes who the client is signed in as.
type Identity struct {
	UserID    string           `json:"user_id"`
	Email     string           `json:"email,omitempty"`
	Role      sec.Role         `json:"role"`
	ExpiresAt time.Time        `json:"expires_at"`
	Profile   *session.Profile `json:"profile,omitempty"`
}

// LoginInput is the credential pair sent to the backend.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is the self-registration payload.
type RegisterInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role,omitempty"`
	UniversityID string `json:"universityId,omitempty"`
}

// RegisterResult reports whether registration also signed the user in.
type RegisterResult struct {
	Profile  session.Profile `json:"user"`
	SignedIn bool            `json:"signed_in"`
}

// sessionResponse is the body of /auth/login and /auth/register.
type sessionResponse struct {
	Token       string           `json:"token"`
	AccessToken string           `json:"accessToken"`
	User        *session.Profile `json:"user"`
}

// bearer returns whichever token spelling the backend used.
func (r sessionResponse) bearer() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

// # Field Identifiers

const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldRole         = "role"
	FieldUniversityID = "universityId"
)

// MinPasswordLength mirrors the backend's registration rule.
const MinPasswordLength = 6

// selfServiceRoles are the roles a visitor may pick when registering.
var selfServiceRoles = []string{string(sec.RoleStudent), string(sec.RoleTeacher)}
