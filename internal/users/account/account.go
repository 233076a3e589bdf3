// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages the people of a university: its teachers and students.

Only a university administrator reaches these endpoints; the backend scopes
every call to the administrator's own university.

# Architecture

  - Entities: Member, MemberInput.
  - Service: typed calls over [apiclient.API].
  - Handler: console routes mounted under /university-admin.
*/
package account

import "time"

// # Domain Entities

// Kind selects the member collection.
type Kind string

const (
	KindTeacher Kind = "teachers"
	KindStudent Kind = "students"
)

// Valid reports whether k names a known collection.
func (k Kind) Valid() bool {
	return k == KindTeacher || k == KindStudent
}

// Member is a teacher or student account as listed by the backend.
type Member struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	Code         string     `json:"code,omitempty"` // student or staff number
	Department   string     `json:"department,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	UniversityID string     `json:"universityId,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// MemberInput is the create/update payload.
// Password is required on creation only.
type MemberInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Code       string `json:"code,omitempty"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldCode     = "code"
	FieldKind     = "kind"
)

// MinPasswordLength is the shortest initial password accepted.
const MinPasswordLength = 6
