// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package university manages the institutions hosted by the platform.

Listing, creation and removal belong to the super administrator. The search
endpoint is public: the registration form uses it before anyone is signed in.
*/
package university

import "time"

// # Domain Entities

// University is a tenant of the platform.
type University struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	Address   string     `json:"address,omitempty"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Website   string     `json:"website,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Input is the create/update payload.
type Input struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
	Active  *bool  `json:"active,omitempty"`

	// Admin account created alongside the university, optional.
	AdminName     string `json:"adminName,omitempty"`
	AdminEmail    string `json:"adminEmail,omitempty"`
	AdminPassword string `json:"adminPassword,omitempty"`
}

// # Field Identifiers

const (
	FieldName          = "name"
	FieldCode          = "code"
	FieldEmail         = "email"
	FieldAdminEmail    = "adminEmail"
	FieldAdminPassword = "adminPassword"
	FieldQuery         = "q"
)

// MinSearchLength is the shortest query sent to the public search.
const MinSearchLength = 2
