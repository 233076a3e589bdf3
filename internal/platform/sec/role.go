// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "strings"

// # User Roles

// Role is the permission tier carried in the token's role claim.
type Role string

const (
	// Platform-wide administration (all universities)
	RoleSuperAdmin Role = "super-admin"

	// Administration of a single university
	RoleUniversityAdmin Role = "university-admin"

	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"

	// RoleUnknown is returned for claims that match no known tier.
	RoleUnknown Role = ""
)

// # Aliases

// roleAliases lists the spellings the backend has issued over time.
// Keys are lowercased with '_' and ' ' folded into '-'.
var roleAliases = map[string]Role{
	"super-admin":      RoleSuperAdmin,
	"superadmin":       RoleSuperAdmin,
	"admin":            RoleSuperAdmin,
	"platform-admin":   RoleSuperAdmin,
	"university-admin": RoleUniversityAdmin,
	"universityadmin":  RoleUniversityAdmin,
	"uni-admin":        RoleUniversityAdmin,
	"school-admin":     RoleUniversityAdmin,
	"university":       RoleUniversityAdmin,
	"teacher":          RoleTeacher,
	"instructor":       RoleTeacher,
	"professor":        RoleTeacher,
	"student":          RoleStudent,
	"learner":          RoleStudent,
}

// ParseRole normalizes a raw role claim, resolving historical aliases.
// Unknown values map to [RoleUnknown].
func ParseRole(raw string) Role {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	return roleAliases[key]
}

// Valid reports whether r is one of the four known tiers.
func (r Role) Valid() bool {
	return r != RoleUnknown
}

// In reports whether r is a member of allowed. An empty allowed set admits
// every known role.
func (r Role) In(allowed ...Role) bool {
	if !r.Valid() {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, candidate := range allowed {
		if r == candidate {
			return true
		}
	}
	return false
}

// HomePath returns the dashboard prefix of the role's route group.
func (r Role) HomePath() string {
	if !r.Valid() {
		return "/"
	}
	return "/" + string(r)
}

// Roles lists the known tiers in descending order of privilege.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleUniversityAdmin, RoleTeacher, RoleStudent}
}
