// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/campus/internal/platform/sec"
)

func TestParseRole_Aliases(t *testing.T) {
	cases := map[string]sec.Role{
		"super-admin":      sec.RoleSuperAdmin,
		"SUPER_ADMIN":      sec.RoleSuperAdmin,
		"admin":            sec.RoleSuperAdmin,
		"university_admin": sec.RoleUniversityAdmin,
		"University Admin": sec.RoleUniversityAdmin,
		"universityAdmin":  sec.RoleUniversityAdmin,
		"teacher":          sec.RoleTeacher,
		" student ":        sec.RoleStudent,
		"janitor":          sec.RoleUnknown,
		"":                 sec.RoleUnknown,
	}
	for input, expect := range cases {
		assert.Equal(t, expect, sec.ParseRole(input), "input %q", input)
	}
}

func TestRole_In(t *testing.T) {
	assert.True(t, sec.RoleTeacher.In(sec.RoleTeacher, sec.RoleStudent))
	assert.False(t, sec.RoleStudent.In(sec.RoleTeacher))
	assert.True(t, sec.RoleStudent.In())
	assert.False(t, sec.RoleUnknown.In())
}

func TestRole_HomePath(t *testing.T) {
	assert.Equal(t, "/university-admin", sec.RoleUniversityAdmin.HomePath())
	assert.Equal(t, "/", sec.RoleUnknown.HomePath())
}
