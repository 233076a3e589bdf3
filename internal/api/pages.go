// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/taibuivan/campus/internal/platform/constants"
	"github.com/taibuivan/campus/internal/platform/ctxutil"
	"github.com/taibuivan/campus/internal/platform/respond"
	"github.com/taibuivan/campus/internal/platform/sec"
	"github.com/taibuivan/campus/internal/routeguard"
)

// # Page Descriptors

// Page describes a console screen that has no backend data of its own.
type Page struct {
	Name     string   `json:"page"`
	Message  string   `json:"message,omitempty"`
	Fields   []string `json:"fields,omitempty"`
	Home     string   `json:"home,omitempty"`
	Sections []string `json:"sections,omitempty"`
}

// sections lists the screens reachable from each role's dashboard.
var sections = map[sec.Role][]string{
	sec.RoleSuperAdmin: {
		"/super-admin/universities",
	},
	sec.RoleUniversityAdmin: {
		"/university-admin/teachers",
		"/university-admin/students",
		"/university-admin/courses",
		"/university-admin/classes",
	},
	sec.RoleTeacher: {
		"/teacher/classes",
		"/teacher/schedule",
		"/teacher/assignments",
	},
	sec.RoleStudent: {
		"/student/courses",
		"/student/schedule",
		"/student/assignments",
		"/student/grades",
		"/student/attendance",
		"/student/ai-learning/generate",
	},
}

// pages serves the entry points and fallback screens.
type pages struct {
	session routeguard.SessionChecker
}

// home sends a visitor to their dashboard, or to the login page.
func (pages *pages) home(writer http.ResponseWriter, request *http.Request) {
	respond.Redirect(writer, pages.homeOf(request))
}

/*
Login describes the sign-in form.

GET /login

Response:
  - 200: Page
  - 303: to the dashboard when a session is already active
*/
func (pages *pages) login(writer http.ResponseWriter, request *http.Request) {
	if target := pages.homeOf(request); target != constants.LoginPath {
		respond.Redirect(writer, target)
		return
	}
	respond.OK(writer, Page{Name: "login", Fields: []string{"email", "password"}})
}

// register handles GET /register.
func (pages *pages) register(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, Page{
		Name:   "register",
		Fields: []string{"name", "email", "password", "role", "universityId"},
	})
}

/*
Unauthorized is where the route guard sends a visitor whose role does not
match the page. The session stays untouched.

GET /unauthorized

Response:
  - 403: Page with a link back to the visitor's own dashboard
*/
func (pages *pages) unauthorized(writer http.ResponseWriter, request *http.Request) {
	respond.JSON(writer, http.StatusForbidden, respond.SuccessEnvelope{Data: Page{
		Name:    "unauthorized",
		Message: "You do not have access to this page",
		Home:    pages.homeOf(request),
	}})
}

// maintenance handles GET /maintenance.
func (pages *pages) maintenance(writer http.ResponseWriter, _ *http.Request) {
	respond.JSON(writer, http.StatusServiceUnavailable, respond.SuccessEnvelope{Data: Page{
		Name:    "maintenance",
		Message: "The service is under maintenance. Please try again later.",
	}})
}

/*
Dashboard lists the screens of the signed-in role.

GET /{role}/

Response:
  - 200: Page
*/
func (pages *pages) dashboard(writer http.ResponseWriter, request *http.Request) {
	role := sec.RoleUnknown
	if claims := ctxutil.GetClaims(request.Context()); claims != nil {
		role = claims.Role()
	}
	respond.OK(writer, Page{
		Name:     "dashboard",
		Home:     role.HomePath(),
		Sections: sections[role],
	})
}

func (pages *pages) homeOf(request *http.Request) string {
	ctx := request.Context()
	if !pages.session.IsAuthenticated(ctx) {
		return constants.LoginPath
	}
	claims, err := pages.session.Claims(ctx)
	if err != nil || !claims.Role().Valid() {
		return constants.LoginPath
	}
	return claims.Role().HomePath()
}
