// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/campus/internal/platform/requestutil"
	"github.com/taibuivan/campus/internal/platform/respond"
)

// # Definitions & Constructors

// IdleWatch is armed when a session starts and disarmed when it ends.
// [*session.IdleTimer] implements it.
type IdleWatch interface {
	Start()
	Stop()
}

// Handler implements the console's sign-in endpoints.
type Handler struct {
	authService *Service
	idle        IdleWatch
}

// NewHandler constructs a [Handler]. idle may be nil.
func NewHandler(service *Service, idle IdleWatch) *Handler {
	return &Handler{authService: service, idle: idle}
}

// Routes returns a [chi.Router] configured with the sign-in routes.
//
// # Endpoints
//   - POST /login    : Exchanges credentials for a session.
//   - POST /register : Creates an account.
//   - POST /logout   : Ends the session.
//   - GET  /me       : Current identity.
//   - POST /me/refresh : Re-reads the profile from the backend.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

// RegisterRoutes adds the sign-in routes to an existing router, so they can
// share a path with the console's pages.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/login", handler.login)
	router.Post("/register", handler.register)
	router.Post("/logout", handler.logout)
	router.Get("/me", handler.me)
	router.Post("/me/refresh", handler.refresh)
}

/*
Login signs the console in.

POST /login

Request:
  - Body: LoginInput (Email, Password)

Response:
  - 200: Identity
  - 400: VALIDATION_ERROR
  - 4xx: REQUEST_FAILED with the backend's message (e.g. "Invalid credentials")
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	identity, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if handler.idle != nil {
		handler.idle.Start()
	}
	respond.OK(writer, identity)
}

/*
Register creates an account.

POST /register

Request:
  - Body: RegisterInput (Name, Email, Password, Role, UniversityID)

Response:
  - 201: RegisterResult
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input RegisterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if result.SignedIn && handler.idle != nil {
		handler.idle.Start()
	}
	respond.Created(writer, result)
}

/*
Logout ends the session.

POST /logout

Response:
  - 303: to /login
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if handler.idle != nil {
		handler.idle.Stop()
	}
	handler.authService.Logout(request.Context())
	respond.NoContent(writer)
}

/*
Me returns the current identity.

GET /me

Response:
  - 200: Identity
  - 401: AUTHENTICATION_REQUIRED
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := handler.authService.Whoami(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, identity)
}

// refresh handles POST /me/refresh.
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.authService.RefreshProfile(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}
