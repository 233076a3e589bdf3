// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/campus/internal/platform/requestutil"
	"github.com/taibuivan/campus/internal/platform/respond"
)

// # Definitions & Constructors

// Handler serves member management pages.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// RegisterRoutes mounts the member routes on a university-admin router.
//
// # Endpoints
//   - GET    /{kind}      : Paginated list (kind is "teachers" or "students").
//   - POST   /{kind}      : Create a member.
//   - GET    /{kind}/{id} : Member detail.
//   - PUT    /{kind}/{id} : Update a member.
//   - DELETE /{kind}/{id} : Remove a member.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/{kind:teachers|students}", func(r chi.Router) {
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{id}", handler.get)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})
}

func kindOf(request *http.Request) Kind {
	return Kind(requestutil.Param(request, "kind"))
}

/*
GET /university-admin/{kind}.

Request:
  - query: page, limit, search, department

Response:
  - 200: Paginated list of Member
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := requestutil.ListQuery(request, "search", "department")

	members, err := handler.accountService.List(request.Context(), kindOf(request), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, members.Items, members.Meta)
}

/*
POST /university-admin/{kind}.

Request:
  - body: MemberInput

Response:
  - 201: Member
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input MemberInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.accountService.Create(request.Context(), kindOf(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, member)
}

// get handles GET /university-admin/{kind}/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	member, err := handler.accountService.Get(request.Context(), kindOf(request), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, member)
}

// update handles PUT /university-admin/{kind}/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input MemberInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.accountService.Update(request.Context(), kindOf(request), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, member)
}

// delete handles DELETE /university-admin/{kind}/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.accountService.Delete(request.Context(), kindOf(request), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
