// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package university

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/campus/internal/platform/requestutil"
	"github.com/taibuivan/campus/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the super-admin routes.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listUniversities)
	router.Post("/", handler.createUniversity)
	router.Get("/{id}", handler.getUniversity)
	router.Put("/{id}", handler.updateUniversity)
	router.Delete("/{id}", handler.deleteUniversity)
}

// RegisterPublicRoutes mounts the routes reachable without a session.
func (handler *Handler) RegisterPublicRoutes(router chi.Router) {
	router.Get("/search", handler.searchUniversities)
}

func (handler *Handler) listUniversities(writer http.ResponseWriter, request *http.Request) {
	list, err := handler.service.List(request.Context(), requestutil.ListQuery(request, "search", "active"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, list.Items, list.Meta)
}

func (handler *Handler) getUniversity(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) createUniversity(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateUniversity(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteUniversity(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) searchUniversities(writer http.ResponseWriter, request *http.Request) {
	results, err := handler.service.Search(request.Context(), request.URL.Query().Get(FieldQuery))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, results)
}
