// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package message

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/campus/internal/platform/requestutil"
	"github.com/taibuivan/campus/internal/platform/respond"
)

// Handler serves the mailbox pages.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the mailbox under /messages.
//
// # Endpoints
//   - GET    /inbox
//   - GET    /sent
//   - POST   /
//   - GET    /{id}
//   - PATCH  /{id}/read
//   - DELETE /{id}
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/inbox", handler.inbox)
	router.Get("/sent", handler.sent)
	router.Post("/", handler.send)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}/read", handler.markRead)
	router.Delete("/{id}", handler.delete)
}

func (handler *Handler) inbox(writer http.ResponseWriter, request *http.Request) {
	box, err := handler.service.Inbox(request.Context(), requestutil.ListQuery(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, box)
}

func (handler *Handler) sent(writer http.ResponseWriter, request *http.Request) {
	box, err := handler.service.Sent(request.Context(), requestutil.ListQuery(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, box)
}

func (handler *Handler) send(writer http.ResponseWriter, request *http.Request) {
	var draft Draft
	if err := requestutil.DecodeJSON(request, &draft); err != nil {
		respond.Error(writer, request, err)
		return
	}

	sent, err := handler.service.Send(request.Context(), draft)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, sent)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) markRead(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.MarkRead(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
