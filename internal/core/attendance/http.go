// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package attendance

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

// sheetView is a list of records with its counts.
type sheetView struct {
	Records []Record `json:"records"`
	Summary Summary  `json:"summary"`
}

// RegisterTeacherRoutes mounts GET and POST /classes/{id}/attendance.
func (handler *Handler) RegisterTeacherRoutes(router chi.Router) {
	router.Get("/classes/{id}/attendance", handler.classAttendance)
	router.Post("/classes/{id}/attendance", handler.mark)
}

// RegisterStudentRoutes mounts GET /attendance.
func (handler *Handler) RegisterStudentRoutes(router chi.Router) {
	router.Get("/attendance", handler.mine)
}

func (handler *Handler) classAttendance(writer http.ResponseWriter, request *http.Request) {
	records, err := handler.service.ClassAttendance(request.Context(), requestutil.Param(request, "id"), request.URL.Query().Get(FieldDate))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sheetView{Records: records, Summary: Summarize(records)})
}

func (handler *Handler) mark(writer http.ResponseWriter, request *http.Request) {
	var sheet Sheet
	if err := requestutil.DecodeJSON(request, &sheet); err != nil {
		respond.Error(writer, request, err)
		return
	}

	records, err := handler.service.Mark(request.Context(), requestutil.Param(request, "id"), sheet)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, sheetView{Records: records, Summary: Summarize(records)})
}

func (handler *Handler) mine(writer http.ResponseWriter, request *http.Request) {
	records, err := handler.service.Mine(request.Context(), request.URL.Query().Get(FieldClassID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sheetView{Records: records, Summary: Summarize(records)})
}
