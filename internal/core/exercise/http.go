// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package exercise

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/platform/requestutil"
	"github.com/taibuivan/campus/internal/platform/respond"
	"github.com/taibuivan/campus/internal/platform/validate"
)

// Handler serves the exercise generator page.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts POST /ai-learning/generate on the student router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/ai-learning/generate", handler.generate)
}

/*
POST /student/ai-learning/generate.

Request:
  - multipart/form-data: pdf (required), count, difficulty

Response:
  - 200: Set
  - 400: VALIDATION_ERROR (missing, oversized or non-PDF file)
*/
func (handler *Handler) generate(writer http.ResponseWriter, request *http.Request) {
	file, header, err := requestutil.FormFile(request, FieldFile, MaxPDFBytes+1<<20)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer file.Close()

	options := Options{Difficulty: request.FormValue(FieldDifficulty)}
	if raw := request.FormValue(FieldCount); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError(FieldCount, "Must be a whole number"))
			return
		}
		options.Count = count
	}

	set, err := handler.service.Generate(request.Context(), apiclient.Attachment{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}, options)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, set)
}
