// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package export

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/campus/internal/platform/requestutil"
	"github.com/taibuivan/campus/internal/platform/respond"
)

// Handler serves the export endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the export routes.
//
// # Endpoints
//   - GET  / : Download ?path=&format=&name= as an attachment. Other query keys go to the backend.
//   - POST / : Store an export in the configured sink.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.download)
	router.Post("/", handler.store)
}

/*
GET /exports.

Response:
  - 200: the encoded file as an attachment
  - 400: VALIDATION_ERROR (bad path or format)
*/
func (handler *Handler) download(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	forwarded := url.Values{}
	for key, values := range query {
		switch key {
		case FieldPath, FieldFormat, "name":
		default:
			forwarded[key] = values
		}
	}

	exportRequest, err := ParseRequest(query.Get(FieldPath), query.Get(FieldFormat), query.Get("name"), forwarded)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var buffer bytes.Buffer
	if _, err := handler.service.Write(request.Context(), exportRequest, &buffer); err != nil {
		respond.Error(writer, request, err)
		return
	}

	_ = respond.Download(writer, exportRequest.Format.ContentType(), handler.service.Filename(exportRequest), &buffer)
}

// storeRequest is the JSON body of POST /exports.
type storeRequest struct {
	Path   string            `json:"path"`
	Format string            `json:"format"`
	Name   string            `json:"name"`
	Query  map[string]string `json:"query"`
}

/*
POST /exports.

Request:
  - body: storeRequest (Path, Format, Name, Query)

Response:
  - 201: Result
*/
func (handler *Handler) store(writer http.ResponseWriter, request *http.Request) {
	var input storeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := url.Values{}
	for key, value := range input.Query {
		query.Set(key, value)
	}

	exportRequest, err := ParseRequest(input.Path, input.Format, input.Name, query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Export(request.Context(), exportRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, result)
}
