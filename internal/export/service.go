// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/platform/apperr"
	"github.com/taibuivan/campus/internal/platform/ctxutil"
	"github.com/taibuivan/campus/internal/platform/validate"
	"github.com/taibuivan/campus/pkg/slug"
)

// # Field Identifiers

const (
	FieldPath   = "path"
	FieldFormat = "format"
)

// errNoSink is returned when no storage was configured.
var errNoSink = errors.New("export: no sink configured")

// maxNameLength bounds the slug part of an export file name.
const maxNameLength = 60

// timestampLayout is appended to file names so exports never overwrite.
const timestampLayout = "20060102-150405"

// Request describes one export.
type Request struct {
	// Path is the backend listing to export, e.g. "/student/grades".
	Path   string     `json:"path"`
	Query  url.Values `json:"query,omitempty"`
	Format Format     `json:"format"`
	// Name overrides the file name stem derived from Path.
	Name string `json:"name,omitempty"`
}

// Result reports a stored export.
type Result struct {
	Location string `json:"location"`
	Filename string `json:"filename"`
	Format   Format `json:"format"`
	Rows     int    `json:"rows"`
}

// Service exports backend listings.
type Service struct {
	api  apiclient.API
	sink Sink
	now  func() time.Time
}

// Option configures a [Service].
type Option func(*Service)

// WithClock replaces time.Now for file naming.
func WithClock(now func() time.Time) Option {
	return func(service *Service) { service.now = now }
}

// NewService constructs a [Service]. sink may be nil when only [Service.Write]
// is used.
func NewService(api apiclient.API, sink Sink, opts ...Option) *Service {
	service := &Service{api: api, sink: sink, now: time.Now}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Fetch reads a backend listing as a [Table].
func (service *Service) Fetch(ctx context.Context, path string, query url.Values) (*Table, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}

	var raw []byte
	if err := service.api.Get(ctx, path, &raw, apiclient.WithQuery(query)); err != nil {
		return nil, err
	}

	table, err := TableFrom(raw)
	if err != nil {
		return nil, apperr.RequestFailed(http.StatusBadGateway, "Response cannot be exported: "+err.Error())
	}
	return table, nil
}

// Write encodes a backend listing straight to w.
func (service *Service) Write(ctx context.Context, request Request, w io.Writer) (*Table, error) {
	table, err := service.Fetch(ctx, request.Path, request.Query)
	if err != nil {
		return nil, err
	}
	if err := table.Encode(w, request.Format); err != nil {
		return nil, apperr.Internal(err)
	}
	return table, nil
}

/*
Export fetches a listing, encodes it and stores it in the sink.

Returns:
  - Result: where the file went and how many rows it holds
  - error: VALIDATION_ERROR for a bad path or format, backend errors as-is
*/
func (service *Service) Export(ctx context.Context, request Request) (*Result, error) {
	if service.sink == nil {
		return nil, apperr.Internal(errNoSink)
	}

	table, err := service.Fetch(ctx, request.Path, request.Query)
	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	if err := table.Encode(&buffer, request.Format); err != nil {
		return nil, apperr.Internal(err)
	}

	filename := service.Filename(request)
	location, err := service.sink.Put(ctx, filename, request.Format.ContentType(), bytes.NewReader(buffer.Bytes()))
	if err != nil {
		return nil, apperr.Internal(err)
	}

	ctxutil.GetLogger(ctx).Info("export_stored",
		slog.String("path", request.Path),
		slog.String("location", location),
		slog.Int("rows", table.Len()),
	)
	return &Result{Location: location, Filename: filename, Format: request.Format, Rows: table.Len()}, nil
}

// Filename names the export of request: slug, timestamp and extension.
func (service *Service) Filename(request Request) string {
	stem := request.Name
	if stem == "" {
		stem = request.Path
	}
	return slug.FromMax(stem, maxNameLength, "export") + "-" + service.now().UTC().Format(timestampLayout) + request.Format.Extension()
}

// ParseRequest validates the console/CLI form of an export request.
func ParseRequest(path, format, name string, query url.Values) (Request, error) {
	parsed, err := ParseFormat(format)

	validator := &validate.Validator{}
	validator.Custom(FieldFormat, err != nil, "Must be one of: csv, json")
	validator.Custom(FieldPath, checkPath(path) != nil, "Must be a backend path such as /student/grades")
	if err := validator.Err(); err != nil {
		return Request{}, err
	}
	return Request{Path: path, Query: query, Format: parsed, Name: name}, nil
}

// checkPath accepts absolute backend paths outside /auth.
func checkPath(path string) error {
	if !strings.HasPrefix(path, "/") || strings.Contains(path, "..") || strings.HasPrefix(path, "/auth") {
		return validate.RequiredError(FieldPath, "Must be a backend path such as /student/grades")
	}
	return nil
}
