// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from console requests.

It abstracts away the router's parameter extraction and common body decoding
patterns, ensuring consistent error handling.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/campus/internal/platform/apperr"
	"github.com/taibuivan/campus/internal/platform/ctxutil"
	"github.com/taibuivan/campus/internal/platform/sec"
	"github.com/taibuivan/campus/internal/platform/validate"
	"github.com/taibuivan/campus/pkg/pagination"
)

// maxBodyBytes caps JSON bodies accepted by the console.
const maxBodyBytes = 1 << 20

// multipartMemory is how much of an upload is buffered in memory before
// spilling to a temporary file.
const multipartMemory = 8 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
FormFile opens a single uploaded file from a multipart console request.

Parameters:
  - request: *http.Request
  - field: string (Name of the file part)
  - maxBytes: int64 (Upper bound of the whole request body)

Returns:
  - multipart.File: The opened file; the caller closes it
  - *multipart.FileHeader: Name, size and headers of the part
  - error: VALIDATION_ERROR when the body is not multipart, too large, or lacks the field
*/
func FormFile(request *http.Request, field string, maxBytes int64) (multipart.File, *multipart.FileHeader, error) {
	request.Body = http.MaxBytesReader(nil, request.Body, maxBytes)
	if err := request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, validate.RequiredError(field, fmt.Sprintf("Must not exceed %d MB", maxBytes>>20))
		}
		return nil, nil, validate.RequiredError(field, "Expected a multipart/form-data upload")
	}

	file, header, err := request.FormFile(field)
	if err != nil {
		return nil, nil, validate.RequiredError(field, "This field is required")
	}
	return file, header, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ListQuery forwards the console's page/limit and any extra filter keys to the backend.

Returns:
  - url.Values: page and limit (clamped), plus the named filters when present
*/
func ListQuery(request *http.Request, filters ...string) url.Values {
	params := pagination.FromRequest(request)
	values := params.Query()
	for _, key := range filters {
		if value := request.URL.Query().Get(key); value != "" {
			values.Set(key, value)
		}
	}
	return values
}

/*
RequiredClaims returns the session claims placed by the route guard.

Returns:
  - *sec.Claims: The decoded token claims
  - error: AUTHENTICATION_REQUIRED if the route was not guarded
*/
func RequiredClaims(request *http.Request) (*sec.Claims, error) {
	claims := ctxutil.GetClaims(request.Context())
	if claims == nil {
		return nil, apperr.AuthenticationRequired()
	}
	return claims, nil
}
