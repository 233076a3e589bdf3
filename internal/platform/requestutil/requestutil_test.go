// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campus/internal/platform/apperr"
	"github.com/taibuivan/campus/internal/platform/ctxutil"
	"github.com/taibuivan/campus/internal/platform/requestutil"
	"github.com/taibuivan/campus/internal/platform/sec"
)

func multipartRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("comment", "late, sorry"))
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/student/assignments/1/submit", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return request
}

func TestFormFile(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		request := multipartRequest(t, "file", "essay.txt", "hello")

		file, header, err := requestutil.FormFile(request, "file", 1<<20)
		require.NoError(t, err)
		defer file.Close()

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
		assert.Equal(t, "essay.txt", header.Filename)
		assert.Equal(t, "late, sorry", request.FormValue("comment"))
	})

	t.Run("missing part", func(t *testing.T) {
		request := multipartRequest(t, "attachment", "essay.txt", "hello")

		_, _, err := requestutil.FormFile(request, "file", 1<<20)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeValidationError, ae.Code)
		require.Len(t, ae.Details, 1)
		assert.Equal(t, "file", ae.Details[0].Field)
		assert.Equal(t, "This field is required", ae.Details[0].Message)
	})

	t.Run("not multipart", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"a":1}`))
		request.Header.Set("Content-Type", "application/json")

		_, _, err := requestutil.FormFile(request, "file", 1<<20)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		require.Len(t, ae.Details, 1)
		assert.Equal(t, "Expected a multipart/form-data upload", ae.Details[0].Message)
	})
}

func TestListQuery(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/x?page=3&limit=500&status=late&other=1", nil)

	values := requestutil.ListQuery(request, "status", "q")

	assert.Equal(t, "3", values.Get("page"))
	assert.Equal(t, "20", values.Get("limit"))
	assert.Equal(t, "late", values.Get("status"))
	assert.False(t, values.Has("other"))
	assert.False(t, values.Has("q"))
}

func TestRequiredClaims(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/x", nil)

	_, err := requestutil.RequiredClaims(request)
	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)

	claims := &sec.Claims{}
	request = request.WithContext(ctxutil.WithClaims(request.Context(), claims))
	got, err := requestutil.RequiredClaims(request)
	require.NoError(t, err)
	assert.Same(t, claims, got)
}
