// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package export_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campus/internal/apiclient/apitest"
	"github.com/taibuivan/campus/internal/export"
	"github.com/taibuivan/campus/internal/platform/apperr"
)

var fixedNow = time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC)

func gradesBackend(semester *string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /student/grades", func(writer http.ResponseWriter, request *http.Request) {
		if semester != nil {
			*semester = request.URL.Query().Get("semester")
		}
		apitest.JSON(writer, http.StatusOK, `{"data":[{"assignmentTitle":"Essay","score":7},{"assignmentTitle":"Quiz","score":9}]}`)
	})
	return mux
}

func TestService_Export(t *testing.T) {
	env := apitest.New(t, gradesBackend(nil))
	env.SignIn(t, "s1", "student")
	dir := t.TempDir()
	service := export.NewService(env.Client, export.NewDirSink(dir), export.WithClock(func() time.Time { return fixedNow }))

	result, err := service.Export(context.Background(), export.Request{Path: "/student/grades", Format: export.FormatCSV, Name: "Điểm học kỳ 1"})
	require.NoError(t, err)

	assert.Equal(t, "diem-hoc-ky-1-20261017-083000.csv", result.Filename)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, filepath.Join(dir, result.Filename), result.Location)

	data, err := os.ReadFile(result.Location)
	require.NoError(t, err)
	assert.Equal(t, "assignmentTitle,score\nEssay,7\nQuiz,9\n", string(data))
}

func TestService_ExportNeedsSession(t *testing.T) {
	env := apitest.New(t, gradesBackend(nil))
	service := export.NewService(env.Client, export.NewDirSink(t.TempDir()))

	_, err := service.Export(context.Background(), export.Request{Path: "/student/grades", Format: export.FormatJSON})

	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		format string
		field  string
	}{
		{"relative path", "student/grades", "csv", export.FieldPath},
		{"traversal", "/student/../auth/me", "csv", export.FieldPath},
		{"auth", "/auth/me", "json", export.FieldPath},
		{"format", "/student/grades", "xlsx", export.FieldFormat},
		{"valid", "/student/grades", "json", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request, err := export.ParseRequest(tt.path, tt.format, "", nil)
			if tt.field == "" {
				require.NoError(t, err)
				assert.Equal(t, export.FormatJSON, request.Format)
				return
			}

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

func TestHandler_Download(t *testing.T) {
	var semester string
	env := apitest.New(t, gradesBackend(&semester))
	env.SignIn(t, "s1", "student")
	service := export.NewService(env.Client, nil, export.WithClock(func() time.Time { return fixedNow }))

	router := chi.NewRouter()
	export.NewHandler(service).RegisterRoutes(router)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?path=/student/grades&format=json&semester=2026-1", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "2026-1", semester)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "student-grades-20261017-083000.json")
	assert.JSONEq(t, `[{"assignmentTitle":"Essay","score":7},{"assignmentTitle":"Quiz","score":9}]`, recorder.Body.String())
}
