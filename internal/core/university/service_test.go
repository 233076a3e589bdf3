// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package university_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campus/internal/apiclient/apitest"
	"github.com/taibuivan/campus/internal/core/university"
	"github.com/taibuivan/campus/internal/platform/apperr"
)

func TestService_SearchIsPublic(t *testing.T) {
	var authorization, q string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /universities/search", func(writer http.ResponseWriter, request *http.Request) {
		authorization = request.Header.Get("Authorization")
		q = request.URL.Query().Get("q")
		apitest.JSON(writer, http.StatusOK, `[{"id":"u1","name":"Hanoi University of Science","code":"HUS"}]`)
	})
	env := apitest.New(t, mux)
	service := university.NewService(env.Client)

	results, err := service.Search(context.Background(), "  hanoi ")
	require.NoError(t, err)

	assert.Empty(t, authorization)
	assert.Equal(t, "hanoi", q)
	require.Len(t, results, 1)
	assert.Equal(t, "HUS", results[0].Code)
}

func TestService_SearchTooShort(t *testing.T) {
	env := apitest.New(t, http.NotFoundHandler())
	service := university.NewService(env.Client)

	_, err := service.Search(context.Background(), "h")

	assert.Equal(t, apperr.CodeValidationError, apperr.CodeOf(err))
}

func TestService_AdminCallsNeedSession(t *testing.T) {
	env := apitest.New(t, http.NotFoundHandler())
	service := university.NewService(env.Client)

	_, err := service.List(context.Background(), nil)

	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)
}

func TestService_Create(t *testing.T) {
	var received university.Input
	mux := http.NewServeMux()
	mux.HandleFunc("POST /super-admin/universities", func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)
		_ = json.Unmarshal(body, &received)
		apitest.JSON(writer, http.StatusCreated, `{"data":{"id":"u2","name":"Da Nang University","code":"DNU","active":true}}`)
	})
	env := apitest.New(t, mux)
	env.SignIn(t, "root", "super-admin")
	service := university.NewService(env.Client)

	tests := []struct {
		name  string
		input university.Input
		field string
	}{
		{"missing code", university.Input{Name: "Da Nang University"}, university.FieldCode},
		{"admin without password", university.Input{Name: "Da Nang University", Code: "dnu", AdminEmail: "a@dnu.edu.vn"}, university.FieldAdminPassword},
		{"valid", university.Input{Name: "Da Nang University", Code: " dnu "}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := service.Create(context.Background(), tt.input)
			if tt.field != "" {
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, tt.field, ae.Details[0].Field)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "u2", created.ID)
			assert.True(t, created.Active)
			assert.Equal(t, "DNU", received.Code)
		})
	}
}

func TestService_DeleteConflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /super-admin/universities/u1", func(writer http.ResponseWriter, request *http.Request) {
		apitest.JSON(writer, http.StatusConflict, `{"error":"University still has active classes"}`)
	})
	env := apitest.New(t, mux)
	env.SignIn(t, "root", "super-admin")
	service := university.NewService(env.Client)

	err := service.Delete(context.Background(), "u1")

	require.ErrorIs(t, err, apperr.ErrRequestFailed)
	assert.Equal(t, "University still has active classes", apperr.As(err).Message)
	assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)
}
