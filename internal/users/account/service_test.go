// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campus/internal/apiclient/apitest"
	"github.com/taibuivan/campus/internal/platform/apperr"
	"github.com/taibuivan/campus/internal/users/account"
)

func TestService_List(t *testing.T) {
	var rawQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /university-admin/students", func(writer http.ResponseWriter, request *http.Request) {
		rawQuery = request.URL.RawQuery
		apitest.JSON(writer, http.StatusOK, `{"data":[{"id":"s1","name":"An","email":"an@campus.test","role":"student","active":true}],"pagination":{"page":2,"limit":1,"total":3}}`)
	})
	env := apitest.New(t, mux)
	env.SignIn(t, "admin", "university-admin")
	service := account.NewService(env.Client)

	members, err := service.List(context.Background(), account.KindStudent, url.Values{"page": {"2"}, "limit": {"1"}})
	require.NoError(t, err)

	assert.Equal(t, "limit=1&page=2", rawQuery)
	require.Len(t, members.Items, 1)
	assert.Equal(t, "An", members.Items[0].Name)
	require.NotNil(t, members.Meta)
	assert.Equal(t, 3, members.Meta.TotalPages)
}

func TestService_UnknownKind(t *testing.T) {
	env := apitest.New(t, http.NotFoundHandler())
	env.SignIn(t, "admin", "university-admin")
	service := account.NewService(env.Client)

	_, err := service.List(context.Background(), account.Kind("admins"), nil)

	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestService_Create(t *testing.T) {
	var received map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /university-admin/teachers", func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)
		_ = json.Unmarshal(body, &received)
		apitest.JSON(writer, http.StatusCreated, `{"id":"t9","name":"Binh","email":"binh@campus.test","role":"teacher"}`)
	})
	env := apitest.New(t, mux)
	env.SignIn(t, "admin", "university-admin")
	service := account.NewService(env.Client)

	tests := []struct {
		name    string
		input   account.MemberInput
		wantErr string
	}{
		{"missing password", account.MemberInput{Name: "Binh", Email: "binh@campus.test"}, account.FieldPassword},
		{"bad email", account.MemberInput{Name: "Binh", Email: "binh", Password: "secret1"}, account.FieldEmail},
		{"valid", account.MemberInput{Name: "Binh", Email: "binh@campus.test", Password: "secret1", Code: "T-9"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member, err := service.Create(context.Background(), account.KindTeacher, tt.input)
			if tt.wantErr != "" {
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, tt.wantErr, ae.Details[0].Field)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "t9", member.ID)
			assert.Equal(t, "T-9", received["code"])
		})
	}
}

func TestService_UpdateKeepsPasswordWhenEmpty(t *testing.T) {
	var received map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /university-admin/students/s1", func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)
		_ = json.Unmarshal(body, &received)
		apitest.JSON(writer, http.StatusOK, `{"data":{"id":"s1","name":"An B"}}`)
	})
	env := apitest.New(t, mux)
	env.SignIn(t, "admin", "university-admin")
	service := account.NewService(env.Client)

	member, err := service.Update(context.Background(), account.KindStudent, "s1", account.MemberInput{Name: "An B", Email: "an@campus.test"})
	require.NoError(t, err)

	assert.Equal(t, "An B", member.Name)
	assert.NotContains(t, received, "password")
}

func TestHandler_Routes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /university-admin/teachers/t1", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	})
	env := apitest.New(t, mux)
	env.SignIn(t, "admin", "university-admin")

	router := chi.NewRouter()
	account.NewHandler(account.NewService(env.Client)).RegisterRoutes(router)

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodDelete, "/teachers/t1", "", http.StatusNoContent},
		{http.MethodGet, "/admins", "", http.StatusNotFound},
		{http.MethodPost, "/students", `{"name":""}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
