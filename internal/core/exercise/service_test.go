// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package exercise_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/apiclient/apitest"
	"github.com/taibuivan/campus/internal/core/exercise"
	"github.com/taibuivan/campus/internal/platform/apperr"
)

const samplePDF = "%PDF-1.7\n1 0 obj <<>> endobj\n%%EOF"

func attachment(name, content string) apiclient.Attachment {
	return apiclient.Attachment{Filename: name, Size: int64(len(content)), Content: strings.NewReader(content)}
}

func TestService_Generate(t *testing.T) {
	var partType, count, content string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /student/ai-learning/generate", func(writer http.ResponseWriter, request *http.Request) {
		file, header, err := request.FormFile("pdf")
		if err != nil {
			writer.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)

		partType = header.Header.Get("Content-Type")
		content = string(data)
		count = request.FormValue("count")
		apitest.JSON(writer, http.StatusOK, `{"title":"Chapter 1","questions":[{"question":"2+2?","options":["3","4"],"answer":"4"}]}`)
	})
	env := apitest.New(t, mux)
	env.SignIn(t, "s1", "student")
	service := exercise.NewService(env.Client)

	set, err := service.Generate(context.Background(), attachment("Chapter1.PDF", samplePDF), exercise.Options{Count: 5})
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", partType)
	assert.Equal(t, samplePDF, content)
	assert.Equal(t, "5", count)
	assert.Equal(t, "Chapter 1", set.Title)
	require.Len(t, set.Exercises, 1)
	assert.Equal(t, "4", set.Exercises[0].Answer)
}

func TestService_GenerateRejects(t *testing.T) {
	env := apitest.New(t, http.NotFoundHandler())
	env.SignIn(t, "s1", "student")
	service := exercise.NewService(env.Client)

	oversized := attachment("big.pdf", samplePDF)
	oversized.Size = exercise.MaxPDFBytes + 1

	tests := []struct {
		name    string
		file    apiclient.Attachment
		options exercise.Options
		field   string
	}{
		{"wrong extension", attachment("notes.docx", samplePDF), exercise.Options{}, exercise.FieldFile},
		{"too large", oversized, exercise.Options{}, exercise.FieldFile},
		{"not a pdf", attachment("fake.pdf", "hello world"), exercise.Options{}, exercise.FieldFile},
		{"count out of range", attachment("a.pdf", samplePDF), exercise.Options{Count: exercise.MaxCount + 1}, exercise.FieldCount},
		{"unknown difficulty", attachment("a.pdf", samplePDF), exercise.Options{Difficulty: "extreme"}, exercise.FieldDifficulty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Generate(context.Background(), tt.file, tt.options)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidationError, ae.Code)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

func TestSet_UnmarshalJSON(t *testing.T) {
	var bare exercise.Set
	require.NoError(t, json.Unmarshal([]byte(`[{"question":"a"},{"question":"b"}]`), &bare))
	assert.Len(t, bare.Exercises, 2)

	var wrapped exercise.Set
	require.NoError(t, json.Unmarshal([]byte(`{"exercises":[{"question":"a"}]}`), &wrapped))
	assert.Len(t, wrapped.Exercises, 1)
}
