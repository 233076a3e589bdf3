// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package export_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campus/internal/export"
)

func TestDirSink_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sink := export.NewDirSink(dir)

	location, err := sink.Put(context.Background(), "../grades.csv", "text/csv", strings.NewReader("a,b\n"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "grades.csv"), location)
	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestS3Sink_Put(t *testing.T) {
	var method, path, body string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		method = request.Method
		path = request.URL.Path
		data, _ := io.ReadAll(request.Body)
		body = string(data)
		writer.Header().Set("ETag", `"etag"`)
		writer.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client := export.NewS3Client(export.S3Config{
		Region:          "us-east-1",
		Endpoint:        server.URL,
		AccessKeyID:     "test",
		SecretAccessKey: "test",
	})
	sink := export.NewS3Sink(client, "campus", "exports")

	location, err := sink.Put(context.Background(), "grades.csv", "text/csv", strings.NewReader("name,score\nAn,9\n"))
	require.NoError(t, err)

	assert.Equal(t, "s3://campus/exports/grades.csv", location)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/campus/exports/grades.csv", path)
	assert.Contains(t, body, "name,score")
}
