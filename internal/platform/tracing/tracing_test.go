// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracing_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/taibuivan/campus/internal/platform/config"
	"github.com/taibuivan/campus/internal/platform/tracing"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestSetup_Disabled(t *testing.T) {
	provider, err := tracing.Setup(context.Background(), &config.Config{TracesExporter: config.TracesNone}, io.Discard, discard)

	require.NoError(t, err)
	assert.Nil(t, provider)
}

func TestSetup_Console(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer

	provider, err := tracing.Setup(ctx, &config.Config{TracesExporter: config.TracesConsole, Environment: "test"}, &out, discard)
	require.NoError(t, err)
	require.NotNil(t, provider)

	_, span := otel.Tracer("campus.test").Start(ctx, "list grades")
	span.End()
	require.NoError(t, provider.Shutdown(ctx))

	assert.Contains(t, out.String(), "list grades")
	assert.Contains(t, out.String(), "campus")
}

func TestSetup_Unsupported(t *testing.T) {
	_, err := tracing.Setup(context.Background(), &config.Config{TracesExporter: "jaeger"}, io.Discard, discard)
	assert.Error(t, err)
}
