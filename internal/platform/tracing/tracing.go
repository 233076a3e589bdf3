// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tracing installs the OpenTelemetry tracer provider.

Backend calls made through the API client open one client span each. Spans
are exported only when OTEL_TRACES_EXPORTER (or OTEL_EXPORTER_OTLP_ENDPOINT)
asks for it:

  - console: JSON lines on the given writer, for local debugging.
  - otlp: OTLP over HTTP to the configured collector.
*/
package tracing

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/taibuivan/campus/internal/platform/config"
	"github.com/taibuivan/campus/internal/platform/constants"
)

// Setup builds the provider selected by cfg and makes it the global one.
// It returns nil when tracing is off. The caller must Shutdown the provider
// to flush pending spans.
func Setup(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) (*sdktrace.TracerProvider, error) {
	var (
		exporter sdktrace.SpanExporter
		err      error
	)

	switch cfg.TracesExporter {
	case config.TracesNone, "":
		return nil, nil
	case config.TracesConsole:
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(out))
	case config.TracesOTLP:
		var options []otlptracehttp.Option
		if cfg.OTLPEndpoint != "" {
			options = append(options, otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
		}
		exporter, err = otlptracehttp.New(ctx, options...)
	default:
		return nil, fmt.Errorf("tracing: unsupported exporter %q", cfg.TracesExporter)
	}
	if err != nil {
		return nil, fmt.Errorf("tracing: create %s exporter: %w", cfg.TracesExporter, err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", constants.AppName),
			attribute.String("service.version", constants.AppVersion),
			attribute.String("deployment.environment", cfg.Environment),
		)),
	)
	otel.SetTracerProvider(provider)

	logger.Debug("tracing_enabled",
		slog.String("exporter", string(cfg.TracesExporter)),
		slog.String("endpoint", cfg.OTLPEndpoint),
	)
	return provider, nil
}
