// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles client-wide settings.

It leverages 'caarlos0/env' to map environment variables into a strongly-typed
Go struct. An optional YAML file can supply the same keys (snake_case); the
real environment always wins over the file.

Usage:

	cfg, err := config.Load("")
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/campus/internal/platform/constants"
)

// # Session Backends

// SessionBackend names where the token store persists its two keys.
type SessionBackend string

const (
	BackendMemory   SessionBackend = "memory"
	BackendFile     SessionBackend = "file"
	BackendRedis    SessionBackend = "redis"
	BackendPostgres SessionBackend = "postgres"
)

// # Tracing

// TracesExporter names where OpenTelemetry spans are sent.
type TracesExporter string

const (
	TracesNone    TracesExporter = "none"
	TracesConsole TracesExporter = "console"
	TracesOTLP    TracesExporter = "otlp"
)

// # Configuration Schema

// Config holds all runtime configuration for the CLI and the console.
type Config struct {

	// REST backend
	APIBaseURL     string        `env:"API_BASE_URL,required"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// Runtime
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// Local console
	ConsolePort string        `env:"CONSOLE_PORT" envDefault:"8090"`
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT" envDefault:"30m"`

	// Session persistence
	SessionBackend   SessionBackend `env:"SESSION_BACKEND"    envDefault:"file"`
	SessionKeyPrefix string         `env:"SESSION_KEY_PREFIX" envDefault:"campus:session:"`
	StateDir         string         `env:"STATE_DIR"`
	RedisURL         string         `env:"REDIS_URL"`
	DatabaseURL      string         `env:"DATABASE_URL"`
	MigrationPath    string         `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Exports (local directory or S3-compatible bucket)
	ExportDir         string `env:"EXPORT_DIR" envDefault:"./exports"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3Prefix          string `env:"S3_PREFIX"   envDefault:"exports/"`
	S3Region          string `env:"S3_REGION"   envDefault:"auto"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`

	// Tracing. Setting an OTLP endpoint alone selects the otlp exporter.
	TracesExporter TracesExporter `env:"OTEL_TRACES_EXPORTER"        envDefault:"none"`
	OTLPEndpoint   string         `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// # Configuration Loading

// Load parses the optional YAML file at path, overlays the process
// environment, and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	environment := env.ToMap(os.Environ())

	if path != "" {
		fileValues, err := readFile(path)
		if err != nil {
			return nil, err
		}
		for key, value := range fileValues {
			if _, set := environment[key]; !set {
				environment[key] = value
			}
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("API_BASE_URL %q is not an absolute URL", c.APIBaseURL)
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = constants.DefaultRequestTimeout
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = constants.DefaultIdleTimeout
	}

	switch c.SessionBackend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis session backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres session backend")
		}
	default:
		return fmt.Errorf("unsupported SESSION_BACKEND %q", c.SessionBackend)
	}

	switch c.TracesExporter {
	case TracesNone, "":
		c.TracesExporter = TracesNone
		if c.OTLPEndpoint != "" {
			c.TracesExporter = TracesOTLP
		}
	case TracesConsole, TracesOTLP:
	default:
		return fmt.Errorf("unsupported OTEL_TRACES_EXPORTER %q", c.TracesExporter)
	}

	return nil
}

// IsDevelopment reports whether the client runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// TracingEnabled reports whether spans are exported.
func (c *Config) TracingEnabled() bool {
	return c.TracesExporter != TracesNone
}

// UsesS3 reports whether exports go to an S3-compatible bucket.
func (c *Config) UsesS3() bool {
	return c.S3Bucket != ""
}
