// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apiclient is the uniform transport for every backend call.

It consults the session guard before authenticated calls, applies the body
policy (JSON or raw multipart), and turns transport outcomes into the
[apperr] taxonomy:

  - 401: the session is cleared, the user is sent to login, SESSION_EXPIRED.
  - 503: the user is sent to the maintenance page, SERVICE_UNAVAILABLE.
  - other non-2xx: REQUEST_FAILED carrying the server message.
  - 2xx: the JSON body is decoded into the caller's value.

There are no retries. Each failure surfaces exactly once and the caller
decides what to do. Every call honours ctx: cancelling it aborts the request
and the returned error wraps [context.Canceled].
*/
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/campus/internal/navigate"
	"github.com/taibuivan/campus/internal/platform/apperr"
	"github.com/taibuivan/campus/internal/platform/constants"
	"github.com/taibuivan/campus/internal/platform/ctxutil"
	"github.com/taibuivan/campus/internal/platform/metrics"
	"github.com/taibuivan/campus/internal/session"
)

// TracerName is the instrumentation scope of the client spans.
const TracerName = "github.com/taibuivan/campus/internal/apiclient"

// Client calls the REST backend on behalf of the signed-in user.
type Client struct {
	baseURL   string
	http      *http.Client
	guard     *session.Guard
	navigator navigate.Navigator
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	timeout   time.Duration
}

// ClientOption configures a [Client].
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying [http.Client].
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(client *Client) {
		client.http = httpClient
	}
}

// WithLogger sets the fallback logger used when ctx carries none.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// WithMetrics records every call on collectors.
func WithMetrics(collectors *metrics.Metrics) ClientOption {
	return func(client *Client) {
		client.metrics = collectors
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(tracer trace.Tracer) ClientOption {
	return func(client *Client) {
		client.tracer = tracer
	}
}

// WithTimeout bounds calls whose ctx has no deadline.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(client *Client) {
		client.timeout = timeout
	}
}

// New returns a client for baseURL. navigator receives the maintenance
// navigation; logout navigations go through the guard.
func New(baseURL string, guard *session.Guard, navigator navigate.Navigator, opts ...ClientOption) *Client {
	client := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		guard:     guard,
		navigator: navigator,
		logger:    slog.Default(),
		tracer:    otel.Tracer(TracerName),
		timeout:   constants.DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// BaseURL returns the backend root every path is joined to.
func (client *Client) BaseURL() string { return client.baseURL }

// Guard returns the session guard consulted before authenticated calls.
func (client *Client) Guard() *session.Guard { return client.guard }

// # Convenience methods

// Get issues a GET and decodes the answer into out.
func (client *Client) Get(ctx context.Context, path string, out any, opts ...Option) error {
	return client.Do(ctx, build(http.MethodGet, path, nil, opts), out)
}

// Post issues a POST with body.
func (client *Client) Post(ctx context.Context, path string, body, out any, opts ...Option) error {
	return client.Do(ctx, build(http.MethodPost, path, body, opts), out)
}

// Put issues a PUT with body.
func (client *Client) Put(ctx context.Context, path string, body, out any, opts ...Option) error {
	return client.Do(ctx, build(http.MethodPut, path, body, opts), out)
}

// Patch issues a PATCH with body.
func (client *Client) Patch(ctx context.Context, path string, body, out any, opts ...Option) error {
	return client.Do(ctx, build(http.MethodPatch, path, body, opts), out)
}

// Delete issues a DELETE.
func (client *Client) Delete(ctx context.Context, path string, out any, opts ...Option) error {
	return client.Do(ctx, build(http.MethodDelete, path, nil, opts), out)
}

// Upload POSTs a multipart form. The body is always sent raw, never as JSON.
func (client *Client) Upload(ctx context.Context, path string, form *Form, out any, opts ...Option) error {
	if form == nil {
		return apperr.ValidationError("Upload requires a form")
	}
	payload, err := form.Encode()
	if err != nil {
		return apperr.Internal(fmt.Errorf("apiclient: encode form: %w", err))
	}
	return client.Do(ctx, build(http.MethodPost, path, payload, opts), out)
}

func build(method, path string, body any, opts []Option) Request {
	request := Request{Method: method, Path: path, Body: body}
	for _, opt := range opts {
		opt(&request)
	}
	return request
}

// # Generic request

// Do executes request and decodes a 2xx answer into out.
//
// out may be nil (body discarded), *[]byte (raw bytes), an [io.Writer]
// (body copied) or any JSON target.
func (client *Client) Do(ctx context.Context, request Request, out any) error {
	method := request.Method
	if method == "" {
		method = http.MethodGet
	}
	logger := ctxutil.LoggerOr(ctx, client.logger).With(
		slog.String("method", method),
		slog.String("path", request.Path),
	)

	if !request.Public && !client.guard.EnforceOrLogout(ctx) {
		client.metrics.ObserveRequest(method, 0, metrics.OutcomeSkipped, 0)
		logger.Debug("api_request_unauthenticated")
		return apperr.AuthenticationRequired()
	}

	if _, ok := ctx.Deadline(); !ok && client.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, client.timeout)
		defer cancel()
	}

	ctx, span := client.tracer.Start(ctx, "campus.api "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", request.Path),
			attribute.Bool("campus.public", request.Public),
		),
	)
	defer span.End()

	httpRequest, err := client.newHTTPRequest(ctx, method, request)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return err
	}

	start := time.Now()
	response, err := client.http.Do(httpRequest)
	elapsed := time.Since(start)
	if err != nil {
		client.metrics.ObserveRequest(method, 0, metrics.OutcomeNetworkError, elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		logger.Warn("api_request_network_error", slog.Any("error", err))
		return apperr.Network(err)
	}
	defer response.Body.Close()

	client.metrics.ObserveRequest(method, response.StatusCode, "", elapsed)
	span.SetAttributes(attribute.Int("http.response.status_code", response.StatusCode))

	if err := client.interpret(ctx, request, response, out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperr.CodeOf(err))
		logger.Warn("api_request_failed",
			slog.Int("status", response.StatusCode),
			slog.String("code", apperr.CodeOf(err)),
			slog.Duration("elapsed", elapsed),
		)
		return err
	}

	logger.Debug("api_request_completed",
		slog.Int("status", response.StatusCode),
		slog.Duration("elapsed", elapsed),
	)
	return nil
}

// interpret applies the status policy in order: 401, 503, other non-2xx, 2xx.
func (client *Client) interpret(ctx context.Context, request Request, response *http.Response, out any) error {
	status := response.StatusCode

	switch {
	// A public call has no session to end: a 401 from /auth/login means wrong
	// credentials and falls through to REQUEST_FAILED with the server message.
	case status == http.StatusUnauthorized && !request.Public:
		client.guard.LogoutFor(ctx, session.ReasonUnauthorized)
		return apperr.SessionExpired()

	case status == http.StatusServiceUnavailable:
		client.metrics.MaintenanceRedirect()
		if client.navigator != nil {
			client.navigator.Navigate(ctx, constants.MaintenancePath)
		}
		message, _ := readErrorBody(response.Body)
		return apperr.ServiceUnavailable(message)

	case status < 200 || status > 299:
		message, details := readErrorBody(response.Body)
		return apperr.RequestFailed(status, message, details...)
	}

	return decodeBody(response, out)
}

func (client *Client) newHTTPRequest(ctx context.Context, method string, request Request) (*http.Request, error) {
	target := client.baseURL + "/" + strings.TrimLeft(request.Path, "/")
	if len(request.Query) > 0 {
		target += "?" + request.Query.Encode()
	}

	body, contentType, err := encodeBody(request.Body)
	if err != nil {
		return nil, err
	}

	httpRequest, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("apiclient: build request: %w", err))
	}

	// Caller headers first, then the content-type policy, then credentials.
	for key, values := range request.Header {
		for _, value := range values {
			httpRequest.Header.Add(key, value)
		}
	}
	if contentType != "" {
		httpRequest.Header.Set(constants.HeaderContentType, contentType)
	}
	if httpRequest.Header.Get(constants.HeaderAccept) == "" {
		httpRequest.Header.Set(constants.HeaderAccept, constants.ContentTypeJSON)
	}

	requestID := ctxutil.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.Must(uuid.NewV7()).String()
	}
	httpRequest.Header.Set(constants.HeaderXRequestID, requestID)

	if !request.Public {
		for key, values := range client.guard.AuthHeader(ctx) {
			httpRequest.Header[key] = values
		}
	}

	return httpRequest, nil
}

// encodeBody returns the reader and the content type to force, if any.
func encodeBody(body any) (io.Reader, string, error) {
	switch value := body.(type) {
	case nil:
		return nil, "", nil
	case Multipart:
		return value.Body, value.ContentType, nil
	case *Multipart:
		return value.Body, value.ContentType, nil
	case *Form:
		payload, err := value.Encode()
		if err != nil {
			return nil, "", apperr.Internal(fmt.Errorf("apiclient: encode form: %w", err))
		}
		return payload.Body, payload.ContentType, nil
	case []byte:
		return bytes.NewReader(value), "", nil
	case io.Reader:
		return value, "", nil
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return nil, "", apperr.Internal(fmt.Errorf("apiclient: encode json body: %w", err))
		}
		return bytes.NewReader(data), constants.ContentTypeJSON, nil
	}
}

func decodeBody(response *http.Response, out any) error {
	switch target := out.(type) {
	case nil:
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	case *[]byte:
		data, err := io.ReadAll(response.Body)
		if err != nil {
			return apperr.Network(err)
		}
		*target = data
		return nil
	case io.Writer:
		if _, err := io.Copy(target, response.Body); err != nil {
			return apperr.Network(err)
		}
		return nil
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return apperr.Network(err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperr.Internal(fmt.Errorf("apiclient: decode response: %w", err))
	}
	return nil
}

// errorBody is the best-effort shape of a backend error answer.
type errorBody struct {
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
	Details json.RawMessage `json:"details"`
	Errors  json.RawMessage `json:"errors"`
}

// readErrorBody extracts the server message and field details. A missing or
// unparsable body yields empty results.
func readErrorBody(body io.Reader) (string, []apperr.FieldError) {
	data, err := io.ReadAll(io.LimitReader(body, constants.MaxErrorBodyBytes))
	if err != nil || len(data) == 0 {
		return "", nil
	}

	var parsed errorBody
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", nil
	}

	message := parsed.Message
	if message == "" && len(parsed.Error) > 0 {
		var text string
		var nested struct {
			Message string `json:"message"`
		}
		switch {
		case json.Unmarshal(parsed.Error, &text) == nil:
			message = text
		case json.Unmarshal(parsed.Error, &nested) == nil:
			message = nested.Message
		}
	}

	details := parseDetails(parsed.Details)
	if details == nil {
		details = parseDetails(parsed.Errors)
	}
	return message, details
}

func parseDetails(raw json.RawMessage) []apperr.FieldError {
	if len(raw) == 0 {
		return nil
	}

	var list []apperr.FieldError
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list
	}

	var byField map[string]string
	if err := json.Unmarshal(raw, &byField); err == nil && len(byField) > 0 {
		list = make([]apperr.FieldError, 0, len(byField))
		for field, message := range byField {
			list = append(list, apperr.FieldError{Field: field, Message: message})
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Field < list[j].Field })
		return list
	}
	return nil
}

// IsCanceled reports whether err stems from a cancelled or timed-out ctx.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
