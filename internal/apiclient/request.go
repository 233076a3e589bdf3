// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// Request describes one backend call. It is never persisted.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header

	// Body follows the body policy: nil sends nothing, [Multipart] and *[Form]
	// are sent raw with their boundary content type, an [io.Reader] or []byte
	// is sent raw without a forced content type, anything else is JSON.
	Body any

	// Public marks calls that must not carry credentials (login, register,
	// public search). The zero value requires authentication.
	Public bool
}

// Option adjusts a [Request] built by the convenience methods.
type Option func(*Request)

// WithoutAuth marks the call as public: no session check, no Authorization header.
func WithoutAuth() Option {
	return func(request *Request) {
		request.Public = true
	}
}

// WithHeader adds a caller header.
func WithHeader(key, value string) Option {
	return func(request *Request) {
		if request.Header == nil {
			request.Header = make(http.Header)
		}
		request.Header.Add(key, value)
	}
}

// WithQuery merges values into the query string.
func WithQuery(values url.Values) Option {
	return func(request *Request) {
		if request.Query == nil {
			request.Query = make(url.Values)
		}
		for key, list := range values {
			for _, value := range list {
				request.Query.Add(key, value)
			}
		}
	}
}

// WithParam sets a single query parameter. Empty values are skipped.
func WithParam(key, value string) Option {
	return func(request *Request) {
		if value == "" {
			return
		}
		if request.Query == nil {
			request.Query = make(url.Values)
		}
		request.Query.Set(key, value)
	}
}

// # Multipart

// Multipart is a pre-encoded multipart body and its boundary content type.
type Multipart struct {
	Body        io.Reader
	ContentType string
}

// Form builds a multipart/form-data body in memory.
type Form struct {
	buffer bytes.Buffer
	writer *multipart.Writer
	closed bool
}

// NewForm returns an empty form.
func NewForm() *Form {
	form := &Form{}
	form.writer = multipart.NewWriter(&form.buffer)
	return form
}

// Field adds a plain form field.
func (form *Form) Field(name, value string) error {
	if form.closed {
		return fmt.Errorf("apiclient: form already encoded")
	}
	return form.writer.WriteField(name, value)
}

// File adds a file part. An empty contentType defaults to application/octet-stream.
func (form *Form) File(field, filename, contentType string, content io.Reader) error {
	if form.closed {
		return fmt.Errorf("apiclient: form already encoded")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(field), escapeQuotes(filename)))
	header.Set("Content-Type", contentType)

	part, err := form.writer.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, content)
	return err
}

// Attachment is a file on its way to the backend.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Attach adds file as a file part named field.
func (form *Form) Attach(field string, file Attachment) error {
	return form.File(field, file.Filename, file.ContentType, file.Content)
}

// Encode closes the form and returns it as a [Multipart].
func (form *Form) Encode() (Multipart, error) {
	if !form.closed {
		if err := form.writer.Close(); err != nil {
			return Multipart{}, err
		}
		form.closed = true
	}
	return Multipart{
		Body:        bytes.NewReader(form.buffer.Bytes()),
		ContentType: form.writer.FormDataContentType(),
	}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
