// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/taibuivan/campus/pkg/pagination"
)

// API is the transport surface the domain services depend on. [*Client]
// implements it.
type API interface {
	Get(ctx context.Context, path string, out any, opts ...Option) error
	Post(ctx context.Context, path string, body, out any, opts ...Option) error
	Put(ctx context.Context, path string, body, out any, opts ...Option) error
	Patch(ctx context.Context, path string, body, out any, opts ...Option) error
	Delete(ctx context.Context, path string, out any, opts ...Option) error
	Upload(ctx context.Context, path string, form *Form, out any, opts ...Option) error
}

var _ API = (*Client)(nil)

// envelopeKeys are the only keys a response wrapper may carry besides "data".
var envelopeKeys = map[string]bool{
	"data": true, "message": true, "success": true, "status": true,
	"meta": true, "pagination": true,
}

// One decodes a single resource, whether the backend sent it bare or wrapped
// as {"data": ...}.
type One[T any] struct {
	Value T
}

// UnmarshalJSON implements [json.Unmarshaler].
func (one *One[T]) UnmarshalJSON(data []byte) error {
	if inner, ok := unwrap(data); ok {
		data = inner
	}
	return json.Unmarshal(data, &one.Value)
}

// List decodes a collection sent as a bare array, or wrapped as
// {"data": [...], "meta"|"pagination": {...}}.
type List[T any] struct {
	Items []T              `json:"data"`
	Meta  *pagination.Meta `json:"meta,omitempty"`
}

// UnmarshalJSON implements [json.Unmarshaler].
func (list *List[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &list.Items)
	}

	var wrapper struct {
		Data       []T              `json:"data"`
		Meta       *pagination.Meta `json:"meta"`
		Pagination *pagination.Meta `json:"pagination"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return err
	}

	list.Items = wrapper.Data
	list.Meta = wrapper.Meta
	if list.Meta == nil {
		list.Meta = wrapper.Pagination
	}
	if list.Meta != nil {
		completed := list.Meta.Complete()
		list.Meta = &completed
	}
	if list.Items == nil {
		list.Items = []T{}
	}
	return nil
}

// unwrap returns the "data" member of an envelope object.
func unwrap(data []byte) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false
	}
	inner, ok := fields["data"]
	if !ok {
		return nil, false
	}
	for key := range fields {
		if !envelopeKeys[key] {
			return nil, false
		}
	}
	return inner, true
}
