// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package message

import (
	"context"
	"net/url"
	"strings"

	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/platform/validate"
)

const basePath = "/messages"

// Service implements mailbox use cases.
type Service struct {
	api apiclient.API
}

// NewService constructs a [Service].
func NewService(api apiclient.API) *Service {
	return &Service{api: api}
}

// Inbox lists received messages.
func (service *Service) Inbox(ctx context.Context, query url.Values) (Mailbox, error) {
	return service.folder(ctx, basePath+"/inbox", query)
}

// Sent lists sent messages.
func (service *Service) Sent(ctx context.Context, query url.Values) (Mailbox, error) {
	return service.folder(ctx, basePath+"/sent", query)
}

func (service *Service) folder(ctx context.Context, path string, query url.Values) (Mailbox, error) {
	var list apiclient.List[Message]
	if err := service.api.Get(ctx, path, &list, apiclient.WithQuery(query)); err != nil {
		return Mailbox{}, err
	}
	return NewMailbox(list.Items), nil
}

// Get opens a single message.
func (service *Service) Get(ctx context.Context, id string) (*Message, error) {
	var answer apiclient.One[Message]
	if err := service.api.Get(ctx, itemPath(id), &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// Send delivers a draft.
func (service *Service) Send(ctx context.Context, draft Draft) (*Message, error) {
	draft.Subject = strings.TrimSpace(draft.Subject)

	validator := &validate.Validator{}
	validator.Required(FieldRecipientID, draft.RecipientID).
		Required(FieldSubject, draft.Subject).
		MaxLen(FieldSubject, draft.Subject, MaxSubjectLength).
		Required(FieldBody, draft.Body).
		MaxLen(FieldBody, draft.Body, MaxBodyLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var answer apiclient.One[Message]
	if err := service.api.Post(ctx, basePath, draft, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// MarkRead flags a received message as read.
func (service *Service) MarkRead(ctx context.Context, id string) error {
	return service.api.Patch(ctx, itemPath(id)+"/read", nil, nil)
}

// Delete removes a message from the caller's mailbox.
func (service *Service) Delete(ctx context.Context, id string) error {
	return service.api.Delete(ctx, itemPath(id), nil)
}

func itemPath(id string) string {
	return basePath + "/" + url.PathEscape(id)
}
