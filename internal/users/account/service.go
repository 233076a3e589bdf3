// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"net/url"

	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/platform/apperr"
	"github.com/taibuivan/campus/internal/platform/validate"
)

// basePath is the university-admin prefix every member call lives under.
const basePath = "/university-admin/"

// Service implements member management use cases.
type Service struct {
	api apiclient.API
}

// NewService constructs a [Service].
func NewService(api apiclient.API) *Service {
	return &Service{api: api}
}

/*
List returns one page of members.

Parameters:
  - kind: KindTeacher or KindStudent
  - query: page, limit and backend filters (e.g. "search", "department")
*/
func (service *Service) List(ctx context.Context, kind Kind, query url.Values) (*apiclient.List[Member], error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	list := &apiclient.List[Member]{}
	if err := service.api.Get(ctx, basePath+string(kind), list, apiclient.WithQuery(query)); err != nil {
		return nil, err
	}
	return list, nil
}

// Get returns a single member.
func (service *Service) Get(ctx context.Context, kind Kind, id string) (*Member, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	var answer apiclient.One[Member]
	if err := service.api.Get(ctx, memberPath(kind, id), &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// Create adds a member to the administrator's university.
func (service *Service) Create(ctx context.Context, kind Kind, input MemberInput) (*Member, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	validator := validateInput(input)
	validator.Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var answer apiclient.One[Member]
	if err := service.api.Post(ctx, basePath+string(kind), input, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// Update rewrites a member's profile. An empty password leaves it unchanged.
func (service *Service) Update(ctx context.Context, kind Kind, id string, input MemberInput) (*Member, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	validator := validateInput(input)
	if input.Password != "" {
		validator.MinLen(FieldPassword, input.Password, MinPasswordLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var answer apiclient.One[Member]
	if err := service.api.Put(ctx, memberPath(kind, id), input, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// Delete removes a member.
func (service *Service) Delete(ctx context.Context, kind Kind, id string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	return service.api.Delete(ctx, memberPath(kind, id), nil)
}

func validateInput(input MemberInput) *validate.Validator {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldCode, input.Code, 32)
	return validator
}

func checkKind(kind Kind) error {
	if !kind.Valid() {
		return apperr.NotFound("Member collection")
	}
	return nil
}

func memberPath(kind Kind, id string) string {
	return basePath + string(kind) + "/" + url.PathEscape(id)
}
