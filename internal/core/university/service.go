// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package university

import (
	"context"
	"net/url"
	"strings"

	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/platform/validate"
)

// # Backend Endpoints

const (
	pathAdmin  = "/super-admin/universities"
	pathSearch = "/universities/search"
)

// Service implements university use cases.
type Service struct {
	api apiclient.API
}

// NewService constructs a [Service].
func NewService(api apiclient.API) *Service {
	return &Service{api: api}
}

// List returns one page of universities.
func (service *Service) List(ctx context.Context, query url.Values) (*apiclient.List[University], error) {
	list := &apiclient.List[University]{}
	if err := service.api.Get(ctx, pathAdmin, list, apiclient.WithQuery(query)); err != nil {
		return nil, err
	}
	return list, nil
}

// Get returns a single university.
func (service *Service) Get(ctx context.Context, id string) (*University, error) {
	var answer apiclient.One[University]
	if err := service.api.Get(ctx, itemPath(id), &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

/*
Create registers a university and, when AdminEmail is given, its first
administrator.

Returns:
  - VALIDATION_ERROR before any call when the input is malformed
*/
func (service *Service) Create(ctx context.Context, input Input) (*University, error) {
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var answer apiclient.One[University]
	if err := service.api.Post(ctx, pathAdmin, input, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// Update rewrites a university.
func (service *Service) Update(ctx context.Context, id string, input Input) (*University, error) {
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var answer apiclient.One[University]
	if err := service.api.Put(ctx, itemPath(id), input, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// Delete removes a university.
func (service *Service) Delete(ctx context.Context, id string) error {
	return service.api.Delete(ctx, itemPath(id), nil)
}

// Search looks universities up by name or code. It needs no session.
func (service *Service) Search(ctx context.Context, q string) ([]University, error) {
	q = strings.TrimSpace(q)

	validator := &validate.Validator{}
	validator.MinLen(FieldQuery, q, MinSearchLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var list apiclient.List[University]
	err := service.api.Get(ctx, pathSearch, &list, apiclient.WithParam(FieldQuery, q), apiclient.WithoutAuth())
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200).
		Required(FieldCode, input.Code).
		MaxLen(FieldCode, input.Code, 20)
	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}
	if input.AdminEmail != "" {
		validator.Email(FieldAdminEmail, input.AdminEmail).
			Required(FieldAdminPassword, input.AdminPassword)
	}
	return validator.Err()
}

func itemPath(id string) string {
	return pathAdmin + "/" + url.PathEscape(id)
}
