// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package exercise

import (
	"bufio"
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/platform/apperr"
	"github.com/taibuivan/campus/internal/platform/constants"
	"github.com/taibuivan/campus/internal/platform/validate"
)

const pathGenerate = "/student/ai-learning/generate"

// Service implements exercise generation.
type Service struct {
	api apiclient.API
}

// NewService constructs a [Service].
func NewService(api apiclient.API) *Service {
	return &Service{api: api}
}

/*
Generate uploads a PDF and returns the generated exercises.

The file must be named *.pdf, weigh at most [MaxPDFBytes] and start with the
PDF signature. Anything else is refused with VALIDATION_ERROR before upload.
*/
func (service *Service) Generate(ctx context.Context, file apiclient.Attachment, options Options) (*Set, error) {
	validator := &validate.Validator{}
	validator.Required(FieldFile, file.Filename).
		Custom(FieldFile, !strings.EqualFold(filepath.Ext(file.Filename), ".pdf"), "Only PDF files are accepted").
		MaxBytes(FieldFile, file.Size, MaxPDFBytes)
	if options.Count != 0 {
		validator.Range(FieldCount, options.Count, 1, MaxCount)
	}
	if options.Difficulty != "" {
		validator.OneOf(FieldDifficulty, options.Difficulty, Difficulties...)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	reader := bufio.NewReader(file.Content)
	head, _ := reader.Peek(len(pdfMagic))
	if string(head) != string(pdfMagic) {
		return nil, validate.RequiredError(FieldFile, "File is not a valid PDF document")
	}
	file.Content = reader
	file.ContentType = constants.ContentTypePDF

	form := apiclient.NewForm()
	if err := form.Attach(FieldFile, file); err != nil {
		return nil, apperr.Internal(err)
	}
	if options.Count != 0 {
		if err := form.Field(FieldCount, strconv.Itoa(options.Count)); err != nil {
			return nil, apperr.Internal(err)
		}
	}
	if options.Difficulty != "" {
		if err := form.Field(FieldDifficulty, options.Difficulty); err != nil {
			return nil, apperr.Internal(err)
		}
	}

	var answer apiclient.One[Set]
	if err := service.api.Upload(ctx, pathGenerate, form, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}
