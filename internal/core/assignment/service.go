// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assignment

import (
	"context"
	"net/url"

	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/platform/apperr"
	"github.com/taibuivan/campus/internal/platform/validate"
)

// # Backend Endpoints

const (
	pathTeacherAssignments = "/teacher/assignments"
	pathTeacherSubmissions = "/teacher/submissions"
	pathStudentAssignments = "/student/assignments"
	pathStudentGrades      = "/student/grades"
)

// Service implements coursework use cases.
type Service struct {
	api apiclient.API
}

// NewService constructs a [Service].
func NewService(api apiclient.API) *Service {
	return &Service{api: api}
}

// # Teacher

// TeacherAssignments lists the teacher's assignments, optionally for one class.
func (service *Service) TeacherAssignments(ctx context.Context, classID string) ([]Assignment, error) {
	var list apiclient.List[Assignment]
	if err := service.api.Get(ctx, pathTeacherAssignments, &list, apiclient.WithParam(FieldClassID, classID)); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// Create publishes an assignment.
func (service *Service) Create(ctx context.Context, input Input) (*Assignment, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var answer apiclient.One[Assignment]
	if err := service.api.Post(ctx, pathTeacherAssignments, input, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// Update rewrites an assignment.
func (service *Service) Update(ctx context.Context, id string, input Input) (*Assignment, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var answer apiclient.One[Assignment]
	if err := service.api.Put(ctx, join(pathTeacherAssignments, id), input, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// Delete withdraws an assignment.
func (service *Service) Delete(ctx context.Context, id string) error {
	return service.api.Delete(ctx, join(pathTeacherAssignments, id), nil)
}

// Submissions lists the hand-ins of an assignment.
func (service *Service) Submissions(ctx context.Context, assignmentID string) ([]Submission, error) {
	var list apiclient.List[Submission]
	if err := service.api.Get(ctx, join(pathTeacherAssignments, assignmentID)+"/submissions", &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

/*
Grade records a score on a submission.

PUT /teacher/submissions/{id}/grade

Returns:
  - VALIDATION_ERROR when the score is negative or above MaxScore (when known)
*/
func (service *Service) Grade(ctx context.Context, submissionID string, input GradeInput) (*Submission, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldScore, input.Score < 0, "Must not be negative").
		Custom(FieldScore, input.MaxScore > 0 && input.Score > input.MaxScore, "Must not exceed the assignment's maximum score")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var answer apiclient.One[Submission]
	if err := service.api.Put(ctx, join(pathTeacherSubmissions, submissionID)+"/grade", input, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// # Student

// StudentAssignments lists the signed-in student's assignments.
func (service *Service) StudentAssignments(ctx context.Context, query url.Values) ([]Assignment, error) {
	var list apiclient.List[Assignment]
	if err := service.api.Get(ctx, pathStudentAssignments, &list, apiclient.WithQuery(query)); err != nil {
		return nil, err
	}
	return list.Items, nil
}

/*
Submit hands a file in for an assignment as multipart/form-data.

The file travels in the "file" part and the optional comment in "comment".
Files above [MaxSubmissionBytes] are refused before any upload.
*/
func (service *Service) Submit(ctx context.Context, assignmentID string, file apiclient.Attachment, comment string) (*Submission, error) {
	validator := &validate.Validator{}
	validator.Required(FieldFile, file.Filename).
		MaxBytes(FieldFile, file.Size, MaxSubmissionBytes).
		MaxLen(FieldComment, comment, 2000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	form := apiclient.NewForm()
	if err := form.Attach(FieldFile, file); err != nil {
		return nil, apperr.Internal(err)
	}
	if comment != "" {
		if err := form.Field(FieldComment, comment); err != nil {
			return nil, apperr.Internal(err)
		}
	}

	var answer apiclient.One[Submission]
	if err := service.api.Upload(ctx, join(pathStudentAssignments, assignmentID)+"/submit", form, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// Grades returns the signed-in student's grades and their weighted average.
func (service *Service) Grades(ctx context.Context) (*Report, error) {
	var list apiclient.List[Grade]
	if err := service.api.Get(ctx, pathStudentGrades, &list); err != nil {
		return nil, err
	}
	return &Report{Grades: list.Items, Average: Average(list.Items)}, nil
}

// # Helpers

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldClassID, input.ClassID).
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Custom(FieldDueDate, input.DueDate.IsZero(), "This field is required").
		Positive(FieldMaxScore, input.MaxScore)
	return validator.Err()
}

func join(base, id string) string {
	return base + "/" + url.PathEscape(id)
}
