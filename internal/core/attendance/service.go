// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package attendance

import (
	"context"
	"fmt"
	"net/url"

	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/platform/validate"
)

// # Backend Endpoints

const (
	pathTeacherClasses = "/teacher/classes"
	pathStudent        = "/student/attendance"
)

// Service implements attendance use cases.
type Service struct {
	api apiclient.API
}

// NewService constructs a [Service].
func NewService(api apiclient.API) *Service {
	return &Service{api: api}
}

// ClassAttendance returns a class's records, for one date when date is set.
func (service *Service) ClassAttendance(ctx context.Context, classID, date string) ([]Record, error) {
	if date != "" {
		validator := &validate.Validator{}
		if err := validator.Date(FieldDate, date).Err(); err != nil {
			return nil, err
		}
	}

	var list apiclient.List[Record]
	if err := service.api.Get(ctx, classPath(classID), &list, apiclient.WithParam(FieldDate, date)); err != nil {
		return nil, err
	}
	return list.Items, nil
}

/*
Mark submits a whole attendance sheet in one call.

Every line needs a student id and a known status; a student may appear once.
*/
func (service *Service) Mark(ctx context.Context, classID string, sheet Sheet) ([]Record, error) {
	validator := &validate.Validator{}
	validator.Date(FieldDate, sheet.Date).
		Custom(FieldRecords, len(sheet.Records) == 0, "At least one record is required")

	seen := make(map[string]bool, len(sheet.Records))
	for index, mark := range sheet.Records {
		field := fmt.Sprintf("%s[%d]", FieldRecords, index)
		validator.Required(field+".studentId", mark.StudentID).
			OneOf(field+"."+FieldStatus, string(mark.Status), Statuses()...).
			Custom(field+".studentId", seen[mark.StudentID], "Duplicate student")
		seen[mark.StudentID] = true
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var list apiclient.List[Record]
	if err := service.api.Post(ctx, classPath(classID), sheet, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// Mine returns the signed-in student's records, optionally for one class.
func (service *Service) Mine(ctx context.Context, classID string) ([]Record, error) {
	var list apiclient.List[Record]
	if err := service.api.Get(ctx, pathStudent, &list, apiclient.WithParam(FieldClassID, classID)); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func classPath(classID string) string {
	return pathTeacherClasses + "/" + url.PathEscape(classID) + "/attendance"
}
