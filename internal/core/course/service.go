// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"context"
	"net/url"
	"strings"

	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/platform/validate"
)

// # Backend Endpoints

const (
	pathAdminCourses   = "/university-admin/courses"
	pathAdminClasses   = "/university-admin/classes"
	pathTeacherClasses = "/teacher/classes"
	pathTeacherWeek    = "/teacher/schedule"
	pathStudentCourses = "/student/courses"
	pathStudentWeek    = "/student/schedule"
)

// Service implements catalogue and schedule use cases.
type Service struct {
	api apiclient.API
}

// NewService constructs a [Service].
func NewService(api apiclient.API) *Service {
	return &Service{api: api}
}

// # Courses

// ListCourses returns one page of the university's courses.
func (service *Service) ListCourses(ctx context.Context, query url.Values) (*apiclient.List[Course], error) {
	list := &apiclient.List[Course]{}
	if err := service.api.Get(ctx, pathAdminCourses, list, apiclient.WithQuery(query)); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateCourse adds a course to the catalogue.
func (service *Service) CreateCourse(ctx context.Context, input CourseInput) (*Course, error) {
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	if err := validateCourse(input); err != nil {
		return nil, err
	}

	var answer apiclient.One[Course]
	if err := service.api.Post(ctx, pathAdminCourses, input, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// UpdateCourse rewrites a course.
func (service *Service) UpdateCourse(ctx context.Context, id string, input CourseInput) (*Course, error) {
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	if err := validateCourse(input); err != nil {
		return nil, err
	}

	var answer apiclient.One[Course]
	if err := service.api.Put(ctx, join(pathAdminCourses, id), input, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// DeleteCourse removes a course.
func (service *Service) DeleteCourse(ctx context.Context, id string) error {
	return service.api.Delete(ctx, join(pathAdminCourses, id), nil)
}

// # Classes

// ListClasses returns one page of the university's classes.
func (service *Service) ListClasses(ctx context.Context, query url.Values) (*apiclient.List[Class], error) {
	list := &apiclient.List[Class]{}
	if err := service.api.Get(ctx, pathAdminClasses, list, apiclient.WithQuery(query)); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateClass opens a class for a course.
func (service *Service) CreateClass(ctx context.Context, input ClassInput) (*Class, error) {
	if err := validateClass(input); err != nil {
		return nil, err
	}

	var answer apiclient.One[Class]
	if err := service.api.Post(ctx, pathAdminClasses, input, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// UpdateClass rewrites a class.
func (service *Service) UpdateClass(ctx context.Context, id string, input ClassInput) (*Class, error) {
	if err := validateClass(input); err != nil {
		return nil, err
	}

	var answer apiclient.One[Class]
	if err := service.api.Put(ctx, join(pathAdminClasses, id), input, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// DeleteClass removes a class.
func (service *Service) DeleteClass(ctx context.Context, id string) error {
	return service.api.Delete(ctx, join(pathAdminClasses, id), nil)
}

// Enroll adds students to a class. Duplicate and blank ids are dropped.
func (service *Service) Enroll(ctx context.Context, classID string, enrollment Enrollment) (*Class, error) {
	enrollment.StudentIDs = compact(enrollment.StudentIDs)

	validator := &validate.Validator{}
	validator.Custom(FieldStudentIDs, len(enrollment.StudentIDs) == 0, "At least one student is required")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var answer apiclient.One[Class]
	if err := service.api.Post(ctx, join(pathAdminClasses, classID)+"/students", enrollment, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// # Schedules

// ClassSchedule returns the weekly slots of a class, ordered.
func (service *Service) ClassSchedule(ctx context.Context, classID string) ([]Slot, error) {
	return service.week(ctx, join(pathAdminClasses, classID)+"/schedules")
}

// AddSlot schedules a weekly meeting for a class.
func (service *Service) AddSlot(ctx context.Context, classID string, input SlotInput) (*Slot, error) {
	validator := &validate.Validator{}
	validator.Range(FieldDay, input.Day, 1, 7).
		Clock(FieldStartTime, input.StartTime).
		Clock(FieldEndTime, input.EndTime)
	if !validator.HasErrors() {
		validator.Custom(FieldEndTime, input.EndTime <= input.StartTime, "Must be after the start time")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var answer apiclient.One[Slot]
	if err := service.api.Post(ctx, join(pathAdminClasses, classID)+"/schedules", input, &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// # Teacher & Student Views

// TeacherClasses lists the classes taught by the signed-in teacher.
func (service *Service) TeacherClasses(ctx context.Context) ([]Class, error) {
	var list apiclient.List[Class]
	if err := service.api.Get(ctx, pathTeacherClasses, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// TeacherClass returns one of the teacher's classes with its roster.
func (service *Service) TeacherClass(ctx context.Context, id string) (*Class, error) {
	var answer apiclient.One[Class]
	if err := service.api.Get(ctx, join(pathTeacherClasses, id), &answer); err != nil {
		return nil, err
	}
	return &answer.Value, nil
}

// TeacherWeek returns the signed-in teacher's weekly slots, ordered.
func (service *Service) TeacherWeek(ctx context.Context) ([]Slot, error) {
	return service.week(ctx, pathTeacherWeek)
}

// StudentCourses lists the courses the signed-in student follows.
func (service *Service) StudentCourses(ctx context.Context) ([]Course, error) {
	var list apiclient.List[Course]
	if err := service.api.Get(ctx, pathStudentCourses, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// StudentWeek returns the signed-in student's weekly slots, ordered.
func (service *Service) StudentWeek(ctx context.Context) ([]Slot, error) {
	return service.week(ctx, pathStudentWeek)
}

func (service *Service) week(ctx context.Context, path string) ([]Slot, error) {
	var list apiclient.List[Slot]
	if err := service.api.Get(ctx, path, &list); err != nil {
		return nil, err
	}
	return Week(list.Items), nil
}

// # Helpers

func validateCourse(input CourseInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldCode, input.Code).
		MaxLen(FieldCode, input.Code, 20).
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200).
		Range(FieldCredits, input.Credits, 1, MaxCredits)
	return validator.Err()
}

func validateClass(input ClassInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		Required(FieldCourseID, input.CourseID).
		Required(FieldTeacherID, input.TeacherID).
		Custom(FieldCapacity, input.Capacity < 0, "Must not be negative")
	return validator.Err()
}

func join(base, id string) string {
	return base + "/" + url.PathEscape(id)
}

func compact(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
