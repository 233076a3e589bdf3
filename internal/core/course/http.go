// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/campus/internal/platform/requestutil"
	"github.com/taibuivan/campus/internal/platform/respond"
)

// Handler serves catalogue pages for each role group.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes mounts the university-admin catalogue.
//
// # Endpoints
//   - GET|POST        /courses
//   - PUT|DELETE      /courses/{id}
//   - GET|POST        /classes
//   - PUT|DELETE      /classes/{id}
//   - POST            /classes/{id}/students
//   - GET|POST        /classes/{id}/schedules
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/courses", handler.listCourses)
	router.Post("/courses", handler.createCourse)
	router.Put("/courses/{id}", handler.updateCourse)
	router.Delete("/courses/{id}", handler.deleteCourse)

	router.Get("/classes", handler.listClasses)
	router.Post("/classes", handler.createClass)
	router.Put("/classes/{id}", handler.updateClass)
	router.Delete("/classes/{id}", handler.deleteClass)
	router.Post("/classes/{id}/students", handler.enroll)
	router.Get("/classes/{id}/schedules", handler.classSchedule)
	router.Post("/classes/{id}/schedules", handler.addSlot)
}

// RegisterTeacherRoutes mounts the teacher's classes and week.
func (handler *Handler) RegisterTeacherRoutes(router chi.Router) {
	router.Get("/classes", handler.teacherClasses)
	router.Get("/classes/{id}", handler.teacherClass)
	router.Get("/schedule", handler.teacherWeek)
}

// RegisterStudentRoutes mounts the student's courses and week.
func (handler *Handler) RegisterStudentRoutes(router chi.Router) {
	router.Get("/courses", handler.studentCourses)
	router.Get("/schedule", handler.studentWeek)
}

// # Courses

func (handler *Handler) listCourses(writer http.ResponseWriter, request *http.Request) {
	list, err := handler.service.ListCourses(request.Context(), requestutil.ListQuery(request, "search", "department"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, list.Items, list.Meta)
}

func (handler *Handler) createCourse(writer http.ResponseWriter, request *http.Request) {
	var input CourseInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateCourse(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateCourse(writer http.ResponseWriter, request *http.Request) {
	var input CourseInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateCourse(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteCourse(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCourse(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Classes

func (handler *Handler) listClasses(writer http.ResponseWriter, request *http.Request) {
	list, err := handler.service.ListClasses(request.Context(), requestutil.ListQuery(request, "courseId", "teacherId", "semester"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, list.Items, list.Meta)
}

func (handler *Handler) createClass(writer http.ResponseWriter, request *http.Request) {
	var input ClassInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateClass(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateClass(writer http.ResponseWriter, request *http.Request) {
	var input ClassInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateClass(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteClass(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteClass(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) enroll(writer http.ResponseWriter, request *http.Request) {
	var input Enrollment
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	class, err := handler.service.Enroll(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, class)
}

// # Schedules

func (handler *Handler) classSchedule(writer http.ResponseWriter, request *http.Request) {
	slots, err := handler.service.ClassSchedule(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, GroupByDay(slots))
}

func (handler *Handler) addSlot(writer http.ResponseWriter, request *http.Request) {
	var input SlotInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	slot, err := handler.service.AddSlot(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, slot)
}

// # Role Views

func (handler *Handler) teacherClasses(writer http.ResponseWriter, request *http.Request) {
	classes, err := handler.service.TeacherClasses(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, classes)
}

func (handler *Handler) teacherClass(writer http.ResponseWriter, request *http.Request) {
	class, err := handler.service.TeacherClass(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, class)
}

func (handler *Handler) teacherWeek(writer http.ResponseWriter, request *http.Request) {
	slots, err := handler.service.TeacherWeek(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, GroupByDay(slots))
}

func (handler *Handler) studentCourses(writer http.ResponseWriter, request *http.Request) {
	courses, err := handler.service.StudentCourses(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, courses)
}

func (handler *Handler) studentWeek(writer http.ResponseWriter, request *http.Request) {
	slots, err := handler.service.StudentWeek(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, GroupByDay(slots))
}
