// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assignment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/campus/internal/apiclient"
	"github.com/taibuivan/campus/internal/platform/requestutil"
	"github.com/taibuivan/campus/internal/platform/respond"
)

// uploadOverhead leaves room for multipart framing around the file.
const uploadOverhead = 1 << 20

// Handler serves coursework pages.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterTeacherRoutes mounts the teacher's coursework routes.
//
// # Endpoints
//   - GET|POST   /assignments
//   - PUT|DELETE /assignments/{id}
//   - GET        /assignments/{id}/submissions
//   - PUT        /submissions/{id}/grade
func (handler *Handler) RegisterTeacherRoutes(router chi.Router) {
	router.Get("/assignments", handler.teacherAssignments)
	router.Post("/assignments", handler.createAssignment)
	router.Put("/assignments/{id}", handler.updateAssignment)
	router.Delete("/assignments/{id}", handler.deleteAssignment)
	router.Get("/assignments/{id}/submissions", handler.submissions)
	router.Put("/submissions/{id}/grade", handler.grade)
}

// RegisterStudentRoutes mounts the student's coursework routes.
//
// # Endpoints
//   - GET  /assignments
//   - POST /assignments/{id}/submit (multipart: file, comment)
//   - GET  /grades
func (handler *Handler) RegisterStudentRoutes(router chi.Router) {
	router.Get("/assignments", handler.studentAssignments)
	router.Post("/assignments/{id}/submit", handler.submit)
	router.Get("/grades", handler.grades)
}

// # Teacher

func (handler *Handler) teacherAssignments(writer http.ResponseWriter, request *http.Request) {
	assignments, err := handler.service.TeacherAssignments(request.Context(), request.URL.Query().Get(FieldClassID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, assignments)
}

func (handler *Handler) createAssignment(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateAssignment(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteAssignment(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) submissions(writer http.ResponseWriter, request *http.Request) {
	submissions, err := handler.service.Submissions(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, submissions)
}

// gradeRequest lets the console caller pass the maximum score along.
type gradeRequest struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
	MaxScore float64 `json:"maxScore"`
}

/*
PUT /teacher/submissions/{id}/grade.

Request:
  - body: gradeRequest (Score, Feedback, MaxScore)

Response:
  - 200: Submission
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) grade(writer http.ResponseWriter, request *http.Request) {
	var input gradeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	graded, err := handler.service.Grade(request.Context(), requestutil.Param(request, "id"), GradeInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, graded)
}

// # Student

func (handler *Handler) studentAssignments(writer http.ResponseWriter, request *http.Request) {
	assignments, err := handler.service.StudentAssignments(request.Context(), requestutil.ListQuery(request, FieldClassID, "status"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, assignments)
}

/*
POST /student/assignments/{id}/submit.

Request:
  - multipart/form-data: file (required), comment (optional)

Response:
  - 201: Submission
  - 400: VALIDATION_ERROR (missing or oversized file)
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	file, header, err := requestutil.FormFile(request, FieldFile, MaxSubmissionBytes+uploadOverhead)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer file.Close()

	submission, err := handler.service.Submit(request.Context(), requestutil.Param(request, "id"), apiclient.Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}, request.FormValue(FieldComment))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, submission)
}

func (handler *Handler) grades(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.service.Grades(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}
