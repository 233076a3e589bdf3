// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package assignment covers coursework: teachers publish assignments and grade
submissions, students hand work in and read their grades.
*/
package assignment

import "time"

// # Domain Entities

// Assignment is a piece of coursework attached to a class.
type Assignment struct {
	ID          string     `json:"id"`
	ClassID     string     `json:"classId"`
	ClassName   string     `json:"className,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	MaxScore    float64    `json:"maxScore"`
	Submitted   bool       `json:"submitted,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// Overdue reports whether the due date has passed at now.
func (a Assignment) Overdue(now time.Time) bool {
	return a.DueDate != nil && now.After(*a.DueDate)
}

// Input is the create/update payload of an [Assignment].
type Input struct {
	ClassID     string    `json:"classId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	MaxScore    float64   `json:"maxScore"`
}

// Submission is a student's hand-in for an assignment.
type Submission struct {
	ID           string     `json:"id"`
	AssignmentID string     `json:"assignmentId"`
	StudentID    string     `json:"studentId"`
	StudentName  string     `json:"studentName,omitempty"`
	FileURL      string     `json:"fileUrl,omitempty"`
	Comment      string     `json:"comment,omitempty"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`
	Score        *float64   `json:"score,omitempty"`
	Feedback     string     `json:"feedback,omitempty"`
}

// Graded reports whether a score was recorded.
func (s Submission) Graded() bool {
	return s.Score != nil
}

// GradeInput records a score on a submission. MaxScore bounds Score locally
// and is not sent.
type GradeInput struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback,omitempty"`
	MaxScore float64 `json:"-"`
}

// Grade is a graded piece of work as seen by the student.
type Grade struct {
	AssignmentID    string     `json:"assignmentId"`
	AssignmentTitle string     `json:"assignmentTitle"`
	ClassName       string     `json:"className,omitempty"`
	Score           float64    `json:"score"`
	MaxScore        float64    `json:"maxScore"`
	Feedback        string     `json:"feedback,omitempty"`
	GradedAt        *time.Time `json:"gradedAt,omitempty"`
}

// Report is a student's grade list with its weighted average.
type Report struct {
	Grades  []Grade `json:"grades"`
	Average float64 `json:"average"`
}

// Average returns the score-weighted percentage over grades with a positive
// maximum, or 0 when there are none.
func Average(grades []Grade) float64 {
	var scored, possible float64
	for _, grade := range grades {
		if grade.MaxScore <= 0 {
			continue
		}
		scored += grade.Score
		possible += grade.MaxScore
	}
	if possible == 0 {
		return 0
	}
	return scored / possible * 100
}

// # Field Identifiers

const (
	FieldClassID  = "classId"
	FieldTitle    = "title"
	FieldDueDate  = "dueDate"
	FieldMaxScore = "maxScore"
	FieldScore    = "score"
	FieldFile     = "file"
	FieldComment  = "comment"
)

// MaxSubmissionBytes caps a single hand-in file.
const MaxSubmissionBytes = 20 << 20
