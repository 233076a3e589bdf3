// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package course covers the teaching catalogue: courses, the classes that run
them, and the weekly schedule of each class.

The same data is seen from three angles:

  - University administrators create and edit courses, classes and schedules.
  - Teachers list the classes they run and their week.
  - Students list the courses they follow and their week.
*/
package course

import (
	"cmp"
	"slices"
	"time"
)

// # Domain Entities

// Course is a subject in a university's catalogue.
type Course struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Credits     int    `json:"credits"`
	Department  string `json:"department,omitempty"`
}

// CourseInput is the create/update payload of a [Course].
type CourseInput struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Credits     int    `json:"credits"`
	Department  string `json:"department,omitempty"`
}

// Class is one run of a course, taught by one teacher to a group of students.
type Class struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CourseID     string   `json:"courseId"`
	CourseName   string   `json:"courseName,omitempty"`
	TeacherID    string   `json:"teacherId,omitempty"`
	TeacherName  string   `json:"teacherName,omitempty"`
	Semester     string   `json:"semester,omitempty"`
	Year         int      `json:"year,omitempty"`
	Capacity     int      `json:"capacity,omitempty"`
	StudentCount int      `json:"studentCount"`
	StudentIDs   []string `json:"studentIds,omitempty"`
}

// ClassInput is the create/update payload of a [Class].
type ClassInput struct {
	Name      string `json:"name"`
	CourseID  string `json:"courseId"`
	TeacherID string `json:"teacherId"`
	Semester  string `json:"semester,omitempty"`
	Year      int    `json:"year,omitempty"`
	Capacity  int    `json:"capacity,omitempty"`
}

// Enrollment adds students to a class.
type Enrollment struct {
	StudentIDs []string `json:"studentIds"`
}

// Slot is one weekly meeting of a class.
// Day follows ISO numbering: 1 is Monday, 7 is Sunday.
type Slot struct {
	ID        string `json:"id,omitempty"`
	ClassID   string `json:"classId"`
	ClassName string `json:"className,omitempty"`
	Day       int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Room      string `json:"room,omitempty"`
}

// SlotInput is the payload that creates a [Slot].
type SlotInput struct {
	Day       int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Room      string `json:"room,omitempty"`
}

// Weekday converts the ISO day number to a [time.Weekday].
func (s Slot) Weekday() time.Weekday {
	return time.Weekday(s.Day % 7)
}

// # Field Identifiers

const (
	FieldCode       = "code"
	FieldName       = "name"
	FieldCredits    = "credits"
	FieldCourseID   = "courseId"
	FieldTeacherID  = "teacherId"
	FieldCapacity   = "capacity"
	FieldStudentIDs = "studentIds"
	FieldDay        = "dayOfWeek"
	FieldStartTime  = "startTime"
	FieldEndTime    = "endTime"
)

// MaxCredits bounds the credits a single course may carry.
const MaxCredits = 20

// # Weekly View

// Week orders slots by day, then start time, then room.
func Week(slots []Slot) []Slot {
	ordered := slices.Clone(slots)
	slices.SortStableFunc(ordered, func(a, b Slot) int {
		return cmp.Or(
			cmp.Compare(a.Day, b.Day),
			cmp.Compare(a.StartTime, b.StartTime),
			cmp.Compare(a.Room, b.Room),
		)
	})
	return ordered
}

// Day is the slots of a single weekday, in order.
type Day struct {
	Day   int    `json:"dayOfWeek"`
	Name  string `json:"name"`
	Slots []Slot `json:"slots"`
}

// GroupByDay returns the ordered week with one entry per day that has slots.
func GroupByDay(slots []Slot) []Day {
	var days []Day
	for _, slot := range Week(slots) {
		if len(days) == 0 || days[len(days)-1].Day != slot.Day {
			days = append(days, Day{Day: slot.Day, Name: slot.Weekday().String()})
		}
		last := &days[len(days)-1]
		last.Slots = append(last.Slots, slot)
	}
	return days
}
