// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package attendance records who came to class.
package attendance

// # Domain Entities

// Status is the outcome of one student at one session.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusExcused Status = "excused"
)

// Statuses lists the accepted values.
func Statuses() []string {
	return []string{string(StatusPresent), string(StatusAbsent), string(StatusLate), string(StatusExcused)}
}

// Record is one student's attendance on one date.
type Record struct {
	ID          string `json:"id,omitempty"`
	ClassID     string `json:"classId"`
	ClassName   string `json:"className,omitempty"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName,omitempty"`
	Date        string `json:"date"`
	Status      Status `json:"status"`
	Note        string `json:"note,omitempty"`
}

// Mark is the per-student line of a [Sheet].
type Mark struct {
	StudentID string `json:"studentId"`
	Status    Status `json:"status"`
	Note      string `json:"note,omitempty"`
}

// Sheet takes attendance for a whole class on one date.
type Sheet struct {
	Date    string `json:"date"`
	Records []Mark `json:"records"`
}

// Summary counts records by status.
type Summary struct {
	Total   int     `json:"total"`
	Present int     `json:"present"`
	Absent  int     `json:"absent"`
	Late    int     `json:"late"`
	Excused int     `json:"excused"`
	Rate    float64 `json:"rate"`
}

// Summarize counts records. Rate is the share of present or late records
// over those not excused, as a percentage.
func Summarize(records []Record) Summary {
	var summary Summary
	for _, record := range records {
		summary.Total++
		switch record.Status {
		case StatusPresent:
			summary.Present++
		case StatusAbsent:
			summary.Absent++
		case StatusLate:
			summary.Late++
		case StatusExcused:
			summary.Excused++
		}
	}

	if counted := summary.Present + summary.Late + summary.Absent; counted > 0 {
		summary.Rate = float64(summary.Present+summary.Late) / float64(counted) * 100
	}
	return summary
}

// # Field Identifiers

const (
	FieldDate    = "date"
	FieldRecords = "records"
	FieldStatus  = "status"
	FieldClassID = "classId"
)
