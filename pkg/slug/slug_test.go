// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/campus/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Grades", "grades"},
		{"Lớp Toán cao cấp - Điểm danh", "lop-toan-cao-cap-diem-danh"},
		{"  /teacher/classes/42/attendance ", "teacher-classes-42-attendance"},
		{"Café & Crème", "cafe-creme"},
		{"***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.in))
		})
	}
}

func TestFromMax(t *testing.T) {
	assert.Equal(t, "student", slug.FromMax("student grades", 8, "export"))
	assert.Equal(t, "export", slug.FromMax("!!!", 8, "export"))
	assert.Equal(t, "grades", slug.FromMax("grades", 80, "export"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "Nguyen Van Duc", slug.Fold("Nguyễn Văn Đức"))
	assert.Equal(t, "Cafe, Creme (A+)", slug.Fold("Café, Crème (A+)"))
}
