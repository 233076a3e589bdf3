// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package exercise sends study material to the backend's exercise generator.

A student uploads a PDF and receives practice questions built from it. The
generator runs on the backend; this package only checks the upload and reads
the answer.
*/
package exercise

import (
	"bytes"
	"encoding/json"
)

// # Domain Entities

// Exercise is one generated practice question.
type Exercise struct {
	Question    string   `json:"question"`
	Type        string   `json:"type,omitempty"`
	Options     []string `json:"options,omitempty"`
	Answer      string   `json:"answer,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// Set is the generator's answer.
type Set struct {
	Title     string     `json:"title,omitempty"`
	Exercises []Exercise `json:"exercises"`
}

// UnmarshalJSON accepts a bare array or an object listing "exercises" or
// "questions".
func (set *Set) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &set.Exercises)
	}

	var wrapper struct {
		Title     string     `json:"title"`
		Exercises []Exercise `json:"exercises"`
		Questions []Exercise `json:"questions"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}

	set.Title = wrapper.Title
	set.Exercises = wrapper.Exercises
	if set.Exercises == nil {
		set.Exercises = wrapper.Questions
	}
	return nil
}

// Options tunes the generation.
type Options struct {
	Count      int    `json:"count,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// # Field Identifiers

const (
	FieldFile       = "pdf"
	FieldCount      = "count"
	FieldDifficulty = "difficulty"
)

// # Limits

const (
	// MaxPDFBytes caps an uploaded document.
	MaxPDFBytes = 10 << 20

	MaxCount = 50
)

// Difficulties lists the accepted difficulty levels.
var Difficulties = []string{"easy", "medium", "hard"}

// pdfMagic opens every PDF file.
var pdfMagic = []byte("%PDF-")
