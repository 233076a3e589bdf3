// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns arbitrary Unicode titles into ASCII file-name stems.
//
// # Usage
//
// Export files are named after the page they came from, e.g.
// "Lớp Toán cao cấp - Điểm danh" becomes "lop-toan-cao-cap-diem-danh".
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)

	// letterFolds covers letters that carry no combining mark to strip.
	letterFolds = strings.NewReplacer("đ", "d", "Đ", "D", "ø", "o", "Ø", "O", "ß", "ss", "ł", "l", "Ł", "L")
)

// From converts s into a lowercase ASCII slug.
//
// # Transformation Pipeline
//
// 1. Folds letters without a decomposition (đ → d).
// 2. Normalizes to NFD and drops combining marks (é → e).
// 3. Lowercases and replaces everything else with hyphens.
// 4. Collapses and trims hyphens.
func From(s string) string {
	result := strings.ToLower(Fold(s))
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Fold strips diacritics and folds undecomposable letters, keeping case and
// punctuation: "Nguyễn Văn Đức" becomes "Nguyen Van Duc".
func Fold(s string) string {
	s = letterFolds.Replace(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// FromMax is [From] cut to at most max bytes, never ending on a hyphen.
// An empty result is replaced by fallback.
func FromMax(s string, max int, fallback string) string {
	result := From(s)
	if len(result) > max {
		result = strings.TrimRight(result[:max], "-")
	}
	if result == "" {
		return fallback
	}
	return result
}
