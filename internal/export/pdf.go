// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/taibuivan/campus/pkg/slug"
)

// # PDF Layout
// A4 landscape, in millimetres.
const (
	pdfMargin       = 10.0
	pdfHeaderHeight = 7.0
	pdfRowHeight    = 6.0
	pdfFontSize     = 8.0
	pdfCellPadding  = 2.0
)

/*
encodePDF renders the table as a grid, repeating the header row on every
page. Cells too wide for their column are cut with an ellipsis.

The core Helvetica font only covers Latin-1, so text is folded first
(diacritics dropped) and anything still outside the range becomes '?'.
The document subject records the row count.
*/
func (t *Table) encodePDF(w io.Writer) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetCreator("campus", false)
	pdf.SetSubject(fmt.Sprintf("%d rows", len(t.Rows)), false)

	translate := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return translate(latin1(s)) }

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMargin + 2)
		pdf.SetFont("Helvetica", "", pdfFontSize-1)
		pdf.CellFormat(0, 4, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pageWidth, pageHeight := pdf.GetPageSize()
	bottom := pageHeight - pdfMargin

	pdf.AddPage()
	if len(t.Columns) == 0 {
		pdf.SetFont("Helvetica", "", pdfFontSize)
		pdf.CellFormat(0, pdfRowHeight, "No rows", "", 1, "L", false, 0, "")
		return pdf.Output(w)
	}

	columnWidth := (pageWidth - 2*pdfMargin) / float64(len(t.Columns))

	header := func() {
		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.SetFillColor(230, 230, 230)
		for _, column := range t.Columns {
			pdf.CellFormat(columnWidth, pdfHeaderHeight, fit(pdf, text(column), columnWidth), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(pdfHeaderHeight)
		pdf.SetFont("Helvetica", "", pdfFontSize)
	}

	header()
	for _, row := range t.Rows {
		if pdf.GetY()+pdfRowHeight > bottom {
			pdf.AddPage()
			header()
		}
		for _, value := range row {
			pdf.CellFormat(columnWidth, pdfRowHeight, fit(pdf, text(value), columnWidth), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(pdfRowHeight)
	}

	return pdf.Output(w)
}

// fit cuts s so it fits in a cell of width, ending it with "..." when cut.
// s is already single-byte encoded, so cutting bytes cuts characters.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	room := width - pdfCellPadding
	if pdf.GetStringWidth(s) <= room {
		return s
	}
	cut := s
	for len(cut) > 0 && pdf.GetStringWidth(cut+"...") > room {
		cut = cut[:len(cut)-1]
	}
	return cut + "..."
}

// latin1 folds s into the Latin-1 range. Line breaks become spaces.
func latin1(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case r > 0xFF:
			return '?'
		}
		return r
	}, slug.Fold(s))
}
