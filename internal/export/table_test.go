// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package export_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/campus/internal/export"
)

func TestTableFrom(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		columns []string
		rows    [][]string
	}{
		{
			name:    "key order and late columns",
			body:    `[{"studentId":"s1","status":"present"},{"studentId":"s2","status":"late","note":"bus"}]`,
			columns: []string{"studentId", "status", "note"},
			rows:    [][]string{{"s1", "present", ""}, {"s2", "late", "bus"}},
		},
		{
			name:    "envelope with scalars and nesting",
			body:    `{"data":[{"id":7,"score":8.5,"graded":true,"tags":["a","b"],"meta":{"k": 1},"feedback":null}],"pagination":{"page":1}}`,
			columns: []string{"id", "score", "graded", "tags", "meta", "feedback"},
			rows:    [][]string{{"7", "8.5", "true", `["a","b"]`, `{"k":1}`, ""}},
		},
		{
			name:    "scalars",
			body:    `["x","y"]`,
			columns: []string{"value"},
			rows:    [][]string{{"x"}, {"y"}},
		},
		{
			name:    "empty",
			body:    `[]`,
			columns: []string{},
			rows:    [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := export.TableFrom([]byte(tt.body))
			require.NoError(t, err)

			assert.Equal(t, tt.columns, table.Columns)
			assert.Equal(t, tt.rows, table.Rows)
		})
	}
}

func TestTableFrom_NotAList(t *testing.T) {
	_, err := export.TableFrom([]byte(`{"id":1,"name":"single"}`))
	assert.Error(t, err)
}

func TestTable_Encode(t *testing.T) {
	table := &export.Table{
		Columns: []string{"name", "comment"},
		Rows:    [][]string{{"An", `said "hi", left`}},
	}

	var csvOut bytes.Buffer
	require.NoError(t, table.Encode(&csvOut, export.FormatCSV))
	assert.Equal(t, "name,comment\nAn,\"said \"\"hi\"\", left\"\n", csvOut.String())

	var jsonOut bytes.Buffer
	require.NoError(t, table.Encode(&jsonOut, export.FormatJSON))
	assert.JSONEq(t, `[{"name":"An","comment":"said \"hi\", left"}]`, jsonOut.String())
	assert.Less(t, bytes.Index(jsonOut.Bytes(), []byte(`"name"`)), bytes.Index(jsonOut.Bytes(), []byte(`"comment"`)))

	assert.ErrorIs(t, table.Encode(&jsonOut, export.Format("xlsx")), export.ErrUnsupportedFormat)
}

func TestTable_EncodeJSONKeepsTypes(t *testing.T) {
	body := `[{"id":1,"score":17.5,"passed":true,"tags":["a"],"meta":{"k":{"n":2}},"note":null},{"id":2,"late":false}]`

	table, err := export.TableFrom([]byte(body))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, table.Encode(&out, export.FormatJSON))

	assert.JSONEq(t, `[
		{"id":1,"score":17.5,"passed":true,"tags":["a"],"meta":{"k":{"n":2}},"note":null,"late":null},
		{"id":2,"score":null,"passed":null,"tags":null,"meta":null,"note":null,"late":false}
	]`, out.String())

	// The CSV text of the same cells is unchanged.
	assert.Equal(t, []string{"1", "17.5", "true", `["a"]`, `{"k":{"n":2}}`, "", ""}, table.Rows[0])
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    export.Format
		wantErr bool
	}{
		{"", export.FormatCSV, false},
		{"CSV", export.FormatCSV, false},
		{" json ", export.FormatJSON, false},
		{"PDF", export.FormatPDF, false},
		{"xlsx", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := export.ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTable_EncodePDF(t *testing.T) {
	table := &export.Table{Columns: []string{"student", "status", "note"}}
	for i := range 45 {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("Nguyễn Văn %02d", i),
			"present",
			strings.Repeat("a very long remark that cannot fit its column ", 4),
		})
	}

	var out bytes.Buffer
	require.NoError(t, table.Encode(&out, export.FormatPDF))

	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
	assert.Contains(t, out.String(), "/Subject (45 rows)")
	// 30 rows fit under the header of an A4 landscape page.
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("/Type /Page\n")))
}

func TestTable_EncodePDFEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&export.Table{}).Encode(&out, export.FormatPDF))

	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
	assert.Contains(t, out.String(), "/Subject (0 rows)")
}
