// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package export saves backend listings as CSV, JSON or PDF files.

Any list page of the backend (a class's attendance, a student's grades, the
university roster) is flattened into a [Table] and written to a [Sink]: a
local directory or an S3-compatible bucket.

# Flattening

Columns follow the key order of the first object that introduces them.
Scalars are written as-is, null as an empty cell, and nested objects or
arrays as compact JSON.
*/
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// # Formats

// Format is an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// ErrUnsupportedFormat is returned by [ParseFormat] for anything but csv, json or pdf.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat reads a format name. The empty string means CSV.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(FormatCSV):
		return FormatCSV, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatPDF):
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Extension returns the file extension, dot included.
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type of the encoding.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// # Table

// Table is a flattened listing.
//
// Rows hold the text of each cell. Values, when set, runs parallel to Rows
// with the cell's original JSON so the JSON encoding keeps numbers, booleans,
// null and nested values typed. A nil entry is written as null.
type Table struct {
	Columns []string
	Rows    [][]string
	Values  [][]json.RawMessage
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Encode writes the table to w in format.
func (t *Table) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatCSV:
		return t.encodeCSV(w)
	case FormatJSON:
		return t.encodeJSON(w)
	case FormatPDF:
		return t.encodePDF(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (t *Table) encodeCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return err
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return err
	}
	return writer.Error()
}

// encodeJSON writes an array of objects keyed by column, in column order.
func (t *Table) encodeJSON(w io.Writer) error {
	var buffer bytes.Buffer
	buffer.WriteByte('[')
	for index, row := range t.Rows {
		if index > 0 {
			buffer.WriteByte(',')
		}
		buffer.WriteByte('{')
		for column, name := range t.Columns {
			if column > 0 {
				buffer.WriteByte(',')
			}
			key, _ := json.Marshal(name)
			buffer.Write(key)
			buffer.WriteByte(':')
			buffer.Write(t.jsonValue(index, column, row[column]))
		}
		buffer.WriteByte('}')
	}
	buffer.WriteString("]\n")

	_, err := w.Write(buffer.Bytes())
	return err
}

// jsonValue is the typed value of a cell, or its text when the table carries
// no typed values.
func (t *Table) jsonValue(row, column int, text string) []byte {
	if row < len(t.Values) && column < len(t.Values[row]) {
		if raw := t.Values[row][column]; len(raw) > 0 {
			return raw
		}
		return []byte("null")
	}
	value, _ := json.Marshal(text)
	return value
}

// # Flattening

// TableFrom flattens a JSON listing: a bare array of objects, or an envelope
// holding one under "data".
func TableFrom(data []byte) (*Table, error) {
	items, err := listItems(data)
	if err != nil {
		return nil, err
	}

	table := &Table{
		Columns: []string{},
		Rows:    make([][]string, 0, len(items)),
		Values:  make([][]json.RawMessage, 0, len(items)),
	}
	index := map[string]int{}
	records := make([]map[string]json.RawMessage, 0, len(items))

	for _, item := range items {
		keys, values, err := flattenObject(item)
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			if _, ok := index[key]; !ok {
				index[key] = len(table.Columns)
				table.Columns = append(table.Columns, key)
			}
		}
		records = append(records, values)
	}

	for _, record := range records {
		row := make([]string, len(table.Columns))
		values := make([]json.RawMessage, len(table.Columns))
		for key, value := range record {
			row[index[key]] = cell(value)
			values[index[key]] = value
		}
		table.Rows = append(table.Rows, row)
		table.Values = append(table.Values, values)
	}
	return table, nil
}

func listItems(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var items []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("export: decode list: %w", err)
		}
		return items, nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("export: decode envelope: %w", err)
	}
	if len(envelope.Data) == 0 || bytes.Equal(envelope.Data, []byte("null")) {
		return nil, errors.New("export: response is not a list")
	}
	return listItems(envelope.Data)
}

// flattenObject returns the keys of a JSON object in document order with
// their compacted values.
func flattenObject(raw json.RawMessage) ([]string, map[string]json.RawMessage, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("export: decode row: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		// A list of scalars becomes a single "value" column.
		return []string{"value"}, map[string]json.RawMessage{"value": compact(raw)}, nil
	}

	var keys []string
	values := map[string]json.RawMessage{}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("export: decode row: %w", err)
		}
		key, _ := token.(string)

		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("export: decode %s: %w", key, err)
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = compact(value)
	}
	return keys, values, nil
}

func compact(raw json.RawMessage) json.RawMessage {
	var buffer bytes.Buffer
	if err := json.Compact(&buffer, raw); err != nil {
		return bytes.TrimSpace(raw)
	}
	return buffer.Bytes()
}

func cell(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")):
		return ""
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}
