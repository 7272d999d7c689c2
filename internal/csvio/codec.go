// Package csvio implements the CSV side of bulk editing: a BOM-aware
// codec plus per-entity row mappings for members, songs and schedules.
// It distinguishes row-local problems (RowIssue, logged and recovered)
// from operation-level failures, which callers surface as one error for
// the whole import.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// utf8BOM is stripped from uploads and prepended to exports so that
// spreadsheet tools open the files with the right encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseRows decodes CSV bytes into one string map per data row, keyed
// by the header row.  A leading byte order mark is dropped.  Rows with
// a field count different from the header are padded or truncated by
// the csv reader's lenient mode rather than failing the whole file.
func ParseRows(data []byte) ([]map[string]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // tolerate ragged rows; missing cells read as ""

	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil
	}

	header := all[0]
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]map[string]string, 0, len(all)-1)
	for _, rec := range all[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(rec) {
				row[name] = rec[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// RenderRows encodes a header plus data rows into CSV bytes with a
// leading byte order mark.
func RenderRows(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseBool parses the CSV boolean convention: the literal "true" is
// true, anything else is false.
func ParseBool(s string) bool { return s == "true" }

// FormatBool renders a boolean in the CSV convention.
func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// RowIssue describes a malformed field or row in an import.  It is
// row-local: the importer logs it and continues with the rest of the
// file instead of aborting.
type RowIssue struct {
	Line  int    // 1-based data row number (header excluded)
	Field string // offending column, "" when the whole row is unusable
	Err   error
}

func (e *RowIssue) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("row %d: field %q: %v", e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowIssue) Unwrap() error { return e.Err }
