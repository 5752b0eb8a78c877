package spreadsheet

import (
	"strings"
)

// Table is a sheet read as strings: the first non-empty row is the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable splits raw rows into header and body, dropping leading blank rows
// and rows that are blank all the way across.
func NewTable(raw [][]string) Table {
	var t Table
	for _, row := range raw {
		if isBlank(row) {
			continue
		}
		if t.Header == nil {
			t.Header = make([]string, len(row))
			for i, h := range row {
				t.Header[i] = normalizeHeader(h)
			}
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Records maps every body row by header name. Missing trailing cells read as "".
func (t Table) Records() []map[string]string {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]string, len(t.Header))
		for i, h := range t.Header {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

func normalizeHeader(h string) string {
	return strings.ToUpper(strings.TrimSpace(h))
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
