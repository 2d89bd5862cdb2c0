package source

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/econdex-org/econdex/table"
)

// ============================================================================
// CSV PARSING — Delimited text → table.Table
// ============================================================================
// Header names are snake_cased so downstream code addresses columns
// uniformly ("Country Code" → "country_code"; year columns like
// "2021" pass through unchanged). Cells are typed per value: numeric
// strings become numbers, recognized NA markers become nulls,
// everything else stays a string.
// ============================================================================

// Parse converts delimited-text bytes into a table, skipping skipRows
// physical lines before the header (World Bank exports carry a 4-line
// preamble that includes a blank line, so the skip counts lines, not
// CSV records).
func Parse(name string, data []byte, skipRows int) (*table.Table, error) {
	text := string(data)
	for i := 0; i < skipRows; i++ {
		nl := strings.IndexByte(text, '\n')
		if nl < 0 {
			return nil, &ParseError{Source: name, Reason: "header not found after skip rows"}
		}
		text = text[nl+1:]
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1 // sources are ragged; pad/truncate per row

	headers, err := reader.Read()
	if err != nil {
		return nil, &ParseError{Source: name, Reason: "failed to read header row", Err: err}
	}

	// names keeps one entry per header position so data cells stay
	// aligned; an unnamed position is read past, never compacted away.
	names := make([]string, len(headers))
	cols := make([]string, 0, len(headers))
	for i, h := range headers {
		h = toSnakeCase(strings.TrimSpace(h))
		names[i] = h
		if h == "" {
			continue
		}
		cols = append(cols, h)
	}
	if len(cols) == 0 {
		return nil, &ParseError{Source: name, Reason: "no columns in header row"}
	}

	t := table.New(name, cols...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Source: name, Reason: "malformed record", Err: err}
		}

		row := make(table.Row, len(cols))
		for i, c := range names {
			if c == "" {
				continue
			}
			if i >= len(record) {
				row[c] = table.Null()
				continue
			}
			row[c] = parseCell(record[i])
		}
		t.AppendRow(row)
	}

	return t, nil
}

// parseCell types one cell: null marker, number, or string.
func parseCell(raw string) table.Value {
	s := strings.TrimSpace(raw)
	switch s {
	case "", "null", "NULL", "NA", "N/A", "n/a":
		return table.Null()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return table.Number(f)
	}
	return table.String(s)
}

// toSnakeCase converts "Column Name" or "columnName" → "column_name".
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' && i > 0 {
			prev := rune(s[i-1])
			if (prev >= 'a' && prev <= 'z') || (prev >= '0' && prev <= '9') {
				b.WriteRune('_')
			}
		}
		b.WriteRune(r)
	}

	s = strings.ToLower(b.String())
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "__", "_")
	return strings.Trim(s, "_")
}
