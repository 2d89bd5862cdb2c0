// Package report turns result tables into render-ready structures:
// sorted, limited, formatted rows for CLI or frontend display.
// Chart rendering is out of scope — this stops at data shaping.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/econdex-org/econdex/table"
)

// ============================================================================
// RENDER TYPES
// ============================================================================

// TableData is a render-ready table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a rendered table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}

// Summary carries table-level totals.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// BUILDER OPTIONS
// ============================================================================

// Option configures BuildTable.
type Option func(*buildConfig)

type buildConfig struct {
	Title      string
	SortBy     string
	Descending bool
	Limit      int
	SumColumns []string
}

// WithTitle sets the rendered title.
func WithTitle(title string) Option {
	return func(c *buildConfig) { c.Title = title }
}

// SortByDesc sorts rows by a numeric column, highest first.
func SortByDesc(column string) Option {
	return func(c *buildConfig) {
		c.SortBy = column
		c.Descending = true
	}
}

// SortByAsc sorts rows by a numeric column, lowest first.
func SortByAsc(column string) Option {
	return func(c *buildConfig) {
		c.SortBy = column
		c.Descending = false
	}
}

// Limit keeps only the first n rows after sorting. 0 = all.
func Limit(n int) Option {
	return func(c *buildConfig) { c.Limit = n }
}

// WithTotals adds a summary line with the sum of the given columns.
func WithTotals(columns ...string) Option {
	return func(c *buildConfig) { c.SumColumns = columns }
}

// ============================================================================
// TABLE BUILDING
// ============================================================================

// BuildTable produces render-ready TableData from a result table.
func BuildTable(t *table.Table, opts ...Option) *TableData {
	cfg := &buildConfig{Title: t.Name()}
	for _, opt := range opts {
		opt(cfg)
	}

	cols := t.Columns()
	columns := make([]Column, len(cols))
	numeric := make(map[string]bool, len(cols))
	for i, c := range cols {
		numeric[c] = columnIsNumeric(t, c)
		columns[i] = Column{
			Key:   c,
			Label: labelFor(c),
			Type:  "text",
			Align: "left",
		}
		if numeric[c] {
			columns[i].Type = "number"
			columns[i].Align = "right"
		}
	}

	// Row order: stable sort on the requested column, nulls last.
	order := make([]int, t.Len())
	for i := range order {
		order[i] = i
	}
	if cfg.SortBy != "" {
		sort.SliceStable(order, func(a, b int) bool {
			va, okA := t.Value(order[a], cfg.SortBy).Float()
			vb, okB := t.Value(order[b], cfg.SortBy).Float()
			if okA != okB {
				return okA
			}
			if cfg.Descending {
				return va > vb
			}
			return va < vb
		})
	}
	if cfg.Limit > 0 && len(order) > cfg.Limit {
		order = order[:cfg.Limit]
	}

	rows := make([][]string, 0, len(order))
	for _, i := range order {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = FormatValue(t.Value(i, c))
		}
		rows = append(rows, row)
	}

	td := &TableData{Title: cfg.Title, Columns: columns, Rows: rows}

	if len(cfg.SumColumns) > 0 {
		values := make(map[string]string, len(cfg.SumColumns))
		for _, c := range cfg.SumColumns {
			var sum float64
			for i := 0; i < t.Len(); i++ {
				if f, ok := t.Value(i, c).Float(); ok {
					sum += f
				}
			}
			values[c] = FormatNumber(sum)
		}
		td.Summary = &Summary{
			Label:  fmt.Sprintf("Total (%d rows)", t.Len()),
			Values: values,
		}
	}

	return td
}

// RenderText renders TableData as aligned plain text for the CLI.
func RenderText(td *TableData) string {
	var b strings.Builder
	if td.Title != "" {
		b.WriteString(td.Title + "\n")
	}

	widths := make([]int, len(td.Columns))
	for i, c := range td.Columns {
		widths[i] = len(c.Label)
	}
	for _, row := range td.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i < len(td.Columns) && td.Columns[i].Align == "right" {
				b.WriteString(fmt.Sprintf("%*s", widths[i], cell))
			} else {
				b.WriteString(fmt.Sprintf("%-*s", widths[i], cell))
			}
		}
		b.WriteString("\n")
	}

	labels := make([]string, len(td.Columns))
	for i, c := range td.Columns {
		labels[i] = c.Label
	}
	writeRow(labels)

	for _, row := range td.Rows {
		writeRow(row)
	}

	if td.Summary != nil {
		b.WriteString(td.Summary.Label)
		for k, v := range td.Summary.Values {
			b.WriteString(fmt.Sprintf("  %s=%s", k, v))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// ============================================================================
// FORMATTING
// ============================================================================

// FormatValue renders a cell for display. Nulls render as "—".
func FormatValue(v table.Value) string {
	switch v.Kind() {
	case table.KindNumber:
		return FormatNumber(v.Num())
	case table.KindString:
		return v.Str()
	}
	return "—"
}

// FormatNumber renders a float with thousands separators and up to
// four decimals (per-capita rates are small fractions). Values beyond
// the int64 range take the decimal path: the conversion would be
// implementation-defined there.
func FormatNumber(f float64) string {
	if math.Abs(f) < 1<<62 && f == float64(int64(f)) {
		return addThousands(fmt.Sprintf("%d", int64(f)))
	}
	return fmt.Sprintf("%.4f", f)
}

func addThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// columnIsNumeric checks the first non-null cell of a column.
func columnIsNumeric(t *table.Table, col string) bool {
	for i := 0; i < t.Len(); i++ {
		v := t.Value(i, col)
		if v.IsNull() {
			continue
		}
		return v.Kind() == table.KindNumber
	}
	return false
}

// labelFor cleans a snake_case key for display.
func labelFor(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
