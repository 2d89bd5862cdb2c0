package table

// ============================================================================
// TABLE — Named, ordered row set sharing a schema
// ============================================================================
// A Table is built once (loader or literal) and then transformed
// immutably: Filter, Select, Rename, Join, WideToLong and Derive all
// return new Tables. Inputs stay valid for reuse and debugging.
// ============================================================================

// Row maps field names to cell values. Missing fields read as null.
type Row map[string]Value

// Get returns the value for a field, null when absent.
func (r Row) Get(field string) Value {
	return r[field]
}

// clone copies a row so transforms never alias input cells.
func (r Row) clone() Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Table is a named, ordered sequence of rows sharing a column list.
type Table struct {
	name string
	cols []string
	rows []Row
}

// New creates an empty table with the given name and column order.
func New(name string, cols ...string) *Table {
	return &Table{name: name, cols: append([]string(nil), cols...)}
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Columns returns a copy of the column list in schema order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// HasColumn reports whether the schema contains a field.
func (t *Table) HasColumn(field string) bool {
	for _, c := range t.cols {
		if c == field {
			return true
		}
	}
	return false
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Value returns the cell at row i for a field, null when out of range.
func (t *Table) Value(i int, field string) Value {
	if i < 0 || i >= len(t.rows) {
		return Null()
	}
	return t.rows[i].Get(field)
}

// Row returns the row at index i. Callers must treat it as read-only.
func (t *Table) Row(i int) Row {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return t.rows[i]
}

// AppendRow adds a row during construction. Fields outside the schema
// are ignored by readers; missing fields read as null.
func (t *Table) AppendRow(r Row) {
	t.rows = append(t.rows, r)
}

// WithName returns the same row set under a new table name.
func (t *Table) WithName(name string) *Table {
	return &Table{name: name, cols: t.Columns(), rows: t.rows}
}

// ============================================================================
// IMMUTABLE TRANSFORMS
// ============================================================================

// Filter returns a new table with the rows for which keep returns true.
// Row order is preserved.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New(t.name, t.cols...)
	for _, r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// Select returns a new table containing only the given columns, in the
// given order. Unknown columns read as null.
func (t *Table) Select(cols ...string) *Table {
	out := New(t.name, cols...)
	for _, r := range t.rows {
		nr := make(Row, len(cols))
		for _, c := range cols {
			nr[c] = r.Get(c)
		}
		out.rows = append(out.rows, nr)
	}
	return out
}

// Rename returns a new table with columns renamed per the mapping.
// Columns absent from the mapping keep their names.
func (t *Table) Rename(mapping map[string]string) *Table {
	cols := make([]string, len(t.cols))
	for i, c := range t.cols {
		if n, ok := mapping[c]; ok {
			cols[i] = n
		} else {
			cols[i] = c
		}
	}

	out := New(t.name, cols...)
	for _, r := range t.rows {
		nr := make(Row, len(r))
		for k, v := range r {
			if n, ok := mapping[k]; ok {
				nr[n] = v
			} else {
				nr[k] = v
			}
		}
		out.rows = append(out.rows, nr)
	}
	return out
}

// FillNull returns a new table where null cells in a field are
// replaced by v. This is the explicit counterpart of a join's
// null-fill — zero-coalescing is always a visible, separate step.
func (t *Table) FillNull(field string, v Value) *Table {
	out := New(t.name, t.cols...)
	for _, r := range t.rows {
		if r.Get(field).IsNull() {
			nr := r.clone()
			nr[field] = v
			out.rows = append(out.rows, nr)
		} else {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// FillNullFrom returns a new table where null cells in a field are
// replaced by the same row's value from another field.
func (t *Table) FillNullFrom(field, from string) *Table {
	out := New(t.name, t.cols...)
	for _, r := range t.rows {
		if r.Get(field).IsNull() {
			nr := r.clone()
			nr[field] = r.Get(from)
			out.rows = append(out.rows, nr)
		} else {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// PairedNumbers extracts two columns as aligned float64 slices,
// keeping only rows where both cells are numeric. Used to hand
// columns to the stats package.
func (t *Table) PairedNumbers(xField, yField string) ([]float64, []float64) {
	xs := make([]float64, 0, len(t.rows))
	ys := make([]float64, 0, len(t.rows))
	for _, r := range t.rows {
		x, okX := r.Get(xField).Float()
		y, okY := r.Get(yField).Float()
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys
}
