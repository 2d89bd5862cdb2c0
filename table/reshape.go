package table

import "strconv"

// ============================================================================
// PANEL RESHAPER — Wide → long melt for per-year panel tables
// ============================================================================
// World Bank style exports carry one column per year. WideToLong turns
// each (row, year column) pair into its own output row. A column whose
// name parses as an integer is a year column; anything else outside
// the id fields is dropped from the melt. Rows whose melted value is
// null or non-numeric are filtered here, explicitly, not downstream.
// ============================================================================

// WideToLong converts a wide panel table into long (id..., year,
// value) rows. Output row count = input rows × valid year columns,
// minus rows dropped for null/non-numeric values.
func WideToLong(t *Table, idFields []string, yearField, valueField string) *Table {
	idSet := make(map[string]bool, len(idFields))
	for _, f := range idFields {
		idSet[f] = true
	}

	type yearCol struct {
		name string
		year float64
	}
	var yearCols []yearCol
	for _, c := range t.Columns() {
		if idSet[c] {
			continue
		}
		y, err := strconv.Atoi(c)
		if err != nil {
			continue // not a year column, dropped from the melt
		}
		yearCols = append(yearCols, yearCol{name: c, year: float64(y)})
	}

	cols := append(append([]string(nil), idFields...), yearField, valueField)
	out := New(t.Name(), cols...)

	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		for _, yc := range yearCols {
			v, ok := r.Get(yc.name).AsNumber()
			if !ok {
				continue
			}
			nr := make(Row, len(idFields)+2)
			for _, f := range idFields {
				nr[f] = r.Get(f)
			}
			nr[yearField] = Number(yc.year)
			nr[valueField] = Number(v)
			out.AppendRow(nr)
		}
	}

	return out
}
