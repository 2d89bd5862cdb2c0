package table

import (
	"fmt"
	"strings"
)

// ============================================================================
// JOIN ENGINE — Inner/outer merge on composite keys
// ============================================================================
// Hash join with deterministic output order: left rows in input order,
// then (outer only) unmatched right rows in input order. The missing
// side's non-key fields are filled with explicit nulls — never omitted
// and never defaulted to zero. Zero-coalescing, where wanted, is
// FillNull's job after the join.
//
// Rows with a null in any key field never match: inner joins drop
// them, outer joins emit them unmatched.
// ============================================================================

// JoinMode selects the join semantics.
type JoinMode int

const (
	// JoinInner keeps only key combinations present in both inputs.
	JoinInner JoinMode = iota
	// JoinOuter keeps the union of keys; the absent side is null-filled.
	JoinOuter
)

// KeyPair names the join field on each side. Left and Right may
// differ when the inputs use different column names for the same key.
type KeyPair struct {
	Left  string
	Right string
}

// On builds a key list for joins where both sides share field names.
func On(fields ...string) []KeyPair {
	keys := make([]KeyPair, len(fields))
	for i, f := range fields {
		keys[i] = KeyPair{Left: f, Right: f}
	}
	return keys
}

// Join merges two tables on the given key pairs.
//
// Output columns: all left columns in order, then right non-key
// columns in order. A right column colliding with an earlier output
// column is suffixed "_right", repeated until unique. Key values are
// taken from whichever side has the row; the output uses the
// left-side key names.
func Join(left, right *Table, on []KeyPair, mode JoinMode) (*Table, error) {
	if len(on) == 0 {
		return nil, fmt.Errorf("join %s with %s: no key fields", left.Name(), right.Name())
	}
	for _, k := range on {
		if !left.HasColumn(k.Left) {
			return nil, fmt.Errorf("join: left table %s has no column %q", left.Name(), k.Left)
		}
		if !right.HasColumn(k.Right) {
			return nil, fmt.Errorf("join: right table %s has no column %q", right.Name(), k.Right)
		}
	}

	rightKeySet := make(map[string]bool, len(on))
	for _, k := range on {
		rightKeySet[k.Right] = true
	}

	// Resolve output names for right non-key columns. The suffix
	// repeats until the name is free of every column assigned so far.
	leftCols := left.Columns()
	taken := make(map[string]bool, len(leftCols))
	for _, c := range leftCols {
		taken[c] = true
	}

	rightOut := make(map[string]string) // right column → output column
	outCols := leftCols
	for _, c := range right.Columns() {
		if rightKeySet[c] {
			continue
		}
		name := c
		for taken[name] {
			name += "_right"
		}
		taken[name] = true
		rightOut[c] = name
		outCols = append(outCols, name)
	}

	// Index right rows by composite key.
	type bucket struct {
		indices []int
	}
	rightIdx := make(map[string]*bucket)
	for i := 0; i < right.Len(); i++ {
		key, ok := joinKey(right.Row(i), on, false)
		if !ok {
			continue // null key — handled as unmatched below
		}
		b := rightIdx[key]
		if b == nil {
			b = &bucket{}
			rightIdx[key] = b
		}
		b.indices = append(b.indices, i)
	}

	out := New(joinedName(left, right), outCols...)
	matchedRight := make(map[int]bool)

	// Left side drives output order.
	for i := 0; i < left.Len(); i++ {
		lr := left.Row(i)
		key, ok := joinKey(lr, on, true)

		var matches []int
		if ok {
			if b := rightIdx[key]; b != nil {
				matches = b.indices
			}
		}

		if len(matches) == 0 {
			if mode == JoinOuter {
				out.AppendRow(mergeRows(lr, nil, on, rightOut))
			}
			continue
		}
		for _, ri := range matches {
			matchedRight[ri] = true
			out.AppendRow(mergeRows(lr, right.Row(ri), on, rightOut))
		}
	}

	// Outer: append unmatched right rows, null-filling the left side.
	if mode == JoinOuter {
		for i := 0; i < right.Len(); i++ {
			if matchedRight[i] {
				continue
			}
			out.AppendRow(mergeRows(nil, right.Row(i), on, rightOut))
		}
	}

	return out, nil
}

// joinKey builds the composite key string for a row. The second
// return is false when any key field is null.
func joinKey(r Row, on []KeyPair, isLeft bool) (string, bool) {
	parts := make([]string, len(on))
	for i, k := range on {
		field := k.Right
		if isLeft {
			field = k.Left
		}
		v := r.Get(field)
		if v.IsNull() {
			return "", false
		}
		// Kind prefix keeps string "1" distinct from number 1.
		parts[i] = fmt.Sprintf("%d:%s", v.Kind(), v.Text())
	}
	return strings.Join(parts, "\x1f"), true
}

// mergeRows builds one output row. Either side may be nil (outer
// join's missing side); its fields then read as explicit nulls.
func mergeRows(lr, rr Row, on []KeyPair, rightOut map[string]string) Row {
	out := make(Row, len(lr)+len(rightOut)+len(on))
	for k, v := range lr {
		out[k] = v
	}
	if rr != nil {
		for rc, oc := range rightOut {
			out[oc] = rr.Get(rc)
		}
		// Key fields come from the right when the left is absent.
		if lr == nil {
			for _, k := range on {
				out[k.Left] = rr.Get(k.Right)
			}
		}
	}
	return out
}

func joinedName(left, right *Table) string {
	if left.Name() == "" {
		return right.Name()
	}
	if right.Name() == "" {
		return left.Name()
	}
	return left.Name() + "+" + right.Name()
}
