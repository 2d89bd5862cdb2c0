package table

import (
	"fmt"
	"strconv"
)

// ============================================================================
// VALUE — Scalar cell value with an explicit null
// ============================================================================
// Every cell is a string, a number, or null. Null is a first-class state,
// never a zero default — joins and derivations depend on the distinction.
// ============================================================================

// Kind identifies the scalar type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
)

// Value is a single cell: string, number, or null.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// Null returns the null Value.
func Null() Value { return Value{} }

// String creates a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number creates a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Kind returns the scalar type of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string content. Zero for non-string values.
func (v Value) Str() string { return v.str }

// Num returns the numeric content. Zero for non-number values —
// use Float when the distinction between 0 and null matters.
func (v Value) Num() float64 { return v.num }

// Float returns the numeric content and whether the value is a number.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsNumber attempts a numeric reading of the value: numbers pass
// through, numeric strings are parsed, everything else fails.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Equal reports value equality across kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	}
	return true // both null
}

// Text renders the value for display and key building.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
	return ""
}

// GoString aids debugging output in tests.
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("table.String(%q)", v.str)
	case KindNumber:
		return fmt.Sprintf("table.Number(%v)", v.num)
	}
	return "table.Null()"
}
