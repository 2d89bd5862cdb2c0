package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// MODEL TESTS
// ============================================================================

func makeTable(name string, cols []string, rows ...Row) *Table {
	t := New(name, cols...)
	for _, r := range rows {
		t.AppendRow(r)
	}
	return t
}

func TestValueKinds(t *testing.T) {
	assert.True(t, Null().IsNull())
	assert.True(t, Value{}.IsNull(), "zero Value should be null")
	assert.Equal(t, KindString, String("x").Kind())
	assert.Equal(t, KindNumber, Number(1.5).Kind())

	f, ok := Number(2.5).Float()
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, ok = String("2.5").Float()
	assert.False(t, ok, "Float must not parse strings")

	f, ok = String("2.5").AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	assert.False(t, String("1").Equal(Number(1)), "kinds must not compare equal")
}

func TestFilterReturnsNewTable(t *testing.T) {
	orig := makeTable("t", []string{"country", "val"},
		Row{"country": String("US"), "val": Number(1)},
		Row{"country": String("FR"), "val": Number(2)},
	)

	filtered := orig.Filter(func(r Row) bool {
		return r.Get("country").Equal(String("US"))
	})

	assert.Equal(t, 1, filtered.Len())
	assert.Equal(t, 2, orig.Len(), "input table must be unchanged")
	assert.Equal(t, "US", filtered.Value(0, "country").Str())
}

func TestSelectAndRename(t *testing.T) {
	orig := makeTable("t", []string{"a", "b", "c"},
		Row{"a": Number(1), "b": Number(2), "c": Number(3)},
	)

	sel := orig.Select("c", "a")
	assert.Equal(t, []string{"c", "a"}, sel.Columns())
	assert.True(t, sel.Value(0, "b").IsNull(), "unselected column reads null")

	ren := orig.Rename(map[string]string{"a": "alpha"})
	assert.Equal(t, []string{"alpha", "b", "c"}, ren.Columns())
	assert.True(t, ren.Value(0, "alpha").Equal(Number(1)))
	assert.Equal(t, []string{"a", "b", "c"}, orig.Columns(), "input unchanged")
}

func TestSelectUnknownColumnIsNull(t *testing.T) {
	orig := makeTable("t", []string{"a"}, Row{"a": Number(1)})
	sel := orig.Select("a", "missing")
	assert.True(t, sel.Value(0, "missing").IsNull())
}

func TestFillNull(t *testing.T) {
	orig := makeTable("t", []string{"v"},
		Row{"v": Null()},
		Row{"v": Number(5)},
	)

	filled := orig.FillNull("v", Number(0))
	assert.True(t, filled.Value(0, "v").Equal(Number(0)))
	assert.True(t, filled.Value(1, "v").Equal(Number(5)))
	assert.True(t, orig.Value(0, "v").IsNull(), "input unchanged")
}

func TestFillNullFrom(t *testing.T) {
	orig := makeTable("t", []string{"name", "fallback"},
		Row{"name": Null(), "fallback": String("France")},
		Row{"name": String("Germany"), "fallback": String("other")},
	)

	filled := orig.FillNullFrom("name", "fallback")
	assert.Equal(t, "France", filled.Value(0, "name").Str())
	assert.Equal(t, "Germany", filled.Value(1, "name").Str())
}

func TestPairedNumbersSkipsNonNumeric(t *testing.T) {
	orig := makeTable("t", []string{"x", "y"},
		Row{"x": Number(1), "y": Number(10)},
		Row{"x": Null(), "y": Number(20)},
		Row{"x": Number(3), "y": String("n/a")},
		Row{"x": Number(4), "y": Number(40)},
	)

	xs, ys := orig.PairedNumbers("x", "y")
	require.Equal(t, []float64{1, 4}, xs)
	require.Equal(t, []float64{10, 40}, ys)
}

func TestValueEqualWithCmp(t *testing.T) {
	a := Row{"k": Number(1), "s": String("x"), "n": Null()}
	b := Row{"k": Number(1), "s": String("x"), "n": Null()}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("rows differ (-want +got):\n%s", diff)
	}
}
