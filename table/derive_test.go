package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// METRIC DERIVER TESTS
// ============================================================================

func TestRatioNullPropagation(t *testing.T) {
	in := makeTable("t", []string{"total", "pop"},
		Row{"total": Number(100), "pop": Number(50)},
		Row{"total": Number(100), "pop": Null()},
		Row{"total": Number(100), "pop": Number(0)},
		Row{"total": Null(), "pop": Number(50)},
	)

	out := in.Derive(Ratio("per_capita", "total", "pop"))

	assert.True(t, out.Value(0, "per_capita").Equal(Number(2)))
	assert.True(t, out.Value(1, "per_capita").IsNull(), "null denominator → null")
	assert.True(t, out.Value(2, "per_capita").IsNull(), "zero denominator → null, not Inf")
	assert.True(t, out.Value(3, "per_capita").IsNull(), "null numerator → null")
}

func TestSumPropagatesNull(t *testing.T) {
	in := makeTable("t", []string{"a", "b"},
		Row{"a": Number(1), "b": Number(2)},
		Row{"a": Number(1), "b": Null()},
	)

	out := in.Derive(Sum("total", "a", "b"))
	assert.True(t, out.Value(0, "total").Equal(Number(3)))
	assert.True(t, out.Value(1, "total").IsNull(), "null input never coerces to zero")
}

func TestSumAfterFillNull(t *testing.T) {
	// Zero-coalescing is an explicit FillNull step, not Sum's job.
	in := makeTable("t", []string{"a", "b"},
		Row{"a": Number(1), "b": Null()},
	)

	out := in.FillNull("b", Number(0)).Derive(Sum("total", "a", "b"))
	assert.True(t, out.Value(0, "total").Equal(Number(1)))
}

func TestProductAndScale(t *testing.T) {
	in := makeTable("t", []string{"pop", "share"},
		Row{"pop": Number(1000), "share": Number(0.5)},
		Row{"pop": Null(), "share": Number(0.5)},
	)

	out := in.Derive(
		Product("users", "pop", "share"),
		Scale("users_k", "users", 1.0/1000),
	)

	assert.True(t, out.Value(0, "users").Equal(Number(500)))
	assert.True(t, out.Value(0, "users_k").Equal(Number(0.5)))
	assert.True(t, out.Value(1, "users").IsNull())
	assert.True(t, out.Value(1, "users_k").IsNull(), "null chains through dependent rules")
}

func TestDeriveLaterRulesSeeEarlierOutputs(t *testing.T) {
	in := makeTable("t", []string{"a", "b"},
		Row{"a": Number(2), "b": Number(3)},
	)

	out := in.Derive(
		Sum("ab", "a", "b"),
		Ratio("half", "ab", "a"),
	)

	require.Equal(t, []string{"a", "b", "ab", "half"}, out.Columns())
	assert.True(t, out.Value(0, "half").Equal(Number(2.5)))
}

func TestMapRule(t *testing.T) {
	in := makeTable("t", []string{"x"},
		Row{"x": Number(4)},
		Row{"x": Null()},
	)

	out := in.Derive(Map("double", "x", func(f float64) float64 { return 2 * f }))
	assert.True(t, out.Value(0, "double").Equal(Number(8)))
	assert.True(t, out.Value(1, "double").IsNull())
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	in := makeTable("t", []string{"a"}, Row{"a": Number(1)})
	_ = in.Derive(Scale("b", "a", 2))
	assert.Equal(t, []string{"a"}, in.Columns())
	assert.True(t, in.Value(0, "b").IsNull())
}
