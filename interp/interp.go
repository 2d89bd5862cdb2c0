// Package interp estimates a metric from a sorted reference curve by
// piecewise linear interpolation, clamped flat at both ends.
package interp

import (
	"fmt"
	"sort"

	"github.com/econdex-org/econdex/table"
)

// Point is one (x, y) sample on a reference curve.
type Point struct {
	X float64
	Y float64
}

// Curve is a reference curve sorted ascending by X.
// Invariant: X values are non-decreasing.
type Curve []Point

// Estimate returns the curve's y for an arbitrary x.
//
// Below the first point it returns the first y, above the last point
// the last y (flat clamp). In between it interpolates linearly on the
// bracketing segment, found by binary search.
//
// An empty curve returns 0.0 rather than failing. That permissive
// default is intentional — callers that need a hard failure must
// check len(c) themselves.
func (c Curve) Estimate(x float64) float64 {
	if len(c) == 0 {
		return 0.0
	}
	if x <= c[0].X {
		return c[0].Y
	}
	last := len(c) - 1
	if x >= c[last].X {
		return c[last].Y
	}

	// First point with X >= x; the segment [i-1, i] brackets x.
	i := sort.Search(len(c), func(j int) bool { return c[j].X >= x })
	lo, hi := c[i-1], c[i]
	if hi.X == lo.X {
		return lo.Y
	}
	t := (x - lo.X) / (hi.X - lo.X)
	return lo.Y + t*(hi.Y-lo.Y)
}

// FromTable builds a curve from two numeric columns, skipping rows
// where either cell is null or non-numeric, and sorts it by X.
func FromTable(t *table.Table, xField, yField string) (Curve, error) {
	if !t.HasColumn(xField) {
		return nil, fmt.Errorf("curve: table %s has no column %q", t.Name(), xField)
	}
	if !t.HasColumn(yField) {
		return nil, fmt.Errorf("curve: table %s has no column %q", t.Name(), yField)
	}

	xs, ys := t.PairedNumbers(xField, yField)
	curve := make(Curve, len(xs))
	for i := range xs {
		curve[i] = Point{X: xs[i], Y: ys[i]}
	}
	sort.Slice(curve, func(a, b int) bool { return curve[a].X < curve[b].X })
	return curve, nil
}
