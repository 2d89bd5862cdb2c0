// Package stats provides the small set of descriptive statistics the
// pipeline reports: Pearson correlation and a least-squares line fit.
package stats

import (
	"fmt"
	"math"
)

// Pearson returns the Pearson correlation coefficient of two paired
// samples. Errors on length mismatch, fewer than two points, or a
// zero-variance side.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("pearson: length mismatch (%d vs %d)", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("pearson: need at least 2 observations, have %d", len(x))
	}

	meanX := mean(x)
	meanY := mean(y)

	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, fmt.Errorf("pearson: zero variance in input")
	}
	return cov / math.Sqrt(varX*varY), nil
}

// LinearFit returns the least-squares slope and intercept of y on x.
// Errors on length mismatch, fewer than two points, or constant x.
func LinearFit(x, y []float64) (slope, intercept float64, err error) {
	if len(x) != len(y) {
		return 0, 0, fmt.Errorf("linear fit: length mismatch (%d vs %d)", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, 0, fmt.Errorf("linear fit: need at least 2 observations, have %d", len(x))
	}

	meanX := mean(x)
	meanY := mean(y)

	var num, den float64
	for i := range x {
		dx := x[i] - meanX
		num += dx * (y[i] - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0, 0, fmt.Errorf("linear fit: x has zero variance")
	}

	slope = num / den
	intercept = meanY - slope*meanX
	return slope, intercept, nil
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
