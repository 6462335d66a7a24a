// Package stats holds the small numeric helpers shared by the analyzers.
package stats

import (
	"math"

	"github.com/shopspring/decimal"
)

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// PopulationStdDev returns the population standard deviation (divisor n).
func PopulationStdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := Mean(xs)
	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)))
}

// CoefficientOfVariation returns std/mean*100, unrounded.
// Fewer than two samples or a non-positive mean yield 0.
func CoefficientOfVariation(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := Mean(xs)
	if mean <= 0 {
		return 0
	}
	return PopulationStdDev(xs) / mean * 100
}

// Round2 rounds v to two decimal places, half away from zero, using the
// shortest decimal representation of v. Non-finite values are returned as-is.
// Exact binary halves differ from round-half-even: Round2(-0.125) is -0.13, not -0.12.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Diff returns round2(value - mark).
func Diff(value, mark float64) float64 {
	return Round2(value - mark)
}
