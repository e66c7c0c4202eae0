// Package round is the shared display-precision helper. Intermediate math in
// the calculators runs on decimals so that chained multiplications (safety
// factor, derating, efficiency) do not accumulate binary floating point drift;
// this package is the single place results get cut to their display precision.
package round

import (
	"math"

	"github.com/shopspring/decimal"
)

// To rounds v half-up to the given number of decimal places.
func To(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// UpInt returns the smallest integer >= v. Counts (panels, luminaires, rods)
// always round up.
func UpInt(v float64) int {
	return int(math.Ceil(v - 1e-12))
}

// Mul multiplies a chain of factors in decimal and returns the float64 value.
func Mul(vs ...float64) float64 {
	acc := decimal.NewFromInt(1)
	for _, v := range vs {
		acc = acc.Mul(decimal.NewFromFloat(v))
	}
	f, _ := acc.Float64()
	return f
}

// Div divides a by b in decimal with high precision.
func Div(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).DivRound(decimal.NewFromFloat(b), 16).Float64()
	return f
}
