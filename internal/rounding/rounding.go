// Package rounding fixes the output rounding discipline for the whole tool:
// half-up to two decimal places, applied once at the output boundary.
// Intermediate math stays in float64 so rounding error never compounds.
package rounding

import "github.com/shopspring/decimal"

// HalfUp2 rounds v half-up to two decimal places. Used for every reported
// USD and hour figure so output is stable across platforms.
func HalfUp2(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}
