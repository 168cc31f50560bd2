package restore

import (
	"github.com/rshade/restorecost/internal/pricing"
	"github.com/rshade/restorecost/internal/rounding"
)

// Comparison holds both estimates plus the derived deltas for a tier or
// destination switch. "A" is the current configuration, "B" the candidate.
type Comparison struct {
	A Result `json:"a" yaml:"a"`
	B Result `json:"b" yaml:"b"`

	// CostDeltaUSD is B's restore-event cost minus A's.
	CostDeltaUSD float64 `json:"cost_delta_usd" yaml:"cost_delta_usd"`

	// TimeDeltaHours is B's total restore time minus A's.
	TimeDeltaHours float64 `json:"time_delta_hours" yaml:"time_delta_hours"`

	// MonthlyStorageDeltaUSD is the monthly storage saving of holding the
	// data in B instead of A. Positive means B is cheaper to store.
	MonthlyStorageDeltaUSD float64 `json:"monthly_storage_delta_usd" yaml:"monthly_storage_delta_usd"`

	// BreakEvenMonths is how many months of storage savings pay for B's
	// more expensive restore event. Nil when B does not save storage
	// (no break-even exists); zero when B's restore is not more expensive
	// (the switch pays off immediately).
	BreakEvenMonths *float64 `json:"break_even_months,omitempty" yaml:"break_even_months,omitempty"`
}

// Compare estimates both configurations and derives the switch economics.
// The storage delta and break-even use A's data size; comparing restores of
// different sizes is not meaningful for a tier decision.
func Compare(inputsA Inputs, pricingA pricing.Record, inputsB Inputs, pricingB pricing.Record) (Comparison, error) {
	resultA, err := Estimate(inputsA, pricingA)
	if err != nil {
		return Comparison{}, err
	}
	resultB, err := Estimate(inputsB, pricingB)
	if err != nil {
		return Comparison{}, err
	}

	monthlySavings := inputsA.DataSizeGB * (pricingA.StoragePerGBMonth - pricingB.StoragePerGBMonth)
	costDelta := resultB.TotalCostUSD - resultA.TotalCostUSD

	var breakEven *float64
	if monthlySavings > 0 {
		months := 0.0
		if costDelta > 0 {
			months = rounding.HalfUp2(costDelta / monthlySavings)
		}
		breakEven = &months
	}

	return Comparison{
		A:                      resultA,
		B:                      resultB,
		CostDeltaUSD:           rounding.HalfUp2(costDelta),
		TimeDeltaHours:         rounding.HalfUp2(resultB.TotalTimeHours - resultA.TotalTimeHours),
		MonthlyStorageDeltaUSD: rounding.HalfUp2(monthlySavings),
		BreakEvenMonths:        breakEven,
	}, nil
}
