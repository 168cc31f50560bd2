package restore

import "github.com/rshade/restorecost/internal/rounding"

// DowntimeAssumptions are the optional business-impact knobs layered on top
// of the restore estimate. Any of them may be absent; absent knobs zero out
// the figures they feed rather than failing.
type DowntimeAssumptions struct {
	// DetectionLagHours is the assumed gap between incident start and
	// someone noticing. Negative values are clamped to zero.
	DetectionLagHours float64 `json:"detection_lag_hours" yaml:"detection_lag_hours"`

	// CostPerHour is the cost of being down, in USD per hour.
	CostPerHour *float64 `json:"downtime_cost_per_hour,omitempty" yaml:"downtime_cost_per_hour,omitempty"`

	// IncidentFrequencyPerYear is how often this scenario is expected to
	// happen (0.2 means once every five years).
	IncidentFrequencyPerYear *float64 `json:"incident_frequency_per_year,omitempty" yaml:"incident_frequency_per_year,omitempty"`

	// PlanningHorizonYears is the window over which expected loss is
	// accumulated.
	PlanningHorizonYears *float64 `json:"planning_horizon_years,omitempty" yaml:"planning_horizon_years,omitempty"`
}

// DowntimeImpact is the modeled business impact of one restore profile.
type DowntimeImpact struct {
	// EndToEndHours is detection lag plus total restore time.
	EndToEndHours float64 `json:"end_to_end_downtime_hours" yaml:"end_to_end_downtime_hours"`

	// RTOMissHours is how far the end-to-end downtime overshoots the RTO.
	// Zero when the RTO is met or when no RTO/cost assumption was given.
	RTOMissHours float64 `json:"rto_miss_hours" yaml:"rto_miss_hours"`

	// PerEventLossUSD is RTOMissHours priced at the downtime cost rate.
	PerEventLossUSD float64 `json:"estimated_downtime_loss_usd" yaml:"estimated_downtime_loss_usd"`

	// ExpectedLossUSD is the per-event loss scaled by incident frequency
	// and planning horizon. Zero unless all three assumptions are present.
	ExpectedLossUSD float64 `json:"expected_downtime_loss_usd" yaml:"expected_downtime_loss_usd"`
}

// AssessDowntime derives downtime economics from a restore's total time.
// End-to-end downtime is modeled as detection lag + restore time; the miss
// and loss figures need both an RTO and a cost rate, and expected loss
// additionally needs frequency and horizon.
func AssessDowntime(totalTimeHours float64, rtoHours *float64, assumptions DowntimeAssumptions) DowntimeImpact {
	detection := assumptions.DetectionLagHours
	if detection < 0 {
		detection = 0
	}
	endToEnd := totalTimeHours + detection

	impact := DowntimeImpact{EndToEndHours: rounding.HalfUp2(endToEnd)}

	if rtoHours == nil || assumptions.CostPerHour == nil {
		return impact
	}

	miss := endToEnd - *rtoHours
	if miss < 0 {
		miss = 0
	}
	loss := miss * *assumptions.CostPerHour
	impact.RTOMissHours = rounding.HalfUp2(miss)
	impact.PerEventLossUSD = rounding.HalfUp2(loss)

	if assumptions.IncidentFrequencyPerYear != nil && assumptions.PlanningHorizonYears != nil {
		impact.ExpectedLossUSD = rounding.HalfUp2(loss * *assumptions.IncidentFrequencyPerYear * *assumptions.PlanningHorizonYears)
	}
	return impact
}
