// Package restore implements the closed-form restore cost and time model:
// deterministic arithmetic over a pricing record and a handful of network
// assumptions, with fail-fast validation and an RTO verdict.
package restore

import (
	"fmt"
	"strings"

	"github.com/rshade/restorecost/internal/pricing"
	"github.com/rshade/restorecost/internal/rounding"
)

// Restore destinations. Egress pricing depends on which one is chosen.
const (
	DestinationInternet = "internet"
	DestinationIntraAWS = "intra_aws"
)

// ValidationError reports an input that violates a precondition. It names
// the offending field so callers can surface it directly.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Inputs describes one restore to estimate. Constructed per invocation and
// never mutated.
type Inputs struct {
	// DataSizeGB is the amount of data to restore, in decimal GB.
	DataSizeGB float64 `json:"data_size_gb"        yaml:"data_size_gb"`

	// BandwidthMbps is the nominal link bandwidth in megabits per second.
	BandwidthMbps float64 `json:"bandwidth_mbps"      yaml:"bandwidth_mbps"`

	// LinkEfficiency scales nominal bandwidth to effective throughput,
	// in (0, 1].
	LinkEfficiency float64 `json:"link_efficiency"     yaml:"link_efficiency"`

	// Destination is "internet" or "intra_aws" (case/whitespace-insensitive).
	Destination string `json:"restore_destination" yaml:"restore_destination"`

	// RTOHours is the recovery time objective, if one is stated.
	RTOHours *float64 `json:"rto_hours,omitempty" yaml:"rto_hours,omitempty"`
}

// Result is the estimate for one restore. All USD and hour fields are
// rounded half-up to two places at this boundary.
type Result struct {
	RetrievalCostUSD  float64  `json:"retrieval_cost_usd"     yaml:"retrieval_cost_usd"`
	EgressCostUSD     float64  `json:"egress_cost_usd"        yaml:"egress_cost_usd"`
	TotalCostUSD      float64  `json:"total_cost_usd"         yaml:"total_cost_usd"`
	ThawTimeHours     float64  `json:"thaw_time_hours"        yaml:"thaw_time_hours"`
	TransferTimeHours float64  `json:"transfer_time_hours"    yaml:"transfer_time_hours"`
	TotalTimeHours    float64  `json:"total_time_hours"       yaml:"total_time_hours"`
	RTOHours          *float64 `json:"rto_hours,omitempty"    yaml:"rto_hours,omitempty"`

	// RTOMismatch is nil when no RTO was stated, otherwise true when the
	// estimated total time exceeds it.
	RTOMismatch *bool `json:"rto_mismatch,omitempty" yaml:"rto_mismatch,omitempty"`
}

// normalizeDestination trims, lowercases, and checks the destination.
func normalizeDestination(destination string) (string, error) {
	dest := strings.ToLower(strings.TrimSpace(destination))
	if dest != DestinationInternet && dest != DestinationIntraAWS {
		return "", &ValidationError{
			Field:  "restore_destination",
			Reason: fmt.Sprintf("must be %q or %q, got %q", DestinationInternet, DestinationIntraAWS, destination),
		}
	}
	return dest, nil
}

// validate checks every input precondition before any computation runs.
func validate(in Inputs) (string, error) {
	if in.DataSizeGB <= 0 {
		return "", &ValidationError{Field: "data_size_gb", Reason: "must be > 0"}
	}
	if in.BandwidthMbps <= 0 {
		return "", &ValidationError{Field: "bandwidth_mbps", Reason: "must be > 0"}
	}
	if in.LinkEfficiency <= 0 || in.LinkEfficiency > 1 {
		return "", &ValidationError{Field: "link_efficiency", Reason: "must be in (0, 1]"}
	}
	dest, err := normalizeDestination(in.Destination)
	if err != nil {
		return "", err
	}
	if in.RTOHours != nil && *in.RTOHours <= 0 {
		return "", &ValidationError{Field: "rto_hours", Reason: "must be > 0 if provided"}
	}
	return dest, nil
}

// TransferTimeHours returns the wire time for sizeGB at the effective
// throughput bandwidthMbps * efficiency.
//
// Uses the decimal convention 1 GB = 1e9 bytes. Worth stating: mixing this
// up with binary GiB shifts transfer times by ~7%.
func TransferTimeHours(sizeGB, bandwidthMbps, efficiency float64) float64 {
	effectiveMbps := bandwidthMbps * efficiency
	bits := sizeGB * 1e9 * 8
	seconds := bits / (effectiveMbps * 1e6)
	return seconds / 3600.0
}

// Estimate computes the cost and time breakdown for one restore. It is a
// pure, total function over valid inputs; invalid inputs fail fast with a
// ValidationError before any computation.
func Estimate(in Inputs, rec pricing.Record) (Result, error) {
	dest, err := validate(in)
	if err != nil {
		return Result{}, err
	}

	retrievalCost := in.DataSizeGB * rec.RetrievalPerGB

	var egressCost float64
	if dest == DestinationInternet {
		egressCost = in.DataSizeGB * rec.EgressInternetPerGB
	} else {
		egressCost = in.DataSizeGB * rec.EgressIntraAWSPerGB
	}

	totalCost := retrievalCost + egressCost

	transfer := TransferTimeHours(in.DataSizeGB, in.BandwidthMbps, in.LinkEfficiency)
	totalTime := rec.ThawHours + transfer

	var mismatch *bool
	if in.RTOHours != nil {
		missed := totalTime > *in.RTOHours
		mismatch = &missed
	}

	return Result{
		RetrievalCostUSD:  rounding.HalfUp2(retrievalCost),
		EgressCostUSD:     rounding.HalfUp2(egressCost),
		TotalCostUSD:      rounding.HalfUp2(totalCost),
		ThawTimeHours:     rounding.HalfUp2(rec.ThawHours),
		TransferTimeHours: rounding.HalfUp2(transfer),
		TotalTimeHours:    rounding.HalfUp2(totalTime),
		RTOHours:          in.RTOHours,
		RTOMismatch:       mismatch,
	}, nil
}

// MonthlyStorageUSD returns the at-rest storage cost of keeping sizeGB in
// the tier, rounded for display.
func MonthlyStorageUSD(sizeGB float64, rec pricing.Record) float64 {
	return rounding.HalfUp2(sizeGB * rec.StoragePerGBMonth)
}
