package restore

import "github.com/rshade/restorecost/internal/pricing"

// Default sweep axes for the what-if table.
var (
	DefaultBandwidthsMbps = []float64{100, 500, 1000}
	DefaultEfficiencies   = []float64{0.5, 0.7, 0.9}
)

// SensitivityCell is one cell of the what-if table: total restore time for
// one bandwidth/efficiency pair, flagged when it would miss the RTO.
type SensitivityCell struct {
	BandwidthMbps  float64 `json:"bandwidth_mbps"  yaml:"bandwidth_mbps"`
	Efficiency     float64 `json:"efficiency"      yaml:"efficiency"`
	TotalTimeHours float64 `json:"total_time_hours" yaml:"total_time_hours"`
	MissesRTO      bool    `json:"misses_rto"      yaml:"misses_rto"`
}

// SensitivityTable is the full sweep, row-major by bandwidth.
type SensitivityTable struct {
	BandwidthsMbps []float64           `json:"bandwidths_mbps" yaml:"bandwidths_mbps"`
	Efficiencies   []float64           `json:"efficiencies"    yaml:"efficiencies"`
	Rows           [][]SensitivityCell `json:"rows"            yaml:"rows"`
}

// Sensitivity sweeps total restore time over the bandwidth and efficiency
// grid, holding size, destination, and RTO fixed. Empty axes fall back to
// the defaults.
func Sensitivity(sizeGB float64, destination string, rtoHours *float64, rec pricing.Record, bandwidths, efficiencies []float64) (SensitivityTable, error) {
	if len(bandwidths) == 0 {
		bandwidths = DefaultBandwidthsMbps
	}
	if len(efficiencies) == 0 {
		efficiencies = DefaultEfficiencies
	}

	table := SensitivityTable{
		BandwidthsMbps: bandwidths,
		Efficiencies:   efficiencies,
		Rows:           make([][]SensitivityCell, 0, len(bandwidths)),
	}

	for _, bw := range bandwidths {
		row := make([]SensitivityCell, 0, len(efficiencies))
		for _, eff := range efficiencies {
			result, err := Estimate(Inputs{
				DataSizeGB:     sizeGB,
				BandwidthMbps:  bw,
				LinkEfficiency: eff,
				Destination:    destination,
				RTOHours:       rtoHours,
			}, rec)
			if err != nil {
				return SensitivityTable{}, err
			}
			row = append(row, SensitivityCell{
				BandwidthMbps:  bw,
				Efficiency:     eff,
				TotalTimeHours: result.TotalTimeHours,
				MissesRTO:      result.RTOMismatch != nil && *result.RTOMismatch,
			})
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
