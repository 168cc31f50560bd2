// Package scenario ships the canonical preset table for common restore
// situations. Presets only fill in assumptions the caller did not supply.
package scenario

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScenario indicates a lookup for a preset that does not exist.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario bundles default network and RTO assumptions for one situation.
type Scenario struct {
	Name          string   `json:"name"                 yaml:"name"`
	Destination   string   `json:"destination"          yaml:"destination"`
	BandwidthMbps float64  `json:"bandwidth_mbps"       yaml:"bandwidth_mbps"`
	Efficiency    float64  `json:"efficiency"           yaml:"efficiency"`
	RTOHours      *float64 `json:"rto_hours,omitempty"  yaml:"rto_hours,omitempty"`
}

func hours(h float64) *float64 { return &h }

var presets = map[string]Scenario{
	"ransomware": {
		Name:          "ransomware",
		Destination:   "internet",
		BandwidthMbps: 1000,
		Efficiency:    0.70,
		RTOHours:      hours(24),
	},
	"region_failure": {
		Name:          "region_failure",
		Destination:   "internet",
		BandwidthMbps: 500,
		Efficiency:    0.60,
		RTOHours:      hours(48),
	},
	"accidental_delete": {
		Name:          "accidental_delete",
		Destination:   "intra_aws",
		BandwidthMbps: 2000,
		Efficiency:    0.85,
		RTOHours:      hours(8),
	},
	// Routine restore drills have no RTO: the point is measuring, not meeting.
	"test_restore": {
		Name:          "test_restore",
		Destination:   "intra_aws",
		BandwidthMbps: 500,
		Efficiency:    0.80,
	},
}

// ForName returns the preset for a scenario name, matched after trimming
// whitespace and lowercasing.
func ForName(name string) (Scenario, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	preset, ok := presets[normalized]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q (known scenarios: %s)", ErrUnknownScenario, name, strings.Join(Names(), ", "))
	}
	return preset, nil
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
