// Package report renders analysis results as text, JSON, or YAML.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/rshade/restorecost/internal/history"
	"github.com/rshade/restorecost/internal/pricing"
	"github.com/rshade/restorecost/internal/restore"
	"github.com/rshade/restorecost/internal/workload"
)

// Data is everything one analyze run produced.
type Data struct {
	Tool        string    `json:"tool"                  yaml:"tool"`
	Version     string    `json:"version"               yaml:"version"`
	GeneratedAt time.Time `json:"generated_at"          yaml:"generated_at"`

	Scenario    string         `json:"scenario,omitempty"    yaml:"scenario,omitempty"`
	Tier        string         `json:"tier"                  yaml:"tier"`
	Destination string         `json:"destination"           yaml:"destination"`
	Inputs      restore.Inputs `json:"inputs"                yaml:"inputs"`
	Pricing     pricing.Record `json:"pricing"               yaml:"pricing"`
	Result      restore.Result `json:"result"                yaml:"result"`

	MonthlyStorageUSD float64                      `json:"monthly_storage_usd"   yaml:"monthly_storage_usd"`
	Assumptions       *restore.DowntimeAssumptions `json:"downtime_assumptions,omitempty" yaml:"downtime_assumptions,omitempty"`
	Downtime          *restore.DowntimeImpact      `json:"downtime,omitempty"    yaml:"downtime,omitempty"`

	Sensitivity *restore.SensitivityTable `json:"sensitivity,omitempty" yaml:"sensitivity,omitempty"`
	Compare     *CompareData              `json:"compare,omitempty"     yaml:"compare,omitempty"`

	Narrative string          `json:"narrative,omitempty"         yaml:"narrative,omitempty"`
	Similar   []history.Match `json:"similar_decisions,omitempty" yaml:"similar_decisions,omitempty"`
}

// CompareData is the candidate configuration side of a comparison.
type CompareData struct {
	Tier              string                  `json:"tier"                yaml:"tier"`
	Destination       string                  `json:"destination"         yaml:"destination"`
	Pricing           pricing.Record          `json:"pricing"             yaml:"pricing"`
	MonthlyStorageUSD float64                 `json:"monthly_storage_usd" yaml:"monthly_storage_usd"`
	Downtime          *restore.DowntimeImpact `json:"downtime,omitempty"  yaml:"downtime,omitempty"`
	Comparison        restore.Comparison      `json:"comparison"          yaml:"comparison"`
}

// SensitivityData is a standalone what-if sweep.
type SensitivityData struct {
	Tool        string                   `json:"tool"               yaml:"tool"`
	Version     string                   `json:"version"            yaml:"version"`
	GeneratedAt time.Time                `json:"generated_at"       yaml:"generated_at"`
	Scenario    string                   `json:"scenario,omitempty" yaml:"scenario,omitempty"`
	Tier        string                   `json:"tier"               yaml:"tier"`
	Destination string                   `json:"destination"        yaml:"destination"`
	SizeGB      float64                  `json:"size_gb"            yaml:"size_gb"`
	RTOHours    *float64                 `json:"rto_hours,omitempty" yaml:"rto_hours,omitempty"`
	Pricing     pricing.Record           `json:"pricing"            yaml:"pricing"`
	Table       restore.SensitivityTable `json:"table"              yaml:"table"`
}

// WorkloadData is the output of one workload rollup run.
type WorkloadData struct {
	Tool        string            `json:"tool"         yaml:"tool"`
	Version     string            `json:"version"      yaml:"version"`
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	Source      string            `json:"source"       yaml:"source"`
	Workloads   []workload.Cost   `json:"workloads"    yaml:"workloads"`
	Summary     workload.Summary  `json:"summary"      yaml:"summary"`
}

// PricingData is the tier table listing.
type PricingData struct {
	Tool    string                    `json:"tool"    yaml:"tool"`
	Version string                    `json:"version" yaml:"version"`
	Tiers   map[string]pricing.Record `json:"tiers"   yaml:"tiers"`
}

// Reporter renders each kind of result to its output.
type Reporter interface {
	Analysis(data Data) error
	Sensitivity(data SensitivityData) error
	Workloads(data WorkloadData) error
	Pricing(data PricingData) error
}

// New selects a reporter by format name ("text", "json", "yaml", "csv").
func New(format string, w io.Writer) (Reporter, error) {
	switch format {
	case "text":
		return &TextReporter{Writer: w}, nil
	case "json":
		return &JSONReporter{Writer: w}, nil
	case "yaml":
		return &YAMLReporter{Writer: w}, nil
	case "csv":
		return &CSVReporter{Writer: w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use text, json, yaml, or csv)", format)
	}
}
