// Package workload implements the monthly backup/restore cost rollup:
// a row-by-row computation over per-workload retention and restore
// assumptions, usually fed from CSV.
package workload

import (
	"fmt"

	"github.com/rshade/restorecost/internal/rounding"
)

// Config holds one workload's backup and restore assumptions. All numeric
// fields must be non-negative.
type Config struct {
	Workload                string  `json:"workload"                    yaml:"workload"`
	DataGB                  float64 `json:"data_gb"                     yaml:"data_gb"`
	BackupFrequencyPerMonth float64 `json:"backup_frequency_per_month"  yaml:"backup_frequency_per_month"`
	RetentionMonths         float64 `json:"retention_months"            yaml:"retention_months"`
	StorageRatePerGBMonth   float64 `json:"storage_rate_per_gb_month"   yaml:"storage_rate_per_gb_month"`
	RestoreGBPerMonth       float64 `json:"restore_gb_per_month"        yaml:"restore_gb_per_month"`
	RestoreRatePerGB        float64 `json:"restore_rate_per_gb"         yaml:"restore_rate_per_gb"`
}

// Cost is the monthly resilience cost breakdown for one workload. The input
// config is carried along so renderers can re-emit it next to the derived
// figures. Displayed fields are rounded half-up to two places; the raw
// figures are kept internally so aggregation can sum first and round once.
type Cost struct {
	Config `yaml:",inline"`

	EffectiveBackupsKept float64 `json:"effective_backups_kept"          yaml:"effective_backups_kept"`
	MonthlyStorageUSD    float64 `json:"monthly_storage_cost"            yaml:"monthly_storage_cost"`
	MonthlyRestoreUSD    float64 `json:"monthly_restore_cost"            yaml:"monthly_restore_cost"`
	TotalMonthlyUSD      float64 `json:"total_monthly_resilience_cost"   yaml:"total_monthly_resilience_cost"`

	rawStorage float64
	rawRestore float64
}

// Summary aggregates monthly costs across workloads. Totals are computed
// from raw sums and rounded once, never from re-adding rounded parts.
type Summary struct {
	Workloads         int     `json:"workloads"              yaml:"workloads"`
	MonthlyStorageUSD float64 `json:"monthly_storage_cost"   yaml:"monthly_storage_cost"`
	MonthlyRestoreUSD float64 `json:"monthly_restore_cost"   yaml:"monthly_restore_cost"`
	TotalMonthlyUSD   float64 `json:"total_monthly_resilience_cost" yaml:"total_monthly_resilience_cost"`
}

func validate(cfg Config) error {
	if cfg.Workload == "" {
		return fmt.Errorf("workload identifier must be non-empty")
	}
	fields := []struct {
		name  string
		value float64
	}{
		{"data_gb", cfg.DataGB},
		{"backup_frequency_per_month", cfg.BackupFrequencyPerMonth},
		{"retention_months", cfg.RetentionMonths},
		{"storage_rate_per_gb_month", cfg.StorageRatePerGBMonth},
		{"restore_gb_per_month", cfg.RestoreGBPerMonth},
		{"restore_rate_per_gb", cfg.RestoreRatePerGB},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%s must be >= 0, got %v", f.name, f.value)
		}
	}
	return nil
}

// Calculate derives the monthly resilience cost for one workload.
func Calculate(cfg Config) (Cost, error) {
	if err := validate(cfg); err != nil {
		return Cost{}, err
	}

	backupsKept := cfg.BackupFrequencyPerMonth * cfg.RetentionMonths
	storage := cfg.DataGB * cfg.BackupFrequencyPerMonth * cfg.RetentionMonths * cfg.StorageRatePerGBMonth
	restore := cfg.RestoreGBPerMonth * cfg.RestoreRatePerGB

	return Cost{
		Config:               cfg,
		EffectiveBackupsKept: backupsKept,
		MonthlyStorageUSD:    rounding.HalfUp2(storage),
		MonthlyRestoreUSD:    rounding.HalfUp2(restore),
		TotalMonthlyUSD:      rounding.HalfUp2(storage + restore),
		rawStorage:           storage,
		rawRestore:           restore,
	}, nil
}

// Summarize totals a list of workload costs, preserving input order upstream
// and rounding each aggregate exactly once.
func Summarize(costs []Cost) Summary {
	var storage, restore float64
	for _, c := range costs {
		storage += c.rawStorage
		restore += c.rawRestore
	}
	return Summary{
		Workloads:         len(costs),
		MonthlyStorageUSD: rounding.HalfUp2(storage),
		MonthlyRestoreUSD: rounding.HalfUp2(restore),
		TotalMonthlyUSD:   rounding.HalfUp2(storage + restore),
	}
}
