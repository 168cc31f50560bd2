package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// CSVReporter writes the workload rollup as CSV, one row per input workload
// in input order: the seven input columns followed by the derived cost
// columns. The other report kinds have no tabular shape and reject the
// format.
type CSVReporter struct {
	Writer io.Writer
}

var errCSVUnsupported = errors.New("csv output is only supported by the workloads command")

func (r *CSVReporter) Analysis(Data) error { return errCSVUnsupported }

func (r *CSVReporter) Sensitivity(SensitivityData) error { return errCSVUnsupported }

func (r *CSVReporter) Pricing(PricingData) error { return errCSVUnsupported }

func (r *CSVReporter) Workloads(data WorkloadData) error {
	w := csv.NewWriter(r.Writer)

	header := []string{
		"workload",
		"data_gb",
		"backup_frequency_per_month",
		"retention_months",
		"storage_rate_per_gb_month",
		"restore_gb_per_month",
		"restore_rate_per_gb",
		"effective_backups_kept",
		"monthly_storage_cost",
		"monthly_restore_cost",
		"total_monthly_resilience_cost",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, c := range data.Workloads {
		row := []string{
			c.Workload,
			num(c.DataGB),
			num(c.BackupFrequencyPerMonth),
			num(c.RetentionMonths),
			num(c.StorageRatePerGBMonth),
			num(c.RestoreGBPerMonth),
			num(c.RestoreRatePerGB),
			num(c.EffectiveBackupsKept),
			cents(c.MonthlyStorageUSD),
			cents(c.MonthlyRestoreUSD),
			cents(c.TotalMonthlyUSD),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write CSV row for %q: %w", c.Workload, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush CSV report: %w", err)
	}
	return nil
}

// num echoes an input value without trailing zeros.
func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// cents formats a rounded USD figure with its two decimal places.
func cents(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
