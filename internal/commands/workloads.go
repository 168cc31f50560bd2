package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rshade/restorecost/internal/report"
	"github.com/rshade/restorecost/internal/workload"
)

var workloadsFlags struct {
	csvPath string
	format  string
}

var workloadsCmd = &cobra.Command{
	Use:   "workloads",
	Short: "Roll up monthly backup/restore costs across workloads from CSV",
	Long: `Read per-workload backup and restore assumptions from a CSV file and
compute each workload's monthly resilience cost plus an aggregate summary.

Required columns: workload, data_gb, backup_frequency_per_month,
retention_months, storage_rate_per_gb_month, restore_gb_per_month,
restore_rate_per_gb.`,
	RunE: runWorkloads,
}

func init() {
	workloadsCmd.Flags().StringVar(&workloadsFlags.csvPath, "csv", "", "Path to the workloads CSV file")
	workloadsCmd.Flags().StringVarP(&workloadsFlags.format, "output", "o", "text", "Output format: text, json, yaml, csv")
	_ = workloadsCmd.MarkFlagRequired("csv")
}

func runWorkloads(_ *cobra.Command, _ []string) error {
	f, err := os.Open(workloadsFlags.csvPath)
	if err != nil {
		return fmt.Errorf("open workloads CSV: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Warn().Err(cerr).Str("path", workloadsFlags.csvPath).Msg("failed to close CSV file")
		}
	}()

	configs, err := workload.ReadCSV(f)
	if err != nil {
		return err
	}

	costs := make([]workload.Cost, 0, len(configs))
	for _, cfg := range configs {
		cost, err := workload.Calculate(cfg)
		if err != nil {
			return fmt.Errorf("workload %q: %w", cfg.Workload, err)
		}
		costs = append(costs, cost)
	}

	data := report.WorkloadData{
		Tool:        "restorecost",
		Version:     version,
		GeneratedAt: time.Now().UTC(),
		Source:      workloadsFlags.csvPath,
		Workloads:   costs,
		Summary:     workload.Summarize(costs),
	}

	reporter, err := report.New(workloadsFlags.format, os.Stdout)
	if err != nil {
		return err
	}
	return reporter.Workloads(data)
}
