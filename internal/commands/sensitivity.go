package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/restorecost/internal/report"
	"github.com/rshade/restorecost/internal/restore"
	"github.com/rshade/restorecost/internal/scenario"
)

var sensitivityFlags struct {
	tier         string
	sizeGB       float64
	destination  string
	rtoHours     float64
	scenarioName string
	pricingFile  string
	format       string
	bandwidths   []float64
	efficiencies []float64
}

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Sweep total restore time over bandwidth and efficiency",
	Long: `Print a what-if table of total restore time for one tier and size across
a bandwidth x efficiency grid, flagging combinations that would miss the
RTO. Defaults sweep 100/500/1000 Mbps against 0.5/0.7/0.9 efficiency.`,
	RunE: runSensitivity,
}

func init() {
	f := sensitivityCmd.Flags()
	f.StringVar(&sensitivityFlags.tier, "tier", "", "Storage tier (glacier, deep_archive)")
	f.Float64Var(&sensitivityFlags.sizeGB, "size-gb", 0, "Data size to restore, in GB")
	f.StringVar(&sensitivityFlags.destination, "destination", "", "Restore destination: internet or intra_aws")
	f.Float64Var(&sensitivityFlags.rtoHours, "rto-hours", 0, "Recovery time objective in hours")
	f.StringVar(&sensitivityFlags.scenarioName, "scenario", "", "Scenario preset for defaults")
	f.StringVar(&sensitivityFlags.pricingFile, "pricing-file", "", "YAML file with tier pricing overrides")
	f.StringVarP(&sensitivityFlags.format, "output", "o", "text", "Output format: text, json, yaml")
	f.Float64SliceVar(&sensitivityFlags.bandwidths, "bandwidths", nil, "Bandwidth axis in Mbps (default 100,500,1000)")
	f.Float64SliceVar(&sensitivityFlags.efficiencies, "efficiencies", nil, "Efficiency axis (default 0.5,0.7,0.9)")

	_ = sensitivityCmd.MarkFlagRequired("tier")
	_ = sensitivityCmd.MarkFlagRequired("size-gb")
}

func runSensitivity(cmd *cobra.Command, _ []string) error {
	table, err := loadPricing(sensitivityFlags.pricingFile)
	if err != nil {
		return err
	}
	rec, err := table.ForTier(sensitivityFlags.tier)
	if err != nil {
		return err
	}

	destination := sensitivityFlags.destination
	rto := floatFlag(cmd, "rto-hours", sensitivityFlags.rtoHours)
	if sensitivityFlags.scenarioName != "" {
		preset, err := scenario.ForName(sensitivityFlags.scenarioName)
		if err != nil {
			return err
		}
		if destination == "" {
			destination = preset.Destination
		}
		if rto == nil {
			rto = preset.RTOHours
		}
	}
	if destination == "" {
		destination = restore.DestinationInternet
	}

	grid, err := restore.Sensitivity(sensitivityFlags.sizeGB, destination, rto, rec,
		sensitivityFlags.bandwidths, sensitivityFlags.efficiencies)
	if err != nil {
		return err
	}

	data := report.SensitivityData{
		Tool:        "restorecost",
		Version:     version,
		GeneratedAt: time.Now().UTC(),
		Scenario:    sensitivityFlags.scenarioName,
		Tier:        sensitivityFlags.tier,
		Destination: destination,
		SizeGB:      sensitivityFlags.sizeGB,
		RTOHours:    rto,
		Pricing:     rec,
		Table:       grid,
	}

	reporter, err := report.New(sensitivityFlags.format, os.Stdout)
	if err != nil {
		return err
	}
	return reporter.Sensitivity(data)
}
