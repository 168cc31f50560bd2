package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rshade/restorecost/internal/history"
	"github.com/rshade/restorecost/internal/narrative"
	"github.com/rshade/restorecost/internal/pricing"
	"github.com/rshade/restorecost/internal/report"
	"github.com/rshade/restorecost/internal/restore"
	"github.com/rshade/restorecost/internal/scenario"
)

var analyzeFlags struct {
	tier          string
	sizeGB        float64
	destination   string
	bandwidthMbps float64
	efficiency    float64
	rtoHours      float64
	scenarioName  string
	pricingFile   string
	format        string

	compareTier        string
	compareDestination string

	downtimeCostPerHour      float64
	incidentFrequencyPerYear float64
	planningHorizonYears     float64
	detectionLagHours        float64

	sensitivity bool
	aiNarrative bool
	similar     bool
	noHistory   bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Estimate restore cost and time for one tier, and check the RTO",
	Long: `Estimate the cost and duration of restoring data from a cold storage tier
under stated network assumptions. A scenario preset can supply destination,
bandwidth, efficiency, and RTO defaults; explicit flags always win. Add
--compare-tier or --compare-destination to price a second strategy and the
break-even point of switching.`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.tier, "tier", "", "Storage tier (glacier, deep_archive)")
	f.Float64Var(&analyzeFlags.sizeGB, "size-gb", 0, "Data size to restore, in GB")
	f.StringVar(&analyzeFlags.destination, "destination", "", "Restore destination: internet or intra_aws")
	f.Float64Var(&analyzeFlags.bandwidthMbps, "bandwidth-mbps", 0, "Link bandwidth in Mbps")
	f.Float64Var(&analyzeFlags.efficiency, "efficiency", 0, "Link efficiency in (0, 1] (default 0.7)")
	f.Float64Var(&analyzeFlags.rtoHours, "rto-hours", 0, "Recovery time objective in hours")
	f.StringVar(&analyzeFlags.scenarioName, "scenario", "", "Scenario preset for defaults")
	f.StringVar(&analyzeFlags.pricingFile, "pricing-file", "", "YAML file with tier pricing overrides")
	f.StringVarP(&analyzeFlags.format, "output", "o", "text", "Output format: text, json, yaml")

	f.StringVar(&analyzeFlags.compareTier, "compare-tier", "", "Second tier to compare against")
	f.StringVar(&analyzeFlags.compareDestination, "compare-destination", "", "Second destination to compare against")

	f.Float64Var(&analyzeFlags.downtimeCostPerHour, "downtime-cost-per-hour", 0, "Cost of downtime per hour in USD")
	f.Float64Var(&analyzeFlags.incidentFrequencyPerYear, "incident-frequency-per-year", 0, "Expected incidents per year (0.2 = one every 5 years)")
	f.Float64Var(&analyzeFlags.planningHorizonYears, "planning-horizon-years", 0, "Horizon in years for expected downtime loss")
	f.Float64Var(&analyzeFlags.detectionLagHours, "detection-lag-hours", 0, "Lag between incident start and detection, in hours")

	f.BoolVar(&analyzeFlags.sensitivity, "sensitivity", false, "Include the bandwidth/efficiency what-if table")
	f.BoolVar(&analyzeFlags.aiNarrative, "ai-narrative", false, "Generate an executive decision narrative with an LLM")
	f.BoolVar(&analyzeFlags.similar, "similar", false, "Show similar past decisions from local history")
	f.BoolVar(&analyzeFlags.noHistory, "no-history", false, "Do not write this decision to local history")

	_ = analyzeCmd.MarkFlagRequired("tier")
	_ = analyzeCmd.MarkFlagRequired("size-gb")
}

// loadPricing returns the tier table, with YAML overrides when requested.
func loadPricing(path string) (*pricing.Table, error) {
	if path == "" {
		return pricing.Default(), nil
	}
	return pricing.LoadFile(path)
}

// floatFlag returns a pointer to the flag value when it was set, nil otherwise.
func floatFlag(cmd *cobra.Command, name string, value float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

// resolveAssumptions merges explicit flags over scenario preset defaults.
func resolveAssumptions(cmd *cobra.Command) (destination string, bandwidth, efficiency float64, rto *float64, err error) {
	var preset scenario.Scenario
	if analyzeFlags.scenarioName != "" {
		preset, err = scenario.ForName(analyzeFlags.scenarioName)
		if err != nil {
			return "", 0, 0, nil, err
		}
	}

	destination = analyzeFlags.destination
	if destination == "" {
		destination = preset.Destination
	}
	bandwidth = analyzeFlags.bandwidthMbps
	if bandwidth == 0 {
		bandwidth = preset.BandwidthMbps
	}
	efficiency = analyzeFlags.efficiency
	if efficiency == 0 {
		efficiency = preset.Efficiency
	}
	if efficiency == 0 {
		efficiency = 0.7
	}
	rto = floatFlag(cmd, "rto-hours", analyzeFlags.rtoHours)
	if rto == nil {
		rto = preset.RTOHours
	}
	return destination, bandwidth, efficiency, rto, nil
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg := envConfig()

	table, err := loadPricing(analyzeFlags.pricingFile)
	if err != nil {
		return err
	}

	destination, bandwidth, efficiency, rto, err := resolveAssumptions(cmd)
	if err != nil {
		return err
	}

	pricingA, err := table.ForTier(analyzeFlags.tier)
	if err != nil {
		return err
	}

	inputs := restore.Inputs{
		DataSizeGB:     analyzeFlags.sizeGB,
		BandwidthMbps:  bandwidth,
		LinkEfficiency: efficiency,
		Destination:    destination,
		RTOHours:       rto,
	}
	result, err := restore.Estimate(inputs, pricingA)
	if err != nil {
		return err
	}

	assumptions := restore.DowntimeAssumptions{
		DetectionLagHours:        analyzeFlags.detectionLagHours,
		CostPerHour:              floatFlag(cmd, "downtime-cost-per-hour", analyzeFlags.downtimeCostPerHour),
		IncidentFrequencyPerYear: floatFlag(cmd, "incident-frequency-per-year", analyzeFlags.incidentFrequencyPerYear),
		PlanningHorizonYears:     floatFlag(cmd, "planning-horizon-years", analyzeFlags.planningHorizonYears),
	}
	impact := restore.AssessDowntime(result.TotalTimeHours, rto, assumptions)

	data := report.Data{
		Tool:              "restorecost",
		Version:           version,
		GeneratedAt:       time.Now().UTC(),
		Scenario:          analyzeFlags.scenarioName,
		Tier:              analyzeFlags.tier,
		Destination:       destination,
		Inputs:            inputs,
		Pricing:           pricingA,
		Result:            result,
		MonthlyStorageUSD: restore.MonthlyStorageUSD(analyzeFlags.sizeGB, pricingA),
		Assumptions:       &assumptions,
		Downtime:          &impact,
	}

	if analyzeFlags.sensitivity {
		table, err := restore.Sensitivity(analyzeFlags.sizeGB, destination, rto, pricingA, nil, nil)
		if err != nil {
			return err
		}
		data.Sensitivity = &table
	}

	rec := history.Record{
		Scenario:                 analyzeFlags.scenarioName,
		Tier:                     analyzeFlags.tier,
		Destination:              destination,
		SizeGB:                   analyzeFlags.sizeGB,
		BandwidthMbps:            bandwidth,
		Efficiency:               efficiency,
		RTOHours:                 rto,
		TotalTimeHours:           result.TotalTimeHours,
		EndToEndDowntimeHours:    impact.EndToEndHours,
		RTOMissHours:             impact.RTOMissHours,
		TotalCostUSD:             result.TotalCostUSD,
		MonthlyStorageUSD:        data.MonthlyStorageUSD,
		DetectionLagHours:        analyzeFlags.detectionLagHours,
		DowntimeCostPerHour:      assumptions.CostPerHour,
		EstimatedDowntimeLossUSD: impact.PerEventLossUSD,
		IncidentFrequencyPerYear: assumptions.IncidentFrequencyPerYear,
		PlanningHorizonYears:     assumptions.PlanningHorizonYears,
		ExpectedDowntimeLossUSD:  impact.ExpectedLossUSD,
	}

	if analyzeFlags.compareTier != "" || analyzeFlags.compareDestination != "" {
		compareData, compareRec, err := runComparison(table, inputs, pricingA, rto, assumptions)
		if err != nil {
			return err
		}
		data.Compare = compareData
		rec.Compare = compareRec
	}

	hlog := history.NewLog(cfg.HistoryFile, log.Logger)

	if analyzeFlags.similar {
		matches, err := hlog.Similar(rec, 3)
		if err != nil {
			log.Warn().Err(err).Msg("similarity search failed")
		}
		if matches == nil {
			matches = []history.Match{}
		}
		data.Similar = matches
	}

	if analyzeFlags.aiNarrative {
		gen := narrative.New(cfg.OpenAIKey, cfg.OpenAIModel, log.Logger)
		text, err := gen.Generate(cmd.Context(), rec, rec.Compare)
		if err != nil {
			log.Warn().Err(err).Msg("AI narrative generation failed")
			data.Narrative = fmt.Sprintf("AI narrative not available (%v).", err)
		} else {
			data.Narrative = text
		}
	}

	if !analyzeFlags.noHistory {
		if err := hlog.Append(history.Stamp(rec)); err != nil {
			// History is best-effort; a full disk should not sink the answer.
			log.Warn().Err(err).Str("path", cfg.HistoryFile).Msg("failed to write history")
		}
	}

	reporter, err := report.New(analyzeFlags.format, os.Stdout)
	if err != nil {
		return err
	}
	return reporter.Analysis(data)
}

// runComparison prices the alternative configuration ("B") against the
// current one and packages both the report block and the history block.
func runComparison(table *pricing.Table, inputsA restore.Inputs, pricingA pricing.Record, rto *float64, assumptions restore.DowntimeAssumptions) (*report.CompareData, *history.CompareRecord, error) {
	tierB := analyzeFlags.compareTier
	if tierB == "" {
		tierB = analyzeFlags.tier
	}
	destB := analyzeFlags.compareDestination
	if destB == "" {
		destB = inputsA.Destination
	}

	pricingB, err := table.ForTier(tierB)
	if err != nil {
		return nil, nil, err
	}

	inputsB := inputsA
	inputsB.Destination = destB

	comparison, err := restore.Compare(inputsA, pricingA, inputsB, pricingB)
	if err != nil {
		return nil, nil, err
	}

	impactB := restore.AssessDowntime(comparison.B.TotalTimeHours, rto, assumptions)
	monthlyB := restore.MonthlyStorageUSD(inputsA.DataSizeGB, pricingB)

	compareData := &report.CompareData{
		Tier:              tierB,
		Destination:       destB,
		Pricing:           pricingB,
		MonthlyStorageUSD: monthlyB,
		Downtime:          &impactB,
		Comparison:        comparison,
	}
	compareRec := &history.CompareRecord{
		AltTier:                     tierB,
		AltDestination:              destB,
		AltTotalTimeHours:           comparison.B.TotalTimeHours,
		AltEndToEndDowntimeHours:    impactB.EndToEndHours,
		AltTotalCostUSD:             comparison.B.TotalCostUSD,
		AltMonthlyStorageUSD:        monthlyB,
		AltEstimatedDowntimeLossUSD: impactB.PerEventLossUSD,
		AltExpectedDowntimeLossUSD:  impactB.ExpectedLossUSD,
	}
	return compareData, compareRec, nil
}
