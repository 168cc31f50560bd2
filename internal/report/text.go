package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rshade/restorecost/internal/restore"
)

// TextReporter writes the human-readable console report.
type TextReporter struct {
	Writer io.Writer
}

func usd(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func (r *TextReporter) Analysis(data Data) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Restore Stress Test (%s)\n", data.Tier)
	if data.Scenario != "" {
		fmt.Fprintf(&b, "Scenario: %s\n", data.Scenario)
	}
	fmt.Fprintf(&b, "Destination: %s\n\n", data.Destination)

	fmt.Fprintf(&b, "Retrieval cost: %s\n", usd(data.Result.RetrievalCostUSD))
	fmt.Fprintf(&b, "Egress cost:    %s\n", usd(data.Result.EgressCostUSD))
	fmt.Fprintf(&b, "Total cost:     %s\n\n", usd(data.Result.TotalCostUSD))

	fmt.Fprintf(&b, "Thaw time:      %.2f hours\n", data.Result.ThawTimeHours)
	fmt.Fprintf(&b, "Transfer time:  %.2f hours\n", data.Result.TransferTimeHours)
	fmt.Fprintf(&b, "Total time:     %.2f hours\n", data.Result.TotalTimeHours)

	if data.Assumptions != nil && data.Assumptions.DetectionLagHours > 0 && data.Downtime != nil {
		fmt.Fprintf(&b, "Detection lag:  %.2f hours\n", data.Assumptions.DetectionLagHours)
		fmt.Fprintf(&b, "End-to-end downtime: %.2f hours\n", data.Downtime.EndToEndHours)
	}

	if data.Result.RTOHours != nil {
		status := "MET"
		if data.Result.RTOMismatch != nil && *data.Result.RTOMismatch {
			status = "MISSED"
		}
		fmt.Fprintf(&b, "RTO (restore-only): %.2f hours [%s]\n", *data.Result.RTOHours, status)
		if data.Downtime != nil && data.Assumptions != nil && data.Assumptions.DetectionLagHours > 0 {
			endStatus := "MET"
			if data.Downtime.EndToEndHours > *data.Result.RTOHours {
				endStatus = "MISSED"
			}
			fmt.Fprintf(&b, "RTO (end-to-end):   %.2f hours [%s]\n", *data.Result.RTOHours, endStatus)
		}
	}

	b.WriteString("\nDecision Notes\n--------------\n")
	fmt.Fprintf(&b, "Storage for %s at %.0f GB is ~%s/month.\n", data.Tier, data.Inputs.DataSizeGB, usd(data.MonthlyStorageUSD))

	if data.Downtime != nil && data.Assumptions != nil && data.Assumptions.CostPerHour != nil && data.Result.RTOHours != nil {
		if data.Downtime.RTOMissHours > 0 {
			fmt.Fprintf(&b, "This restore misses the end-to-end RTO by %.2f hours (%.2fh vs %.2fh).\n",
				data.Downtime.RTOMissHours, data.Downtime.EndToEndHours, *data.Result.RTOHours)
		} else {
			fmt.Fprintf(&b, "This restore meets the end-to-end RTO with %.2f hours of headroom (%.2fh vs %.2fh).\n",
				*data.Result.RTOHours-data.Downtime.EndToEndHours, data.Downtime.EndToEndHours, *data.Result.RTOHours)
		}
		fmt.Fprintf(&b, "Downtime is modeled at %s/hour; value at risk for a single incident is %s.\n",
			usd(*data.Assumptions.CostPerHour), usd(data.Downtime.PerEventLossUSD))
		if data.Downtime.ExpectedLossUSD > 0 && data.Assumptions.PlanningHorizonYears != nil && data.Assumptions.IncidentFrequencyPerYear != nil {
			fmt.Fprintf(&b, "Over a %.1f-year horizon at %.2f incidents/year, expected downtime loss is ~%s.\n",
				*data.Assumptions.PlanningHorizonYears, *data.Assumptions.IncidentFrequencyPerYear, usd(data.Downtime.ExpectedLossUSD))
		}
	}
	b.WriteString("Cheaper storage can quietly turn into slower recovery and higher downtime when you actually need it.\n")

	if data.Sensitivity != nil {
		writeSensitivity(&b, data.Sensitivity, data.Result.RTOHours)
	}
	if data.Compare != nil {
		writeCompare(&b, data)
	}
	if data.Narrative != "" {
		b.WriteString("\nAI Decision Narrative\n---------------------\n")
		b.WriteString(data.Narrative)
		b.WriteString("\n")
	}
	if data.Similar != nil {
		writeSimilar(&b, data)
	}

	_, err := io.WriteString(r.Writer, b.String())
	return err
}

// Sensitivity renders a standalone what-if sweep.
func (r *TextReporter) Sensitivity(data SensitivityData) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Restore Time Sensitivity (%s, %.0f GB to %s)\n", data.Tier, data.SizeGB, data.Destination)
	if data.Scenario != "" {
		fmt.Fprintf(&b, "Scenario: %s\n", data.Scenario)
	}
	writeSensitivity(&b, &data.Table, data.RTOHours)
	_, err := io.WriteString(r.Writer, b.String())
	return err
}

func writeSensitivity(b *strings.Builder, table *restore.SensitivityTable, rtoHours *float64) {
	b.WriteString("\nSensitivity (total restore time, hours)\n")

	header := "Bandwidth \\ Efficiency |"
	for _, eff := range table.Efficiencies {
		header += fmt.Sprintf(" %5.1f |", eff)
	}
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("-", len(header)) + "\n")

	for _, row := range table.Rows {
		if len(row) == 0 {
			continue
		}
		line := fmt.Sprintf("%9.0f Mbps         |", row[0].BandwidthMbps)
		for _, cell := range row {
			mark := " "
			if cell.MissesRTO {
				mark = "!"
			}
			line += fmt.Sprintf(" %5.1f%s|", cell.TotalTimeHours, mark)
		}
		b.WriteString(line + "\n")
	}
	if rtoHours != nil {
		fmt.Fprintf(b, "Cells marked ! exceed the %.2fh RTO.\n", *rtoHours)
	}
}

func writeCompare(b *strings.Builder, data Data) {
	cmp := data.Compare
	b.WriteString("\nComparison (A vs B)\n")
	fmt.Fprintf(b, "A: %s to %s\n", data.Tier, data.Destination)
	fmt.Fprintf(b, "  Total cost: %s (retrieval %s, egress %s)\n",
		usd(cmp.Comparison.A.TotalCostUSD), usd(cmp.Comparison.A.RetrievalCostUSD), usd(cmp.Comparison.A.EgressCostUSD))
	fmt.Fprintf(b, "  Total time: %.2fh (thaw %.2fh, transfer %.2fh)\n",
		cmp.Comparison.A.TotalTimeHours, cmp.Comparison.A.ThawTimeHours, cmp.Comparison.A.TransferTimeHours)

	fmt.Fprintf(b, "B: %s to %s\n", cmp.Tier, cmp.Destination)
	fmt.Fprintf(b, "  Total cost: %s (retrieval %s, egress %s)\n",
		usd(cmp.Comparison.B.TotalCostUSD), usd(cmp.Comparison.B.RetrievalCostUSD), usd(cmp.Comparison.B.EgressCostUSD))
	fmt.Fprintf(b, "  Total time: %.2fh (thaw %.2fh, transfer %.2fh)\n",
		cmp.Comparison.B.TotalTimeHours, cmp.Comparison.B.ThawTimeHours, cmp.Comparison.B.TransferTimeHours)

	b.WriteString("\nCompare Insights\n----------------\n")
	storageDelta := cmp.Comparison.MonthlyStorageDeltaUSD
	switch {
	case storageDelta == 0:
		b.WriteString("Storage: same monthly cost.\n")
	case storageDelta > 0:
		fmt.Fprintf(b, "Storage: B saves %s/month vs A.\n", usd(storageDelta))
	default:
		fmt.Fprintf(b, "Storage: B costs %s/month more than A.\n", usd(-storageDelta))
	}

	costDelta := cmp.Comparison.CostDeltaUSD
	switch {
	case costDelta == 0:
		b.WriteString("Restore event: same cost.\n")
	case costDelta < 0:
		fmt.Fprintf(b, "Restore event: B is %s cheaper than A.\n", usd(-costDelta))
	default:
		fmt.Fprintf(b, "Restore event: B is %s more expensive than A.\n", usd(costDelta))
	}

	timeDelta := cmp.Comparison.TimeDeltaHours
	switch {
	case timeDelta == 0:
		b.WriteString("Recovery time: same.\n")
	case timeDelta < 0:
		fmt.Fprintf(b, "Recovery time: B is %.2fh faster.\n", -timeDelta)
	default:
		fmt.Fprintf(b, "Recovery time: B is %.2fh slower.\n", timeDelta)
	}

	switch {
	case cmp.Comparison.BreakEvenMonths == nil:
		b.WriteString("Break-even: n/a (B does not save monthly storage).\n")
	case *cmp.Comparison.BreakEvenMonths == 0:
		b.WriteString("Break-even: immediate (B's restore event is not more expensive).\n")
	default:
		fmt.Fprintf(b, "Break-even: %.2f months of storage savings pay for B's pricier restore.\n", *cmp.Comparison.BreakEvenMonths)
	}

	if cmp.Downtime != nil && data.Downtime != nil {
		lossDelta := cmp.Downtime.PerEventLossUSD - data.Downtime.PerEventLossUSD
		switch {
		case lossDelta == 0:
			b.WriteString("Downtime impact (per event): same estimated value at risk.\n")
		case lossDelta < 0:
			fmt.Fprintf(b, "Downtime impact (per event): B reduces estimated loss by %s vs A.\n", usd(-lossDelta))
		default:
			fmt.Fprintf(b, "Downtime impact (per event): B increases estimated loss by %s vs A.\n", usd(lossDelta))
		}
	}
}

func writeSimilar(b *strings.Builder, data Data) {
	b.WriteString("\nSimilar Decisions (local history)\n---------------------------------\n")
	if len(data.Similar) == 0 {
		b.WriteString("No prior decisions found in local history.\n")
		return
	}
	for _, m := range data.Similar {
		rec := m.Record
		scenario := rec.Scenario
		if scenario == "" {
			scenario = "ad-hoc"
		}
		alt := "n/a"
		if rec.Compare != nil {
			alt = fmt.Sprintf("%s to %s", rec.Compare.AltTier, rec.Compare.AltDestination)
		}
		fmt.Fprintf(b, "* [%.2f similarity] %s | %.0f GB | %s to %s vs %s | RTO miss %.2fh | loss %s | %s\n",
			m.Similarity, scenario, rec.SizeGB, rec.Tier, rec.Destination, alt,
			rec.RTOMissHours, usd(rec.EstimatedDowntimeLossUSD), rec.Timestamp.Format("2006-01-02 15:04"))
	}
}

func (r *TextReporter) Workloads(data WorkloadData) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Workload Resilience Cost Rollup (%s)\n\n", data.Source)
	for _, c := range data.Workloads {
		fmt.Fprintf(&b, "%s\n", c.Workload)
		fmt.Fprintf(&b, "  Backups kept:     %.0f\n", c.EffectiveBackupsKept)
		fmt.Fprintf(&b, "  Monthly storage:  %s\n", usd(c.MonthlyStorageUSD))
		fmt.Fprintf(&b, "  Monthly restore:  %s\n", usd(c.MonthlyRestoreUSD))
		fmt.Fprintf(&b, "  Monthly total:    %s\n", usd(c.TotalMonthlyUSD))
	}

	fmt.Fprintf(&b, "\nTotal across %d workloads\n", data.Summary.Workloads)
	fmt.Fprintf(&b, "  Monthly storage:  %s\n", usd(data.Summary.MonthlyStorageUSD))
	fmt.Fprintf(&b, "  Monthly restore:  %s\n", usd(data.Summary.MonthlyRestoreUSD))
	fmt.Fprintf(&b, "  Monthly total:    %s\n", usd(data.Summary.TotalMonthlyUSD))

	_, err := io.WriteString(r.Writer, b.String())
	return err
}

func (r *TextReporter) Pricing(data PricingData) error {
	var b strings.Builder

	tiers := make([]string, 0, len(data.Tiers))
	for tier := range data.Tiers {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)

	b.WriteString("Tier pricing\n\n")
	for _, tier := range tiers {
		rec := data.Tiers[tier]
		fmt.Fprintf(&b, "%s\n", tier)
		fmt.Fprintf(&b, "  Retrieval:        $%.4f/GB\n", rec.RetrievalPerGB)
		fmt.Fprintf(&b, "  Egress (internet): $%.4f/GB\n", rec.EgressInternetPerGB)
		fmt.Fprintf(&b, "  Egress (intra-AWS): $%.4f/GB\n", rec.EgressIntraAWSPerGB)
		fmt.Fprintf(&b, "  Thaw:             %.1f hours\n", rec.ThawHours)
		fmt.Fprintf(&b, "  Storage:          $%.5f/GB-month\n", rec.StoragePerGBMonth)
	}

	_, err := io.WriteString(r.Writer, b.String())
	return err
}
