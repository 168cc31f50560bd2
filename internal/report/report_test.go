package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/restorecost/internal/history"
	"github.com/rshade/restorecost/internal/pricing"
	"github.com/rshade/restorecost/internal/restore"
	"github.com/rshade/restorecost/internal/workload"
)

func hours(h float64) *float64 { return &h }

func boolPtr(v bool) *bool { return &v }

func sampleData() Data {
	return Data{
		Tool:        "restorecost",
		Version:     "test",
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Scenario:    "ransomware",
		Tier:        pricing.TierDeepArchive,
		Destination: restore.DestinationInternet,
		Inputs: restore.Inputs{
			DataSizeGB:     5000,
			BandwidthMbps:  1000,
			LinkEfficiency: 0.7,
			Destination:    restore.DestinationInternet,
			RTOHours:       hours(24),
		},
		Result: restore.Result{
			RetrievalCostUSD:  100,
			EgressCostUSD:     450,
			TotalCostUSD:      550,
			ThawTimeHours:     12,
			TransferTimeHours: 15.87,
			TotalTimeHours:    27.87,
			RTOHours:          hours(24),
			RTOMismatch:       boolPtr(true),
		},
		MonthlyStorageUSD: 4.95,
	}
}

func TestNewFormatSelection(t *testing.T) {
	var buf bytes.Buffer

	r, err := New("text", &buf)
	require.NoError(t, err)
	assert.IsType(t, &TextReporter{}, r)

	r, err = New("json", &buf)
	require.NoError(t, err)
	assert.IsType(t, &JSONReporter{}, r)

	r, err = New("yaml", &buf)
	require.NoError(t, err)
	assert.IsType(t, &YAMLReporter{}, r)

	r, err = New("csv", &buf)
	require.NoError(t, err)
	assert.IsType(t, &CSVReporter{}, r)

	_, err = New("xml", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestTextAnalysis(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextReporter{Writer: &buf}).Analysis(sampleData()))
	out := buf.String()

	assert.Contains(t, out, "Restore Stress Test (deep_archive)")
	assert.Contains(t, out, "Scenario: ransomware")
	assert.Contains(t, out, "Total cost:     $550.00")
	assert.Contains(t, out, "Transfer time:  15.87 hours")
	assert.Contains(t, out, "RTO (restore-only): 24.00 hours [MISSED]")
	assert.Contains(t, out, "Decision Notes")
	assert.Contains(t, out, "~$4.95/month")
	assert.NotContains(t, out, "Comparison")
	assert.NotContains(t, out, "AI Decision Narrative")
}

func TestTextAnalysisRTOMet(t *testing.T) {
	data := sampleData()
	data.Result.RTOMismatch = boolPtr(false)

	var buf bytes.Buffer
	require.NoError(t, (&TextReporter{Writer: &buf}).Analysis(data))
	assert.Contains(t, buf.String(), "[MET]")
}

func TestTextAnalysisDowntime(t *testing.T) {
	data := sampleData()
	cost := 5000.0
	freq := 0.2
	horizon := 3.0
	data.Assumptions = &restore.DowntimeAssumptions{
		DetectionLagHours:        2,
		CostPerHour:              &cost,
		IncidentFrequencyPerYear: &freq,
		PlanningHorizonYears:     &horizon,
	}
	data.Downtime = &restore.DowntimeImpact{
		EndToEndHours:   29.87,
		RTOMissHours:    5.87,
		PerEventLossUSD: 29350,
		ExpectedLossUSD: 17610,
	}

	var buf bytes.Buffer
	require.NoError(t, (&TextReporter{Writer: &buf}).Analysis(data))
	out := buf.String()

	assert.Contains(t, out, "Detection lag:  2.00 hours")
	assert.Contains(t, out, "End-to-end downtime: 29.87 hours")
	assert.Contains(t, out, "RTO (end-to-end):   24.00 hours [MISSED]")
	assert.Contains(t, out, "misses the end-to-end RTO by 5.87 hours")
	assert.Contains(t, out, "value at risk for a single incident is $29350.00")
	assert.Contains(t, out, "expected downtime loss is ~$17610.00")
}

func TestTextAnalysisCompare(t *testing.T) {
	breakEven := 3.83
	data := sampleData()
	data.Tier = pricing.TierGlacier
	data.Compare = &CompareData{
		Tier:        pricing.TierDeepArchive,
		Destination: restore.DestinationInternet,
		Comparison: restore.Comparison{
			A:                      restore.Result{TotalCostUSD: 100, TotalTimeHours: 6.22},
			B:                      restore.Result{TotalCostUSD: 110, TotalTimeHours: 14.22},
			CostDeltaUSD:           10,
			TimeDeltaHours:         8,
			MonthlyStorageDeltaUSD: 2.61,
			BreakEvenMonths:        &breakEven,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, (&TextReporter{Writer: &buf}).Analysis(data))
	out := buf.String()

	assert.Contains(t, out, "Comparison (A vs B)")
	assert.Contains(t, out, "A: glacier to internet")
	assert.Contains(t, out, "B: deep_archive to internet")
	assert.Contains(t, out, "Storage: B saves $2.61/month vs A.")
	assert.Contains(t, out, "Restore event: B is $10.00 more expensive than A.")
	assert.Contains(t, out, "Recovery time: B is 8.00h slower.")
	assert.Contains(t, out, "Break-even: 3.83 months")
}

func TestTextAnalysisBreakEvenEdges(t *testing.T) {
	data := sampleData()
	data.Compare = &CompareData{
		Tier:        pricing.TierGlacier,
		Destination: restore.DestinationInternet,
		Comparison:  restore.Comparison{MonthlyStorageDeltaUSD: -2.61},
	}

	var buf bytes.Buffer
	require.NoError(t, (&TextReporter{Writer: &buf}).Analysis(data))
	assert.Contains(t, buf.String(), "Break-even: n/a")

	zero := 0.0
	data.Compare.Comparison.BreakEvenMonths = &zero
	buf.Reset()
	require.NoError(t, (&TextReporter{Writer: &buf}).Analysis(data))
	assert.Contains(t, buf.String(), "Break-even: immediate")
}

func TestTextAnalysisSimilar(t *testing.T) {
	data := sampleData()
	data.Similar = []history.Match{}

	var buf bytes.Buffer
	require.NoError(t, (&TextReporter{Writer: &buf}).Analysis(data))
	assert.Contains(t, buf.String(), "No prior decisions found in local history.")

	data.Similar = []history.Match{
		{
			Similarity: 0.97,
			Record: history.Record{
				Timestamp:   time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC),
				Tier:        "deep_archive",
				Destination: "internet",
				SizeGB:      4800,
			},
		},
	}
	buf.Reset()
	require.NoError(t, (&TextReporter{Writer: &buf}).Analysis(data))
	out := buf.String()
	assert.Contains(t, out, "[0.97 similarity]")
	// Records without a scenario are labeled ad-hoc.
	assert.Contains(t, out, "ad-hoc")
	assert.Contains(t, out, "2026-07-01 09:30")
}

func TestTextSensitivity(t *testing.T) {
	table, err := restore.Sensitivity(5000, restore.DestinationInternet, hours(24),
		pricing.Record{RetrievalPerGB: 0.02, EgressInternetPerGB: 0.09, ThawHours: 12, StoragePerGBMonth: 0.00099},
		nil, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&TextReporter{Writer: &buf}).Sensitivity(SensitivityData{
		Tier:        pricing.TierDeepArchive,
		Destination: restore.DestinationInternet,
		SizeGB:      5000,
		RTOHours:    hours(24),
		Table:       table,
	}))
	out := buf.String()

	assert.Contains(t, out, "Restore Time Sensitivity (deep_archive, 5000 GB to internet)")
	assert.Contains(t, out, "Bandwidth \\ Efficiency")
	assert.Contains(t, out, "1000 Mbps")
	// The 100 Mbps column all misses a 24h RTO given a 12h thaw.
	assert.Contains(t, out, "!")
	assert.Contains(t, out, "exceed the 24.00h RTO")
}

func TestTextWorkloads(t *testing.T) {
	costA, err := workload.Calculate(workload.Config{
		Workload:                "billing-db",
		DataGB:                  500,
		BackupFrequencyPerMonth: 4,
		RetentionMonths:         3,
		StorageRatePerGBMonth:   0.15,
		RestoreGBPerMonth:       50,
		RestoreRatePerGB:        0.05,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&TextReporter{Writer: &buf}).Workloads(WorkloadData{
		Source:    "workloads.csv",
		Workloads: []workload.Cost{costA},
		Summary:   workload.Summarize([]workload.Cost{costA}),
	}))
	out := buf.String()

	assert.Contains(t, out, "Workload Resilience Cost Rollup (workloads.csv)")
	assert.Contains(t, out, "billing-db")
	assert.Contains(t, out, "Monthly storage:  $900.00")
	assert.Contains(t, out, "Monthly total:    $902.50")
	assert.Contains(t, out, "Total across 1 workloads")
}

func TestTextPricing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextReporter{Writer: &buf}).Pricing(PricingData{
		Tiers: pricing.Default().Records(),
	}))
	out := buf.String()

	assert.Contains(t, out, "deep_archive")
	assert.Contains(t, out, "glacier")
	assert.Contains(t, out, "$0.0100/GB")
	assert.Contains(t, out, "$0.00099/GB-month")
	// Sorted: deep_archive listed before glacier.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("deep_archive")), bytes.Index(buf.Bytes(), []byte("glacier")))
}

// TestJSONAnalysis checks the machine-readable contract: snake_case keys
// and omitted optional sections.
func TestJSONAnalysis(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONReporter{Writer: &buf}).Analysis(sampleData()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "restorecost", decoded["tool"])
	assert.Equal(t, "deep_archive", decoded["tier"])
	result, ok := decoded["result"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 550.0, result["total_cost_usd"], 1e-9)
	assert.InDelta(t, 27.87, result["total_time_hours"], 1e-9)

	// Optional sections absent, not null.
	assert.NotContains(t, decoded, "compare")
	assert.NotContains(t, decoded, "sensitivity")
	assert.NotContains(t, decoded, "narrative")
}

func TestYAMLAnalysis(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLReporter{Writer: &buf}).Analysis(sampleData()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "deep_archive", decoded["tier"])
	assert.Equal(t, "ransomware", decoded["scenario"])
}

// TestCSVWorkloads: one row per input workload, in input order, with the
// input columns echoed next to the derived costs.
func TestCSVWorkloads(t *testing.T) {
	costA, err := workload.Calculate(workload.Config{
		Workload:                "billing-db",
		DataGB:                  500,
		BackupFrequencyPerMonth: 4,
		RetentionMonths:         3,
		StorageRatePerGBMonth:   0.15,
		RestoreGBPerMonth:       50,
		RestoreRatePerGB:        0.05,
	})
	require.NoError(t, err)
	costB, err := workload.Calculate(workload.Config{
		Workload:                "media-archive",
		DataGB:                  12000,
		BackupFrequencyPerMonth: 1,
		RetentionMonths:         12,
		StorageRatePerGBMonth:   0.00099,
		RestoreGBPerMonth:       100,
		RestoreRatePerGB:        0.02,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&CSVReporter{Writer: &buf}).Workloads(WorkloadData{
		Source:    "workloads.csv",
		Workloads: []workload.Cost{costA, costB},
		Summary:   workload.Summarize([]workload.Cost{costA, costB}),
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "workload,data_gb,backup_frequency_per_month,retention_months,storage_rate_per_gb_month,restore_gb_per_month,restore_rate_per_gb,effective_backups_kept,monthly_storage_cost,monthly_restore_cost,total_monthly_resilience_cost", lines[0])
	assert.Equal(t, "billing-db,500,4,3,0.15,50,0.05,12,900.00,2.50,902.50", lines[1])
	assert.Equal(t, "media-archive,12000,1,12,0.00099,100,0.02,12,142.56,2.00,144.56", lines[2])
}

func TestCSVWorkloadsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVReporter{Writer: &buf}).Workloads(WorkloadData{
		Source:  "workloads.csv",
		Summary: workload.Summarize(nil),
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "workload,")
}

// TestCSVUnsupported: only the workload rollup has a tabular shape.
func TestCSVUnsupported(t *testing.T) {
	var buf bytes.Buffer
	r := &CSVReporter{Writer: &buf}

	assert.Error(t, r.Analysis(sampleData()))
	assert.Error(t, r.Sensitivity(SensitivityData{}))
	assert.Error(t, r.Pricing(PricingData{}))
	assert.Empty(t, buf.String())
}

func TestJSONWorkloads(t *testing.T) {
	cost, err := workload.Calculate(workload.Config{Workload: "app", DataGB: 10, BackupFrequencyPerMonth: 1, RetentionMonths: 1, StorageRatePerGBMonth: 0.1, RestoreGBPerMonth: 1, RestoreRatePerGB: 0.05})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&JSONReporter{Writer: &buf}).Workloads(WorkloadData{
		Source:    "stdin",
		Workloads: []workload.Cost{cost},
		Summary:   workload.Summarize([]workload.Cost{cost}),
	}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	summary, ok := decoded["summary"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 1.05, summary["total_monthly_resilience_cost"], 1e-9)
}
