package restore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/restorecost/internal/pricing"
)

func hours(h float64) *float64 { return &h }

func deepArchive(t *testing.T) pricing.Record {
	t.Helper()
	rec, err := pricing.Default().ForTier(pricing.TierDeepArchive)
	require.NoError(t, err)
	return rec
}

func glacier(t *testing.T) pricing.Record {
	t.Helper()
	rec, err := pricing.Default().ForTier(pricing.TierGlacier)
	require.NoError(t, err)
	return rec
}

// TestEstimateDeepArchiveRansomware is the worked ransomware-shaped
// example: 5 TB out of deep_archive over a 70%-efficient gigabit link
// misses a 24h RTO.
func TestEstimateDeepArchiveRansomware(t *testing.T) {
	result, err := Estimate(Inputs{
		DataSizeGB:     5000,
		BandwidthMbps:  1000,
		LinkEfficiency: 0.7,
		Destination:    DestinationInternet,
		RTOHours:       hours(24),
	}, deepArchive(t))
	require.NoError(t, err)

	assert.InDelta(t, 100.00, result.RetrievalCostUSD, 1e-9)
	assert.InDelta(t, 450.00, result.EgressCostUSD, 1e-9)
	assert.InDelta(t, 550.00, result.TotalCostUSD, 1e-9)
	assert.InDelta(t, 12.00, result.ThawTimeHours, 1e-9)
	assert.InDelta(t, 15.87, result.TransferTimeHours, 1e-9)
	assert.InDelta(t, 27.87, result.TotalTimeHours, 1e-9)
	require.NotNil(t, result.RTOMismatch)
	assert.True(t, *result.RTOMismatch)
	require.NotNil(t, result.RTOHours)
	assert.InDelta(t, 24.0, *result.RTOHours, 1e-9)
}

// TestEstimateDeepArchiveFullEfficiency is the second worked example:
// 1 TB at full link efficiency.
func TestEstimateDeepArchiveFullEfficiency(t *testing.T) {
	result, err := Estimate(Inputs{
		DataSizeGB:     1000,
		BandwidthMbps:  1000,
		LinkEfficiency: 1.0,
		Destination:    DestinationInternet,
	}, deepArchive(t))
	require.NoError(t, err)

	assert.InDelta(t, 20.00, result.RetrievalCostUSD, 1e-9)
	assert.InDelta(t, 90.00, result.EgressCostUSD, 1e-9)
	assert.InDelta(t, 110.00, result.TotalCostUSD, 1e-9)
	assert.InDelta(t, 2.22, result.TransferTimeHours, 1e-9)
	assert.InDelta(t, 14.22, result.TotalTimeHours, 1e-9)
	assert.Nil(t, result.RTOMismatch)
	assert.Nil(t, result.RTOHours)
}

// TestEstimateValidation checks that every precondition fails fast with an
// error naming the offending field, before any computation.
func TestEstimateValidation(t *testing.T) {
	valid := Inputs{
		DataSizeGB:     100,
		BandwidthMbps:  500,
		LinkEfficiency: 0.8,
		Destination:    DestinationIntraAWS,
	}

	tests := []struct {
		name      string
		mutate    func(*Inputs)
		wantField string
	}{
		{
			name:      "zero size",
			mutate:    func(in *Inputs) { in.DataSizeGB = 0 },
			wantField: "data_size_gb",
		},
		{
			name:      "negative size",
			mutate:    func(in *Inputs) { in.DataSizeGB = -5 },
			wantField: "data_size_gb",
		},
		{
			name:      "zero bandwidth",
			mutate:    func(in *Inputs) { in.BandwidthMbps = 0 },
			wantField: "bandwidth_mbps",
		},
		{
			name:      "zero efficiency",
			mutate:    func(in *Inputs) { in.LinkEfficiency = 0 },
			wantField: "link_efficiency",
		},
		{
			name:      "efficiency above one",
			mutate:    func(in *Inputs) { in.LinkEfficiency = 1.2 },
			wantField: "link_efficiency",
		},
		{
			name:      "unknown destination",
			mutate:    func(in *Inputs) { in.Destination = "mars" },
			wantField: "restore_destination",
		},
		{
			name:      "empty destination",
			mutate:    func(in *Inputs) { in.Destination = "" },
			wantField: "restore_destination",
		},
		{
			name:      "non-positive rto",
			mutate:    func(in *Inputs) { in.RTOHours = hours(0) },
			wantField: "rto_hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			result, err := Estimate(in, glacier(t))
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Zero(t, result)
		})
	}
}

// TestEstimateDestinationNormalization accepts case and whitespace noise.
func TestEstimateDestinationNormalization(t *testing.T) {
	for _, destination := range []string{"internet", " INTERNET ", "Intra_AWS", "  intra_aws"} {
		t.Run(destination, func(t *testing.T) {
			_, err := Estimate(Inputs{
				DataSizeGB:     10,
				BandwidthMbps:  100,
				LinkEfficiency: 0.5,
				Destination:    destination,
			}, glacier(t))
			assert.NoError(t, err)
		})
	}
}

// TestEstimateIntraAWSCheaper: intra-AWS egress never costs more than
// internet egress for the default tiers.
func TestEstimateIntraAWSCheaper(t *testing.T) {
	for _, tier := range []string{pricing.TierGlacier, pricing.TierDeepArchive} {
		t.Run(tier, func(t *testing.T) {
			rec, err := pricing.Default().ForTier(tier)
			require.NoError(t, err)

			base := Inputs{DataSizeGB: 2000, BandwidthMbps: 1000, LinkEfficiency: 0.9}

			internet := base
			internet.Destination = DestinationInternet
			intra := base
			intra.Destination = DestinationIntraAWS

			resInternet, err := Estimate(internet, rec)
			require.NoError(t, err)
			resIntra, err := Estimate(intra, rec)
			require.NoError(t, err)

			assert.LessOrEqual(t, resIntra.EgressCostUSD, resInternet.EgressCostUSD)
			// Destination changes cost only, never time.
			assert.InDelta(t, resInternet.TotalTimeHours, resIntra.TotalTimeHours, 1e-9)
		})
	}
}

// TestTransferTimeMonotonicity: more data is strictly slower, more
// bandwidth or efficiency strictly faster.
func TestTransferTimeMonotonicity(t *testing.T) {
	base := TransferTimeHours(1000, 500, 0.7)

	assert.Greater(t, TransferTimeHours(2000, 500, 0.7), base)
	assert.Less(t, TransferTimeHours(1000, 1000, 0.7), base)
	assert.Less(t, TransferTimeHours(1000, 500, 0.9), base)
}

// TestTransferTimeDecimalConvention pins 1 GB = 1e9 bytes: 1000 GB at an
// effective gigabit is exactly 8000 seconds.
func TestTransferTimeDecimalConvention(t *testing.T) {
	got := TransferTimeHours(1000, 1000, 1.0)
	assert.InDelta(t, 8000.0/3600.0, got, 1e-12)
}

// TestEstimateRTOBoundary: meeting the RTO exactly is not a mismatch.
func TestEstimateRTOBoundary(t *testing.T) {
	// glacier thaw 4h + 1000 GB at effective 1000 Mbps = 4 + 2.22h.
	result, err := Estimate(Inputs{
		DataSizeGB:     1000,
		BandwidthMbps:  1000,
		LinkEfficiency: 1.0,
		Destination:    DestinationIntraAWS,
		RTOHours:       hours(6.23),
	}, glacier(t))
	require.NoError(t, err)
	assert.InDelta(t, 6.22, result.TotalTimeHours, 1e-9)
	require.NotNil(t, result.RTOMismatch)
	assert.False(t, *result.RTOMismatch)
}

func TestMonthlyStorageUSD(t *testing.T) {
	rec := pricing.Record{StoragePerGBMonth: 0.00099}
	assert.InDelta(t, 4.95, MonthlyStorageUSD(5000, rec), 1e-9)
}

// TestResultSumsConsistent: the rounded totals equal the rounded sums of
// their raw parts for a spread of inputs.
func TestResultSumsConsistent(t *testing.T) {
	sizes := []float64{1, 10, 123.45, 5000, 99999}
	for _, size := range sizes {
		result, err := Estimate(Inputs{
			DataSizeGB:     size,
			BandwidthMbps:  750,
			LinkEfficiency: 0.65,
			Destination:    DestinationInternet,
		}, deepArchive(t))
		require.NoError(t, err)

		assert.InDelta(t, result.TotalCostUSD, result.RetrievalCostUSD+result.EgressCostUSD, 0.011)
		assert.InDelta(t, result.TotalTimeHours, result.ThawTimeHours+result.TransferTimeHours, 0.011)
	}
}
