// Package pricing holds the per-tier rate table used by the restore
// estimator. Rates are static v1 constants, overridable from a YAML file
// for teams that have negotiated or regional pricing.
package pricing

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Known tier identifiers.
const (
	TierGlacier     = "glacier"
	TierDeepArchive = "deep_archive"
)

// ErrUnknownTier indicates a lookup for a tier that has no pricing record.
// This is a configuration error, not a computation error.
var ErrUnknownTier = errors.New("unknown storage tier")

// Record holds the restore-relevant rates for one storage tier.
// All fields are non-negative; records are never mutated after construction.
type Record struct {
	// RetrievalPerGB is the retrieval (rehydration) cost in USD per GB.
	RetrievalPerGB float64 `json:"retrieval_per_gb"            yaml:"retrieval_per_gb"`

	// EgressInternetPerGB is the egress cost in USD per GB when restoring
	// to a destination outside AWS.
	EgressInternetPerGB float64 `json:"egress_to_internet_per_gb"   yaml:"egress_to_internet_per_gb"`

	// EgressIntraAWSPerGB is the egress cost in USD per GB when restoring
	// to a destination inside AWS (same region).
	EgressIntraAWSPerGB float64 `json:"egress_intra_aws_per_gb"     yaml:"egress_intra_aws_per_gb"`

	// ThawHours is the fixed latency before retrieval begins.
	ThawHours float64 `json:"thaw_hours"                  yaml:"thaw_hours"`

	// StoragePerGBMonth is the at-rest storage rate in USD per GB-month.
	StoragePerGBMonth float64 `json:"storage_per_gb_month"        yaml:"storage_per_gb_month"`
}

// defaults are v1 list-price constants. Deliberately explicit rather than
// fetched: the tool models a decision, not a bill.
var defaults = map[string]Record{
	TierGlacier: {
		RetrievalPerGB:      0.01,
		EgressInternetPerGB: 0.09,
		EgressIntraAWSPerGB: 0.00,
		ThawHours:           4.0,
		StoragePerGBMonth:   0.0036,
	},
	TierDeepArchive: {
		RetrievalPerGB:      0.02,
		EgressInternetPerGB: 0.09,
		EgressIntraAWSPerGB: 0.00,
		ThawHours:           12.0,
		StoragePerGBMonth:   0.00099,
	},
}

// Table provides pricing lookups for storage tiers.
type Table struct {
	records map[string]Record
}

// Default returns a Table backed by the built-in rate constants.
func Default() *Table {
	records := make(map[string]Record, len(defaults))
	for tier, rec := range defaults {
		records[tier] = rec
	}
	return &Table{records: records}
}

// ForTier returns the pricing record for a tier. The tier name is matched
// after trimming whitespace and lowercasing. Returns ErrUnknownTier for
// any tier without a record.
func (t *Table) ForTier(tier string) (Record, error) {
	normalized := strings.ToLower(strings.TrimSpace(tier))
	rec, ok := t.records[normalized]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q (known tiers: %s)", ErrUnknownTier, tier, strings.Join(t.Tiers(), ", "))
	}
	return rec, nil
}

// Tiers returns the known tier names in sorted order.
func (t *Table) Tiers() []string {
	tiers := make([]string, 0, len(t.records))
	for tier := range t.records {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)
	return tiers
}

// Records returns a copy of the full tier table, keyed by tier name.
func (t *Table) Records() map[string]Record {
	records := make(map[string]Record, len(t.records))
	for tier, rec := range t.records {
		records[tier] = rec
	}
	return records
}

// LoadFile returns the default table with per-tier overrides applied from a
// YAML file. The file maps tier name to a full Record; tiers not present in
// the file keep their defaults, and new tiers may be added. Every record in
// the file must pass validation (no negative rates).
func LoadFile(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing file: %w", err)
	}

	var overrides map[string]Record
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse pricing file %s: %w", path, err)
	}

	table := Default()
	for tier, rec := range overrides {
		normalized := strings.ToLower(strings.TrimSpace(tier))
		if normalized == "" {
			return nil, fmt.Errorf("pricing file %s: empty tier name", path)
		}
		if err := validateRecord(rec); err != nil {
			return nil, fmt.Errorf("pricing file %s: tier %q: %w", path, tier, err)
		}
		table.records[normalized] = rec
	}
	return table, nil
}

func validateRecord(rec Record) error {
	switch {
	case rec.RetrievalPerGB < 0:
		return errors.New("retrieval_per_gb must be >= 0")
	case rec.EgressInternetPerGB < 0:
		return errors.New("egress_to_internet_per_gb must be >= 0")
	case rec.EgressIntraAWSPerGB < 0:
		return errors.New("egress_intra_aws_per_gb must be >= 0")
	case rec.ThawHours < 0:
		return errors.New("thaw_hours must be >= 0")
	case rec.StoragePerGBMonth < 0:
		return errors.New("storage_per_gb_month must be >= 0")
	}
	return nil
}
