// Package history keeps a local append-only JSONL log of past restore
// decisions and answers "have we priced something like this before?" with
// a simple cosine-similarity search over a fixed numeric feature vector.
package history

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Record is one logged decision. Optional assumptions stay nil so the log
// distinguishes "not modeled" from zero.
type Record struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Scenario  string    `json:"scenario,omitempty"`

	Tier          string   `json:"tier"`
	Destination   string   `json:"destination"`
	SizeGB        float64  `json:"size_gb"`
	BandwidthMbps float64  `json:"bandwidth_mbps"`
	Efficiency    float64  `json:"efficiency"`
	RTOHours      *float64 `json:"rto_hours,omitempty"`

	TotalTimeHours        float64 `json:"total_time_hours"`
	EndToEndDowntimeHours float64 `json:"end_to_end_downtime_hours"`
	RTOMissHours          float64 `json:"rto_miss_hours"`
	TotalCostUSD          float64 `json:"total_cost_usd"`
	MonthlyStorageUSD     float64 `json:"monthly_storage_usd"`

	DetectionLagHours        float64  `json:"detection_lag_hours"`
	DowntimeCostPerHour      *float64 `json:"downtime_cost_per_hour,omitempty"`
	EstimatedDowntimeLossUSD float64  `json:"estimated_downtime_loss_usd"`
	IncidentFrequencyPerYear *float64 `json:"incident_frequency_per_year,omitempty"`
	PlanningHorizonYears     *float64 `json:"planning_horizon_years,omitempty"`
	ExpectedDowntimeLossUSD  float64  `json:"expected_downtime_loss_usd"`

	Compare *CompareRecord `json:"compare,omitempty"`
}

// CompareRecord captures the alternative configuration of a comparison run.
type CompareRecord struct {
	AltTier                     string  `json:"alt_tier"`
	AltDestination              string  `json:"alt_destination"`
	AltTotalTimeHours           float64 `json:"alt_total_time_hours"`
	AltEndToEndDowntimeHours    float64 `json:"alt_end_to_end_downtime_hours"`
	AltTotalCostUSD             float64 `json:"alt_total_cost_usd"`
	AltMonthlyStorageUSD        float64 `json:"alt_monthly_storage_usd"`
	AltEstimatedDowntimeLossUSD float64 `json:"alt_estimated_downtime_loss_usd"`
	AltExpectedDowntimeLossUSD  float64 `json:"alt_expected_downtime_loss_usd"`
}

// Match pairs a historical record with its similarity to the current run.
type Match struct {
	Record     Record  `json:"record"`
	Similarity float64 `json:"similarity"`
}

// Log reads and appends decision records at a fixed path.
type Log struct {
	path   string
	logger zerolog.Logger
}

// NewLog returns a Log at path. The file is created on first append.
func NewLog(path string, logger zerolog.Logger) *Log {
	return &Log{path: path, logger: logger}
}

// Stamp fills in the record identity fields (UUID and UTC timestamp).
func Stamp(rec Record) Record {
	rec.ID = uuid.New().String()
	rec.Timestamp = time.Now().UTC()
	return rec
}

// Append writes one record as a JSON line. History is best-effort by
// contract: callers log failures and move on rather than failing the run.
func (l *Log) Append(rec Record) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.logger.Warn().Err(cerr).Str("path", l.path).Msg("failed to close history file")
		}
	}()

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode history record: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append history record: %w", err)
	}
	return nil
}

// Load reads all records. A missing file is an empty history, and corrupt
// lines are skipped: a damaged log should degrade search, not break it.
func (l *Log) Load() ([]Record, error) {
	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.logger.Warn().Err(cerr).Str("path", l.path).Msg("failed to close history file")
		}
	}()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			l.logger.Debug().Err(err).Str("path", l.path).Msg("skipping corrupt history line")
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	return records, nil
}

// Similar returns the k most similar past records, scored by cosine
// similarity over the feature vector. Non-positive scores are dropped.
func (l *Log) Similar(current Record, k int) ([]Match, error) {
	records, err := l.Load()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	currentVec := featureVector(current)
	matches := make([]Match, 0, len(records))
	for _, rec := range records {
		matches = append(matches, Match{
			Record:     rec,
			Similarity: cosine(currentVec, featureVector(rec)),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	filtered := matches[:0]
	for _, m := range matches {
		if m.Similarity > 0 {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// featureVector projects a record onto the fixed numeric axes used for
// similarity. Axis order is part of the on-disk contract with older logs.
func featureVector(rec Record) []float64 {
	return []float64{
		rec.SizeGB,
		rec.BandwidthMbps,
		rec.Efficiency,
		deref(rec.RTOHours),
		rec.TotalTimeHours,
		rec.EndToEndDowntimeHours,
		rec.RTOMissHours,
		rec.TotalCostUSD,
		rec.MonthlyStorageUSD,
		deref(rec.DowntimeCostPerHour),
		rec.EstimatedDowntimeLossUSD,
		deref(rec.IncidentFrequencyPerYear),
		deref(rec.PlanningHorizonYears),
		rec.ExpectedDowntimeLossUSD,
	}
}

func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
