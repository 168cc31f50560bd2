package workload

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Required column headers for the workload CSV. Column order is free; names
// are matched after trimming and lowercasing.
var requiredColumns = []string{
	"workload",
	"data_gb",
	"backup_frequency_per_month",
	"retention_months",
	"storage_rate_per_gb_month",
	"restore_gb_per_month",
	"restore_rate_per_gb",
}

// RowError reports a schema or data problem at a specific row and column.
// Row numbers are 1-based and count the header, matching what a spreadsheet
// shows.
type RowError struct {
	Row    int
	Column string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: %s", e.Row, e.Column, e.Reason)
}

// ReadCSV parses workload configs from CSV. The header must contain every
// required column; each data row must have a non-empty workload identifier
// and parseable, non-negative numbers in every numeric column. Output order
// matches input row order. A header with no data rows is a valid empty
// rollup.
func ReadCSV(r io.Reader) ([]Config, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	var configs []Config
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		cfg, err := parseRow(record, index, row)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func parseRow(record []string, index map[string]int, row int) (Config, error) {
	field := func(col string) (string, error) {
		i := index[col]
		if i >= len(record) {
			return "", &RowError{Row: row, Column: col, Reason: "value missing"}
		}
		return strings.TrimSpace(record[i]), nil
	}

	name, err := field("workload")
	if err != nil {
		return Config{}, err
	}
	if name == "" {
		return Config{}, &RowError{Row: row, Column: "workload", Reason: "identifier must be non-empty"}
	}

	cfg := Config{Workload: name}
	numeric := []struct {
		col string
		dst *float64
	}{
		{"data_gb", &cfg.DataGB},
		{"backup_frequency_per_month", &cfg.BackupFrequencyPerMonth},
		{"retention_months", &cfg.RetentionMonths},
		{"storage_rate_per_gb_month", &cfg.StorageRatePerGBMonth},
		{"restore_gb_per_month", &cfg.RestoreGBPerMonth},
		{"restore_rate_per_gb", &cfg.RestoreRatePerGB},
	}
	for _, n := range numeric {
		raw, err := field(n.col)
		if err != nil {
			return Config{}, err
		}
		if raw == "" {
			return Config{}, &RowError{Row: row, Column: n.col, Reason: "value must be non-empty"}
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, &RowError{Row: row, Column: n.col, Reason: fmt.Sprintf("cannot parse %q as a number", raw)}
		}
		if value < 0 {
			return Config{}, &RowError{Row: row, Column: n.col, Reason: fmt.Sprintf("must be >= 0, got %v", value)}
		}
		*n.dst = value
	}
	return cfg, nil
}
