package report

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// JSONReporter writes indented JSON.
type JSONReporter struct {
	Writer io.Writer
}

func (r *JSONReporter) Analysis(data Data) error {
	return r.write(data)
}

func (r *JSONReporter) Sensitivity(data SensitivityData) error {
	return r.write(data)
}

func (r *JSONReporter) Workloads(data WorkloadData) error {
	return r.write(data)
}

func (r *JSONReporter) Pricing(data PricingData) error {
	return r.write(data)
}

func (r *JSONReporter) write(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	out = append(out, '\n')
	if _, err := r.Writer.Write(out); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}
