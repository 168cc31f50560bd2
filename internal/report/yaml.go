package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLReporter writes YAML documents.
type YAMLReporter struct {
	Writer io.Writer
}

func (r *YAMLReporter) Analysis(data Data) error {
	return r.write(data)
}

func (r *YAMLReporter) Sensitivity(data SensitivityData) error {
	return r.write(data)
}

func (r *YAMLReporter) Workloads(data WorkloadData) error {
	return r.write(data)
}

func (r *YAMLReporter) Pricing(data PricingData) error {
	return r.write(data)
}

func (r *YAMLReporter) write(v any) error {
	enc := yaml.NewEncoder(r.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish YAML report: %w", err)
	}
	return nil
}
