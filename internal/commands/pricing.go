package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/restorecost/internal/report"
)

var pricingFlags struct {
	pricingFile string
	format      string
}

var pricingCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Print the tier pricing table",
	RunE:  runPricingList,
}

func init() {
	pricingCmd.Flags().StringVar(&pricingFlags.pricingFile, "pricing-file", "", "YAML file with tier pricing overrides")
	pricingCmd.Flags().StringVarP(&pricingFlags.format, "output", "o", "text", "Output format: text, json, yaml")
}

func runPricingList(_ *cobra.Command, _ []string) error {
	table, err := loadPricing(pricingFlags.pricingFile)
	if err != nil {
		return err
	}

	reporter, err := report.New(pricingFlags.format, os.Stdout)
	if err != nil {
		return err
	}
	return reporter.Pricing(report.PricingData{
		Tool:    "restorecost",
		Version: version,
		Tiers:   table.Records(),
	})
}
