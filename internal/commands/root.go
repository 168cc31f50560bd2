// Package commands wires the restorecost CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/rshade/restorecost/internal/logging"
)

var (
	verbose bool
	version string
	commit  string
	date    string
)

var rootCmd = &cobra.Command{
	Use:   "restorecost",
	Short: "Cold storage restore cost and RTO stress tester",
	Long: `restorecost estimates what restoring data out of a cold storage tier
actually costs and how long it takes, then checks the answer against your
recovery time objective. It can compare two tier/destination strategies,
sweep bandwidth and efficiency assumptions, and roll up monthly
backup/restore costs across workloads from a CSV.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init(verbose, envConfig().LogLevel)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(sensitivityCmd)
	rootCmd.AddCommand(workloadsCmd)
	rootCmd.AddCommand(pricingCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("restorecost %s (commit %s, built %s)\n", version, commit, date)
	},
}
