package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "redflag",
	Short: "Aggregates module red flags into a company-level risk picture",
	Long: `redflag consumes the red-flag output of the financial analysis modules
(leverage, liquidity, earnings quality, working capital, governance, asset
utilization) and produces a bounded severity score, per-category risk ratings,
structural risk scenarios, top critical issues, and an explanatory narrative.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "config.yaml", "path to config file")
}
