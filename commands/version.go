package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the redflag aggregator version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("redflag v1.0.0")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
