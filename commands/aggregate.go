package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"redflag-aggregator/internal/aggregator"
	"redflag-aggregator/internal/logger"
	"redflag-aggregator/internal/narrative"
	"redflag-aggregator/internal/store"
	"redflag-aggregator/internal/types"
	"redflag-aggregator/internal/ui"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Run one aggregation over a request payload",
	Long: `Reads an AggregationRequest JSON payload (company_id, module_red_flags,
optional scenario_signals), validates every flag against the contract, and
prints the aggregation result. Exits with code 2 when the severity score
crosses the configured alert threshold.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		inputPath, _ := cmd.Flags().GetString("input")
		format, _ := cmd.Flags().GetString("format")
		outputFile, _ := cmd.Flags().GetString("output")
		noNarrative, _ := cmd.Flags().GetBool("no-narrative")

		if inputPath == "" {
			fmt.Println("Error: --input is required")
			cmd.Usage()
			os.Exit(1)
		}

		cfg, err := store.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if noNarrative {
			cfg.Narrative.Enabled = false
		}

		if err := logger.Init(); err != nil {
			fmt.Printf("Error initializing logger: %v\n", err)
			os.Exit(1)
		}

		payload, err := os.ReadFile(inputPath)
		if err != nil {
			fmt.Printf("Error reading input: %v\n", err)
			os.Exit(1)
		}

		var req types.AggregationRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			fmt.Printf("Error parsing input: %v\n", err)
			os.Exit(1)
		}

		agg := aggregator.New(cfg, narrative.NewNarrator(cfg))

		ctx := context.Background()
		result, err := agg.Aggregate(ctx, req)
		if err != nil {
			fmt.Printf("Aggregation rejected: %v\n", err)
			os.Exit(1)
		}

		switch format {
		case "text":
			ui.PrintResult(result)
		case "json", "csv":
			reporter := aggregator.NewReporter("")
			content, err := reporter.GenerateReport(result, aggregator.ReportFormat(format))
			if err != nil {
				fmt.Printf("Error generating report: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(content)
		default:
			fmt.Printf("Unknown format: %s (expected text, json, or csv)\n", format)
			os.Exit(1)
		}

		if outputFile != "" {
			reporter := aggregator.NewReporter("")
			content, err := reporter.GenerateReport(result, reportFormatFor(format))
			if err == nil {
				err = os.WriteFile(outputFile, []byte(content), 0644)
			}
			if err != nil {
				fmt.Printf("Error saving report: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Report saved to: %s\n", outputFile)
		}

		if result.SeverityScore >= cfg.AlertThreshold {
			fmt.Printf("Severity score %d exceeds alert threshold %d. Review the critical issues.\n",
				result.SeverityScore, cfg.AlertThreshold)
			os.Exit(2)
		}
	},
}

// reportFormatFor maps the console format to a file format; terminal output
// saves as plain text.
func reportFormatFor(format string) aggregator.ReportFormat {
	switch format {
	case "json":
		return aggregator.FormatJSON
	case "csv":
		return aggregator.FormatCSV
	default:
		return aggregator.FormatText
	}
}

func init() {
	aggregateCmd.Flags().StringP("input", "i", "", "path to AggregationRequest JSON payload (required)")
	aggregateCmd.Flags().StringP("format", "f", "text", "output format: text, json, or csv")
	aggregateCmd.Flags().StringP("output", "o", "", "save report to file (optional)")
	aggregateCmd.Flags().Bool("no-narrative", false, "skip narrative generation")
	rootCmd.AddCommand(aggregateCmd)
}
