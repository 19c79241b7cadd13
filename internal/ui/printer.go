package ui

import (
	"fmt"

	"github.com/pterm/pterm"

	"redflag-aggregator/internal/types"
)

// PrintResult renders an aggregation result to the terminal.
func PrintResult(result *types.AggregationResult) {
	pterm.DefaultSection.Printf("Red Flag Aggregation - %s", result.CompanyID)

	scoreLine := fmt.Sprintf("Severity Score: %d/100", result.SeverityScore)
	switch {
	case result.SeverityScore >= 75:
		pterm.Error.Println(scoreLine)
	case result.SeverityScore >= 40:
		pterm.Warning.Println(scoreLine)
	default:
		pterm.Success.Println(scoreLine)
	}

	if result.ScoreCap != nil {
		pterm.Info.Printf("Advisory score cap: %d (not applied to the score above)\n", *result.ScoreCap)
	}

	printCategoryRisks(result)
	printScenarios(result)
	printCriticalIssues(result.TopCriticalIssues)

	if result.Narrative != nil {
		pterm.DefaultSection.WithLevel(2).Println("Narrative")
		pterm.Println(*result.Narrative)
	}
}

func printCategoryRisks(result *types.AggregationResult) {
	data := [][]string{
		{"Category", "Rating", "Theme"},
	}
	for _, cat := range types.AllCategories {
		data = append(data, []string{
			string(cat),
			riskStyle(result.CategoryRisks[cat]),
			cat.DisplayName(),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printScenarios(result *types.AggregationResult) {
	var active []string
	for _, s := range types.AllScenarios {
		if result.Scenarios[s] {
			active = append(active, string(s))
		}
	}
	if len(active) == 0 {
		pterm.Success.Println("No structural risk scenarios detected.")
		return
	}
	for _, s := range active {
		pterm.Warning.Printf("Scenario active: %s\n", s)
	}
}

func printCriticalIssues(issues []types.CriticalIssue) {
	if len(issues) == 0 {
		return
	}

	pterm.Warning.Printf("Top critical issues (%d):\n\n", len(issues))

	data := [][]string{
		{"Category", "Module", "Title", "Detail"},
	}
	for _, issue := range issues {
		data = append(data, []string{
			pterm.FgRed.Sprint(issue.Category),
			pterm.FgCyan.Sprint(issue.Module),
			issue.Title,
			issue.Detail,
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func riskStyle(r types.CategoryRisk) string {
	switch r {
	case types.RiskVeryHigh:
		return pterm.FgRed.Sprint("VERY_HIGH")
	case types.RiskHigh:
		return pterm.FgRed.Sprint("HIGH")
	case types.RiskMedium:
		return pterm.FgYellow.Sprint("MEDIUM")
	default:
		return pterm.FgGreen.Sprint("LOW")
	}
}
