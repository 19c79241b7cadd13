package aggregator

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"redflag-aggregator/internal/types"
)

// ReportFormat specifies the output format for aggregation reports
type ReportFormat string

const (
	FormatJSON ReportFormat = "json"
	FormatText ReportFormat = "text"
	FormatCSV  ReportFormat = "csv"
)

// Reporter renders an AggregationResult for analysts and optionally writes
// it to disk. Rendering never changes the result.
type Reporter struct {
	outputDir string
}

// NewReporter creates a new reporter
func NewReporter(outputDir string) *Reporter {
	return &Reporter{
		outputDir: outputDir,
	}
}

// GenerateReport renders the result in the specified format
func (r *Reporter) GenerateReport(result *types.AggregationResult, format ReportFormat) (string, error) {
	switch format {
	case FormatJSON:
		return r.generateJSONReport(result)
	case FormatText:
		return r.generateTextReport(result)
	case FormatCSV:
		return r.generateCSVReport(result)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// SaveReport writes the rendered report under the output directory
func (r *Reporter) SaveReport(result *types.AggregationResult, format ReportFormat) (string, error) {
	content, err := r.GenerateReport(result, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_redflags_%s.%s", result.CompanyID, timestamp, format)
	path := filepath.Join(r.outputDir, filename)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}

	return path, nil
}

func (r *Reporter) generateJSONReport(result *types.AggregationResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *Reporter) generateTextReport(result *types.AggregationResult) (string, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("RED FLAG AGGREGATION REPORT - %s\n", result.CompanyID))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Severity Score: %d/100\n", result.SeverityScore))
	sb.WriteString(fmt.Sprintf("Red Flag Index: %d\n", result.RedFlagIndex))
	if result.ScoreCap != nil {
		sb.WriteString(fmt.Sprintf("Advisory Score Cap: %d (not applied)\n", *result.ScoreCap))
	}
	sb.WriteString(fmt.Sprintf("Counts: critical=%d red=%d yellow=%d\n",
		result.Counts.Critical, result.Counts.Red, result.Counts.Yellow))
	sb.WriteString("\n")

	sb.WriteString("CATEGORY RISKS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, cat := range types.AllCategories {
		sb.WriteString(fmt.Sprintf("%-20s %-10s %s\n", cat, result.CategoryRisks[cat], cat.DisplayName()))
	}

	var active []string
	for _, s := range types.AllScenarios {
		if result.Scenarios[s] {
			active = append(active, string(s))
		}
	}
	sb.WriteString("\nSCENARIOS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if len(active) > 0 {
		sb.WriteString(strings.Join(active, ", ") + "\n")
	} else {
		sb.WriteString("None detected.\n")
	}

	sb.WriteString(fmt.Sprintf("\nTOP CRITICAL ISSUES: %d\n", len(result.TopCriticalIssues)))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if len(result.TopCriticalIssues) > 0 {
		for i, issue := range result.TopCriticalIssues {
			sb.WriteString(fmt.Sprintf("\n%d. [%s] %s\n", i+1, issue.Category, issue.Title))
			sb.WriteString(fmt.Sprintf("   Module: %s\n", issue.Module))
			sb.WriteString(fmt.Sprintf("   %s\n", issue.Detail))
		}
	} else {
		sb.WriteString("\nNo critical issues.\n")
	}

	if result.Narrative != nil {
		sb.WriteString("\nNARRATIVE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(*result.Narrative + "\n")
	}

	sb.WriteString("\n" + strings.Repeat("=", 80) + "\n")
	sb.WriteString("END OF REPORT\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	return sb.String(), nil
}

func (r *Reporter) generateCSVReport(result *types.AggregationResult) (string, error) {
	scoreCap := ""
	if result.ScoreCap != nil {
		scoreCap = strconv.Itoa(*result.ScoreCap)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	records := [][]string{
		{"CompanyID", "SeverityScore", "RedFlagIndex", "ScoreCap", "CriticalCount", "RedCount", "YellowCount"},
		{
			result.CompanyID,
			strconv.Itoa(result.SeverityScore),
			strconv.Itoa(result.RedFlagIndex),
			scoreCap,
			strconv.Itoa(result.Counts.Critical),
			strconv.Itoa(result.Counts.Red),
			strconv.Itoa(result.Counts.Yellow),
		},
	}
	if err := w.WriteAll(records); err != nil {
		return "", err
	}
	sb.WriteString("\n")

	issues := [][]string{{"Module", "Category", "Title", "Detail"}}
	for _, issue := range result.TopCriticalIssues {
		issues = append(issues, []string{issue.Module, string(issue.Category), issue.Title, issue.Detail})
	}
	if err := w.WriteAll(issues); err != nil {
		return "", err
	}

	return sb.String(), nil
}
