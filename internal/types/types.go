package types

import "fmt"

// Severity is the ordinal risk level of a single red flag.
// GREEN < YELLOW < RED < CRITICAL; the ordering is fixed and is never
// reinterpreted downstream.
type Severity string

const (
	SeverityGreen    Severity = "GREEN"
	SeverityYellow   Severity = "YELLOW"
	SeverityRed      Severity = "RED"
	SeverityCritical Severity = "CRITICAL"
)

// Rank returns the ordinal position of the severity (GREEN=0 .. CRITICAL=3).
func (s Severity) Rank() int {
	switch s {
	case SeverityGreen:
		return 0
	case SeverityYellow:
		return 1
	case SeverityRed:
		return 2
	case SeverityCritical:
		return 3
	}
	return -1
}

// ParseSeverity validates a raw severity string against the closed vocabulary.
func ParseSeverity(raw string) (Severity, error) {
	switch Severity(raw) {
	case SeverityGreen, SeverityYellow, SeverityRed, SeverityCritical:
		return Severity(raw), nil
	}
	return "", fmt.Errorf("unknown severity: %q", raw)
}

// RiskCategory is one of the six canonical buckets every red flag must
// belong to. Validation rejects anything outside this set; no inference
// from title/detail text is permitted.
type RiskCategory string

const (
	CategoryLiquidity        RiskCategory = "liquidity"
	CategoryLeverage         RiskCategory = "leverage"
	CategoryEarningsQuality  RiskCategory = "earnings_quality"
	CategoryWorkingCapital   RiskCategory = "working_capital"
	CategoryGovernanceFraud  RiskCategory = "governance_fraud"
	CategoryAssetUtilization RiskCategory = "asset_utilization"
)

// AllCategories lists the canonical taxonomy in declaration order.
var AllCategories = []RiskCategory{
	CategoryLiquidity,
	CategoryLeverage,
	CategoryEarningsQuality,
	CategoryWorkingCapital,
	CategoryGovernanceFraud,
	CategoryAssetUtilization,
}

// ParseRiskCategory validates a raw category string against the taxonomy.
func ParseRiskCategory(raw string) (RiskCategory, error) {
	for _, c := range AllCategories {
		if RiskCategory(raw) == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown risk_category: %q (must be one of: %s)", raw, categoryList())
}

func categoryList() string {
	out := ""
	for i, c := range AllCategories {
		if i > 0 {
			out += ", "
		}
		out += string(c)
	}
	return out
}

// DisplayName returns the analyst-facing theme name for a category.
func (c RiskCategory) DisplayName() string {
	switch c {
	case CategoryLiquidity:
		return "Liquidity Stress"
	case CategoryLeverage:
		return "Leverage & Debt Risk"
	case CategoryEarningsQuality:
		return "Earnings Quality Risk"
	case CategoryWorkingCapital:
		return "Working Capital Stress"
	case CategoryGovernanceFraud:
		return "Corporate Governance / Fraud Indicators"
	case CategoryAssetUtilization:
		return "Growth / Asset Utilization Risk"
	}
	return string(c)
}

// CategoryRisk is the qualitative per-category rating produced by the
// pattern-rule engine.
type CategoryRisk string

const (
	RiskLow      CategoryRisk = "LOW"
	RiskMedium   CategoryRisk = "MEDIUM"
	RiskHigh     CategoryRisk = "HIGH"
	RiskVeryHigh CategoryRisk = "VERY_HIGH"
)

// Elevated reports whether the rating is HIGH or VERY_HIGH.
func (r CategoryRisk) Elevated() bool {
	return r == RiskHigh || r == RiskVeryHigh
}

// Scenario names a cross-cutting structural risk pattern inferred from, or
// asserted over, the flag set as a whole.
type Scenario string

const (
	ScenarioZombie         Scenario = "zombie"
	ScenarioRPTFraud       Scenario = "rpt_fraud"
	ScenarioEvergreening   Scenario = "evergreening"
	ScenarioAssetStripping Scenario = "asset_stripping"
	ScenarioWindowDressing Scenario = "window_dressing"
)

// AllScenarios is the closed scenario set; unknown names in caller-supplied
// signals are ignored.
var AllScenarios = []Scenario{
	ScenarioZombie,
	ScenarioRPTFraud,
	ScenarioEvergreening,
	ScenarioAssetStripping,
	ScenarioWindowDressing,
}

// RedFlag is a single validated risk observation emitted by an upstream
// analysis module. Instances are immutable once created and consumed once.
type RedFlag struct {
	Module       string         `json:"module"`
	Severity     Severity       `json:"severity"`
	Title        string         `json:"title"`
	Detail       string         `json:"detail"`
	RiskCategory RiskCategory   `json:"risk_category"`
	Metric       string         `json:"metric,omitempty"`
	Value        any            `json:"value,omitempty"`
	Threshold    any            `json:"threshold,omitempty"`
	Period       string         `json:"period,omitempty"`
	Extra        map[string]any `json:"extra,omitempty"` // opaque extension data, not type-checked
}

// AggregationRequest is the single input contract of the engine. Flag records
// stay loosely typed until the validator coerces them.
type AggregationRequest struct {
	CompanyID       string          `json:"company_id"`
	ModuleRedFlags  map[string]any  `json:"module_red_flags"`
	ScenarioSignals map[string]bool `json:"scenario_signals,omitempty"`
}

// SeverityCounts tallies flags at the three penalized severities.
type SeverityCounts struct {
	Critical int `json:"critical"`
	Red      int `json:"red"`
	Yellow   int `json:"yellow"`
}

// CountSeverities tallies the penalized severities across a flag list.
func CountSeverities(flags []RedFlag) SeverityCounts {
	var c SeverityCounts
	for _, f := range flags {
		switch f.Severity {
		case SeverityCritical:
			c.Critical++
		case SeverityRed:
			c.Red++
		case SeverityYellow:
			c.Yellow++
		}
	}
	return c
}

// CriticalIssue is a triage entry for analysts. Metric/value/threshold are
// deliberately dropped; this list is not a machine-consumable alert.
type CriticalIssue struct {
	Module   string       `json:"module"`
	Category RiskCategory `json:"category"`
	Title    string       `json:"title"`
	Detail   string       `json:"detail"`
}

// AggregationResult is the complete company-level risk picture. It is created
// fresh per call; the engine holds no cross-call state.
type AggregationResult struct {
	CompanyID         string                        `json:"company_id"`
	SeverityScore     int                           `json:"severity_score"`
	RedFlagIndex      int                           `json:"red_flag_index"`
	Counts            SeverityCounts                `json:"counts"`
	CategoryRisks     map[RiskCategory]CategoryRisk `json:"category_risks"`
	Scenarios         map[Scenario]bool             `json:"scenarios"`
	ScoreCap          *int                          `json:"score_cap"`
	TopCriticalIssues []CriticalIssue               `json:"top_critical_issues"`
	Narrative         *string                       `json:"narrative"`
}
