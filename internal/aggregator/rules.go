package aggregator

import (
	"context"

	"redflag-aggregator/internal/logger"
	"redflag-aggregator/internal/types"
)

// GroupByCategory partitions validated flags by their canonical category.
// The category field is used directly; no heuristic inference from title or
// detail text is permitted, so behavior stays auditable.
func GroupByCategory(flags []types.RedFlag) map[types.RiskCategory][]types.RedFlag {
	grouped := make(map[types.RiskCategory][]types.RedFlag)
	for _, f := range flags {
		grouped[f.RiskCategory] = append(grouped[f.RiskCategory], f)
	}
	return grouped
}

// patternRule converts one category's flag list into a qualitative rating.
// The error channel keeps the fail-safe path visible: a failing rule defaults
// its category to LOW instead of failing the whole aggregation.
type patternRule func(flags []types.RedFlag) (types.CategoryRisk, error)

// patternRules is the fixed dispatch table, one independent stateless rule
// per canonical category. Thresholds are design intent signed off by the
// domain owners; do not alter without sign-off.
var patternRules = map[types.RiskCategory]patternRule{
	types.CategoryGovernanceFraud:  governanceRule,
	types.CategoryWorkingCapital:   workingCapitalRule,
	types.CategoryLeverage:         leverageRule,
	types.CategoryLiquidity:        liquidityRule,
	types.CategoryEarningsQuality:  earningsRule,
	types.CategoryAssetUtilization: assetUtilizationRule,
}

func countBySeverity(flags []types.RedFlag, s types.Severity) int {
	n := 0
	for _, f := range flags {
		if f.Severity == s {
			n++
		}
	}
	return n
}

func governanceRule(flags []types.RedFlag) (types.CategoryRisk, error) {
	if countBySeverity(flags, types.SeverityCritical) > 0 {
		return types.RiskVeryHigh, nil
	}
	if countBySeverity(flags, types.SeverityRed) >= 2 {
		return types.RiskHigh, nil
	}
	return types.RiskLow, nil
}

func workingCapitalRule(flags []types.RedFlag) (types.CategoryRisk, error) {
	if countBySeverity(flags, types.SeverityRed) >= 3 {
		return types.RiskHigh, nil
	}
	if countBySeverity(flags, types.SeverityYellow) >= 4 {
		return types.RiskMedium, nil
	}
	return types.RiskLow, nil
}

func leverageRule(flags []types.RedFlag) (types.CategoryRisk, error) {
	if countBySeverity(flags, types.SeverityCritical) > 0 {
		return types.RiskVeryHigh, nil
	}
	switch red := countBySeverity(flags, types.SeverityRed); {
	case red >= 2:
		return types.RiskVeryHigh, nil
	case red == 1:
		return types.RiskHigh, nil
	}
	return types.RiskLow, nil
}

func liquidityRule(flags []types.RedFlag) (types.CategoryRisk, error) {
	if countBySeverity(flags, types.SeverityCritical) > 0 {
		return types.RiskVeryHigh, nil
	}
	switch red := countBySeverity(flags, types.SeverityRed); {
	case red >= 3:
		return types.RiskHigh, nil
	case red == 1:
		return types.RiskMedium, nil
	}
	return types.RiskLow, nil
}

func earningsRule(flags []types.RedFlag) (types.CategoryRisk, error) {
	// Criticals count at least as much as multiple red signals.
	if countBySeverity(flags, types.SeverityCritical) >= 1 {
		return types.RiskHigh, nil
	}
	switch red := countBySeverity(flags, types.SeverityRed); {
	case red >= 2:
		return types.RiskHigh, nil
	case red == 1:
		return types.RiskMedium, nil
	}
	return types.RiskLow, nil
}

func assetUtilizationRule(flags []types.RedFlag) (types.CategoryRisk, error) {
	if countBySeverity(flags, types.SeverityRed) >= 2 {
		return types.RiskHigh, nil
	}
	return types.RiskLow, nil
}

// ApplyPatternRules rates every canonical category. All six categories are
// always present in the output, defaulted to LOW when no flags exist or a
// rule fails.
func ApplyPatternRules(ctx context.Context, grouped map[types.RiskCategory][]types.RedFlag) map[types.RiskCategory]types.CategoryRisk {
	out := make(map[types.RiskCategory]types.CategoryRisk, len(types.AllCategories))
	for _, cat := range types.AllCategories {
		out[cat] = types.RiskLow
	}

	for cat, flags := range grouped {
		rule, ok := patternRules[cat]
		if !ok {
			continue
		}
		rating, err := rule(flags)
		if err != nil {
			logger.Warn(ctx, "Pattern rule failed, defaulting category to LOW",
				"category", string(cat), "error", err)
			out[cat] = types.RiskLow
			continue
		}
		out[cat] = rating
	}

	return out
}
