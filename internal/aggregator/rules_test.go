package aggregator

import (
	"context"
	"testing"

	"redflag-aggregator/internal/types"
)

func mkFlag(module string, sev types.Severity, cat types.RiskCategory) types.RedFlag {
	return types.RedFlag{
		Module:       module,
		Severity:     sev,
		Title:        "t",
		Detail:       "d",
		RiskCategory: cat,
	}
}

func nFlags(n int, sev types.Severity, cat types.RiskCategory) []types.RedFlag {
	out := make([]types.RedFlag, n)
	for i := range out {
		out[i] = mkFlag("m", sev, cat)
	}
	return out
}

func TestGroupByCategory(t *testing.T) {
	flags := []types.RedFlag{
		mkFlag("a", types.SeverityRed, types.CategoryLeverage),
		mkFlag("b", types.SeverityYellow, types.CategoryLeverage),
		mkFlag("c", types.SeverityRed, types.CategoryLiquidity),
	}
	grouped := GroupByCategory(flags)
	if len(grouped[types.CategoryLeverage]) != 2 {
		t.Errorf("expected 2 leverage flags, got %d", len(grouped[types.CategoryLeverage]))
	}
	if len(grouped[types.CategoryLiquidity]) != 1 {
		t.Errorf("expected 1 liquidity flag, got %d", len(grouped[types.CategoryLiquidity]))
	}
}

func TestApplyPatternRulesAllSixCategoriesAlwaysPresent(t *testing.T) {
	out := ApplyPatternRules(context.Background(), nil)
	if len(out) != len(types.AllCategories) {
		t.Fatalf("expected %d categories, got %d", len(types.AllCategories), len(out))
	}
	for _, cat := range types.AllCategories {
		if out[cat] != types.RiskLow {
			t.Errorf("category %s should default to LOW, got %s", cat, out[cat])
		}
	}
}

func TestPatternRules(t *testing.T) {
	cases := []struct {
		name  string
		cat   types.RiskCategory
		flags []types.RedFlag
		want  types.CategoryRisk
	}{
		{"governance critical", types.CategoryGovernanceFraud, nFlags(1, types.SeverityCritical, types.CategoryGovernanceFraud), types.RiskVeryHigh},
		{"governance two reds", types.CategoryGovernanceFraud, nFlags(2, types.SeverityRed, types.CategoryGovernanceFraud), types.RiskHigh},
		{"governance one red", types.CategoryGovernanceFraud, nFlags(1, types.SeverityRed, types.CategoryGovernanceFraud), types.RiskLow},
		{"working capital three reds", types.CategoryWorkingCapital, nFlags(3, types.SeverityRed, types.CategoryWorkingCapital), types.RiskHigh},
		{"working capital four yellows", types.CategoryWorkingCapital, nFlags(4, types.SeverityYellow, types.CategoryWorkingCapital), types.RiskMedium},
		{"working capital three yellows", types.CategoryWorkingCapital, nFlags(3, types.SeverityYellow, types.CategoryWorkingCapital), types.RiskLow},
		{"leverage critical", types.CategoryLeverage, nFlags(1, types.SeverityCritical, types.CategoryLeverage), types.RiskVeryHigh},
		{"leverage two reds", types.CategoryLeverage, nFlags(2, types.SeverityRed, types.CategoryLeverage), types.RiskVeryHigh},
		{"leverage one red", types.CategoryLeverage, nFlags(1, types.SeverityRed, types.CategoryLeverage), types.RiskHigh},
		{"liquidity critical", types.CategoryLiquidity, nFlags(1, types.SeverityCritical, types.CategoryLiquidity), types.RiskVeryHigh},
		{"liquidity three reds", types.CategoryLiquidity, nFlags(3, types.SeverityRed, types.CategoryLiquidity), types.RiskHigh},
		{"liquidity one red", types.CategoryLiquidity, nFlags(1, types.SeverityRed, types.CategoryLiquidity), types.RiskMedium},
		{"liquidity two reds fall through", types.CategoryLiquidity, nFlags(2, types.SeverityRed, types.CategoryLiquidity), types.RiskLow},
		{"earnings critical", types.CategoryEarningsQuality, nFlags(1, types.SeverityCritical, types.CategoryEarningsQuality), types.RiskHigh},
		{"earnings two reds", types.CategoryEarningsQuality, nFlags(2, types.SeverityRed, types.CategoryEarningsQuality), types.RiskHigh},
		{"earnings one red", types.CategoryEarningsQuality, nFlags(1, types.SeverityRed, types.CategoryEarningsQuality), types.RiskMedium},
		{"asset utilization two reds", types.CategoryAssetUtilization, nFlags(2, types.SeverityRed, types.CategoryAssetUtilization), types.RiskHigh},
		{"asset utilization critical stays low", types.CategoryAssetUtilization, nFlags(1, types.SeverityCritical, types.CategoryAssetUtilization), types.RiskLow},
		{"greens are ignored", types.CategoryLeverage, nFlags(5, types.SeverityGreen, types.CategoryLeverage), types.RiskLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grouped := map[types.RiskCategory][]types.RedFlag{tc.cat: tc.flags}
			out := ApplyPatternRules(context.Background(), grouped)
			if out[tc.cat] != tc.want {
				t.Errorf("expected %s, got %s", tc.want, out[tc.cat])
			}
		})
	}
}
