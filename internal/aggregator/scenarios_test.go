package aggregator

import (
	"testing"

	"redflag-aggregator/internal/types"
)

func lowRisks() map[types.RiskCategory]types.CategoryRisk {
	out := make(map[types.RiskCategory]types.CategoryRisk)
	for _, c := range types.AllCategories {
		out[c] = types.RiskLow
	}
	return out
}

func TestDetectScenariosAllFalseByDefault(t *testing.T) {
	scenarios := DetectScenarios(nil, types.SeverityCounts{}, 0, lowRisks(), nil)
	if len(scenarios) != len(types.AllScenarios) {
		t.Fatalf("expected %d scenario keys, got %d", len(types.AllScenarios), len(scenarios))
	}
	for s, v := range scenarios {
		if v {
			t.Errorf("scenario %s should default to false", s)
		}
	}
}

func TestDetectScenariosMetricTokens(t *testing.T) {
	cases := []struct {
		metric string
		want   types.Scenario
	}{
		{"related_party", types.ScenarioRPTFraud},
		{"rpt", types.ScenarioRPTFraud},
		{"RPT_FRAUD", types.ScenarioRPTFraud}, // case-insensitive
		{"evergreening", types.ScenarioEvergreening},
		{"asset_stripping", types.ScenarioAssetStripping},
		{"window_dressing", types.ScenarioWindowDressing},
	}
	for _, tc := range cases {
		flag := mkFlag("m", types.SeverityYellow, types.CategoryLeverage)
		flag.Metric = tc.metric
		grouped := map[types.RiskCategory][]types.RedFlag{types.CategoryLeverage: {flag}}

		scenarios := DetectScenarios(grouped, types.SeverityCounts{Yellow: 1}, 5, lowRisks(), nil)
		if !scenarios[tc.want] {
			t.Errorf("metric %q should activate %s", tc.metric, tc.want)
		}
	}
}

func TestDetectScenariosRPTExtensionMarker(t *testing.T) {
	flag := mkFlag("governance", types.SeverityRed, types.CategoryGovernanceFraud)
	flag.Extra = map[string]any{"rpt": true}
	grouped := map[types.RiskCategory][]types.RedFlag{types.CategoryGovernanceFraud: {flag}}

	scenarios := DetectScenarios(grouped, types.SeverityCounts{Red: 1}, 10, lowRisks(), nil)
	if !scenarios[types.ScenarioRPTFraud] {
		t.Error("rpt extension marker should activate rpt_fraud")
	}
}

func TestDetectScenariosExplicitSignalSuppressesHeuristic(t *testing.T) {
	flag := mkFlag("governance", types.SeverityRed, types.CategoryGovernanceFraud)
	flag.Metric = "rpt_fraud"
	grouped := map[types.RiskCategory][]types.RedFlag{types.CategoryGovernanceFraud: {flag}}

	scenarios := DetectScenarios(grouped, types.SeverityCounts{Red: 1}, 10, lowRisks(),
		map[string]bool{"rpt_fraud": false})
	if scenarios[types.ScenarioRPTFraud] {
		t.Error("explicit false signal must suppress the metric heuristic")
	}
}

func TestDetectScenariosExplicitSignalAsserts(t *testing.T) {
	scenarios := DetectScenarios(nil, types.SeverityCounts{}, 0, lowRisks(),
		map[string]bool{"evergreening": true})
	if !scenarios[types.ScenarioEvergreening] {
		t.Error("explicit true signal must set the scenario")
	}
}

func TestDetectScenariosUnknownSignalIgnored(t *testing.T) {
	scenarios := DetectScenarios(nil, types.SeverityCounts{}, 0, lowRisks(),
		map[string]bool{"black_swan": true})
	if len(scenarios) != len(types.AllScenarios) {
		t.Errorf("unknown signal must not add a scenario key, got %d keys", len(scenarios))
	}
	if _, ok := scenarios[types.Scenario("black_swan")]; ok {
		t.Error("unknown scenario name must be ignored")
	}
}

func TestDetectScenariosZombie(t *testing.T) {
	risks := lowRisks()
	risks[types.CategoryLiquidity] = types.RiskHigh

	if s := DetectScenarios(nil, types.SeverityCounts{}, 60, risks, nil); !s[types.ScenarioZombie] {
		t.Error("penalty 60 with liquidity HIGH should activate zombie")
	}
	if s := DetectScenarios(nil, types.SeverityCounts{}, 59, risks, nil); s[types.ScenarioZombie] {
		t.Error("penalty below 60 must not activate zombie")
	}
	if s := DetectScenarios(nil, types.SeverityCounts{}, 80, lowRisks(), nil); s[types.ScenarioZombie] {
		t.Error("zombie needs liquidity or earnings stress, not penalty alone")
	}

	earn := lowRisks()
	earn[types.CategoryEarningsQuality] = types.RiskVeryHigh
	if s := DetectScenarios(nil, types.SeverityCounts{}, 70, earn, nil); !s[types.ScenarioZombie] {
		t.Error("earnings VERY_HIGH should satisfy the zombie condition")
	}
}

func TestDetectScenariosAssetStrippingHeuristic(t *testing.T) {
	risks := lowRisks()
	risks[types.CategoryAssetUtilization] = types.RiskHigh
	grouped := map[types.RiskCategory][]types.RedFlag{
		types.CategoryGovernanceFraud: {mkFlag("governance", types.SeverityCritical, types.CategoryGovernanceFraud)},
	}

	if s := DetectScenarios(grouped, types.SeverityCounts{Critical: 1}, 20, risks, nil); !s[types.ScenarioAssetStripping] {
		t.Error("asset utilization HIGH + governance CRITICAL should activate asset_stripping")
	}

	// Without the governance critical, the heuristic must not fire.
	if s := DetectScenarios(nil, types.SeverityCounts{}, 20, risks, nil); s[types.ScenarioAssetStripping] {
		t.Error("asset_stripping requires a governance CRITICAL flag")
	}

	// Explicit false wins over the heuristic.
	if s := DetectScenarios(grouped, types.SeverityCounts{Critical: 1}, 20, risks,
		map[string]bool{"asset_stripping": false}); s[types.ScenarioAssetStripping] {
		t.Error("explicit false must override the asset_stripping heuristic")
	}
}

func TestDetectScenariosWindowDressing(t *testing.T) {
	if s := DetectScenarios(nil, types.SeverityCounts{Yellow: 5}, 25, lowRisks(), nil); !s[types.ScenarioWindowDressing] {
		t.Error("five yellows and nothing worse should activate window_dressing")
	}
	if s := DetectScenarios(nil, types.SeverityCounts{Yellow: 5, Red: 1}, 35, lowRisks(), nil); s[types.ScenarioWindowDressing] {
		t.Error("any red must suppress window_dressing")
	}
	if s := DetectScenarios(nil, types.SeverityCounts{Yellow: 4}, 20, lowRisks(), nil); s[types.ScenarioWindowDressing] {
		t.Error("four yellows is below the window_dressing threshold")
	}
}
