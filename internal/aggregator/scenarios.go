package aggregator

import (
	"strings"

	"redflag-aggregator/internal/types"
)

// metricTokens maps a case-insensitive flag metric to the scenario it
// identifies. These are explicit upstream signals; fraud is never inferred
// from governance severity alone.
var metricTokens = map[string]types.Scenario{
	"related_party":   types.ScenarioRPTFraud,
	"rpt":             types.ScenarioRPTFraud,
	"rpt_fraud":       types.ScenarioRPTFraud,
	"evergreening":    types.ScenarioEvergreening,
	"asset_stripping": types.ScenarioAssetStripping,
	"window_dressing": types.ScenarioWindowDressing,
}

// DetectScenarios resolves the five structural risk scenarios. Caller-supplied
// explicit signals are authoritative and final per scenario; heuristics are a
// conservative fallback applied only where no explicit signal exists.
// penalty is the running baseline penalty before scenario overrides.
func DetectScenarios(
	grouped map[types.RiskCategory][]types.RedFlag,
	counts types.SeverityCounts,
	penalty int,
	categoryRisks map[types.RiskCategory]types.CategoryRisk,
	explicit map[string]bool,
) map[types.Scenario]bool {
	scenarios := make(map[types.Scenario]bool, len(types.AllScenarios))
	for _, s := range types.AllScenarios {
		scenarios[s] = false
	}

	// Explicit signals first. Unknown scenario names are ignored.
	asserted := make(map[types.Scenario]bool)
	for name, v := range explicit {
		s := types.Scenario(name)
		if _, known := scenarios[s]; known {
			scenarios[s] = v
			asserted[s] = true
		}
	}

	// Metric-token scan across all flags, plus the rpt extension marker.
	for _, flags := range grouped {
		for _, f := range flags {
			if s, ok := metricTokens[strings.ToLower(f.Metric)]; ok && !asserted[s] {
				scenarios[s] = true
			}
			if rpt, ok := f.Extra["rpt"].(bool); ok && rpt && !asserted[types.ScenarioRPTFraud] {
				scenarios[types.ScenarioRPTFraud] = true
			}
		}
	}

	// Zombie: sustained high penalty combined with liquidity or earnings stress.
	if !asserted[types.ScenarioZombie] {
		liq := categoryRisks[types.CategoryLiquidity]
		earn := categoryRisks[types.CategoryEarningsQuality]
		if penalty >= 60 && (liq.Elevated() || earn.Elevated()) {
			scenarios[types.ScenarioZombie] = true
		}
	}

	// Asset stripping: asset utilization stressed while governance shows a
	// critical flag.
	if !asserted[types.ScenarioAssetStripping] {
		if categoryRisks[types.CategoryAssetUtilization].Elevated() {
			for _, f := range grouped[types.CategoryGovernanceFraud] {
				if f.Severity == types.SeverityCritical {
					scenarios[types.ScenarioAssetStripping] = true
					break
				}
			}
		}
	}

	// Window dressing: many yellows with nothing worse.
	if !asserted[types.ScenarioWindowDressing] {
		if counts.Yellow >= 5 && counts.Red == 0 && counts.Critical == 0 {
			scenarios[types.ScenarioWindowDressing] = true
		}
	}

	return scenarios
}
