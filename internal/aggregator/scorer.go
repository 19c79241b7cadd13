package aggregator

import (
	"redflag-aggregator/internal/store"
	"redflag-aggregator/internal/types"
)

// BaselinePenalty computes the weighted penalty from severity tallies. The
// weights are tunable configuration; the order of scoring operations is not.
func BaselinePenalty(counts types.SeverityCounts, cfg *store.Config) int {
	return counts.Critical*cfg.Weight(types.SeverityCritical) +
		counts.Red*cfg.Weight(types.SeverityRed) +
		counts.Yellow*cfg.Weight(types.SeverityYellow)
}

// ApplyScenarioOverrides raises the penalty per the scenario override tables:
// max-based floors first, then unconditional additive amounts, which stack
// with the floors and with each other.
func ApplyScenarioOverrides(penalty int, scenarios map[types.Scenario]bool, cfg *store.Config) int {
	for s, floor := range cfg.Scenario.MaxOverrides {
		if scenarios[s] && penalty < floor {
			penalty = floor
		}
	}

	for s, add := range cfg.Scenario.AdditiveOverrides {
		if scenarios[s] {
			penalty += add
		}
	}

	return penalty
}

// ClampScore bounds the penalty to [0, max]; the result is the severity score.
func ClampScore(penalty int, cfg *store.Config) int {
	if penalty < 0 {
		return 0
	}
	if penalty > cfg.MaxSeverityScore {
		return cfg.MaxSeverityScore
	}
	return penalty
}

// DetermineScoreCap reports the strictest ceiling implied by the active
// scenarios, or nil when none applies. The cap is advisory: it is surfaced
// for external rating scales and never applied to the severity score itself.
func DetermineScoreCap(scenarios map[types.Scenario]bool, cfg *store.Config) *int {
	var strictest *int
	for s, c := range cfg.Scenario.ScoreCaps {
		if !scenarios[s] {
			continue
		}
		if strictest == nil || c < *strictest {
			v := c
			strictest = &v
		}
	}
	return strictest
}
