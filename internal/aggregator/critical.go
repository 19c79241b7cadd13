package aggregator

import (
	"sort"

	"redflag-aggregator/internal/store"
	"redflag-aggregator/internal/types"
)

// ExtractTopCritical selects the CRITICAL flags, orders them by the fixed
// category priority (unknown categories last) with module name as the
// deterministic tiebreak, and truncates to the configured limit.
func ExtractTopCritical(flags []types.RedFlag, cfg *store.Config) []types.CriticalIssue {
	priority := make(map[types.RiskCategory]int, len(cfg.CategoryPriority))
	for i, raw := range cfg.CategoryPriority {
		priority[types.RiskCategory(raw)] = i
	}

	var critical []types.RedFlag
	for _, f := range flags {
		if f.Severity == types.SeverityCritical {
			critical = append(critical, f)
		}
	}

	rank := func(f types.RedFlag) int {
		if idx, ok := priority[f.RiskCategory]; ok {
			return idx
		}
		return len(cfg.CategoryPriority)
	}

	sort.SliceStable(critical, func(i, j int) bool {
		ri, rj := rank(critical[i]), rank(critical[j])
		if ri != rj {
			return ri < rj
		}
		return critical[i].Module < critical[j].Module
	})

	limit := cfg.TopCriticalLimit
	if len(critical) < limit {
		limit = len(critical)
	}

	issues := make([]types.CriticalIssue, 0, limit)
	for _, f := range critical[:limit] {
		issues = append(issues, types.CriticalIssue{
			Module:   f.Module,
			Category: f.RiskCategory,
			Title:    f.Title,
			Detail:   f.Detail,
		})
	}
	return issues
}
