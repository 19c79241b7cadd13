package aggregator

import (
	"context"
	"errors"
	"time"

	"redflag-aggregator/internal/interfaces"
	"redflag-aggregator/internal/logger"
	"redflag-aggregator/internal/narrative/deterministic"
	"redflag-aggregator/internal/store"
	"redflag-aggregator/internal/types"
)

// Aggregator composes heterogeneous module red flags into one company-level
// risk picture. It holds no cross-call state: every call builds its result
// from scratch, so concurrent calls need no locking.
type Aggregator struct {
	cfg      *store.Config
	narrator interfaces.Narrator
	fallback *deterministic.Builder
}

// New creates an aggregator. A nil config gets the standard scoring tables;
// a nil narrator means the deterministic builder is used directly.
func New(cfg *store.Config, narrator interfaces.Narrator) *Aggregator {
	if cfg == nil {
		cfg = store.Default()
	}
	return &Aggregator{
		cfg:      cfg,
		narrator: narrator,
		fallback: deterministic.NewBuilder(),
	}
}

// Aggregate runs the full pipeline: validation, grouping, per-category
// rating, scenario resolution, scoring, critical-issue extraction, and
// narrative. Failure is only possible at the validation boundary; once the
// flag set is typed, every later stage is total.
func (a *Aggregator) Aggregate(ctx context.Context, req types.AggregationRequest) (*types.AggregationResult, error) {
	op := logger.StartOperation(ctx, "aggregate-red-flags", "company_id", req.CompanyID)
	ctx = op.GetContext()

	flags, err := validateRequest(req)
	if err != nil {
		moduleKey := ""
		var aggErr *AggregationError
		if errors.As(err, &aggErr) {
			moduleKey = aggErr.ModuleKey
		}
		logger.Rejected(ctx, req.CompanyID, moduleKey, err)
		op.EndWithError(err)
		return nil, err
	}

	counts := types.CountSeverities(flags)
	penalty := BaselinePenalty(counts, a.cfg)

	grouped := GroupByCategory(flags)
	categoryRisks := ApplyPatternRules(ctx, grouped)

	// Scenario detection sees the baseline penalty, before overrides.
	scenarios := DetectScenarios(grouped, counts, penalty, categoryRisks, req.ScenarioSignals)

	penalty = ApplyScenarioOverrides(penalty, scenarios, a.cfg)
	score := ClampScore(penalty, a.cfg)

	// The cap is reported, never applied: callers maintaining an independent
	// rating scale clamp with it themselves, and the two numbers disagreeing
	// is itself a signal worth surfacing.
	scoreCap := DetermineScoreCap(scenarios, a.cfg)

	topCritical := ExtractTopCritical(flags, a.cfg)

	result := &types.AggregationResult{
		CompanyID:     req.CompanyID,
		SeverityScore: score,
		// Identical to the severity score today, but a separately named
		// output: downstream consumers may redefine it independently.
		RedFlagIndex:      score,
		Counts:            counts,
		CategoryRisks:     categoryRisks,
		Scenarios:         scenarios,
		ScoreCap:          scoreCap,
		TopCriticalIssues: topCritical,
	}

	if a.cfg.Narrative.Enabled {
		text := a.narrate(ctx, interfaces.NarrativeInput{
			CompanyID:     req.CompanyID,
			Flags:         flags,
			CategoryRisks: categoryRisks,
			Scenarios:     scenarios,
			RedFlagIndex:  result.RedFlagIndex,
		})
		if text != "" {
			result.Narrative = &text
		}
	}

	activeScenarios := 0
	for _, v := range scenarios {
		if v {
			activeScenarios++
		}
	}
	logger.Aggregation(ctx, req.CompanyID, score, len(flags), activeScenarios)
	op.End("severity_score", score, "flag_count", len(flags))

	return result, nil
}

// narrate runs the configured backend behind a timeout and degrades to the
// deterministic builder on any failure. Narrative problems never escalate to
// an aggregation error; numeric outputs must not depend on a text service.
func (a *Aggregator) narrate(ctx context.Context, in interfaces.NarrativeInput) string {
	n := a.narrator
	if n == nil {
		n = a.fallback
	}

	nctx, cancel := context.WithTimeout(ctx, time.Duration(a.cfg.Narrative.TimeoutSeconds)*time.Second)
	defer cancel()

	text, err := n.Narrate(nctx, in)
	if err == nil {
		return text
	}
	logger.Warn(ctx, "Narrative backend failed, degrading to deterministic builder", "error", err)

	text, err = a.fallback.Narrate(ctx, in)
	if err != nil {
		return ""
	}
	return text
}
