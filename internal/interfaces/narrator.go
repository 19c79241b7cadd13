package interfaces

import (
	"context"

	"redflag-aggregator/internal/types"
)

// NarrativeInput is the read-only view of an aggregation a narrator may
// summarize. A narrator must never alter the numeric result; the structured
// outputs stay authoritative no matter which backend produces the text.
type NarrativeInput struct {
	CompanyID     string
	Flags         []types.RedFlag
	CategoryRisks map[types.RiskCategory]types.CategoryRisk
	Scenarios     map[types.Scenario]bool
	RedFlagIndex  int
}

// Narrator produces the explanatory summary attached to an aggregation
// result. Implementations backed by a generative model must respect the
// caller's context deadline; failures degrade to the deterministic builder
// and never escalate to an aggregation error.
type Narrator interface {
	Narrate(ctx context.Context, in NarrativeInput) (string, error)
}
