package deterministic

import (
	"context"
	"fmt"
	"strings"

	"redflag-aggregator/internal/interfaces"
	"redflag-aggregator/internal/types"
)

// maxCriticalLines bounds how many critical issues the summary spells out.
const maxCriticalLines = 5

// Builder is the default narrative backend: a pure function of the
// aggregation outputs, producing an analyst-style summary with no I/O.
type Builder struct{}

// NewBuilder returns the deterministic narrative builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Narrate renders the summary. It never fails and never consults the context;
// it exists so a generative backend can be swapped in without touching the
// numeric pipeline.
func (b *Builder) Narrate(_ context.Context, in interfaces.NarrativeInput) (string, error) {
	var parts []string
	parts = append(parts, fmt.Sprintf("Company %s - Red Flag Index: %d.", in.CompanyID, in.RedFlagIndex))

	var highCats []string
	for _, cat := range types.AllCategories {
		if in.CategoryRisks[cat].Elevated() {
			highCats = append(highCats, string(cat))
		}
	}
	if len(highCats) > 0 {
		parts = append(parts, "High-risk themes: "+strings.Join(highCats, ", ")+".")
	} else {
		parts = append(parts, "No single category shows systemic high risk.")
	}

	var active []string
	for _, s := range types.AllScenarios {
		if in.Scenarios[s] {
			active = append(active, string(s))
		}
	}
	if len(active) > 0 {
		parts = append(parts, "Detected scenarios: "+strings.Join(active, ", ")+".")
	}

	var criticals []types.RedFlag
	for _, f := range in.Flags {
		if f.Severity == types.SeverityCritical {
			criticals = append(criticals, f)
		}
	}
	if len(criticals) > 0 {
		parts = append(parts, "Critical issues:")
		for i, f := range criticals {
			if i == maxCriticalLines {
				break
			}
			parts = append(parts, fmt.Sprintf("- %s (%s): %s - %s",
				f.RiskCategory.DisplayName(), f.Module, f.Title, f.Detail))
		}
	}

	parts = append(parts, "This summary is explanatory only. Numbers and caps are authoritative outputs.")
	return strings.Join(parts, "\n"), nil
}
