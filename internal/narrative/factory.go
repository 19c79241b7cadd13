package narrative

import (
	"redflag-aggregator/internal/interfaces"
	"redflag-aggregator/internal/narrative/claude"
	"redflag-aggregator/internal/narrative/deterministic"
	"redflag-aggregator/internal/narrative/openai"
	"redflag-aggregator/internal/store"
)

// NewNarrator returns the narrative backend selected by config. The
// deterministic builder is the default and also serves as the degradation
// target when a generative backend fails.
func NewNarrator(cfg *store.Config) interfaces.Narrator {
	switch cfg.Narrative.Provider {
	case "OPENAI":
		return openai.NewNarrator(cfg)
	case "CLAUDE":
		return claude.NewNarrator(cfg)
	default:
		return deterministic.NewBuilder()
	}
}
