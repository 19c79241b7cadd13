package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"redflag-aggregator/internal/types"
)

// Config carries every tunable of the aggregation engine. Scoring weights and
// scenario override tables are configuration data, not control flow: tuning
// them must never require touching the scorer.
type Config struct {
	// Weight fields are pointers so an explicit zero in the config is
	// distinguishable from an absent field: only absent fields are defaulted.
	SeverityWeights struct {
		Green    *int `yaml:"green"`
		Yellow   *int `yaml:"yellow"`
		Red      *int `yaml:"red"`
		Critical *int `yaml:"critical"`
	} `yaml:"severity_weights"`

	Scenario struct {
		// MaxOverrides raises the penalty to at least the given floor when the
		// scenario is active.
		MaxOverrides map[types.Scenario]int `yaml:"max_overrides"`
		// AdditiveOverrides add unconditionally and stack with the floors.
		AdditiveOverrides map[types.Scenario]int `yaml:"additive_overrides"`
		// ScoreCaps are advisory ceilings for external rating scales; the
		// strictest active cap is reported, never self-applied.
		ScoreCaps map[types.Scenario]int `yaml:"score_caps"`
	} `yaml:"scenario"`

	MaxSeverityScore int      `yaml:"max_severity_score"`
	CategoryPriority []string `yaml:"category_priority"`
	TopCriticalLimit int      `yaml:"top_critical_limit"`
	AlertThreshold   int      `yaml:"alert_threshold"`

	Narrative struct {
		Enabled        bool    `yaml:"enabled"`
		Provider       string  `yaml:"provider"` // DETERMINISTIC, OPENAI, or CLAUDE
		Model          string  `yaml:"model"`
		MaxTokens      int     `yaml:"max_tokens"`
		Temperature    float32 `yaml:"temperature"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
	} `yaml:"narrative"`
}

// Weight returns the penalty weight configured for a severity.
func (c *Config) Weight(s types.Severity) int {
	var w *int
	switch s {
	case types.SeverityCritical:
		w = c.SeverityWeights.Critical
	case types.SeverityRed:
		w = c.SeverityWeights.Red
	case types.SeverityYellow:
		w = c.SeverityWeights.Yellow
	default:
		w = c.SeverityWeights.Green
	}
	if w == nil {
		return 0
	}
	return *w
}

func (c *Config) Validate() error {
	for _, s := range []types.Severity{types.SeverityGreen, types.SeverityYellow, types.SeverityRed, types.SeverityCritical} {
		if c.Weight(s) < 0 {
			return fmt.Errorf("severity weights must be non-negative")
		}
	}
	if c.MaxSeverityScore <= 0 {
		return fmt.Errorf("max_severity_score must be positive, got %d", c.MaxSeverityScore)
	}
	if c.TopCriticalLimit <= 0 {
		return fmt.Errorf("top_critical_limit must be positive, got %d", c.TopCriticalLimit)
	}
	for _, raw := range c.CategoryPriority {
		if _, err := types.ParseRiskCategory(raw); err != nil {
			return fmt.Errorf("invalid category_priority entry: %w", err)
		}
	}
	switch c.Narrative.Provider {
	case "DETERMINISTIC", "OPENAI", "CLAUDE":
	default:
		return fmt.Errorf("narrative.provider must be 'DETERMINISTIC', 'OPENAI', or 'CLAUDE', got '%s'", c.Narrative.Provider)
	}
	return nil
}

// Default returns the engine configuration with the standard scoring tables.
// Library callers that do not load a config file should start from this.
func Default() *Config {
	var c Config
	applyDefaults(&c)
	return &c
}

func intPtr(v int) *int {
	return &v
}

func applyDefaults(c *Config) {
	w := &c.SeverityWeights
	if w.Green == nil {
		w.Green = intPtr(0)
	}
	if w.Yellow == nil {
		w.Yellow = intPtr(5)
	}
	if w.Red == nil {
		w.Red = intPtr(10)
	}
	if w.Critical == nil {
		w.Critical = intPtr(20)
	}
	if c.Scenario.MaxOverrides == nil {
		c.Scenario.MaxOverrides = map[types.Scenario]int{
			types.ScenarioZombie:   60,
			types.ScenarioRPTFraud: 70,
		}
	}
	if c.Scenario.AdditiveOverrides == nil {
		c.Scenario.AdditiveOverrides = map[types.Scenario]int{
			types.ScenarioEvergreening:   15,
			types.ScenarioAssetStripping: 20,
		}
	}
	if c.Scenario.ScoreCaps == nil {
		c.Scenario.ScoreCaps = map[types.Scenario]int{
			types.ScenarioRPTFraud:     30,
			types.ScenarioZombie:       40,
			types.ScenarioEvergreening: 50,
		}
	}
	if c.MaxSeverityScore == 0 {
		c.MaxSeverityScore = 100
	}
	if len(c.CategoryPriority) == 0 {
		c.CategoryPriority = []string{
			"governance_fraud",
			"leverage",
			"working_capital",
			"earnings_quality",
			"asset_utilization",
			"liquidity",
		}
	}
	if c.TopCriticalLimit == 0 {
		c.TopCriticalLimit = 10
	}
	if c.AlertThreshold == 0 {
		c.AlertThreshold = 60
	}
	if c.Narrative.Provider == "" {
		c.Narrative.Enabled = true
		c.Narrative.Provider = "DETERMINISTIC"
	}
	if c.Narrative.MaxTokens == 0 {
		c.Narrative.MaxTokens = 512
	}
	if c.Narrative.TimeoutSeconds == 0 {
		c.Narrative.TimeoutSeconds = 20
	}
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
