package punter

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config contains all tunable parameters that influence recommendations and
// backtest results. This centralizes the magic numbers in one place.
type Config struct {
	// === STRATEGY PARAMETERS ===

	TopN            int     `yaml:"top_n"`            // teams counted as "top" in the previous season (default: 3)
	RelegationSpots int     `yaml:"relegation_spots"` // relegated teams per 20-team league (default: 3, scaled for other sizes)
	FormGames       int     `yaml:"form_games"`       // lookback window for the form strategy (default: 5)
	FormThreshold   float64 `yaml:"form_threshold"`   // minimum form score to back a team (default: 0.6)
	MomentumGames   int     `yaml:"momentum_games"`   // lookback window for the momentum strategy (default: 5)
	MomentumDraw    float64 `yaml:"momentum_draw"`    // momentum gap below which a draw is recommended (default: 0.1)
	MomentumDecay   float64 `yaml:"momentum_decay"`   // exponential decay applied per older result (default: 0.65)
	HomeConfidence  float64 `yaml:"home_confidence"`  // fixed confidence of the unconditional home baseline (default: 0.46)

	// === ADVISOR WEIGHTS ===
	// Ordered by historical ROI; must sum to 1.0. The advisor renormalizes
	// over the strategies that did not abstain on a given match.

	WeightMomentum  float64 `yaml:"weight_momentum"`   // default: 0.40
	WeightForm      float64 `yaml:"weight_form"`       // default: 0.30
	WeightTopBottom float64 `yaml:"weight_top_bottom"` // default: 0.20
	WeightHomeAway  float64 `yaml:"weight_home_away"`  // default: 0.10

	// === BACKTEST PARAMETERS ===

	Stake        float64 `yaml:"stake"`         // units staked per bet (default: 1.0)
	OddsProvider string  `yaml:"odds_provider"` // odds columns selected at ingestion (default: "bet365")
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	return &Config{
		TopN:            3,
		RelegationSpots: 3,
		FormGames:       5,
		FormThreshold:   0.6,
		MomentumGames:   5,
		MomentumDraw:    0.1,
		MomentumDecay:   0.65,
		HomeConfidence:  0.46,

		WeightMomentum:  0.40,
		WeightForm:      0.30,
		WeightTopBottom: 0.20,
		WeightHomeAway:  0.10,

		Stake:        1.0,
		OddsProvider: "bet365",
	}
}

// LoadConfig reads a YAML file over the defaults. Missing keys keep their
// default values; the result is validated before being returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures all configuration values are within usable ranges.
// Any failure here is fatal before a run starts.
func (c *Config) Validate() error {
	if c.TopN <= 0 {
		return &ConfigurationError{Field: "top_n", Reason: fmt.Sprintf("must be positive, got %d", c.TopN)}
	}
	if c.RelegationSpots <= 0 {
		return &ConfigurationError{Field: "relegation_spots", Reason: fmt.Sprintf("must be positive, got %d", c.RelegationSpots)}
	}
	if c.FormGames <= 0 {
		return &ConfigurationError{Field: "form_games", Reason: fmt.Sprintf("must be positive, got %d", c.FormGames)}
	}
	if c.FormThreshold < 0 || c.FormThreshold >= 1 {
		return &ConfigurationError{Field: "form_threshold", Reason: fmt.Sprintf("must be in [0,1), got %f", c.FormThreshold)}
	}
	if c.MomentumGames <= 0 {
		return &ConfigurationError{Field: "momentum_games", Reason: fmt.Sprintf("must be positive, got %d", c.MomentumGames)}
	}
	if c.MomentumDraw <= 0 || c.MomentumDraw > 2 {
		return &ConfigurationError{Field: "momentum_draw", Reason: fmt.Sprintf("must be in (0,2], got %f", c.MomentumDraw)}
	}
	if c.MomentumDecay <= 0 || c.MomentumDecay >= 1 {
		return &ConfigurationError{Field: "momentum_decay", Reason: fmt.Sprintf("must be in (0,1), got %f", c.MomentumDecay)}
	}
	if c.HomeConfidence < 0 || c.HomeConfidence > 1 {
		return &ConfigurationError{Field: "home_confidence", Reason: fmt.Sprintf("must be in [0,1], got %f", c.HomeConfidence)}
	}
	weights := []struct {
		name  string
		value float64
	}{
		{"weight_momentum", c.WeightMomentum},
		{"weight_form", c.WeightForm},
		{"weight_top_bottom", c.WeightTopBottom},
		{"weight_home_away", c.WeightHomeAway},
	}
	sum := 0.0
	for _, w := range weights {
		if w.value < 0 {
			return &ConfigurationError{Field: w.name, Reason: fmt.Sprintf("must not be negative, got %f", w.value)}
		}
		sum += w.value
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return &ConfigurationError{Field: "weights", Reason: fmt.Sprintf("must sum to 1.0, got %f", sum)}
	}
	if c.Stake <= 0 {
		return &ConfigurationError{Field: "stake", Reason: fmt.Sprintf("must be positive, got %f", c.Stake)}
	}
	return nil
}

// Weight returns the advisor weight for the given strategy
func (c *Config) Weight(id StrategyID) float64 {
	switch id {
	case StrategyMomentum:
		return c.WeightMomentum
	case StrategyForm:
		return c.WeightForm
	case StrategyTopBottom:
		return c.WeightTopBottom
	case StrategyHomeAway:
		return c.WeightHomeAway
	default:
		return 0
	}
}
