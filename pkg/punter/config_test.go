package punter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 1.0, cfg.WeightMomentum+cfg.WeightForm+cfg.WeightTopBottom+cfg.WeightHomeAway, 1e-12)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FormThreshold = 1.0
	err := cfg.Validate()
	require.Error(t, err)
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "form_threshold", cerr.Field)

	cfg = DefaultConfig()
	cfg.WeightMomentum = 0.5
	err = cfg.Validate()
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "weights", cerr.Field)

	cfg = DefaultConfig()
	cfg.Stake = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MomentumDecay = 1.0
	assert.Error(t, cfg.Validate())
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "punter.yaml")
	yaml := "form_games: 8\nstake: 2.5\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.FormGames)
	assert.Equal(t, 2.5, cfg.Stake)
	// untouched keys keep their defaults
	assert.Equal(t, 0.40, cfg.WeightMomentum)
	assert.Equal(t, 3, cfg.TopN)
}

func TestLoadConfigRejectsInvalidOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "punter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weight_momentum: 0.9\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestWeightLookup(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0.40, cfg.Weight(StrategyMomentum))
	assert.Equal(t, 0.30, cfg.Weight(StrategyForm))
	assert.Equal(t, 0.20, cfg.Weight(StrategyTopBottom))
	assert.Equal(t, 0.10, cfg.Weight(StrategyHomeAway))
	assert.Equal(t, 0.0, cfg.Weight(StrategyWeighted))
}
