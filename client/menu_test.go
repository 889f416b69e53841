package main

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mitosis-arcade/game"
	"mitosis-arcade/internal/scores"
)

func TestApplyConfigFields(t *testing.T) {
	base := game.DefaultConfig()
	cfg, err := applyConfigFields(base, []string{"3", "2", " 10 ", "5", "4"})
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.EnemySpeed)
	assert.Equal(t, 2, cfg.ObjectSpawnInterval)
	assert.Equal(t, 10, cfg.ObjectSplitTime)
	assert.Equal(t, 5, cfg.EnemyLifespan)
	assert.Equal(t, 4, cfg.ObjectMaxSplits)
	assert.Equal(t, base.Width, cfg.Width)
}

func TestApplyConfigFieldsRejects(t *testing.T) {
	base := game.DefaultConfig()

	_, err := applyConfigFields(base, []string{"x", "1", "1", "1", "1"})
	assert.ErrorContains(t, err, "Enemy speed")

	_, err = applyConfigFields(base, []string{"1", "0", "1", "1", "1"})
	assert.Error(t, err, "spawn interval must be positive")

	_, err = applyConfigFields(base, []string{"1"})
	assert.Error(t, err)
}

func TestConfigFieldsRoundTrip(t *testing.T) {
	base := game.DefaultConfig()
	fields := configFields(base)
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = strconv.Itoa(f.value)
	}
	cfg, err := applyConfigFields(base, values)
	require.NoError(t, err)
	assert.Equal(t, base, cfg)
}

func TestFormatHighscores(t *testing.T) {
	assert.Equal(t, "No scores yet", formatHighscores(nil))

	got := formatHighscores([]scores.Record{{Score: 50, Time: 12.346}, {Score: 10, Time: 3}})
	assert.Equal(t, " 1. Score: 50 - Time: 12.35s\n 2. Score: 10 - Time: 3.00s", got)
}
