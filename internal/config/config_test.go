package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arcade.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, "server/highscores.json", cfg.Server.Path)
	assert.Equal(t, 2, cfg.Game.EnemySpeed)
	assert.Equal(t, 1, cfg.Game.ObjectSpawnInterval)
	assert.Equal(t, 15, cfg.Game.ObjectSplitTime)
	assert.Equal(t, 15, cfg.Game.EnemyLifespan)
	assert.Equal(t, 2, cfg.Game.ObjectMaxSplits)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
server:
  store: sqlite
  path: /tmp/scores.db
client:
  hold_window: 150ms
game:
  enemy_speed: 4
  object_max_splits: 3
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Server.Store)
	assert.Equal(t, "/tmp/scores.db", cfg.Server.Path)
	assert.Equal(t, 150*time.Millisecond, cfg.Client.HoldWindow)
	assert.Equal(t, 4, cfg.Game.EnemySpeed)
	assert.Equal(t, 3, cfg.Game.ObjectMaxSplits)
	assert.Equal(t, 15, cfg.Game.ObjectSplitTime, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 800.0, cfg.Game.Width)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "server:\n  nope: 1\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default().Server, cfg.Server)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "server:\n  addr: \":9000\"\n")
	t.Setenv("PORT", "4321")
	t.Setenv("ARCADE_JWT_SECRET", "s3cret")
	t.Setenv("ARCADE_ENEMY_LIFESPAN", "5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":4321", cfg.Server.Addr)
	assert.Equal(t, "s3cret", cfg.Server.JWTSecret)
	assert.Equal(t, "s3cret", cfg.Client.JWTSecret)
	assert.Equal(t, 5, cfg.Game.EnemyLifespan)
}

func TestApplyEnvBadInteger(t *testing.T) {
	cfg := Default()
	env := map[string]string{"ARCADE_ENEMY_SPEED": "fast"}
	err := applyEnv(&cfg, func(k string) string { return env[k] })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ARCADE_ENEMY_SPEED")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.Store = "redis"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Game.ObjectSpawnInterval = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Log.Level = "loud"
	assert.Error(t, cfg.Validate())
}
