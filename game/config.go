package game

import (
	"fmt"
	"time"
)

const (
	SurfaceWidth  = 800.0
	SurfaceHeight = 600.0

	EnemySpawnEvery = 2 * time.Second
	HUDRefreshEvery = time.Second
	FrameQuantumMs  = 1000.0 / 60.0 // split countdown per frame, assumes 60Hz
)

// Config holds the session-scoped tuning knobs. Values apply to entities
// spawned after they are set; nothing here is persisted.
type Config struct {
	EnemySpeed          int `yaml:"enemy_speed" json:"enemySpeed"`
	ObjectSpawnInterval int `yaml:"object_spawn_interval" json:"objectSpawnInterval"` // seconds
	ObjectSplitTime     int `yaml:"object_split_time" json:"objectSplitTime"`         // seconds
	EnemyLifespan       int `yaml:"enemy_lifespan" json:"enemyLifespan"`             // seconds
	ObjectMaxSplits     int `yaml:"object_max_splits" json:"objectMaxSplits"`

	Width  float64 `yaml:"-" json:"-"`
	Height float64 `yaml:"-" json:"-"`
}

// DefaultConfig returns the stock tuning on an 800×600 surface
func DefaultConfig() Config {
	return Config{
		EnemySpeed:          2,
		ObjectSpawnInterval: 1,
		ObjectSplitTime:     15,
		EnemyLifespan:       15,
		ObjectMaxSplits:     2,
		Width:               SurfaceWidth,
		Height:              SurfaceHeight,
	}
}

// Validate rejects values that would stall timers or spawn nonsense
func (c Config) Validate() error {
	if c.EnemySpeed < 0 {
		return fmt.Errorf("enemy speed must be >= 0, got %d", c.EnemySpeed)
	}
	if c.ObjectSpawnInterval <= 0 {
		return fmt.Errorf("object spawn interval must be > 0, got %d", c.ObjectSpawnInterval)
	}
	if c.ObjectSplitTime < 0 {
		return fmt.Errorf("object split time must be >= 0, got %d", c.ObjectSplitTime)
	}
	if c.EnemyLifespan < 0 {
		return fmt.Errorf("enemy lifespan must be >= 0, got %d", c.EnemyLifespan)
	}
	if c.ObjectMaxSplits < 0 {
		return fmt.Errorf("object max splits must be >= 0, got %d", c.ObjectMaxSplits)
	}
	return nil
}

func (c Config) splitIntervalMs() float64 {
	return float64(c.ObjectSplitTime) * 1000
}

func (c Config) enemyLifespan() time.Duration {
	return time.Duration(c.EnemyLifespan) * time.Second
}

func (c Config) objectSpawnEvery() time.Duration {
	return time.Duration(c.ObjectSpawnInterval) * time.Second
}

func (c Config) surface() (float64, float64) {
	w, h := c.Width, c.Height
	if w == 0 {
		w = SurfaceWidth
	}
	if h == 0 {
		h = SurfaceHeight
	}
	return w, h
}
