package game

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnemyStepsTowardTarget(t *testing.T) {
	p := NewPlayer(800, 600)
	p.X, p.Y = 300, 400
	e := NewEnemy(0, 0, p, 5, time.Minute, time.Now())

	e.Step(nil)
	// 3-4-5 triangle scaled by speed 5
	assert.InDelta(t, 3.0, e.X, 1e-9)
	assert.InDelta(t, 4.0, e.Y, 1e-9)
}

func TestEnemyStepZeroDistance(t *testing.T) {
	p := NewPlayer(800, 600)
	e := NewEnemy(p.X, p.Y, p, 5, time.Minute, time.Now())

	e.Step(nil)
	assert.Equal(t, p.X, e.X)
	assert.Equal(t, p.Y, e.Y)
	assert.False(t, math.IsNaN(e.X))
}

func TestEnemyFallbackPlusX(t *testing.T) {
	p := NewPlayer(800, 600)
	p.X, p.Y = 100, 200 // straight below
	e := NewEnemy(100, 100, p, 2, time.Minute, time.Now())

	// Wall directly below the enemy; +x step leaves it clear.
	wall := NewObstacle(95, 121)
	e.Step([]*Obstacle{wall})
	assert.Equal(t, 102.0, e.X)
	assert.Equal(t, 100.0, e.Y)
}

func TestEnemyFallbackOrder(t *testing.T) {
	p := NewPlayer(800, 600)
	p.X, p.Y = 100, 200
	e := NewEnemy(100, 100, p, 2, time.Minute, time.Now())

	// Block the direct step and +x; -x is next.
	obstacles := []*Obstacle{NewObstacle(95, 121), NewObstacle(121, 100)}
	e.Step(obstacles)
	assert.Equal(t, 98.0, e.X)
	assert.Equal(t, 100.0, e.Y)
}

func TestEnemyBoxedInStaysPut(t *testing.T) {
	p := NewPlayer(800, 600)
	p.X, p.Y = 100, 200
	e := NewEnemy(100, 100, p, 2, time.Minute, time.Now())

	obstacles := []*Obstacle{
		NewObstacle(100, 121), // below
		NewObstacle(121, 100), // right
		NewObstacle(79, 100),  // left
		NewObstacle(100, 79),  // above
	}
	e.Step(obstacles)
	assert.Equal(t, 100.0, e.X)
	assert.Equal(t, 100.0, e.Y)
}

func TestEnemyIsExpired(t *testing.T) {
	spawned := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := NewEnemy(0, 0, nil, 2, 15*time.Second, spawned)

	assert.False(t, e.IsExpired(spawned.Add(10*time.Second)))
	assert.False(t, e.IsExpired(spawned.Add(15*time.Second)), "age equal to lifespan is not expired")
	assert.True(t, e.IsExpired(spawned.Add(15*time.Second+time.Millisecond)))
}

func TestPruneExpired(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	old := NewEnemy(0, 0, nil, 2, time.Second, t0)
	fresh := NewEnemy(0, 0, nil, 2, time.Minute, t0)

	left := PruneExpired([]*Enemy{old, fresh, old}, t0.Add(2*time.Second))
	assert.Equal(t, []*Enemy{fresh}, left)
}

func TestSpawnEnemyAtCorner(t *testing.T) {
	rng := testRand()
	p := NewPlayer(800, 600)
	corners := map[[2]float64]bool{
		{0, 0}: true, {780, 0}: true, {0, 580}: true, {780, 580}: true,
	}
	for i := 0; i < 50; i++ {
		e := SpawnEnemyAtCorner(rng, 800, 600, p, 2, time.Second, time.Now())
		assert.True(t, corners[[2]float64{e.X, e.Y}], "unexpected spawn (%f, %f)", e.X, e.Y)
		assert.Same(t, p, e.Target)
	}
}
