package game

import (
	"math/rand"
	"time"
)

const EnemySize = 20.0

// Enemy chases the player until it expires or touches them
type Enemy struct {
	Entity
	Target    *Player
	Speed     float64
	Lifespan  time.Duration
	SpawnTime time.Time
}

// NewEnemy creates an enemy at (x, y) hunting target
func NewEnemy(x, y float64, target *Player, speed float64, lifespan time.Duration, now time.Time) *Enemy {
	return &Enemy{
		Entity: Entity{
			Rect:  Rect{X: x, Y: y, Width: EnemySize, Height: EnemySize},
			Color: ColorEnemy,
		},
		Target:    target,
		Speed:     speed,
		Lifespan:  lifespan,
		SpawnTime: now,
	}
}

// SpawnEnemyAtCorner places a new enemy in one of the four surface corners
func SpawnEnemyAtCorner(rng *rand.Rand, w, h float64, target *Player, speed float64, lifespan time.Duration, now time.Time) *Enemy {
	corners := [4][2]float64{
		{0, 0},
		{w - EnemySize, 0},
		{0, h - EnemySize},
		{w - EnemySize, h - EnemySize},
	}
	c := corners[rng.Intn(len(corners))]
	return NewEnemy(c[0], c[1], target, speed, lifespan, now)
}

// IsExpired reports whether the enemy has outlived its lifespan
func (e *Enemy) IsExpired(now time.Time) bool {
	return now.Sub(e.SpawnTime) > e.Lifespan
}

// Step moves the enemy one frame toward its target. When the direct step
// would land inside an obstacle it tries +x, -x, +y, -y in that order and
// takes the first free one; if none is free it stays put.
func (e *Enemy) Step(obstacles []*Obstacle) {
	if e.Target == nil {
		return
	}
	dx := e.Target.X - e.X
	dy := e.Target.Y - e.Y
	dist := Distance(e.X, e.Y, e.Target.X, e.Target.Y)
	if dist == 0 {
		return
	}
	dx = dx / dist * e.Speed
	dy = dy / dist * e.Speed

	if !e.wouldOverlap(dx, dy, obstacles) {
		e.X += dx
		e.Y += dy
		return
	}

	alternatives := [4][2]float64{
		{e.Speed, 0},
		{-e.Speed, 0},
		{0, e.Speed},
		{0, -e.Speed},
	}
	for _, alt := range alternatives {
		if !e.wouldOverlap(alt[0], alt[1], obstacles) {
			e.X += alt[0]
			e.Y += alt[1]
			return
		}
	}
}

// wouldOverlap tests the box at the projected position, not the swept path
func (e *Enemy) wouldOverlap(dx, dy float64, obstacles []*Obstacle) bool {
	return blockedBy(e.Rect.Translate(dx, dy), obstacles)
}

// PruneExpired drops every enemy past its lifespan, keeping order
func PruneExpired(enemies []*Enemy, now time.Time) []*Enemy {
	kept := enemies[:0]
	for _, e := range enemies {
		if !e.IsExpired(now) {
			kept = append(kept, e)
		}
	}
	clearTail(enemies, len(kept))
	return kept
}
