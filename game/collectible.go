package game

import (
	"math"
	"math/rand"
)

const (
	CollectibleSize = 20.0
	CollectibleStep = 2.0 // units moved per frame
	WanderJitter    = 0.1 // max heading change per frame, radians
)

// Collectible wanders randomly and splits in two on a timer
type Collectible struct {
	Entity
	Angle      float64
	SplitCount int
	SplitTimer float64 // ms until the next split check fires

	splitInterval float64 // ms, captured from the session config
	maxSplits     int
	rng           *rand.Rand
}

// NewCollectible creates a collectible with a random heading. Later
// generations wait twice the base interval before their first split.
func NewCollectible(rng *rand.Rand, x, y, w, h float64, splitCount int, cfg Config) *Collectible {
	return newCollectible(rng, Rect{X: x, Y: y, Width: w, Height: h}, splitCount, cfg.splitIntervalMs(), cfg.ObjectMaxSplits)
}

func newCollectible(rng *rand.Rand, r Rect, splitCount int, interval float64, maxSplits int) *Collectible {
	c := &Collectible{
		Entity:        Entity{Rect: r, Color: ColorCollectible},
		Angle:         rng.Float64() * 2 * math.Pi,
		SplitCount:    splitCount,
		splitInterval: interval,
		maxSplits:     maxSplits,
		rng:           rng,
	}
	if splitCount == 0 {
		c.SplitTimer = interval
	} else {
		c.SplitTimer = interval * 2
	}
	return c
}

// SpawnCollectible drops a fresh collectible anywhere on the surface
func SpawnCollectible(rng *rand.Rand, cfg Config) *Collectible {
	w, h := cfg.surface()
	return NewCollectible(rng, rng.Float64()*w, rng.Float64()*h, CollectibleSize, CollectibleSize, 0, cfg)
}

// MaxSplits returns the generation cap this collectible was spawned with
func (c *Collectible) MaxSplits() int {
	return c.maxSplits
}

// Step advances one frame: wander, clamp, bounce off anything touched, then
// tick the split timer. Returns the children produced by a split, if any.
func (c *Collectible) Step(objects []*Collectible, obstacles []*Obstacle, enemies []*Enemy, w, h float64) []*Collectible {
	c.Angle += (c.rng.Float64() - 0.5) * 2 * WanderJitter
	c.X += math.Cos(c.Angle) * CollectibleStep
	c.Y += math.Sin(c.Angle) * CollectibleStep
	c.ClampToBounds(w, h)
	c.avoidCollisions(objects, obstacles, enemies)

	c.SplitTimer -= FrameQuantumMs
	if c.SplitTimer > 0 || c.SplitCount >= c.maxSplits {
		return nil
	}
	children := c.split()
	c.SplitCount++
	// Only the first generation gets a fresh delay; after that the timer
	// stays at zero and the split check fires on the next eligible frame.
	if c.SplitCount == 1 {
		c.SplitTimer = c.splitInterval * 2
	} else {
		c.SplitTimer = 0
	}
	return children
}

// avoidCollisions reverses heading once per overlapping entity, so an even
// number of simultaneous contacts leaves the heading unchanged.
func (c *Collectible) avoidCollisions(objects []*Collectible, obstacles []*Obstacle, enemies []*Enemy) {
	for _, o := range objects {
		if o != c && c.CollidesWith(o.Rect) {
			c.Angle += math.Pi
		}
	}
	for _, o := range obstacles {
		if c.CollidesWith(o.Rect) {
			c.Angle += math.Pi
		}
	}
	for _, e := range enemies {
		if c.CollidesWith(e.Rect) {
			c.Angle += math.Pi
		}
	}
}

func (c *Collectible) split() []*Collectible {
	r := Rect{X: c.X, Y: c.Y, Width: c.Width / 2, Height: c.Height / 2}
	return []*Collectible{
		newCollectible(c.rng, r, c.SplitCount+1, c.splitInterval, c.maxSplits),
		newCollectible(c.rng, r, c.SplitCount+1, c.splitInterval, c.maxSplits),
	}
}
