package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	assert.True(t, Overlaps(a, Rect{X: 5, Y: 5, Width: 10, Height: 10}), "partial overlap")
	assert.True(t, Overlaps(a, Rect{X: 2, Y: 2, Width: 2, Height: 2}), "contained box")
	assert.True(t, Overlaps(a, a), "same box")

	// Touching edges
	assert.False(t, Overlaps(a, Rect{X: 10, Y: 0, Width: 10, Height: 10}), "shared right edge")
	assert.False(t, Overlaps(a, Rect{X: -10, Y: 0, Width: 10, Height: 10}), "shared left edge")
	assert.False(t, Overlaps(a, Rect{X: 0, Y: 10, Width: 10, Height: 10}), "shared bottom edge")
	assert.False(t, Overlaps(a, Rect{X: 10, Y: 10, Width: 10, Height: 10}), "shared corner")

	assert.False(t, Overlaps(a, Rect{X: 30, Y: 30, Width: 5, Height: 5}), "far apart")
}

func TestOverlapsIsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a := Rect{X: rng.Float64() * 50, Y: rng.Float64() * 50, Width: rng.Float64() * 20, Height: rng.Float64() * 20}
		b := Rect{X: rng.Float64() * 50, Y: rng.Float64() * 50, Width: rng.Float64() * 20, Height: rng.Float64() * 20}
		assert.Equal(t, Overlaps(a, b), Overlaps(b, a))
	}
}

func TestClampToBoundsInvariant(t *testing.T) {
	const w, h = 800.0, 600.0
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		e := Entity{Rect: Rect{
			X:      rng.Float64()*4000 - 2000,
			Y:      rng.Float64()*4000 - 2000,
			Width:  rng.Float64() * 40,
			Height: rng.Float64() * 40,
		}}
		e.ClampToBounds(w, h)
		if e.X < 0 || e.X > w-e.Width || e.Y < 0 || e.Y > h-e.Height {
			t.Fatalf("clamped entity out of bounds: %+v", e.Rect)
		}
	}
}

func TestClampToBoundsNoopInside(t *testing.T) {
	e := Entity{Rect: Rect{X: 100, Y: 200, Width: 20, Height: 20}}
	e.ClampToBounds(800, 600)
	assert.Equal(t, Rect{X: 100, Y: 200, Width: 20, Height: 20}, e.Rect)
}

func TestClampToBoundsFarEdge(t *testing.T) {
	e := Entity{Rect: Rect{X: 795, Y: 599, Width: 20, Height: 20}}
	e.ClampToBounds(800, 600)
	assert.Equal(t, 780.0, e.X)
	assert.Equal(t, 580.0, e.Y)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(0, 0, 3, 4), 1e-9)
	assert.Equal(t, 0.0, Distance(2, 2, 2, 2))
}
