package game

import "math"

// Color is the display attribute of an entity; hosts map it to their own palette
type Color string

const (
	ColorPlayer      Color = "blue"
	ColorEnemy       Color = "red"
	ColorCollectible Color = "green"
	ColorObstacle    Color = "gray"
)

// Rect is an axis-aligned box anchored at its top-left corner
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Overlaps reports whether two boxes intersect. Boxes that only share an
// edge do not overlap.
func Overlaps(a, b Rect) bool {
	return a.X < b.X+b.Width &&
		a.X+a.Width > b.X &&
		a.Y < b.Y+b.Height &&
		a.Y+a.Height > b.Y
}

// Translate returns the box moved by (dx, dy)
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Entity is the positioned, colored box shared by every game object
type Entity struct {
	Rect
	Color Color
}

// Bounds returns the entity's box
func (e *Entity) Bounds() Rect {
	return e.Rect
}

// ClampToBounds pulls the entity back inside a w×h surface
func (e *Entity) ClampToBounds(w, h float64) {
	if e.X < 0 {
		e.X = 0
	}
	if e.Y < 0 {
		e.Y = 0
	}
	if e.X+e.Width > w {
		e.X = w - e.Width
	}
	if e.Y+e.Height > h {
		e.Y = h - e.Height
	}
}

// CollidesWith checks the entity against any other box
func (e *Entity) CollidesWith(other Rect) bool {
	return Overlaps(e.Rect, other)
}

// Distance returns the distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}
