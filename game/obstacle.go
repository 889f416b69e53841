package game

// Obstacle is a static box that blocks the player and enemies
type Obstacle struct {
	Entity
}

// NewObstacle creates a 20×20 obstacle at (x, y)
func NewObstacle(x, y float64) *Obstacle {
	return &Obstacle{Entity: Entity{
		Rect:  Rect{X: x, Y: y, Width: ObstacleSize, Height: ObstacleSize},
		Color: ColorObstacle,
	}}
}

// DestroyLast removes the most recently placed obstacle, if any
func DestroyLast(obstacles []*Obstacle) []*Obstacle {
	if len(obstacles) == 0 {
		return obstacles
	}
	obstacles[len(obstacles)-1] = nil
	return obstacles[:len(obstacles)-1]
}

func blockedBy(r Rect, obstacles []*Obstacle) bool {
	for _, o := range obstacles {
		if Overlaps(r, o.Rect) {
			return true
		}
	}
	return false
}
