package game

const (
	PlayerSize      = 20.0
	PlayerSpeed     = 5.0
	PlayerMaxHealth = 100
	CollectScore    = 10
	EnemyDamage     = 25
	ObstacleSize    = 20.0
)

// Player is the keyboard-driven avatar
type Player struct {
	Entity
	Speed  float64
	DX, DY float64
	Health int
	Score  int
}

// NewPlayer creates a player centered on a w×h surface
func NewPlayer(w, h float64) *Player {
	return &Player{
		Entity: Entity{
			Rect:  Rect{X: w / 2, Y: h / 2, Width: PlayerSize, Height: PlayerSize},
			Color: ColorPlayer,
		},
		Speed:  PlayerSpeed,
		Health: PlayerMaxHealth,
	}
}

// Reset restores health and score for a new session. Position carries over.
func (p *Player) Reset() {
	p.Health = PlayerMaxHealth
	p.Score = 0
	p.DX = 0
	p.DY = 0
}

// Alive reports whether the player is above the death threshold
func (p *Player) Alive() bool {
	return p.Health > 0
}

// Move applies velocity for one frame and clamps to the surface
func (p *Player) Move(w, h float64) {
	p.X += p.DX
	p.Y += p.DY
	p.ClampToBounds(w, h)
}

// CollectFrom removes every collectible the player touches and scores it.
// Returns the remaining collectibles and how many were collected.
func (p *Player) CollectFrom(objects []*Collectible) ([]*Collectible, int) {
	n := 0
	kept := objects[:0]
	for _, o := range objects {
		if p.CollidesWith(o.Rect) {
			p.Score += CollectScore
			n++
			continue
		}
		kept = append(kept, o)
	}
	clearTail(objects, len(kept))
	return kept, n
}

// ResolveEnemyContact consumes every enemy touching the player, 25 damage
// each. died is true when this call took health to zero or below.
func (p *Player) ResolveEnemyContact(enemies []*Enemy) (remaining []*Enemy, hits int, died bool) {
	wasAlive := p.Alive()
	kept := enemies[:0]
	for _, e := range enemies {
		if p.CollidesWith(e.Rect) {
			p.Health -= EnemyDamage
			hits++
			continue
		}
		kept = append(kept, e)
	}
	clearTail(enemies, len(kept))
	return kept, hits, wasAlive && !p.Alive()
}

// ResolveObstacleContact pushes the player out of any obstacle it overlaps
// along the axes it is moving on, then stops it.
func (p *Player) ResolveObstacleContact(obstacles []*Obstacle) {
	for _, o := range obstacles {
		if !p.CollidesWith(o.Rect) {
			continue
		}
		if p.DX > 0 {
			p.X = o.X - p.Width
		}
		if p.DX < 0 {
			p.X = o.X + o.Width
		}
		if p.DY > 0 {
			p.Y = o.Y - p.Height
		}
		if p.DY < 0 {
			p.Y = o.Y + o.Height
		}
		p.DX = 0
		p.DY = 0
	}
}

// PlaceObstacle builds an obstacle one player-size up-left of the player
func (p *Player) PlaceObstacle() *Obstacle {
	return NewObstacle(p.X-p.Width, p.Y-p.Height)
}

// clearTail nils out the compacted-away slots so removed entities can be collected
func clearTail[T any](s []*T, from int) {
	for i := from; i < len(s); i++ {
		s[i] = nil
	}
}
