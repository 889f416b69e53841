package game

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session owns the player and every entity collection for one play-through.
// It is not safe for concurrent use; the host serializes all callbacks.
type Session struct {
	ID string

	Player    *Player
	Enemies   []*Enemy
	Objects   []*Collectible
	Obstacles []*Obstacle

	host   Host
	cfg    Config
	rng    *rand.Rand
	now    func() time.Time
	log    *zap.Logger
	onEnd  func(Result)
	events func(Event)

	startedAt time.Time
	over      bool
	gen       uint64 // bumped on every Start so stale frame callbacks bail out
	cancels   []func()
	frames    uint64
}

// Option customizes a Session
type Option func(*Session)

// WithRand makes spawning and wandering deterministic
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLogger attaches a logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// OnEnd registers the callback invoked once when the player dies
func OnEnd(fn func(Result)) Option {
	return func(s *Session) { s.onEnd = fn }
}

// OnEvent registers a sink for collect/hit/end events
func OnEvent(fn func(Event)) Option {
	return func(s *Session) { s.events = fn }
}

// NewSession wires a session to its host. It does not start play.
func NewSession(host Host, cfg Config, opts ...Option) *Session {
	if cfg.Width == 0 || cfg.Height == 0 {
		cfg.Width, cfg.Height = cfg.surface()
	}
	s := &Session{
		host: host,
		cfg:  cfg,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
		log:  zap.NewNop(),
		over: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Player = NewPlayer(cfg.Width, cfg.Height)
	host.BindKeys(s.KeyDown, s.KeyUp)
	return s
}

// Config returns the current tuning
func (s *Session) Config() Config {
	return s.cfg
}

// SetConfig replaces the tuning; only entities spawned afterwards see it
func (s *Session) SetConfig(cfg Config) {
	cfg.Width, cfg.Height = s.cfg.Width, s.cfg.Height
	s.cfg = cfg
}

// Over reports whether the session has ended
func (s *Session) Over() bool {
	return s.over
}

// Frames returns how many frames ran since the last Start
func (s *Session) Frames() uint64 {
	return s.frames
}

// Start resets all state, arms the spawn and HUD timers and runs the first frame
func (s *Session) Start() {
	s.stopTimers()
	s.gen++
	s.ID = uuid.NewString()
	s.Player.Reset()
	s.Enemies = nil
	s.Objects = nil
	s.Obstacles = nil
	s.over = false
	s.frames = 0
	s.startedAt = s.now()

	s.cancels = append(s.cancels,
		s.host.ScheduleRepeating(EnemySpawnEvery, s.SpawnEnemy),
		s.host.ScheduleRepeating(s.cfg.objectSpawnEvery(), s.SpawnObject),
		s.host.ScheduleRepeating(HUDRefreshEvery, s.refreshHUD),
	)

	s.log.Info("session started",
		zap.String("session", s.ID),
		zap.Int("enemy_speed", s.cfg.EnemySpeed),
		zap.Int("object_spawn_interval", s.cfg.ObjectSpawnInterval),
		zap.Int("object_split_time", s.cfg.ObjectSplitTime),
		zap.Int("enemy_lifespan", s.cfg.EnemyLifespan),
		zap.Int("object_max_splits", s.cfg.ObjectMaxSplits),
	)
	s.refreshHUD()
	s.frame(s.gen)
}

// End stops the session. Safe to call repeatedly; only the first call
// fires the end callback.
func (s *Session) End() {
	if s.over {
		return
	}
	s.over = true
	s.stopTimers()

	res := Result{SessionID: s.ID, Score: s.Player.Score, Elapsed: s.Elapsed()}
	s.log.Info("session ended",
		zap.String("session", s.ID),
		zap.Int("score", res.Score),
		zap.Float64("time", res.Seconds()),
		zap.Uint64("frames", s.frames),
	)
	s.emit(Event{Kind: EventEnd})
	if s.onEnd != nil {
		s.onEnd(res)
	}
}

// Halt abandons the session without reporting a result, e.g. when the
// user leaves for the menu mid-game.
func (s *Session) Halt() {
	s.over = true
	s.gen++
	s.stopTimers()
}

// Elapsed returns time since Start
func (s *Session) Elapsed() time.Duration {
	return s.now().Sub(s.startedAt)
}

// HUD returns the current status line values
func (s *Session) HUD() HUD {
	return HUD{
		Score:   s.Player.Score,
		Elapsed: int(s.Elapsed() / time.Second),
		Health:  s.Player.Health,
	}
}

// KeyDown sets velocity or triggers an obstacle action
func (s *Session) KeyDown(k Key) {
	p := s.Player
	switch k {
	case KeyRight:
		p.DX = p.Speed
	case KeyLeft:
		p.DX = -p.Speed
	case KeyUp:
		p.DY = -p.Speed
	case KeyDown:
		p.DY = p.Speed
	case KeyPlace:
		s.Obstacles = append(s.Obstacles, p.PlaceObstacle())
	case KeyDestroy:
		s.Obstacles = DestroyLast(s.Obstacles)
	}
}

// KeyUp zeroes the axis the released key controls
func (s *Session) KeyUp(k Key) {
	switch k {
	case KeyRight, KeyLeft:
		s.Player.DX = 0
	case KeyUp, KeyDown:
		s.Player.DY = 0
	}
}

// SpawnEnemy adds an enemy in a random corner using the current config
func (s *Session) SpawnEnemy() {
	if s.over {
		return
	}
	e := SpawnEnemyAtCorner(s.rng, s.cfg.Width, s.cfg.Height, s.Player,
		float64(s.cfg.EnemySpeed), s.cfg.enemyLifespan(), s.now())
	s.Enemies = append(s.Enemies, e)
}

// SpawnObject adds a collectible at a random position
func (s *Session) SpawnObject() {
	if s.over {
		return
	}
	s.Objects = append(s.Objects, SpawnCollectible(s.rng, s.cfg))
}

// Update runs the simulation half of a frame without drawing
func (s *Session) Update() {
	w, h := s.cfg.Width, s.cfg.Height
	p := s.Player

	p.Move(w, h)

	var collected int
	s.Objects, collected = p.CollectFrom(s.Objects)
	if collected > 0 {
		s.emit(Event{Kind: EventCollect, Count: collected})
		s.refreshHUD()
	}

	var hits int
	var died bool
	s.Enemies, hits, died = p.ResolveEnemyContact(s.Enemies)
	if hits > 0 {
		s.emit(Event{Kind: EventHit, Count: hits})
		s.refreshHUD()
	}
	if died {
		s.End()
	}

	p.ResolveObstacleContact(s.Obstacles)

	s.Enemies = PruneExpired(s.Enemies, s.now())
	for _, e := range s.Enemies {
		e.Step(s.Obstacles)
	}

	// Children appended during this pass are visible to later siblings'
	// collision checks but are not stepped until the next frame.
	n := len(s.Objects)
	for i := 0; i < n; i++ {
		if children := s.Objects[i].Step(s.Objects, s.Obstacles, s.Enemies, w, h); len(children) > 0 {
			s.Objects = append(s.Objects, children...)
		}
	}
	s.frames++
}

// Render clears the host surface and draws every entity
func (s *Session) Render() {
	s.host.Clear()
	draw := func(e *Entity) {
		s.host.DrawRect(e.X, e.Y, e.Width, e.Height, e.Color)
	}
	draw(&s.Player.Entity)
	for _, e := range s.Enemies {
		draw(&e.Entity)
	}
	for _, o := range s.Objects {
		draw(&o.Entity)
	}
	for _, o := range s.Obstacles {
		draw(&o.Entity)
	}
}

func (s *Session) frame(gen uint64) {
	if gen != s.gen {
		return
	}
	s.Update()
	s.Render()
	if !s.over {
		s.host.RequestNextFrame(func() { s.frame(gen) })
	}
}

func (s *Session) refreshHUD() {
	s.host.ShowHUD(s.HUD())
}

func (s *Session) stopTimers() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = s.cancels[:0]
}

func (s *Session) emit(ev Event) {
	if s.events != nil {
		s.events(ev)
	}
}
