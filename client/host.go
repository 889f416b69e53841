package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"mitosis-arcade/game"
)

// TerminalHost runs a game.Session inside a tcell screen. Every callback
// (frames, timers, keys) executes on the goroutine that called Run.
type TerminalHost struct {
	screen     tcell.Screen
	newScreen  func() (tcell.Screen, error)
	worldW     float64
	worldH     float64
	frameEvery time.Duration
	holdWindow time.Duration
	log        *zap.Logger
	now        func() time.Time

	down, up func(game.Key)
	next     func()
	timers   []*repeatTimer
	held     map[game.Key]time.Time

	hud      game.HUD
	banner   string
	gameOver bool
	quit     bool
}

type repeatTimer struct {
	every     time.Duration
	due       time.Time
	fn        func()
	cancelled bool
}

// HostOptions tunes a TerminalHost
type HostOptions struct {
	FrameRate  int
	HoldWindow time.Duration
	Log        *zap.Logger
}

// NewTerminalHost creates a host for a world of worldW x worldH units.
// The screen is opened by Run and closed when Run returns.
func NewTerminalHost(worldW, worldH float64, opts HostOptions) *TerminalHost {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 60
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &TerminalHost{
		newScreen:  tcell.NewScreen,
		worldW:     worldW,
		worldH:     worldH,
		frameEvery: time.Second / time.Duration(opts.FrameRate),
		holdWindow: opts.HoldWindow,
		log:        opts.Log,
		now:        time.Now,
		held:       make(map[game.Key]time.Time),
	}
}

// Clear wipes the play area
func (h *TerminalHost) Clear() {
	if h.screen != nil {
		h.screen.Clear()
	}
}

// DrawRect fills the cells covered by a world-space rectangle
func (h *TerminalHost) DrawRect(x, y, w, hgt float64, color game.Color) {
	if h.screen == nil {
		return
	}
	cols, rows := h.playArea()
	x0, y0, x1, y1 := scaleRect(x, y, w, hgt, h.worldW, h.worldH, cols, rows)
	style := tcell.StyleDefault.Foreground(cellColor(color))
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			h.screen.SetContent(cx, cy+hudRows, '█', nil, style)
		}
	}
}

// ShowHUD stores the status line drawn with every frame
func (h *TerminalHost) ShowHUD(hud game.HUD) {
	h.hud = hud
}

// BindKeys registers the session's key handlers
func (h *TerminalHost) BindKeys(down, up func(game.Key)) {
	h.down, h.up = down, up
}

// ScheduleRepeating fires fn every interval until the returned cancel runs
func (h *TerminalHost) ScheduleRepeating(interval time.Duration, fn func()) func() {
	t := &repeatTimer{every: interval, due: h.now().Add(interval), fn: fn}
	h.timers = append(h.timers, t)
	return func() { t.cancelled = true }
}

// RequestNextFrame queues fn for the next tick; a newer request replaces it
func (h *TerminalHost) RequestNextFrame(fn func()) {
	h.next = fn
}

// GameOver switches the HUD to the end-of-session prompt
func (h *TerminalHost) GameOver(r game.Result) {
	h.gameOver = true
	h.banner = fmt.Sprintf("GAME OVER  Score: %d  Time: %.2fs  [Enter] play again  [Esc] menu", r.Score, r.Seconds())
}

const hudRows = 1

// Run opens the screen, starts the session and loops until the player
// leaves. A session still in progress is abandoned without a result.
func (h *TerminalHost) Run(s *game.Session) error {
	screen, err := h.newScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	h.screen = screen
	defer func() {
		h.screen.Fini()
		h.screen = nil
	}()
	screen.HideCursor()

	h.reset()
	s.Start()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(h.frameEvery)
	defer ticker.Stop()

	for !h.quit {
		select {
		case ev := <-events:
			if ev == nil {
				h.quit = true
				break
			}
			h.handleEvent(ev, s)
		case <-ticker.C:
			h.tick()
		}
	}
	if !s.Over() {
		s.Halt()
		h.log.Info("session abandoned", zap.String("session", s.ID))
	}
	return nil
}

func (h *TerminalHost) reset() {
	h.timers = nil
	h.next = nil
	h.held = make(map[game.Key]time.Time)
	h.gameOver = false
	h.banner = ""
	h.quit = false
}

// tick advances one frame: due timers, expired key holds, the frame
// callback, then the HUD row
func (h *TerminalHost) tick() {
	now := h.now()
	h.fireTimers(now)
	h.releaseHeld(now)
	if fn := h.next; fn != nil {
		h.next = nil
		fn()
	}
	h.drawHUD()
	if h.screen != nil {
		h.screen.Show()
	}
}

func (h *TerminalHost) fireTimers(now time.Time) {
	// Callbacks may schedule or cancel timers, so iterate a snapshot
	for _, t := range append([]*repeatTimer(nil), h.timers...) {
		if t.cancelled || now.Before(t.due) {
			continue
		}
		t.due = t.due.Add(t.every)
		if t.due.Before(now) {
			t.due = now.Add(t.every)
		}
		t.fn()
	}

	live := h.timers[:0]
	for _, t := range h.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(h.timers); i++ {
		h.timers[i] = nil
	}
	h.timers = live
}

// releaseHeld synthesizes key-up for movement keys whose auto-repeat stopped
func (h *TerminalHost) releaseHeld(now time.Time) {
	for k, last := range h.held {
		if now.Sub(last) > h.holdWindow {
			delete(h.held, k)
			if h.up != nil {
				h.up(k)
			}
		}
	}
}

func (h *TerminalHost) handleEvent(ev tcell.Event, s *game.Session) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			h.quit = true
			return
		}
		if h.gameOver {
			if ev.Key() == tcell.KeyEnter {
				h.reset()
				s.Start()
			}
			return
		}
		k, ok := mapKey(ev)
		if !ok {
			return
		}
		h.press(k)
	case *tcell.EventResize:
		if h.screen != nil {
			h.screen.Sync()
		}
	}
}

// press forwards a key-down. Movement keys are tracked so a key-up can be
// synthesized once the terminal stops repeating them.
func (h *TerminalHost) press(k game.Key) {
	if isMovement(k) {
		// The new direction already overrides the axis velocity; a late
		// release of the opposite key must not zero it.
		delete(h.held, opposite(k))
		h.held[k] = h.now()
	}
	if h.down != nil {
		h.down(k)
	}
}

func (h *TerminalHost) drawHUD() {
	if h.screen == nil {
		return
	}
	cols, _ := h.screen.Size()
	line := h.banner
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	if line == "" {
		line = fmt.Sprintf("Score: %d  Time: %ds  Health: %d", h.hud.Score, h.hud.Elapsed, h.hud.Health)
		style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	} else {
		style = style.Foreground(tcell.ColorRed)
	}
	col := 0
	for _, r := range line {
		if col >= cols {
			break
		}
		h.screen.SetContent(col, 0, r, nil, style)
		col++
	}
	for ; col < cols; col++ {
		h.screen.SetContent(col, 0, ' ', nil, tcell.StyleDefault)
	}
}

func (h *TerminalHost) playArea() (cols, rows int) {
	cols, rows = h.screen.Size()
	return cols, rows - hudRows
}

// scaleRect maps a world rectangle onto an inclusive cell range. Anything
// visible covers at least one cell.
func scaleRect(x, y, w, hgt, worldW, worldH float64, cols, rows int) (x0, y0, x1, y1 int) {
	if cols <= 0 || rows <= 0 || worldW <= 0 || worldH <= 0 {
		return 0, 0, -1, -1
	}
	sx := float64(cols) / worldW
	sy := float64(rows) / worldH

	x0 = int(math.Floor(x * sx))
	y0 = int(math.Floor(y * sy))
	x1 = int(math.Ceil((x+w)*sx)) - 1
	y1 = int(math.Ceil((y+hgt)*sy)) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return clampInt(x0, 0, cols-1), clampInt(y0, 0, rows-1), clampInt(x1, 0, cols-1), clampInt(y1, 0, rows-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func cellColor(c game.Color) tcell.Color {
	switch c {
	case game.ColorPlayer:
		return tcell.ColorBlue
	case game.ColorEnemy:
		return tcell.ColorRed
	case game.ColorCollectible:
		return tcell.ColorGreen
	case game.ColorObstacle:
		return tcell.ColorGray
	default:
		return tcell.ColorWhite
	}
}
