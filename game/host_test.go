package game

import (
	"math/rand"
	"time"
)

// fakeHost records draw calls and lets tests pump frames and timers by hand
type fakeHost struct {
	clears  int
	rects   []Rect
	huds    []HUD
	down    func(Key)
	up      func(Key)
	pending []func()
	timers  map[int]*fakeTimer
	nextID  int
}

type fakeTimer struct {
	interval time.Duration
	fn       func()
	cancels  int
}

func newFakeHost() *fakeHost {
	return &fakeHost{timers: make(map[int]*fakeTimer)}
}

func (h *fakeHost) Clear() {
	h.clears++
	h.rects = h.rects[:0]
}

func (h *fakeHost) DrawRect(x, y, w, hh float64, _ Color) {
	h.rects = append(h.rects, Rect{X: x, Y: y, Width: w, Height: hh})
}

func (h *fakeHost) ShowHUD(hud HUD) { h.huds = append(h.huds, hud) }

func (h *fakeHost) BindKeys(down, up func(Key)) {
	h.down = down
	h.up = up
}

func (h *fakeHost) ScheduleRepeating(interval time.Duration, fn func()) func() {
	id := h.nextID
	h.nextID++
	t := &fakeTimer{interval: interval, fn: fn}
	h.timers[id] = t
	return func() {
		t.cancels++
		delete(h.timers, id)
	}
}

func (h *fakeHost) RequestNextFrame(fn func()) {
	h.pending = append(h.pending, fn)
}

// pump runs the queued frame callbacks once; returns how many ran
func (h *fakeHost) pump() int {
	queued := h.pending
	h.pending = nil
	for _, fn := range queued {
		fn()
	}
	return len(queued)
}

// fire invokes every active timer registered with the given interval
func (h *fakeHost) fire(interval time.Duration) {
	for _, t := range h.timers {
		if t.interval == interval {
			t.fn()
		}
	}
}

// fixedClock is a manually advanced clock
type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

func (c *fixedClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fixedClock {
	return &fixedClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}
