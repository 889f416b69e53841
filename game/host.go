package game

import "time"

// Key is a logical input the session reacts to
type Key int

const (
	KeyNone Key = iota
	KeyRight
	KeyLeft
	KeyUp
	KeyDown
	KeyPlace   // drop an obstacle
	KeyDestroy // remove the last obstacle
)

// HUD is the status line a host shows next to the play surface
type HUD struct {
	Score   int
	Elapsed int // whole seconds since session start
	Health  int
}

// Host renders the surface, delivers input and owns every clock the
// session runs on. A host must invoke all callbacks from a single goroutine.
type Host interface {
	Clear()
	DrawRect(x, y, w, h float64, c Color)
	ShowHUD(hud HUD)
	BindKeys(down, up func(Key))
	// ScheduleRepeating calls fn every interval until cancel is called.
	// cancel must be safe to call more than once.
	ScheduleRepeating(interval time.Duration, fn func()) (cancel func())
	RequestNextFrame(fn func())
}

// EventKind classifies what happened during a frame
type EventKind int

const (
	EventCollect EventKind = iota
	EventHit
	EventEnd
)

// Event is emitted to the session's event sink; hosts use it for sound
type Event struct {
	Kind  EventKind
	Count int
}

// Result is the final tally handed to the end-of-session callback
type Result struct {
	SessionID string
	Score     int
	Elapsed   time.Duration
}

// Seconds returns the elapsed time as fractional seconds
func (r Result) Seconds() float64 {
	return r.Elapsed.Seconds()
}
