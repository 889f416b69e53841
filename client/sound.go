package main

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"mitosis-arcade/game"
)

const sampleRate = beep.SampleRate(44100)

// Sounds plays short effects for session events. Without a working audio
// device every method is a no-op.
type Sounds struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSounds creates an uninitialized sound player
func NewSounds() *Sounds {
	return &Sounds{mixer: &beep.Mixer{}}
}

// Init opens the speaker
func (s *Sounds) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close silences everything and releases the device
func (s *Sounds) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// Play maps a session event to its effect
func (s *Sounds) Play(ev game.Event) {
	st := effectFor(ev)
	if st == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func effectFor(ev game.Event) beep.Streamer {
	switch ev.Kind {
	case game.EventCollect:
		sine, err := generators.SineTone(sampleRate, 880)
		if err != nil {
			return nil
		}
		return beep.Take(sampleRate.N(60*time.Millisecond), quieter(sine))
	case game.EventHit:
		return beep.Take(sampleRate.N(150*time.Millisecond), newSweep(sampleRate, 140, 110))
	case game.EventEnd:
		return beep.Take(sampleRate.N(600*time.Millisecond), newSweep(sampleRate, 440, 110))
	}
	return nil
}

func quieter(st beep.Streamer) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := st.Stream(samples)
		for i := range samples[:n] {
			samples[i][0] *= 0.2
			samples[i][1] *= 0.2
		}
		return n, ok
	})
}

// sweep glides linearly from one frequency to another over half a second
// with a short attack so effects do not click
type sweep struct {
	sr       beep.SampleRate
	from, to float64
	pos      int
	phase    float64
}

func newSweep(sr beep.SampleRate, from, to float64) *sweep {
	return &sweep{sr: sr, from: from, to: to}
}

func (g *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	span := float64(g.sr.N(500 * time.Millisecond))
	for i := range samples {
		progress := math.Min(float64(g.pos)/span, 1)
		freq := g.from + (g.to-g.from)*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		envelope := math.Min(float64(g.pos)/float64(g.sr)/0.01, 1.0)
		sample := 0.2 * envelope * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *sweep) Err() error {
	return nil
}
