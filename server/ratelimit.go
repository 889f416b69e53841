package main

import (
	"sync"
	"time"
)

const (
	submitRateWindow = 60 * time.Second
	maxSubmitsPerIP  = 30
)

// rateLimiter caps submissions per client IP in a fixed window
type rateLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateEntry
	window  time.Duration
	max     int
	now     func() time.Time
}

type rateEntry struct {
	Count   int
	ResetAt time.Time
}

func newRateLimiter(window time.Duration, max int) *rateLimiter {
	return &rateLimiter{
		entries: make(map[string]*rateEntry),
		window:  window,
		max:     max,
		now:     time.Now,
	}
}

// Allow counts one attempt from ip. max <= 0 disables limiting.
func (l *rateLimiter) Allow(ip string) bool {
	if l == nil || l.max <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[ip]
	if !ok || now.After(entry.ResetAt) {
		l.entries[ip] = &rateEntry{Count: 1, ResetAt: now.Add(l.window)}
		l.sweep(now)
		return true
	}
	entry.Count++
	return entry.Count <= l.max
}

// sweep drops expired windows so the map tracks only recent clients
func (l *rateLimiter) sweep(now time.Time) {
	for ip, e := range l.entries {
		if now.After(e.ResetAt) {
			delete(l.entries, ip)
		}
	}
}
