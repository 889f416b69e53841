package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	l := newRateLimiter(time.Minute, 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("5.6.7.8"), "limits are per IP")

	now = now.Add(time.Minute + time.Second)
	assert.True(t, l.Allow("1.2.3.4"), "window resets")
	assert.Len(t, l.entries, 1, "expired windows are swept")
}

func TestRateLimiterDisabled(t *testing.T) {
	l := newRateLimiter(time.Minute, 0)
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("1.2.3.4"))
	}
	var nilLimiter *rateLimiter
	assert.True(t, nilLimiter.Allow("x"))
}
