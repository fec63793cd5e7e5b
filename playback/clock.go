// Package playback reconciles the authoritative media clock with the
// application-visible time used to stamp edits.
package playback

import (
	"errors"
	"sync"
	"time"
)

// ErrNoMedia is returned by clocks that have nothing loaded.
var ErrNoMedia = errors.New("playback: no media loaded")

// Clock is the authoritative playback clock of a media source.
type Clock interface {
	// Position returns the current playback position in seconds.
	Position() (float64, error)
	// Duration returns the media duration in seconds.
	Duration() (float64, error)
	// Paused reports whether playback is paused.
	Paused() (bool, error)
	// Seek moves the playback position to t seconds.
	Seek(t float64) error
	// SetPaused pauses or resumes playback.
	SetPaused(paused bool) error
}

// ManualClock is an in-memory Clock that advances with wall time while
// playing. The time source can be replaced, which makes it deterministic in
// tests.
type ManualClock struct {
	mu       sync.Mutex
	now      func() time.Time
	duration float64
	base     float64
	started  time.Time
	playing  bool
}

// NewManualClock returns a paused clock at 0 for media of length duration.
// A nil now uses time.Now.
func NewManualClock(duration float64, now func() time.Time) *ManualClock {
	if now == nil {
		now = time.Now
	}
	return &ManualClock{now: now, duration: duration}
}

// position must be called with mu held.
func (c *ManualClock) position() float64 {
	pos := c.base
	if c.playing {
		pos += c.now().Sub(c.started).Seconds()
	}
	if pos > c.duration {
		pos = c.duration
	}
	return pos
}

func (c *ManualClock) Position() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position(), nil
}

func (c *ManualClock) Duration() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.duration <= 0 {
		return 0, ErrNoMedia
	}
	return c.duration, nil
}

func (c *ManualClock) Paused() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.playing, nil
}

func (c *ManualClock) Seek(t float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = clamp(t, 0, c.duration)
	c.started = c.now()
	return nil
}

func (c *ManualClock) SetPaused(paused bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if paused == !c.playing {
		return nil
	}
	c.base = c.position()
	c.started = c.now()
	c.playing = !paused
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
