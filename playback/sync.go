package playback

import (
	"fmt"
)

const (
	// DefaultFramerate sizes frame steps when a document has no usable rate.
	DefaultFramerate = 25.0
)

// Instant is a single reading of the authoritative clock. Every discrete
// edit is stamped with exactly one Instant.
type Instant struct {
	Time    float64
	Playing bool
}

// Synchronizer owns the application-visible time and keeps it consistent
// with the authoritative clock. It is driven from a single goroutine.
type Synchronizer struct {
	clock     Clock
	duration  float64
	framerate float64
	visible   float64
	last      Instant
}

// NewSynchronizer wraps clock. framerate sizes FrameStep.
func NewSynchronizer(clock Clock, framerate float64) *Synchronizer {
	return &Synchronizer{clock: clock, framerate: framerate}
}

// Clock returns the authoritative clock.
func (s *Synchronizer) Clock() Clock {
	return s.clock
}

// SetDuration records the media duration once metadata is available.
func (s *Synchronizer) SetDuration(d float64) {
	if d < 0 {
		d = 0
	}
	s.duration = d
}

// Duration returns the known media duration.
func (s *Synchronizer) Duration() float64 {
	return s.duration
}

// SetFramerate changes the nominal rate used by FrameStep.
func (s *Synchronizer) SetFramerate(fps float64) {
	s.framerate = fps
}

// FrameDuration is the size of one nudge step in seconds.
func (s *Synchronizer) FrameDuration() float64 {
	fps := s.framerate
	if fps <= 0 {
		fps = DefaultFramerate
	}
	return 1 / fps
}

// Visible returns the application-visible time value.
func (s *Synchronizer) Visible() float64 {
	return s.visible
}

// LastSample returns the Instant captured by the most recent Sample call.
func (s *Synchronizer) LastSample() Instant {
	return s.last
}

// Sample reads the authoritative clock once and returns the reading. The
// visible value is moved to the sampled time.
func (s *Synchronizer) Sample() (Instant, error) {
	pos, err := s.clock.Position()
	if err != nil {
		return Instant{}, fmt.Errorf("read position: %w", err)
	}
	paused, err := s.clock.Paused()
	if err != nil {
		return Instant{}, fmt.Errorf("read pause state: %w", err)
	}
	s.last = Instant{Time: pos, Playing: !paused}
	s.visible = pos
	return s.last, nil
}

// Refresh updates the visible value from the clock on the slow cadence.
// Errors leave the previous value in place.
func (s *Synchronizer) Refresh() float64 {
	if pos, err := s.clock.Position(); err == nil {
		s.visible = pos
	}
	return s.visible
}

// Scrub seeks the clock to t, clamped to the media duration, and sets the
// visible value to the same instant.
func (s *Synchronizer) Scrub(t float64) (float64, error) {
	t = clamp(t, 0, s.duration)
	if err := s.clock.Seek(t); err != nil {
		return s.visible, fmt.Errorf("seek to %.3f: %w", t, err)
	}
	s.visible = t
	return t, nil
}

// FrameStep moves the clock one nominal frame forward (dir > 0) or back
// (dir < 0).
func (s *Synchronizer) FrameStep(dir int) (float64, error) {
	pos, err := s.clock.Position()
	if err != nil {
		return s.visible, fmt.Errorf("read position: %w", err)
	}
	step := s.FrameDuration()
	switch {
	case dir > 0:
		pos += step
	case dir < 0:
		pos -= step
	}
	return s.Scrub(pos)
}

// TogglePlay flips the clock between playing and paused and returns the new
// playing state.
func (s *Synchronizer) TogglePlay() (bool, error) {
	paused, err := s.clock.Paused()
	if err != nil {
		return false, fmt.Errorf("read pause state: %w", err)
	}
	if err := s.clock.SetPaused(!paused); err != nil {
		return false, fmt.Errorf("set pause: %w", err)
	}
	return paused, nil
}
