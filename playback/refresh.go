package playback

import (
	"context"
	"sync"
	"time"
)

// Frame is what a visual refresh gets to draw: a direct clock reading.
type Frame struct {
	Time    float64
	Playing bool
	At      time.Time
}

// Refresher runs the per-frame visual refresh. It only reads the clock and
// hands readings to a callback; it never touches document state.
type Refresher struct {
	clock Clock

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefresher returns a stopped refresher reading clock.
func NewRefresher(clock Clock) *Refresher {
	return &Refresher{clock: clock}
}

// Start begins calling draw every interval until ctx is cancelled or Stop
// is called. Starting a running refresher restarts it.
func (r *Refresher) Start(ctx context.Context, interval time.Duration, draw func(Frame)) {
	r.Stop()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.mu.Lock()
	r.cancel = cancel
	r.done = done
	r.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				pos, err := r.clock.Position()
				if err != nil {
					continue
				}
				paused, _ := r.clock.Paused()
				draw(Frame{Time: pos, Playing: !paused, At: now})
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit. It is safe to call on a
// stopped refresher.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the loop is active.
func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}
