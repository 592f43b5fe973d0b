package clock

import (
	"context"
	"sync"
	"time"
)

// Ticker fires once per second, aligned to wall-clock second
// boundaries. Ticks under system load may slip past the boundary;
// there is no catch-up, drift is tolerated.
type Ticker struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// AlignDelay returns how long to wait so the first tick lands on the
// next second boundary.
func AlignDelay(now time.Time) time.Duration {
	return now.Truncate(time.Second).Add(time.Second).Sub(now)
}

// Start begins the tick stream, invoking fn on every tick until the
// context is cancelled or Stop is called. Starting again cancels any
// pending stream first, so two streams never run concurrently.
func (t *Ticker) Start(ctx context.Context, fn func(time.Time)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.cancel = cancel
	t.done = done

	go func() {
		defer close(done)

		timer := time.NewTimer(AlignDelay(time.Now()))
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case now := <-timer.C:
			fn(now)
		}

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				fn(now)
			}
		}
	}()
}

// Stop cancels the tick stream and waits for it to drain.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Ticker) stopLocked() {
	if t.cancel != nil {
		t.cancel()
		<-t.done
		t.cancel = nil
		t.done = nil
	}
}
