package simulation

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the tick spacing of a streamed run.
const DefaultInterval = 150 * time.Millisecond

// Runner drives runs on a ticker. At most one run is active per Runner:
// starting a new route cancels the previous one, so two trucks never
// animate against stale bounds.
type Runner struct {
	// Interval between ticks; DefaultInterval when zero.
	Interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// Handle controls a started run.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop cancels the run. Safe to call more than once.
func (h *Handle) Stop() { h.cancel() }

// Done is closed when the run finishes or is cancelled.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Start begins animating from start to end, calling emit once per tick
// with the post-advance frame. The first emitted frame is step 0. Any
// previously started run is cancelled first.
func (rn *Runner) Start(ctx context.Context, start, end Point, emit func(Frame)) *Handle {
	ctx, cancel := context.WithCancel(ctx)

	rn.mu.Lock()
	if rn.cancel != nil {
		rn.cancel()
	}
	rn.cancel = cancel
	rn.mu.Unlock()

	h := &Handle{cancel: cancel, done: make(chan struct{})}

	interval := rn.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	go func() {
		defer close(h.done)
		defer cancel()

		run := NewRun(start, end)
		emit(run.Snapshot())

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run.Advance()
				emit(run.Snapshot())
				if run.Done() {
					return
				}
			}
		}
	}()

	return h
}
