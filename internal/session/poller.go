package session

import (
	"context"
	"time"

	"k8s.io/utils/clock"
)

// poller runs tick every interval until stopped.
//
// A poller is acquired with startPoller and released with stop. Stopping
// cancels the context passed to tick, so an in-flight status request is
// abandoned. stop never waits for the loop to exit and may be called from
// within tick.
type poller struct {
	ticker clock.Ticker
	cancel context.CancelFunc

	// done is closed when the loop goroutine has returned.
	done chan struct{}
}

// startPoller starts the loop. The first tick fires one interval from now.
func startPoller(parent context.Context, clk clock.WithTicker, interval time.Duration, tick func(context.Context)) *poller {
	ctx, cancel := context.WithCancel(parent)
	p := &poller{
		ticker: clk.NewTicker(interval),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go p.run(ctx, tick)
	return p
}

func (p *poller) run(ctx context.Context, tick func(context.Context)) {
	defer close(p.done)
	defer p.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.ticker.C():
			// A tick may already be buffered when stop is called.
			if ctx.Err() != nil {
				return
			}
			tick(ctx)
		}
	}
}

// stop releases the poller. It is safe to call more than once.
func (p *poller) stop() {
	p.cancel()
	p.ticker.Stop()
}

// stopped reports whether the loop goroutine has exited.
func (p *poller) stopped() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
