package signup

import (
	"context"
	"sync"
	"time"
)

// DefaultResendTicks is the number of one-second ticks before a resend is
// allowed.
const DefaultResendTicks = 60

// Countdown gates the resend action. It is safe for concurrent use.
type Countdown struct {
	mu        sync.Mutex
	total     int
	remaining int
}

func NewCountdown(total int) *Countdown {
	if total < 0 {
		total = 0
	}
	return &Countdown{total: total, remaining: total}
}

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Ready reports whether the countdown reached zero.
func (c *Countdown) Ready() bool {
	return c.Remaining() == 0
}

// Tick advances the countdown by one and returns what is left. It never
// goes below zero.
func (c *Countdown) Tick() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining > 0 {
		c.remaining--
	}
	return c.remaining
}

func (c *Countdown) Reset() {
	c.mu.Lock()
	c.remaining = c.total
	c.mu.Unlock()
}

// Run ticks once per value received on ticks and returns when the
// countdown reaches zero, ticks is closed, or ctx is done.
func (c *Countdown) Run(ctx context.Context, ticks <-chan time.Time) {
	if c.Ready() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			if c.Tick() == 0 {
				return
			}
		}
	}
}

// Start runs the countdown from a time.Ticker in its own goroutine. The
// returned function stops it and waits for the goroutine to exit.
func (c *Countdown) Start(ctx context.Context, interval time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer ticker.Stop()
		c.Run(ctx, ticker.C)
	}()

	return func() {
		cancel()
		<-done
	}
}
