package ratelimit

import (
	"context"
	"time"
)

// Limiter paces work that touches remote endpoints
type Limiter interface {
	// Wait blocks until the next unit of work may start or ctx is done
	Wait(ctx context.Context) error
}

// FixedDelay sleeps for the same interval on every Wait, however long the
// preceding work took. It is a cooperative throttle, not a token bucket.
type FixedDelay struct {
	interval time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewFixedDelay creates a limiter that waits interval on each call.
// A non-positive interval makes Wait return immediately.
func NewFixedDelay(interval time.Duration) *FixedDelay {
	return &FixedDelay{
		interval: interval,
		sleep:    sleepContext,
	}
}

// Interval returns the configured delay
func (f *FixedDelay) Interval() time.Duration {
	return f.interval
}

// Wait blocks for the configured interval
func (f *FixedDelay) Wait(ctx context.Context) error {
	if f.interval <= 0 {
		return ctx.Err()
	}
	return f.sleep(ctx, f.interval)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Nop never waits
type Nop struct{}

// Wait returns immediately
func (Nop) Wait(ctx context.Context) error {
	return nil
}
