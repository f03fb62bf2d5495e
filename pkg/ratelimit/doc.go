// Package ratelimit provides the inter-item throttle used by the batch runner.
//
// FixedDelay blocks for a constant interval after every item that reached
// the network, regardless of whether that item succeeded. Nop is used when
// throttling is disabled, mostly in tests.
//
//	limiter := ratelimit.NewFixedDelay(5500 * time.Millisecond)
//	if err := limiter.Wait(ctx); err != nil {
//	    return err
//	}
package ratelimit
