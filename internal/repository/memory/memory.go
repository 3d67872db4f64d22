// Package memory implements the repository contracts with in-process data
// sets: the simulated backend. Every call sleeps for a configurable latency
// before answering so callers are forced to treat it as network-bound, and
// every call honors context cancellation during that wait.
package memory

import (
	"context"
	"time"
)

// DefaultLatency approximates a nearby HTTP API. Tests pass 0.
const DefaultLatency = 500 * time.Millisecond

// wait blocks for d or until ctx is done, whichever comes first.
// A non-positive d returns immediately.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
