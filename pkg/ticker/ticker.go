// Package ticker drives periodic recomputation of time-derived state.
package ticker

import (
	"context"
	"time"
)

// Run calls fn every interval until ctx is cancelled.
// fn runs on the calling goroutine, so consecutive calls never overlap.
// A non-positive interval falls back to one second.
func Run(ctx context.Context, interval time.Duration, fn func()) {
	if interval <= 0 {
		interval = time.Second
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fn()
		}
	}
}
