package query

import (
	"context"
	"sync"
	"time"
)

// Debouncer serializes a stream of rapid inputs into the one that
// survives a quiet period. Each Wait supersedes any pending one; only
// the caller whose input went uninterrupted for the full quiet period
// proceeds.
type Debouncer struct {
	quiet time.Duration

	mu  sync.Mutex
	seq uint64
}

func NewDebouncer(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Wait blocks for the quiet period and reports whether this caller is
// still the most recent one. Superseded callers get false and should
// drop their input without fetching.
func (d *Debouncer) Wait(ctx context.Context) (bool, error) {
	d.mu.Lock()
	d.seq++
	mine := d.seq
	d.mu.Unlock()

	timer := time.NewTimer(d.quiet)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return false, ctx.Err()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.seq == mine, nil
}
