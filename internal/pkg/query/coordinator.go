// Package query coordinates remote fetches behind a keyed cache: each
// cache key carries a state (idle/loading/fresh/stale/error), a value
// with its fetch timestamp, and at most one in-flight request shared by
// concurrent callers.
package query

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateFresh   State = "fresh"
	StateStale   State = "stale"
	StateError   State = "error"
)

// Options control the cache policy for one logical operation.
type Options struct {
	// TTL is the freshness window. Entries older than TTL are stale:
	// still servable, but a read triggers a refetch.
	TTL time.Duration
	// RetryOnce retries a failed fetch a single time before the key
	// is put into the error state.
	RetryOnce bool
}

type entry struct {
	value     any
	err       error
	fetchedAt time.Time
}

// Result is the outcome of one coordinated read.
type Result[T any] struct {
	Value     T
	State     State
	FetchedAt time.Time
	CacheHit  bool
	Err       error
}

// Coordinator owns the per-key cache records and collapses concurrent
// fetches for the same key into one underlying call.
type Coordinator struct {
	store *gocache.Cache
	group singleflight.Group

	mu   sync.Mutex
	subs map[string][]chan State

	now func() time.Time
}

// entries are evicted an hour after the last write; within that window
// freshness is decided per read from the entry timestamp, so a stale
// entry stays servable until eviction.
const (
	entryRetention  = time.Hour
	cleanupInterval = 10 * time.Minute
)

func NewCoordinator() *Coordinator {
	return &Coordinator{
		store: gocache.New(entryRetention, cleanupInterval),
		subs:  make(map[string][]chan State),
		now:   time.Now,
	}
}

// Fetch returns the cached value for key when fresh, otherwise runs fn
// (once across all concurrent callers) and records the outcome. A failed
// fetch leaves the key in the error state, distinct from "no data yet".
func Fetch[T any](ctx context.Context, c *Coordinator, key string, opts Options,
	fn func(context.Context) (T, error),
) Result[T] {
	if e, ok := c.lookup(key); ok && e.err == nil && c.fresh(e, opts.TTL) {
		return Result[T]{
			Value:     e.value.(T),
			State:     StateFresh,
			FetchedAt: e.fetchedAt,
			CacheHit:  true,
		}
	}

	c.notify(key, StateLoading)

	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		// a caller that queued behind a fill sees the fill's outcome
		if e, ok := c.lookup(key); ok && e.err == nil && c.fresh(e, opts.TTL) {
			return e.value, nil
		}

		val, fetchErr := fn(ctx)
		if fetchErr != nil && opts.RetryOnce {
			val, fetchErr = fn(ctx)
		}

		if fetchErr != nil {
			c.put(key, entry{err: fetchErr, fetchedAt: c.now()})
			c.notify(key, StateError)

			return nil, fetchErr
		}

		c.put(key, entry{value: val, fetchedAt: c.now()})
		c.notify(key, StateFresh)

		return val, nil
	})
	if err != nil {
		return Result[T]{State: StateError, Err: err}
	}

	return Result[T]{Value: value.(T), State: StateFresh, FetchedAt: c.now()}
}

// Peek reports the state of a key without triggering a fetch.
func (c *Coordinator) Peek(key string, ttl time.Duration) State {
	e, ok := c.lookup(key)
	if !ok {
		return StateIdle
	}
	if e.err != nil {
		return StateError
	}
	if c.fresh(e, ttl) {
		return StateFresh
	}

	return StateStale
}

// Invalidate drops the record for key. The next read starts from idle.
func (c *Coordinator) Invalidate(key string) {
	c.store.Delete(key)
}

// Subscribe registers for state transitions on a key. The returned
// cancel func must be called to release the channel.
func (c *Coordinator) Subscribe(key string) (<-chan State, func()) {
	ch := make(chan State, 8)

	c.mu.Lock()
	c.subs[key] = append(c.subs[key], ch)
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		channels := c.subs[key]
		for i, sub := range channels {
			if sub == ch {
				c.subs[key] = append(channels[:i], channels[i+1:]...)
				break
			}
		}
	}

	return ch, cancel
}

func (c *Coordinator) notify(key string, state State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ch := range c.subs[key] {
		select {
		case ch <- state:
		default: // slow subscriber, drop rather than block the fetch path
		}
	}
}

func (c *Coordinator) lookup(key string) (entry, bool) {
	raw, ok := c.store.Get(key)
	if !ok {
		return entry{}, false
	}

	return raw.(entry), true
}

func (c *Coordinator) put(key string, e entry) {
	c.store.Set(key, e, gocache.DefaultExpiration)
}

func (c *Coordinator) fresh(e entry, ttl time.Duration) bool {
	return c.now().Sub(e.fetchedAt) < ttl
}
