// internal/cache/cache.go

// Package cache provides a bounded, deduplicating memo for expensive
// computations keyed by canonical fingerprints. At most one computation per
// key is ever in flight; concurrent callers for the same key wait on that
// computation and observe the same value.
package cache

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces the value for a key. The store result controls
// persistence: a false store returns the value to all current waiters but
// keeps it out of the cache (used for retryable outcomes like timeouts).
type ComputeFunc[V any] func(ctx context.Context) (value V, store bool, err error)

type entry[V any] struct {
	value      V
	insertedAt time.Time
	lruElem    *list.Element
}

type failedCompute struct {
	err     error
	retryAt time.Time
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Entries   int   `json:"entries"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Capacity  int   `json:"capacity"`
}

// Cache is an LRU memo with singleflight deduplication. Safe for concurrent
// use. Failed computations are remembered for errTTL so a broken input does
// not trigger a retry storm.
type Cache[V any] struct {
	mu       sync.Mutex
	entries  map[string]*entry[V]
	lru      *list.List
	capacity int
	failed   map[string]failedCompute
	errTTL   time.Duration
	flight   singleflight.Group

	hits      int64
	misses    int64
	evictions int64
}

// New creates a cache holding at most capacity entries; the least recently
// used entry is evicted first. Failed computations are cached for errTTL
// (zero disables error caching).
func New[V any](capacity int, errTTL time.Duration) *Cache[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache[V]{
		entries:  make(map[string]*entry[V]),
		lru:      list.New(),
		capacity: capacity,
		failed:   make(map[string]failedCompute),
		errTTL:   errTTL,
	}
}

// Get returns the cached value for key, if present, and marks it recently
// used. Get is the only lookup that moves the hit/miss counters.
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.peek(key)
	if ok {
		atomic.AddInt64(&c.hits, 1)
	} else {
		atomic.AddInt64(&c.misses, 1)
	}
	return v, ok
}

func (c *Cache[V]) peek(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.lru.MoveToFront(e.lruElem)
	return e.value, true
}

type flightResult[V any] struct {
	value V
	store bool
}

// GetOrCompute returns the cached value for key or computes it. Concurrent
// callers with the same key share one computation; the value is published to
// the cache only after the computation reaches its terminal result, so no
// caller ever observes a half-written entry.
func (c *Cache[V]) GetOrCompute(ctx context.Context, key string, compute ComputeFunc[V]) (V, error) {
	if v, ok := c.peek(key); ok {
		return v, nil
	}

	if err := c.cachedError(key); err != nil {
		var zero V
		return zero, err
	}

	res, err, _ := c.flight.Do(key, func() (any, error) {
		// Another caller may have published while we waited on the flight.
		if v, ok := c.peek(key); ok {
			return flightResult[V]{value: v, store: false}, nil
		}

		v, store, err := compute(ctx)
		if err != nil {
			c.rememberError(key, err)
			return nil, err
		}
		if store {
			c.put(key, v)
		}
		return flightResult[V]{value: v, store: store}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(flightResult[V]).value, nil
}

func (c *Cache[V]) put(key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok {
		existing.value = v
		existing.insertedAt = time.Now()
		c.lru.MoveToFront(existing.lruElem)
		return
	}

	for len(c.entries) >= c.capacity {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(string))
		atomic.AddInt64(&c.evictions, 1)
	}

	c.entries[key] = &entry[V]{
		value:      v,
		insertedAt: time.Now(),
		lruElem:    c.lru.PushFront(key),
	}
}

func (c *Cache[V]) cachedError(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	fc, ok := c.failed[key]
	if !ok {
		return nil
	}
	if time.Now().After(fc.retryAt) {
		delete(c.failed, key)
		return nil
	}
	return fc.err
}

func (c *Cache[V]) rememberError(key string, err error) {
	if c.errTTL <= 0 {
		return
	}
	// A cancellation or deadline belongs to the caller that hit it, not to
	// the key: a later caller with a live context must get a fresh attempt.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed[key] = failedCompute{err: err, retryAt: time.Now().Add(c.errTTL)}
}

// Len returns the number of stored entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Purge drops every entry and cached error.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry[V])
	c.lru.Init()
	c.failed = make(map[string]failedCompute)
}

// Stats returns current counters.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	entries := len(c.entries)
	c.mu.Unlock()

	return Stats{
		Entries:   entries,
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Capacity:  c.capacity,
	}
}
