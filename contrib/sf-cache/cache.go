// Package cache is an expiring LRU cache that deduplicates concurrent loads
// of the same key.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

var (
	ErrClosed = errors.New("closed")
)

type Cache[K comparable, V any] struct {
	closed atomic.Bool

	constructor func(context.Context, K) (V, error)
	group       singleflight.Group

	mu  sync.Mutex
	lru *expirable.LRU[K, V]
	// epoch is bumped on every invalidation; loads started in an older epoch
	// are returned to their callers but never stored.
	epoch uint64
}

// New creates a cache that loads missing values with constructor. destructor
// (optional) is called for every value leaving the cache, whether by eviction,
// expiry, removal or Close.
func New[K comparable, V any](
	constructor func(context.Context, K) (V, error),
	destructor func(K, V),
	maxSize uint,
	ttl time.Duration,
) *Cache[K, V] {
	if maxSize == 0 {
		panic("maxSize must be greater than 0")
	}
	if constructor == nil {
		panic("constructor is required")
	}

	var onEvict expirable.EvictCallback[K, V]
	if destructor != nil {
		onEvict = func(k K, v V) { destructor(k, v) }
	}

	return &Cache[K, V]{
		constructor: constructor,
		lru:         expirable.NewLRU(int(maxSize), onEvict, ttl),
	}
}

func (h *Cache[K, V]) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.epoch++
	h.lru.Purge()

	return nil
}

// Get returns the cached value for k, loading it if needed. Concurrent calls
// for the same key share a single constructor call. Failed loads are not
// cached.
func (h *Cache[K, V]) Get(ctx context.Context, k K) (V, error) {
	var zero V
	if h.closed.Load() {
		return zero, ErrClosed
	}

	h.mu.Lock()
	if v, ok := h.lru.Get(k); ok {
		h.mu.Unlock()
		return v, nil
	}
	epoch := h.epoch
	h.mu.Unlock()

	// shared load must outlive a single caller's cancellation
	loadCtx := context.WithoutCancel(ctx)

	ch := h.group.DoChan(flightKey(k, epoch), func() (any, error) {
		v, err := h.constructor(loadCtx, k)
		if err != nil {
			return v, err
		}

		h.mu.Lock()
		if h.epoch == epoch && !h.closed.Load() {
			h.lru.Add(k, v)
		}
		h.mu.Unlock()

		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}

		return res.Val.(V), nil

	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Remove drops k from the cache. In-flight loads are not stored afterwards.
func (h *Cache[K, V]) Remove(k K) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.epoch++
	h.lru.Remove(k)
}

// Retain drops every cached key for which keep returns false and returns the
// number of removed entries.
func (h *Cache[K, V]) Retain(keep func(K) bool) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.epoch++

	removed := 0
	for _, k := range h.lru.Keys() {
		if !keep(k) && h.lru.Remove(k) {
			removed++
		}
	}

	return removed
}

func (h *Cache[K, V]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.lru.Len()
}

func flightKey[K comparable](k K, epoch uint64) string {
	return fmt.Sprintf("%d/%T/%v", epoch, k, k)
}
