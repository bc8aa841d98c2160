package facade

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/quenbyako/accountcache/internal/domains/accounts/entities"
)

// cacheState is committed as a whole, so readers never observe raw and
// visible snapshots from different refresh cycles.
type cacheState struct {
	raw     entities.Snapshot
	visible entities.Snapshot
}

// cacheGate holds the latest committed state and the first-population latch.
type cacheGate struct {
	state atomic.Pointer[cacheState]

	mu        sync.Mutex
	done      bool
	populated chan struct{}
	waiting   []func(context.Context)
}

func newCacheGate() *cacheGate {
	return &cacheGate{populated: make(chan struct{})}
}

func (g *cacheGate) load() *cacheState { return g.state.Load() }

func (g *cacheGate) isPopulated() bool { return g.state.Load() != nil }

// commit publishes st. On the very first commit it releases the latch and
// hands back the callbacks that waited for it; afterwards it returns nil.
func (g *cacheGate) commit(st *cacheState) []func(context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state.Store(st)
	if g.done {
		return nil
	}

	g.done = true
	close(g.populated)

	waiting := g.waiting
	g.waiting = nil

	return waiting
}

// enqueue stores fn until the first commit. Returns false if the cache is
// already populated, fn is not stored in that case.
func (g *cacheGate) enqueue(fn func(context.Context)) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.done {
		return false
	}
	g.waiting = append(g.waiting, fn)

	return true
}

func (g *cacheGate) wait(ctx context.Context) error {
	select {
	case <-g.populated:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
