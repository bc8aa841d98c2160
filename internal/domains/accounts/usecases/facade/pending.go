package facade

import (
	"context"
	"sync"

	"github.com/quenbyako/accountcache/contrib/observable"
)

// pendingUpdates counts scheduled refreshes that did not finish yet.
type pendingUpdates struct {
	mu      sync.Mutex
	count   int
	waiting []func(context.Context)

	value   *observable.Value[bool]
	onPanic func(context.Context, any)
}

func newPendingUpdates(onPanic func(context.Context, any)) *pendingUpdates {
	return &pendingUpdates{
		value:   observable.New(false),
		onPanic: onPanic,
	}
}

func (p *pendingUpdates) begin() {
	p.mu.Lock()
	p.count++
	p.mu.Unlock()

	p.value.Update(p.recompute)
}

// end finishes one update. When the counter drops to zero, waiters run with
// ctx after every subscriber of value has seen false.
func (p *pendingUpdates) end(ctx context.Context) {
	p.mu.Lock()
	if p.count == 0 {
		p.mu.Unlock()
		panic("facade: end of update without matching begin")
	}

	p.count--
	var drained []func(context.Context)
	if p.count == 0 {
		drained, p.waiting = p.waiting, nil
	}
	p.mu.Unlock()

	if len(drained) == 0 {
		p.value.Update(p.recompute)
		return
	}

	p.value.UpdateThen(p.recompute, func() { callAll(ctx, p.onPanic, drained) })
}

// wait runs fn with ctx right away when nothing is pending, otherwise once the
// counter drops back to zero.
func (p *pendingUpdates) wait(ctx context.Context, fn func(context.Context)) {
	p.mu.Lock()
	if p.count > 0 {
		p.waiting = append(p.waiting, fn)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	fn(ctx)
}

func (p *pendingUpdates) pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.count > 0
}

// recompute runs under the observable's lock, so concurrent begin/end calls
// always leave it matching the latest counter value.
func (p *pendingUpdates) recompute(bool) bool { return p.pending() }
