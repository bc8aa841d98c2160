package facade

import (
	"context"
	"sync"
)

type refreshContextKey struct{}

func withRefreshContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, refreshContextKey{}, true)
}

func isRefreshContext(ctx context.Context) bool {
	v, _ := ctx.Value(refreshContextKey{}).(bool)
	return v
}

type task func(ctx context.Context)

// serialExecutor runs posted tasks one by one, in posting order, on a single
// goroutine. Posting never blocks. Tasks are never cancelled.
type serialExecutor struct {
	mu    sync.Mutex
	queue []task
	wake  chan struct{}

	onPanic func(ctx context.Context, recovered any)
}

func newSerialExecutor(onPanic func(context.Context, any)) *serialExecutor {
	e := &serialExecutor{
		wake:    make(chan struct{}, 1),
		onPanic: onPanic,
	}
	go e.loop(withRefreshContext(context.Background()))

	return e
}

func (e *serialExecutor) post(t task) {
	e.mu.Lock()
	e.queue = append(e.queue, t)
	e.mu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *serialExecutor) loop(ctx context.Context) {
	for {
		e.mu.Lock()
		if len(e.queue) == 0 {
			e.mu.Unlock()
			<-e.wake
			continue
		}

		next := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		e.mu.Unlock()

		e.run(ctx, next)
	}
}

func (e *serialExecutor) run(ctx context.Context, t task) {
	callGuarded(ctx, e.onPanic, func() { t(ctx) })
}

// callGuarded runs fn and reports its panic to onPanic instead of unwinding
// the caller.
func callGuarded(ctx context.Context, onPanic func(context.Context, any), fn func()) {
	defer func() {
		if r := recover(); r != nil && onPanic != nil {
			onPanic(ctx, r)
		}
	}()

	fn()
}

// callAll runs every callback, a panic in one does not stop the rest.
func callAll(ctx context.Context, onPanic func(context.Context, any), fns []func(context.Context)) {
	for _, fn := range fns {
		callGuarded(ctx, onPanic, func() { fn(ctx) })
	}
}
