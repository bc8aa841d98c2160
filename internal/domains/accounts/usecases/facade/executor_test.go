package facade

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialExecutorRunsInOrder(t *testing.T) {
	exec := newSerialExecutor(nil)

	var (
		mu    sync.Mutex
		order []int
	)

	done := make(chan struct{})
	for i := range 100 {
		exec.post(func(ctx context.Context) {
			assert.True(t, isRefreshContext(ctx))

			mu.Lock()
			order = append(order, i)
			mu.Unlock()

			if i == 99 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		require.FailNow(t, "tasks did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	for i, v := range order {
		require.Equal(t, i, v)
	}
}

func TestSerialExecutorSurvivesPanic(t *testing.T) {
	recovered := make(chan any, 1)
	exec := newSerialExecutor(func(_ context.Context, r any) { recovered <- r })

	exec.post(func(context.Context) { panic("boom") })

	done := make(chan struct{})
	exec.post(func(context.Context) { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		require.FailNow(t, "executor stopped after panic")
	}
	require.Equal(t, "boom", <-recovered)
}

func TestRefreshContextMarker(t *testing.T) {
	require.False(t, isRefreshContext(t.Context()))
	require.True(t, isRefreshContext(withRefreshContext(t.Context())))
}

func TestPendingUpdatesUnbalancedEnd(t *testing.T) {
	p := newPendingUpdates(nil)
	end := func() { p.end(t.Context()) }
	require.Panics(t, end)

	p.begin()
	require.NotPanics(t, end)
	require.Panics(t, end)
}

func TestPendingUpdatesDrain(t *testing.T) {
	p := newPendingUpdates(nil)

	p.begin()
	p.begin()

	calls := 0
	p.wait(t.Context(), func(context.Context) { calls++ })
	p.wait(t.Context(), func(context.Context) { calls++ })

	p.end(t.Context())
	require.Zero(t, calls)
	require.True(t, p.value.Get())

	p.end(t.Context())
	require.Equal(t, 2, calls)
	require.False(t, p.value.Get())

	// already drained, nothing runs twice
	p.begin()
	p.end(t.Context())
	require.Equal(t, 2, calls)
}

func TestPendingUpdatesDrainPassesContext(t *testing.T) {
	p := newPendingUpdates(nil)
	p.begin()

	var got bool
	p.wait(t.Context(), func(ctx context.Context) { got = isRefreshContext(ctx) })
	p.end(withRefreshContext(t.Context()))

	require.True(t, got)
}

func TestPendingUpdatesDrainSurvivesPanic(t *testing.T) {
	var recovered []any
	p := newPendingUpdates(func(_ context.Context, r any) { recovered = append(recovered, r) })
	p.begin()

	calls := 0
	p.wait(t.Context(), func(context.Context) { panic("boom") })
	p.wait(t.Context(), func(context.Context) { calls++ })
	p.end(t.Context())

	require.Equal(t, 1, calls)
	require.Equal(t, []any{"boom"}, recovered)
}

func TestPendingUpdatesDrainAfterSubscribersSeeFalse(t *testing.T) {
	p := newPendingUpdates(nil)

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(s string) {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, s)
	}

	entered, unblock := make(chan struct{}), make(chan struct{})
	p.value.Observe(func(pending bool) {
		if pending {
			close(entered)
			<-unblock
		}
		record("pending=" + strconv.FormatBool(pending))
	})

	// begin delivers "true" on its own goroutine and gets stuck there
	begun := make(chan struct{})
	go func() {
		defer close(begun)
		p.begin()
	}()
	<-entered

	p.wait(t.Context(), func(context.Context) { record("drained") })
	p.end(t.Context())

	mu.Lock()
	require.Empty(t, order, "drain must wait for the queued notification")
	mu.Unlock()

	close(unblock)
	<-begun

	require.Equal(t, []string{"pending=true", "pending=false", "drained"}, order)
}

func TestPendingUpdatesConcurrent(t *testing.T) {
	p := newPendingUpdates(nil)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.begin()
			p.end(t.Context())
		}()
	}
	wg.Wait()

	require.False(t, p.value.Get())
	require.False(t, p.pending())
}

func TestCacheGateFirstCommit(t *testing.T) {
	g := newCacheGate()

	var calls []string
	require.True(t, g.enqueue(func(context.Context) { calls = append(calls, "a") }))
	require.True(t, g.enqueue(func(context.Context) { calls = append(calls, "b") }))

	waiting := g.commit(&cacheState{})
	require.Len(t, waiting, 2)
	callAll(t.Context(), nil, waiting)
	require.Equal(t, []string{"a", "b"}, calls)

	require.Nil(t, g.commit(&cacheState{}))
	require.False(t, g.enqueue(func(context.Context) {}))
	require.NoError(t, g.wait(t.Context()))
}
