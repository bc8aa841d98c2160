package facade

import (
	"context"
	"slices"
	"sync"
)

// AccountsChangeObserver is notified after every committed change of the
// visible accounts. Implementations must be comparable, pointer types are
// the usual choice.
type AccountsChangeObserver interface {
	OnAccountsChanged(ctx context.Context)
}

type observerList struct {
	mu        sync.Mutex
	observers []AccountsChangeObserver
}

func (l *observerList) add(o AccountsChangeObserver) {
	if o == nil {
		panic("facade: nil observer")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if slices.Contains(l.observers, o) {
		panic("facade: observer is already registered")
	}
	l.observers = append(l.observers, o)
}

func (l *observerList) remove(o AccountsChangeObserver) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.Index(l.observers, o)
	if i < 0 {
		panic("facade: observer is not registered")
	}
	l.observers = slices.Delete(l.observers, i, i+1)
}

// notify calls every observer registered at the moment of the call.
// Observers may add or remove observers (including themselves) meanwhile.
// A panicking observer is reported to onPanic and the rest are still called.
func (l *observerList) notify(ctx context.Context, onPanic func(context.Context, any)) {
	l.mu.Lock()
	observers := slices.Clone(l.observers)
	l.mu.Unlock()

	for _, o := range observers {
		callGuarded(ctx, onPanic, func() { o.OnAccountsChanged(ctx) })
	}
}

type channelObserver struct {
	ch chan struct{}
}

func (c *channelObserver) OnAccountsChanged(context.Context) {
	select {
	case c.ch <- struct{}{}:
	default:
	}
}
