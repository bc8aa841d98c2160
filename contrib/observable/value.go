// Package observable provides a value holder that notifies subscribers about
// every change.
package observable

import (
	"sync"
)

// Observable is a read-only view of a value that can change over time.
type Observable[T any] interface {
	// Get returns the latest stored value.
	Get() T
	// Observe registers fn to be called with each new value. Returned function
	// unregisters fn; it is safe to call it more than once.
	Observe(fn func(T)) (stop func())
}

type subscriber[T any] struct {
	fn func(T)
}

type update[T any] struct {
	val     T
	changed bool
	after   func()
}

// Value is a thread-safe Observable that can be modified.
//
// Notifications are delivered in the same order values were stored, never
// while internal locks are held, and never concurrently: if a subscriber
// changes the value again, the nested notification is queued and delivered
// after the current one completes.
//
// Because of that queueing, Update may return before subscribers have seen
// the new value when another goroutine is already delivering notifications.
// Use UpdateThen for work that must happen after delivery.
type Value[T comparable] struct {
	mu          sync.Mutex
	val         T
	subscribers []*subscriber[T]

	pending     []update[T]
	dispatching bool
}

var _ Observable[bool] = (*Value[bool])(nil)

func New[T comparable](initial T) *Value[T] {
	return &Value[T]{val: initial}
}

func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.val
}

// Set stores val and notifies subscribers if it differs from the current one.
func (v *Value[T]) Set(val T) { v.Update(func(T) T { return val }) }

// Update atomically replaces the value with fn(old). fn is called with the
// internal lock held, so it must not touch v.
func (v *Value[T]) Update(fn func(old T) T) { v.UpdateThen(fn, nil) }

// UpdateThen is Update followed by after, which runs once every subscriber
// has been notified about this update (or right away, in order with earlier
// updates, if the value did not change). after runs on whichever goroutine
// delivers the notification, which is not necessarily the caller.
func (v *Value[T]) UpdateThen(fn func(old T) T, after func()) {
	v.mu.Lock()
	next := fn(v.val)
	changed := next != v.val
	if !changed && after == nil {
		v.mu.Unlock()
		return
	}
	v.val = next
	v.pending = append(v.pending, update[T]{val: next, changed: changed, after: after})
	v.mu.Unlock()

	v.dispatch()
}

func (v *Value[T]) Observe(fn func(T)) (stop func()) {
	if fn == nil {
		panic("nil observer")
	}

	s := &subscriber[T]{fn: fn}

	v.mu.Lock()
	v.subscribers = append(v.subscribers, s)
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()

			for i, other := range v.subscribers {
				if other == s {
					v.subscribers = append(v.subscribers[:i:i], v.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

func (v *Value[T]) dispatch() {
	v.mu.Lock()
	if v.dispatching {
		v.mu.Unlock()
		return
	}
	v.dispatching = true

	// callbacks run unlocked, a panicking one must not leave dispatching set
	defer func() {
		if r := recover(); r != nil {
			v.mu.Lock()
			v.dispatching = false
			v.mu.Unlock()
			panic(r)
		}
	}()

	for len(v.pending) > 0 {
		next := v.pending[0]
		v.pending = v.pending[1:]
		subs := append([]*subscriber[T](nil), v.subscribers...)
		v.mu.Unlock()

		if next.changed {
			for _, s := range subs {
				s.fn(next.val)
			}
		}
		if next.after != nil {
			next.after()
		}

		v.mu.Lock()
	}

	v.dispatching = false
	v.mu.Unlock()
}
