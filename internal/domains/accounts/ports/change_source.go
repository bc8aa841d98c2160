package ports

import (
	"context"
)

//go:generate stringer -type=ChangeKind -linecomment

// ChangeKind tells which part of the platform state has changed.
type ChangeKind uint8

const (
	_ ChangeKind = iota
	ChangeAccounts     // accounts
	ChangeRestrictions // restrictions
)

func ParseChangeKind(s string) (ChangeKind, error) {
	switch s {
	case ChangeAccounts.String():
		return ChangeAccounts, nil
	case ChangeRestrictions.String():
		return ChangeRestrictions, nil
	default:
		return 0, ErrInvalidChangeKind(s)
	}
}

// ChangeSource delivers platform broadcasts about account or restriction
// changes. Delivery is best-effort: events may be coalesced or dropped when
// the consumer is slow.
type ChangeSource interface {
	// Watch subscribes to change events. The returned channel is closed when
	// ctx is done or the source fails permanently.
	Watch(ctx context.Context) (<-chan ChangeKind, error)
}

type ChangeSourceFactory interface {
	ChangeSource() ChangeSource
}

func NewChangeSource(factory ChangeSourceFactory) ChangeSource { return factory.ChangeSource() }

// ChangeNotifier announces a platform change to every ChangeSource watcher,
// including ones in other processes.
type ChangeNotifier interface {
	// Notify returns ErrRateLimited if kind was announced too often.
	Notify(ctx context.Context, kind ChangeKind) error
}

type ChangeNotifierFactory interface {
	ChangeNotifier() ChangeNotifier
}

func NewChangeNotifier(factory ChangeNotifierFactory) ChangeNotifier {
	return factory.ChangeNotifier()
}
