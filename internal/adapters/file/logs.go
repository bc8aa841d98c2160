package file

import "context"

// LogCallbacks reports problems the watcher recovers from on its own.
type LogCallbacks interface {
	// WatchReadFailed is called when the file can't be read or parsed
	// after a change. Watching continues.
	WatchReadFailed(ctx context.Context, path string, err error)
	// WatchFailed is called for errors reported by the filesystem watcher.
	WatchFailed(ctx context.Context, path string, err error)
}

type NoOpLogCallbacks struct{}

var _ LogCallbacks = NoOpLogCallbacks{}

func (NoOpLogCallbacks) WatchReadFailed(context.Context, string, error) {}
func (NoOpLogCallbacks) WatchFailed(context.Context, string, error)     {}
