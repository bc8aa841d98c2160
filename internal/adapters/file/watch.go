package file

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"

	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
)

// Watch implements ports.ChangeSource. The parent directory is watched, so
// atomic replaces (write to temp file, then rename) are noticed too. Only
// sections that actually changed are reported.
func (f *File) Watch(ctx context.Context) (<-chan ports.ChangeKind, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	path, err := filepath.Abs(f.path)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("resolving %v: %w", f.path, err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %v: %w", filepath.Dir(path), err)
	}

	last, err := f.read()
	if err != nil {
		f.log.WatchReadFailed(ctx, f.path, err)
	}

	changes := make(chan ports.ChangeKind, 2)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) {
					continue
				}

				current, err := f.read()
				if err != nil {
					f.log.WatchReadFailed(ctx, f.path, err)
				}
				for _, kind := range diff(last, current) {
					select {
					case changes <- kind:
					case <-ctx.Done():
						return
					}
				}
				last = current

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				f.log.WatchFailed(ctx, f.path, err)
			}
		}
	}()

	return changes, nil
}

// diff reports which sections differ. Unreadable file counts as a change of
// everything, so consumers pick up the failure.
func diff(prev, next *storageSchema) []ports.ChangeKind {
	if prev == nil || next == nil {
		if prev == nil && next == nil {
			return nil
		}

		return []ports.ChangeKind{ports.ChangeAccounts, ports.ChangeRestrictions}
	}

	var res []ports.ChangeKind
	if !slices.Equal(prev.Accounts, next.Accounts) {
		res = append(res, ports.ChangeAccounts)
	}
	if !slices.Equal(prev.Restrictions, next.Restrictions) {
		res = append(res, ports.ChangeRestrictions)
	}

	return res
}
