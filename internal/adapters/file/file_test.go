package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
	"github.com/quenbyako/accountcache/internal/domains/accounts/ports/testsuite"
	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"

	. "github.com/quenbyako/accountcache/internal/adapters/file"
)

const storage = `
accounts:
  - name: alice@example.com
    id: 6f1d2a4e
  - name: bob@example.com
    id: 0b7c9e11
  - name: carol@corp.example.org
restrictions:
  - "*@example.com"
`

func TestFileAccountLister(t *testing.T) {
	f := New(writeStorage(t, storage))

	testsuite.RunAccountListerTests(f,
		testsuite.WithExpectedAccounts("alice@example.com", "bob@example.com", "carol@corp.example.org"),
		testsuite.WithStableOrder(),
	)(t)
}

func TestFileAccountIDResolver(t *testing.T) {
	f := New(writeStorage(t, storage))

	testsuite.RunAccountIDResolverTests(f,
		testsuite.WithKnownAccount("bob@example.com", "0b7c9e11"),
		testsuite.WithUnknownAccount("dave@example.com"),
	)(t)
}

func TestFileAccountWithoutID(t *testing.T) {
	f := New(writeStorage(t, storage))

	_, err := f.ResolveAccountID(t.Context(), must(ids.NewAccountName("carol@corp.example.org")))
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestFileRestrictionPatterns(t *testing.T) {
	f := New(writeStorage(t, storage))

	patterns, err := f.RestrictionPatterns(t.Context())
	require.NoError(t, err)
	require.Equal(t, []string{"*@example.com"}, patterns.Patterns())
}

func TestFileWithoutRestrictions(t *testing.T) {
	f := New(writeStorage(t, "accounts:\n  - name: alice\n"))

	patterns, err := f.RestrictionPatterns(t.Context())
	require.NoError(t, err)
	require.True(t, patterns.Empty())
}

func TestFileMissing(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := f.ListAccounts(t.Context())
	require.ErrorIs(t, err, ports.ErrUnavailable)

	var delegateErr *ports.DelegateError
	require.ErrorAs(t, err, &delegateErr)

	require.Error(t, f.Ping(t.Context()))
}

func TestFileInvalidAccount(t *testing.T) {
	f := New(writeStorage(t, "accounts:\n  - name: \"two words\"\n"))

	_, err := f.ListAccounts(t.Context())
	require.Error(t, err)
}

func TestFileWatch(t *testing.T) {
	path := writeStorage(t, storage)
	f := New(path)

	changes, err := f.Watch(t.Context())
	require.NoError(t, err)

	replaceStorage(t, path, `
accounts:
  - name: alice@example.com
    id: 6f1d2a4e
  - name: bob@example.com
    id: 0b7c9e11
  - name: carol@corp.example.org
restrictions:
  - "*"
`)
	require.Equal(t, ports.ChangeRestrictions, receive(t, changes))

	replaceStorage(t, path, `
accounts:
  - name: alice@example.com
    id: 6f1d2a4e
restrictions:
  - "*"
`)
	require.Equal(t, ports.ChangeAccounts, receive(t, changes))
}

func TestFileWatchReportsReadFailures(t *testing.T) {
	path := writeStorage(t, storage)
	log := &readFailures{errs: make(chan error, 4)}
	f := New(path, WithLogCallbacks(log))

	changes, err := f.Watch(t.Context())
	require.NoError(t, err)

	replaceStorage(t, path, "accounts: [unclosed\n")

	// unreadable file counts as a change of everything
	require.ElementsMatch(t,
		[]ports.ChangeKind{ports.ChangeAccounts, ports.ChangeRestrictions},
		[]ports.ChangeKind{receive(t, changes), receive(t, changes)},
	)

	select {
	case err := <-log.errs:
		require.ErrorContains(t, err, "failed to parse account file")
	case <-time.After(5 * time.Second):
		require.FailNow(t, "read failure was not reported")
	}
}

type readFailures struct {
	NoOpLogCallbacks
	errs chan error
}

func (r *readFailures) WatchReadFailed(_ context.Context, _ string, err error) {
	select {
	case r.errs <- err:
	default:
	}
}

func TestFileWatchStopsWithContext(t *testing.T) {
	f := New(writeStorage(t, storage))

	ctx, cancel := context.WithCancel(t.Context())
	changes, err := f.Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-changes:
		require.False(t, ok)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "channel was not closed")
	}
}

func writeStorage(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "accounts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// replaceStorage swaps the file atomically, so the watcher never sees it
// half-written.
func replaceStorage(t *testing.T, path, content string) {
	t.Helper()

	tmp := filepath.Join(t.TempDir(), "next.yaml")
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o600))
	require.NoError(t, os.Rename(tmp, path))
}

func receive(t *testing.T, changes <-chan ports.ChangeKind) ports.ChangeKind {
	t.Helper()

	select {
	case kind, ok := <-changes:
		require.True(t, ok, "changes channel closed")
		return kind
	case <-time.After(5 * time.Second):
		require.FailNow(t, "no change received")
		return 0
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
