package directory_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
	"github.com/quenbyako/accountcache/internal/domains/accounts/ports/testsuite"

	. "github.com/quenbyako/accountcache/internal/adapters/directory"
)

const token = "s3cr3t"

type fakeDirectory struct {
	accounts map[string]string
	order    []string

	failures atomic.Int32 // number of requests to answer with 503
	requests atomic.Int32
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		accounts: map[string]string{
			"alice@example.com": "6f1d2a4e",
			"bob@example.com":   "0b7c9e11",
		},
		order: []string{"alice@example.com", "bob@example.com"},
	}
}

func (d *fakeDirectory) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /v1/accounts", func(w http.ResponseWriter, r *http.Request) {
		type account struct {
			Name string `json:"name"`
			ID   string `json:"id"`
		}

		res := struct {
			Accounts []account `json:"accounts"`
		}{}
		for _, name := range d.order {
			res.Accounts = append(res.Accounts, account{Name: name, ID: d.accounts[name]})
		}

		writeJSON(t, w, res)
	})

	mux.HandleFunc("GET /v1/accounts/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")

		id, ok := d.accounts[name]
		if !ok {
			http.NotFound(w, r)
			return
		}

		writeJSON(t, w, map[string]string{"name": name, "id": id})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d.requests.Add(1)

		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		assert.NoError(t, uuid.Validate(r.Header.Get("X-Request-Id")))

		if d.failures.Load() > 0 {
			d.failures.Add(-1)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func newClient(t *testing.T, d *fakeDirectory) *Client {
	t.Helper()

	srv := httptest.NewServer(d.handler(t))
	t.Cleanup(srv.Close)

	client, err := New(must(url.Parse(srv.URL)),
		WithToken(token),
		WithRetries(2, time.Millisecond),
	)
	require.NoError(t, err)

	return client
}

func TestDirectoryAccountLister(t *testing.T) {
	testsuite.RunAccountListerTests(newClient(t, newFakeDirectory()),
		testsuite.WithExpectedAccounts("alice@example.com", "bob@example.com"),
		testsuite.WithStableOrder(),
	)(t)
}

func TestDirectoryAccountIDResolver(t *testing.T) {
	testsuite.RunAccountIDResolverTests(newClient(t, newFakeDirectory()),
		testsuite.WithKnownAccount("alice@example.com", "6f1d2a4e"),
		testsuite.WithUnknownAccount("mallory@example.com"),
	)(t)
}

func TestDirectoryRetries(t *testing.T) {
	d := newFakeDirectory()
	d.failures.Store(2)

	accounts, err := newClient(t, d).ListAccounts(t.Context())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	require.EqualValues(t, 3, d.requests.Load())
}

func TestDirectoryUnavailable(t *testing.T) {
	d := newFakeDirectory()
	d.failures.Store(100)

	_, err := newClient(t, d).ListAccounts(t.Context())
	require.ErrorIs(t, err, ports.ErrUnavailable)

	var delegateErr *ports.DelegateError
	require.ErrorAs(t, err, &delegateErr)
}

func TestDirectoryTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	client, err := New(must(url.Parse(srv.URL)),
		WithTimeout(20*time.Millisecond),
		WithRetries(0, time.Millisecond),
	)
	require.NoError(t, err)

	_, err = client.ListAccounts(t.Context())
	require.ErrorIs(t, err, ports.ErrUnavailable)
}

func TestNewRequiresAddress(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	_, err = New(&url.URL{Path: "relative"})
	require.Error(t, err)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
