package admin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/k0kubun/pp/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quenbyako/accountcache/internal/adapters/mocks"
	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"
	"github.com/quenbyako/accountcache/internal/domains/accounts/usecases/facade"
	"github.com/quenbyako/accountcache/internal/domains/accounts/usecases/idprovider"

	. "github.com/quenbyako/accountcache/internal/controllers/admin"
)

var (
	alice = must(ids.NewAccountName("alice@example.com"))
	bob   = must(ids.NewAccountName("bob@example.com"))
)

type fixture struct {
	handler  http.Handler
	lister   *mocks.MockAccountLister
	resolver *mocks.MockAccountIDResolver
	cache    *facade.Service
}

func newFixture(t *testing.T, opts ...NewOption) *fixture {
	t.Helper()

	f := &fixture{
		lister:   mocks.NewMockAccountLister(t),
		resolver: mocks.NewMockAccountIDResolver(t),
	}

	reg := prometheus.NewRegistry()
	f.cache = facade.New(f.lister, facade.WithManualRefresh(), facade.WithMetrics(reg))
	ids := idprovider.New(f.cache, f.resolver)
	f.cache.AddObserver(ids)

	f.handler = NewHandler(f.cache, ids, append([]NewOption{WithGatherer(reg)}, opts...)...)

	return f
}

func (f *fixture) do(t *testing.T, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		return rec, nil
	}

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestListAccountsBeforePopulation(t *testing.T) {
	f := newFixture(t)

	rec, body := f.do(t, http.MethodGet, "/accounts")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, body["error"], "not loaded")
}

func TestRefreshAndList(t *testing.T) {
	f := newFixture(t)
	f.lister.EXPECT().ListAccounts(mock.Anything).Return([]ids.AccountName{alice, bob}, nil).Once()
	f.resolver.EXPECT().Ping(mock.Anything).Return(nil)

	rec, body := f.do(t, http.MethodPost, "/accounts/refresh?wait=true")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, map[string]any{
		"populated":      true,
		"update_pending": false,
		"state":          "Idle",
		"ids_available":  true,
	}, body)

	rec, body = f.do(t, http.MethodGet, "/accounts")
	pp.Println(body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []any{"alice@example.com", "bob@example.com"}, body["accounts"])
}

func TestRefreshBroadcast(t *testing.T) {
	notifier := mocks.NewMockChangeNotifier(t)
	f := newFixture(t, WithNotifier(notifier))

	var kinds []ports.ChangeKind
	notifier.EXPECT().Notify(mock.Anything, mock.Anything).
		Run(func(_ context.Context, kind ports.ChangeKind) { kinds = append(kinds, kind) }).
		Return(nil).
		Twice()
	f.lister.EXPECT().ListAccounts(mock.Anything).Return([]ids.AccountName{alice}, nil).Once()
	f.resolver.EXPECT().Ping(mock.Anything).Return(nil)

	rec, body := f.do(t, http.MethodPost, "/accounts/refresh?wait=true&broadcast=true")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, body["populated"])
	require.Equal(t, []ports.ChangeKind{ports.ChangeRestrictions, ports.ChangeAccounts}, kinds)
}

func TestRefreshBroadcastRateLimited(t *testing.T) {
	notifier := mocks.NewMockChangeNotifier(t)
	f := newFixture(t, WithNotifier(notifier))

	notifier.EXPECT().Notify(mock.Anything, ports.ChangeRestrictions).Return(ports.ErrRateLimited).Once()

	rec, body := f.do(t, http.MethodPost, "/accounts/refresh?broadcast=true")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Contains(t, body["error"], "rate limited")
	require.False(t, f.cache.IsCachePopulated())
}

func TestRefreshBroadcastNotConfigured(t *testing.T) {
	f := newFixture(t)

	rec, body := f.do(t, http.MethodPost, "/accounts/refresh?broadcast=true")
	require.Equal(t, http.StatusNotImplemented, rec.Code)
	require.Contains(t, body["error"], "not configured")
}

func TestListAccountsDelegateFailure(t *testing.T) {
	f := newFixture(t)
	f.lister.EXPECT().ListAccounts(mock.Anything).Return(nil, ports.ErrUnavailable).Once()

	f.cache.RefreshAccounts()

	rec, body := f.do(t, http.MethodGet, "/accounts?wait=true")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, body["error"], "account delegate")
}

func TestListAccountsBadQuery(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodGet, "/accounts?wait=maybe")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAccountsWaitTimeout(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts?wait=true", nil).WithContext(ctx))
	require.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestAccountID(t *testing.T) {
	f := newFixture(t)
	f.lister.EXPECT().ListAccounts(mock.Anything).Return([]ids.AccountName{alice}, nil).Once()
	f.resolver.EXPECT().ResolveAccountID(mock.Anything, alice).
		Return(must(ids.NewAccountID(alice, "6f1d2a4e")), nil).
		Once()

	f.cache.RefreshAccounts()

	rec, body := f.do(t, http.MethodGet, "/accounts/alice@example.com/id")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, map[string]any{"account": "alice@example.com", "id": "6f1d2a4e"}, body)

	rec, _ = f.do(t, http.MethodGet, "/accounts/bob@example.com/id")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusBeforePopulation(t *testing.T) {
	f := newFixture(t)
	f.resolver.EXPECT().Ping(mock.Anything).Return(ports.ErrUnavailable)

	rec, body := f.do(t, http.MethodGet, "/accounts/status")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, body["populated"])
	require.Equal(t, false, body["ids_available"])
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "accountcache_update_pending")
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
