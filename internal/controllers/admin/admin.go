package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/quenbyako/accountcache/contrib/observable"
	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"
	"github.com/quenbyako/accountcache/internal/domains/accounts/usecases/facade"
)

// AccountCache is the part of facade.Service exposed over HTTP.
type AccountCache interface {
	GetAccounts(ctx context.Context) ([]ids.AccountName, error)
	IsCachePopulated() bool
	IsUpdatePending() observable.Observable[bool]
	WaitForPendingUpdates(ctx context.Context, fn func(ctx context.Context))
	RefreshAccounts()
	RefreshRestrictions()
	State() facade.RefreshState
}

type IDProvider interface {
	GetAccountID(ctx context.Context, account ids.AccountName) (ids.AccountID, error)
	CanBeUsed(ctx context.Context) bool
}

var (
	_ AccountCache = (*facade.Service)(nil)
)

type Handler struct {
	cache    AccountCache
	ids      IDProvider
	notifier ports.ChangeNotifier
}

type newParams struct {
	gatherer prometheus.Gatherer
	notifier ports.ChangeNotifier
	tracer   trace.TracerProvider
}

type NewOption func(*newParams)

// WithGatherer exposes the gathered metrics on GET /metrics.
func WithGatherer(g prometheus.Gatherer) NewOption {
	return func(p *newParams) { p.gatherer = g }
}

// WithNotifier lets POST /accounts/refresh?broadcast=true announce the
// refresh to every other cache instance.
func WithNotifier(n ports.ChangeNotifier) NewOption {
	return func(p *newParams) { p.notifier = n }
}

func WithTracerProvider(tp trace.TracerProvider) NewOption {
	return func(p *newParams) { p.tracer = tp }
}

func NewHandler(cache AccountCache, idp IDProvider, opts ...NewOption) http.Handler {
	p := newParams{
		tracer: noop.NewTracerProvider(),
	}
	for _, opt := range opts {
		opt(&p)
	}

	if cache == nil || idp == nil {
		panic("admin handler requires account cache and id provider")
	}

	h := &Handler{cache: cache, ids: idp, notifier: p.notifier}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /accounts", h.listAccounts)
	mux.HandleFunc("GET /accounts/status", h.status)
	mux.HandleFunc("POST /accounts/refresh", h.refresh)
	mux.HandleFunc("GET /accounts/{name}/id", h.accountID)
	if p.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{}))
	}

	return otelhttp.NewHandler(mux, "admin", otelhttp.WithTracerProvider(p.tracer))
}

type accountsResponse struct {
	Accounts []string `json:"accounts"`
}

type statusResponse struct {
	Populated     bool   `json:"populated"`
	UpdatePending bool   `json:"update_pending"`
	State         string `json:"state"`
	IDsAvailable  bool   `json:"ids_available"`
}

type idResponse struct {
	Account string `json:"account"`
	ID      string `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	wait, err := boolQuery(r, "wait")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if !wait && !h.cache.IsCachePopulated() {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "accounts are not loaded yet"})
		return
	}

	accounts, err := h.cache.GetAccounts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accountsResponse{Accounts: ids.Names(accounts)})
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.currentStatus(r.Context()))
}

func (h *Handler) currentStatus(ctx context.Context) statusResponse {
	return statusResponse{
		Populated:     h.cache.IsCachePopulated(),
		UpdatePending: h.cache.IsUpdatePending().Get(),
		State:         h.cache.State().String(),
		IDsAvailable:  h.ids.CanBeUsed(ctx),
	}
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	wait, err := boolQuery(r, "wait")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	broadcast, err := boolQuery(r, "broadcast")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if broadcast {
		if h.notifier == nil {
			writeJSON(w, http.StatusNotImplemented, errorResponse{Error: "change broadcasting is not configured"})
			return
		}

		for _, kind := range []ports.ChangeKind{ports.ChangeRestrictions, ports.ChangeAccounts} {
			if err := h.notifier.Notify(r.Context(), kind); err != nil {
				writeError(w, err)
				return
			}
		}
	}

	h.cache.RefreshRestrictions()
	h.cache.RefreshAccounts()

	if !wait {
		writeJSON(w, http.StatusAccepted, h.currentStatus(r.Context()))
		return
	}

	done := make(chan struct{})
	h.cache.WaitForPendingUpdates(r.Context(), func(context.Context) { close(done) })

	select {
	case <-done:
		writeJSON(w, http.StatusOK, h.currentStatus(r.Context()))
	case <-r.Context().Done():
		writeError(w, r.Context().Err())
	}
}

func (h *Handler) accountID(w http.ResponseWriter, r *http.Request) {
	account, err := ids.NewAccountName(r.PathValue("name"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	id, err := h.ids.GetAccountID(r.Context(), account)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, idResponse{Account: id.Account().String(), ID: id.ID()})
}

func boolQuery(r *http.Request, key string) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return false, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New("query parameter " + key + " must be a boolean")
	}

	return v, nil
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var delegateErr *ports.DelegateError
	switch {
	case errors.Is(err, ports.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ports.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.As(err, &delegateErr), errors.Is(err, ports.ErrUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		status = http.StatusGatewayTimeout
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
