package facade

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/quenbyako/accountcache/contrib/metricutils"
	"github.com/quenbyako/accountcache/contrib/observable"
	"github.com/quenbyako/accountcache/internal/domains/accounts/entities"
	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"
)

const pkgName = "github.com/quenbyako/accountcache/internal/domains/accounts/usecases/facade"

// Service keeps a process-wide cache of accounts known to the platform.
//
// All refreshes run on a single executor goroutine. Readers may call any
// method from any goroutine; GetAccounts is the only method that may block.
type Service struct {
	lister       ports.AccountLister
	restrictions ports.RestrictionProvider
	changes      ports.ChangeSource

	exec      *serialExecutor
	gate      *cacheGate
	pending   *pendingUpdates
	observers observerList

	patterns atomic.Pointer[entities.RestrictionPatterns]
	state    atomic.Uint32

	log     LogCallbacks
	trace   trace.Tracer
	metrics serviceMetrics
}

type serviceMetrics struct {
	refreshes       metricutils.Counter
	failures        metricutils.Counter
	restrictionErrs metricutils.Counter
	duration        metricutils.Observer
	pending         metricutils.Gauge
}

type newParams struct {
	restrictions  ports.RestrictionProvider
	changes       ports.ChangeSource
	log           LogCallbacks
	tracer        trace.TracerProvider
	registerer    prometheus.Registerer
	manualRefresh bool
}

type NewOption func(*newParams)

// WithRestrictionProvider enables account filtering by restriction patterns.
func WithRestrictionProvider(r ports.RestrictionProvider) NewOption {
	return func(p *newParams) { p.restrictions = r }
}

// WithChangeSource makes Run refresh the cache on platform broadcasts.
func WithChangeSource(c ports.ChangeSource) NewOption {
	return func(p *newParams) { p.changes = c }
}

func WithLogCallbacks(log LogCallbacks) NewOption {
	return func(p *newParams) { p.log = log }
}

func WithTracerProvider(tp trace.TracerProvider) NewOption {
	return func(p *newParams) { p.tracer = tp }
}

func WithMetrics(reg prometheus.Registerer) NewOption {
	return func(p *newParams) { p.registerer = reg }
}

// WithManualRefresh disables the refresh that New schedules by default.
func WithManualRefresh() NewOption {
	return func(p *newParams) { p.manualRefresh = true }
}

func New(lister ports.AccountLister, opts ...NewOption) *Service {
	p := newParams{
		restrictions: noRestrictions{},
		log:          NoOpLogCallbacks{},
		tracer:       noop.NewTracerProvider(),
	}
	for _, opt := range opts {
		opt(&p)
	}

	s := &Service{
		lister:       lister,
		restrictions: p.restrictions,
		changes:      p.changes,

		gate: newCacheGate(),

		log:     p.log,
		trace:   p.tracer.Tracer(pkgName),
		metrics: newServiceMetrics(p.registerer),
	}
	if err := s.validate(); err != nil {
		panic(err)
	}

	s.pending = newPendingUpdates(s.log.TaskPanicked)
	s.pending.value.Observe(metricutils.BoolGauge(s.metrics.pending))
	s.exec = newSerialExecutor(s.log.TaskPanicked)

	// Patterns go first, so the very first visible snapshot is already
	// filtered.
	if !p.manualRefresh {
		s.RefreshRestrictions()
		s.RefreshAccounts()
	}

	return s
}

func (s *Service) validate() error {
	switch {
	case s.lister == nil:
		return errors.New("account lister is required")
	case s.restrictions == nil:
		return errors.New("restriction provider is required")
	case s.log == nil:
		return errors.New("log callbacks are required")
	default:
		return nil
	}
}

func newServiceMetrics(reg prometheus.Registerer) serviceMetrics {
	if reg == nil {
		return serviceMetrics{
			refreshes:       metricutils.NoOpCounter{},
			failures:        metricutils.NoOpCounter{},
			restrictionErrs: metricutils.NoOpCounter{},
			duration:        metricutils.NoOpObserver{},
			pending:         metricutils.NoOpGauge{},
		}
	}

	return serviceMetrics{
		refreshes: metricutils.NewCounterAndRegister(reg, prometheus.CounterOpts{
			Name: "accountcache_account_refreshes_total",
			Help: "Number of finished account list refreshes.",
		}),
		failures: metricutils.NewCounterAndRegister(reg, prometheus.CounterOpts{
			Name: "accountcache_account_refresh_failures_total",
			Help: "Number of account list refreshes that ended with an error snapshot.",
		}),
		restrictionErrs: metricutils.NewCounterAndRegister(reg, prometheus.CounterOpts{
			Name: "accountcache_restriction_refresh_failures_total",
			Help: "Number of failed restriction pattern refreshes.",
		}),
		duration: metricutils.NewHistogramAndRegister(reg, prometheus.HistogramOpts{
			Name:    "accountcache_account_refresh_duration_seconds",
			Help:    "Time spent listing accounts.",
			Buckets: prometheus.DefBuckets,
		}),
		pending: metricutils.NewGaugeAndRegister(reg, prometheus.GaugeOpts{
			Name: "accountcache_update_pending",
			Help: "1 while at least one refresh is in flight.",
		}),
	}
}

// GetAccounts returns the visible accounts of the latest snapshot. Before the
// first refresh finishes it blocks until it does or ctx is done. Failed
// refreshes are reported as *ports.DelegateError.
//
// Calling it with a context handed out by the refresh executor (to observers
// and to RunAfterCachePopulated or WaitForPendingUpdates callbacks) before
// the cache is populated returns ErrBlockingRefreshContext.
func (s *Service) GetAccounts(ctx context.Context) ([]ids.AccountName, error) {
	if st := s.gate.load(); st != nil {
		return st.visible.Accounts()
	}

	if isRefreshContext(ctx) {
		return nil, ErrBlockingRefreshContext
	}

	if err := s.gate.wait(ctx); err != nil {
		return nil, err
	}

	return s.gate.load().visible.Accounts()
}

// GetAccountsAsync calls cb with the visible accounts once the cache is
// populated. cb is never called synchronously.
func (s *Service) GetAccountsAsync(cb func([]ids.AccountName, error)) {
	s.RunAfterCachePopulated(func(context.Context) {
		cb(s.gate.load().visible.Accounts())
	})
}

// RunAfterCachePopulated schedules fn on the refresh executor once the cache
// has a snapshot. Callbacks waiting for the first snapshot run in
// registration order right after it is committed. fn gets the executor's
// context.
func (s *Service) RunAfterCachePopulated(fn func(ctx context.Context)) {
	if fn == nil {
		panic("facade: nil callback")
	}

	if s.gate.enqueue(fn) {
		return
	}

	s.exec.post(fn)
}

func (s *Service) IsCachePopulated() bool { return s.gate.isPopulated() }

// IsUpdatePending is true while at least one scheduled refresh (of accounts or
// of restriction patterns) has not finished.
func (s *Service) IsUpdatePending() observable.Observable[bool] { return s.pending.value }

// WaitForPendingUpdates calls fn once no refresh is pending and IsUpdatePending
// subscribers have seen false. Drained callbacks get the executor's context.
// If nothing is pending, fn is called right away on the calling goroutine
// with ctx.
func (s *Service) WaitForPendingUpdates(ctx context.Context, fn func(ctx context.Context)) {
	if fn == nil {
		panic("facade: nil callback")
	}

	s.pending.wait(ctx, fn)
}

// AddObserver registers o for change notifications. Registering the same
// observer twice panics.
func (s *Service) AddObserver(o AccountsChangeObserver) { s.observers.add(o) }

// RemoveObserver unregisters o. Removing an unknown observer panics.
func (s *Service) RemoveObserver(o AccountsChangeObserver) { s.observers.remove(o) }

// Watch returns a channel that receives a value after accounts change.
// Notifications are coalesced if the receiver is slow. stop must be called
// to release the subscription.
func (s *Service) Watch() (changes <-chan struct{}, stop func()) {
	o := &channelObserver{ch: make(chan struct{}, 1)}
	s.observers.add(o)

	var once sync.Once
	return o.ch, func() { once.Do(func() { s.observers.remove(o) }) }
}

// State returns what the refresh executor is doing right now.
func (s *Service) State() RefreshState { return RefreshState(s.state.Load()) }

func (s *Service) setState(ctx context.Context, to RefreshState) {
	from := RefreshState(s.state.Swap(uint32(to)))
	if from != to {
		s.log.StateChanged(ctx, from, to)
	}
}

func (s *Service) currentPatterns() entities.RestrictionPatterns {
	if p := s.patterns.Load(); p != nil {
		return *p
	}

	return entities.RestrictionPatterns{}
}

type noRestrictions struct{}

func (noRestrictions) RestrictionPatterns(context.Context) (entities.RestrictionPatterns, error) {
	return entities.RestrictionPatterns{}, nil
}
