package idprovider

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	cache "github.com/quenbyako/accountcache/contrib/sf-cache"
	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"
)

const pkgName = "github.com/quenbyako/accountcache/internal/domains/accounts/usecases/idprovider"

// AccountsSource is the subset of the account cache the provider relies on.
type AccountsSource interface {
	GetAccounts(ctx context.Context) ([]ids.AccountName, error)
}

// Service maps visible accounts to their stable ids. Ids are cached until the
// account disappears from the visible set or the entry expires.
type Service struct {
	accounts AccountsSource
	resolver ports.AccountIDResolver
	ids      *cache.Cache[ids.AccountName, ids.AccountID]

	log   LogCallbacks
	trace trace.Tracer
}

type newParams struct {
	cacheSize uint
	cacheTTL  time.Duration
	log       LogCallbacks
	tracer    trace.TracerProvider
}

type NewOption func(*newParams)

func WithCacheSize(size uint) NewOption {
	return func(p *newParams) { p.cacheSize = size }
}

func WithCacheTTL(ttl time.Duration) NewOption {
	return func(p *newParams) { p.cacheTTL = ttl }
}

func WithLogCallbacks(log LogCallbacks) NewOption {
	return func(p *newParams) { p.log = log }
}

func WithTracerProvider(tp trace.TracerProvider) NewOption {
	return func(p *newParams) { p.tracer = tp }
}

func New(accounts AccountsSource, resolver ports.AccountIDResolver, opts ...NewOption) *Service {
	p := newParams{
		cacheSize: 1024,
		cacheTTL:  time.Hour,
		log:       NoOpLogCallbacks{},
		tracer:    noop.NewTracerProvider(),
	}
	for _, opt := range opts {
		opt(&p)
	}

	s := &Service{
		accounts: accounts,
		resolver: resolver,
		log:      p.log,
		trace:    p.tracer.Tracer(pkgName),
	}
	if err := s.validate(p); err != nil {
		panic(err)
	}

	s.ids = cache.New(s.resolve, nil, p.cacheSize, p.cacheTTL)

	return s
}

func (s *Service) validate(p newParams) error {
	var errs []error
	if s.accounts == nil {
		errs = append(errs, errors.New("accounts source is required"))
	}
	if s.resolver == nil {
		errs = append(errs, errors.New("account id resolver is required"))
	}
	if p.cacheSize == 0 {
		errs = append(errs, errors.New("cache size must be positive"))
	}
	if s.log == nil {
		errs = append(errs, errors.New("log callbacks are required"))
	}

	return errors.Join(errs...)
}

// GetAccountID returns the stable id of a visible account. Unknown or
// filtered out accounts are reported as ports.ErrNotFound.
func (s *Service) GetAccountID(ctx context.Context, account ids.AccountName) (ids.AccountID, error) {
	ctx, span := s.trace.Start(ctx, "Service.GetAccountID", trace.WithAttributes(
		attribute.String("account", account.String()),
	))
	defer span.End()

	if !account.Valid() {
		return ids.AccountID{}, fmt.Errorf("invalid account name %q", account.String())
	}

	visible, err := s.accounts.GetAccounts(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "listing accounts")

		return ids.AccountID{}, err
	}
	if !slices.Contains(visible, account) {
		return ids.AccountID{}, fmt.Errorf("account %v: %w", account, ports.ErrNotFound)
	}

	id, err := s.ids.Get(ctx, account)
	if err != nil {
		s.log.ResolveFailed(ctx, account, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolving account id")

		return ids.AccountID{}, err
	}

	return id, nil
}

// CanBeUsed reports whether ids can be resolved right now.
func (s *Service) CanBeUsed(ctx context.Context) bool {
	return s.resolver.Ping(ctx) == nil
}

// OnAccountsChanged drops cached ids of accounts that are no longer visible.
func (s *Service) OnAccountsChanged(ctx context.Context) {
	visible, err := s.accounts.GetAccounts(ctx)
	if err != nil {
		// failed listing: nothing is known to be visible
		visible = nil
	}

	removed := s.ids.Retain(func(account ids.AccountName) bool {
		return slices.Contains(visible, account)
	})
	if removed > 0 {
		s.log.IDsPurged(ctx, removed)
	}
}

// Close drops every cached id. GetAccountID fails afterwards.
func (s *Service) Close() error {
	return s.ids.Close()
}

func (s *Service) resolve(ctx context.Context, account ids.AccountName) (ids.AccountID, error) {
	id, err := s.resolver.ResolveAccountID(ctx, account)
	if err != nil {
		return ids.AccountID{}, fmt.Errorf("resolving id of %v: %w", account, err)
	}

	return id, nil
}
