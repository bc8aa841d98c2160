package testsuite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	suites "github.com/quenbyako/accountcache/contrib/bettersuites"
	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"
)

// RunAccountIDResolverTests checks id resolution against one known and one
// unknown account.
func RunAccountIDResolverTests(a ports.AccountIDResolver, opts ...AccountIDResolverSuiteOption) func(t *testing.T) {
	s := &AccountIDResolverTestSuite{
		adapter:        a,
		defaultTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.validate(); err != nil {
		panic(err)
	}

	return suites.Run(s)
}

type AccountIDResolverTestSuite struct {
	adapter        ports.AccountIDResolver
	known          ids.AccountID
	unknown        ids.AccountName
	defaultTimeout time.Duration
}

func (s *AccountIDResolverTestSuite) validate() error {
	var errs []error
	if s.adapter == nil {
		errs = append(errs, errors.New("adapter is nil"))
	}
	if !s.known.Valid() {
		errs = append(errs, errors.New("known account is not set"))
	}
	if !s.unknown.Valid() {
		errs = append(errs, errors.New("unknown account is not set"))
	}

	return errors.Join(errs...)
}

type AccountIDResolverSuiteOption func(*AccountIDResolverTestSuite)

func WithKnownAccount(name, id string) AccountIDResolverSuiteOption {
	return func(s *AccountIDResolverTestSuite) {
		s.known = must(ids.NewAccountID(must(ids.NewAccountName(name)), id))
	}
}

func WithUnknownAccount(name string) AccountIDResolverSuiteOption {
	return func(s *AccountIDResolverTestSuite) { s.unknown = must(ids.NewAccountName(name)) }
}

func WithResolverTimeout(timeout time.Duration) AccountIDResolverSuiteOption {
	return func(s *AccountIDResolverTestSuite) { s.defaultTimeout = timeout }
}

func (s *AccountIDResolverTestSuite) TestResolveKnown(t *testing.T) {
	ctx, cancel := contextWithTimeout(t, s.defaultTimeout)
	defer cancel()

	id, err := s.adapter.ResolveAccountID(ctx, s.known.Account())
	require.NoError(t, err)
	require.Equal(t, s.known.ID(), id.ID())
	require.Equal(t, s.known.Account(), id.Account())
}

func (s *AccountIDResolverTestSuite) TestResolveUnknown(t *testing.T) {
	ctx, cancel := contextWithTimeout(t, s.defaultTimeout)
	defer cancel()

	_, err := s.adapter.ResolveAccountID(ctx, s.unknown)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func (s *AccountIDResolverTestSuite) TestPing(t *testing.T) {
	ctx, cancel := contextWithTimeout(t, s.defaultTimeout)
	defer cancel()

	require.NoError(t, s.adapter.Ping(ctx))
}

func contextWithTimeout(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	return context.WithTimeout(t.Context(), timeout)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
