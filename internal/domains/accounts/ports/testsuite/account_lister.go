package testsuite

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	suites "github.com/quenbyako/accountcache/contrib/bettersuites"
	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"
)

// RunAccountListerTests runs the behaviour every AccountLister adapter must
// provide. The adapter must be pre-populated with exactly the accounts passed
// via WithExpectedAccounts.
func RunAccountListerTests(a ports.AccountLister, opts ...AccountListerSuiteOption) func(t *testing.T) {
	s := &AccountListerTestSuite{
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

type AccountListerTestSuite struct {
	adapter        ports.AccountLister
	expected       []ids.AccountName
	ordered        bool
	defaultTimeout time.Duration
}

func (s *AccountListerTestSuite) validate() error {
	if s.adapter == nil {
		return errors.New("adapter is nil")
	}

	return nil
}

type AccountListerSuiteOption func(*AccountListerTestSuite)

func WithExpectedAccounts(names ...string) AccountListerSuiteOption {
	return func(s *AccountListerTestSuite) {
		s.expected = make([]ids.AccountName, len(names))
		for i, name := range names {
			s.expected[i] = must(ids.NewAccountName(name))
		}
	}
}

// WithStableOrder requires accounts to come back in the expected order.
func WithStableOrder() AccountListerSuiteOption {
	return func(s *AccountListerTestSuite) { s.ordered = true }
}

func WithTimeout(timeout time.Duration) AccountListerSuiteOption {
	return func(s *AccountListerTestSuite) { s.defaultTimeout = timeout }
}

func (s *AccountListerTestSuite) TestListAccounts(t *testing.T) {
	ctx, cancel := contextWithTimeout(t, s.defaultTimeout)
	defer cancel()

	accounts, err := s.adapter.ListAccounts(ctx)
	require.NoError(t, err)

	if s.ordered {
		require.Equal(t, s.expected, accounts)
	} else {
		require.ElementsMatch(t, s.expected, accounts)
	}
}

func (s *AccountListerTestSuite) TestAccountsAreValid(t *testing.T) {
	ctx, cancel := contextWithTimeout(t, s.defaultTimeout)
	defer cancel()

	accounts, err := s.adapter.ListAccounts(ctx)
	require.NoError(t, err)

	for i, account := range accounts {
		require.True(t, account.Valid(), "account #%v is invalid", i)
	}
}

func (s *AccountListerTestSuite) TestResultIsNotShared(t *testing.T) {
	ctx, cancel := contextWithTimeout(t, s.defaultTimeout)
	defer cancel()

	first, err := s.adapter.ListAccounts(ctx)
	require.NoError(t, err)
	if len(first) == 0 {
		t.Skip("no accounts to mutate")
	}

	want := slices.Clone(first)
	first[0] = ids.AccountName{}

	second, err := s.adapter.ListAccounts(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, want, second)
}
