package ports

import (
	"context"

	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"
)

// AccountLister is the platform capability that enumerates accounts known to
// the system. Implementations report failures as errors; callers decide
// whether to retry.
type AccountLister interface {
	ListAccounts(ctx context.Context) ([]ids.AccountName, error)
}

type AccountListerFactory interface {
	AccountLister() AccountLister
}

func NewAccountLister(factory AccountListerFactory) AccountLister { return factory.AccountLister() }
