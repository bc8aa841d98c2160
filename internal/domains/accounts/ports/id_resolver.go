package ports

import (
	"context"

	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"
)

type AccountIDResolver interface {
	// ResolveAccountID returns the stable id of the account. Returns
	// ErrNotFound if the account is unknown.
	ResolveAccountID(ctx context.Context, account ids.AccountName) (ids.AccountID, error)
	// Ping reports whether the resolver can serve requests right now.
	Ping(ctx context.Context) error
}

type AccountIDResolverFactory interface {
	AccountIDResolver() AccountIDResolver
}

func NewAccountIDResolver(factory AccountIDResolverFactory) AccountIDResolver {
	return factory.AccountIDResolver()
}
