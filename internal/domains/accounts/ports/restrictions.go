package ports

import (
	"context"

	"github.com/quenbyako/accountcache/internal/domains/accounts/entities"
)

// RestrictionProvider returns the account restriction patterns currently set
// by the administrator. Empty patterns mean accounts are not restricted.
type RestrictionProvider interface {
	RestrictionPatterns(ctx context.Context) (entities.RestrictionPatterns, error)
}

type RestrictionProviderFactory interface {
	RestrictionProvider() RestrictionProvider
}

func NewRestrictionProvider(factory RestrictionProviderFactory) RestrictionProvider {
	return factory.RestrictionProvider()
}
