package accountcache

import (
	"github.com/google/wire"

	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
	"github.com/quenbyako/accountcache/internal/domains/accounts/usecases/facade"
	"github.com/quenbyako/accountcache/internal/domains/accounts/usecases/idprovider"
)

var (
	facadeUsecase     = wire.NewSet(newFacadeUsecase)
	idProviderUsecase = wire.NewSet(newIDProviderUsecase)
)

func newFacadeUsecase(
	p *appParams,
	lister ports.AccountLister,
	restrictions ports.RestrictionProvider,
	changes ports.ChangeSource,
	logger facade.LogCallbacks,
) *facade.Service {
	opts := []facade.NewOption{
		facade.WithLogCallbacks(logger),
		facade.WithTracerProvider(p.observability),
		facade.WithMetrics(p.registry),
	}
	if restrictions != nil {
		opts = append(opts, facade.WithRestrictionProvider(restrictions))
	}
	if changes != nil {
		opts = append(opts, facade.WithChangeSource(changes))
	}

	return facade.New(lister, opts...)
}

func newIDProviderUsecase(
	p *appParams,
	cache *facade.Service,
	resolver ports.AccountIDResolver,
	logger idprovider.LogCallbacks,
) *idprovider.Service {
	return idprovider.New(cache, resolver,
		idprovider.WithCacheSize(p.idCacheSize),
		idprovider.WithCacheTTL(p.idCacheTTL),
		idprovider.WithLogCallbacks(logger),
		idprovider.WithTracerProvider(p.observability),
	)
}
