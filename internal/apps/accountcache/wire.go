//go:build wireinject

package accountcache

import (
	"context"

	"github.com/google/wire"

	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
)

func buildApp(ctx context.Context, config *appParams) (*App, error) {
	panic(wire.Build(
		ports.WirePorts,

		loggerConstructor,

		sourcesAdapter,

		facadeUsecase,
		idProviderUsecase,

		newApp,
	))
}
