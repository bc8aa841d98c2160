package idprovider

import (
	"context"

	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"
)

type LogCallbacks interface {
	ResolveFailed(ctx context.Context, account ids.AccountName, err error)
	IDsPurged(ctx context.Context, removed int)
}

type NoOpLogCallbacks struct{}

var _ LogCallbacks = NoOpLogCallbacks{}

func (NoOpLogCallbacks) ResolveFailed(context.Context, ids.AccountName, error) {}
func (NoOpLogCallbacks) IDsPurged(context.Context, int)                        {}
