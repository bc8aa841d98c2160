package facade

import (
	"context"

	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
)

type LogCallbacks interface {
	StateChanged(ctx context.Context, from, to RefreshState)
	AccountsCommitted(ctx context.Context, visible, total int, first bool)
	AccountsRefreshFailed(ctx context.Context, err error)
	RestrictionsCommitted(ctx context.Context, patterns []string, visibleChanged bool)
	RestrictionsRefreshFailed(ctx context.Context, err error)
	UnknownChange(ctx context.Context, kind ports.ChangeKind)
	TaskPanicked(ctx context.Context, recovered any)
}

type NoOpLogCallbacks struct{}

var _ LogCallbacks = NoOpLogCallbacks{}

func (NoOpLogCallbacks) StateChanged(context.Context, RefreshState, RefreshState) {}
func (NoOpLogCallbacks) AccountsCommitted(context.Context, int, int, bool)        {}
func (NoOpLogCallbacks) AccountsRefreshFailed(context.Context, error)             {}
func (NoOpLogCallbacks) RestrictionsCommitted(context.Context, []string, bool)    {}
func (NoOpLogCallbacks) RestrictionsRefreshFailed(context.Context, error)         {}
func (NoOpLogCallbacks) UnknownChange(context.Context, ports.ChangeKind)          {}
func (NoOpLogCallbacks) TaskPanicked(context.Context, any)                        {}
