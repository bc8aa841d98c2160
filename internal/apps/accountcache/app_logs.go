package accountcache

import (
	"context"
	"net"

	"github.com/google/wire"
	"github.com/quenbyako/core/contrib/runtime"

	"github.com/quenbyako/accountcache/contrib/onelog"
	"github.com/quenbyako/accountcache/internal/adapters/file"
	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"
	"github.com/quenbyako/accountcache/internal/domains/accounts/usecases/facade"
	"github.com/quenbyako/accountcache/internal/domains/accounts/usecases/idprovider"
)

var (
	loggerConstructor = wire.NewSet(
		newLogCallbacks,
		wire.Bind(new(facade.LogCallbacks), new(*logger)),
		wire.Bind(new(idprovider.LogCallbacks), new(*logger)),
		wire.Bind(new(file.LogCallbacks), new(*logger)),
	)
)

const (
	eventStateChanged              = "refresh.state_changed"
	eventAccountsCommitted         = "refresh.accounts_committed"
	eventAccountsRefreshFailed     = "refresh.accounts_failed"
	eventRestrictionsCommitted     = "refresh.restrictions_committed"
	eventRestrictionsRefreshFailed = "refresh.restrictions_failed"
	eventUnknownChange             = "changes.unknown_kind"
	eventTaskPanicked              = "refresh.task_panicked"
	eventIDResolveFailed           = "ids.resolve_failed"
	eventIDsPurged                 = "ids.purged"
	eventWatchReadFailed           = "changes.watch_read_failed"
	eventWatchFailed               = "changes.watch_failed"
	eventEffectiveEnvironment      = "notify.effective_environment"
	eventMetricsStarted            = "metrics.started"
	eventMetricsStopped            = "metrics.stopped"
)

type logger struct {
	log onelog.Logger
}

var _ facade.LogCallbacks = (*logger)(nil)
var _ idprovider.LogCallbacks = (*logger)(nil)
var _ file.LogCallbacks = (*logger)(nil)
var _ runtime.LogCallbacks = (*logger)(nil)

func newLogCallbacks(p *appParams) *logger {
	return &logger{log: onelog.Wrap(p.observability)}
}

func (l *logger) StateChanged(ctx context.Context, from, to facade.RefreshState) {
	l.log.Debug().
		Ctx(ctx).
		Str("event_type", eventStateChanged).
		Any("context",
			map[string]any{
				"from": from.String(),
				"to":   to.String(),
			},
		).
		Msg("Refresh state changed")
}

func (l *logger) AccountsCommitted(ctx context.Context, visible, total int, first bool) {
	msg := "Account snapshot updated"
	if first {
		msg = "Account cache populated"
	}

	l.log.Info().
		Ctx(ctx).
		Str("event_type", eventAccountsCommitted).
		Any("context",
			map[string]any{
				"visible": visible,
				"total":   total,
				"first":   first,
			},
		).
		Msg(msg)
}

func (l *logger) AccountsRefreshFailed(ctx context.Context, err error) {
	l.log.Error().
		Ctx(ctx).
		Str("event_type", eventAccountsRefreshFailed).
		Any("context",
			map[string]any{
				"error": err.Error(),
			},
		).
		Msg("Can't list platform accounts, readers will get the error until next refresh")
}

func (l *logger) RestrictionsCommitted(ctx context.Context, patterns []string, visibleChanged bool) {
	l.log.Info().
		Ctx(ctx).
		Str("event_type", eventRestrictionsCommitted).
		Any("context",
			map[string]any{
				"patterns":        patterns,
				"visible_changed": visibleChanged,
			},
		).
		Msg("Restriction patterns updated")
}

func (l *logger) RestrictionsRefreshFailed(ctx context.Context, err error) {
	l.log.Warn().
		Ctx(ctx).
		Str("event_type", eventRestrictionsRefreshFailed).
		Any("context",
			map[string]any{
				"error": err.Error(),
			},
		).
		Msg("Can't read restriction patterns, keeping previous ones")
}

func (l *logger) UnknownChange(ctx context.Context, kind ports.ChangeKind) {
	l.log.Warn().
		Ctx(ctx).
		Str("event_type", eventUnknownChange).
		Any("context",
			map[string]any{
				"kind": kind.String(),
			},
		).
		Msg("Ignoring unknown platform change")
}

func (l *logger) TaskPanicked(ctx context.Context, recovered any) {
	l.log.Error().
		Ctx(ctx).
		Str("event_type", eventTaskPanicked).
		Any("context",
			map[string]any{
				"panic": recovered,
			},
		).
		Msg("Refresh task panicked")
}

func (l *logger) ResolveFailed(ctx context.Context, account ids.AccountName, err error) {
	l.log.Warn().
		Ctx(ctx).
		Str("event_type", eventIDResolveFailed).
		Any("context",
			map[string]any{
				"account": account.String(),
				"error":   err.Error(),
			},
		).
		Msg("Can't resolve account id")
}

func (l *logger) IDsPurged(ctx context.Context, removed int) {
	l.log.Debug().
		Ctx(ctx).
		Str("event_type", eventIDsPurged).
		Any("context",
			map[string]any{
				"removed": removed,
			},
		).
		Msg("Dropped ids of accounts that are no longer visible")
}

func (l *logger) WatchReadFailed(ctx context.Context, path string, err error) {
	l.log.Warn().
		Ctx(ctx).
		Str("event_type", eventWatchReadFailed).
		Any("context",
			map[string]any{
				"path":  path,
				"error": err.Error(),
			},
		).
		Msg("Can't read watched account file, reporting it as changed")
}

func (l *logger) WatchFailed(ctx context.Context, path string, err error) {
	l.log.Error().
		Ctx(ctx).
		Str("event_type", eventWatchFailed).
		Any("context",
			map[string]any{
				"path":  path,
				"error": err.Error(),
			},
		).
		Msg("File watcher reported an error, some changes may be missed")
}

func (l *logger) EffectiveEnvironment(env map[string]string) {
	l.log.Info().
		Str("event_type", eventEffectiveEnvironment).
		Any("context",
			map[string]any{
				"env": env,
			},
		).
		Msg("Parsed effective environment")
}

func (l *logger) MetricsStarted(addr net.Addr) {
	l.log.Info().
		Str("event_type", eventMetricsStarted).
		Any("context",
			map[string]any{
				"addr": addr.String(),
			},
		).
		Msg("Metrics server started")
}

func (l *logger) MetricsStopped(addr net.Addr) {
	l.log.Info().
		Str("event_type", eventMetricsStopped).
		Any("context",
			map[string]any{
				"addr": addr.String(),
			},
		).
		Msg("Metrics server stopped")
}
