package accountcache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/google/wire"

	"github.com/quenbyako/accountcache/contrib/redisconn"
	"github.com/quenbyako/accountcache/internal/adapters/directory"
	"github.com/quenbyako/accountcache/internal/adapters/file"
	"github.com/quenbyako/accountcache/internal/adapters/redis"
	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
)

const directoryRetryWait = 200 * time.Millisecond

var (
	sourcesAdapter = wire.NewSet(
		newSources,
		wire.Bind(new(ports.AccountListerFactory), new(*sources)),
		wire.Bind(new(ports.RestrictionProviderFactory), new(*sources)),
		wire.Bind(new(ports.AccountIDResolverFactory), new(*sources)),
		wire.Bind(new(ports.ChangeSourceFactory), new(*sources)),
		wire.Bind(new(ports.ChangeNotifierFactory), new(*sources)),
	)
)

// sources picks an adapter per port depending on the configured account
// source. Ports without a configured adapter resolve to nil.
type sources struct {
	lister       ports.AccountLister
	restrictions ports.RestrictionProvider
	resolver     ports.AccountIDResolver
	changes      ports.ChangeSource
	notifier     ports.ChangeNotifier
}

func (s *sources) AccountLister() ports.AccountLister             { return s.lister }
func (s *sources) RestrictionProvider() ports.RestrictionProvider { return s.restrictions }
func (s *sources) AccountIDResolver() ports.AccountIDResolver     { return s.resolver }
func (s *sources) ChangeSource() ports.ChangeSource               { return s.changes }
func (s *sources) ChangeNotifier() ports.ChangeNotifier           { return s.notifier }

func newSources(ctx context.Context, p *appParams, log file.LogCallbacks) (*sources, error) {
	s := new(sources)

	switch p.source.Scheme {
	case "file":
		f := file.New(p.source.Path, file.WithLogCallbacks(log), file.WithTracer(p.observability))
		s.lister, s.restrictions, s.resolver, s.changes = f, f, f, f

	default:
		d, err := newDirectoryClient(ctx, p)
		if err != nil {
			return nil, err
		}
		s.lister, s.resolver = d, d

		if p.restrictionsFile != "" {
			f := file.New(p.restrictionsFile, file.WithLogCallbacks(log), file.WithTracer(p.observability))
			s.restrictions = f
		}
	}

	if p.redisDSN != nil {
		b, err := newRedisBroadcaster(p)
		if err != nil {
			return nil, err
		}
		s.changes, s.notifier = b, b
	}

	return s, nil
}

func newDirectoryClient(ctx context.Context, p *appParams) (*directory.Client, error) {
	token, err := p.directoryToken.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting directory token from secret getter: %w", err)
	}

	opts := []directory.NewOption{
		directory.WithToken(string(token)),
		directory.WithTracerProvider(p.observability),
	}
	if p.directoryTimeout > 0 {
		opts = append(opts, directory.WithTimeout(p.directoryTimeout))
	}
	if p.directoryRetries >= 0 {
		opts = append(opts, directory.WithRetries(p.directoryRetries, directoryRetryWait))
	}

	return directory.New(p.source, opts...)
}

func newRedisBroadcaster(p *appParams) (*redis.Broadcaster, error) {
	client, err := redisconn.Connect(p.redisDSN)
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	opts := []redis.NewOption{redis.WithTracerProvider(p.observability)}
	if p.redisChannel != "" {
		opts = append(opts, redis.WithChannel(p.redisChannel))
	}
	if p.redisNotifyLimit > 0 {
		opts = append(opts, redis.WithNotifyLimit(redis_rate.PerMinute(p.redisNotifyLimit)))
	}

	return redis.New(client, opts...), nil
}
