package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
)

const pkgName = "internal/adapters/redis"

const DefaultChannel = "accountcache:changes"

// Broadcaster delivers platform change events through redis pub/sub. Any
// process can announce a change with Notify, every subscribed cache
// refreshes the matching part.
type Broadcaster struct {
	client  redis.UniversalClient
	channel string
	limiter *redis_rate.Limiter
	limit   redis_rate.Limit

	trace trace.Tracer
}

var (
	_ ports.ChangeSourceFactory   = (*Broadcaster)(nil)
	_ ports.ChangeNotifierFactory = (*Broadcaster)(nil)
)

func (b *Broadcaster) ChangeSource() ports.ChangeSource     { return b }
func (b *Broadcaster) ChangeNotifier() ports.ChangeNotifier { return b }

type newParams struct {
	channel string
	limit   *redis_rate.Limit
	tracer  trace.TracerProvider
}

type NewOption func(*newParams)

func WithChannel(channel string) NewOption {
	return func(p *newParams) { p.channel = channel }
}

// WithNotifyLimit caps how often each change kind may be announced across
// all publishers.
func WithNotifyLimit(limit redis_rate.Limit) NewOption {
	return func(p *newParams) { p.limit = &limit }
}

func WithTracerProvider(tp trace.TracerProvider) NewOption {
	return func(p *newParams) { p.tracer = tp }
}

func New(client redis.UniversalClient, opts ...NewOption) *Broadcaster {
	p := newParams{
		channel: DefaultChannel,
		tracer:  noop.NewTracerProvider(),
	}
	for _, opt := range opts {
		opt(&p)
	}

	if client == nil {
		panic("redis client is required")
	}

	b := &Broadcaster{
		client:  client,
		channel: p.channel,
		trace:   p.tracer.Tracer(pkgName),
	}
	if p.limit != nil {
		b.limiter = redis_rate.NewLimiter(client)
		b.limit = *p.limit
	}

	return b
}

// Watch implements ports.ChangeSource. Messages that are not a known change
// kind are skipped.
func (b *Broadcaster) Watch(ctx context.Context) (<-chan ports.ChangeKind, error) {
	sub := b.client.Subscribe(ctx, b.channel)

	// wait for subscription confirmation, so no event published after Watch
	// returns is missed
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribing to %v: %w", b.channel, err)
	}

	messages := sub.Channel()
	changes := make(chan ports.ChangeKind, 2)

	go func() {
		defer close(changes)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case msg, ok := <-messages:
				if !ok {
					return
				}

				kind, err := ports.ParseChangeKind(msg.Payload)
				if err != nil {
					continue
				}

				select {
				case changes <- kind:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return changes, nil
}

// Notify announces a change to every watcher. Returns ports.ErrRateLimited if the
// kind was announced too often recently.
func (b *Broadcaster) Notify(ctx context.Context, kind ports.ChangeKind) error {
	ctx, span := b.trace.Start(ctx, "Broadcaster.Notify", trace.WithAttributes(
		attribute.String("change.kind", kind.String()),
	))
	defer span.End()

	if _, err := ports.ParseChangeKind(kind.String()); err != nil {
		return err
	}

	if b.limiter != nil {
		res, err := b.limiter.Allow(ctx, b.channel+":"+kind.String(), b.limit)
		if err != nil {
			return fmt.Errorf("checking notify rate: %w", err)
		}
		if res.Allowed == 0 {
			return fmt.Errorf("%w, retry after %v", ports.ErrRateLimited, res.RetryAfter)
		}
	}

	if err := b.client.Publish(ctx, b.channel, kind.String()).Err(); err != nil {
		return fmt.Errorf("publishing change: %w", err)
	}

	return nil
}
