package accountcache

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/quenbyako/core"

	"github.com/quenbyako/accountcache/contrib/onelog"
	"github.com/quenbyako/accountcache/internal/controllers/admin"
	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
	"github.com/quenbyako/accountcache/internal/domains/accounts/usecases/facade"
	"github.com/quenbyako/accountcache/internal/domains/accounts/usecases/idprovider"
)

type SecretGetter interface {
	Get(ctx context.Context) ([]byte, error)
}

type appParams struct {
	source           *url.URL
	restrictionsFile string
	directoryToken   SecretGetter
	redisDSN         *url.URL
	redisChannel     string
	redisNotifyLimit int

	directoryTimeout time.Duration
	directoryRetries int

	idCacheSize uint
	idCacheTTL  time.Duration

	httpAddr func(http.Handler)

	observability core.Metrics
	registry      *prometheus.Registry
}

func (p *appParams) validate() error {
	var errs []error
	if p.source == nil {
		errs = append(errs, errors.New("missing account source"))
	} else {
		switch p.source.Scheme {
		case "file":
			if p.source.Path == "" {
				errs = append(errs, errors.New("file source requires a path"))
			}
		case "http", "https":
			if p.directoryToken == nil {
				errs = append(errs, errors.New("directory source requires a token"))
			}
		default:
			errs = append(errs, fmt.Errorf("unsupported account source scheme %q", p.source.Scheme))
		}
	}
	if p.httpAddr == nil {
		errs = append(errs, errors.New("missing http server"))
	}
	if p.idCacheSize == 0 {
		errs = append(errs, errors.New("id cache size must be positive"))
	}
	if p.redisNotifyLimit < 0 {
		errs = append(errs, errors.New("redis notify limit can't be negative"))
	}
	if p.directoryTimeout < 0 {
		errs = append(errs, errors.New("directory timeout can't be negative"))
	}

	return errors.Join(errs...)
}

type AppOpts func(*appParams)

// WithSource selects where accounts come from: file:///path/to/accounts.yaml
// or the base address of the account directory.
func WithSource(source *url.URL) AppOpts {
	return func(p *appParams) { p.source = source }
}

// WithRestrictionsFile reads restriction patterns from a YAML file when
// accounts come from the directory.
func WithRestrictionsFile(path string) AppOpts {
	return func(p *appParams) { p.restrictionsFile = path }
}

func WithDirectoryToken(token SecretGetter) AppOpts {
	return func(p *appParams) { p.directoryToken = token }
}

// WithRedis subscribes the cache to change broadcasts on a redis channel.
func WithRedis(dsn *url.URL, channel string) AppOpts {
	return func(p *appParams) { p.redisDSN, p.redisChannel = dsn, channel }
}

// WithRedisNotifyLimit caps broadcasts of each change kind per minute across
// all instances. Zero disables the limit.
func WithRedisNotifyLimit(perMinute int) AppOpts {
	return func(p *appParams) { p.redisNotifyLimit = perMinute }
}

// WithDirectoryClient tunes requests to the account directory. Timeout
// bounds a single attempt.
func WithDirectoryClient(timeout time.Duration, retries int) AppOpts {
	return func(p *appParams) { p.directoryTimeout, p.directoryRetries = timeout, retries }
}

func WithIDCache(size uint, ttl time.Duration) AppOpts {
	return func(p *appParams) { p.idCacheSize, p.idCacheTTL = size, ttl }
}

func WithHTTPServer(registrar func(http.Handler)) AppOpts {
	return func(p *appParams) { p.httpAddr = registrar }
}

func WithObservability(metrics core.Metrics) AppOpts {
	return func(p *appParams) { p.observability = metrics }
}

type App struct {
	log onelog.Logger

	cache *facade.Service
	ids   *idprovider.Service
}

func NewApp(ctx context.Context, opts ...AppOpts) *App {
	p := appParams{
		observability: core.NoopMetrics(),
		registry:      prometheus.NewRegistry(),

		idCacheSize: 1024,
		idCacheTTL:  time.Hour,

		directoryRetries: -1,
	}
	for _, opt := range opts {
		opt(&p)
	}
	if err := p.validate(); err != nil {
		panic(err)
	}

	p.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return must(buildApp(ctx, &p))
}

func newApp(
	p *appParams,
	cache *facade.Service,
	ids *idprovider.Service,
	notifier ports.ChangeNotifier,
) (*App, error) {
	cache.AddObserver(ids)

	adminOpts := []admin.NewOption{
		admin.WithGatherer(p.registry),
		admin.WithTracerProvider(p.observability),
	}
	if notifier != nil {
		adminOpts = append(adminOpts, admin.WithNotifier(notifier))
	}

	// http controllers
	p.httpAddr(admin.NewHandler(cache, ids, adminOpts...))

	return &App{
		log:   onelog.Wrap(p.observability),
		cache: cache,
		ids:   ids,
	}, nil
}

// Run follows platform change broadcasts until ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.log.Info().Ctx(ctx).Msg("Following platform account changes")
	defer func() { _ = a.ids.Close() }()

	if err := a.cache.Run(ctx); err != nil {
		return fmt.Errorf("account cache: %w", err)
	}

	return nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
