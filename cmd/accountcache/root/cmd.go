package root

import (
	"context"
	"fmt"

	"github.com/quenbyako/core"

	"github.com/quenbyako/accountcache/internal/apps/accountcache"
)

var _ core.ActionFunc[Config] = Cmd

func Cmd(ctx context.Context, appCtx core.AppContext[Config]) core.ExitCode {
	cfg := appCtx.Config()

	opts := []accountcache.AppOpts{
		accountcache.WithSource(cfg.Source),
		accountcache.WithHTTPServer(cfg.HttpPort.Register),
		accountcache.WithIDCache(cfg.IDCacheSize, cfg.IDCacheTTL),
		accountcache.WithDirectoryClient(cfg.DirectoryTimeout, cfg.DirectoryRetries),
	}

	if cfg.Source != nil && cfg.Source.Scheme != "file" {
		opts = append(opts, accountcache.WithDirectoryToken(cfg.DirectoryToken))
	}
	if cfg.RestrictionsFile != "" {
		opts = append(opts, accountcache.WithRestrictionsFile(cfg.RestrictionsFile))
	}
	if cfg.RedisDSN != nil {
		opts = append(opts, accountcache.WithRedis(cfg.RedisDSN, cfg.RedisChannel))
		opts = append(opts, accountcache.WithRedisNotifyLimit(cfg.RedisNotifyLimit))
	}

	if metrics, ok := core.Observability(appCtx); ok {
		opts = append(opts, accountcache.WithObservability(metrics))
	}

	app := accountcache.NewApp(ctx, opts...)

	jobs := []func(context.Context) error{
		cfg.HttpPort.Serve,
		app.Run,
	}

	if err := core.RunJobs(ctx, jobs...); err != nil {
		fmt.Println("Oopsie: ", err)

		return 1
	}

	return 0
}
