package root

import (
	"log/slog"
	"net/url"
	"time"

	"github.com/quenbyako/core"
	"github.com/quenbyako/core/contrib/params/http"
	"github.com/quenbyako/core/contrib/params/secrets"
)

type Config struct {
	core.UnsafeActionConfig `env:"-"`

	CACerts      []string `env:"CA_CERTS"    default:""  envSeparator:","`
	VaultAddress *url.URL `env:"VAULT_ADDR"  default:""`

	LogLevel         slog.Level     `env:"ACCOUNTCACHE_LOG_LEVEL"         default:"info"`
	HttpPort         http.Server    `env:"ACCOUNTCACHE_HTTP_ADDR"         default:"http://0.0.0.0:5002"`
	Source           *url.URL       `env:"ACCOUNTCACHE_SOURCE"`
	DirectoryToken   secrets.Secret `env:"ACCOUNTCACHE_DIRECTORY_TOKEN"`
	RestrictionsFile string         `env:"ACCOUNTCACHE_RESTRICTIONS_FILE" default:""`
	RedisDSN         *url.URL       `env:"ACCOUNTCACHE_REDIS_DSN"         default:""`
	RedisChannel     string         `env:"ACCOUNTCACHE_REDIS_CHANNEL"     default:"accountcache:changes"`
	RedisNotifyLimit int            `env:"ACCOUNTCACHE_REDIS_NOTIFY_LIMIT" default:"0"`
	DirectoryTimeout time.Duration  `env:"ACCOUNTCACHE_DIRECTORY_TIMEOUT" default:"10s"`
	DirectoryRetries int            `env:"ACCOUNTCACHE_DIRECTORY_RETRIES" default:"3"`
	IDCacheSize      uint           `env:"ACCOUNTCACHE_ID_CACHE_SIZE"     default:"1024"`
	IDCacheTTL       time.Duration  `env:"ACCOUNTCACHE_ID_CACHE_TTL"      default:"1h"`
	MetricsPort      *url.URL       `env:"ACCOUNTCACHE_METRICS_ADDR"      default:""`
	TLSKey           string         `env:"ACCOUNTCACHE_TLS_KEY"           default:""`
	TLSCert          string         `env:"ACCOUNTCACHE_TLS_CERT"          default:""`
	FileSecret       *url.URL       `env:"ACCOUNTCACHE_FILE_SECRETS"      default:""`
	OtelHost         *url.URL       `env:"ACCOUNTCACHE_OTEL_HOST"         default:""`
}

var _ core.ActionConfig = (*Config)(nil)

func (f Config) GetLogLevel() slog.Level             { return f.LogLevel }
func (f Config) GetTraceEndpoint() *url.URL          { return f.OtelHost }
func (f Config) GetMetricsAddr() *url.URL            { return f.MetricsPort }
func (f Config) GetCertPaths() []string              { return f.CACerts }
func (f Config) ClientCertPaths() (cert, key string) { return f.TLSCert, f.TLSKey }

func (f Config) GetSecretDSNs() map[string]*url.URL {
	return map[string]*url.URL{
		"file":  f.FileSecret,
		"vault": f.VaultAddress,
	}
}
