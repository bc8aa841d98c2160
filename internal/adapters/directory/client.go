package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/oauth2"

	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"
)

const pkgName = "internal/adapters/directory"

const requestIDHeader = "X-Request-Id"

// Client talks to the platform account directory over HTTP:
//
//	GET /v1/accounts         -> {"accounts": [{"name": "...", "id": "..."}]}
//	GET /v1/accounts/{name}  -> {"name": "...", "id": "..."}
//	GET /healthz             -> 2xx when the directory is serving
type Client struct {
	base   *url.URL
	client *retryablehttp.Client

	trace trace.Tracer
}

var _ ports.AccountListerFactory = (*Client)(nil)
var _ ports.AccountIDResolverFactory = (*Client)(nil)

func (c *Client) AccountLister() ports.AccountLister         { return c }
func (c *Client) AccountIDResolver() ports.AccountIDResolver { return c }

type newParams struct {
	token     oauth2.TokenSource
	tracer    trace.TracerProvider
	retryMax  int
	retryWait time.Duration
	timeout   time.Duration
}

type NewOption func(*newParams)

// WithToken authorizes every request with a static bearer token.
func WithToken(token string) NewOption {
	return func(p *newParams) {
		p.token = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	}
}

func WithTracerProvider(tp trace.TracerProvider) NewOption {
	return func(p *newParams) { p.tracer = tp }
}

// WithRetries sets how many times failed requests are retried and the
// minimal pause between attempts.
func WithRetries(attempts int, wait time.Duration) NewOption {
	return func(p *newParams) { p.retryMax, p.retryWait = attempts, wait }
}

// WithTimeout bounds a single attempt, retries get their own budget.
func WithTimeout(timeout time.Duration) NewOption {
	return func(p *newParams) { p.timeout = timeout }
}

func New(base *url.URL, opts ...NewOption) (*Client, error) {
	p := newParams{
		tracer:    noop.NewTracerProvider(),
		retryMax:  3,
		retryWait: 200 * time.Millisecond,
		timeout:   10 * time.Second,
	}
	for _, opt := range opts {
		opt(&p)
	}

	if base == nil || base.Host == "" {
		return nil, errors.New("directory address is required")
	}

	transport := http.DefaultTransport
	if p.token != nil {
		transport = &oauth2.Transport{Source: p.token, Base: transport}
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = p.retryMax
	client.RetryWaitMin = p.retryWait
	client.RetryWaitMax = 10 * p.retryWait
	client.HTTPClient = &http.Client{
		Timeout:   p.timeout,
		Transport: otelhttp.NewTransport(transport, otelhttp.WithTracerProvider(p.tracer)),
	}

	return &Client{
		base:   base,
		client: client,
		trace:  p.tracer.Tracer(pkgName),
	}, nil
}

type accountSchema struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type listSchema struct {
	Accounts []accountSchema `json:"accounts"`
}

// ListAccounts implements ports.AccountLister.
func (c *Client) ListAccounts(ctx context.Context) ([]ids.AccountName, error) {
	ctx, span := c.trace.Start(ctx, "Client.ListAccounts")
	defer span.End()

	var res listSchema
	if err := c.get(ctx, c.base.JoinPath("v1", "accounts"), &res); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "listing accounts")

		return nil, ports.ErrDelegate("list accounts", err)
	}

	accounts := make([]ids.AccountName, 0, len(res.Accounts))
	for i, acc := range res.Accounts {
		name, err := ids.NewAccountName(acc.Name)
		if err != nil {
			return nil, ports.ErrDelegate("list accounts", fmt.Errorf("account #%v: %w", i, err))
		}

		accounts = append(accounts, name)
	}

	span.SetAttributes(attribute.Int("accounts.count", len(accounts)))

	return accounts, nil
}

// ResolveAccountID implements ports.AccountIDResolver.
func (c *Client) ResolveAccountID(ctx context.Context, account ids.AccountName) (ids.AccountID, error) {
	ctx, span := c.trace.Start(ctx, "Client.ResolveAccountID", trace.WithAttributes(
		attribute.String("account", account.String()),
	))
	defer span.End()

	var res accountSchema
	if err := c.get(ctx, c.base.JoinPath("v1", "accounts", url.PathEscape(account.String())), &res); err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "resolving account")
		}

		return ids.AccountID{}, err
	}

	if res.Name != "" && res.Name != account.String() {
		return ids.AccountID{}, fmt.Errorf("directory returned account %q for %q", res.Name, account.String())
	}

	return ids.NewAccountID(account, res.ID)
}

// Ping implements ports.AccountIDResolver.
func (c *Client) Ping(ctx context.Context) error {
	return c.get(ctx, c.base.JoinPath("healthz"), nil)
}

func (c *Client) get(ctx context.Context, u *url.URL, dst any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		return fmt.Errorf("%w: %w", ports.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ports.ErrNotFound
	case resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("directory responded %v: %s", resp.Status, body)
	}

	if dst == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding directory response: %w", err)
	}

	return nil
}
