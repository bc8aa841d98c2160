package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"gopkg.in/yaml.v3"

	"github.com/quenbyako/accountcache/internal/domains/accounts/entities"
	"github.com/quenbyako/accountcache/internal/domains/accounts/ports"
	"github.com/quenbyako/accountcache/internal/domains/accounts/types/ids"
)

const pkgName = "internal/adapters/file"

// File serves accounts, their ids and restriction patterns from a single
// YAML document:
//
//	accounts:
//	  - name: alice@example.com
//	    id: 4b8f0c1e
//	restrictions:
//	  - "*@example.com"
type File struct {
	mu   sync.Mutex
	path string

	log   LogCallbacks
	trace trace.Tracer
}

var _ ports.AccountListerFactory = (*File)(nil)
var _ ports.RestrictionProviderFactory = (*File)(nil)
var _ ports.AccountIDResolverFactory = (*File)(nil)
var _ ports.ChangeSourceFactory = (*File)(nil)

func (f *File) AccountLister() ports.AccountLister             { return f }
func (f *File) RestrictionProvider() ports.RestrictionProvider { return f }
func (f *File) AccountIDResolver() ports.AccountIDResolver     { return f }
func (f *File) ChangeSource() ports.ChangeSource               { return f }

type newParams struct {
	log   LogCallbacks
	trace trace.TracerProvider
}

type NewOption func(*newParams)

func WithLogCallbacks(log LogCallbacks) NewOption {
	return func(p *newParams) { p.log = log }
}

func WithTracer(tracer trace.TracerProvider) NewOption {
	return func(p *newParams) { p.trace = tracer }
}

func New(path string, opts ...NewOption) *File {
	p := newParams{
		log:   NoOpLogCallbacks{},
		trace: noop.NewTracerProvider(),
	}
	for _, opt := range opts {
		opt(&p)
	}

	return &File{
		path:  path,
		log:   p.log,
		trace: p.trace.Tracer(pkgName),
	}
}

type storageSchema struct {
	Accounts     []accountSchema `yaml:"accounts"`
	Restrictions []string        `yaml:"restrictions,omitempty"`
}

type accountSchema struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id,omitempty"`
}

func (f *File) read() (*storageSchema, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("account file %v: %w", f.path, ports.ErrUnavailable)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read account file: %w", err)
	}

	var storage storageSchema
	if err := yaml.Unmarshal(data, &storage); err != nil {
		return nil, fmt.Errorf("failed to parse account file: %w", err)
	}

	return &storage, nil
}

// ListAccounts implements ports.AccountLister.
func (f *File) ListAccounts(ctx context.Context) ([]ids.AccountName, error) {
	_, span := f.trace.Start(ctx, "File.ListAccounts")
	defer span.End()

	storage, err := f.read()
	if err != nil {
		return nil, ports.ErrDelegate("list accounts", err)
	}

	res := make([]ids.AccountName, 0, len(storage.Accounts))
	for i, acc := range storage.Accounts {
		name, err := ids.NewAccountName(acc.Name)
		if err != nil {
			return nil, ports.ErrDelegate("list accounts", fmt.Errorf("account #%v: %w", i, err))
		}

		res = append(res, name)
	}

	span.SetAttributes(attribute.Int("accounts.count", len(res)))

	return res, nil
}

// RestrictionPatterns implements ports.RestrictionProvider.
func (f *File) RestrictionPatterns(ctx context.Context) (entities.RestrictionPatterns, error) {
	_, span := f.trace.Start(ctx, "File.RestrictionPatterns")
	defer span.End()

	storage, err := f.read()
	if err != nil {
		return entities.RestrictionPatterns{}, err
	}

	return entities.NewRestrictionPatterns(storage.Restrictions...)
}

// ResolveAccountID implements ports.AccountIDResolver.
func (f *File) ResolveAccountID(ctx context.Context, account ids.AccountName) (ids.AccountID, error) {
	_, span := f.trace.Start(ctx, "File.ResolveAccountID")
	defer span.End()

	storage, err := f.read()
	if err != nil {
		return ids.AccountID{}, err
	}

	i := slices.IndexFunc(storage.Accounts, func(acc accountSchema) bool {
		return acc.Name == account.String()
	})
	if i < 0 || storage.Accounts[i].ID == "" {
		return ids.AccountID{}, ports.ErrNotFound
	}

	return ids.NewAccountID(account, storage.Accounts[i].ID)
}

// Ping implements ports.AccountIDResolver.
func (f *File) Ping(context.Context) error {
	if _, err := os.Stat(f.path); err != nil {
		return fmt.Errorf("account file: %w", err)
	}

	return nil
}
