package resource

import (
	"context"
	"sync"
	"time"

	"github.com/dydra/dydra/pkg/process"
	"github.com/dydra/dydra/pkg/rpc"
	rpcstatus "github.com/dydra/dydra/pkg/rpc/status"
	"go.uber.org/zap"
)

// RepositoryInfo is the metadata of a repository, as returned by repository.info
type RepositoryInfo struct {
	Summary     string    `mapstructure:"summary" yaml:"summary,omitempty"`
	Description string    `mapstructure:"description" yaml:"description,omitempty"`
	Created     time.Time `mapstructure:"created" yaml:"created,omitempty"`
	Updated     time.Time `mapstructure:"updated" yaml:"updated,omitempty"`
}

// Repository is an RDF repository owned by an account
type Repository struct {
	base
	account *Account
	name    string

	mu   sync.Mutex
	info *RepositoryInfo
}

// Kind of resource
func (r *Repository) Kind() Kind {
	return KindRepository
}

// Account owning this repository
func (r *Repository) Account() *Account {
	return r.account
}

// Name of the repository, without the account
func (r *Repository) Name() string {
	return r.name
}

// String is the repository spec: "account/name"
func (r *Repository) String() string {
	return r.account.name + "/" + r.name
}

// Path used as argument to remote calls: "account/name"
func (r *Repository) Path() string {
	return r.String()
}

// Create this repository on the service
func (r *Repository) Create(ctx context.Context) (*process.Process, error) {
	return r.start(ctx, "create")
}

// Destroy this repository
func (r *Repository) Destroy(ctx context.Context) (*process.Process, error) {
	return r.start(ctx, "destroy")
}

// Clear deletes all statements from this repository, keeping the repository
func (r *Repository) Clear(ctx context.Context) (*process.Process, error) {
	return r.start(ctx, "clear")
}

// Import data from a URL into this repository
func (r *Repository) Import(ctx context.Context, sourceURL string) (*process.Process, error) {
	return r.start(ctx, "import", sourceURL)
}

// Query this repository.
//
// The query runs asynchronously: results are available from the process once it has succeeded.
func (r *Repository) Query(ctx context.Context, query string) (*process.Process, error) {
	return r.start(ctx, "query", query)
}

func (r *Repository) start(ctx context.Context, action string, args ...interface{}) (*process.Process, error) {
	method := rpc.Method("repository", action)
	result, err := r.client.caller.Call(ctx, method, append([]interface{}{r.Path()}, args...)...)
	if err != nil {
		return nil, err
	}

	opts := append([]process.Option{process.Logger(r.client.l)}, r.client.processOpts...)
	p, err := process.Track(r.client.caller, result, opts...)
	if err != nil {
		return nil, err
	}
	r.client.l.Debug("started process", zap.String("method", method), zap.String("repository", r.String()), zap.String("process", p.ID()))
	return p, nil
}

// Count the statements in this repository.
//
// Unlike other operations, this is synchronous.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	result, err := r.client.caller.Call(ctx, rpc.Method("repository", "count"), r.Path())
	if err != nil {
		return 0, err
	}
	n, err := rpc.Int64(result)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, rpcstatus.ErrUnexpectedResult.Wrapf("negative count %d for %s", n, r)
	}
	return n, nil
}

// Info retrieves the repository metadata (repository.info).
//
// Unless the client is configured WithInfoCache, each call is a remote call.
func (r *Repository) Info(ctx context.Context) (RepositoryInfo, error) {
	if r.client.cacheInfo {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.info != nil {
			return *r.info, nil
		}
	}

	result, err := r.client.caller.Call(ctx, rpc.Method("repository", "info"), r.Path())
	if err != nil {
		return RepositoryInfo{}, err
	}
	var info RepositoryInfo
	if err = rpc.DecodeMap(result, &info); err != nil {
		return RepositoryInfo{}, err
	}

	if r.client.cacheInfo {
		r.info = &info
	}
	return info, nil
}

// Summary is the short description of the repository. This triggers one repository.info call.
func (r *Repository) Summary(ctx context.Context) (string, error) {
	info, err := r.Info(ctx)
	return info.Summary, err
}

// Description is the long description of the repository. This triggers one repository.info call.
func (r *Repository) Description(ctx context.Context) (string, error) {
	info, err := r.Info(ctx)
	return info.Description, err
}

// CreatedAt is the time the repository was created. This triggers one repository.info call.
func (r *Repository) CreatedAt(ctx context.Context) (time.Time, error) {
	info, err := r.Info(ctx)
	return info.Created, err
}

// UpdatedAt is the time the repository was last updated. This triggers one repository.info call.
func (r *Repository) UpdatedAt(ctx context.Context) (time.Time, error) {
	info, err := r.Info(ctx)
	return info.Updated, err
}
