package resource

import (
	"context"
	"net/http"

	"github.com/dydra/dydra/pkg/address"
	"github.com/dydra/dydra/pkg/fetch"
)

// Kind of resource
type Kind string

const (
	// KindAccount designates an Account
	KindAccount Kind = "account"

	// KindRepository designates a Repository
	KindRepository Kind = "repository"
)

func (k Kind) String() string {
	return string(k)
}

// Resource is a dereferenceable resource hosted on the service
type Resource interface {
	// Kind of resource: account or repository
	Kind() Kind

	// String is the spec of this resource, e.g. "jhacker/data"
	String() string

	// Path is the resource path used as argument to remote calls, e.g. "jhacker/data"
	Path() string

	// Identity is the address of this resource
	Identity() address.Address

	// Exists checks remotely whether this resource exists
	Exists(context.Context) (bool, error)

	// FetchRDF retrieves the RDF description of this resource, as N-Triples
	FetchRDF(context.Context) (fetch.Statements, error)

	// Head checks the resource, with an optional format suffix and header overrides
	Head(ctx context.Context, format string, headers map[string]string) (*fetch.Response, error)

	// Get retrieves the resource, with an optional format suffix and header overrides
	Get(ctx context.Context, format string, headers map[string]string) (*fetch.Response, error)
}

var (
	_ Resource = &Account{}
	_ Resource = &Repository{}
)

// base holds what all resources share: one address, derived from their identifying fields
type base struct {
	client  *Client
	address address.Address
}

// Identity is the address of this resource
func (b *base) Identity() address.Address {
	return b.address
}

// Head checks the resource, with an optional format suffix and header overrides
func (b *base) Head(ctx context.Context, format string, headers map[string]string) (*fetch.Response, error) {
	return b.client.fetcher.Head(ctx, b.address.String(), format, headers)
}

// Get retrieves the resource, with an optional format suffix and header overrides
func (b *base) Get(ctx context.Context, format string, headers map[string]string) (*fetch.Response, error) {
	return b.client.fetcher.Get(ctx, b.address.String(), format, headers)
}

// Exists checks remotely whether this resource exists.
//
// A 2xx status means it exists, 404 or 410 that it doesn't. Any other status is an error.
func (b *base) Exists(ctx context.Context) (bool, error) {
	resp, err := b.Head(ctx, "", nil)
	if err != nil {
		return false, err
	}
	switch {
	case resp.OK():
		return true, nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return false, nil
	default:
		return false, fetch.Check(b.address.String(), resp)
	}
}

// FetchRDF retrieves the RDF description of this resource, as N-Triples
func (b *base) FetchRDF(ctx context.Context) (fetch.Statements, error) {
	resp, err := b.Get(ctx, "nt", nil)
	if err != nil {
		return nil, err
	}
	if err = fetch.Check(b.address.WithFormat("nt"), resp); err != nil {
		return nil, err
	}
	return fetch.Decode(ctx, resp.Body)
}

// Equal tells if two resources are of the same kind and have the same address
func Equal(a, b Resource) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Kind() == b.Kind() && a.Identity().Equal(b.Identity())
}

// Compare orders resources by address. It returns -1, 0 or +1.
func Compare(a, b Resource) int {
	return a.Identity().Compare(b.Identity())
}

// AsAccount tells if a resource is an Account
func AsAccount(r Resource) (*Account, bool) {
	a, ok := r.(*Account)
	return a, ok
}

// AsRepository tells if a resource is a Repository
func AsRepository(r Resource) (*Repository, bool) {
	repo, ok := r.(*Repository)
	return repo, ok
}
