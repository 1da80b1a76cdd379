// Package resource exposes accounts and repositories hosted on the service.
//
// Resources are addressed by resource spec strings: "account" designates an
// Account, "account/repository" a Repository. A Client resolves such strings
// into typed handles (see Client.Resolve) without touching the network,
// then operations on handles go through an explicit RPC caller and fetcher.
package resource

import (
	"context"
	"iter"

	"github.com/dydra/dydra/pkg/address"
	"github.com/dydra/dydra/pkg/fetch"
	"github.com/dydra/dydra/pkg/process"
	"github.com/dydra/dydra/pkg/rpc"
	rpcstatus "github.com/dydra/dydra/pkg/rpc/status"
	"go.uber.org/zap"
)

const defaultConcurrency = 8

// Client builds resource handles bound to a service
type Client struct {
	base        address.Address
	caller      rpc.Caller
	fetcher     fetch.Fetcher
	l           *zap.Logger
	cacheInfo   bool
	concurrency int
	processOpts []process.Option
}

// NewClient builds a client for the service located at base.
//
// All remote calls go through caller, usually an *rpc.Dispatcher.
func NewClient(base address.Address, caller rpc.Caller, opts ...Option) *Client {
	c := &Client{
		base:        base,
		caller:      caller,
		l:           zap.NewNop(),
		concurrency: defaultConcurrency,
	}
	for _, apply := range opts {
		apply(c)
	}
	if c.fetcher == nil {
		c.fetcher = fetch.New(fetch.Logger(c.l))
	}
	return c
}

// Base address of the service
func (c *Client) Base() address.Address {
	return c.base
}

// Account builds a handle on an account. This does not check that the account exists.
func (c *Client) Account(name string) (*Account, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return c.newAccount(name), nil
}

// Repository builds a handle on a repository. This does not check that the repository exists.
func (c *Client) Repository(accountName, name string) (*Repository, error) {
	account, err := c.Account(accountName)
	if err != nil {
		return nil, err
	}
	return account.Repository(name)
}

// Register a new account on the service.
//
// The name is validated before any remote call.
func (c *Client) Register(ctx context.Context, name, password string) (*Account, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if _, err := c.caller.Call(ctx, rpc.Method("account", "register"), name, password); err != nil {
		return nil, err
	}
	c.l.Info("registered account", zap.String("account", name))
	return c.newAccount(name), nil
}

// AccountExists tells if an account with this name exists on the service
func (c *Client) AccountExists(ctx context.Context, name string) (bool, error) {
	account, err := c.Account(name)
	if err != nil {
		return false, err
	}
	return account.Exists(ctx)
}

// Repositories lists repositories, optionally restricted to one account.
//
// The sequence is lazy: each iteration calls repository.list anew, so it may be ranged over several times.
// A failed call yields a single error. With an account filter, entries listed for other accounts
// are skipped before they are checked.
func (c *Client) Repositories(ctx context.Context, accountFilter string) iter.Seq2[*Repository, error] {
	return func(yield func(*Repository, error) bool) {
		result, err := c.caller.Call(ctx, rpc.Method("repository", "list"), accountFilter)
		if err != nil {
			yield(nil, err)
			return
		}
		pairs, err := rpc.Pairs(result)
		if err != nil {
			yield(nil, err)
			return
		}
		for _, pair := range pairs {
			if accountFilter != "" && pair[0] != accountFilter {
				continue
			}
			repo, err := c.Repository(pair[0], pair[1])
			if err != nil {
				err = rpcstatus.ErrUnexpectedResult.Wrapf("repository.list returned %q: %w", pair[0]+"/"+pair[1], err)
			}
			if !yield(repo, err) {
				return
			}
		}
	}
}

func (c *Client) newAccount(name string) *Account {
	return &Account{
		base: base{
			client:  c,
			address: c.base.Join(name),
		},
		name: name,
	}
}
