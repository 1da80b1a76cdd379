package resource

import (
	"context"

	"github.com/dydra/dydra/pkg/rpc"
)

// Account is a user account on the service
type Account struct {
	base
	name string
}

// Kind of resource
func (a *Account) Kind() Kind {
	return KindAccount
}

// Name of the account
func (a *Account) Name() string {
	return a.name
}

// String is the account name
func (a *Account) String() string {
	return a.name
}

// Path used as argument to remote calls
func (a *Account) Path() string {
	return a.name
}

// Repository builds a handle on a repository of this account. This does not check that the repository exists.
func (a *Account) Repository(name string) (*Repository, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Repository{
		base: base{
			client:  a.client,
			address: a.address.Join(name),
		},
		account: a,
		name:    name,
	}, nil
}

// Repositories lists the repositories of this account.
//
// Entries returned by the server for other accounts are discarded.
func (a *Account) Repositories(ctx context.Context) ([]*Repository, error) {
	var repos []*Repository
	for repo, err := range a.client.Repositories(ctx, a.name) {
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

// Info retrieves the account information (account.info)
func (a *Account) Info(ctx context.Context) (map[string]interface{}, error) {
	result, err := a.client.caller.Call(ctx, rpc.Method("account", "info"), a.name)
	if err != nil {
		return nil, err
	}
	return rpc.Map(result)
}
