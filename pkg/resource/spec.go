package resource

import (
	"context"
	"regexp"

	"github.com/dydra/dydra/pkg/resource/status"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

var (
	repositorySpec = regexp.MustCompile(`^([^/]+)/([^/]+)$`)
	accountSpec    = regexp.MustCompile(`^([^/]+)$`)
)

// Resolve a resource spec into a resource handle, without any remote call.
//
// "account/repository" resolves to a *Repository, "account" to an *Account.
// Any other shape fails with ErrInvalidSpec.
func (c *Client) Resolve(spec string) (Resource, error) {
	if m := repositorySpec.FindStringSubmatch(spec); m != nil {
		account := c.newAccount(m[1])
		return account.Repository(m[2])
	}
	if m := accountSpec.FindStringSubmatch(spec); m != nil {
		return c.newAccount(m[1]), nil
	}
	return nil, status.ErrInvalidSpec.Wrapf("%q", spec)
}

func validateName(name string) error {
	if !accountSpec.MatchString(name) {
		return status.ErrInvalidSpec.Wrapf("%q", name)
	}
	return nil
}

// ParseResourceSpecs resolves several specs.
//
// All invalid specs are reported in one combined error. The resources are returned only when all specs are valid.
func (c *Client) ParseResourceSpecs(specs []string) ([]Resource, error) {
	resources := make([]Resource, 0, len(specs))
	var errs error
	for _, spec := range specs {
		r, err := c.Resolve(spec)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		resources = append(resources, r)
	}
	if errs != nil {
		return nil, errs
	}
	return resources, nil
}

// ParseRepositorySpecs resolves several repository specs.
//
// Account specs are reported as ErrInvalidRepositorySpec.
func (c *Client) ParseRepositorySpecs(specs []string) ([]*Repository, error) {
	repos := make([]*Repository, 0, len(specs))
	var errs error
	for _, spec := range specs {
		r, err := c.Resolve(spec)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		repo, ok := AsRepository(r)
		if !ok {
			errs = multierr.Append(errs, status.ErrInvalidRepositorySpec.Wrapf("%q", spec))
			continue
		}
		repos = append(repos, repo)
	}
	if errs != nil {
		return nil, errs
	}
	return repos, nil
}

// ValidateResourceSpecs resolves several specs, then checks concurrently that they exist on the service.
//
// Resources are returned in the order of specs. Missing resources are reported as ErrUnknownAccount
// or ErrUnknownRepository, naming the spec, in one combined error. A failed remote check aborts the validation.
func (c *Client) ValidateResourceSpecs(ctx context.Context, specs []string) ([]Resource, error) {
	resources, err := c.ParseResourceSpecs(specs)
	if err != nil {
		return nil, err
	}
	if err = c.checkExist(ctx, resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// ValidateRepositorySpecs resolves several repository specs, then checks concurrently that they exist on the service.
func (c *Client) ValidateRepositorySpecs(ctx context.Context, specs []string) ([]*Repository, error) {
	repos, err := c.ParseRepositorySpecs(specs)
	if err != nil {
		return nil, err
	}
	resources := make([]Resource, len(repos))
	for i, repo := range repos {
		resources[i] = repo
	}
	if err = c.checkExist(ctx, resources); err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) checkExist(ctx context.Context, resources []Resource) error {
	missing := make([]error, len(resources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, r := range resources {
		g.Go(func() error {
			exists, err := r.Exists(gctx)
			if err != nil {
				return err
			}
			if !exists {
				missing[i] = unknown(r)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return multierr.Combine(missing...)
}

func unknown(r Resource) error {
	if r.Kind() == KindRepository {
		return status.ErrUnknownRepository.Wrapf("%q", r.String())
	}
	return status.ErrUnknownAccount.Wrapf("%q", r.String())
}
