package cmd

import (
	"context"
	"fmt"

	"github.com/dydra/dydra/pkg/process"
	"github.com/dydra/dydra/pkg/resource"
)

type startFunc func(*resource.Repository, context.Context) (*process.Process, error)

// startAll starts a process on each repository in turn and follows it.
//
// The first failure stops the iteration.
func startAll(ctx context.Context, verb string, repositories []*resource.Repository, start startFunc) error {
	for _, repository := range repositories {
		p, err := start(repository, ctx)
		if err != nil {
			wrapFatalln(fmt.Sprintf("%s %s", verb, repository), err)
			return err
		}
		if _, err = follow(ctx, repository.String(), p); err != nil {
			wrapFatalln(fmt.Sprintf("%s %s", verb, repository), err)
			return err
		}
	}
	return nil
}

// existingRepositories resolves repository specs, checking that they exist
func existingRepositories(ctx context.Context, client *resource.Client, specs []string) ([]*resource.Repository, error) {
	repositories, err := client.ValidateRepositorySpecs(ctx, specs)
	if err != nil {
		wrapFatalln("invalid repositories", err)
		return nil, err
	}
	return repositories, nil
}
