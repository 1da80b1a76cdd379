// Package status declares error constants returned when resolving and validating resources.
package status

import "github.com/dydra/dydra/pkg/errors"

var (
	// ErrInvalidSpec indicates a malformed resource spec. It is detected before any remote call.
	ErrInvalidSpec = errors.New("invalid resource spec")

	// ErrInvalidRepositorySpec indicates a valid resource spec which does not designate a repository
	ErrInvalidRepositorySpec = errors.New("invalid repository spec")

	// ErrUnknownAccount indicates that an account does not exist on the service
	ErrUnknownAccount = errors.New("unknown account")

	// ErrUnknownRepository indicates that a repository does not exist on the service
	ErrUnknownRepository = errors.New("unknown repository")
)
