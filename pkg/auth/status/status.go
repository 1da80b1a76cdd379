// Package status declares error constants returned by the various
// implementations of the Authable interface.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies between pkg/auth and its callers.
package status

import "github.com/dydra/dydra/pkg/errors"

var (
	// Sentinel errors returned by implementations of interfaces defined by auth

	// ErrInvalidCredentials indicates that the stored credentials cannot be read
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoCredentials indicates that no credentials have been stored yet
	ErrNoCredentials = errors.New("no stored credentials")

	// ErrCredentialStore indicates that the credentials could not be saved or removed
	ErrCredentialStore = errors.New("credentials store error")
)
