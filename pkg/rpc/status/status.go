// Package status declares error constants returned by RPC dispatchers and transports.
//
// NOTE: such constants are located in a separate package so that
// transports and dependent packages may check errors without importing pkg/rpc.
package status

import "github.com/dydra/dydra/pkg/errors"

var (
	// ErrAuthenticationRequired indicates that the call requires a valid session, and none was provided or accepted
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrRemoteRejected indicates that the server returned an application-level error
	ErrRemoteRejected = errors.New("remote rejected the call")

	// ErrTransportFailure indicates that the transport could not complete the call
	ErrTransportFailure = errors.New("transport failure")

	// ErrUnexpectedResult indicates that the result of a call could not be decoded as expected
	ErrUnexpectedResult = errors.New("unexpected result")
)
