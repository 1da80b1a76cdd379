// Package status declares error constants returned when tracking server processes.
package status

import "github.com/dydra/dydra/pkg/errors"

var (
	// ErrProcessFailed indicates that a tracked process terminated with a failure.
	// The server-provided detail is wrapped.
	ErrProcessFailed = errors.New("process failed")

	// ErrTimeout indicates that the client-side wait budget was exceeded before the process terminated.
	// The server-side process is not affected.
	ErrTimeout = errors.New("timed out waiting for process")
)
