package process

import (
	"time"

	"go.uber.org/zap"
)

// Option is a functor to pass optional parameters to a Process
type Option func(*Process)

// Logger specifies a logger for this process
func Logger(logger *zap.Logger) Option {
	return func(p *Process) {
		if logger != nil {
			p.l = logger
		}
	}
}

// StatusMethod sets the remote method used to poll the status of a process
func StatusMethod(method string) Option {
	return func(p *Process) {
		if method != "" {
			p.statusMethod = method
		}
	}
}

// DefaultInterval between two polls
const DefaultInterval = time.Second

type waitSettings struct {
	interval time.Duration
	timeout  time.Duration
}

// WaitOption sets optional parameters when waiting for a process
type WaitOption func(*waitSettings)

// Interval between two polls. The default is one second.
func Interval(interval time.Duration) WaitOption {
	return func(s *waitSettings) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// Timeout bounds the time spent waiting. The default is to wait until the context is done.
func Timeout(timeout time.Duration) WaitOption {
	return func(s *waitSettings) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}
