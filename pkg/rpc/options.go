package rpc

import (
	"github.com/dydra/dydra/pkg/metrics"
	"go.uber.org/zap"
)

// Option is a functor to pass optional parameters to the dispatcher
type Option func(*Dispatcher)

// Namespace prefixes all method names, e.g. Namespace("datagraph") calls "datagraph.repository.list"
func Namespace(namespace string) Option {
	return func(d *Dispatcher) {
		d.namespace = namespace
	}
}

// Logger specifies a logger for this dispatcher
func Logger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.l = logger
		}
	}
}

// WithMetrics enables usage metrics on RPC calls
func WithMetrics(enabled bool) Option {
	return func(d *Dispatcher) {
		if enabled {
			d.m = metrics.NewUsageMetrics("rpc")
			return
		}
		d.m = nil
	}
}
