// Package rpc dispatches remote procedure calls to the service.
//
// The Dispatcher is the single chokepoint through which all mutating and informational
// operations pass. It relies on a transport implementing the Caller interface, such as
// the JSON-RPC over HTTP client provided by NewClient.
package rpc

import (
	"context"
	"strings"
	"time"

	"github.com/dydra/dydra/pkg/errors"
	"github.com/dydra/dydra/pkg/metrics"
	"github.com/dydra/dydra/pkg/rpc/status"
	"go.uber.org/zap"
)

// Caller knows how to call a remote method.
//
// Implementations should return errors matching the sentinels declared in pkg/rpc/status.
type Caller interface {
	Call(ctx context.Context, method string, args ...interface{}) (interface{}, error)
}

// Method builds a dot-qualified method name such as "repository.list"
func Method(entity, action string) string {
	return entity + "." + action
}

var _ Caller = &Dispatcher{}

// Dispatcher calls remote methods through some transport, with logging and metrics
type Dispatcher struct {
	caller    Caller
	namespace string
	l         *zap.Logger
	m         *metrics.UsageMetrics
}

// NewDispatcher builds a dispatcher over a transport
func NewDispatcher(caller Caller, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		caller: caller,
		l:      zap.NewNop(),
	}
	for _, apply := range opts {
		apply(d)
	}
	return d
}

// Namespace of the methods called by this dispatcher, if any
func (d *Dispatcher) Namespace() string {
	return d.namespace
}

// Qualify a method name with the namespace of this dispatcher
func (d *Dispatcher) Qualify(method string) string {
	if d.namespace == "" || strings.HasPrefix(method, d.namespace+".") {
		return method
	}
	return d.namespace + "." + method
}

// Call a remote method.
//
// Errors returned by the transport which are not already qualified as
// AuthenticationRequired, RemoteRejected or UnexpectedResult are reported as TransportFailure.
// Calls are never retried.
func (d *Dispatcher) Call(ctx context.Context, method string, args ...interface{}) (result interface{}, err error) {
	qualified := d.Qualify(method)
	defer func(t0 time.Time) {
		d.m.UsedAll(t0, qualified)(err)
		if err != nil {
			d.l.Debug("rpc call failed", zap.String("method", qualified), zap.Duration("elapsed", time.Since(t0)), zap.Error(err))
			return
		}
		d.l.Debug("rpc call", zap.String("method", qualified), zap.Duration("elapsed", time.Since(t0)))
	}(time.Now())

	if d.caller == nil {
		return nil, status.ErrTransportFailure.Wrapf("no transport configured to call %s", qualified)
	}

	result, err = d.caller.Call(ctx, qualified, args...)
	if err != nil {
		return nil, classify(qualified, err)
	}
	return result, nil
}

func classify(method string, err error) error {
	for _, sentinel := range []*errors.Error{
		status.ErrAuthenticationRequired,
		status.ErrRemoteRejected,
		status.ErrTransportFailure,
		status.ErrUnexpectedResult,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return status.ErrTransportFailure.Wrapf("%s: %w", method, err)
}
