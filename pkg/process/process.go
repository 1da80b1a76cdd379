// Package process tracks long-running jobs started on the server by mutating operations.
//
// A Process is only ever built from the result of a remote call (see Track),
// then advanced by polling. Its state machine is:
//
//	pending -> running -> {succeeded, failed}
//
// Terminal states never change: once terminal, Poll no longer reaches the network.
// Abandoning a Process (e.g. not waiting for it) never affects the server-side job.
package process

import (
	"context"
	"fmt"
	"sync"

	"github.com/dydra/dydra/pkg/process/status"
	"github.com/dydra/dydra/pkg/rpc"
	rpcstatus "github.com/dydra/dydra/pkg/rpc/status"
	"go.uber.org/zap"
)

// DefaultStatusMethod is the remote method polled for the status of a process
const DefaultStatusMethod = "process.status"

// Process is a client-side handle on a server job
type Process struct {
	id           string
	caller       rpc.Caller
	statusMethod string
	l            *zap.Logger

	pollMu sync.Mutex
	// terminal report received at creation, applied by the first poll
	early *report

	mu     sync.RWMutex
	state  State
	result interface{}
	detail string
}

type report struct {
	ID     string      `mapstructure:"id"`
	Status string      `mapstructure:"status"`
	Result interface{} `mapstructure:"result"`
	Error  interface{} `mapstructure:"error"`
}

// Track builds a Process from the result of a remote call.
//
// The result is either a job id, or a map with an "id" and optionally
// "status", "result" and "error" keys. A process starts as pending, or running
// when the server says so. A terminal status reported at creation is only
// observed by the first Poll.
func Track(caller rpc.Caller, result interface{}, opts ...Option) (*Process, error) {
	r, err := decodeReport(result)
	if err != nil {
		return nil, err
	}
	if r.ID == "" {
		return nil, rpcstatus.ErrUnexpectedResult.Wrapf("expected a process id, got %v", result)
	}

	p := &Process{
		id:           r.ID,
		caller:       caller,
		statusMethod: DefaultStatusMethod,
		l:            zap.NewNop(),
		state:        Pending,
	}
	for _, apply := range opts {
		apply(p)
	}
	p.l = p.l.With(zap.String("process", p.id))

	switch next := ParseState(r.Status); {
	case next.IsTerminal():
		p.early = &r
	case next.IsValid():
		p.advance(r)
	}
	p.l.Debug("tracking process", zap.Stringer("state", p.State()))
	return p, nil
}

func decodeReport(result interface{}) (report, error) {
	var r report
	switch v := result.(type) {
	case nil:
		return r, rpcstatus.ErrUnexpectedResult.Wrapf("expected a process, got nothing")
	case map[string]interface{}, map[interface{}]interface{}:
		if err := rpc.DecodeMap(v, &r); err != nil {
			return r, err
		}
		return r, nil
	default:
		id, err := rpc.String(v)
		if err != nil {
			return r, err
		}
		r.ID = id
		return r, nil
	}
}

// ID of the server job
func (p *Process) ID() string {
	return p.id
}

// State last observed
func (p *Process) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Result payload reported by the server, if any
func (p *Process) Result() interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.result
}

// Err returns the failure of a failed process, or nil
func (p *Process) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.state != Failed {
		return nil
	}
	return p.failure()
}

func (p *Process) failure() error {
	if p.detail == "" {
		return status.ErrProcessFailed.Wrapf("process %s", p.id)
	}
	return status.ErrProcessFailed.Wrapf("process %s: %s", p.id, p.detail)
}

func (p *Process) String() string {
	return fmt.Sprintf("%s (%s)", p.id, p.State())
}

// Poll the server for the status of this process, with one round-trip.
//
// Once the process is terminal, Poll returns its state without network access.
// Concurrent polls on the same process are serialized.
func (p *Process) Poll(ctx context.Context) (State, error) {
	p.pollMu.Lock()
	defer p.pollMu.Unlock()

	if current := p.State(); current.IsTerminal() {
		return current, nil
	}

	if p.early != nil {
		r := *p.early
		p.early = nil
		return p.advance(r), nil
	}

	result, err := p.caller.Call(ctx, p.statusMethod, p.id)
	if err != nil {
		return p.State(), err
	}

	var r report
	switch v := result.(type) {
	case map[string]interface{}, map[interface{}]interface{}:
		if err = rpc.DecodeMap(v, &r); err != nil {
			return p.State(), err
		}
	default:
		if r.Status, err = rpc.String(v); err != nil {
			return p.State(), err
		}
	}
	if !ParseState(r.Status).IsValid() {
		return p.State(), rpcstatus.ErrUnexpectedResult.Wrapf("process %s: unknown state %q", p.id, r.Status)
	}

	return p.advance(r), nil
}

// advance applies a status report, ignoring regressions
func (p *Process) advance(r report) State {
	next := ParseState(r.Status)

	p.mu.Lock()
	defer p.mu.Unlock()

	if !next.IsValid() || !p.state.canAdvanceTo(next) {
		if next != p.state {
			p.l.Debug("ignoring process state transition", zap.Stringer("state", p.state), zap.Stringer("reported", next))
		}
		return p.state
	}

	if next != p.state {
		p.l.Debug("process state changed", zap.Stringer("from", p.state), zap.Stringer("state", next))
	}
	p.state = next
	if r.Result != nil {
		p.result = r.Result
	}
	if r.Error != nil {
		p.detail = detail(r.Error)
	}
	return p.state
}

func detail(v interface{}) string {
	switch d := v.(type) {
	case string:
		return d
	case map[string]interface{}:
		if msg, ok := d["message"]; ok {
			return fmt.Sprint(msg)
		}
	}
	return fmt.Sprint(v)
}
