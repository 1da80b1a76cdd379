package process

import (
	"context"
	"errors"
	"time"

	"github.com/dydra/dydra/pkg/process/status"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Wait polls the process until it terminates.
//
// It returns the result payload on success, ErrProcessFailed with the server detail
// on failure and ErrTimeout when the Timeout option elapses first.
// When the interval would overshoot the timeout, the last poll happens when the timeout elapses.
// A poll still in flight then gets one more interval to answer.
// When the parent context is done, its error is returned.
func (p *Process) Wait(ctx context.Context, opts ...WaitOption) (interface{}, error) {
	s := waitSettings{interval: DefaultInterval}
	for _, apply := range opts {
		apply(&s)
	}

	t0 := time.Now()
	var budget time.Time
	if s.timeout > 0 {
		budget = t0.Add(s.timeout)
	}

	limiter := rate.NewLimiter(rate.Every(s.interval), 1)
	for {
		delay := limiter.Reserve().Delay()
		if !budget.IsZero() {
			delay = min(delay, time.Until(budget))
		}
		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}

		state, err := p.pollWithin(ctx, budget, s.interval)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if !budget.IsZero() && errors.Is(err, context.DeadlineExceeded) {
				return nil, status.ErrTimeout.Wrapf("process %s still %s after %v: %w", p.id, p.State(), time.Since(t0).Round(time.Millisecond), err)
			}
			return nil, err
		}

		switch state {
		case Succeeded:
			p.l.Debug("process succeeded", zap.Duration("elapsed", time.Since(t0)))
			return p.Result(), nil
		case Failed:
			p.l.Debug("process failed", zap.Duration("elapsed", time.Since(t0)))
			return nil, p.Err()
		}

		if !budget.IsZero() && !time.Now().Before(budget) {
			return nil, status.ErrTimeout.Wrapf("process %s still %s after %v", p.id, state, time.Since(t0).Round(time.Millisecond))
		}
	}
}

// pollWithin bounds a poll to the wait budget, plus one interval for a poll issued when the budget elapses
func (p *Process) pollWithin(ctx context.Context, budget time.Time, interval time.Duration) (State, error) {
	if budget.IsZero() {
		return p.Poll(ctx)
	}
	pollCtx, cancel := context.WithDeadline(ctx, budget.Add(interval))
	defer cancel()
	return p.Poll(pollCtx)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
