package cmd

import (
	"context"
	stdjson "encoding/json"
	"fmt"
	"time"

	units "github.com/docker/go-units"
	"github.com/dydra/dydra/pkg/errors"
	"github.com/dydra/dydra/pkg/process"
	processstatus "github.com/dydra/dydra/pkg/process/status"
	"github.com/fatih/color"
	"gopkg.in/yaml.v2"
)

func colorState(s process.State) string {
	switch s {
	case process.Succeeded:
		return color.GreenString(s.String())
	case process.Failed:
		return color.RedString(s.String())
	case process.Running:
		return color.YellowString(s.String())
	default:
		return color.CyanString(s.String())
	}
}

// follow reports on a process started on some resource.
//
// Without --wait, the process is reported as started. Otherwise, the process is polled until
// it completes and the result is returned.
func follow(ctx context.Context, subject string, p *process.Process) (interface{}, error) {
	logStdOut("%s: process %s %s\n", subject, p.ID(), colorState(p.State()))
	if !dydraFlags.process.wait {
		return nil, nil
	}

	t0 := time.Now()
	result, err := p.Wait(ctx, newCliOptionInputs(config, &dydraFlags).waitOptions()...)
	elapsed := units.HumanDuration(time.Since(t0))
	switch {
	case err == nil:
		logStdOut("%s: process %s %s after %s\n", subject, p.ID(), colorState(p.State()), elapsed)
	case errors.Is(err, processstatus.ErrProcessFailed):
		logStdOut("%s: process %s %s after %s\n", subject, p.ID(), colorState(p.State()), elapsed)
	case errors.Is(err, processstatus.ErrTimeout):
		logStdOut("%s: process %s still %s after %s\n", subject, p.ID(), colorState(p.State()), elapsed)
	}
	return result, err
}

func printResult(result interface{}) error {
	if result == nil {
		return nil
	}
	if s, ok := result.(string); ok {
		logStdOut("%s\n", s)
		return nil
	}
	out, err := yaml.Marshal(plain(result))
	if err != nil {
		return fmt.Errorf("serialize result: %w", err)
	}
	logStdOut("%s", out)
	return nil
}

// plain converts JSON numbers to native numbers, so they render as such
func plain(v interface{}) interface{} {
	switch value := v.(type) {
	case stdjson.Number:
		if i, err := value.Int64(); err == nil {
			return i
		}
		if f, err := value.Float64(); err == nil {
			return f
		}
		return value.String()
	case map[string]interface{}:
		m := make(map[string]interface{}, len(value))
		for k, e := range value {
			m[k] = plain(e)
		}
		return m
	case []interface{}:
		l := make([]interface{}, len(value))
		for i, e := range value {
			l[i] = plain(e)
		}
		return l
	default:
		return v
	}
}
