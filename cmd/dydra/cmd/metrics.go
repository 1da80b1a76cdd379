package cmd

import (
	"time"

	"github.com/dydra/dydra/pkg/metrics"
)

// M describes metrics for the cmd package
type M struct {
	Usage *metrics.UsageMetrics

	// more metrics here
}

var cliMetrics M

func (m *M) usage() *metrics.UsageMetrics {
	if m.Usage == nil {
		m.Usage = metrics.NewUsageMetrics("cli")
	}
	return m.Usage
}

// cliUsage records a usage metric in the CLI context in a single go.
// This is intended to be used in some defer statement.
//
// Metrics are flushed to the metrics file as soon as the command is done.
func cliUsage(t0 time.Time, command string, err error) {
	target := dydraFlags.root.metrics
	if target == "" {
		return
	}
	cliMetrics.usage().UsedAll(t0, command)(err)
	if ferr := metrics.Flush(target); ferr != nil {
		infoLogger.Printf("warning: could not write metrics to %s: %v", target, ferr)
	}
}
