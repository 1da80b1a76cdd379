// Package metrics collects usage and IO metrics with prometheus.
//
// Metrics are declared as small structs of prometheus collectors
// (see UsageMetrics and IOMetrics), registered lazily against the
// registry configured with Init.
//
// All recording methods are safe to call on a nil receiver: this
// makes instrumentation optional for SDK users who don't care about metrics.
package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	initOnce sync.Once
	mp       *settings
)

// Init global settings for metrics collection, such as the namespace and registry.
//
// Init may be called multiple times: only the first time matters.
func Init(opts ...Option) {
	initOnce.Do(func() {
		mp = newSettings(opts...)
	})
}

func current() *settings {
	Init()
	return mp
}

// Registry yields the registerer in use
func Registry() prometheus.Registerer {
	return current().registerer
}

// Gatherer yields the gatherer in use
func Gatherer() prometheus.Gatherer {
	return current().gatherer
}

// Flush writes all collected metrics to a file, in the prometheus text format.
//
// This is intended for short-lived processes such as a CLI, for instance
// to feed the node exporter textfile collector.
func Flush(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, Gatherer())
}

// ensure registers a collector. When an equivalent collector is already registered,
// the existing one is returned instead.
func ensure[T prometheus.Collector](r prometheus.Registerer, c T) (T, error) {
	if err := r.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}
