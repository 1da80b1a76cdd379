package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UsageMetrics is a common set of metrics reporting about usage
type UsageMetrics struct {
	Count    *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Timing   *prometheus.HistogramVec
}

// NewUsageMetrics registers a set of usage metrics for some subsystem (e.g. "rpc", "cli").
//
// It may safely be called several times for the same subsystem:
// only the first registration is retained.
func NewUsageMetrics(subsystem string) *UsageMetrics {
	return newUsageMetrics(current(), subsystem)
}

func newUsageMetrics(s *settings, subsystem string) *UsageMetrics {
	labels := []string{"method"}
	return &UsageMetrics{
		Count: mustEnsure(s.registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: s.namespace,
			Subsystem: subsystem,
			Name:      "calls_total",
			Help:      "number of calls",
		}, labels)),
		Failures: mustEnsure(s.registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: s.namespace,
			Subsystem: subsystem,
			Name:      "failures_total",
			Help:      "number of failed calls",
		}, labels)),
		Timing: mustEnsure(s.registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: s.namespace,
			Subsystem: subsystem,
			Name:      "duration_seconds",
			Help:      "duration of a call",
			Buckets:   prometheus.DefBuckets,
		}, labels)),
	}
}

// Inc records the usage of some method, without timings or failure reporting
func (u *UsageMetrics) Inc(method string) {
	if u == nil {
		return
	}
	u.Count.WithLabelValues(method).Inc()
}

// Used records usage of some instrumented entry point.
//
// Example:
//
//	defer myUsageMetrics.Used(time.Now(), "MyInstrumentedFunc")
func (u *UsageMetrics) Used(start time.Time, method string) {
	if u == nil {
		return
	}
	u.Timing.WithLabelValues(method).Observe(time.Since(start).Seconds())
	u.Count.WithLabelValues(method).Inc()
}

// UsedAll records usage of some instrumented entry point with failures, in one go.
//
// Example:
//
//	var err error
//	defer func(start time.Time) {
//	  myUsageMetrics.UsedAll(start, "MyInstrumentedFunc")(err)
//	}(time.Now())
func (u *UsageMetrics) UsedAll(start time.Time, method string) func(error) {
	return func(err error) {
		if u == nil {
			return
		}
		u.Used(start, method)
		if err != nil {
			u.Failed(method)
		}
	}
}

// Failed records a failure on some instrumented entry point
func (u *UsageMetrics) Failed(method string) {
	if u == nil {
		return
	}
	u.Failures.WithLabelValues(method).Inc()
}

// IOMetrics is a common set of metrics reporting about IO activity
type IOMetrics struct {
	Count    *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Timing   *prometheus.HistogramVec
	IOSize   *prometheus.CounterVec
}

// NewIOMetrics registers a set of IO metrics for some subsystem (e.g. "http").
func NewIOMetrics(subsystem string) *IOMetrics {
	return newIOMetrics(current(), subsystem)
}

func newIOMetrics(s *settings, subsystem string) *IOMetrics {
	labels := []string{"operation"}
	return &IOMetrics{
		Count: mustEnsure(s.registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: s.namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "number of IO requests",
		}, labels)),
		Failures: mustEnsure(s.registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: s.namespace,
			Subsystem: subsystem,
			Name:      "request_failures_total",
			Help:      "number of failed IO requests",
		}, labels)),
		Timing: mustEnsure(s.registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: s.namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "response time of IO requests",
			Buckets:   prometheus.DefBuckets,
		}, labels)),
		IOSize: mustEnsure(s.registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: s.namespace,
			Subsystem: subsystem,
			Name:      "transferred_bytes_total",
			Help:      "number of bytes transferred",
		}, labels)),
	}
}

// IORecord records all metrics for an IO operation in one go.
//
// Example with deferred error capture:
//
//	defer func(start time.Time) {
//	  myIOMetrics.IORecord(start, "get")(size, err)
//	}(time.Now())
func (n *IOMetrics) IORecord(start time.Time, operation string) func(int64, error) {
	return func(size int64, err error) {
		if n == nil {
			return
		}
		n.Timing.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		n.Count.WithLabelValues(operation).Inc()
		if err != nil {
			n.Failures.WithLabelValues(operation).Inc()
			return
		}
		if size > 0 {
			n.IOSize.WithLabelValues(operation).Add(float64(size))
		}
	}
}

func mustEnsure[T prometheus.Collector](r prometheus.Registerer, c T) T {
	registered, err := ensure(r, c)
	if err != nil {
		panic(fmt.Sprintf("dev error: cannot register metric: %v", err))
	}
	return registered
}
