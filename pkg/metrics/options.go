package metrics

import "github.com/prometheus/client_golang/prometheus"

const defaultNamespace = "dydra"

// Option sets global metrics settings
type Option func(*settings)

type settings struct {
	namespace  string
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
}

// WithNamespace sets the namespace prefixed to all metric names. The default namespace is "dydra".
func WithNamespace(namespace string) Option {
	return func(s *settings) {
		if namespace != "" {
			s.namespace = namespace
		}
	}
}

// WithRegistry sets the registry used to register and gather metrics.
// The default is a private registry, not the prometheus default one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *settings) {
		if registry != nil {
			s.registerer = registry
			s.gatherer = registry
		}
	}
}

func newSettings(opts ...Option) *settings {
	registry := prometheus.NewRegistry()
	s := &settings{
		namespace:  defaultNamespace,
		registerer: registry,
		gatherer:   registry,
	}
	for _, apply := range opts {
		apply(s)
	}
	return s
}
