package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "rxflow"

// Config holds configuration for metrics collection.
type Config struct {
	// Enabled controls whether metrics collection is active.
	Enabled bool

	// Registry is the Prometheus registry to use. If nil, uses prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// Namespace overrides the default "rxflow" namespace for metrics.
	Namespace string

	// Labels are additional labels to add to all metrics.
	Labels prometheus.Labels
}

// DefaultConfig returns a default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Registry:  prometheus.DefaultRegisterer,
		Namespace: DefaultNamespace,
		Labels:    nil,
	}
}
