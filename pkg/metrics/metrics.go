// Package metrics provides Prometheus instrumentation for rxflow streams.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Notification kinds used as the "kind" label.
const (
	KindNext     = "next"
	KindError    = "error"
	KindComplete = "complete"
)

// Registry holds all metric instances for instrumented streams.
type Registry struct {
	// Subscription lifecycle
	Subscriptions       *prometheus.CounterVec
	ActiveSubscriptions *prometheus.GaugeVec
	TeardownFaults      *prometheus.CounterVec

	// Notification flow
	Notifications *prometheus.CounterVec
	NextDuration  *prometheus.HistogramVec
}

// DefaultRegistry is the metrics registry registered with
// prometheus.DefaultRegisterer.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	cfg := DefaultConfig()
	cfg.Registry = reg
	return NewRegistryWithConfig(cfg)
}

// NewRegistryWithConfig creates a metrics registry from cfg. It returns nil
// when cfg.Enabled is false; instrumenting with a nil registry records
// nothing.
func NewRegistryWithConfig(cfg Config) *Registry {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	factory := promauto.With(cfg.Registry)

	return &Registry{
		Subscriptions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   cfg.Namespace,
				Subsystem:   "stream",
				Name:        "subscriptions_total",
				Help:        "Total number of subscriptions started",
				ConstLabels: cfg.Labels,
			},
			[]string{"stream_name"},
		),

		ActiveSubscriptions: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   cfg.Namespace,
				Subsystem:   "stream",
				Name:        "subscriptions_active",
				Help:        "Number of subscriptions not yet released",
				ConstLabels: cfg.Labels,
			},
			[]string{"stream_name"},
		),

		TeardownFaults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   cfg.Namespace,
				Subsystem:   "stream",
				Name:        "teardown_faults_total",
				Help:        "Total number of releases that reported a teardown fault",
				ConstLabels: cfg.Labels,
			},
			[]string{"stream_name"},
		),

		Notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   cfg.Namespace,
				Subsystem:   "stream",
				Name:        "notifications_total",
				Help:        "Total number of notifications delivered, by kind",
				ConstLabels: cfg.Labels,
			},
			[]string{"stream_name", "kind"},
		),

		NextDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   cfg.Namespace,
				Subsystem:   "stream",
				Name:        "next_duration_seconds",
				Help:        "Time spent by downstream observers handling a value",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: cfg.Labels,
			},
			[]string{"stream_name"},
		),
	}
}
