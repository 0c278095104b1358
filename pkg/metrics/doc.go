// Package metrics provides Prometheus instrumentation for rxflow streams.
//
// # Overview
//
// Streams are instrumented by inserting the Instrument operator into a
// pipeline. It forwards every notification unchanged and records:
//   - Subscriptions started and still active
//   - Notifications delivered, by kind
//   - Time downstream observers spend handling each value
//   - Releases that reported a teardown fault
//
// # Quick Start
//
//	pipeline := observable.Pipe3(
//		observable.Map(parse),
//		observable.Filter(valid),
//		metrics.Instrument[Event]("events", metrics.DefaultRegistry),
//	)
//	sub := pipeline(source).Subscribe(observer)
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":9090", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := metrics.NewRegistryWithConfig(metrics.Config{
//		Enabled:   true,
//		Registry:  prometheus.NewRegistry(),
//		Namespace: "ingest",
//		Labels:    prometheus.Labels{"version": "1.0"},
//	})
//
// A disabled Config yields a nil *Registry, and Instrument with a nil
// registry is the identity operator.
//
// # Available Metrics
//
//   - rxflow_stream_subscriptions_total: Total number of subscriptions started
//   - rxflow_stream_subscriptions_active: Number of subscriptions not yet released
//   - rxflow_stream_notifications_total: Notifications delivered, labelled by kind
//   - rxflow_stream_next_duration_seconds: Time spent by downstream observers handling a value
//   - rxflow_stream_teardown_faults_total: Releases that reported a teardown fault
//
// # Labels
//
//   - stream_name: Name passed to Instrument
//   - kind: "next", "error" or "complete"
//
// # Performance
//
// Label values are resolved once per Instrument call, so recording a
// notification is a single counter increment. No background goroutines or
// timers are started.
package metrics
