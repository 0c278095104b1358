package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

// Instrument returns an operator that passes notifications through unchanged
// while recording them in registry under the given stream name. A nil
// registry disables recording and Instrument returns the identity operator.
func Instrument[T any](name string, registry *Registry) observable.Operator[T, T] {
	if registry == nil {
		return observable.Identity[T]()
	}

	subscriptions := registry.Subscriptions.WithLabelValues(name)
	active := registry.ActiveSubscriptions.WithLabelValues(name)
	faults := registry.TeardownFaults.WithLabelValues(name)
	nextDuration := registry.NextDuration.WithLabelValues(name)
	counters := map[string]prometheus.Counter{
		KindNext:     registry.Notifications.WithLabelValues(name, KindNext),
		KindError:    registry.Notifications.WithLabelValues(name, KindError),
		KindComplete: registry.Notifications.WithLabelValues(name, KindComplete),
	}

	return func(source *observable.Observable[T]) *observable.Observable[T] {
		return observable.New(func(destination observable.Observer[T]) observable.Teardown {
			subscriptions.Inc()
			active.Inc()

			upstream := source.Subscribe(&instrumented[T]{
				destination: destination,
				counters:    counters,
				duration:    nextDuration,
			})

			return func() error {
				active.Dec()
				err := upstream.Unsubscribe()
				if err != nil || upstream.Err() != nil {
					faults.Inc()
				}
				return err
			}
		})
	}
}

type instrumented[T any] struct {
	destination observable.Observer[T]
	counters    map[string]prometheus.Counter
	duration    prometheus.Observer
}

func (i *instrumented[T]) Next(value T) {
	i.counters[KindNext].Inc()
	start := time.Now()
	i.destination.Next(value)
	i.duration.Observe(time.Since(start).Seconds())
}

func (i *instrumented[T]) Error(err error) {
	i.counters[KindError].Inc()
	i.destination.Error(err)
}

func (i *instrumented[T]) Complete() {
	i.counters[KindComplete].Inc()
	i.destination.Complete()
}
