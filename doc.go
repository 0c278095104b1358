/*
Package rxflow provides a push-based reactive stream core for Go together with
sources, observers and metrics built on top of it.

Core (pkg/reactive/observable):
  - Observable: cold, unicast producer started by Subscribe
  - Subscription: ordered, idempotent teardown registry
  - Operators: Map, TryMap, Filter, Tap, Take, Finalize composed with Pipe

Sources (pkg/reactive/sources):
  - Interval and Cron: timer driven streams
  - FromChannel: adapts a Go channel
  - RedisChannel, RedisPattern: Redis Pub/Sub messages
  - WebSocket: messages from a WebSocket server

Observers (pkg/reactive/observers):
  - Logger: logrus output
  - Writer: line output on an io.Writer
  - Channel: notifications as channel values

Metrics (pkg/metrics):
  - Instrument: Prometheus counters and histograms per stream

Example usage:

	import (
		"github.com/vnykmshr/rxflow/pkg/reactive/observable"
		"github.com/vnykmshr/rxflow/pkg/reactive/sources"
	)

	ticks, _ := sources.Interval(time.Second, sources.WithCount(5))
	tripled := observable.Map(func(x int) int { return x * 3 })(ticks)

	sub := tripled.Subscribe(observable.ObserverFuncs[int]{
		OnNext: func(v int) { fmt.Println(v) },
	})
	defer sub.Unsubscribe()
*/
package rxflow
