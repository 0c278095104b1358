// Package sources provides asynchronous producers for observable streams.
//
// Every source is cold: each Subscribe starts its own producer (a ticker, a
// cron runner, a Redis Pub/Sub connection, a WebSocket connection) and the
// returned subscription releases it. Constructors validate their arguments
// and return an *errors.ValidationError on bad input.
//
//	ticks, err := sources.Interval(time.Second, sources.WithCount(5))
//	if err != nil {
//		return err
//	}
//	sub := ticks.Subscribe(observer)
//	defer sub.Unsubscribe()
//
// Producers deliver notifications from their own goroutine. Values of one
// subscription are delivered serially.
package sources
