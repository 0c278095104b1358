/*
Package observable provides push-based, cancellable streams of typed values.

An Observable is a cold stream source: it holds one OnSubscribe function and
runs it again for every Subscribe call. The function receives an Observer
(the relay) to push values into and returns a Teardown that stops whatever
it started. Consumers implement Observer and receive a well-ordered sequence
of notifications: zero or more Next calls followed by at most one Error or
Complete.

Core Concepts:

  - Observer: the notification contract (Next, Error, Complete)
  - Relay: every OnSubscribe function receives a guarded relay, not the
    consumer. After the first Error or Complete, or after the subscription is
    released, the relay drops everything, so consumers can rely on the
    contract even when a producer misbehaves
  - Subscription: the handle returned by Subscribe. Unsubscribe runs every
    registered teardown once, in registration order; later calls are no-ops
  - Operator: a function from one Observable to another. Map, TryMap,
    Filter, Tap, Take and Finalize are provided; Pipe and Pipe2 through Pipe5
    compose them left to right

Basic Usage:

	source := observable.New(func(o observable.Observer[int]) observable.Teardown {
		ticker := time.NewTicker(time.Second)
		done := make(chan struct{})
		go func() {
			for i := 0; ; i++ {
				select {
				case <-ticker.C:
					o.Next(i)
				case <-done:
					return
				}
			}
		}()
		return func() error {
			ticker.Stop()
			close(done)
			return nil
		}
	})

	pipeline := observable.Pipe2(
		observable.Map(func(x int) int { return x * 3 }),
		observable.Map(func(x int) string { return strconv.Itoa(x + 100) }),
	)

	sub := pipeline(source).Subscribe(observable.ObserverFuncs[string]{
		OnNext:     func(s string) { fmt.Println(s) },
		OnError:    func(err error) { log.Println(err) },
		OnComplete: func() { fmt.Println("Completed") },
	})
	defer sub.Unsubscribe()

Lifecycle:

Each subscription moves from Idle to Active when Subscribe runs the
OnSubscribe function, and to Terminated on the first Error or Complete, or on
Unsubscribe. Terminated is absorbing.

The producer's teardown runs exactly once on either path. When the producer
terminates on its own, the teardown runs right after the terminal
notification has been delivered; when the consumer calls Unsubscribe, the
relay is closed first and the teardown runs next. Producers therefore do not
need to release resources before signalling completion.

Teardown Order:

Releasing a piped subscription walks the chain from the consumer towards the
source: the last operator's stage is released first and the source's own
teardown runs last.

Error Handling:

Errors are ordinary Go error values. A producer failure travels down the
chain once and ends the stream. A panic inside a Map, TryMap, Filter or Tap
callback, or inside an OnSubscribe function, is recovered and delivered as an
Error carrying *errors.PanicError from pkg/common/errors. A panic in the
consumer's own callbacks is not converted; it propagates to whoever is
delivering, which for synchronous sources is the caller of Subscribe.
An Error(nil) notification is delivered as errors.ErrNilError:

	_, err := observable.Collect(ctx, observable.Map(parse)(source))
	if errors.Is(err, rferrors.ErrPanic) {
		log.Println("parser panicked:", err)
	}

Teardowns are run best effort. Every teardown runs even if an earlier one
fails or panics; Unsubscribe returns the first fault as *errors.TeardownError
and Subscription.Err keeps it for releases that happened automatically.

Concurrency:

The package adds no goroutines of its own and delivers notifications on
whatever goroutine the producer uses. The relay latch is atomic, so racing
terminal calls deliver exactly one terminal notification. A producer must
still call Next serially and not concurrently with Error or Complete.
Observables are immutable and independent activations share nothing, so one
Observable may be subscribed to from many goroutines at once.
*/
package observable
