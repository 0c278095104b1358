package observable

import rferrors "github.com/vnykmshr/rxflow/pkg/common/errors"

// OnSubscribe starts emission for one subscription. It receives the guarded
// relay, may emit synchronously or hand the relay to asynchronous work, and
// returns the teardown that stops that work. A nil Teardown means there is
// nothing to release.
type OnSubscribe[T any] func(observer Observer[T]) Teardown

// Observable is a cold, unicast stream source. It is immutable; every call to
// Subscribe runs the OnSubscribe function again with its own relay and its
// own Subscription, so one Observable can be subscribed to from many
// goroutines at once.
type Observable[T any] struct {
	onSubscribe OnSubscribe[T]
}

// New creates an Observable from an OnSubscribe function.
func New[T any](onSubscribe OnSubscribe[T]) *Observable[T] {
	if onSubscribe == nil {
		panic("observable: nil OnSubscribe")
	}
	return &Observable[T]{onSubscribe: onSubscribe}
}

// Subscribe starts a new activation of the source and returns its handle.
//
// The producer's teardown runs exactly once: when the returned Subscription
// is released, or right after the first Error or Complete has been delivered
// to observer, whichever comes first. A panic raised by the OnSubscribe
// function is delivered to observer as an Error carrying *errors.PanicError.
// A panic raised by observer itself, or by the producer after the relay has
// closed, propagates to the caller of Subscribe unchanged.
func (o *Observable[T]) Subscribe(observer Observer[T]) *Subscription {
	if observer == nil {
		observer = ObserverFuncs[T]{}
	}

	subscription := NewSubscription()
	relay := newSubscriber(observer, subscription)
	subscription.Add(relay.close)
	subscription.Add(o.start(relay))

	// The producer terminated before its teardown was registered.
	if relay.closed() {
		_ = subscription.Unsubscribe()
	}
	return subscription
}

// Pipe applies ops left to right. Operators that change the element type are
// composed with Pipe2 through Pipe5 instead.
func (o *Observable[T]) Pipe(ops ...Operator[T, T]) *Observable[T] {
	return Pipe(ops...)(o)
}

func (o *Observable[T]) start(relay *subscriber[T]) (teardown Teardown) {
	defer func() {
		if r := recover(); r != nil {
			if relay.consumerFault() {
				panic(r)
			}
			teardown = nil
			relay.Error(rferrors.NewPanicError(r))
		}
	}()
	return o.onSubscribe(relay)
}
