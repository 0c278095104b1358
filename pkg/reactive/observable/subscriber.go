package observable

import (
	"sync/atomic"

	rferrors "github.com/vnykmshr/rxflow/pkg/common/errors"
)

// subscriber is the guarded relay handed to an OnSubscribe function. It
// forwards notifications to exactly one destination until the first terminal
// notification or until the owning subscription is released, whichever
// happens first. The latch never reopens.
type subscriber[T any] struct {
	destination  Observer[T]
	subscription *Subscription
	active       atomic.Bool
	// faulted is set when the destination itself panicked.
	faulted atomic.Bool
}

func newSubscriber[T any](destination Observer[T], subscription *Subscription) *subscriber[T] {
	s := &subscriber[T]{
		destination:  destination,
		subscription: subscription,
	}
	s.active.Store(true)
	return s
}

// Next forwards value while the relay is active.
func (s *subscriber[T]) Next(value T) {
	if !s.active.Load() {
		return
	}
	delivered := false
	defer func() {
		if !delivered {
			s.faulted.Store(true)
		}
	}()
	s.destination.Next(value)
	delivered = true
}

// Error closes the latch, forwards err and releases the subscription.
// Only the first terminal call wins. A nil err is replaced by
// errors.ErrNilError.
func (s *subscriber[T]) Error(err error) {
	if !s.active.CompareAndSwap(true, false) {
		return
	}
	defer s.release()
	if err == nil {
		err = rferrors.ErrNilError
	}
	s.destination.Error(err)
}

// Complete closes the latch, forwards completion and releases the
// subscription. Only the first terminal call wins.
func (s *subscriber[T]) Complete() {
	if !s.active.CompareAndSwap(true, false) {
		return
	}
	defer s.release()
	s.destination.Complete()
}

// close deactivates the relay without notifying the destination. It is the
// first teardown of every subscription.
func (s *subscriber[T]) close() error {
	s.active.Store(false)
	return nil
}

func (s *subscriber[T]) closed() bool {
	return !s.active.Load()
}

// consumerFault reports whether a panic escaping the producer came from the
// destination or arrived after the latch had closed.
func (s *subscriber[T]) consumerFault() bool {
	return s.faulted.Load() || s.closed()
}

// release runs the producer cleanup after a natural termination. Faults are
// kept on the subscription and reported by Subscription.Err.
func (s *subscriber[T]) release() {
	_ = s.subscription.Unsubscribe()
}
