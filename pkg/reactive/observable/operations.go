package observable

import "sync/atomic"

// Filter forwards only the values for which predicate returns true.
// A panic raised by predicate terminates the stream with an Error.
func Filter[T any](predicate func(T) bool) Operator[T, T] {
	return func(source *Observable[T]) *Observable[T] {
		return lift(source, func(destination Observer[T]) Observer[T] {
			s := &filterStage[T]{predicate: predicate}
			s.destination = destination
			return s
		})
	}
}

type filterStage[T any] struct {
	forwarder[T]
	predicate func(T) bool
}

func (s *filterStage[T]) Next(value T) {
	if s.done() {
		return
	}
	keep, err := guard(func() (bool, error) { return s.predicate(value), nil })
	if err != nil {
		s.Error(err)
		return
	}
	if keep {
		s.destination.Next(value)
	}
}

// Tap calls observer for every notification before forwarding it unchanged.
// A panic raised by observer.Next terminates the stream with an Error.
func Tap[T any](observer Observer[T]) Operator[T, T] {
	return func(source *Observable[T]) *Observable[T] {
		return lift(source, func(destination Observer[T]) Observer[T] {
			s := &tapStage[T]{observer: observer}
			s.destination = destination
			return s
		})
	}
}

type tapStage[T any] struct {
	forwarder[T]
	observer Observer[T]
}

func (s *tapStage[T]) Next(value T) {
	if s.done() {
		return
	}
	_, err := guard(func() (struct{}, error) {
		s.observer.Next(value)
		return struct{}{}, nil
	})
	if err != nil {
		s.Error(err)
		return
	}
	s.destination.Next(value)
}

func (s *tapStage[T]) Error(err error) {
	if !s.done() {
		s.observer.Error(err)
	}
	s.forwarder.Error(err)
}

func (s *tapStage[T]) Complete() {
	if !s.done() {
		s.observer.Complete()
	}
	s.forwarder.Complete()
}

// Take forwards the first n values and then completes, releasing the source.
// Take with n <= 0 completes without subscribing to the source.
func Take[T any](n int) Operator[T, T] {
	return func(source *Observable[T]) *Observable[T] {
		if n <= 0 {
			return Empty[T]()
		}
		return lift(source, func(destination Observer[T]) Observer[T] {
			s := &takeStage[T]{limit: int64(n)}
			s.destination = destination
			return s
		})
	}
}

type takeStage[T any] struct {
	forwarder[T]
	limit int64
	seen  atomic.Int64
}

func (s *takeStage[T]) Next(value T) {
	if s.done() {
		return
	}
	seen := s.seen.Add(1)
	if seen > s.limit {
		return
	}
	s.destination.Next(value)
	if seen == s.limit {
		s.Complete()
	}
}

// Finalize calls fn once when a subscription to the derived Observable is
// released, whether by Unsubscribe or after a terminal notification. fn runs
// after the source has been released.
func Finalize[T any](fn func()) Operator[T, T] {
	return func(source *Observable[T]) *Observable[T] {
		return New(func(destination Observer[T]) Teardown {
			upstream := source.Subscribe(destination)
			return func() error {
				defer fn()
				return upstream.Unsubscribe()
			}
		})
	}
}
