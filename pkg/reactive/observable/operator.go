package observable

import (
	"sync/atomic"

	rferrors "github.com/vnykmshr/rxflow/pkg/common/errors"
)

// Operator derives a new Observable from a source. Operators hold no
// per-subscription state; everything an activation needs is created when the
// derived Observable is subscribed to.
type Operator[T, R any] func(source *Observable[T]) *Observable[R]

// Identity returns the operator that leaves a source unchanged.
func Identity[T any]() Operator[T, T] {
	return func(source *Observable[T]) *Observable[T] {
		return source
	}
}

// Pipe composes same-typed operators left to right: the first listed operator
// transforms values first. Pipe with no operators is Identity.
func Pipe[T any](ops ...Operator[T, T]) Operator[T, T] {
	return func(source *Observable[T]) *Observable[T] {
		for _, op := range ops {
			source = op(source)
		}
		return source
	}
}

// Pipe2 composes two operators: Pipe2(op1, op2)(s) == op2(op1(s)).
func Pipe2[A, B, C any](op1 Operator[A, B], op2 Operator[B, C]) Operator[A, C] {
	return func(source *Observable[A]) *Observable[C] {
		return op2(op1(source))
	}
}

// Pipe3 composes three operators left to right.
func Pipe3[A, B, C, D any](op1 Operator[A, B], op2 Operator[B, C], op3 Operator[C, D]) Operator[A, D] {
	return func(source *Observable[A]) *Observable[D] {
		return op3(Pipe2(op1, op2)(source))
	}
}

// Pipe4 composes four operators left to right.
func Pipe4[A, B, C, D, E any](op1 Operator[A, B], op2 Operator[B, C], op3 Operator[C, D], op4 Operator[D, E]) Operator[A, E] {
	return func(source *Observable[A]) *Observable[E] {
		return op4(Pipe3(op1, op2, op3)(source))
	}
}

// Pipe5 composes five operators left to right.
func Pipe5[A, B, C, D, E, F any](op1 Operator[A, B], op2 Operator[B, C], op3 Operator[C, D], op4 Operator[D, E], op5 Operator[E, F]) Operator[A, F] {
	return func(source *Observable[A]) *Observable[F] {
		return op5(Pipe4(op1, op2, op3, op4)(source))
	}
}

// Map transforms every value with fn. A panic raised by fn is delivered
// downstream as an Error carrying *errors.PanicError, and the source is
// released.
func Map[T, R any](fn func(T) R) Operator[T, R] {
	return TryMap(func(value T) (R, error) {
		return fn(value), nil
	})
}

// TryMap transforms every value with fn. A non-nil error from fn terminates
// the stream with that error.
func TryMap[T, R any](fn func(T) (R, error)) Operator[T, R] {
	return func(source *Observable[T]) *Observable[R] {
		return lift(source, func(destination Observer[R]) Observer[T] {
			s := &mapStage[T, R]{fn: fn}
			s.destination = destination
			return s
		})
	}
}

// lift subscribes to source with the stage built for each activation and
// releases the upstream subscription when the derived one is released.
func lift[T, R any](source *Observable[T], newStage func(destination Observer[R]) Observer[T]) *Observable[R] {
	return New(func(destination Observer[R]) Teardown {
		upstream := source.Subscribe(newStage(destination))
		return upstream.Unsubscribe
	})
}

// forwarder is the downstream half shared by every stage. It lets a stage
// end the stream on its own and ignore the rest of the upstream afterwards.
type forwarder[R any] struct {
	destination Observer[R]
	stopped     atomic.Bool
}

func (f *forwarder[R]) Error(err error) {
	if f.stopped.CompareAndSwap(false, true) {
		f.destination.Error(err)
	}
}

func (f *forwarder[R]) Complete() {
	if f.stopped.CompareAndSwap(false, true) {
		f.destination.Complete()
	}
}

func (f *forwarder[R]) done() bool {
	return f.stopped.Load()
}

type mapStage[T, R any] struct {
	forwarder[R]
	fn func(T) (R, error)
}

func (s *mapStage[T, R]) Next(value T) {
	if s.done() {
		return
	}
	result, err := guard(func() (R, error) { return s.fn(value) })
	if err != nil {
		s.Error(err)
		return
	}
	s.destination.Next(result)
}

// guard runs fn and turns a panic into a *errors.PanicError.
func guard[R any](fn func() (R, error)) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = rferrors.NewPanicError(r)
		}
	}()
	return fn()
}
