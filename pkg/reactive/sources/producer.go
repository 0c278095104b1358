package sources

import (
	"context"
	"sync/atomic"

	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

const module = "sources"

// loop is the body of an asynchronous producer. It hands values to emit and
// returns nil to complete the stream or an error to fail it. It must return
// promptly once ctx is done.
type loop[T any] func(ctx context.Context, emit func(T)) error

// spawn runs body on its own goroutine and delivers its result to observer.
//
// The returned teardown closes release (if any), cancels body and waits for
// the goroutine to exit. It does not wait when it may be running on that
// goroutine: after the goroutine delivered the terminal notification, or
// while a value is being delivered (an observer unsubscribing from Next).
func spawn[T any](parent context.Context, observer observable.Observer[T], release func() error, body loop[T]) observable.Teardown {
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	var (
		terminating atomic.Bool
		delivering  atomic.Int32
	)

	emit := func(value T) {
		delivering.Add(1)
		defer delivering.Add(-1)
		observer.Next(value)
	}

	go func() {
		defer close(done)
		err := body(ctx, emit)
		if ctx.Err() != nil && parent.Err() == nil {
			return
		}
		terminating.Store(true)
		if err != nil {
			observer.Error(err)
			return
		}
		observer.Complete()
	}()

	return func() error {
		var err error
		if release != nil {
			err = release()
		}
		cancel()
		if !terminating.Load() && delivering.Load() == 0 {
			<-done
		}
		return err
	}
}
