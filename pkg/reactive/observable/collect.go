package observable

import (
	"context"
	"fmt"
	"sync"

	rferrors "github.com/vnykmshr/rxflow/pkg/common/errors"
)

// Collect subscribes to source and blocks until it terminates, returning the
// values it emitted. If the stream ends with an Error, Collect returns the
// values seen so far together with that error. If ctx is done first, the
// subscription is released and the returned error wraps both
// errors.ErrUnsubscribed and ctx.Err().
func Collect[T any](ctx context.Context, source *Observable[T]) ([]T, error) {
	var (
		mu     sync.Mutex
		values []T
	)
	done := make(chan error, 1)

	subscription := source.Subscribe(ObserverFuncs[T]{
		OnNext: func(value T) {
			mu.Lock()
			values = append(values, value)
			mu.Unlock()
		},
		OnError: func(err error) {
			done <- err
		},
		OnComplete: func() {
			done <- nil
		},
	})

	select {
	case err := <-done:
		mu.Lock()
		defer mu.Unlock()
		return values, err
	case <-ctx.Done():
		_ = subscription.Unsubscribe()
		return nil, fmt.Errorf("%w: %w", rferrors.ErrUnsubscribed, ctx.Err())
	}
}
