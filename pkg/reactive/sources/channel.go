package sources

import (
	"context"

	rferrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

// FromChannel forwards values received from ch and completes when ch is
// closed. Releasing the subscription stops the receive loop but leaves ch
// open; the channel belongs to the caller.
//
// Subscribers share ch, so concurrent subscriptions split its values between
// them.
func FromChannel[T any](ch <-chan T) (*observable.Observable[T], error) {
	if ch == nil {
		return nil, rferrors.NewValidationError(module, "channel", nil, "cannot be nil").
			WithHint("provide an open channel")
	}

	return observable.New(func(observer observable.Observer[T]) observable.Teardown {
		return spawn(context.Background(), observer, nil, func(ctx context.Context, emit func(T)) error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case v, ok := <-ch:
					if !ok {
						return nil
					}
					emit(v)
				}
			}
		})
	}), nil
}
