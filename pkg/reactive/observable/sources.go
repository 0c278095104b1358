package observable

// Of emits values in order and completes.
func Of[T any](values ...T) *Observable[T] {
	return FromSlice(values)
}

// FromSlice emits the elements of slice in order and completes. Emission is
// synchronous: it happens inside Subscribe.
func FromSlice[T any](slice []T) *Observable[T] {
	return New(func(observer Observer[T]) Teardown {
		for _, value := range slice {
			observer.Next(value)
		}
		observer.Complete()
		return nil
	})
}

// Empty completes immediately without emitting.
func Empty[T any]() *Observable[T] {
	return New(func(observer Observer[T]) Teardown {
		observer.Complete()
		return nil
	})
}

// Throw terminates immediately with err.
func Throw[T any](err error) *Observable[T] {
	return New(func(observer Observer[T]) Teardown {
		observer.Error(err)
		return nil
	})
}
