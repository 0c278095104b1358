package observable

// Observer receives the notifications of one subscription.
//
// Next may be called any number of times. Error and Complete are terminal:
// they are mutually exclusive, each happens at most once, and nothing is
// delivered after either of them.
type Observer[T any] interface {
	// Next delivers one emitted value.
	Next(value T)

	// Error signals abnormal termination with a producer-defined failure.
	Error(err error)

	// Complete signals normal termination.
	Complete()
}

// ObserverFuncs adapts plain functions to the Observer interface.
// Nil callbacks are ignored.
type ObserverFuncs[T any] struct {
	OnNext     func(value T)
	OnError    func(err error)
	OnComplete func()
}

// Next implements Observer.
func (f ObserverFuncs[T]) Next(value T) {
	if f.OnNext != nil {
		f.OnNext(value)
	}
}

// Error implements Observer.
func (f ObserverFuncs[T]) Error(err error) {
	if f.OnError != nil {
		f.OnError(err)
	}
}

// Complete implements Observer.
func (f ObserverFuncs[T]) Complete() {
	if f.OnComplete != nil {
		f.OnComplete()
	}
}
