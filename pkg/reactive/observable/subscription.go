package observable

import (
	"sync"

	rferrors "github.com/vnykmshr/rxflow/pkg/common/errors"
)

// Teardown releases whatever a producer acquired for one subscription.
type Teardown func() error

// Subscription is the handle returned by Subscribe. It accumulates teardowns
// and runs each of them exactly once, in registration order, when released.
//
// A Subscription is safe for concurrent use.
type Subscription struct {
	mu        sync.Mutex
	teardowns []Teardown
	err       error
}

// NewSubscription returns an empty subscription.
func NewSubscription() *Subscription {
	return &Subscription{}
}

// Add appends a teardown. Nil teardowns are ignored. A teardown added after
// Unsubscribe has drained the registry only runs on a later Unsubscribe.
func (s *Subscription) Add(teardown Teardown) {
	if teardown == nil {
		return
	}
	s.mu.Lock()
	s.teardowns = append(s.teardowns, teardown)
	s.mu.Unlock()
}

// Unsubscribe drains the registry and runs every teardown in registration
// order. All teardowns run even when an earlier one fails or panics; the
// first fault is returned as a *errors.TeardownError. Calling Unsubscribe on
// an empty registry is a no-op.
//
// Unsubscribe does not wait for a drain already running on another
// goroutine, such as the automatic release after a terminal notification on
// an asynchronous source. It returns nil at once while that drain finishes.
// Use Finalize to learn when the source has actually been released.
func (s *Subscription) Unsubscribe() error {
	s.mu.Lock()
	teardowns := s.teardowns
	s.teardowns = nil
	s.mu.Unlock()

	var (
		first  error
		faults int
	)
	for _, teardown := range teardowns {
		if err := runTeardown(teardown); err != nil {
			if first == nil {
				first = err
			}
			faults++
		}
	}
	if faults == 0 {
		return nil
	}

	err := &rferrors.TeardownError{First: first, Count: faults}
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
	return err
}

// Err returns the first teardown fault seen by this subscription, including
// faults from releases triggered by a terminal notification.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func runTeardown(teardown Teardown) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = rferrors.NewPanicError(r)
		}
	}()
	return teardown()
}
