package testutil

import (
	"fmt"
	"sync"
)

// Recorder is an observer that records every notification it receives. It
// satisfies observable.Observer[T] and is safe for concurrent use.
type Recorder[T any] struct {
	mu          sync.Mutex
	values      []T
	errs        []error
	completions int
	events      []string
	terminated  chan struct{}
	once        sync.Once
}

// NewRecorder creates an empty Recorder.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{terminated: make(chan struct{})}
}

// Next records a value.
func (r *Recorder[T]) Next(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, value)
	r.events = append(r.events, fmt.Sprintf("next:%v", value))
}

// Error records an error.
func (r *Recorder[T]) Error(err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.events = append(r.events, fmt.Sprintf("error:%v", err))
	r.mu.Unlock()
	r.once.Do(func() { close(r.terminated) })
}

// Complete records a completion.
func (r *Recorder[T]) Complete() {
	r.mu.Lock()
	r.completions++
	r.events = append(r.events, "complete")
	r.mu.Unlock()
	r.once.Do(func() { close(r.terminated) })
}

// Values returns a copy of the recorded values.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

// Errors returns a copy of the recorded errors.
func (r *Recorder[T]) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

// Err returns the first recorded error, or nil.
func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs[0]
}

// Completions returns how many times Complete was called.
func (r *Recorder[T]) Completions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completions
}

// Events returns the notifications in arrival order, formatted as
// "next:<value>", "error:<err>" and "complete".
func (r *Recorder[T]) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// Len returns the number of recorded values.
func (r *Recorder[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Terminated is closed on the first Error or Complete.
func (r *Recorder[T]) Terminated() <-chan struct{} {
	return r.terminated
}
