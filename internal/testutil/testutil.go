package testutil

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// TestTimeout is the default timeout for tests
const TestTimeout = 5 * time.Second

// WithTimeout creates a context with the default test timeout
func WithTimeout(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), TestTimeout)
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertEqual fails the test if got != want
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// AssertSliceEqual fails the test if the slices differ in length or content
func AssertSliceEqual[T comparable](t *testing.T, got, want []T) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v (len %d), want %v (len %d)", got, len(got), want, len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("at index %d: got %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

// Eventually polls condition every tick until it returns true or timeout
// elapses, failing the test in the latter case.
func Eventually(t *testing.T, condition func() bool, timeout, tick time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if condition() {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition not met within %v", timeout)
		}
		time.Sleep(tick)
	}
}

// AssertEventually is Eventually with the default test timeout.
func AssertEventually(t *testing.T, condition func() bool) {
	t.Helper()
	Eventually(t, condition, TestTimeout, 10*time.Millisecond)
}

// WaitForInt32 waits until *addr holds want.
func WaitForInt32(t *testing.T, addr *int32, want int32, timeout time.Duration) {
	t.Helper()
	Eventually(t, func() bool { return atomic.LoadInt32(addr) == want }, timeout, 5*time.Millisecond)
}

// CallbackTracker counts invocations of a callback and remembers the last
// value it was called with.
type CallbackTracker struct {
	mu    sync.Mutex
	count int
	value interface{}
}

// NewCallbackTracker creates an empty tracker.
func NewCallbackTracker() *CallbackTracker {
	return &CallbackTracker{}
}

// Mark records one call, optionally with a value.
func (c *CallbackTracker) Mark(value ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	if len(value) > 0 {
		c.value = value[0]
	}
}

// Called reports whether Mark was called at least once.
func (c *CallbackTracker) Called() bool {
	return c.CallCount() > 0
}

// CallCount returns the number of Mark calls.
func (c *CallbackTracker) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Value returns the last value passed to Mark.
func (c *CallbackTracker) Value() interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// AssertNotCalled fails the test if Mark was called.
func (c *CallbackTracker) AssertNotCalled(t *testing.T) {
	t.Helper()
	if c.Called() {
		t.Fatalf("expected callback not to be called, got %d calls", c.CallCount())
	}
}

// AssertCallCount fails the test unless Mark was called exactly want times.
func (c *CallbackTracker) AssertCallCount(t *testing.T, want int) {
	t.Helper()
	if got := c.CallCount(); got != want {
		t.Fatalf("call count = %d, want %d", got, want)
	}
}
