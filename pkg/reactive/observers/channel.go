package observers

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

// Kind identifies the type of a Notification.
type Kind int

const (
	KindNext Kind = iota
	KindError
	KindComplete
)

func (k Kind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindComplete:
		return "complete"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Notification is one observer call captured as a value.
type Notification[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

// ChannelObserver forwards notifications onto a Go channel so that a
// separate goroutine can consume them with range.
type ChannelObserver[T any] struct {
	ch     chan Notification[T]
	closed atomic.Bool
	once   sync.Once
}

var _ observable.Observer[int] = (*ChannelObserver[int])(nil)

// Channel returns an observer backed by a channel with the given buffer
// size. Next blocks while the buffer is full, which stalls the producer. The
// channel is closed after the terminal notification has been sent. If the
// subscription is released before a terminal notification arrives, the
// channel stays open.
func Channel[T any](buffer int) *ChannelObserver[T] {
	if buffer < 0 {
		buffer = 0
	}
	return &ChannelObserver[T]{ch: make(chan Notification[T], buffer)}
}

// C returns the receive side of the channel.
func (c *ChannelObserver[T]) C() <-chan Notification[T] {
	return c.ch
}

// Next sends a KindNext notification.
func (c *ChannelObserver[T]) Next(value T) {
	if c.closed.Load() {
		return
	}
	c.ch <- Notification[T]{Kind: KindNext, Value: value}
}

// Error sends a KindError notification and closes the channel.
func (c *ChannelObserver[T]) Error(err error) {
	c.terminate(Notification[T]{Kind: KindError, Err: err})
}

// Complete sends a KindComplete notification and closes the channel.
func (c *ChannelObserver[T]) Complete() {
	c.terminate(Notification[T]{Kind: KindComplete})
}

func (c *ChannelObserver[T]) terminate(n Notification[T]) {
	c.once.Do(func() {
		c.closed.Store(true)
		c.ch <- n
		close(c.ch)
	})
}
