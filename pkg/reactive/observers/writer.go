package observers

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	rferrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

// WriterObserver writes one line per notification to an io.Writer through a
// buffer. The buffer is flushed when the stream terminates, when it fills up,
// or on an explicit Flush.
type WriterObserver[T any] struct {
	mu     sync.Mutex
	buf    *bufio.Writer
	size   int
	format func(T) string
	err    error
	done   bool
}

var _ observable.Observer[int] = (*WriterObserver[int])(nil)

// WriterOption configures a WriterObserver.
type WriterOption[T any] func(*WriterObserver[T])

// WithFormat sets how values are rendered. The default is fmt.Sprint.
func WithFormat[T any](format func(T) string) WriterOption[T] {
	return func(w *WriterObserver[T]) {
		if format != nil {
			w.format = format
		}
	}
}

// WithBufferSize sets the size of the write buffer in bytes.
func WithBufferSize[T any](size int) WriterOption[T] {
	return func(w *WriterObserver[T]) {
		if size > 0 {
			w.size = size
		}
	}
}

// Writer returns an observer that writes values to w, one per line. Errors
// are written as "error: <err>" and completion as "completed".
func Writer[T any](w io.Writer, opts ...WriterOption[T]) *WriterObserver[T] {
	wo := &WriterObserver[T]{
		size:   4096,
		format: func(v T) string { return fmt.Sprint(v) },
	}
	for _, opt := range opts {
		opt(wo)
	}
	wo.buf = bufio.NewWriterSize(w, wo.size)
	return wo
}

// Next writes the formatted value.
func (w *WriterObserver[T]) Next(value T) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writeLine(w.format(value))
}

// Error writes the error and flushes. A nil err is written as
// errors.ErrNilError.
func (w *WriterObserver[T]) Error(err error) {
	if err == nil {
		err = rferrors.ErrNilError
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writeLine("error: " + err.Error())
	w.finish()
}

// Complete writes the completion marker and flushes.
func (w *WriterObserver[T]) Complete() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writeLine("completed")
	w.finish()
}

// Flush writes any buffered lines to the underlying writer.
func (w *WriterObserver[T]) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		if err := w.buf.Flush(); err != nil {
			w.err = rferrors.NewOperationError("observers", "flush", err)
		}
	}
	return w.err
}

// Err returns the first write failure. After the first failure no further
// output is attempted.
func (w *WriterObserver[T]) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *WriterObserver[T]) writeLine(line string) {
	if w.err != nil || w.done {
		return
	}
	if _, err := w.buf.WriteString(line + "\n"); err != nil {
		w.err = rferrors.NewOperationError("observers", "write", err)
	}
}

func (w *WriterObserver[T]) finish() {
	if w.done {
		return
	}
	w.done = true
	if w.err == nil {
		if err := w.buf.Flush(); err != nil {
			w.err = rferrors.NewOperationError("observers", "flush", err)
		}
	}
}
