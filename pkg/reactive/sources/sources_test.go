package sources

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/rxflow/internal/testutil"
	rferrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

func TestIntervalCount(t *testing.T) {
	ticks, err := Interval(5*time.Millisecond, WithCount(3))
	testutil.AssertNoError(t, err)

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	got, err := observable.Collect(ctx, ticks)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{0, 1, 2})
}

func TestIntervalUnsubscribe(t *testing.T) {
	ticks, err := Interval(2 * time.Millisecond)
	testutil.AssertNoError(t, err)

	rec := testutil.NewRecorder[int]()
	sub := ticks.Subscribe(rec)
	testutil.AssertEventually(t, func() bool { return rec.Len() >= 2 })

	testutil.AssertNoError(t, sub.Unsubscribe())
	seen := rec.Len()
	time.Sleep(20 * time.Millisecond)

	testutil.AssertEqual(t, rec.Len(), seen)
	testutil.AssertEqual(t, rec.Completions(), 0)
	testutil.AssertNoError(t, sub.Unsubscribe())
}

func TestIntervalUnsubscribeFromNext(t *testing.T) {
	ticks, err := Interval(time.Millisecond)
	testutil.AssertNoError(t, err)

	subscribed := make(chan *observable.Subscription, 1)
	released := make(chan struct{})
	rec := testutil.NewRecorder[int]()
	sub := ticks.Subscribe(observable.ObserverFuncs[int]{
		OnNext: func(v int) {
			rec.Next(v)
			s := <-subscribed
			testutil.AssertNoError(t, s.Unsubscribe())
			close(released)
		},
	})
	subscribed <- sub

	select {
	case <-released:
	case <-time.After(testutil.TestTimeout):
		t.Fatal("unsubscribe from Next did not return")
	}
	time.Sleep(10 * time.Millisecond)
	testutil.AssertSliceEqual(t, rec.Values(), []int{0})
}

func TestIntervalColdRestart(t *testing.T) {
	ticks, err := Interval(time.Millisecond, WithCount(2))
	testutil.AssertNoError(t, err)

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	for i := 0; i < 3; i++ {
		got, err := observable.Collect(ctx, ticks)
		testutil.AssertNoError(t, err)
		testutil.AssertSliceEqual(t, got, []int{0, 1})
	}
}

func TestIntervalValidation(t *testing.T) {
	tests := []struct {
		name   string
		period time.Duration
		opts   []IntervalOption
	}{
		{"zero period", 0, nil},
		{"negative period", -time.Second, nil},
		{"negative count", time.Second, []IntervalOption{WithCount(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Interval(tt.period, tt.opts...)
			if !rferrors.IsValidationError(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestFromChannel(t *testing.T) {
	ch := make(chan string, 3)
	ch <- "a"
	ch <- "b"
	ch <- "c"
	close(ch)

	src, err := FromChannel(ch)
	testutil.AssertNoError(t, err)

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	got, err := observable.Collect(ctx, src)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []string{"a", "b", "c"})
}

func TestFromChannelUnsubscribeLeavesChannelOpen(t *testing.T) {
	ch := make(chan int)
	src, err := FromChannel(ch)
	testutil.AssertNoError(t, err)

	rec := testutil.NewRecorder[int]()
	sub := src.Subscribe(rec)
	ch <- 1
	testutil.Eventually(t, func() bool { return rec.Len() == 1 }, time.Second, time.Millisecond)

	testutil.AssertNoError(t, sub.Unsubscribe())

	select {
	case ch <- 2:
		t.Fatal("receive loop still running after unsubscribe")
	case <-time.After(10 * time.Millisecond):
	}
	testutil.AssertSliceEqual(t, rec.Values(), []int{1})
	close(ch)
}

func TestFromChannelNil(t *testing.T) {
	_, err := FromChannel[int](nil)
	if !rferrors.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSpawnTeardownWaitsForProducer(t *testing.T) {
	var exited atomic.Bool
	src := observable.New(func(o observable.Observer[int]) observable.Teardown {
		return spawn(context.Background(), o, nil, func(ctx context.Context, _ func(int)) error {
			defer exited.Store(true)
			<-ctx.Done()
			return ctx.Err()
		})
	})

	rec := testutil.NewRecorder[int]()
	sub := src.Subscribe(rec)
	testutil.AssertNoError(t, sub.Unsubscribe())

	testutil.AssertEqual(t, exited.Load(), true)
	testutil.AssertEqual(t, len(rec.Events()), 0)
}

func TestSpawnReleaseFault(t *testing.T) {
	closeErr := errors.New("close failed")
	src := observable.New(func(o observable.Observer[int]) observable.Teardown {
		return spawn(context.Background(), o, func() error { return closeErr }, func(ctx context.Context, _ func(int)) error {
			<-ctx.Done()
			return ctx.Err()
		})
	})

	err := src.Subscribe(nil).Unsubscribe()
	if !errors.Is(err, closeErr) {
		t.Fatalf("expected %v, got %v", closeErr, err)
	}
}

func TestSpawnParentCancelIsError(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	src := observable.New(func(o observable.Observer[int]) observable.Teardown {
		return spawn(parent, o, nil, func(ctx context.Context, _ func(int)) error {
			<-ctx.Done()
			return ctx.Err()
		})
	})

	rec := testutil.NewRecorder[int]()
	src.Subscribe(rec)
	cancel()

	select {
	case <-rec.Terminated():
	case <-time.After(testutil.TestTimeout):
		t.Fatal("stream did not terminate")
	}
	if !errors.Is(rec.Err(), context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", rec.Err())
	}
}
