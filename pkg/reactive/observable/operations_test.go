package observable

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/vnykmshr/rxflow/internal/testutil"
	rferrors "github.com/vnykmshr/rxflow/pkg/common/errors"
)

func TestFilter(t *testing.T) {
	got, err := Collect(context.Background(),
		Filter(func(x int) bool { return x%2 == 0 })(Of(1, 2, 3, 4, 5, 6)))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{2, 4, 6})
}

func TestFilterPanic(t *testing.T) {
	rec := testutil.NewRecorder[int]()
	Filter(func(x int) bool {
		if x > 1 {
			panic("predicate failed")
		}
		return true
	})(Of(1, 2, 3)).Subscribe(rec)

	testutil.AssertSliceEqual(t, rec.Values(), []int{1})
	if !rferrors.IsPanic(rec.Err()) {
		t.Fatalf("expected panic error, got %v", rec.Err())
	}
}

func TestTap(t *testing.T) {
	side := testutil.NewRecorder[int]()
	rec := testutil.NewRecorder[int]()

	Tap[int](side)(Of(1, 2)).Subscribe(rec)

	testutil.AssertSliceEqual(t, side.Events(), []string{"next:1", "next:2", "complete"})
	testutil.AssertSliceEqual(t, rec.Events(), []string{"next:1", "next:2", "complete"})
}

func TestTapSeesErrors(t *testing.T) {
	side := testutil.NewRecorder[int]()
	rec := testutil.NewRecorder[int]()

	Tap[int](side)(Throw[int](errors.New("boom"))).Subscribe(rec)

	testutil.AssertSliceEqual(t, side.Events(), []string{"error:boom"})
	testutil.AssertSliceEqual(t, rec.Events(), []string{"error:boom"})
}

func TestTake(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []int
	}{
		{"fewer than available", 2, []int{1, 2}},
		{"exactly available", 4, []int{1, 2, 3, 4}},
		{"more than available", 10, []int{1, 2, 3, 4}},
		{"zero", 0, nil},
		{"negative", -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder[int]()
			Take[int](tt.n)(Of(1, 2, 3, 4)).Subscribe(rec)

			testutil.AssertSliceEqual(t, rec.Values(), tt.want)
			testutil.AssertEqual(t, rec.Completions(), 1)
		})
	}
}

func TestTakeReleasesSource(t *testing.T) {
	src := &manualSource[int]{}
	rec := testutil.NewRecorder[int]()
	Take[int](2)(src.observable()).Subscribe(rec)

	relay := src.relay(0)
	relay.Next(1)
	testutil.AssertEqual(t, src.teardowns.Load(), int32(0))
	relay.Next(2)
	relay.Next(3)

	testutil.AssertSliceEqual(t, rec.Events(), []string{"next:1", "next:2", "complete"})
	testutil.AssertEqual(t, src.teardowns.Load(), int32(1))
}

func TestTakeZeroDoesNotSubscribe(t *testing.T) {
	src := &manualSource[int]{}
	Take[int](0)(src.observable()).Subscribe(testutil.NewRecorder[int]())

	src.mu.Lock()
	defer src.mu.Unlock()
	testutil.AssertEqual(t, len(src.relays), 0)
}

func TestFinalize(t *testing.T) {
	t.Run("on completion", func(t *testing.T) {
		var calls atomic.Int32
		rec := testutil.NewRecorder[int]()
		sub := Finalize[int](func() { calls.Add(1) })(Of(1)).Subscribe(rec)

		testutil.AssertEqual(t, calls.Load(), int32(1))
		testutil.AssertNoError(t, sub.Unsubscribe())
		testutil.AssertEqual(t, calls.Load(), int32(1))
	})

	t.Run("on unsubscribe", func(t *testing.T) {
		var calls atomic.Int32
		src := &manualSource[int]{}
		sub := Finalize[int](func() { calls.Add(1) })(src.observable()).Subscribe(testutil.NewRecorder[int]())

		testutil.AssertEqual(t, calls.Load(), int32(0))
		testutil.AssertNoError(t, sub.Unsubscribe())
		testutil.AssertNoError(t, sub.Unsubscribe())
		testutil.AssertEqual(t, calls.Load(), int32(1))
		testutil.AssertEqual(t, src.teardowns.Load(), int32(1))
	})

	t.Run("runs after the source is released", func(t *testing.T) {
		var order []string
		src := New(func(o Observer[int]) Teardown {
			return func() error {
				order = append(order, "source")
				return nil
			}
		})

		sub := src.Pipe(
			Finalize[int](func() { order = append(order, "A") }),
			Finalize[int](func() { order = append(order, "B") }),
		).Subscribe(nil)

		testutil.AssertNoError(t, sub.Unsubscribe())
		testutil.AssertSliceEqual(t, order, []string{"source", "A", "B"})
	})
}

func TestChainedOperations(t *testing.T) {
	got, err := Collect(context.Background(), Pipe3(
		Filter(func(x int) bool { return x%2 == 0 }), // 2, 4, 6, 8, 10
		Map(func(x int) int { return x * 3 }),        // 6, 12, 18, 24, 30
		Take[int](2),                                 // 6, 12
	)(Of(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)))

	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{6, 12})
}
