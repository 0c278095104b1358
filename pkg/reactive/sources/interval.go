package sources

import (
	"context"
	"time"

	"github.com/vnykmshr/rxflow/pkg/common/validation"
	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

// IntervalConfig holds the settings of an Interval source.
type IntervalConfig struct {
	// Count completes the stream after this many values. Zero means the
	// stream never completes on its own.
	Count int
}

// IntervalOption configures an Interval source.
type IntervalOption func(*IntervalConfig)

// WithCount completes the stream after n values.
func WithCount(n int) IntervalOption {
	return func(c *IntervalConfig) {
		c.Count = n
	}
}

// Interval emits 0, 1, 2, ... once per period, starting one period after
// subscription. Each subscription owns its own ticker.
func Interval(period time.Duration, opts ...IntervalOption) (*observable.Observable[int], error) {
	if err := validation.ValidatePositiveDuration(module, "period", period); err != nil {
		return nil, err
	}
	var cfg IntervalConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validation.ValidateNonNegative(module, "count", cfg.Count); err != nil {
		return nil, err
	}

	return observable.New(func(observer observable.Observer[int]) observable.Teardown {
		return spawn(context.Background(), observer, nil, func(ctx context.Context, emit func(int)) error {
			ticker := time.NewTicker(period)
			defer ticker.Stop()

			for i := 0; cfg.Count == 0 || i < cfg.Count; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
					emit(i)
				}
			}
			return nil
		})
	}), nil
}
