package sources

import (
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	rferrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/common/validation"
	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

// cronParser accepts five-field expressions, six-field expressions with a
// leading seconds field, and descriptors such as "@hourly" or "@every 1s".
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// CronConfig holds the settings of a Cron source.
type CronConfig struct {
	// Location is the time zone used to evaluate the schedule and to stamp
	// emitted values.
	Location *time.Location

	// Count completes the stream after this many firings (0 = unlimited).
	Count int
}

// DefaultCronConfig returns a config evaluated in the local time zone with no
// firing limit.
func DefaultCronConfig() CronConfig {
	return CronConfig{Location: time.Local}
}

// CronOption configures a Cron source.
type CronOption func(*CronConfig)

// WithCronLocation evaluates the schedule in loc.
func WithCronLocation(loc *time.Location) CronOption {
	return func(c *CronConfig) {
		c.Location = loc
	}
}

// WithCronCount completes the stream after n firings.
func WithCronCount(n int) CronOption {
	return func(c *CronConfig) {
		c.Count = n
	}
}

// Cron emits the current time on every firing of spec. Firings that would
// overlap a still-running delivery are skipped, so values are never delivered
// concurrently.
//
// Examples of spec:
//
//	"*/5 * * * * *"  every five seconds
//	"0 9 * * 1-5"    09:00 on weekdays
//	"@every 1m30s"   every ninety seconds
func Cron(spec string, opts ...CronOption) (*observable.Observable[time.Time], error) {
	if err := validation.ValidateNotEmpty(module, "spec", spec); err != nil {
		return nil, err
	}
	cfg := DefaultCronConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Location == nil {
		return nil, rferrors.NewValidationError(module, "location", nil, "cannot be nil").
			WithHint("use time.UTC or time.LoadLocation")
	}
	if err := validation.ValidateNonNegative(module, "count", cfg.Count); err != nil {
		return nil, err
	}
	schedule, err := cronParser.Parse(spec)
	if err != nil {
		return nil, rferrors.NewValidationError(module, "spec", spec, err.Error()).
			WithHint(`use "sec min hour dom month dow", "min hour dom month dow" or a descriptor such as "@every 1s"`)
	}

	return observable.New(func(observer observable.Observer[time.Time]) observable.Teardown {
		runner := cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		)

		var (
			fired       atomic.Int64
			terminating atomic.Bool
			delivering  atomic.Int32
		)
		runner.Schedule(schedule, cron.FuncJob(func() {
			n := fired.Add(1)
			if cfg.Count > 0 && n > int64(cfg.Count) {
				return
			}
			delivering.Add(1)
			observer.Next(time.Now().In(cfg.Location))
			delivering.Add(-1)
			if n == int64(cfg.Count) {
				terminating.Store(true)
				observer.Complete()
			}
		}))
		runner.Start()

		return func() error {
			stopped := runner.Stop()
			if !terminating.Load() && delivering.Load() == 0 {
				<-stopped.Done()
			}
			return nil
		}
	}), nil
}
