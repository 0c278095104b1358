package observers

import (
	"github.com/sirupsen/logrus"

	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

// LoggerConfig holds the settings of a LogObserver.
type LoggerConfig struct {
	// Stream, when set, is attached to every entry as the "stream" field.
	Stream string

	// ValueLevel is the level used for Next entries. Errors are always
	// logged at logrus.ErrorLevel and completion at logrus.InfoLevel.
	ValueLevel logrus.Level
}

// DefaultLoggerConfig logs values at Info level without a stream name.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{ValueLevel: logrus.InfoLevel}
}

// LoggerOption configures a LogObserver.
type LoggerOption func(*LoggerConfig)

// WithStreamName tags every entry with name.
func WithStreamName(name string) LoggerOption {
	return func(c *LoggerConfig) {
		c.Stream = name
	}
}

// WithValueLevel logs values at level instead of Info.
func WithValueLevel(level logrus.Level) LoggerOption {
	return func(c *LoggerConfig) {
		c.ValueLevel = level
	}
}

// LogObserver writes every notification it receives to a logrus logger.
type LogObserver[T any] struct {
	log        logrus.FieldLogger
	valueLevel logrus.Level
}

var _ observable.Observer[int] = (*LogObserver[int])(nil)

// Logger returns an observer that logs values, errors and completion to
// logger. A nil logger uses the logrus standard logger.
func Logger[T any](logger logrus.FieldLogger, opts ...LoggerOption) *LogObserver[T] {
	cfg := DefaultLoggerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if cfg.Stream != "" {
		logger = logger.WithField("stream", cfg.Stream)
	}
	return &LogObserver[T]{log: logger, valueLevel: cfg.ValueLevel}
}

// Next logs value.
func (l *LogObserver[T]) Next(value T) {
	entry := l.log.WithField("value", value)
	switch l.valueLevel {
	case logrus.TraceLevel, logrus.DebugLevel:
		entry.Debug("Next")
	case logrus.WarnLevel:
		entry.Warn("Next")
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		entry.Error("Next")
	default:
		entry.Info("Next")
	}
}

// Error logs err.
func (l *LogObserver[T]) Error(err error) {
	l.log.WithError(err).Error("Error")
}

// Complete logs the end of the stream.
func (l *LogObserver[T]) Complete() {
	l.log.Info("Completed")
}
