// Package config loads the configuration of the rxflow demo pipeline.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	rferrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/common/validation"
)

//go:embed config.default.yaml
var defaultConfigYAML []byte

const module = "config"

// Source kinds.
const (
	SourceInterval  = "interval"
	SourceCron      = "cron"
	SourceRedis     = "redis"
	SourceWebSocket = "websocket"
)

type Config struct {
	Log     Log     `yaml:"log"`
	Metrics Metrics `yaml:"metrics"`
	Source  Source  `yaml:"source"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Metrics struct {
	Addr string `yaml:"addr"`
}

type Source struct {
	Kind      string    `yaml:"kind"`
	Interval  Interval  `yaml:"interval"`
	Cron      Cron      `yaml:"cron"`
	Redis     Redis     `yaml:"redis"`
	WebSocket WebSocket `yaml:"websocket"`
}

type Interval struct {
	Period time.Duration `yaml:"period"`
	Count  int           `yaml:"count"`
}

type Cron struct {
	Spec  string `yaml:"spec"`
	Count int    `yaml:"count"`
}

type Redis struct {
	Addr     string   `yaml:"addr"`
	Channels []string `yaml:"channels"`
}

type WebSocket struct {
	URL string `yaml:"url"`
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// Validate checks the settings of the selected source and the log level.
// Settings of the other source kinds are not checked.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return rferrors.NewValidationError(module, "log.level", c.Log.Level, "unknown level").
			WithHint("use trace, debug, info, warn or error")
	}

	if err := validation.ValidateOneOf(module, "source.kind", c.Source.Kind,
		SourceInterval, SourceCron, SourceRedis, SourceWebSocket); err != nil {
		return err
	}

	switch c.Source.Kind {
	case SourceInterval:
		if err := validation.ValidatePositiveDuration(module, "source.interval.period", c.Source.Interval.Period); err != nil {
			return err
		}
		return validation.ValidateNonNegative(module, "source.interval.count", c.Source.Interval.Count)
	case SourceCron:
		if err := validation.ValidateNotEmpty(module, "source.cron.spec", c.Source.Cron.Spec); err != nil {
			return err
		}
		return validation.ValidateNonNegative(module, "source.cron.count", c.Source.Cron.Count)
	case SourceRedis:
		if err := validation.ValidateNotEmpty(module, "source.redis.addr", c.Source.Redis.Addr); err != nil {
			return err
		}
		if len(c.Source.Redis.Channels) == 0 {
			return rferrors.NewValidationError(module, "source.redis.channels", c.Source.Redis.Channels, "cannot be empty")
		}
	case SourceWebSocket:
		return validation.ValidateURL(module, "source.websocket.url", c.Source.WebSocket.URL, "ws", "wss", "http", "https")
	}
	return nil
}

// DefaultConfig returns the embedded default configuration.
func DefaultConfig() *Config {
	return defaultConfig()
}

// LoadConfig reads file on top of the defaults and validates the result.
func LoadConfig(file string) (*Config, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := defaultConfig()
	if err = yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		panic(fmt.Errorf("failed to load default config: %w", err))
	}
	return &cfg
}
