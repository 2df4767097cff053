package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hupe1980/srplsh/bucket"
	"github.com/hupe1980/srplsh/lsh"
	"github.com/hupe1980/srplsh/projection"
)

// Default values for configuration.
const (
	DefaultIndexBits       = lsh.DefaultNumBits
	DefaultIndexBands      = lsh.DefaultNumBands
	DefaultIndexMultiplier = 2
	DefaultIndexStrategy   = "auto"
	DefaultIndexSeed       = 0
	DefaultIndexWorkers    = 1
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = "text"
)

// Config is the top-level configuration struct for the srplsh CLI.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Index   IndexConfig   `mapstructure:"index"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// IndexConfig holds index construction and query knobs.
type IndexConfig struct {
	Bits       int    `mapstructure:"bits"`
	Bands      int    `mapstructure:"bands"`
	Multiplier int    `mapstructure:"multiplier"`
	Strategy   string `mapstructure:"strategy"`
	Seed       uint64 `mapstructure:"seed"`
	Workers    int    `mapstructure:"workers"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig holds metrics export settings. An empty File disables export.
type MetricsConfig struct {
	File string `mapstructure:"file"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidBits indicates index.bits is outside [1, 64].
	ErrInvalidBits = errors.New("index.bits must be between 1 and 64")
	// ErrInvalidBands indicates index.bands is not positive.
	ErrInvalidBands = errors.New("index.bands must be positive")
	// ErrInvalidMultiplier indicates index.multiplier is negative.
	ErrInvalidMultiplier = errors.New("index.multiplier must be non-negative")
	// ErrInvalidWorkers indicates index.workers is negative.
	ErrInvalidWorkers = errors.New("index.workers must be non-negative")
	// ErrInvalidStrategy indicates index.strategy is unknown.
	ErrInvalidStrategy = errors.New("index.strategy is not a known bucket strategy")
	// ErrInvalidLogLevel indicates log.level is unknown.
	ErrInvalidLogLevel = errors.New("log.level must be one of debug, info, warn, error")
	// ErrInvalidLogFormat indicates log.format is unknown.
	ErrInvalidLogFormat = errors.New("log.format must be text or json")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	indexErr := c.validateIndex()
	if indexErr != nil {
		return indexErr
	}

	return c.validateLog()
}

func (c *Config) validateIndex() error {
	if c.Index.Bits < 1 || c.Index.Bits > projection.MaxBits {
		return fmt.Errorf("%w: %d", ErrInvalidBits, c.Index.Bits)
	}

	if c.Index.Bands < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidBands, c.Index.Bands)
	}

	if c.Index.Multiplier < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMultiplier, c.Index.Multiplier)
	}

	if c.Index.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Index.Workers)
	}

	if _, err := c.Index.BucketStrategy(); err != nil {
		return err
	}

	return nil
}

func (c *Config) validateLog() error {
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}
}

// BucketStrategy parses the configured strategy name.
func (c IndexConfig) BucketStrategy() (bucket.Strategy, error) {
	s, err := bucket.ParseStrategy(c.Strategy)
	if err != nil {
		return bucket.Auto, fmt.Errorf("%w: %q", ErrInvalidStrategy, c.Strategy)
	}
	return s, nil
}

// SlogLevel parses the configured level name.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Level)
	}
}
