package lsh

import (
	"errors"
	"fmt"

	"github.com/hupe1980/srplsh/bucket"
	"github.com/hupe1980/srplsh/projection"
)

// Defaults for Config.
const (
	DefaultNumBands = 5
	DefaultNumBits  = 12
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid lsh config")

// Config controls the shape of an Index.
type Config struct {
	// NumBands is the number of independent (projection bank, table) pairs.
	NumBands int

	// NumBits is the signature width per band, in [1, 64].
	NumBits int

	// SeedBase is added to the band number to seed each band's bank.
	SeedBase uint64

	// Strategy selects the bucket table implementation.
	Strategy bucket.Strategy

	// BuildWorkers bounds how many bands are hashed concurrently during
	// Build. Values <= 1 build bands sequentially.
	BuildWorkers int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		NumBands:     DefaultNumBands,
		NumBits:      DefaultNumBits,
		Strategy:     bucket.Auto,
		BuildWorkers: 1,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.NumBands <= 0 {
		return fmt.Errorf("%w: NumBands must be positive, got %d", ErrInvalidConfig, c.NumBands)
	}
	if c.NumBits <= 0 || c.NumBits > projection.MaxBits {
		return fmt.Errorf("%w: NumBits must be in [1, %d], got %d", ErrInvalidConfig, projection.MaxBits, c.NumBits)
	}
	if c.Strategy.Resolve(c.NumBits) == bucket.Direct && c.NumBits > bucket.MaxDirectBits {
		return fmt.Errorf("%w: direct strategy supports at most %d bits, got %d", ErrInvalidConfig, bucket.MaxDirectBits, c.NumBits)
	}
	return nil
}
