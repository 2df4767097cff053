// Package projection generates the random Gaussian hyperplanes used for
// signed random projection hashing.
package projection

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// MaxBits is the largest number of projections a bank may hold; signatures
// are packed into a uint64.
const MaxBits = 64

// ErrInvalidShape is returned when a bank is requested with non-positive or
// oversized dimensions.
var ErrInvalidShape = errors.New("invalid projection bank shape")

// Bank is a numBits × dimension matrix of independent standard-normal draws.
// It is immutable and safe for concurrent reads.
type Bank struct {
	numBits   int
	dimension int
	seed      uint64
	data      []float64 // row-major, one row per bit
}

// Generate fills a numBits × dimension matrix from a generator seeded with
// seed. Identical arguments always produce bit-identical banks.
func Generate(numBits, dimension int, seed uint64) (*Bank, error) {
	if numBits <= 0 || numBits > MaxBits {
		return nil, fmt.Errorf("%w: numBits %d not in [1, %d]", ErrInvalidShape, numBits, MaxBits)
	}
	if dimension <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", ErrInvalidShape, dimension)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	data := make([]float64, numBits*dimension)
	for i := range data {
		data[i] = rng.NormFloat64()
	}

	return &Bank{
		numBits:   numBits,
		dimension: dimension,
		seed:      seed,
		data:      data,
	}, nil
}

// NumBits returns the number of projections (signature width).
func (b *Bank) NumBits() int { return b.numBits }

// Dimension returns the length of each projection.
func (b *Bank) Dimension() int { return b.dimension }

// Seed returns the seed the bank was generated from.
func (b *Bank) Seed() uint64 { return b.seed }

// Row returns projection i. The slice must not be modified.
func (b *Bank) Row(i int) []float64 {
	return b.data[i*b.dimension : (i+1)*b.dimension]
}

// Bytes returns the approximate heap size of the matrix.
func (b *Bank) Bytes() uint64 {
	return uint64(len(b.data)) * 8
}
