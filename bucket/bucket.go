package bucket

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/srplsh/signature"
)

// MaxDirectBits is the widest signature the Direct strategy accepts.
const MaxDirectBits = 24

// autoDirectBits is the widest signature Auto maps to Direct.
const autoDirectBits = 16

// ErrUnsupported is returned when a strategy cannot serve the requested
// signature width.
var ErrUnsupported = errors.New("bucket strategy unsupported for signature width")

// Strategy selects the collision-resolution scheme of a table.
type Strategy int

// Constants representing the available table strategies.
const (
	Auto Strategy = iota
	OpenAddressing
	Chaining
	Direct
	Map
)

// String returns a string representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case Auto:
		return "auto"
	case OpenAddressing:
		return "open-addressing"
	case Chaining:
		return "chaining"
	case Direct:
		return "direct"
	case Map:
		return "map"
	default:
		return "unknown"
	}
}

// ParseStrategy returns the strategy named by s (as produced by String).
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "open-addressing", "open_addressing", "openaddressing":
		return OpenAddressing, nil
	case "chaining":
		return Chaining, nil
	case "direct":
		return Direct, nil
	case "map":
		return Map, nil
	default:
		return Auto, fmt.Errorf("unknown bucket strategy %q", s)
	}
}

// Resolve maps Auto to a concrete strategy for the given signature width.
func (s Strategy) Resolve(numBits int) Strategy {
	if s != Auto {
		return s
	}
	if numBits <= autoDirectBits {
		return Direct
	}
	return OpenAddressing
}

// Stats describes the occupancy of a table.
type Stats struct {
	Strategy  Strategy
	Buckets   int // distinct signatures
	IDs       int // inserted ids
	MaxBucket int // ids in the largest bucket
	Capacity  int // slots, chains or direct cells
}

// Index maps signatures to the ids that produced them.
type Index interface {
	// Insert appends id to the bucket for sig.
	Insert(sig signature.Signature, id uint32)

	// Lookup returns the ids stored under sig, or nil. The returned slice is
	// owned by the table and must not be modified.
	Lookup(sig signature.Signature) []uint32

	// Len returns the number of distinct signatures.
	Len() int

	// Stats returns occupancy statistics.
	Stats() Stats
}

// New creates an empty table for signatures of numBits bits.
func New(strategy Strategy, numBits int) (Index, error) {
	switch s := strategy.Resolve(numBits); s {
	case OpenAddressing:
		return newOpenAddressing(), nil
	case Chaining:
		return newChaining(), nil
	case Direct:
		if numBits <= 0 || numBits > MaxDirectBits {
			return nil, fmt.Errorf("%w: %s with %d bits (max %d)", ErrUnsupported, s, numBits, MaxDirectBits)
		}
		return newDirect(numBits), nil
	case Map:
		return newMapIndex(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, s)
	}
}

// mix is the splitmix64 finalizer; it spreads signatures whose entropy sits in
// the low bits across the whole word before masking.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
