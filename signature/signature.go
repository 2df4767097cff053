// Package signature computes signed random projection (SRP) signatures.
//
// Bit i of a signature is 1 iff the inner product of the vector with
// projection i is >= 0, so a zero inner product maps to 1.
package signature

import (
	"strings"

	"github.com/hupe1980/srplsh/projection"
	"github.com/hupe1980/srplsh/sparse"
)

// Signature is a packed bit string; bit i corresponds to projection i.
type Signature uint64

// Bit reports whether bit i is set.
func (s Signature) Bit(i int) bool {
	return s&(1<<uint(i)) != 0
}

// Flip returns s with bit i inverted.
func (s Signature) Flip(i int) Signature {
	return s ^ (1 << uint(i))
}

// Bits renders the first width bits as '1'/'0' characters, bit 0 first.
func (s Signature) Bits(width int) string {
	var sb strings.Builder
	sb.Grow(width)
	for i := range width {
		if s.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Parse is the inverse of Bits.
func Parse(bits string) (Signature, bool) {
	if len(bits) > projection.MaxBits {
		return 0, false
	}
	var s Signature
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '1':
			s |= 1 << uint(i)
		case '0':
		default:
			return 0, false
		}
	}
	return s, true
}

// Hash computes the signature of v against bank. The cost is
// O(bank.NumBits() * v.Len()); only non-zero entries are visited.
//
// Returns *sparse.DimensionMismatchError if v references an index the bank
// does not cover.
func Hash(v *sparse.Vector, bank *projection.Bank) (Signature, error) {
	if maxIdx := v.MaxIndex(); maxIdx >= bank.Dimension() {
		return 0, &sparse.DimensionMismatchError{Dimension: bank.Dimension(), Index: maxIdx}
	}

	indices, values := v.Indices(), v.Values()

	var sig Signature
	for i := range bank.NumBits() {
		row := bank.Row(i)
		var dot float64
		for j, idx := range indices {
			dot += values[j] * row[idx]
		}
		if dot >= 0 {
			sig |= 1 << uint(i)
		}
	}
	return sig, nil
}
