package signature

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/srplsh/projection"
	"github.com/hupe1980/srplsh/sparse"
)

func TestHashStable(t *testing.T) {
	bank, err := projection.Generate(12, 20, 0)
	require.NoError(t, err)

	q := sparse.MustNew(20, []int{3, 11, 17}, []float64{0.4, -1.2, 2.0})

	a, err := Hash(q, bank)
	require.NoError(t, err)
	b, err := Hash(q, bank)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// Width is fixed: nothing beyond numBits is ever set.
	assert.Zero(t, uint64(a)>>12)
}

func TestHashMatchesDenseProjection(t *testing.T) {
	bank, err := projection.Generate(8, 6, 9)
	require.NoError(t, err)

	v := sparse.MustNew(6, []int{0, 2, 5}, []float64{1.5, -0.5, 2})
	dense := []float64{1.5, 0, -0.5, 0, 0, 2}

	sig, err := Hash(v, bank)
	require.NoError(t, err)

	for i := range bank.NumBits() {
		var dot float64
		for j, x := range dense {
			dot += x * bank.Row(i)[j]
		}
		assert.Equal(t, dot >= 0, sig.Bit(i), "bit %d", i)
	}
}

func TestHashZeroVectorSetsAllBits(t *testing.T) {
	bank, err := projection.Generate(10, 4, 1)
	require.NoError(t, err)

	sig, err := Hash(sparse.MustNew(4, nil, nil), bank)
	require.NoError(t, err)
	assert.Equal(t, "1111111111", sig.Bits(10))
}

func TestHashDimensionMismatch(t *testing.T) {
	bank, err := projection.Generate(4, 4, 1)
	require.NoError(t, err)

	_, err = Hash(sparse.MustNew(8, []int{6}, []float64{1}), bank)
	var de *sparse.DimensionMismatchError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 6, de.Index)
}

func TestBitsAndParse(t *testing.T) {
	s := Signature(0b1101)
	assert.Equal(t, "101100", s.Bits(6))

	p, ok := Parse("101100")
	require.True(t, ok)
	assert.Equal(t, s, p)

	_, ok = Parse("10x")
	assert.False(t, ok)
}

func TestFlip(t *testing.T) {
	s := Signature(0b0101)
	assert.Equal(t, Signature(0b0100), s.Flip(0))
	assert.Equal(t, Signature(0b1101), s.Flip(3))
	assert.Equal(t, s, s.Flip(5).Flip(5))
	assert.False(t, s.Bit(1))
	assert.True(t, s.Flip(1).Bit(1))
}
