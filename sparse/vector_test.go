package sparse

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("sorts unsorted input", func(t *testing.T) {
		v, err := New(10, []int{7, 2, 5}, []float64{0.7, 0.2, 0.5})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 5, 7}, v.Indices())
		assert.Equal(t, []float64{0.2, 0.5, 0.7}, v.Values())
		assert.Equal(t, 10, v.Dimension())
		assert.Equal(t, 3, v.Len())
		assert.Equal(t, 7, v.MaxIndex())
	})

	t.Run("does not retain input", func(t *testing.T) {
		idx := []int{1, 0}
		val := []float64{1, 2}
		v, err := New(2, idx, val)
		require.NoError(t, err)
		idx[0] = 99
		val[0] = 99
		assert.Equal(t, []int{0, 1}, v.Indices())
		assert.Equal(t, []float64{2, 1}, v.Values())
	})

	t.Run("empty", func(t *testing.T) {
		v, err := New(4, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, v.Len())
		assert.Equal(t, -1, v.MaxIndex())
	})

	tests := []struct {
		name    string
		dim     int
		indices []int
		values  []float64
		check   func(t *testing.T, err error)
	}{
		{"duplicate", 10, []int{3, 1, 3}, []float64{1, 2, 3}, func(t *testing.T, err error) {
			var me *MalformedVectorError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, DuplicateIndex, me.Kind)
			assert.Equal(t, 3, me.Index)
		}},
		{"negative", 10, []int{-1, 2}, []float64{1, 2}, func(t *testing.T, err error) {
			var me *MalformedVectorError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, NegativeIndex, me.Kind)
			assert.Equal(t, -1, me.Index)
		}},
		{"length mismatch", 10, []int{1}, []float64{1, 2}, func(t *testing.T, err error) {
			var me *MalformedVectorError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, LengthMismatch, me.Kind)
		}},
		{"out of range", 4, []int{0, 4}, []float64{1, 2}, func(t *testing.T, err error) {
			var de *DimensionMismatchError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, 4, de.Dimension)
			assert.Equal(t, 4, de.Index)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := New(tt.dim, tt.indices, tt.values)
			require.Error(t, err)
			assert.Nil(t, v)
			tt.check(t, err)
		})
	}
}

func TestInnerProduct(t *testing.T) {
	a := MustNew(8, []int{0, 2, 5}, []float64{1, 2, 3})
	b := MustNew(8, []int{2, 3, 5, 7}, []float64{4, 1, -1, 9})

	assert.InDelta(t, 2*4+3*-1, a.InnerProduct(b), 1e-12)

	empty := MustNew(8, nil, nil)
	assert.Equal(t, 0.0, a.InnerProduct(empty))
	assert.Equal(t, 0.0, empty.InnerProduct(a))

	disjoint := MustNew(8, []int{1, 4}, []float64{5, 5})
	assert.Equal(t, 0.0, a.InnerProduct(disjoint))
}

func TestInnerProductProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	randomVector := func() *Vector {
		seen := make(map[int]struct{})
		var idx []int
		var val []float64
		for range rng.IntN(20) {
			i := rng.IntN(64)
			if _, ok := seen[i]; ok {
				continue
			}
			seen[i] = struct{}{}
			idx = append(idx, i)
			val = append(val, rng.NormFloat64())
		}
		return MustNew(64, idx, val)
	}

	for range 200 {
		a, b := randomVector(), randomVector()

		self := a.InnerProduct(a)
		assert.GreaterOrEqual(t, self, 0.0)
		assert.Equal(t, a.SquaredNorm(), self)

		assert.Equal(t, a.InnerProduct(b), b.InnerProduct(a))
	}
}

func TestEntries(t *testing.T) {
	v := MustNew(10, []int{9, 1}, []float64{0.9, 0.1})

	var got []Entry
	for i, x := range v.Entries() {
		got = append(got, Entry{Index: i, Value: x})
	}
	assert.Equal(t, []Entry{{1, 0.1}, {9, 0.9}}, got)

	w, err := FromEntries(10, got)
	require.NoError(t, err)
	assert.Equal(t, v.Indices(), w.Indices())
	assert.Equal(t, v.Values(), w.Values())
}
