package bucket

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/srplsh/signature"
)

var concrete = []Strategy{OpenAddressing, Chaining, Direct, Map}

func TestIndexContract(t *testing.T) {
	const numBits = 12

	for _, strategy := range concrete {
		t.Run(strategy.String(), func(t *testing.T) {
			idx, err := New(strategy, numBits)
			require.NoError(t, err)

			rng := rand.New(rand.NewPCG(1, 2))
			want := make(map[signature.Signature][]uint32)
			for id := range uint32(5000) {
				sig := signature.Signature(rng.Uint64N(1 << numBits))
				idx.Insert(sig, id)
				want[sig] = append(want[sig], id)
			}

			assert.Equal(t, len(want), idx.Len())
			for sig, ids := range want {
				assert.Equal(t, ids, idx.Lookup(sig), "signature %d", sig)
			}

			st := idx.Stats()
			assert.Equal(t, strategy, st.Strategy)
			assert.Equal(t, 5000, st.IDs)
			assert.Equal(t, len(want), st.Buckets)
			assert.GreaterOrEqual(t, st.Capacity, st.Buckets)

			maxBucket := 0
			for _, ids := range want {
				maxBucket = max(maxBucket, len(ids))
			}
			assert.Equal(t, maxBucket, st.MaxBucket)
		})
	}
}

func TestLookupAbsent(t *testing.T) {
	for _, strategy := range concrete {
		t.Run(strategy.String(), func(t *testing.T) {
			idx, err := New(strategy, 8)
			require.NoError(t, err)

			assert.Empty(t, idx.Lookup(3))

			idx.Insert(7, 1)
			assert.Empty(t, idx.Lookup(3))
			assert.Equal(t, []uint32{1}, idx.Lookup(7))
		})
	}
}

func TestGrowthPreservesEntries(t *testing.T) {
	// Wide signatures force many distinct keys and repeated resizes.
	for _, strategy := range []Strategy{OpenAddressing, Chaining, Map} {
		t.Run(strategy.String(), func(t *testing.T) {
			idx, err := New(strategy, 64)
			require.NoError(t, err)

			rng := rand.New(rand.NewPCG(3, 4))
			keys := make([]signature.Signature, 20000)
			for i := range keys {
				keys[i] = signature.Signature(rng.Uint64())
				idx.Insert(keys[i], uint32(i))
			}
			// A second id for every tenth key, after all resizes happened.
			for i := 0; i < len(keys); i += 10 {
				idx.Insert(keys[i], uint32(len(keys)+i))
			}

			for i, k := range keys {
				got := idx.Lookup(k)
				require.NotEmpty(t, got)
				assert.Equal(t, uint32(i), got[0])
				if i%10 == 0 {
					assert.Equal(t, []uint32{uint32(i), uint32(len(keys) + i)}, got)
				}
			}
			assert.Equal(t, 22000, idx.Stats().IDs)
		})
	}
}

func TestLowEntropyKeys(t *testing.T) {
	// Sequential keys collide heavily under a bare modulus; all must survive.
	for _, strategy := range []Strategy{OpenAddressing, Chaining} {
		t.Run(strategy.String(), func(t *testing.T) {
			idx, err := New(strategy, 32)
			require.NoError(t, err)

			for i := range uint32(4096) {
				idx.Insert(signature.Signature(uint64(i)<<20), i)
			}
			for i := range uint32(4096) {
				assert.Equal(t, []uint32{i}, idx.Lookup(signature.Signature(uint64(i)<<20)))
			}
		})
	}
}

func TestDirectRejectsWideSignatures(t *testing.T) {
	_, err := New(Direct, MaxDirectBits+1)
	assert.True(t, errors.Is(err, ErrUnsupported))

	idx, err := New(Direct, 4)
	require.NoError(t, err)
	assert.Nil(t, idx.Lookup(1<<10))
}

func TestStrategyResolveAndParse(t *testing.T) {
	assert.Equal(t, Direct, Auto.Resolve(12))
	assert.Equal(t, OpenAddressing, Auto.Resolve(20))
	assert.Equal(t, Chaining, Chaining.Resolve(40))

	for _, s := range append(slices.Clone(concrete), Auto) {
		parsed, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseStrategy("cuckoo")
	assert.Error(t, err)
}
