package bucket

import "github.com/hupe1980/srplsh/signature"

const (
	initialChains = 16

	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

type chainEntry struct {
	key signature.Signature
	ids []uint32
}

// chainingIndex keeps an owned slice of entries per chain.
type chainingIndex struct {
	chains  [][]chainEntry
	mask    uint64
	entries int
	ids     int
}

func newChaining() *chainingIndex {
	return &chainingIndex{
		chains: make([][]chainEntry, initialChains),
		mask:   initialChains - 1,
	}
}

// fnv1a hashes the little-endian bytes of key.
func fnv1a(key signature.Signature) uint64 {
	h := uint64(fnvOffset)
	k := uint64(key)
	for range 8 {
		h ^= k & 0xff
		h *= fnvPrime
		k >>= 8
	}
	return h
}

func (t *chainingIndex) Insert(sig signature.Signature, id uint32) {
	chain := &t.chains[fnv1a(sig)&t.mask]
	for i := range *chain {
		if (*chain)[i].key == sig {
			(*chain)[i].ids = append((*chain)[i].ids, id)
			t.ids++
			return
		}
	}

	*chain = append(*chain, chainEntry{key: sig, ids: []uint32{id}})
	t.entries++
	t.ids++

	if t.entries > len(t.chains) {
		t.grow()
	}
}

func (t *chainingIndex) Lookup(sig signature.Signature) []uint32 {
	for _, e := range t.chains[fnv1a(sig)&t.mask] {
		if e.key == sig {
			return e.ids
		}
	}
	return nil
}

// grow doubles the number of chains and re-homes every entry.
func (t *chainingIndex) grow() {
	old := t.chains
	t.chains = make([][]chainEntry, 2*len(old))
	t.mask = uint64(len(t.chains) - 1)
	for _, chain := range old {
		for _, e := range chain {
			dst := &t.chains[fnv1a(e.key)&t.mask]
			*dst = append(*dst, e)
		}
	}
}

func (t *chainingIndex) Len() int { return t.entries }

func (t *chainingIndex) Stats() Stats {
	st := Stats{Strategy: Chaining, Buckets: t.entries, IDs: t.ids, Capacity: len(t.chains)}
	for _, chain := range t.chains {
		for _, e := range chain {
			st.MaxBucket = max(st.MaxBucket, len(e.ids))
		}
	}
	return st
}
