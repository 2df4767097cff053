package bucket

import "github.com/hupe1980/srplsh/signature"

// directIndex addresses buckets by the integer value of the signature.
type directIndex struct {
	cells    [][]uint32
	nonEmpty int
	ids      int
}

func newDirect(numBits int) *directIndex {
	return &directIndex{cells: make([][]uint32, 1<<uint(numBits))}
}

func (t *directIndex) Insert(sig signature.Signature, id uint32) {
	cell := &t.cells[sig]
	if len(*cell) == 0 {
		t.nonEmpty++
	}
	*cell = append(*cell, id)
	t.ids++
}

func (t *directIndex) Lookup(sig signature.Signature) []uint32 {
	if uint64(sig) >= uint64(len(t.cells)) {
		return nil
	}
	return t.cells[sig]
}

func (t *directIndex) Len() int { return t.nonEmpty }

func (t *directIndex) Stats() Stats {
	st := Stats{Strategy: Direct, Buckets: t.nonEmpty, IDs: t.ids, Capacity: len(t.cells)}
	for _, c := range t.cells {
		st.MaxBucket = max(st.MaxBucket, len(c))
	}
	return st
}
