package bucket

import "github.com/hupe1980/srplsh/signature"

type mapIndex struct {
	buckets map[signature.Signature][]uint32
	ids     int
}

func newMapIndex() *mapIndex {
	return &mapIndex{buckets: make(map[signature.Signature][]uint32)}
}

func (t *mapIndex) Insert(sig signature.Signature, id uint32) {
	t.buckets[sig] = append(t.buckets[sig], id)
	t.ids++
}

func (t *mapIndex) Lookup(sig signature.Signature) []uint32 {
	return t.buckets[sig]
}

func (t *mapIndex) Len() int { return len(t.buckets) }

func (t *mapIndex) Stats() Stats {
	st := Stats{Strategy: Map, Buckets: len(t.buckets), IDs: t.ids, Capacity: len(t.buckets)}
	for _, ids := range t.buckets {
		st.MaxBucket = max(st.MaxBucket, len(ids))
	}
	return st
}
