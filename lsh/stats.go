package lsh

import "github.com/hupe1980/srplsh/bucket"

// BandStats describes one band.
type BandStats struct {
	Band   int
	Seed   uint64
	Bucket bucket.Stats
}

// Stats returns per-band statistics. It returns nil for an unbuilt index.
func (idx *Index) Stats() []BandStats {
	if !idx.Built() {
		return nil
	}
	out := make([]BandStats, len(idx.bands))
	for b, bd := range idx.bands {
		out[b] = BandStats{
			Band:   b,
			Seed:   bd.bank.Seed(),
			Bucket: bd.table.Stats(),
		}
	}
	return out
}

// MemoryBytes estimates the heap held by projection banks and tables.
// Corpus vectors are owned by the caller and not counted.
func (idx *Index) MemoryBytes() uint64 {
	if !idx.Built() {
		return 0
	}
	var total uint64
	for _, bd := range idx.bands {
		total += bd.bank.Bytes()
		st := bd.table.Stats()
		total += uint64(st.IDs) * 4
		total += uint64(st.Capacity) * 24
	}
	return total
}
