package testutil

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/hupe1980/srplsh/sparse"
)

// SearchResult represents a search result.
type SearchResult struct {
	ID    uint32
	Score float64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// SparseVector generates a vector with exactly nnz distinct indices in
// [0, dimension) and standard-normal values.
func (r *RNG) SparseVector(dimension, nnz int) *sparse.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sparseLocked(dimension, nnz)
}

// SparseVectors generates num vectors with nnz non-zeros each.
func (r *RNG) SparseVectors(num, dimension, nnz int) []*sparse.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*sparse.Vector, num)
	for i := range out {
		out[i] = r.sparseLocked(dimension, nnz)
	}
	return out
}

// PositiveSparseVectors generates vectors whose values are uniform in
// (0, 1]; inner products between them are never negative, which mirrors
// tf-idf style corpora.
func (r *RNG) PositiveSparseVectors(num, dimension, nnz int) []*sparse.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*sparse.Vector, num)
	for i := range out {
		indices := r.rand.Perm(dimension)[:min(nnz, dimension)]
		values := make([]float64, len(indices))
		for j := range values {
			values[j] = 1 - r.rand.Float64()
		}
		out[i] = sparse.MustNew(dimension, indices, values)
	}
	return out
}

// Perturb returns a copy of v that keeps its support and adds Gaussian
// noise with the given spread to every value. Useful for building queries
// close to a known corpus vector.
func (r *RNG) Perturb(v *sparse.Vector, spread float64) *sparse.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.perturbLocked(v, spread)
}

func (r *RNG) perturbLocked(v *sparse.Vector, spread float64) *sparse.Vector {
	values := make([]float64, v.Len())
	for i, x := range v.Values() {
		values[i] = x + r.rand.NormFloat64()*spread
	}
	return sparse.MustNew(v.Dimension(), v.Indices(), values)
}

// ClusteredSparseVectors generates vectors drawn around `clusters` random
// sparse centroids: each vector reuses its centroid's support and adds
// Gaussian noise scaled by spread.
func (r *RNG) ClusteredSparseVectors(num, dimension, nnz, clusters int, spread float64) []*sparse.Vector {
	centroids := r.SparseVectors(clusters, dimension, nnz)

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*sparse.Vector, num)
	for i := range out {
		out[i] = r.perturbLocked(centroids[i%clusters], spread)
	}
	return out
}

func (r *RNG) sparseLocked(dimension, nnz int) *sparse.Vector {
	indices := r.rand.Perm(dimension)[:min(nnz, dimension)]
	values := make([]float64, len(indices))
	for i := range values {
		values[i] = r.rand.NormFloat64()
	}
	return sparse.MustNew(dimension, indices, values)
}

// BruteForceTopK performs exact search for ground truth: every vector is
// scored by inner product, non-positive scores are dropped, and the best k
// are returned by descending score with ties broken by ascending id.
func BruteForceTopK(corpus []*sparse.Vector, query *sparse.Vector, k int) []SearchResult {
	results := make([]SearchResult, 0, len(corpus))
	for i, v := range corpus {
		if s := query.InnerProduct(v); s > 0 {
			results = append(results, SearchResult{ID: uint32(i), Score: s})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// ComputeRecall computes recall@k by comparing approximate results against ground truth.
func ComputeRecall(groundTruth, approximate []SearchResult) float64 {
	if len(groundTruth) == 0 || len(approximate) == 0 {
		if len(groundTruth) == 0 && len(approximate) == 0 {
			return 1.0
		}
		return 0.0
	}

	k := min(len(approximate), len(groundTruth))

	truthSet := make(map[uint32]struct{}, k)
	for i := range k {
		truthSet[groundTruth[i].ID] = struct{}{}
	}

	hits := 0
	for _, r := range approximate {
		if _, ok := truthSet[r.ID]; ok {
			hits++
		}
	}

	return float64(hits) / float64(k)
}
