package srplsh

import (
	"context"
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/srplsh/internal/pool"
	"github.com/hupe1980/srplsh/internal/searcher"
	"github.com/hupe1980/srplsh/lsh"
	"github.com/hupe1980/srplsh/sparse"
)

// Result is one ranked corpus vector.
type Result struct {
	ID    uint32  // Row of the vector in the corpus
	Score float64 // Exact inner product with the query (always > 0)
}

// SearchStats describes how a query was answered.
type SearchStats struct {
	Candidates    int  // distinct ids collected from the LSH bands
	BucketsProbed int  // exact and neighbour bucket lookups
	Fallback      bool // true if the whole corpus was scored
	Scored        int  // vectors whose inner product was computed
}

// Retriever answers top-k maximum inner product queries over a fixed
// corpus. It is immutable after New and safe for concurrent use. The zero
// value answers every query with ErrNotBuilt.
type Retriever struct {
	index      *lsh.Index
	multiplier int
	logger     *Logger
	metrics    MetricsCollector
}

// New builds a Retriever over corpus. Vector i is returned as id i.
// The corpus slice and its vectors are retained and must not be modified.
func New(ctx context.Context, corpus []*sparse.Vector, dimension int, optFns ...Option) (*Retriever, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	idx, err := lsh.New(opts.index)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = idx.Build(ctx, corpus, dimension)
	elapsed := time.Since(start)

	logger := opts.logger.WithDimension(dimension)

	opts.metricsCollector.RecordBuild(len(corpus), opts.index.NumBands, elapsed, err)
	logger.LogBuild(ctx, len(corpus), opts.index.NumBands, opts.index.NumBits, idx.MemoryBytes(), elapsed, err)
	if err != nil {
		return nil, err
	}

	return &Retriever{
		index:      idx,
		multiplier: opts.candidateMultiplier,
		logger:     logger,
		metrics:    opts.metricsCollector,
	}, nil
}

// Search returns up to k corpus vectors with the largest positive inner
// product to query, ordered by descending score and then ascending id.
func (r *Retriever) Search(ctx context.Context, query *sparse.Vector, k int) ([]Result, error) {
	res, _, err := r.SearchWithStats(ctx, query, k)
	return res, err
}

// SearchWithStats is like Search and also reports how the query was answered.
//
// Candidates come from the LSH bands with a threshold of multiplier*k. When
// fewer are found the whole corpus is scored instead, so a poor hash draw
// never shortens the result list.
func (r *Retriever) SearchWithStats(ctx context.Context, query *sparse.Vector, k int) ([]Result, SearchStats, error) {
	start := time.Now()
	logger := r.log().WithK(k)

	res, st, err := r.search(ctx, logger, query, k)

	r.metricsCollector().RecordSearch(k, st.Candidates, st.Fallback, time.Since(start), err)
	logger.LogSearch(ctx, st.Candidates, len(res), err)
	return res, st, err
}

func (r *Retriever) search(ctx context.Context, logger *Logger, query *sparse.Vector, k int) ([]Result, SearchStats, error) {
	var st SearchStats

	if k <= 0 {
		return nil, st, ErrInvalidK
	}
	if err := ctx.Err(); err != nil {
		return nil, st, err
	}

	threshold := r.threshold(k)

	candidates, cst, err := r.index.CandidatesWithStats(query, threshold)
	if err != nil {
		return nil, st, err
	}
	st.Candidates = cst.Candidates
	st.BucketsProbed = cst.BucketsProbed

	if candidates.IsEmpty() || cst.Candidates < threshold {
		logger.LogFallback(ctx, cst.Candidates, threshold)
		candidates = r.index.All()
		st.Fallback = true
	}

	st.Scored = int(candidates.GetCardinality())
	return r.rank(query, candidates, k), st, nil
}

// threshold returns multiplier*k, saturating at math.MaxInt.
func (r *Retriever) threshold(k int) int {
	if r.multiplier > 0 && k > math.MaxInt/r.multiplier {
		return math.MaxInt
	}
	return r.multiplier * k
}

// log and metricsCollector fall back to no-ops for a Retriever not created
// by New.
func (r *Retriever) log() *Logger {
	if r.logger == nil {
		return NoopLogger()
	}
	return r.logger
}

func (r *Retriever) metricsCollector() MetricsCollector {
	if r.metrics == nil {
		return NoopMetricsCollector{}
	}
	return r.metrics
}

// Exact scores the whole corpus with the same filtering and ordering as
// Search. It is the ground truth Search approximates.
func (r *Retriever) Exact(ctx context.Context, query *sparse.Vector, k int) ([]Result, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !r.index.Built() {
		return nil, ErrNotBuilt
	}
	if query == nil {
		return nil, ErrNilVector
	}
	if maxIdx := query.MaxIndex(); maxIdx >= r.index.Dimension() {
		return nil, &DimensionMismatchError{Dimension: r.index.Dimension(), Index: maxIdx}
	}
	return r.rank(query, r.index.All(), k), nil
}

// SearchBatch answers queries strictly in input order. It stops at the first
// failing query and returns the results gathered so far with the error.
func (r *Retriever) SearchBatch(ctx context.Context, queries []*sparse.Vector, k int) ([][]Result, error) {
	out := make([][]Result, 0, len(queries))
	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		res, err := r.Search(ctx, q, k)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}

// rank scores candidates in ascending id order and keeps the best k with a
// positive score.
func (r *Retriever) rank(query *sparse.Vector, candidates *roaring.Bitmap, k int) []Result {
	sc := pool.Get()
	defer pool.Put(sc)

	pq := sc.Results

	it := candidates.Iterator()
	for it.HasNext() {
		id := it.Next()
		if score := query.InnerProduct(r.index.Vector(id)); score > 0 {
			pq.PushItemBounded(searcher.PriorityQueueItem{ID: id, Score: score}, k)
		}
	}

	items := pq.Drain()
	out := make([]Result, len(items))
	for i, item := range items {
		out[i] = Result{ID: item.ID, Score: item.Score}
	}
	return out
}

// Index returns the underlying LSH index.
func (r *Retriever) Index() *lsh.Index { return r.index }

// Len returns the corpus size.
func (r *Retriever) Len() int { return r.index.Len() }

// Dimension returns the corpus dimension.
func (r *Retriever) Dimension() int { return r.index.Dimension() }

// IDs extracts the ids of results, preserving order.
func IDs(results []Result) []uint32 {
	ids := make([]uint32, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	return ids
}
