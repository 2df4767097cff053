// Package lsh implements a multi-band signed random projection index over
// sparse vectors.
//
// An Index moves through two states: empty (after New) and built (after a
// successful Build). It cannot be rebuilt; create a new Index instead. A
// built Index is read-only and may be queried from multiple goroutines.
package lsh

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/srplsh/bucket"
	"github.com/hupe1980/srplsh/projection"
	"github.com/hupe1980/srplsh/signature"
	"github.com/hupe1980/srplsh/sparse"
)

var (
	// ErrNotBuilt is returned when querying an Index before Build.
	ErrNotBuilt = errors.New("lsh index not built")

	// ErrAlreadyBuilt is returned when Build is called twice.
	ErrAlreadyBuilt = errors.New("lsh index already built")

	// ErrCorpusTooLarge is returned when the corpus does not fit uint32 ids.
	ErrCorpusTooLarge = errors.New("corpus exceeds uint32 id space")

	// ErrNilVector is returned for a nil corpus or query vector.
	ErrNilVector = errors.New("nil vector")
)

// ctxCheckInterval is how many vectors are hashed between cancellation checks.
const ctxCheckInterval = 1024

type band struct {
	bank  *projection.Bank
	table bucket.Index
}

// Index is an ensemble of bands built over a fixed corpus.
type Index struct {
	cfg       Config
	dimension int
	corpus    []*sparse.Vector
	bands     []band
	built     bool
}

// New returns an empty Index.
func New(cfg Config) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Index{cfg: cfg}, nil
}

// Build hashes every corpus vector into every band. Vector i receives id i.
// The result depends only on the corpus, dimension and Config (not on
// BuildWorkers).
func (idx *Index) Build(ctx context.Context, corpus []*sparse.Vector, dimension int) error {
	if idx.built {
		return ErrAlreadyBuilt
	}
	if dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive, got %d", ErrInvalidConfig, dimension)
	}
	if uint64(len(corpus)) > math.MaxUint32 {
		return fmt.Errorf("%w: %d vectors", ErrCorpusTooLarge, len(corpus))
	}
	for id, v := range corpus {
		if v == nil {
			return fmt.Errorf("corpus vector %d: %w", id, ErrNilVector)
		}
		if maxIdx := v.MaxIndex(); maxIdx >= dimension {
			return fmt.Errorf("corpus vector %d: %w", id, &sparse.DimensionMismatchError{Dimension: dimension, Index: maxIdx})
		}
	}

	bands := make([]band, idx.cfg.NumBands)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(idx.cfg.BuildWorkers, 1))

	for b := range bands {
		g.Go(func() error {
			built, err := idx.buildBand(gctx, b, corpus, dimension)
			if err != nil {
				return fmt.Errorf("band %d: %w", b, err)
			}
			bands[b] = built
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	idx.dimension = dimension
	idx.corpus = corpus
	idx.bands = bands
	idx.built = true
	return nil
}

func (idx *Index) buildBand(ctx context.Context, b int, corpus []*sparse.Vector, dimension int) (band, error) {
	bank, err := projection.Generate(idx.cfg.NumBits, dimension, idx.cfg.SeedBase+uint64(b))
	if err != nil {
		return band{}, err
	}
	table, err := bucket.New(idx.cfg.Strategy, idx.cfg.NumBits)
	if err != nil {
		return band{}, err
	}

	for id, v := range corpus {
		if id%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return band{}, err
			}
		}
		sig, err := signature.Hash(v, bank)
		if err != nil {
			return band{}, fmt.Errorf("vector %d: %w", id, err)
		}
		table.Insert(sig, uint32(id))
	}

	return band{bank: bank, table: table}, nil
}

// CandidateStats describes the work done by one candidate query.
type CandidateStats struct {
	BandsProbed   int // bands whose exact bucket was read
	BucketsProbed int // exact and neighbour bucket lookups
	Candidates    int // distinct ids collected
}

// Candidates returns the ids colliding with query in any band, extended by
// Hamming-distance-1 neighbour buckets.
//
// Every band contributes its exact bucket. Neighbour buckets (bit 0 flipped
// first) are probed only while fewer than minCandidates ids have been
// collected; minCandidates <= 0 probes every neighbour.
func (idx *Index) Candidates(query *sparse.Vector, minCandidates int) (*roaring.Bitmap, error) {
	set, _, err := idx.CandidatesWithStats(query, minCandidates)
	return set, err
}

// CandidatesWithStats is like Candidates and also reports probe statistics.
func (idx *Index) CandidatesWithStats(query *sparse.Vector, minCandidates int) (*roaring.Bitmap, CandidateStats, error) {
	var st CandidateStats

	if err := idx.checkQuery(query); err != nil {
		return nil, st, err
	}

	set := roaring.New()
	short := func() bool {
		return minCandidates <= 0 || set.GetCardinality() < uint64(minCandidates)
	}

	for _, bd := range idx.bands {
		sig, err := signature.Hash(query, bd.bank)
		if err != nil {
			return nil, st, err
		}

		set.AddMany(bd.table.Lookup(sig))
		st.BandsProbed++
		st.BucketsProbed++

		for bit := 0; bit < idx.cfg.NumBits && short(); bit++ {
			set.AddMany(bd.table.Lookup(sig.Flip(bit)))
			st.BucketsProbed++
		}
	}

	st.Candidates = int(set.GetCardinality())
	return set, st, nil
}

// All returns the full id range [0, Len()).
func (idx *Index) All() *roaring.Bitmap {
	set := roaring.New()
	set.AddRange(0, uint64(len(idx.corpus)))
	return set
}

// Signatures returns the signature of v in every band.
func (idx *Index) Signatures(v *sparse.Vector) ([]signature.Signature, error) {
	if err := idx.checkQuery(v); err != nil {
		return nil, err
	}
	sigs := make([]signature.Signature, len(idx.bands))
	for b, bd := range idx.bands {
		sig, err := signature.Hash(v, bd.bank)
		if err != nil {
			return nil, err
		}
		sigs[b] = sig
	}
	return sigs, nil
}

// Bucket returns the ids stored under sig in band b. The slice must not be
// modified.
func (idx *Index) Bucket(b int, sig signature.Signature) []uint32 {
	if !idx.Built() || b < 0 || b >= len(idx.bands) {
		return nil
	}
	return idx.bands[b].table.Lookup(sig)
}

func (idx *Index) checkQuery(v *sparse.Vector) error {
	if !idx.Built() {
		return ErrNotBuilt
	}
	if v == nil {
		return ErrNilVector
	}
	if maxIdx := v.MaxIndex(); maxIdx >= idx.dimension {
		return &sparse.DimensionMismatchError{Dimension: idx.dimension, Index: maxIdx}
	}
	return nil
}

// Built reports whether Build completed successfully.
func (idx *Index) Built() bool { return idx != nil && idx.built }

// Config returns the index configuration.
func (idx *Index) Config() Config { return idx.cfg }

// Dimension returns the corpus dimension.
func (idx *Index) Dimension() int { return idx.dimension }

// Len returns the number of indexed vectors.
func (idx *Index) Len() int { return len(idx.corpus) }

// Vector returns corpus vector id.
func (idx *Index) Vector(id uint32) *sparse.Vector { return idx.corpus[id] }
