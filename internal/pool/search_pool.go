// Package pool provides object pools for allocation-free ranking.
// Uses sync.Pool for automatic memory reuse of top-k heaps.
package pool

import (
	"sync"

	"github.com/hupe1980/srplsh/internal/searcher"
)

const (
	// DefaultQueueCapacity is the default capacity for result heaps.
	DefaultQueueCapacity = 64

	// MaxRetainedCapacity is the largest heap returned to the pool; larger
	// heaps are replaced so one big k does not pin memory.
	MaxRetainedCapacity = 1 << 16
)

// SearchContext contains reusable buffers for ranking one query.
type SearchContext struct {
	Results *searcher.PriorityQueue
}

// searchContextPool is the global pool of SearchContext objects.
var searchContextPool = sync.Pool{
	New: func() any {
		return &SearchContext{
			Results: searcher.NewPriorityQueue(DefaultQueueCapacity),
		}
	},
}

// Get retrieves a SearchContext from the pool.
func Get() *SearchContext {
	ctx := searchContextPool.Get().(*SearchContext)
	ctx.Reset()
	return ctx
}

// Put returns a SearchContext to the pool for reuse.
func Put(ctx *SearchContext) {
	if ctx.Results.Cap() > MaxRetainedCapacity {
		ctx.Results = searcher.NewPriorityQueue(DefaultQueueCapacity)
	}
	searchContextPool.Put(ctx)
}

// Reset clears the SearchContext for reuse.
func (sc *SearchContext) Reset() {
	sc.Results.Reset()
}
