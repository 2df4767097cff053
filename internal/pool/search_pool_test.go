package pool

import (
	"sync"
	"testing"

	"github.com/hupe1980/srplsh/internal/searcher"
)

func TestSearchContext_Reset(t *testing.T) {
	ctx := Get()
	ctx.Results.PushItem(searcher.PriorityQueueItem{ID: 1, Score: 1})
	ctx.Results.PushItem(searcher.PriorityQueueItem{ID: 2, Score: 2})

	if got := ctx.Results.Len(); got != 2 {
		t.Fatalf("ResultCount = %d, want 2", got)
	}

	ctx.Reset()

	if got := ctx.Results.Len(); got != 0 {
		t.Errorf("ResultCount after Reset = %d, want 0", got)
	}

	Put(ctx)
}

func TestGetReturnsEmptyContext(t *testing.T) {
	ctx := Get()
	ctx.Results.PushItem(searcher.PriorityQueueItem{ID: 7, Score: 3})
	Put(ctx)

	ctx = Get()
	defer Put(ctx)

	if ctx.Results.Len() != 0 {
		t.Errorf("pooled context not reset: %d items", ctx.Results.Len())
	}
}

func TestPutDropsOversizedHeaps(t *testing.T) {
	ctx := Get()
	ctx.Results = searcher.NewPriorityQueue(MaxRetainedCapacity + 1)
	Put(ctx)

	if ctx.Results.Cap() != DefaultQueueCapacity {
		t.Errorf("Cap = %d, want %d", ctx.Results.Cap(), DefaultQueueCapacity)
	}
}

func TestSearchContext_Concurrent(t *testing.T) {
	var wg sync.WaitGroup

	for g := range 8 {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range 100 {
				ctx := Get()
				for j := range 10 {
					ctx.Results.PushItemBounded(searcher.PriorityQueueItem{
						ID:    uint32(g*1000 + i*10 + j),
						Score: float64(j),
					}, 5)
				}
				if ctx.Results.Len() != 5 {
					t.Errorf("Len = %d, want 5", ctx.Results.Len())
				}
				Put(ctx)
			}
		}(g)
	}

	wg.Wait()
}
