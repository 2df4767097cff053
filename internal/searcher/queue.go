// Package searcher implements the bounded top-k selection used to rank
// re-scored candidates.
package searcher

// PriorityQueueItem represents an item in the priority queue.
type PriorityQueueItem struct {
	ID    uint32  // ID is the corpus id of the candidate.
	Score float64 // Score is the exact inner product with the query.
}

// Better reports whether a ranks before b: higher score first, ties broken
// by lower id. This is a strict total order over distinct ids.
func Better(a, b PriorityQueueItem) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.ID < b.ID
}

// PriorityQueue is a binary heap whose top is the worst item it holds.
// Bounded to k items it retains the k best items seen.
// It does NOT implement container/heap to avoid interface overhead.
type PriorityQueue struct {
	items []PriorityQueueItem
}

// NewPriorityQueue creates a new priority queue with room for capacity items.
func NewPriorityQueue(capacity int) *PriorityQueue {
	return &PriorityQueue{
		items: make([]PriorityQueueItem, 0, max(capacity, 0)),
	}
}

// Reset clears the priority queue for reuse.
func (pq *PriorityQueue) Reset() {
	pq.items = pq.items[:0]
}

// TopItem returns the worst item in the heap.
func (pq *PriorityQueue) TopItem() (PriorityQueueItem, bool) {
	if len(pq.items) == 0 {
		return PriorityQueueItem{}, false
	}
	return pq.items[0], true
}

// PushItem inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue) PushItem(item PriorityQueueItem) {
	pq.items = append(pq.items, item)
	pq.siftUp(len(pq.items) - 1)
}

// PushItemBounded inserts an item into a heap bounded to capacity items.
// If the heap is full and the item does not rank before the top, it is
// skipped; otherwise it replaces the top.
func (pq *PriorityQueue) PushItemBounded(item PriorityQueueItem, capacity int) {
	if capacity <= 0 {
		return
	}
	if len(pq.items) < capacity {
		pq.PushItem(item)
		return
	}

	if Better(item, pq.items[0]) {
		pq.items[0] = item
		pq.siftDown(0)
	}
}

// Len returns the number of elements in the heap.
func (pq *PriorityQueue) Len() int {
	return len(pq.items)
}

// Cap returns the capacity of the backing slice.
func (pq *PriorityQueue) Cap() int {
	return cap(pq.items)
}

// Less reports whether the element with index i should sort before the element with index j.
func (pq *PriorityQueue) Less(i, j int) bool {
	return Better(pq.items[j], pq.items[i])
}

// Swap swaps the elements with indexes i and j.
func (pq *PriorityQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}

// PopItem removes and returns the worst element from the heap.
func (pq *PriorityQueue) PopItem() (PriorityQueueItem, bool) {
	n := len(pq.items)
	if n == 0 {
		return PriorityQueueItem{}, false
	}

	item := pq.items[0]
	pq.items[0] = pq.items[n-1]
	pq.items = pq.items[:n-1]

	if len(pq.items) > 0 {
		pq.siftDown(0)
	}

	return item, true
}

// Drain empties the heap and returns its items best first.
func (pq *PriorityQueue) Drain() []PriorityQueueItem {
	out := make([]PriorityQueueItem, len(pq.items))
	for i := len(out) - 1; i >= 0; i-- {
		out[i], _ = pq.PopItem()
	}
	return out
}

// siftUp moves the element at index i up the heap until the heap invariant is restored.
func (pq *PriorityQueue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !pq.Less(i, parent) {
			break
		}
		pq.Swap(i, parent)
		i = parent
	}
}

// siftDown moves the element at index i down the heap until the heap invariant is restored.
func (pq *PriorityQueue) siftDown(i int) {
	n := len(pq.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		child := left
		right := left + 1
		if right < n && pq.Less(right, left) {
			child = right
		}
		if !pq.Less(child, i) {
			break
		}
		pq.Swap(i, child)
		i = child
	}
}
