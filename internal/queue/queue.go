// Package queue provides the value-based priority queues driving foldmap's
// best-first traversals.
package queue

// Item represents an item in the priority queue: an arbitrary value ordered
// by its distance.
type Item[T any] struct {
	Value    T
	Distance float64
}

// PriorityQueue is a binary heap of Items, either min-first or max-first.
// Value-based storage keeps it allocation-free on the hot path.
type PriorityQueue[T any] struct {
	isMaxHeap bool
	items     []Item[T]
}

// NewMin initializes a new priority queue with minimum priority first.
func NewMin[T any](capacity int) *PriorityQueue[T] {
	return &PriorityQueue[T]{
		isMaxHeap: false,
		items:     make([]Item[T], 0, capacity),
	}
}

// NewMax initializes a new priority queue with maximum priority first.
func NewMax[T any](capacity int) *PriorityQueue[T] {
	return &PriorityQueue[T]{
		isMaxHeap: true,
		items:     make([]Item[T], 0, capacity),
	}
}

// Len returns the number of elements in the priority queue.
func (pq *PriorityQueue[T]) Len() int { return len(pq.items) }

// Top returns the best element without removing it.
func (pq *PriorityQueue[T]) Top() (Item[T], bool) {
	if len(pq.items) == 0 {
		return Item[T]{}, false
	}
	return pq.items[0], true
}

// Push inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue[T]) Push(item Item[T]) {
	pq.items = append(pq.items, item)
	pq.siftUp(len(pq.items) - 1)
}

// Pop removes and returns the best element while maintaining the heap
// invariant.
func (pq *PriorityQueue[T]) Pop() (Item[T], bool) {
	n := len(pq.items)
	if n == 0 {
		return Item[T]{}, false
	}
	root := pq.items[0]
	last := pq.items[n-1]
	pq.items[n-1] = Item[T]{} // zero out for GC
	pq.items = pq.items[:n-1]
	if n-1 > 0 {
		pq.items[0] = last
		pq.siftDown(0)
	}
	return root, true
}

// Reset clears the priority queue for reuse.
func (pq *PriorityQueue[T]) Reset() {
	clear(pq.items)
	pq.items = pq.items[:0]
}

func (pq *PriorityQueue[T]) less(i, j int) bool {
	if pq.isMaxHeap {
		return pq.items[i].Distance > pq.items[j].Distance
	}
	return pq.items[i].Distance < pq.items[j].Distance
}

func (pq *PriorityQueue[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.less(i, p) {
			return
		}
		pq.items[i], pq.items[p] = pq.items[p], pq.items[i]
		i = p
	}
}

func (pq *PriorityQueue[T]) siftDown(i int) {
	n := len(pq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && pq.less(r, l) {
			best = r
		}
		if !pq.less(best, i) {
			return
		}
		pq.items[i], pq.items[best] = pq.items[best], pq.items[i]
		i = best
	}
}
