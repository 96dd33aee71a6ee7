package foldmap

import (
	"iter"
	"math"

	"github.com/hupe1980/foldmap/internal/queue"
)

// DistanceIterator lazily yields the map's entries ordered by distance to a
// fixed query point, either near-to-far or far-to-near. It is driven by two
// priority queues: pending tree nodes ordered by their region bound, and
// resolved entries ordered by exact distance. An entry is only emitted once
// its distance is guaranteed correct relative to every pending node, so the
// sequence is strictly ordered without ever materializing the whole map.
//
// The iterator captures the map version at creation and fails with
// *ErrConcurrentModification once the map is mutated; it is not resumable
// across mutations.
type DistanceIterator[P any, V comparable] struct {
	m        *Map[P, V]
	query    P
	farthest bool
	snapshot uint64
	nodes    *queue.PriorityQueue[*node[P, V]]
	entries  *queue.PriorityQueue[*Entry[P, V]]
}

// NearToFar returns an iterator over all entries ordered by non-decreasing
// distance to q.
func (m *Map[P, V]) NearToFar(q P) (*DistanceIterator[P, V], error) {
	return m.newDistanceIterator(q, false)
}

// FarToNear returns an iterator over all entries ordered by non-increasing
// distance to q.
func (m *Map[P, V]) FarToNear(q P) (*DistanceIterator[P, V], error) {
	return m.newDistanceIterator(q, true)
}

func (m *Map[P, V]) newDistanceIterator(q P, farthest bool) (*DistanceIterator[P, V], error) {
	if !m.space.IsFinite(q) {
		op := "near-to-far"
		if farthest {
			op = "far-to-near"
		}
		return nil, &ErrNonFinitePoint{Op: op}
	}

	it := &DistanceIterator[P, V]{
		m:        m,
		query:    q,
		farthest: farthest,
		snapshot: m.version,
	}

	// Both roots are seeded at a neutral bound so they compete fairly in
	// the same queue.
	var rootBound float64
	if farthest {
		it.nodes = queue.NewMax[*node[P, V]](8)
		it.entries = queue.NewMax[*Entry[P, V]](m.capacity)
		rootBound = math.Inf(1)
	} else {
		it.nodes = queue.NewMin[*node[P, V]](8)
		it.entries = queue.NewMin[*Entry[P, V]](m.capacity)
		rootBound = 0
	}
	it.nodes.Push(queue.Item[*node[P, V]]{Value: m.primary, Distance: rootBound})
	if m.secondary != nil {
		it.nodes.Push(queue.Item[*node[P, V]]{Value: m.secondary, Distance: rootBound})
	}

	return it, nil
}

// Next returns the next entry in order, or nil when the sequence is
// exhausted. Exhaustion is a normal outcome, not an error.
func (it *DistanceIterator[P, V]) Next() (*Entry[P, V], error) {
	if it.snapshot != it.m.version {
		return nil, &ErrConcurrentModification{Snapshot: it.snapshot, Version: it.m.version}
	}

	for {
		top, ok := it.nodes.Top()
		if !ok {
			break
		}
		if entry, ok := it.entries.Top(); ok && it.settled(entry.Distance, top.Distance) {
			break
		}
		it.nodes.Pop()
		it.expand(top.Value)
	}

	item, ok := it.entries.Pop()
	if !ok {
		return nil, nil
	}
	return item.Value, nil
}

// settled reports whether the best queued entry is already guaranteed to
// precede anything reachable from the best pending node. The comparison is
// tolerant so near-equal bounds cannot reorder results.
func (it *DistanceIterator[P, V]) settled(entryDist, nodeBound float64) bool {
	if it.farthest {
		return it.m.space.Gt(entryDist, nodeBound)
	}
	return it.m.space.Lt(entryDist, nodeBound)
}

// expand resolves one pending node: a leaf's entries move to the entry
// queue with their exact distances, an internal node's children are queued
// with their region bounds. Destroyed nodes contribute nothing.
func (it *DistanceIterator[P, V]) expand(n *node[P, V]) {
	if n.destroyed {
		return
	}
	if n.leaf() {
		for _, e := range n.entries {
			it.entries.Push(queue.Item[*Entry[P, V]]{
				Value:    e,
				Distance: it.m.space.Distance(it.query, e.key),
			})
		}
		return
	}

	code := n.partition.SearchLocation(it.query)
	for i, child := range n.children {
		if child == nil {
			continue
		}
		var bound float64
		if it.farthest {
			bound = n.partition.MaxDistance(i, it.query, code)
		} else {
			bound = n.partition.MinDistance(i, it.query, code)
		}
		it.nodes.Push(queue.Item[*node[P, V]]{Value: child, Distance: bound})
	}
}

// Seq adapts the iterator to a range-over-func sequence. Iteration stops at
// exhaustion; a structural conflict is yielded as the final element.
//
//	for e, err := range it.Seq() {
//	    if err != nil {
//	        return err
//	    }
//	    process(e)
//	}
func (it *DistanceIterator[P, V]) Seq() iter.Seq2[*Entry[P, V], error] {
	return func(yield func(*Entry[P, V], error) bool) {
		for {
			e, err := it.Next()
			if err != nil {
				yield(nil, err)
				return
			}
			if e == nil {
				return
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}
