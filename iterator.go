package foldmap

import "iter"

// Iterator walks every entry in the map: the secondary root first (when a
// rebalancing pass is in progress), then the primary root, in left-to-right
// leaf order.
//
// The iterator is fail-fast: it captures the map version at creation and
// every operation compares it against the live version, failing with
// *ErrConcurrentModification when the map was mutated through another path.
// Removing the current entry through the iterator itself re-synchronizes
// the snapshot and is not a conflict.
type Iterator[P any, V comparable] struct {
	m        *Map[P, V]
	snapshot uint64
	roots    []*node[P, V]
	stack    []iterFrame[P, V]

	// position of the most recently returned entry, for Remove
	current    *node[P, V]
	currentIdx int
	returned   bool
}

type iterFrame[P any, V comparable] struct {
	n   *node[P, V]
	idx int // next child index (internal) or entry index (leaf)
}

// Entries returns a fail-fast iterator over all entries.
func (m *Map[P, V]) Entries() *Iterator[P, V] {
	roots := make([]*node[P, V], 0, 2)
	if m.secondary != nil {
		roots = append(roots, m.secondary)
	}
	roots = append(roots, m.primary)

	return &Iterator[P, V]{
		m:        m,
		snapshot: m.version,
		roots:    roots,
	}
}

func (it *Iterator[P, V]) check() error {
	if it.snapshot != it.m.version {
		return &ErrConcurrentModification{Snapshot: it.snapshot, Version: it.m.version}
	}
	return nil
}

// Len returns the number of entries remaining in the map (not the number
// left to iterate). It is subject to the same fail-fast check as Next.
func (it *Iterator[P, V]) Len() (int, error) {
	if err := it.check(); err != nil {
		return 0, err
	}
	return it.m.Len(), nil
}

// Next returns the next entry, or nil when iteration is exhausted.
// Exhaustion is a normal outcome, not an error.
func (it *Iterator[P, V]) Next() (*Entry[P, V], error) {
	if err := it.check(); err != nil {
		return nil, err
	}

	for {
		if len(it.stack) == 0 {
			if len(it.roots) == 0 {
				it.returned = false
				return nil, nil
			}
			it.stack = append(it.stack, iterFrame[P, V]{n: it.roots[0]})
			it.roots = it.roots[1:]
			continue
		}

		f := &it.stack[len(it.stack)-1]
		if f.n.destroyed {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		if f.n.leaf() {
			if f.idx < len(f.n.entries) {
				e := f.n.entries[f.idx]
				it.current, it.currentIdx = f.n, f.idx
				it.returned = true
				f.idx++
				return e, nil
			}
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		if f.idx < len(f.n.children) {
			child := f.n.children[f.idx]
			f.idx++
			if child != nil {
				it.stack = append(it.stack, iterFrame[P, V]{n: child})
			}
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
}

// Remove deletes the entry most recently returned by Next, updating counts
// up the ancestor chain. Calling it before any entry was produced, twice
// for the same entry, or after exhaustion fails with ErrNoSuchElement.
func (it *Iterator[P, V]) Remove() error {
	if err := it.check(); err != nil {
		return err
	}
	if !it.returned {
		return ErrNoSuchElement
	}

	leaf := it.current
	leaf.entries = append(leaf.entries[:it.currentIdx], leaf.entries[it.currentIdx+1:]...)
	leaf.addCount(-1)
	it.returned = false

	// The cursor sits one past the removed entry inside the same leaf
	// frame; pull it back so the shifted entries are not skipped.
	if len(it.stack) > 0 {
		if f := &it.stack[len(it.stack)-1]; f.n == leaf && f.idx > 0 {
			f.idx--
		}
	}

	// The iterator performed the mutation itself: bump the version and
	// re-synchronize the snapshot instead of reporting a conflict.
	it.m.version++
	it.snapshot = it.m.version
	return nil
}

// Seq adapts the iterator to a range-over-func sequence. Iteration stops at
// exhaustion; a structural conflict is yielded as the final element.
func (it *Iterator[P, V]) Seq() iter.Seq2[*Entry[P, V], error] {
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

// Keys returns a fail-fast sequence over all keys, in iteration order.
func (m *Map[P, V]) Keys() iter.Seq2[P, error] {
	return func(yield func(P, error) bool) {
		var zero P
		for e, err := range m.Entries().Seq() {
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(e.key, nil) {
				return
			}
		}
	}
}

// Values returns a fail-fast sequence over all values, in iteration order.
func (m *Map[P, V]) Values() iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		var zero V
		for e, err := range m.Entries().Seq() {
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(e.value, nil) {
				return
			}
		}
	}
}
