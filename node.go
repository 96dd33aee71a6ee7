package foldmap

import (
	"sort"

	"github.com/hupe1980/foldmap/space"
)

// node is the recursive bucket tree unit: either a leaf holding up to
// capacity entries, or an internal node with a fixed-arity child array and
// the partition state produced by the strategy. A node owns its subtree;
// parent is a non-owning back-reference used by condensation and count
// maintenance.
//
// count caches the number of entries in the subtree. It is maintained
// incrementally and only ever recomputed by traversal during condensation.
type node[P any, V comparable] struct {
	parent    *node[P, V]
	entries   []*Entry[P, V] // leaf storage; nil on internal nodes
	children  []*node[P, V]  // internal storage; nil on leaves
	partition space.Partition[P]
	count     int
	destroyed bool
}

func newLeaf[P any, V comparable](parent *node[P, V], capacity int) *node[P, V] {
	return &node[P, V]{
		parent:  parent,
		entries: make([]*Entry[P, V], 0, capacity),
	}
}

// leaf reports whether n currently stores entries directly. A destroyed
// node is neither a leaf nor an internal node.
func (n *node[P, V]) leaf() bool { return n.entries != nil }

// addCount adjusts the cached entry count of n and every ancestor.
func (n *node[P, V]) addCount(delta int) {
	for p := n; p != nil; p = p.parent {
		p.count += delta
	}
}

// insert places e into the subtree, splitting an overflowing leaf first.
// It performs no duplicate-key check; callers pre-check via find.
func (n *node[P, V]) insert(m *Map[P, V], e *Entry[P, V]) {
	if n.leaf() {
		if len(n.entries) < m.capacity {
			n.entries = append(n.entries, e)
			n.addCount(1)
			return
		}
		n.split(m)
	}

	code := n.partition.InsertLocation(e.key)
	for i := range n.children {
		if !n.partition.Matches(i, code) {
			continue
		}
		child := n.children[i]
		if child == nil {
			child = newLeaf(n, m.capacity)
			n.children[i] = child
		}
		child.insert(m, e)
		return
	}
}

// split converts a full leaf into an internal node, redistributing its
// entries to children by their strict insert locations.
func (n *node[P, V]) split(m *Map[P, V]) {
	points := make([]P, len(n.entries))
	for i, e := range n.entries {
		points[i] = e.key
	}
	n.partition = m.strategy.Split(points)

	entries := n.entries
	n.entries = nil
	n.children = make([]*node[P, V], m.arity)

	for _, e := range entries {
		code := n.partition.InsertLocation(e.key)
		for i := range n.children {
			if !n.partition.Matches(i, code) {
				continue
			}
			child := n.children[i]
			if child == nil {
				child = newLeaf(n, m.capacity)
				n.children[i] = child
			}
			child.entries = append(child.entries, e)
			child.count++
			break
		}
	}

	m.metrics.RecordSplit()
	m.logger.LogSplit(len(entries))
}

// find returns the entry whose key tolerantly equals p, or nil. Internal
// nodes probe every child matching the non-strict search location, so a
// point on a split boundary is found regardless of which side stored it.
func (n *node[P, V]) find(m *Map[P, V], p P) *Entry[P, V] {
	if n.destroyed {
		return nil
	}
	if n.leaf() {
		for _, e := range n.entries {
			if m.space.Equal(e.key, p) {
				return e
			}
		}
		return nil
	}

	code := n.partition.SearchLocation(p)
	for i, child := range n.children {
		if child == nil || !n.partition.Matches(i, code) {
			continue
		}
		if e := child.find(m, p); e != nil {
			return e
		}
	}
	return nil
}

// remove deletes and returns the entry whose key tolerantly equals p, or
// nil. Counts are updated up the ancestor chain and condensation runs from
// the leaf where the removal happened.
func (n *node[P, V]) remove(m *Map[P, V], p P) *Entry[P, V] {
	if n.destroyed {
		return nil
	}
	if n.leaf() {
		for i, e := range n.entries {
			if m.space.Equal(e.key, p) {
				n.entries = append(n.entries[:i], n.entries[i+1:]...)
				n.addCount(-1)
				n.condense(m)
				return e
			}
		}
		return nil
	}

	code := n.partition.SearchLocation(p)
	for i, child := range n.children {
		if child == nil || !n.partition.Matches(i, code) {
			continue
		}
		if e := child.remove(m, p); e != nil {
			return e
		}
	}
	return nil
}

// condense collapses the highest internal ancestor whose subtree has shrunk
// to at most half a leaf's capacity. Collapsing is deferred to the highest
// qualifying ancestor: a node whose parent also qualifies waits, which
// avoids leaf/internal flapping during insert/remove sequences near the
// boundary.
func (n *node[P, V]) condense(m *Map[P, V]) {
	threshold := m.capacity / 2
	var target *node[P, V]
	for p := n; p != nil && p.count <= threshold; p = p.parent {
		if !p.leaf() {
			target = p
		}
	}
	if target != nil {
		target.collapse(m)
	}
}

// collapse turns an internal node back into a leaf holding all entries of
// its former subtree.
func (n *node[P, V]) collapse(m *Map[P, V]) {
	entries := n.appendEntries(make([]*Entry[P, V], 0, m.capacity))
	for _, child := range n.children {
		if child != nil {
			child.destroy()
		}
	}
	n.children = nil
	n.partition = nil
	n.entries = entries

	m.metrics.RecordCondense()
	m.logger.LogCondense(len(entries))
}

// appendEntries appends every entry of the subtree to dst in left-to-right
// leaf order.
func (n *node[P, V]) appendEntries(dst []*Entry[P, V]) []*Entry[P, V] {
	if n.leaf() {
		return append(dst, n.entries...)
	}
	for _, child := range n.children {
		if child != nil {
			dst = child.appendEntries(dst)
		}
	}
	return dst
}

// containsValue reports whether any entry in the subtree holds value.
// Values are not indexed, so this is a full linear scan.
func (n *node[P, V]) containsValue(value V) bool {
	if n.leaf() {
		for _, e := range n.entries {
			if e.value == value {
				return true
			}
		}
		return false
	}
	for _, child := range n.children {
		if child != nil && child.containsValue(value) {
			return true
		}
	}
	return false
}

// removeLastAlongIndexPath removes and returns one entry, preferring the
// child at the given index and walking outward from it: direction +1 when
// the index is in the lower half of the arity, -1 otherwise, wrapping
// modulo arity. An emptied child is destroyed and nulled. Used exclusively
// by the migration step.
func (n *node[P, V]) removeLastAlongIndexPath(preferred int) *Entry[P, V] {
	if n.destroyed {
		return nil
	}
	if n.leaf() {
		last := len(n.entries) - 1
		if last < 0 {
			return nil
		}
		e := n.entries[last]
		n.entries = n.entries[:last]
		n.addCount(-1)
		return e
	}

	arity := len(n.children)
	dir := 1
	if preferred >= arity/2 {
		dir = -1
	}
	for step := 0; step < arity; step++ {
		i := ((preferred+dir*step)%arity + arity) % arity
		child := n.children[i]
		if child == nil {
			continue
		}
		if e := child.removeLastAlongIndexPath(preferred); e != nil {
			if child.count == 0 {
				child.destroy()
				n.children[i] = nil
			}
			return e
		}
	}
	return nil
}

// bestMatch is the incumbent of a branch-and-bound search: an entry with
// its exact distance, or a pure distance bound when entry is nil.
type bestMatch[P any, V comparable] struct {
	entry    *Entry[P, V]
	distance float64
}

// findBest runs the branch-and-bound nearest (farthest=false) or farthest
// (farthest=true) search over the subtree, starting from the given
// incumbent. Leaves scan entries exactly, breaking distance ties with the
// space's disambiguation order. Internal nodes visit children ordered by
// their region bound and stop as soon as the incumbent is no worse than the
// next child's bound: no deeper point in any later child can beat it.
func (n *node[P, V]) findBest(m *Map[P, V], q P, farthest bool, best bestMatch[P, V]) bestMatch[P, V] {
	if n.destroyed {
		return best
	}
	if n.leaf() {
		for _, e := range n.entries {
			d := m.space.Distance(q, e.key)
			if m.improves(farthest, d, e.key, best) {
				best = bestMatch[P, V]{entry: e, distance: d}
			}
		}
		return best
	}

	type boundedChild struct {
		child *node[P, V]
		bound float64
		index int
	}
	order := make([]boundedChild, 0, len(n.children))
	code := n.partition.SearchLocation(q)
	for i, child := range n.children {
		if child == nil {
			continue
		}
		var bound float64
		if farthest {
			bound = n.partition.MaxDistance(i, q, code)
		} else {
			bound = n.partition.MinDistance(i, q, code)
		}
		order = append(order, boundedChild{child: child, bound: bound, index: i})
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].bound != order[j].bound {
			if farthest {
				return order[i].bound > order[j].bound
			}
			return order[i].bound < order[j].bound
		}
		return order[i].index < order[j].index
	})

	for _, bc := range order {
		if farthest {
			if !m.space.Gt(bc.bound, best.distance) && best.entry != nil {
				break
			}
		} else {
			if !m.space.Lt(bc.bound, best.distance) && best.entry != nil {
				break
			}
		}
		best = bc.child.findBest(m, q, farthest, best)
	}
	return best
}

// improves reports whether an entry at distance d beats the incumbent. A
// nil incumbent entry is a pure bound and is beaten inclusively; exact
// distance ties against a real incumbent fall back to the disambiguation
// order for determinism.
func (m *Map[P, V]) improves(farthest bool, d float64, key P, best bestMatch[P, V]) bool {
	if best.entry == nil {
		if farthest {
			return !m.space.Lt(d, best.distance)
		}
		return m.space.Lte(d, best.distance)
	}
	if farthest {
		if m.space.Gt(d, best.distance) {
			return true
		}
	} else {
		if m.space.Lt(d, best.distance) {
			return true
		}
	}
	if !m.space.Lt(d, best.distance) && !m.space.Gt(d, best.distance) {
		return m.space.Compare(key, best.entry.key) < 0
	}
	return false
}

// destroy severs all node pointers in the subtree. A destroyed node must
// not be mutated again; live iterators treat it as empty.
func (n *node[P, V]) destroy() {
	if n.destroyed {
		return
	}
	n.destroyed = true
	for _, child := range n.children {
		if child != nil {
			child.destroy()
		}
	}
	n.children = nil
	n.entries = nil
	n.partition = nil
	n.parent = nil
	n.count = 0
}
