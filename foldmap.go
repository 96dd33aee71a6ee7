package foldmap

import (
	"math"

	"github.com/hupe1980/foldmap/space"
)

// Map is a multidimensional spatial point map: it stores (point, value)
// pairs in a bucket tree and answers exact lookups and distance-ordered
// queries against a pluggable geometric space.
//
// The map stays balanced under adversarial insertion order by point
// folding: the moment the primary root splits for the first time, the whole
// tree is demoted to a secondary root and a fresh leaf becomes the primary.
// Every subsequent insertion then migrates one entry from the secondary
// tree back into the primary, sampled in a deterministic zig-zag over the
// secondary's top-level regions, until the secondary is drained and
// destroyed. The primary's low levels are thereby seeded with a
// geometrically diverse sample of old data instead of being built purely
// from new, possibly clustered insertions.
//
// A Map is not safe for concurrent use; callers must serialize access
// externally.
type Map[P any, V comparable] struct {
	space    space.Space[P]
	strategy space.Strategy[P]
	capacity int
	arity    int
	logger   *Logger
	metrics  MetricsCollector

	primary   *node[P, V]
	secondary *node[P, V] // non-nil only while a rebalancing pass is in progress
	version   uint64
}

// New creates an empty map over the given space and partition strategy.
func New[P any, V comparable](sp space.Space[P], strategy space.Strategy[P], optFns ...func(o *Options)) (*Map[P, V], error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if sp == nil {
		return nil, ErrNilSpace
	}
	if strategy == nil {
		return nil, ErrNilStrategy
	}
	if opts.LeafCapacity < 2 {
		return nil, &ErrInvalidLeafCapacity{LeafCapacity: opts.LeafCapacity}
	}
	arity := strategy.Arity()
	if arity < 2 {
		return nil, &ErrInvalidArity{Arity: arity}
	}

	logger := opts.Logger
	if logger == nil {
		logger = NoopLogger()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	m := &Map[P, V]{
		space:    sp,
		strategy: strategy,
		capacity: opts.LeafCapacity,
		arity:    arity,
		logger:   logger,
		metrics:  metrics,
	}
	m.primary = newLeaf[P, V](nil, m.capacity)
	return m, nil
}

// Len returns the number of entries in the map. O(1): counts are cached.
func (m *Map[P, V]) Len() int {
	n := m.primary.count
	if m.secondary != nil {
		n += m.secondary.count
	}
	return n
}

// Put stores value under key, replacing the value in place when a
// tolerantly equal key is already present. It returns the previous value
// and whether one was replaced. A non-finite key is rejected with
// *ErrNonFinitePoint and the map is unchanged.
func (m *Map[P, V]) Put(key P, value V) (V, bool, error) {
	var zero V
	if !m.space.IsFinite(key) {
		return zero, false, &ErrNonFinitePoint{Op: "put"}
	}

	if e := m.findEntry(key); e != nil {
		old := e.setValue(value)
		m.metrics.RecordPut(true)
		return old, true, nil
	}

	m.primary.insert(m, &Entry[P, V]{key: key, value: value})
	m.onEntryAdded()
	m.metrics.RecordPut(false)
	return zero, false, nil
}

// Get returns the value stored under a tolerantly equal key.
func (m *Map[P, V]) Get(key P) (V, bool, error) {
	var zero V
	if !m.space.IsFinite(key) {
		return zero, false, &ErrNonFinitePoint{Op: "get"}
	}
	if e := m.findEntry(key); e != nil {
		return e.value, true, nil
	}
	return zero, false, nil
}

// ContainsKey reports whether a tolerantly equal key is present.
func (m *Map[P, V]) ContainsKey(key P) (bool, error) {
	if !m.space.IsFinite(key) {
		return false, &ErrNonFinitePoint{Op: "contains"}
	}
	return m.findEntry(key) != nil, nil
}

// ContainsValue reports whether any entry holds value. Values are not
// indexed, so this scans both trees linearly.
func (m *Map[P, V]) ContainsValue(value V) bool {
	if m.primary.containsValue(value) {
		return true
	}
	return m.secondary != nil && m.secondary.containsValue(value)
}

// Remove deletes the entry stored under a tolerantly equal key and returns
// its value.
func (m *Map[P, V]) Remove(key P) (V, bool, error) {
	var zero V
	if !m.space.IsFinite(key) {
		return zero, false, &ErrNonFinitePoint{Op: "remove"}
	}

	e := m.primary.remove(m, key)
	if e == nil && m.secondary != nil {
		e = m.secondary.remove(m, key)
	}
	if e == nil {
		return zero, false, nil
	}

	m.version++
	m.dropSecondaryIfEmpty()
	m.metrics.RecordRemove()
	return e.value, true, nil
}

// Clear discards both trees and recreates an empty leaf primary.
func (m *Map[P, V]) Clear() {
	m.primary.destroy()
	if m.secondary != nil {
		m.secondary.destroy()
		m.secondary = nil
	}
	m.primary = newLeaf[P, V](nil, m.capacity)
	m.version++
}

// NearestEntry returns the entry closest to q, or nil when the map is
// empty. Exact distance ties are broken by the space's disambiguation
// order.
func (m *Map[P, V]) NearestEntry(q P) (*Entry[P, V], error) {
	return m.bestEntry(q, false)
}

// FarthestEntry returns the entry farthest from q, or nil when the map is
// empty. Exact distance ties are broken by the space's disambiguation
// order.
func (m *Map[P, V]) FarthestEntry(q P) (*Entry[P, V], error) {
	return m.bestEntry(q, true)
}

func (m *Map[P, V]) bestEntry(q P, farthest bool) (*Entry[P, V], error) {
	if !m.space.IsFinite(q) {
		op := "nearest"
		if farthest {
			op = "farthest"
		}
		return nil, &ErrNonFinitePoint{Op: op}
	}

	seed := math.Inf(1)
	if farthest {
		seed = math.Inf(-1)
	}
	// The first root's best seeds the second search, so the secondary tree
	// is pruned against it from the start and ties stay disambiguated.
	best := m.primary.findBest(m, q, farthest, bestMatch[P, V]{distance: seed})
	if m.secondary != nil {
		best = m.secondary.findBest(m, q, farthest, best)
	}
	m.metrics.RecordSearch()
	return best.entry, nil
}

// findEntry looks key up across both roots, primary first.
func (m *Map[P, V]) findEntry(key P) *Entry[P, V] {
	if e := m.primary.find(m, key); e != nil {
		return e
	}
	if m.secondary != nil {
		return m.secondary.find(m, key)
	}
	return nil
}

// onEntryAdded runs the structural bookkeeping after a brand-new entry was
// inserted into the primary tree: bump the version, demote a freshly split
// primary to secondary, run one migration step and drop the secondary once
// drained.
func (m *Map[P, V]) onEntryAdded() {
	m.version++

	if !m.primary.leaf() && m.secondary == nil {
		m.secondary = m.primary
		m.primary = newLeaf[P, V](nil, m.capacity)
		m.metrics.RecordFoldStart()
		m.logger.LogFoldStart(m.secondary.count, m.version)
	}

	m.migrate()
	m.dropSecondaryIfEmpty()
}

// migrate moves one entry from the secondary tree into the primary. The
// preferred child index zig-zags across the secondary's top-level partition
// as the version advances (arity-1, 0, arity-2, 1, ...), sampling
// alternately from the high and the low end regardless of where past
// insertions clustered.
func (m *Map[P, V]) migrate() {
	if m.secondary == nil {
		return
	}

	offset := int(m.version % uint64(m.arity))
	var idx int
	if offset%2 == 1 {
		idx = offset / 2
	} else {
		idx = m.arity - 1 - offset/2
	}

	if e := m.secondary.removeLastAlongIndexPath(idx); e != nil {
		m.primary.insert(m, e)
	}
}

// dropSecondaryIfEmpty destroys the secondary root the instant its count
// reaches zero, ending the rebalancing pass.
func (m *Map[P, V]) dropSecondaryIfEmpty() {
	if m.secondary == nil || m.secondary.count > 0 {
		return
	}
	m.secondary.destroy()
	m.secondary = nil
	m.metrics.RecordFoldFinish()
	m.logger.LogFoldFinish(m.version)
}
