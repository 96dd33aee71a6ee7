// Package foldmap provides a generic, multidimensional spatial point map
// for Go: a bucket tree that stores (point, value) pairs and answers exact
// lookups, nearest/farthest queries and lazy distance-ordered iteration,
// while staying balanced under adversarial insertion order.
//
// # Quick Start
//
//	sp, _ := euclid.NewSpace(2)
//	strat, _ := euclid.NewStrategy(2)
//	m, _ := foldmap.New[[]float64, string](sp, strat)
//
//	m.Put([]float64{2, 3}, "a")
//	m.Put([]float64{5, 1}, "b")
//
//	e, _ := m.NearestEntry([]float64{2, 2})
//	fmt.Println(e.Value()) // "a"
//
//	it, _ := m.NearToFar([]float64{0, 0})
//	for e, err := range it.Seq() {
//	    ...
//	}
//
// # Point Folding
//
// The map keeps two independent trees. All new entries go into the primary
// tree; the moment the primary root splits for the first time, it is
// demoted to a secondary tree and a fresh leaf takes its place. Every
// subsequent insertion then also migrates one entry from the aging
// secondary tree into the primary, sampled in a deterministic zig-zag over
// the secondary's top-level regions, until the secondary is drained. The
// primary's low levels are thereby seeded with a geometrically diverse
// sample of old data, so the tree shape does not degrade when insertions
// arrive sorted or clustered. The scheme is a practical heuristic, not a
// proven worst-case height bound.
//
// # Geometries
//
// The geometry is pluggable: a space supplies distance, finiteness and
// tolerant equality, and a strategy supplies the fixed-fan-out partitioning
// of buckets into child regions. Two concrete geometries ship with the
// package: euclid (n-dimensional Euclidean points, k-d style midpoint
// bisection) and angular (wrap-around one-dimensional angles, equal
// sectors). See package space for the interfaces.
//
// # Iteration and Fail-Fast
//
// Full-map iteration and distance-ordered iteration are fail-fast: every
// iterator captures the map's version counter at creation and fails with
// *ErrConcurrentModification once the map is mutated through another path.
// Removal through the full-map iterator itself is allowed and re-syncs its
// snapshot.
//
// # Key Characteristics
//
//   - Pure in-memory library, no persistence
//   - Single-threaded; callers must serialize concurrent access
//   - Tolerant floating point comparison throughout, so boundary points are
//     never lost to rounding
//   - Lazy best-first queries: distance order without materializing the map
package foldmap
