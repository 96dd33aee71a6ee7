// Package space defines the geometric collaborator interfaces consumed by
// foldmap: the point semantics of a concrete space (distance, finiteness,
// tolerant equality) and the partition strategy that splits a bucket of
// points into a fixed number of child regions.
//
// Implementations must be stateless and pure so a single value can be shared
// across an entire tree. Concrete spaces live in the subpackages euclid
// (n-dimensional Euclidean, k-d style bisection) and angular (wrap-around
// one-dimensional angles).
package space

import "math"

// Code is an opaque location code encoding a point's position relative to a
// partition. Codes produced by InsertLocation match exactly one child; codes
// produced by SearchLocation may match several children when the point lies
// within tolerance of a split boundary.
type Code uint64

// Precision is a tolerant comparator for floating point distances. It is
// used throughout branch-and-bound pruning so that near-equal bounds do not
// cause incorrect pruning, duplicates or missed results.
type Precision interface {
	// Lt reports whether a is less than b beyond tolerance.
	Lt(a, b float64) bool

	// Lte reports whether a is less than or within tolerance of b.
	Lte(a, b float64) bool

	// Gt reports whether a is greater than b beyond tolerance.
	Gt(a, b float64) bool
}

// Space describes the point semantics of a concrete geometric space.
type Space[P any] interface {
	Precision

	// IsFinite reports whether p is a usable point. Operations on
	// non-finite points fail fast.
	IsFinite(p P) bool

	// Equal is the tolerant point equality used for exact-key lookup and
	// removal.
	Equal(a, b P) bool

	// Compare is a total, deterministic order over points, used only to
	// break exact distance ties. It returns a negative number when a sorts
	// before b, zero when equal and a positive number otherwise.
	Compare(a, b P) int

	// Distance returns the distance between two points.
	Distance(a, b P) float64
}

// Strategy decides how a space is partitioned. A strategy has a fixed
// fan-out and computes a fresh Partition whenever a leaf overflows.
type Strategy[P any] interface {
	// Arity is the fixed number of children of every internal node.
	Arity() int

	// Split computes the partition for a leaf that is about to overflow,
	// given the points it has accumulated.
	Split(points []P) Partition[P]
}

// Partition is the split state of one internal node. It maps points to
// location codes, tests codes against child indexes and bounds the distance
// from a query point to a child's region.
type Partition[P any] interface {
	// InsertLocation returns the strict location code for p. Exactly one
	// child matches it.
	InsertLocation(p P) Code

	// SearchLocation returns the search location code for p. A point lying
	// within tolerance of a split boundary matches more than one child.
	SearchLocation(p P) Code

	// Matches reports whether the child at the given index matches code.
	Matches(child int, code Code) bool

	// MinDistance returns a lower bound on the distance from p to any point
	// in the child's region.
	MinDistance(child int, p P, code Code) float64

	// MaxDistance returns an upper bound on the distance from p to any
	// point in the child's region, or +Inf when the region is unbounded.
	MaxDistance(child int, p P, code Code) float64
}

// Tolerance implements Precision with a fixed absolute epsilon.
type Tolerance struct {
	// Eps is the absolute tolerance. Zero gives exact comparison.
	Eps float64
}

// DefaultTolerance is the tolerance used by the concrete spaces unless
// overridden.
var DefaultTolerance = Tolerance{Eps: 1e-9}

// Lt reports a < b beyond tolerance.
func (t Tolerance) Lt(a, b float64) bool { return a < b-t.Eps }

// Lte reports a <= b within tolerance.
func (t Tolerance) Lte(a, b float64) bool { return a <= b+t.Eps }

// Gt reports a > b beyond tolerance.
func (t Tolerance) Gt(a, b float64) bool { return a > b+t.Eps }

// Eq reports |a-b| within tolerance.
func (t Tolerance) Eq(a, b float64) bool { return math.Abs(a-b) <= t.Eps }
