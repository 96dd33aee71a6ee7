// Package euclid implements foldmap's space and strategy interfaces for
// n-dimensional Euclidean points represented as []float64.
//
// The strategy performs k-d style axis bisection: a leaf's bounding box is
// split at its midpoint on every axis at once, giving a fixed fan-out of
// 2^dim children, one per orthant. Child regions are unbounded away from the
// split point, so MaxDistance reports +Inf and farthest-first pruning falls
// back to exhaustive visiting.
package euclid

import (
	"fmt"
	"math"

	"github.com/hupe1980/foldmap/space"
)

// Compile-time checks that the euclid types satisfy the space interfaces.
var (
	_ space.Space[[]float64]     = (*Space)(nil)
	_ space.Strategy[[]float64]  = (*Strategy)(nil)
	_ space.Partition[[]float64] = (*partition)(nil)
)

// MaxDim bounds the supported dimensionality. The fan-out is 2^dim, so
// higher dimensions produce impractically wide nodes, and location codes
// reserve 32 bits for the orthant bitmask.
const MaxDim = 16

// Options contains configuration options for the Euclidean space and
// strategy.
type Options struct {
	// Eps is the absolute tolerance used for point equality and distance
	// comparison.
	Eps float64
}

// DefaultOptions contains the default configuration options.
var DefaultOptions = Options{
	Eps: space.DefaultTolerance.Eps,
}

// ErrInvalidDim indicates a dimension outside [1, MaxDim].
type ErrInvalidDim struct {
	Dim int
}

func (e *ErrInvalidDim) Error() string {
	return fmt.Sprintf("euclid: invalid dimension: %d", e.Dim)
}

// Space implements space.Space for []float64 points of a fixed dimension.
// Points of the wrong length are reported as non-finite.
type Space struct {
	space.Tolerance
	dim int
}

// NewSpace creates a Euclidean space of the given dimension.
func NewSpace(dim int, optFns ...func(o *Options)) (*Space, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if dim < 1 || dim > MaxDim {
		return nil, &ErrInvalidDim{Dim: dim}
	}

	return &Space{Tolerance: space.Tolerance{Eps: opts.Eps}, dim: dim}, nil
}

// Dim returns the dimensionality of the space.
func (s *Space) Dim() int { return s.dim }

// IsFinite reports whether p has the right dimension and only finite
// coordinates.
func (s *Space) IsFinite(p []float64) bool {
	if len(p) != s.dim {
		return false
	}
	for _, x := range p {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b coincide within tolerance on every axis.
func (s *Space) Equal(a, b []float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > s.Eps {
			return false
		}
	}
	return true
}

// Compare orders points lexicographically by raw coordinates. It is exact,
// not tolerant: it only breaks ties between distinct points.
func (s *Space) Compare(a, b []float64) int {
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Distance returns the Euclidean distance between a and b.
func (s *Space) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Strategy implements k-d style midpoint bisection with arity 2^dim.
type Strategy struct {
	tol space.Tolerance
	dim int
}

// NewStrategy creates a bisection strategy for the given dimension.
func NewStrategy(dim int, optFns ...func(o *Options)) (*Strategy, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if dim < 1 || dim > MaxDim {
		return nil, &ErrInvalidDim{Dim: dim}
	}

	return &Strategy{tol: space.Tolerance{Eps: opts.Eps}, dim: dim}, nil
}

// Arity returns 2^dim, one child per orthant.
func (s *Strategy) Arity() int { return 1 << s.dim }

// Split bisects the bounding box of the given points at its midpoint on
// every axis.
func (s *Strategy) Split(points [][]float64) space.Partition[[]float64] {
	lo := make([]float64, s.dim)
	hi := make([]float64, s.dim)
	copy(lo, points[0])
	copy(hi, points[0])
	for _, p := range points[1:] {
		for i, x := range p {
			if x < lo[i] {
				lo[i] = x
			}
			if x > hi[i] {
				hi[i] = x
			}
		}
	}

	split := make([]float64, s.dim)
	for i := range split {
		split[i] = lo[i] + (hi[i]-lo[i])/2
	}

	return &partition{tol: s.tol, split: split}
}

// partition is the split state of one internal node: the per-axis split
// values. The child index doubles as the orthant bitmask, bit i set when the
// point lies on the high side of axis i.
type partition struct {
	tol   space.Tolerance
	split []float64
}

// codeWildShift is where the wildcard bitmask lives inside a search code.
const codeWildShift = 32

func (pt *partition) InsertLocation(p []float64) space.Code {
	var code space.Code
	for i, s := range pt.split {
		if p[i] >= s {
			code |= 1 << i
		}
	}
	return code
}

func (pt *partition) SearchLocation(p []float64) space.Code {
	var match, wild space.Code
	for i, s := range pt.split {
		if p[i] >= s {
			match |= 1 << i
		}
		if math.Abs(p[i]-s) <= pt.tol.Eps {
			wild |= 1 << i
		}
	}
	return match | wild<<codeWildShift
}

func (pt *partition) Matches(child int, code space.Code) bool {
	match := code & (1<<codeWildShift - 1)
	wild := code >> codeWildShift
	return (space.Code(child)^match)&^wild == 0
}

// MinDistance returns the distance from p to the child's orthant: the
// Euclidean norm of the per-axis overshoot on every axis where the child
// lies on the other side of the split.
func (pt *partition) MinDistance(child int, p []float64, _ space.Code) float64 {
	var sum float64
	for i, s := range pt.split {
		d := p[i] - s
		high := child>>i&1 == 1
		if (high && d < 0) || (!high && d > 0) {
			sum += d * d
		}
	}
	return math.Sqrt(sum)
}

// MaxDistance is +Inf: orthants are unbounded away from the split point.
func (pt *partition) MaxDistance(int, []float64, space.Code) float64 {
	return math.Inf(1)
}
