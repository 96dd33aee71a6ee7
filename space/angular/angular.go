// Package angular implements foldmap's space and strategy interfaces for
// one-dimensional angles on a circle, measured in radians.
//
// Distance wraps around: the distance between two angles is the shorter arc
// between them, at most pi. The strategy cuts the minimal arc covering the
// accumulated points (the complement of their largest gap) into equal
// sectors, so each level of the tree refines the previous one and both the
// minimum and the maximum distance from a query to a sector are bounded,
// which makes farthest-first pruning effective.
package angular

import (
	"fmt"
	"math"
	"sort"

	"github.com/hupe1980/foldmap/space"
)

// Compile-time checks that the angular types satisfy the space interfaces.
var (
	_ space.Space[float64]     = (*Space)(nil)
	_ space.Strategy[float64]  = (*Strategy)(nil)
	_ space.Partition[float64] = (*partition)(nil)
)

const tau = 2 * math.Pi

// Options contains configuration options for the angular space and strategy.
type Options struct {
	// Eps is the absolute tolerance used for angle equality and distance
	// comparison.
	Eps float64
}

// DefaultOptions contains the default configuration options.
var DefaultOptions = Options{
	Eps: space.DefaultTolerance.Eps,
}

// ErrInvalidSectors indicates a sector count below 2.
type ErrInvalidSectors struct {
	Sectors int
}

func (e *ErrInvalidSectors) Error() string {
	return fmt.Sprintf("angular: invalid sector count: %d", e.Sectors)
}

// normalize maps an angle into [0, tau).
func normalize(a float64) float64 {
	a = math.Mod(a, tau)
	if a < 0 {
		a += tau
	}
	return a
}

// dist returns the shorter arc between two angles, in [0, pi].
func dist(a, b float64) float64 {
	d := math.Abs(normalize(a) - normalize(b))
	if d > math.Pi {
		d = tau - d
	}
	return d
}

// Space implements space.Space for float64 angles in radians. Angles
// outside [0, tau) are accepted and normalized by the distance function.
type Space struct {
	space.Tolerance
}

// NewSpace creates an angular space.
func NewSpace(optFns ...func(o *Options)) *Space {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Space{Tolerance: space.Tolerance{Eps: opts.Eps}}
}

// IsFinite reports whether a is a usable angle.
func (s *Space) IsFinite(a float64) bool {
	return !math.IsNaN(a) && !math.IsInf(a, 0)
}

// Equal reports whether the arc between a and b is within tolerance.
func (s *Space) Equal(a, b float64) bool {
	return dist(a, b) <= s.Eps
}

// Compare orders angles by their normalized value.
func (s *Space) Compare(a, b float64) int {
	na, nb := normalize(a), normalize(b)
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return 0
	}
}

// Distance returns the shorter arc between a and b.
func (s *Space) Distance(a, b float64) float64 {
	return dist(a, b)
}

// Strategy cuts the covering arc of a bucket into a fixed number of equal
// sectors.
type Strategy struct {
	tol     space.Tolerance
	sectors int
}

// NewStrategy creates a sector strategy with the given fan-out.
func NewStrategy(sectors int, optFns ...func(o *Options)) (*Strategy, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if sectors < 2 {
		return nil, &ErrInvalidSectors{Sectors: sectors}
	}

	return &Strategy{tol: space.Tolerance{Eps: opts.Eps}, sectors: sectors}, nil
}

// Arity returns the sector count.
func (s *Strategy) Arity() int { return s.sectors }

// Split computes the minimal arc covering the accumulated points, the
// complement of their largest gap, and cuts it into equal sectors. The
// last sector additionally absorbs the uncovered remainder of the circle,
// so the sectors always partition the full circle while still refining
// with every level. The extreme points land in the first and the last
// sector, so every split strictly separates the bucket.
func (s *Strategy) Split(points []float64) space.Partition[float64] {
	sorted := make([]float64, len(points))
	for i, p := range points {
		sorted[i] = normalize(p)
	}
	sort.Float64s(sorted)

	// find the largest gap between consecutive angles, wrap included
	gapStart := len(sorted) - 1
	largest := tau - sorted[len(sorted)-1] + sorted[0]
	for i := 1; i < len(sorted); i++ {
		if gap := sorted[i] - sorted[i-1]; gap > largest {
			largest = gap
			gapStart = i - 1
		}
	}

	origin := sorted[(gapStart+1)%len(sorted)]
	arc := tau - largest

	return &partition{
		tol:     s.tol,
		origin:  origin,
		width:   arc / float64(s.sectors),
		sectors: s.sectors,
	}
}

// partition is the split state of one internal node. Relative to origin,
// sector i covers [i*width, (i+1)*width) and the last sector extends to a
// full turn, so the circle is partitioned completely.
type partition struct {
	tol     space.Tolerance
	origin  float64
	width   float64
	sectors int
}

// Search codes carry the sector index plus two flags marking boundary
// proximity to the neighboring sectors. Adjacency wraps: the first and the
// last sector share the boundary at origin.
const (
	codePrevFlag space.Code = 1 << 32
	codeNextFlag space.Code = 1 << 33
	codeMask     space.Code = 1<<32 - 1
)

// span returns the relative endpoints of a child's sector.
func (pt *partition) span(child int) (lo, hi float64) {
	lo = float64(child) * pt.width
	hi = lo + pt.width
	if child == pt.sectors-1 {
		hi = tau
	}
	return lo, hi
}

func (pt *partition) sector(a float64) (idx int, rel float64) {
	rel = normalize(a - pt.origin)
	idx = int(rel / pt.width)
	if idx >= pt.sectors {
		idx = pt.sectors - 1
	}
	return idx, rel
}

func (pt *partition) InsertLocation(a float64) space.Code {
	idx, _ := pt.sector(a)
	return space.Code(idx)
}

func (pt *partition) SearchLocation(a float64) space.Code {
	idx, rel := pt.sector(a)
	code := space.Code(idx)

	lo, hi := pt.span(idx)
	if rel-lo <= pt.tol.Eps {
		code |= codePrevFlag
	}
	if hi-rel <= pt.tol.Eps {
		code |= codeNextFlag
	}
	return code
}

func (pt *partition) Matches(child int, code space.Code) bool {
	idx := int(code & codeMask)
	if child == idx {
		return true
	}
	if code&codePrevFlag != 0 && child == (idx-1+pt.sectors)%pt.sectors {
		return true
	}
	if code&codeNextFlag != 0 && child == (idx+1)%pt.sectors {
		return true
	}
	return false
}

// MinDistance returns the shorter arc from a to the child's sector, zero
// when a lies inside it.
func (pt *partition) MinDistance(child int, a float64, _ space.Code) float64 {
	lo, hi := pt.span(child)
	if rel := normalize(a - pt.origin); lo <= rel && rel <= hi {
		return 0
	}
	start := pt.origin + lo
	end := pt.origin + hi
	return math.Min(dist(a, start), dist(a, end))
}

// MaxDistance returns the longer arc from a to the child's sector. When
// the antipode of a lies inside the sector the bound is pi.
func (pt *partition) MaxDistance(child int, a float64, _ space.Code) float64 {
	lo, hi := pt.span(child)
	if rel := normalize(a + math.Pi - pt.origin); lo <= rel && rel <= hi {
		return math.Pi
	}
	start := pt.origin + lo
	end := pt.origin + hi
	return math.Max(dist(a, start), dist(a, end))
}
