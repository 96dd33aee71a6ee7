package angular

import (
	"math"
	"testing"

	"github.com/hupe1980/foldmap/space"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpace(t *testing.T) {
	sp := NewSpace()

	t.Run("IsFinite", func(t *testing.T) {
		assert.True(t, sp.IsFinite(0))
		assert.True(t, sp.IsFinite(-3.5))
		assert.True(t, sp.IsFinite(100*math.Pi))
		assert.False(t, sp.IsFinite(math.NaN()))
		assert.False(t, sp.IsFinite(math.Inf(1)))
	})

	t.Run("DistanceWraps", func(t *testing.T) {
		assert.InDelta(t, 0.2, sp.Distance(0.1, tau-0.1), 1e-12)
		assert.InDelta(t, math.Pi, sp.Distance(0, math.Pi), 1e-12)
		assert.InDelta(t, 1, sp.Distance(0.5, -0.5), 1e-12)

		// never more than half a turn
		assert.InDelta(t, tau-6, sp.Distance(0, 6), 1e-12)
	})

	t.Run("EqualAcrossTurns", func(t *testing.T) {
		assert.True(t, sp.Equal(1, 1+tau))
		assert.True(t, sp.Equal(0, tau))
		assert.False(t, sp.Equal(0, 0.001))
	})

	t.Run("CompareNormalizes", func(t *testing.T) {
		assert.Negative(t, sp.Compare(1, 2))
		assert.Positive(t, sp.Compare(2, 1))
		assert.Zero(t, sp.Compare(1, 1+tau))

		// -0.1 normalizes to just below a full turn
		assert.Positive(t, sp.Compare(-0.1, 1))
	})
}

func TestNewStrategy(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		strat, err := NewStrategy(6)
		require.NoError(t, err)
		assert.Equal(t, 6, strat.Arity())
	})

	t.Run("InvalidSectors", func(t *testing.T) {
		_, err := NewStrategy(1)
		assert.IsType(t, &ErrInvalidSectors{}, err)
	})
}

func TestPartition(t *testing.T) {
	strat, err := NewStrategy(2)
	require.NoError(t, err)

	// largest gap is across zero (3.0 up to 0.1), so the covering arc runs
	// from origin 0.1 to 3.0 and each sector is half of it
	pt := strat.Split([]float64{0.1, 1.0, 2.0, 3.0})

	t.Run("InsertLocationRefines", func(t *testing.T) {
		assert.Equal(t, space.Code(0), pt.InsertLocation(0.1))
		assert.Equal(t, space.Code(0), pt.InsertLocation(1.0))
		assert.Equal(t, space.Code(1), pt.InsertLocation(2.0))

		// the arc end lands in the last sector, not past it
		assert.Equal(t, space.Code(1), pt.InsertLocation(3.0))
	})

	t.Run("MatchesWrapsAdjacency", func(t *testing.T) {
		// the origin sits on the boundary shared with the last sector
		code := pt.SearchLocation(0.1)
		assert.True(t, pt.Matches(0, code))
		assert.True(t, pt.Matches(1, code))

		// an interior angle matches only its own sector
		code = pt.SearchLocation(1.0)
		assert.True(t, pt.Matches(0, code))
		assert.False(t, pt.Matches(1, code))
	})

	t.Run("MinDistance", func(t *testing.T) {
		// sector 0 covers [0.1, 1.55]; 3.0 is 1.45 away from its far end
		assert.Zero(t, pt.MinDistance(0, 1.0, 0))
		assert.InDelta(t, 1.45, pt.MinDistance(0, 3.0, 0), 1e-9)

		// approaching from the other side of the circle, wrap included
		assert.InDelta(t, tau-6.0+0.1, pt.MinDistance(0, 6.0, 0), 1e-9)
	})

	t.Run("MaxDistance", func(t *testing.T) {
		// the antipode of 3.0 lies in the last sector
		assert.InDelta(t, math.Pi, pt.MaxDistance(1, 3.0, 0), 1e-9)

		// otherwise the farther endpoint bounds the sector
		assert.InDelta(t, 2.9, pt.MaxDistance(0, 3.0, 0), 1e-9)
	})

	t.Run("SectorsCoverTheCircle", func(t *testing.T) {
		// every angle matches some sector via its strict location
		for a := 0.0; a < tau; a += 0.05 {
			code := pt.InsertLocation(a)
			matched := false
			for child := 0; child < strat.Arity(); child++ {
				if pt.Matches(child, code) {
					matched = true
					break
				}
			}
			require.True(t, matched, "angle %v matches no sector", a)
		}
	})
}
