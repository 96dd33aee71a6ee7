package foldmap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterator(t *testing.T) {
	buildMap := func(t *testing.T, n int) (*Map[[]float64, int], [][]float64) {
		m := newTestMap(t, 2, WithLeafCapacity(4))
		r := rand.New(rand.NewSource(41))
		points := make([][]float64, n)
		for i := range points {
			points[i] = randPoint(r, 2)
			_, _, err := m.Put(points[i], i)
			require.NoError(t, err)
		}
		return m, points
	}

	t.Run("CoversBothRoots", func(t *testing.T) {
		m, _ := buildMap(t, 100)
		// capacity 4 keeps a fold in flight most of the time
		require.NotNil(t, m.secondary)

		it := m.Entries()

		size, err := it.Len()
		require.NoError(t, err)
		assert.Equal(t, 100, size)

		seen := make(map[int]bool)
		for {
			e, err := it.Next()
			require.NoError(t, err)
			if e == nil {
				break
			}
			require.False(t, seen[e.Value()])
			seen[e.Value()] = true
		}
		assert.Len(t, seen, 100)
	})

	t.Run("Empty", func(t *testing.T) {
		m := newTestMap(t, 2)
		it := m.Entries()

		e, err := it.Next()
		require.NoError(t, err)
		assert.Nil(t, e)
	})

	t.Run("FailFastOnPut", func(t *testing.T) {
		m, _ := buildMap(t, 20)
		it := m.Entries()

		_, err := it.Next()
		require.NoError(t, err)

		_, _, err = m.Put([]float64{-5, -5}, 999)
		require.NoError(t, err)

		_, err = it.Next()
		assert.IsType(t, &ErrConcurrentModification{}, err)
		_, err = it.Len()
		assert.IsType(t, &ErrConcurrentModification{}, err)
		err = it.Remove()
		assert.IsType(t, &ErrConcurrentModification{}, err)
	})

	t.Run("FailFastOnRemove", func(t *testing.T) {
		m, points := buildMap(t, 20)
		it := m.Entries()

		_, err := it.Next()
		require.NoError(t, err)

		_, _, err = m.Remove(points[7])
		require.NoError(t, err)

		_, err = it.Next()
		assert.IsType(t, &ErrConcurrentModification{}, err)
	})

	t.Run("ValueReplaceIsNotStructural", func(t *testing.T) {
		m, points := buildMap(t, 20)
		it := m.Entries()

		_, err := it.Next()
		require.NoError(t, err)

		// replacing a value in place does not move entries around
		_, replaced, err := m.Put(points[3], 333)
		require.NoError(t, err)
		require.True(t, replaced)

		_, err = it.Next()
		assert.NoError(t, err)
	})

	t.Run("RemoveCurrent", func(t *testing.T) {
		m, _ := buildMap(t, 60)

		it := m.Entries()
		removed := 0
		for {
			e, err := it.Next()
			require.NoError(t, err)
			if e == nil {
				break
			}
			if e.Value()%2 == 0 {
				require.NoError(t, it.Remove())
				removed++
			}
		}
		require.Equal(t, 30, removed)
		assert.Equal(t, 30, m.Len())
		checkTree(t, m)

		// survivors are exactly the odd values
		for e, err := range m.Entries().Seq() {
			require.NoError(t, err)
			assert.Equal(t, 1, e.Value()%2)
		}
	})

	t.Run("RemoveAll", func(t *testing.T) {
		m, _ := buildMap(t, 50)

		it := m.Entries()
		for {
			e, err := it.Next()
			require.NoError(t, err)
			if e == nil {
				break
			}
			require.NoError(t, it.Remove())
		}
		assert.Equal(t, 0, m.Len())
	})

	t.Run("RemoveErrors", func(t *testing.T) {
		m, _ := buildMap(t, 5)
		it := m.Entries()

		// before any element was produced
		assert.ErrorIs(t, it.Remove(), ErrNoSuchElement)

		_, err := it.Next()
		require.NoError(t, err)
		require.NoError(t, it.Remove())

		// twice for the same element
		assert.ErrorIs(t, it.Remove(), ErrNoSuchElement)

		// after exhaustion
		for {
			e, err := it.Next()
			require.NoError(t, err)
			if e == nil {
				break
			}
		}
		assert.ErrorIs(t, it.Remove(), ErrNoSuchElement)
	})

	t.Run("Seq", func(t *testing.T) {
		m, _ := buildMap(t, 40)

		count := 0
		for _, err := range m.Entries().Seq() {
			require.NoError(t, err)
			count++
		}
		assert.Equal(t, 40, count)
	})

	t.Run("KeysAndValues", func(t *testing.T) {
		m, points := buildMap(t, 30)

		keys := 0
		for k, err := range m.Keys() {
			require.NoError(t, err)
			require.Len(t, k, 2)
			keys++
		}
		assert.Equal(t, len(points), keys)

		seen := make(map[int]bool)
		for v, err := range m.Values() {
			require.NoError(t, err)
			seen[v] = true
		}
		assert.Len(t, seen, len(points))
	})
}
