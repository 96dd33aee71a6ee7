package queue

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueue(t *testing.T) {
	t.Run("MinOrder", func(t *testing.T) {
		pq := NewMin[string](8)
		pq.Push(Item[string]{Value: "c", Distance: 3})
		pq.Push(Item[string]{Value: "a", Distance: 1})
		pq.Push(Item[string]{Value: "b", Distance: 2})

		top, ok := pq.Top()
		require.True(t, ok)
		assert.Equal(t, "a", top.Value)
		assert.Equal(t, 3, pq.Len())

		var got []string
		for pq.Len() > 0 {
			item, ok := pq.Pop()
			require.True(t, ok)
			got = append(got, item.Value)
		}
		assert.Equal(t, []string{"a", "b", "c"}, got)
	})

	t.Run("MaxOrder", func(t *testing.T) {
		pq := NewMax[string](8)
		pq.Push(Item[string]{Value: "c", Distance: 3})
		pq.Push(Item[string]{Value: "a", Distance: 1})
		pq.Push(Item[string]{Value: "b", Distance: 2})

		top, ok := pq.Top()
		require.True(t, ok)
		assert.Equal(t, "c", top.Value)

		var got []string
		for pq.Len() > 0 {
			item, _ := pq.Pop()
			got = append(got, item.Value)
		}
		assert.Equal(t, []string{"c", "b", "a"}, got)
	})

	t.Run("Empty", func(t *testing.T) {
		pq := NewMin[int](0)
		_, ok := pq.Top()
		assert.False(t, ok)
		_, ok = pq.Pop()
		assert.False(t, ok)
		assert.Equal(t, 0, pq.Len())
	})

	t.Run("Reset", func(t *testing.T) {
		pq := NewMin[int](4)
		pq.Push(Item[int]{Value: 1, Distance: 1})
		pq.Push(Item[int]{Value: 2, Distance: 2})
		pq.Reset()

		assert.Equal(t, 0, pq.Len())
		_, ok := pq.Pop()
		assert.False(t, ok)

		pq.Push(Item[int]{Value: 3, Distance: 3})
		item, ok := pq.Pop()
		require.True(t, ok)
		assert.Equal(t, 3, item.Value)
	})

	t.Run("RandomizedHeapOrder", func(t *testing.T) {
		r := rand.New(rand.NewSource(42))

		distances := make([]float64, 500)
		pq := NewMin[int](len(distances))
		for i := range distances {
			distances[i] = r.Float64()
			pq.Push(Item[int]{Value: i, Distance: distances[i]})
		}
		sort.Float64s(distances)

		for _, want := range distances {
			item, ok := pq.Pop()
			require.True(t, ok)
			require.Equal(t, want, item.Distance)
		}
		assert.Equal(t, 0, pq.Len())
	})
}
