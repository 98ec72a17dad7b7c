package blockpool_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/blockpool"
)

func TestList_AllocationCount(t *testing.T) {
	list := blockpool.NewList[int]()
	const n = 137
	for i := 0; i < n; i++ {
		_, err := list.Push(i)
		require.NoError(t, err)
	}
	assert.Equal(t, uint64(n), list.Stats().NodesAllocated)
	assert.Equal(t, n, list.Len())
}

func TestList_HandleStability(t *testing.T) {
	list := blockpool.NewList[int]()
	nodes := make([]*blockpool.Node[int], 0, 100)
	for i := 0; i < 100; i++ {
		node, err := list.Push(i)
		require.NoError(t, err)
		nodes = append(nodes, node)
	}

	for i, node := range nodes {
		v, err := list.At(node)
		require.NoError(t, err)
		assert.Equal(t, i, *v)
	}
}

func TestList_InsertAfter(t *testing.T) {
	list := blockpool.NewList[int]()
	a, err := list.Push(1)
	require.NoError(t, err)
	_, err = list.Push(3)
	require.NoError(t, err)

	// General insertion is supported: splice between existing nodes.
	_, err = list.InsertAfter(a, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, slices.Collect(blockpool.Values[int](list)))

	// Inserting after the tail keeps the tail pointer honest.
	tail, err := list.Prev(list.End())
	require.NoError(t, err)
	node, err := list.InsertAfter(tail, 4)
	require.NoError(t, err)
	next, err := list.Push(5)
	require.NoError(t, err)

	got, err := list.Next(node)
	require.NoError(t, err)
	assert.Equal(t, next, got)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, slices.Collect(blockpool.Values[int](list)))

	_, err = list.InsertAfter(nil, 99)
	assert.ErrorIs(t, err, blockpool.ErrInvalidRef)
}

func TestList_Navigation(t *testing.T) {
	list := blockpool.NewList[int]()

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, list.End(), list.Begin())
		_, err := list.Next(list.End())
		assert.ErrorIs(t, err, blockpool.ErrOutOfRange)
		_, err = list.Prev(list.End())
		assert.ErrorIs(t, err, blockpool.ErrOutOfRange)
		_, err = list.At(nil)
		assert.ErrorIs(t, err, blockpool.ErrInvalidRef)
	})

	head, err := list.Push(1)
	require.NoError(t, err)
	tail, err := list.Push(2)
	require.NoError(t, err)

	t.Run("prev", func(t *testing.T) {
		node, err := list.Prev(list.End())
		require.NoError(t, err)
		assert.Equal(t, tail, node)

		node, err = list.Prev(tail)
		require.NoError(t, err)
		assert.Equal(t, head, node)

		_, err = list.Prev(list.Begin())
		assert.ErrorIs(t, err, blockpool.ErrOutOfRange)
	})

	t.Run("foreign node", func(t *testing.T) {
		foreign := &blockpool.Node[int]{}
		_, err := list.Prev(foreign)
		assert.ErrorIs(t, err, blockpool.ErrInvalidRef)
	})
}

func TestList_Order(t *testing.T) {
	list := blockpool.NewList[string]()
	want := []string{"a", "b", "c", "d"}
	for _, s := range want {
		_, err := list.Push(s)
		require.NoError(t, err)
	}
	assert.Equal(t, want, slices.Collect(blockpool.Values[string](list)))
}

func BenchmarkListPush(b *testing.B) {
	list := blockpool.NewList[float64]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = list.Push(float64(i))
	}
}
