package tape_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/blockpool/tape"
)

func TestTape_New(t *testing.T) {
	_, err := tape.New(0)
	assert.ErrorIs(t, err, tape.ErrInvalidCapacity)

	tp, err := tape.New(8)
	require.NoError(t, err)
	defer tp.Close()
	assert.Equal(t, 8, tp.BlockCapacity())
	assert.Equal(t, 0, tp.Len())
}

func TestTape_PushAndPointers(t *testing.T) {
	tp, err := tape.New(4)
	require.NoError(t, err)
	defer tp.Close()

	ptrs := make([]*float64, 0, 10)
	for i := 0; i < 10; i++ {
		p, err := tp.Push(float64(i))
		require.NoError(t, err)
		ptrs = append(ptrs, p)
	}

	assert.Equal(t, 10, tp.Len())
	assert.Equal(t, 3, tp.NumBlocks())
	assert.Equal(t, uint64(3), tp.Stats().BlocksMapped)

	// Pointers survived the growth to three blocks.
	for i, p := range ptrs {
		assert.Equal(t, float64(i), *p)
	}

	// Writes through a recorded pointer are seen by iteration, the way
	// an adjoint sweep accumulates into recorded slots.
	*ptrs[5] = -1
	got := slices.Collect(tp.Values())
	assert.Equal(t, []float64{0, 1, 2, 3, 4, -1, 6, 7, 8, 9}, got)
}

func TestTape_MarkRewind(t *testing.T) {
	tp, err := tape.New(4)
	require.NoError(t, err)
	defer tp.Close()

	for i := 0; i < 5; i++ {
		_, err := tp.Push(float64(i))
		require.NoError(t, err)
	}
	tp.Mark()
	for i := 5; i < 12; i++ {
		_, err := tp.Push(float64(i))
		require.NoError(t, err)
	}

	tp.RewindToMark()
	assert.Equal(t, 5, tp.Len())
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, slices.Collect(tp.Values()))

	// Re-recording reuses the mapped blocks.
	mapped := tp.Stats().BlocksMapped
	for i := 0; i < 7; i++ {
		_, err := tp.Push(float64(i))
		require.NoError(t, err)
	}
	assert.Equal(t, mapped, tp.Stats().BlocksMapped)
}

func TestTape_Reset(t *testing.T) {
	tp, err := tape.New(2)
	require.NoError(t, err)
	defer tp.Close()

	for i := 0; i < 6; i++ {
		_, err := tp.Push(float64(i))
		require.NoError(t, err)
	}
	tp.Reset()
	assert.Equal(t, 0, tp.Len())
	assert.Empty(t, slices.Collect(tp.Values()))
	assert.Equal(t, 3, tp.NumBlocks())
}

func TestTape_Close(t *testing.T) {
	tp, err := tape.New(4)
	require.NoError(t, err)
	_, err = tp.Push(1)
	require.NoError(t, err)

	require.NoError(t, tp.Close())
	require.NoError(t, tp.Close()) // idempotent

	_, err = tp.Push(2)
	assert.ErrorIs(t, err, tape.ErrClosed)
}

func BenchmarkTapePush(b *testing.B) {
	tp, _ := tape.New(1024 * 10)
	defer tp.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tp.Push(float64(i))
	}
}
