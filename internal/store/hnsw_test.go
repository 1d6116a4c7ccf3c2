package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *HNSWIndex {
	t.Helper()
	idx, err := NewHNSWIndex(HNSWConfig{Dimensions: 3})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestNewHNSWIndex_RequiresDimensions(t *testing.T) {
	_, err := NewHNSWIndex(HNSWConfig{})
	assert.Error(t, err)
}

func TestHNSWIndex_AddAndSearch(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	err := idx.Add(ctx,
		[]string{"a", "b", "c"},
		[][]float32{
			{1, 0, 0},
			{0, 1, 0},
			{0.9, 0.1, 0},
		})
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Count())

	hits, err := idx.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	// Nearest neighbor first.
	assert.Equal(t, "a", hits[0].ID)
	assert.Equal(t, "c", hits[1].ID)
	assert.Greater(t, hits[0].Score, hits[1].Score)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-5)
}

func TestHNSWIndex_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	err := idx.Add(ctx, []string{"a"}, [][]float32{{1, 0}})
	var dimErr ErrDimensionMismatch
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 3, dimErr.Expected)
	assert.Equal(t, 2, dimErr.Got)

	_, err = idx.Search(ctx, []float32{1, 0}, 1)
	assert.ErrorAs(t, err, &dimErr)
}

func TestHNSWIndex_SearchEmptyIndex(t *testing.T) {
	idx := newTestIndex(t)

	hits, err := idx.Search(context.Background(), []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestHNSWIndex_LazyDelete(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	require.NoError(t, idx.Add(ctx,
		[]string{"a", "b"},
		[][]float32{{1, 0, 0}, {0, 1, 0}}))

	require.NoError(t, idx.Delete(ctx, []string{"a"}))
	assert.Equal(t, 1, idx.Count())

	hits, err := idx.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	for _, h := range hits {
		assert.NotEqual(t, "a", h.ID, "deleted vector must not surface")
	}
}

func TestHNSWIndex_UpdateExistingID(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	require.NoError(t, idx.Add(ctx, []string{"a"}, [][]float32{{1, 0, 0}}))
	require.NoError(t, idx.Add(ctx, []string{"a"}, [][]float32{{0, 1, 0}}))
	assert.Equal(t, 1, idx.Count())

	hits, err := idx.Search(ctx, []float32{0, 1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "a", hits[0].ID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-5)
}

func TestHNSWIndex_ClosedIndex(t *testing.T) {
	ctx := context.Background()
	idx, err := NewHNSWIndex(HNSWConfig{Dimensions: 3})
	require.NoError(t, err)
	require.NoError(t, idx.Close())

	assert.Error(t, idx.Add(ctx, []string{"a"}, [][]float32{{1, 0, 0}}))
	_, err = idx.Search(ctx, []float32{1, 0, 0}, 1)
	assert.Error(t, err)
	assert.Equal(t, 0, idx.Count())
}
