package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathom-search/fathom/internal/store"
)

func denseResult(id string, sim float64) *SearchResult {
	return &SearchResult{
		Document:   &store.DocumentRecord{ID: id, Title: "doc " + id},
		Similarity: sim,
		Score:      sim,
		Kind:       KindDense,
	}
}

func sparseResult(id string, sim float64) *SearchResult {
	r := denseResult(id, sim)
	r.Kind = KindSparse
	return r
}

func TestCombineResultsWeightedSum(t *testing.T) {
	dense := []*SearchResult{denseResult("a", 0.9), denseResult("b", 0.7)}
	sparse := []*SearchResult{sparseResult("b", 0.8), sparseResult("c", 0.6)}

	fused := CombineResults(dense, sparse, 0.6, 0.4)
	require.Len(t, fused, 3)

	assert.Equal(t, "b", fused[0].Document.ID)
	assert.InDelta(t, 0.74, fused[0].Score, 1e-9)

	assert.Equal(t, "a", fused[1].Document.ID)
	assert.InDelta(t, 0.54, fused[1].Score, 1e-9)

	assert.Equal(t, "c", fused[2].Document.ID)
	assert.InDelta(t, 0.24, fused[2].Score, 1e-9)

	for _, r := range fused {
		assert.Equal(t, KindHybrid, r.Kind)
	}
}

func TestCombineResultsSparseOnlyScore(t *testing.T) {
	fused := CombineResults(nil, []*SearchResult{sparseResult("x", 0.5)}, 0.6, 0.4)
	require.Len(t, fused, 1)
	assert.InDelta(t, 0.5*0.4, fused[0].Score, 1e-9)
}

func TestCombineResultsDenseOnlyScore(t *testing.T) {
	fused := CombineResults([]*SearchResult{denseResult("x", 0.5)}, nil, 0.6, 0.4)
	require.Len(t, fused, 1)
	assert.InDelta(t, 0.5*0.6, fused[0].Score, 1e-9)
}

func TestCombineResultsScoresAddWithoutCap(t *testing.T) {
	// High weights can push the fused score past 1; the arithmetic is
	// preserved, not clamped.
	dense := []*SearchResult{denseResult("x", 0.9)}
	sparse := []*SearchResult{sparseResult("x", 0.9)}

	fused := CombineResults(dense, sparse, 0.9, 0.9)
	require.Len(t, fused, 1)
	assert.InDelta(t, 1.62, fused[0].Score, 1e-9)
}

func TestCombineResultsEmptyInputs(t *testing.T) {
	assert.Empty(t, CombineResults(nil, nil, 0.6, 0.4))
}

func TestCombineResultsTieBreakByID(t *testing.T) {
	dense := []*SearchResult{denseResult("b", 0.5), denseResult("a", 0.5)}

	fused := CombineResults(dense, nil, 1.0, 0)
	require.Len(t, fused, 2)
	assert.Equal(t, "a", fused[0].Document.ID)
	assert.Equal(t, "b", fused[1].Document.ID)
}
