// Package retrieval implements the document retrieval strategies (dense
// vector similarity and sparse fuzzy matching) and their score fusion.
package retrieval

import (
	"context"

	"github.com/fathom-search/fathom/internal/store"
)

// ResultKind labels which strategy produced a result.
type ResultKind string

const (
	// KindDense marks results from vector similarity retrieval.
	KindDense ResultKind = "dense"

	// KindSparse marks results from fuzzy keyword retrieval.
	KindSparse ResultKind = "sparse"

	// KindHybrid marks results surfaced by both strategies.
	KindHybrid ResultKind = "hybrid"
)

// SearchResult is one retrieved document with its strategy-local
// similarity and its fused score.
type SearchResult struct {
	// Document is the matched document.
	Document *store.DocumentRecord

	// Similarity is the strategy-local similarity in [0,1].
	Similarity float64

	// Score is the fused weighted score. Equal to Similarity before fusion.
	Score float64

	// Kind records which strategy (or both) produced the result.
	Kind ResultKind
}

// Options tune one retrieval call.
type Options struct {
	// MaxResults caps the number of results returned (0 = no cap).
	MaxResults int

	// Threshold is the minimum similarity for dense retrieval. The
	// sparse strategy has its own fixed match threshold and ignores it.
	Threshold float64
}

// Retriever is a single document retrieval strategy.
type Retriever interface {
	// Retrieve returns ranked results for the query. Implementations
	// degrade to an empty slice on internal failure rather than
	// propagating errors upward.
	Retrieve(ctx context.Context, query string, opts Options) []*SearchResult
}
