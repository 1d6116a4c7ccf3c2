// Package store provides the document corpus (SQLite) and vector index
// (HNSW) that back Fathom's retrieval strategies.
package store

import (
	"context"
	"fmt"
	"math"
	"time"
)

// DocumentRecord is a stored document. Records are owned by the corpus and
// read-only from the retrieval core's perspective.
type DocumentRecord struct {
	// ID is the stable unique key for the document.
	ID string

	// Title is the document title.
	Title string

	// Content is the full document text.
	Content string

	// Embedding is the document's embedding vector.
	Embedding []float32

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// SimilarityRow is one ranked row from a vector similarity query.
type SimilarityRow struct {
	Document   *DocumentRecord
	Similarity float64
}

// VectorStore answers similarity queries over stored document embeddings.
type VectorStore interface {
	// SimilarityQuery returns up to count documents whose embedding
	// similarity to the query vector is at least threshold, ranked by
	// similarity descending.
	SimilarityQuery(ctx context.Context, embedding []float32, threshold float64, count int) ([]*SimilarityRow, error)
}

// Corpus lists stored documents for sparse scanning.
type Corpus interface {
	// ListAll returns all documents ordered by recency (newest first).
	// The snapshot is consumed wholesale per sparse-retrieval call.
	ListAll(ctx context.Context) ([]*DocumentRecord, error)
}

// ErrDimensionMismatch is returned when a vector's dimension doesn't match
// the index dimension.
type ErrDimensionMismatch struct {
	Expected int
	Got      int
}

func (e ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: index has %d dimensions, got %d", e.Expected, e.Got)
}

// normalizeVectorInPlace scales a vector to unit length in place.
func normalizeVectorInPlace(v []float32) {
	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}

	magnitude := math.Sqrt(sumSquares)
	if magnitude == 0 {
		return
	}

	for i, val := range v {
		v[i] = float32(float64(val) / magnitude)
	}
}

// distanceToScore converts a distance to a similarity score in [0,1].
func distanceToScore(distance float32, metric string) float64 {
	switch metric {
	case "cos":
		// Cosine distance is 1 - cosine similarity
		score := 1.0 - float64(distance)
		if score < 0 {
			return 0
		}
		if score > 1 {
			return 1
		}
		return score
	default:
		// L2: map distance to (0,1] with 1/(1+d)
		return 1.0 / (1.0 + float64(distance))
	}
}
