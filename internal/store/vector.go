package store

import (
	"context"
	"fmt"
)

// IndexedVectorStore implements VectorStore by combining the HNSW index
// with the document corpus: the index answers nearest-neighbor queries,
// the corpus supplies the matching document rows.
type IndexedVectorStore struct {
	index *HNSWIndex
	docs  *DocumentStore
}

// Verify interface implementation at compile time.
var _ VectorStore = (*IndexedVectorStore)(nil)

// NewIndexedVectorStore creates a vector store over the given index and corpus.
func NewIndexedVectorStore(index *HNSWIndex, docs *DocumentStore) *IndexedVectorStore {
	return &IndexedVectorStore{index: index, docs: docs}
}

// SimilarityQuery returns up to count documents with similarity >= threshold,
// ranked by similarity descending.
func (s *IndexedVectorStore) SimilarityQuery(ctx context.Context, embedding []float32, threshold float64, count int) ([]*SimilarityRow, error) {
	if count <= 0 {
		return []*SimilarityRow{}, nil
	}

	hits, err := s.index.Search(ctx, embedding, count)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	rows := make([]*SimilarityRow, 0, len(hits))
	for _, hit := range hits {
		if hit.Score < threshold {
			continue
		}

		doc, err := s.docs.GetDocument(ctx, hit.ID)
		if err != nil {
			// Index and corpus can drift after deletes; skip orphans.
			continue
		}

		rows = append(rows, &SimilarityRow{
			Document:   doc,
			Similarity: hit.Score,
		})
	}

	return rows, nil
}

// Index adds a document's embedding to the vector index.
func (s *IndexedVectorStore) Index(ctx context.Context, doc *DocumentRecord) error {
	if len(doc.Embedding) == 0 {
		return fmt.Errorf("document %s has no embedding", doc.ID)
	}
	return s.index.Add(ctx, []string{doc.ID}, [][]float32{doc.Embedding})
}
