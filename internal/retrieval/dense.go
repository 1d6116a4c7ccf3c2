package retrieval

import (
	"context"
	"log/slog"

	"github.com/fathom-search/fathom/internal/embed"
	"github.com/fathom-search/fathom/internal/store"
)

// DenseRetriever retrieves documents by embedding the query and running a
// vector similarity search against the index.
type DenseRetriever struct {
	provider *embed.Provider
	vectors  store.VectorStore
	logger   *slog.Logger
}

var _ Retriever = (*DenseRetriever)(nil)

// NewDenseRetriever creates a dense retriever.
func NewDenseRetriever(provider *embed.Provider, vectors store.VectorStore, logger *slog.Logger) *DenseRetriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &DenseRetriever{
		provider: provider,
		vectors:  vectors,
		logger:   logger.With("strategy", "dense"),
	}
}

// Retrieve embeds the query and returns documents above the similarity
// threshold, ranked by similarity. Any failure (embedding or index) is
// logged and degrades to an empty result set.
func (r *DenseRetriever) Retrieve(ctx context.Context, query string, opts Options) []*SearchResult {
	embedder, err := r.provider.Get(ctx)
	if err != nil {
		r.logger.Warn("embedder unavailable, skipping dense retrieval", "error", err)
		return nil
	}

	vec, err := embedder.Embed(ctx, query)
	if err != nil {
		r.logger.Warn("query embedding failed, skipping dense retrieval", "error", err)
		return nil
	}

	rows, err := r.vectors.SimilarityQuery(ctx, vec, opts.Threshold, opts.MaxResults)
	if err != nil {
		r.logger.Warn("similarity query failed, skipping dense retrieval", "error", err)
		return nil
	}

	results := make([]*SearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, &SearchResult{
			Document:   row.Document,
			Similarity: row.Similarity,
			Score:      row.Similarity,
			Kind:       KindDense,
		})
	}
	return results
}
