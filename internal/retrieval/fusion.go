package retrieval

import "sort"

// Default method-level fusion weights, applied when a method record
// carries no weight of its own.
const (
	DefaultFusionDenseWeight  = 0.6
	DefaultFusionSparseWeight = 0.4
)

// CombineResults fuses dense and sparse result lists into one ranked list
// keyed by document id. Scores add: a document found by both strategies
// scores denseSimilarity×denseWeight + sparseSimilarity×sparseWeight.
// Weights are applied as given; nothing requires them to sum to 1.
// Pure function of its inputs.
func CombineResults(dense, sparse []*SearchResult, denseWeight, sparseWeight float64) []*SearchResult {
	merged := make(map[string]*SearchResult, len(dense)+len(sparse))
	order := make([]string, 0, len(dense)+len(sparse))

	for _, r := range dense {
		id := r.Document.ID
		merged[id] = &SearchResult{
			Document:   r.Document,
			Similarity: r.Similarity,
			Score:      r.Similarity * denseWeight,
			Kind:       KindHybrid,
		}
		order = append(order, id)
	}

	for _, r := range sparse {
		id := r.Document.ID
		if existing, ok := merged[id]; ok {
			existing.Score += r.Similarity * sparseWeight
			continue
		}
		merged[id] = &SearchResult{
			Document:   r.Document,
			Similarity: r.Similarity,
			Score:      r.Similarity * sparseWeight,
			Kind:       KindHybrid,
		}
		order = append(order, id)
	}

	results := make([]*SearchResult, 0, len(merged))
	for _, id := range order {
		results = append(results, merged[id])
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document.ID < results[j].Document.ID
	})
	return results
}
