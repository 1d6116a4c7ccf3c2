package retrieval

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/fathom-search/fathom/internal/store"
)

// Sparse matching tuning. The match metric is lower-is-better.
const (
	// sparseTitleWeight is the title field's share of the match score.
	sparseTitleWeight = 0.7

	// sparseContentWeight is the content field's share of the match score.
	sparseContentWeight = 0.3

	// sparseMatchThreshold is the maximum match score accepted as a hit.
	sparseMatchThreshold = 0.4

	// sparseMinMatchLen is the minimum query token length considered.
	sparseMinMatchLen = 2
)

// SparseRetriever retrieves documents by fuzzy keyword matching over a
// fresh corpus snapshot. No index is persisted between calls.
type SparseRetriever struct {
	corpus store.Corpus
	logger *slog.Logger
}

var _ Retriever = (*SparseRetriever)(nil)

// NewSparseRetriever creates a sparse retriever over the given corpus.
func NewSparseRetriever(corpus store.Corpus, logger *slog.Logger) *SparseRetriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &SparseRetriever{
		corpus: corpus,
		logger: logger.With("strategy", "sparse"),
	}
}

// Retrieve lists the corpus and fuzzy-matches the query against each
// document's title and content. Failures degrade to an empty result set.
func (r *SparseRetriever) Retrieve(ctx context.Context, query string, opts Options) []*SearchResult {
	tokens := queryTokens(query)
	if len(tokens) == 0 {
		return nil
	}

	docs, err := r.corpus.ListAll(ctx)
	if err != nil {
		r.logger.Warn("corpus listing failed, skipping sparse retrieval", "error", err)
		return nil
	}

	var results []*SearchResult
	for _, doc := range docs {
		titleScore := fieldMatchScore(tokens, doc.Title)
		contentScore := fieldMatchScore(tokens, doc.Content)
		matchScore := titleScore*sparseTitleWeight + contentScore*sparseContentWeight

		if matchScore > sparseMatchThreshold {
			continue
		}

		sim := 1.0 - matchScore
		results = append(results, &SearchResult{
			Document:   doc,
			Similarity: sim,
			Score:      sim,
			Kind:       KindSparse,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Document.ID < results[j].Document.ID
	})

	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results
}

// queryTokens lowercases and splits the query, dropping tokens shorter
// than the minimum match length. Length is counted in runes so multi-byte
// characters are not over-counted.
func queryTokens(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= sparseMinMatchLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// fieldMatchScore returns the mean best normalized edit distance of each
// query token against the field's tokens. 0 is a perfect match, 1 none.
func fieldMatchScore(queryTokens []string, field string) float64 {
	fieldTokens := strings.Fields(strings.ToLower(field))
	if len(fieldTokens) == 0 {
		return 1.0
	}

	var total float64
	for _, qt := range queryTokens {
		best := 1.0
		for _, ft := range fieldTokens {
			d := normalizedEditDistance(qt, ft)
			if d < best {
				best = d
			}
			if best == 0 {
				break
			}
		}
		total += best
	}
	return total / float64(len(queryTokens))
}

// normalizedEditDistance is the Levenshtein distance scaled by the longer
// token's length, yielding a score in [0,1]. Lengths are in runes to match
// the rune-based distance.
func normalizedEditDistance(a, b string) float64 {
	if a == b {
		return 0
	}
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}
